package middleware

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"pawparadise/config"
	"pawparadise/internal/delivery/api/response"
	domainerrors "pawparadise/internal/domain/errors"
	"pawparadise/internal/errors"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newErrorMiddleware(env string) *ErrorMiddleware {
	cfg := &config.Config{}
	cfg.Env.Env = env

	return NewErrorMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)), cfg)
}

func render(t *testing.T, m *ErrorMiddleware, err error) (*httptest.ResponseRecorder, response.ErrorResponse) {
	t.Helper()

	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

	m.HandleHTTPError(err, c)

	var body response.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	require.NotNil(t, body.Error)

	return rec, body
}

func TestHandleHTTPError(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
		wantDetails bool
	}{
		{
			name:        "wrapped domain error",
			env:         config.EnvDevelopment,
			err:         errors.Wrap(domainerrors.ErrOrderNotFound, "failed to find order"),
			wantStatus:  http.StatusNotFound,
			wantCode:    "ORDER_NOT_FOUND",
			wantMessage: domainerrors.ErrOrderNotFound.Message(),
		},
		{
			name:        "custom message keeps code",
			env:         config.EnvDevelopment,
			err:         domainerrors.ErrInsufficientStock.WithMessage(`Insufficient stock for "Kibble".`),
			wantStatus:  http.StatusBadRequest,
			wantCode:    domainerrors.ErrInsufficientStock.ErrorCode(),
			wantMessage: `Insufficient stock for "Kibble".`,
		},
		{
			name: "validation error carries details",
			env:  config.EnvDevelopment,
			err: domainerrors.NewValidationError(domainerrors.FieldError{
				Field: "items", Message: "At least one item is required.",
			}),
			wantStatus:  http.StatusBadRequest,
			wantCode:    "VALIDATION_FAILED",
			wantMessage: "items: At least one item is required.",
			wantDetails: true,
		},
		{
			name:        "echo error",
			env:         config.EnvDevelopment,
			err:         echo.ErrMethodNotAllowed,
			wantStatus:  http.StatusMethodNotAllowed,
			wantCode:    "METHOD_NOT_ALLOWED",
			wantMessage: "Method Not Allowed",
		},
		{
			name:        "unknown error in development",
			env:         config.EnvDevelopment,
			err:         errors.New("pq: relation does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: "pq: relation does not exist",
		},
		{
			name:        "unknown error in production",
			env:         config.EnvProduction,
			err:         errors.New("pq: relation does not exist"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    "INTERNAL_ERROR",
			wantMessage: genericErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, body := render(t, newErrorMiddleware(tt.env), tt.err)

			assert.Equal(t, tt.wantStatus, rec.Code)
			assert.Equal(t, tt.wantCode, body.Error.Code)
			assert.Equal(t, tt.wantMessage, body.Error.Message)
			if tt.wantDetails {
				assert.NotNil(t, body.Error.Details)
			} else {
				assert.Nil(t, body.Error.Details)
			}
		})
	}
}

func TestHandleHTTPError_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	require.NoError(t, c.String(http.StatusOK, "partial"))

	newErrorMiddleware(config.EnvDevelopment).HandleHTTPError(errors.New("late failure"), c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "partial", rec.Body.String())
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		header string
		want   string
		ok     bool
	}{
		{header: "Bearer abc.def", want: "abc.def", ok: true},
		{header: "bearer   abc", want: "abc", ok: true},
		{header: "Bearer ", ok: false},
		{header: "Basic abc", ok: false},
		{header: "", ok: false},
	}

	for _, tt := range tests {
		got, ok := bearerToken(tt.header)
		assert.Equal(t, tt.ok, ok, tt.header)
		assert.Equal(t, tt.want, got, tt.header)
	}
}
