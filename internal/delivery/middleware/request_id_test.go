package middleware

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	deliverycontext "pawparadise/internal/delivery/context"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware_Process(t *testing.T) {
	tests := []struct {
		name      string
		header    string
		wantReuse bool
	}{
		{name: "reuses client id", header: "abc-123", wantReuse: true},
		{name: "generates when missing"},
		{name: "replaces oversized id", header: strings.Repeat("x", maxRequestIDLength+1)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(deliverycontext.HeaderXRequestID, tt.header)
			}
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			mw := NewRequestIDMiddleware(slog.New(slog.NewTextHandler(io.Discard, nil)))

			var ctxID string
			err := mw.Process(func(c echo.Context) error {
				ctxID = deliverycontext.GetRequestIDFromContext(c.Request().Context())
				assert.NotNil(t, deliverycontext.GetLogger(c.Request().Context()))

				return nil
			})(c)
			require.NoError(t, err)

			headerID := rec.Header().Get(deliverycontext.HeaderXRequestID)
			assert.Equal(t, headerID, ctxID)
			assert.Equal(t, headerID, deliverycontext.GetRequestID(c))

			if tt.wantReuse {
				assert.Equal(t, tt.header, headerID)
			} else {
				_, parseErr := uuid.Parse(headerID)
				assert.NoError(t, parseErr)
			}
		})
	}
}
