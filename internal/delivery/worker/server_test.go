package worker

import (
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"pawparadise/config"
	"pawparadise/internal/delivery/worker/handler"
	"pawparadise/internal/infra/metrics"
	mockrepo "pawparadise/internal/mocks/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEcho_Routes(t *testing.T) {
	cfg := &config.Config{}
	cfg.ApplyDefaults()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	m := metrics.New()

	e := NewEcho(ServerParams{
		Cfg:     cfg,
		Logger:  logger,
		Metrics: m,
		PushHandler: handler.NewPushHandler(handler.PushHandlerParams{
			Config:    cfg,
			Logger:    logger,
			OrderRepo: mockrepo.NewMockOrderRepository(t),
			Metrics:   metrics.NewRecorder(m),
		}),
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())

	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `pawparadise_order_events_consumed_total{outcome="rejected",type="unknown"} 1`)
}
