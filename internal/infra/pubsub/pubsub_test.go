package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"pawparadise/config"
	"pawparadise/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newDiscardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestEvent() *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:  "req-123",
		Type:       service.EventOrderPlaced,
		OrderID:    "6a1f0c2e-0000-4000-8000-000000000001",
		UserID:     "6a1f0c2e-0000-4000-8000-000000000002",
		Status:     "pending",
		Total:      "37.99",
		ItemCount:  2,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_Publish(t *testing.T) {
	var (
		got       PushMessage
		requestID string
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger())
	require.NoError(t, publisher.PublishOrderEvent(context.Background(), newTestEvent()))

	assert.Equal(t, "req-123", requestID)
	assert.Equal(t, service.EventOrderPlaced, got.Message.Attributes["event_type"])
	assert.NotEmpty(t, got.Message.MessageID)
	assert.Equal(t, newTestEvent().OrderID, got.Message.OrderingKey)

	raw, err := base64.StdEncoding.DecodeString(got.Message.Data)
	require.NoError(t, err)

	var event service.OrderEvent
	require.NoError(t, json.Unmarshal(raw, &event))
	assert.Equal(t, "37.99", event.Total)
	assert.Equal(t, 2, event.ItemCount)
}

func TestLocalHTTPPublisher_RetriesServerErrors(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)

			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger()).(*localHTTPPublisher)
	publisher.retryDelay = time.Millisecond

	require.NoError(t, publisher.PublishOrderEvent(context.Background(), newTestEvent()))
	assert.Equal(t, 3, attempts)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		wantAttempts int
	}{
		{name: "client error is not retried", status: http.StatusBadRequest, wantAttempts: 1},
		{name: "server error gives up after max attempts", status: http.StatusBadGateway, wantAttempts: localMaxAttempts},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			attempts := 0
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
				attempts++
				w.WriteHeader(tt.status)
			}))
			defer server.Close()

			publisher := NewLocalHTTPPublisher(server.URL, newDiscardLogger()).(*localHTTPPublisher)
			publisher.retryDelay = time.Millisecond

			err := publisher.PublishOrderEvent(context.Background(), newTestEvent())
			assert.ErrorContains(t, err, strconv.Itoa(tt.status))
			assert.Equal(t, tt.wantAttempts, attempts)
		})
	}
}

func TestNoopPublisher(t *testing.T) {
	publisher := NewNoopPublisher(newDiscardLogger())
	assert.NoError(t, publisher.PublishOrderEvent(context.Background(), newTestEvent()))
	assert.NoError(t, publisher.Close())
}

func TestNewEventPublisher(t *testing.T) {
	tests := []struct {
		name    string
		events  *config.EventsConfig
		wantErr string
	}{
		{name: "nil config uses noop"},
		{name: "empty provider uses noop", events: &config.EventsConfig{}},
		{name: "local with endpoint", events: &config.EventsConfig{Provider: "local", LocalEndpoint: "http://localhost:9999/events"}},
		{name: "local without endpoint", events: &config.EventsConfig{Provider: "local"}, wantErr: "local endpoint is required"},
		{name: "google without project", events: &config.EventsConfig{Provider: "google"}, wantErr: "project ID is required"},
		{name: "google without topic", events: &config.EventsConfig{Provider: "google", ProjectID: "p"}, wantErr: "topic ID is required"},
		{name: "rabbitmq without url", events: &config.EventsConfig{Provider: "rabbitmq"}, wantErr: "AMQP URL is required"},
		{name: "rabbitmq without exchange", events: &config.EventsConfig{Provider: "rabbitmq", AMQPURL: "amqp://localhost"}, wantErr: "exchange is required"},
		{name: "unknown provider", events: &config.EventsConfig{Provider: "kafka"}, wantErr: "unknown event provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{Events: tt.events},
				Logger: newDiscardLogger(),
			})
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.NotNil(t, publisher)
		})
	}
}
