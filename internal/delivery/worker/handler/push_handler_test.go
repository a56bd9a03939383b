package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"pawparadise/config"
	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/entity"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"
	mockrepo "pawparadise/internal/mocks/repository"
	mockservice "pawparadise/internal/mocks/service"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T) (*PushHandler, *mockrepo.MockOrderRepository, *mockservice.MockMetricsRecorder) {
	t.Helper()

	cfg := &config.Config{}
	cfg.ApplyDefaults()

	orderRepo := mockrepo.NewMockOrderRepository(t)
	recorder := mockservice.NewMockMetricsRecorder(t)

	h := NewPushHandler(PushHandlerParams{
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		OrderRepo: orderRepo,
		Metrics:   recorder,
	})

	return h, orderRepo, recorder
}

func pushBody(t *testing.T, event *service.OrderEvent) string {
	t.Helper()

	data, err := json.Marshal(event)
	require.NoError(t, err)

	var msg PubSubMessage
	msg.Subscription = "projects/local/subscriptions/order-events-sub"
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.MessageID = "m-1"
	msg.Message.Attributes = event.Attributes()

	body, err := json.Marshal(msg)
	require.NoError(t, err)

	return string(body)
}

func servePush(h *PushHandler, body string) *httptest.ResponseRecorder {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/push", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	_ = h.HandlePush(e.NewContext(req, rec))

	return rec
}

func placedEvent(orderID uuid.UUID) *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:  "req-42",
		Type:       service.EventOrderPlaced,
		OrderID:    orderID.String(),
		UserID:     uuid.NewString(),
		Status:     string(entity.OrderStatusPending),
		Total:      "54.99",
		ItemCount:  2,
		OccurredAt: time.Now().UTC(),
	}
}

func TestHandlePush_Processed(t *testing.T) {
	h, orderRepo, recorder := newTestHandler(t)
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(mock.Anything, orderID).
		RunAndReturn(func(ctx context.Context, _ uuid.UUID) (*entity.Order, error) {
			assert.Equal(t, "req-42", deliverycontext.GetRequestIDFromContext(ctx))

			return &entity.Order{ID: orderID, Status: entity.OrderStatusPending, Total: decimal.RequireFromString("54.99")}, nil
		})
	recorder.EXPECT().RecordOrderEvent(service.EventOrderPlaced, outcomeProcessed)

	rec := servePush(h, pushBody(t, placedEvent(orderID)))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_StaleStatusStillProcessed(t *testing.T) {
	h, orderRepo, recorder := newTestHandler(t)
	orderID := uuid.New()
	event := placedEvent(orderID)
	event.Type = service.EventOrderStatusChanged
	event.Status = string(entity.OrderStatusProcessing)
	event.PreviousStatus = string(entity.OrderStatusPending)

	orderRepo.EXPECT().FindByID(mock.Anything, orderID).
		Return(&entity.Order{ID: orderID, Status: entity.OrderStatusShipped}, nil)
	recorder.EXPECT().RecordOrderEvent(service.EventOrderStatusChanged, outcomeProcessed)

	rec := servePush(h, pushBody(t, event))

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandlePush_Dropped(t *testing.T) {
	tests := []struct {
		name  string
		event func() *service.OrderEvent
		setup func(orderRepo *mockrepo.MockOrderRepository, orderID uuid.UUID)
	}{
		{
			name: "unknown type",
			event: func() *service.OrderEvent {
				event := placedEvent(uuid.New())
				event.Type = "order.refunded"

				return event
			},
		},
		{
			name: "malformed order id",
			event: func() *service.OrderEvent {
				event := placedEvent(uuid.New())
				event.OrderID = "not-a-uuid"

				return event
			},
		},
		{
			name:  "order missing",
			event: func() *service.OrderEvent { return placedEvent(uuid.Nil) },
			setup: func(orderRepo *mockrepo.MockOrderRepository, orderID uuid.UUID) {
				orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(nil, repository.ErrOrderNotFound)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, orderRepo, recorder := newTestHandler(t)
			event := tt.event()
			if tt.setup != nil {
				tt.setup(orderRepo, uuid.MustParse(event.OrderID))
			}
			recorder.EXPECT().RecordOrderEvent(event.Type, outcomeDropped)

			rec := servePush(h, pushBody(t, event))

			assert.Equal(t, http.StatusOK, rec.Code)
		})
	}
}

func TestHandlePush_RetryOnStoreFailure(t *testing.T) {
	h, orderRepo, recorder := newTestHandler(t)
	orderID := uuid.New()

	orderRepo.EXPECT().FindByID(mock.Anything, orderID).Return(nil, errors.New("connection reset"))
	recorder.EXPECT().RecordOrderEvent(service.EventOrderPlaced, outcomeRetry)

	rec := servePush(h, pushBody(t, placedEvent(orderID)))

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestHandlePush_Rejected(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "not json", body: "{"},
		{name: "bad base64", body: `{"message":{"data":"%%%"}}`},
		{name: "bad event", body: `{"message":{"data":"` + base64.StdEncoding.EncodeToString([]byte("[1,2]")) + `"}}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, _, recorder := newTestHandler(t)
			recorder.EXPECT().RecordOrderEvent("unknown", outcomeRejected)

			rec := servePush(h, tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestNewPushHandler_VerifyPushAuth(t *testing.T) {
	tests := []struct {
		name     string
		provider string
		verify   bool
		want     bool
	}{
		{name: "google with verification", provider: "google", verify: true, want: true},
		{name: "google without verification", provider: "google", verify: false, want: false},
		{name: "local ignores flag", provider: "local", verify: true, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{Events: &config.EventsConfig{Provider: tt.provider}}
			cfg.ApplyDefaults()
			cfg.Worker.VerifyPushAuth = tt.verify

			h := NewPushHandler(PushHandlerParams{Config: cfg, Logger: slog.Default()})

			assert.Equal(t, tt.want, h.verifyPushAuth)
		})
	}
}

func TestVerifyPubSubToken_RejectsMissingBearer(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/push", nil)
	require.Error(t, verifyPubSubToken(req))

	req.Header.Set("Authorization", "Basic abc")
	require.Error(t, verifyPubSubToken(req))
}
