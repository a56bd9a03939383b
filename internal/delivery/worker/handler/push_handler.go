package handler

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"pawparadise/config"
	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/constants"
	"pawparadise/internal/domain/entity"
	"pawparadise/internal/domain/repository"
	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
	"google.golang.org/api/idtoken"
)

// Outcomes reported to the metrics recorder.
const (
	outcomeProcessed = "processed"
	outcomeDropped   = "dropped"
	outcomeRetry     = "retry"
	outcomeRejected  = "rejected"
)

// PubSubMessage is the body Pub/Sub (and the local publisher) push to subscribers.
type PubSubMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// retryableError marks a failure that should make Pub/Sub redeliver the message.
type retryableError struct {
	err error
}

func (e *retryableError) Error() string {
	return fmt.Sprintf("retryable: %v", e.err)
}

func (e *retryableError) Unwrap() error {
	return e.err
}

func newRetryableError(err error) error {
	return &retryableError{err: err}
}

func isRetryableError(err error) bool {
	var re *retryableError

	return errors.As(err, &re)
}

// errDropEvent marks a message that can never succeed. It is acknowledged so
// Pub/Sub stops redelivering it.
var errDropEvent = errors.New("event dropped")

// PushHandler receives order events and reconciles them against the order store.
type PushHandler struct {
	verifyPushAuth bool
	logger         *slog.Logger
	orderRepo      repository.OrderRepository
	metrics        service.MetricsRecorder
}

// PushHandlerParams holds dependencies for the PushHandler
type PushHandlerParams struct {
	fx.In

	Config    *config.Config
	Logger    *slog.Logger
	OrderRepo repository.OrderRepository
	Metrics   service.MetricsRecorder
}

// NewPushHandler creates a new order event push handler
func NewPushHandler(params PushHandlerParams) *PushHandler {
	cfg := params.Config
	verifyPushAuth := cfg.Worker != nil && cfg.Worker.VerifyPushAuth &&
		cfg.Events != nil && cfg.Events.Provider == constants.EventProviderGoogle

	return &PushHandler{
		verifyPushAuth: verifyPushAuth,
		logger:         params.Logger,
		orderRepo:      params.OrderRepo,
		metrics:        params.Metrics,
	}
}

// HandlePush acknowledges with 2xx unless the failure is worth a redelivery.
func (h *PushHandler) HandlePush(c echo.Context) error {
	ctx := c.Request().Context()

	if h.verifyPushAuth {
		if err := verifyPubSubToken(c.Request()); err != nil {
			h.logger.Warn("[Worker] Invalid Pub/Sub token", slog.Any("error", err))

			return c.NoContent(http.StatusUnauthorized)
		}
	}

	event, pushMsg, err := decodePush(c)
	if err != nil {
		h.logger.Error("[Worker] Failed to decode push message", slog.Any("error", err))
		h.metrics.RecordOrderEvent("unknown", outcomeRejected)

		return c.NoContent(http.StatusBadRequest)
	}

	requestID := h.extractRequestID(ctx, pushMsg, event)
	reqLogger := h.logger.With(slog.String("request_id", requestID))
	ctx = deliverycontext.WithRequestID(ctx, requestID)
	ctx = deliverycontext.WithLogger(ctx, reqLogger)

	reqLogger.Info("[Worker] Processing order event",
		slog.String("message_id", pushMsg.Message.MessageID),
		slog.String("type", event.Type),
		slog.String("order_id", event.OrderID),
	)

	err = h.processEvent(ctx, event)
	switch {
	case err == nil:
		h.metrics.RecordOrderEvent(event.Type, outcomeProcessed)

		return c.NoContent(http.StatusOK)
	case isRetryableError(err):
		reqLogger.Error("[Worker] Order event failed, requesting redelivery",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
		h.metrics.RecordOrderEvent(event.Type, outcomeRetry)

		return c.NoContent(http.StatusServiceUnavailable)
	default:
		reqLogger.Warn("[Worker] Order event dropped",
			slog.String("order_id", event.OrderID),
			slog.Any("error", err),
		)
		h.metrics.RecordOrderEvent(event.Type, outcomeDropped)

		return c.NoContent(http.StatusOK)
	}
}

func decodePush(c echo.Context) (*service.OrderEvent, *PubSubMessage, error) {
	var pushMsg PubSubMessage
	if err := c.Bind(&pushMsg); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse push body")
	}

	data, err := base64.StdEncoding.DecodeString(pushMsg.Message.Data)
	if err != nil {
		return nil, nil, errors.Wrap(err, "failed to decode message data")
	}

	var event service.OrderEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, nil, errors.Wrap(err, "failed to parse order event")
	}

	return &event, &pushMsg, nil
}

// extractRequestID prefers message attributes, then the event payload, then the header.
func (h *PushHandler) extractRequestID(ctx context.Context, pushMsg *PubSubMessage, event *service.OrderEvent) string {
	if requestID := pushMsg.Message.Attributes["request_id"]; requestID != "" {
		return requestID
	}

	if event.RequestID != "" {
		return event.RequestID
	}

	if requestID := deliverycontext.GetRequestIDFromContext(ctx); requestID != "" {
		return requestID
	}

	return uuid.New().String()
}

// processEvent checks the event against the stored order. Events that lag
// behind the store are expected under at-least-once delivery and only logged.
func (h *PushHandler) processEvent(ctx context.Context, event *service.OrderEvent) error {
	logger := deliverycontext.GetLoggerOrDefault(ctx, h.logger)

	if event.Type != service.EventOrderPlaced && event.Type != service.EventOrderStatusChanged {
		return errors.Wrapf(errDropEvent, "unknown event type %q", event.Type)
	}

	orderID, err := uuid.Parse(event.OrderID)
	if err != nil {
		return errors.Wrapf(errDropEvent, "malformed order id %q", event.OrderID)
	}

	order, err := h.orderRepo.FindByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return errors.Wrapf(errDropEvent, "order %s not found", orderID)
		}

		return newRetryableError(errors.Wrap(err, "failed to load order"))
	}

	if string(order.Status) != event.Status {
		logger.Info("[Worker] Event status is behind the stored order",
			slog.String("order_id", event.OrderID),
			slog.String("event_status", event.Status),
			slog.String("stored_status", string(order.Status)),
		)
	}

	switch event.Type {
	case service.EventOrderPlaced:
		logger.Info("[Worker] Order placed",
			slog.String("order_id", event.OrderID),
			slog.String("user_id", event.UserID),
			slog.String("total", order.Total.StringFixed(2)),
			slog.Int("item_count", event.ItemCount),
		)
	case service.EventOrderStatusChanged:
		logger.Info("[Worker] Order status changed",
			slog.String("order_id", event.OrderID),
			slog.String("from", event.PreviousStatus),
			slog.String("to", event.Status),
			slog.Bool("terminal", entity.OrderStatus(event.Status).IsTerminal()),
		)
	}

	return nil
}

// verifyPubSubToken validates the Google-signed OIDC token on a push request.
// Reference: https://cloud.google.com/pubsub/docs/push#authenticating_standard_push_requests
func verifyPubSubToken(req *http.Request) error {
	authHeader := req.Header.Get("Authorization")
	if authHeader == "" {
		return errors.New("missing authorization header")
	}

	const bearerPrefix = "Bearer "
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return errors.New("invalid authorization header format")
	}
	token := strings.TrimPrefix(authHeader, bearerPrefix)

	// The audience is the push endpoint URL
	scheme := "https"
	if req.TLS == nil {
		scheme = "http"
	}
	audience := fmt.Sprintf("%s://%s%s", scheme, req.Host, req.URL.Path)

	payload, err := idtoken.Validate(req.Context(), token, audience)
	if err != nil {
		return errors.Wrap(err, "failed to validate token")
	}

	if payload.Issuer != "accounts.google.com" && payload.Issuer != "https://accounts.google.com" {
		return errors.Errorf("invalid issuer: %s", payload.Issuer)
	}

	if emailVerified, ok := payload.Claims["email_verified"].(bool); ok && !emailVerified {
		return errors.New("email not verified")
	}

	return nil
}
