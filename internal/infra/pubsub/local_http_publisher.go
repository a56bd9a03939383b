package pubsub

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"pawparadise/internal/domain/service"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

const (
	localSubscription   = "projects/local/subscriptions/order-events-sub"
	localMaxAttempts    = 3
	localRetryBaseDelay = 200 * time.Millisecond
)

// PushMessage is the envelope Pub/Sub POSTs to push subscribers.
type PushMessage struct {
	Message struct {
		Data        string            `json:"data"`
		Attributes  map[string]string `json:"attributes,omitempty"`
		MessageID   string            `json:"messageId"`
		OrderingKey string            `json:"orderingKey,omitempty"`
		PublishTime string            `json:"publishTime"`
	} `json:"message"`
	Subscription string `json:"subscription"`
}

// localHTTPPublisher pushes events straight to the order worker in development.
// Like Pub/Sub it redelivers when the subscriber answers 5xx.
type localHTTPPublisher struct {
	endpoint   string
	httpClient *http.Client
	retryDelay time.Duration
	logger     *slog.Logger
}

func NewLocalHTTPPublisher(endpoint string, logger *slog.Logger) service.EventPublisher {
	return &localHTTPPublisher{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		retryDelay: localRetryBaseDelay,
		logger:     logger,
	}
}

func newPushMessage(event *service.OrderEvent) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	var msg PushMessage
	msg.Subscription = localSubscription
	msg.Message.Data = base64.StdEncoding.EncodeToString(data)
	msg.Message.Attributes = event.Attributes()
	msg.Message.MessageID = uuid.NewString()
	msg.Message.OrderingKey = event.OrderID
	msg.Message.PublishTime = time.Now().UTC().Format(time.RFC3339Nano)

	body, err := json.Marshal(msg)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return body, nil
}

func (p *localHTTPPublisher) PublishOrderEvent(ctx context.Context, event *service.OrderEvent) error {
	body, err := newPushMessage(event)
	if err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= localMaxAttempts; attempt++ {
		retry, err := p.push(ctx, body, event.RequestID)
		if err == nil {
			p.logger.Debug("[LocalPubSub] Event delivered",
				slog.String("event_type", event.Type),
				slog.String("order_id", event.OrderID),
				slog.Int("attempt", attempt),
			)

			return nil
		}
		lastErr = err
		if !retry || attempt == localMaxAttempts {
			break
		}

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(p.retryDelay * time.Duration(attempt)):
		}
	}

	return lastErr
}

// push reports whether a failed delivery is worth retrying.
func (p *localHTTPPublisher) push(ctx context.Context, body []byte, requestID string) (bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(body))
	if err != nil {
		return false, errors.WithStack(err)
	}
	req.Header.Set("Content-Type", "application/json")
	if requestID != "" {
		req.Header.Set("X-Request-Id", requestID)
	}

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return true, errors.Wrap(err, "event endpoint unreachable")
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		return false, nil
	case resp.StatusCode >= 500:
		return true, errors.Errorf("event endpoint returned status %d", resp.StatusCode)
	default:
		return false, errors.Errorf("event endpoint rejected event with status %d", resp.StatusCode)
	}
}

func (p *localHTTPPublisher) Close() error {
	p.httpClient.CloseIdleConnections()

	return nil
}
