package service

import (
	"context"
	"time"
)

// Order event types.
const (
	EventOrderPlaced        = "order.placed"
	EventOrderStatusChanged = "order.status_changed"
)

// OrderEvent is published after an order write commits.
type OrderEvent struct {
	RequestID      string    `json:"request_id,omitempty"` // For distributed tracing
	Type           string    `json:"type"`
	OrderID        string    `json:"order_id"`
	UserID         string    `json:"user_id"`
	Status         string    `json:"status"`
	PreviousStatus string    `json:"previous_status,omitempty"`
	Total          string    `json:"total"`
	ItemCount      int       `json:"item_count"`
	OccurredAt     time.Time `json:"occurred_at"`
}

// Attributes returns the message attributes used for routing and filtering.
func (e *OrderEvent) Attributes() map[string]string {
	attributes := map[string]string{
		"event_type": e.Type,
		"order_id":   e.OrderID,
		"status":     e.Status,
	}
	if e.RequestID != "" {
		attributes["request_id"] = e.RequestID
	}

	return attributes
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishOrderEvent publishes an order lifecycle event
	PublishOrderEvent(ctx context.Context, event *OrderEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
