package impl

import (
	"context"
	"log/slog"
	"time"

	deliverycontext "pawparadise/internal/delivery/context"
	"pawparadise/internal/domain/entity"
	"pawparadise/internal/domain/service"
)

// Operation labels reported to the metrics recorder.
const (
	operationPlaceOrder   = "place_order"
	operationUpdateStatus = "update_status"
)

func newOrderEvent(ctx context.Context, eventType string, order *entity.Order, previous entity.OrderStatus) *service.OrderEvent {
	return &service.OrderEvent{
		RequestID:      deliverycontext.GetRequestIDFromContext(ctx),
		Type:           eventType,
		OrderID:        order.ID.String(),
		UserID:         order.UserID.String(),
		Status:         string(order.Status),
		PreviousStatus: string(previous),
		Total:          order.Total.StringFixed(2),
		ItemCount:      order.ItemCount(),
		OccurredAt:     time.Now().UTC(),
	}
}

// publishOrderEvent runs after the transaction committed. The write already
// succeeded, so a failed publish is only logged.
func publishOrderEvent(ctx context.Context, publisher service.EventPublisher, logger *slog.Logger, event *service.OrderEvent) {
	if err := publisher.PublishOrderEvent(ctx, event); err != nil {
		logger.Warn("Failed to publish order event",
			slog.String("type", event.Type),
			slog.String("orderID", event.OrderID),
			slog.Any("error", err),
		)
	}
}
