// Package pubsub publishes order events to the configured broker: Google
// Pub/Sub, RabbitMQ, or the local order worker over HTTP in development.
package pubsub

import (
	"context"
	"log/slog"

	"pawparadise/config"
	"pawparadise/internal/domain/constants"
	"pawparadise/internal/domain/service"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// noopPublisher drops events when no provider is configured.
type noopPublisher struct {
	logger *slog.Logger
}

func NewNoopPublisher(logger *slog.Logger) service.EventPublisher {
	return &noopPublisher{logger: logger}
}

func (p *noopPublisher) PublishOrderEvent(_ context.Context, event *service.OrderEvent) error {
	p.logger.Debug("[NoopPubSub] Event publishing disabled, skipping",
		slog.String("event_type", event.Type),
		slog.String("order_id", event.OrderID),
	)

	return nil
}

func (p *noopPublisher) Close() error {
	return nil
}

// PublisherParams holds dependencies for EventPublisher, injected by Fx
type PublisherParams struct {
	fx.In

	Lc     fx.Lifecycle
	Ctx    context.Context
	Config *config.Config
	Logger *slog.Logger
}

type requiredSetting struct {
	value string
	err   string
}

func checkRequired(settings ...requiredSetting) error {
	for _, s := range settings {
		if s.value == "" {
			return errors.New(s.err)
		}
	}

	return nil
}

// NewEventPublisher picks the publisher for events.provider and closes it on stop.
func NewEventPublisher(params PublisherParams) (service.EventPublisher, error) {
	cfg := params.Config.Events
	logger := params.Logger

	if cfg == nil || cfg.Provider == "" {
		logger.Info("Order events not configured, using no-op publisher")

		return NewNoopPublisher(logger), nil
	}

	var (
		publisher service.EventPublisher
		err       error
	)
	switch cfg.Provider {
	case constants.EventProviderLocal:
		if err = checkRequired(requiredSetting{cfg.LocalEndpoint, "local endpoint is required for local provider"}); err == nil {
			publisher = NewLocalHTTPPublisher(cfg.LocalEndpoint, logger)
		}
	case constants.EventProviderGoogle:
		err = checkRequired(
			requiredSetting{cfg.ProjectID, "project ID is required for google provider"},
			requiredSetting{cfg.TopicID, "topic ID is required for google provider"},
		)
		if err == nil {
			publisher, err = NewGooglePubSubPublisher(params.Ctx, cfg.ProjectID, cfg.TopicID, logger)
		}
	case constants.EventProviderRabbitMQ:
		err = checkRequired(
			requiredSetting{cfg.AMQPURL, "AMQP URL is required for rabbitmq provider"},
			requiredSetting{cfg.Exchange, "exchange is required for rabbitmq provider"},
		)
		if err == nil {
			publisher, err = NewRabbitMQPublisher(cfg.AMQPURL, cfg.Exchange, logger)
		}
	default:
		err = errors.Errorf("unknown event provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}

	logger.Info("Order event publisher ready", slog.String("provider", cfg.Provider))

	params.Lc.Append(fx.Hook{
		OnStop: func(_ context.Context) error {
			return publisher.Close()
		},
	})

	return publisher, nil
}

// Module provides the event publisher FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewEventPublisher),
)
