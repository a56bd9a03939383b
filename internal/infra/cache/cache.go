// Package cache provides the catalog aggregate cache. Redis backs it when
// configured; otherwise every lookup misses.
package cache

import (
	"context"
	"log/slog"

	"pawparadise/config"
	"pawparadise/internal/domain/lifecycle"
	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"

	"github.com/go-redis/redis/v8"
	"go.uber.org/fx"
)

// Params defines the required parameters
type Params struct {
	fx.In
	fx.Lifecycle

	Config *config.Config
	Logger *slog.Logger
}

// New selects the cache backend from config.
func New(params Params) service.CatalogCache {
	cfg := params.Config.Redis
	if cfg == nil || cfg.Addr == "" {
		params.Logger.Info("Redis not configured, catalog cache disabled")

		return NewNoopCache()
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
		PoolSize: cfg.PoolSize,
	})

	params.Append(fx.Hook{
		OnStart: func(startCtx context.Context) error {
			ctx, cancel := context.WithTimeout(startCtx, lifecycle.DefaultTimeout)
			defer cancel()

			if err := client.Ping(ctx).Err(); err != nil {
				return errors.Wrap(err, "failed to ping Redis")
			}

			return nil
		},
		OnStop: func(_ context.Context) error {
			return client.Close()
		},
	})

	return NewRedisCache(client, params.Logger)
}
