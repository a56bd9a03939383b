package cache

import (
	"context"
	"encoding/json"
	"log/slog"
	"time"

	"pawparadise/internal/domain/service"
	"pawparadise/internal/errors"

	"github.com/go-redis/redis/v8"
)

var catalogKeys = []string{
	service.CacheKeyBrands,
	service.CacheKeyCategories,
	service.CacheKeyPriceRange,
}

type redisCache struct {
	client *redis.Client
	logger *slog.Logger
}

// NewRedisCache wraps an existing client.
func NewRedisCache(client *redis.Client, logger *slog.Logger) service.CatalogCache {
	return &redisCache{client: client, logger: logger}
}

func (c *redisCache) Get(ctx context.Context, key string, dest any) error {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return service.ErrCacheMiss
		}

		return errors.Wrapf(err, "failed to read cache key %s", key)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		// A stale layout is treated as a miss and overwritten by the caller.
		c.logger.Warn("Dropping undecodable cache entry", slog.String("key", key), slog.Any("error", err))
		c.client.Del(ctx, key)

		return service.ErrCacheMiss
	}

	return nil
}

func (c *redisCache) Set(ctx context.Context, key string, value any, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return errors.Wrapf(err, "failed to encode cache key %s", key)
	}

	if err := c.client.Set(ctx, key, data, ttl).Err(); err != nil {
		return errors.Wrapf(err, "failed to write cache key %s", key)
	}

	return nil
}

func (c *redisCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, catalogKeys...).Err(); err != nil {
		return errors.Wrap(err, "failed to invalidate catalog cache")
	}

	return nil
}
