package service

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by CatalogCache.Get when the key is absent.
var ErrCacheMiss = errors.New("cache miss")

// Catalog cache keys.
const (
	CacheKeyBrands     = "catalog:brands"
	CacheKeyCategories = "catalog:categories"
	CacheKeyPriceRange = "catalog:price-range"
)

// CatalogCache stores JSON-encoded catalog aggregates.
type CatalogCache interface {
	// Get decodes the cached value into dest or returns ErrCacheMiss.
	Get(ctx context.Context, key string, dest any) error

	Set(ctx context.Context, key string, value any, ttl time.Duration) error

	// Invalidate removes every catalog aggregate.
	Invalidate(ctx context.Context) error
}
