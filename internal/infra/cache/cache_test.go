package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"pawparadise/internal/domain/entity"
	"pawparadise/internal/domain/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisCache(t *testing.T) (*miniredis.Miniredis, service.CatalogCache) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	return mr, NewRedisCache(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRedisCache_SetGet(t *testing.T) {
	_, c := newTestRedisCache(t)
	ctx := context.Background()

	want := entity.PriceRange{Min: decimal.RequireFromString("4.99"), Max: decimal.RequireFromString("129.00")}
	require.NoError(t, c.Set(ctx, service.CacheKeyPriceRange, want, time.Minute))

	var got entity.PriceRange
	require.NoError(t, c.Get(ctx, service.CacheKeyPriceRange, &got))
	assert.True(t, want.Min.Equal(got.Min))
	assert.True(t, want.Max.Equal(got.Max))
}

func TestRedisCache_Miss(t *testing.T) {
	_, c := newTestRedisCache(t)

	var brands []string
	err := c.Get(context.Background(), service.CacheKeyBrands, &brands)
	assert.ErrorIs(t, err, service.ErrCacheMiss)
}

func TestRedisCache_TTL(t *testing.T) {
	mr, c := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, service.CacheKeyBrands, []string{"Tuggo"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var brands []string
	assert.ErrorIs(t, c.Get(ctx, service.CacheKeyBrands, &brands), service.ErrCacheMiss)
}

func TestRedisCache_Invalidate(t *testing.T) {
	mr, c := newTestRedisCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, service.CacheKeyBrands, []string{"Tuggo"}, time.Minute))
	require.NoError(t, c.Set(ctx, service.CacheKeyCategories, []string{"toys"}, time.Minute))
	require.NoError(t, c.Invalidate(ctx))

	assert.False(t, mr.Exists(service.CacheKeyBrands))
	assert.False(t, mr.Exists(service.CacheKeyCategories))
}

func TestRedisCache_CorruptEntryIsMiss(t *testing.T) {
	mr, c := newTestRedisCache(t)
	require.NoError(t, mr.Set(service.CacheKeyBrands, "{not json"))

	var brands []string
	err := c.Get(context.Background(), service.CacheKeyBrands, &brands)
	assert.ErrorIs(t, err, service.ErrCacheMiss)
	assert.False(t, mr.Exists(service.CacheKeyBrands))
}

func TestNoopCache(t *testing.T) {
	c := NewNoopCache()
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, service.CacheKeyBrands, []string{"Tuggo"}, time.Minute))

	var brands []string
	assert.ErrorIs(t, c.Get(ctx, service.CacheKeyBrands, &brands), service.ErrCacheMiss)
	assert.NoError(t, c.Invalidate(ctx))
}
