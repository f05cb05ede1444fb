package redis

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/techempire/storefront/internal/domain/build"
	"github.com/techempire/storefront/internal/domain/cart"
	"github.com/techempire/storefront/internal/domain/catalog"
	"github.com/techempire/storefront/internal/pkg/logger"
)

// testClient connects to TEST_REDIS_ADDR or skips the test
func testClient(t *testing.T) *redis.Client {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = rdb.Close() })
	require.NoError(t, rdb.Ping(context.Background()).Err())
	return rdb
}

func TestKeys(t *testing.T) {
	assert.Equal(t, "techempire-cart:abc", CartKey("abc"))
	assert.Equal(t, "techempire-build:abc", BuildKey("abc"))
}

func TestCartStoreRoundTrip(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	sid := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, CartKey(sid)) })

	store := NewCartStore(rdb, sid, time.Minute)

	entries, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Nil(t, entries)

	want := []cart.Entry{
		{ID: 1, Name: "Мышь", Price: 100, Category: catalog.CategoryMice, Quantity: 2},
		{ID: 2, Name: "Клавиатура", Price: 300, Category: catalog.CategoryKeyboards, Quantity: 1},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	ttl, err := rdb.TTL(ctx, CartKey(sid)).Result()
	require.NoError(t, err)
	assert.Greater(t, ttl, time.Duration(0))
}

func TestCartStoreCorruptBlob(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	sid := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, CartKey(sid)) })

	require.NoError(t, rdb.Set(ctx, CartKey(sid), "{not json", time.Minute).Err())

	c := cart.Load(ctx, NewCartStore(rdb, sid, time.Minute), logger.Discard())
	assert.True(t, c.IsEmpty())
}

func TestBuildStoreRoundTrip(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	sid := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, BuildKey(sid)) })

	store := BuildStores(rdb, time.Minute)(sid)

	want := map[catalog.Category]build.Component{
		catalog.CategoryProcessors: {ID: 5, Name: "AMD Ryzen 7 7700X", Price: 3299000, Category: catalog.CategoryProcessors},
	}
	require.NoError(t, store.Save(ctx, want))

	got, err := store.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestRateLimiter(t *testing.T) {
	rdb := testClient(t)
	ctx := context.Background()
	key := uuid.NewString()
	t.Cleanup(func() { rdb.Del(ctx, "rate_limit:"+key) })

	limiter := NewRateLimiter(rdb, 2, time.Minute)

	d, err := limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 1, d.Remaining)

	d, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.True(t, d.Allowed)
	assert.Equal(t, 0, d.Remaining)

	d, err = limiter.Allow(ctx, key)
	require.NoError(t, err)
	assert.False(t, d.Allowed)
	assert.LessOrEqual(t, d.ResetIn, time.Minute)
}
