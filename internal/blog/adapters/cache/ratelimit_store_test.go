package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/blog/adapters/cache"
)

func TestAllowUpToLimit(t *testing.T) {
	_, client := mockRedisServer(t)
	ctx := context.Background()

	store := cache.NewRateLimitStore(client)

	for i := 0; i < 3; i++ {
		ok, err := store.Allow(ctx, "client-1", 3, time.Minute)
		require.NoError(t, err)
		assert.True(t, ok, "request %d must pass", i+1)
	}

	ok, err := store.Allow(ctx, "client-1", 3, time.Minute)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAllowIsolatesIdentifiers(t *testing.T) {
	_, client := mockRedisServer(t)
	ctx := context.Background()

	store := cache.NewRateLimitStore(client)

	ok, err := store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	ok, err = store.Allow(ctx, "client-2", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowResetsAfterWindow(t *testing.T) {
	s, client := mockRedisServer(t)
	ctx := context.Background()

	store := cache.NewRateLimitStore(client)

	ok, err := store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	s.FastForward(2 * time.Minute)

	ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowSetsWindowTTLOnce(t *testing.T) {
	s, client := mockRedisServer(t)
	ctx := context.Background()

	store := cache.NewRateLimitStore(client)

	_, err := store.Allow(ctx, "client-1", 10, time.Minute)
	require.NoError(t, err)

	first := s.TTL("ratelimit:client-1")
	require.Greater(t, first, time.Duration(0))

	s.FastForward(10 * time.Second)

	// Повторный запрос не продлевает уже открытое окно.
	_, err = store.Allow(ctx, "client-1", 10, time.Minute)
	require.NoError(t, err)

	assert.Less(t, s.TTL("ratelimit:client-1"), first)
}

func TestAllowStoreUnavailable(t *testing.T) {
	s, client := mockRedisServer(t)
	ctx := context.Background()

	store := cache.NewRateLimitStore(client)
	s.Close()

	ok, err := store.Allow(ctx, "client-1", 1, time.Minute)
	assert.Error(t, err)
	assert.False(t, ok)
}
