package memory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/undefinedlabs/go-mpatch"

	"inkwell/internal/blog/adapters/memory"
)

func safeUnpatch(t *testing.T, patch *mpatch.Patch) {
	t.Helper()

	if err := patch.Unpatch(); err != nil {
		t.Logf("failed to unpatch: %v", err)
	}
}

// patchClock замораживает time.Now и возвращает функцию перевода часов.
func patchClock(t *testing.T) func(d time.Duration) {
	t.Helper()

	current := time.Now()
	patch, err := mpatch.PatchMethod(time.Now, func() time.Time {
		return current
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		safeUnpatch(t, patch)
	})

	return func(d time.Duration) {
		current = current.Add(d)
	}
}

func TestAllowUpToLimit(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRateLimitStore()

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
	ctx := context.Background()
	store := memory.NewRateLimitStore()

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
	advance := patchClock(t)

	ctx := context.Background()
	store := memory.NewRateLimitStore()

	ok, err := store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.False(t, ok)

	advance(time.Minute + time.Second)

	ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

// Отклоненные запросы не продлевают окно и не двигают счетчик.
func TestDeniedRequestsDoNotExtendWindow(t *testing.T) {
	advance := patchClock(t)

	ctx := context.Background()
	store := memory.NewRateLimitStore()

	ok, err := store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	require.True(t, ok)

	for i := 0; i < 5; i++ {
		advance(10 * time.Second)
		ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
		require.NoError(t, err)
		require.False(t, ok)
	}

	// Окно открылось первым запросом и истекло, несмотря на отказы внутри.
	advance(11 * time.Second)

	ok, err = store.Allow(ctx, "client-1", 1, time.Minute)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestAllowConcurrentRequests(t *testing.T) {
	ctx := context.Background()
	store := memory.NewRateLimitStore()

	const workers = 20
	const limit = 10

	var wg sync.WaitGroup
	allowed := make(chan bool, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := store.Allow(ctx, "client-1", limit, time.Minute)
			require.NoError(t, err)
			allowed <- ok
		}()
	}
	wg.Wait()
	close(allowed)

	passed := 0
	for ok := range allowed {
		if ok {
			passed++
		}
	}
	assert.Equal(t, limit, passed)
}
