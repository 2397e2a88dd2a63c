package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func Test_MemoryCacheRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("roundtrip", func(t *testing.T) {
		cache := NewMemoryCacheRepository()

		type payload struct {
			Value float64 `json:"value"`
		}
		require.NoError(t, cache.Set(ctx, "key", payload{Value: 42.5}, time.Minute))

		var out payload
		require.NoError(t, cache.Get(ctx, "key", &out))
		require.Equal(t, 42.5, out.Value)
	})

	t.Run("absent key misses", func(t *testing.T) {
		cache := NewMemoryCacheRepository()

		var out string
		err := cache.Get(ctx, "nope", &out)
		require.ErrorIs(t, err, ErrCacheMiss)
	})

	t.Run("expired entry misses", func(t *testing.T) {
		cache := NewMemoryCacheRepository()
		require.NoError(t, cache.Set(ctx, "key", "value", -time.Second))

		var out string
		err := cache.Get(ctx, "key", &out)
		require.ErrorIs(t, err, ErrCacheMiss)
	})
}

func Test_NoOpCacheRepository(t *testing.T) {
	ctx := context.Background()
	cache := NewNoOpCacheRepository()

	require.NoError(t, cache.Set(ctx, "key", "value", time.Minute))

	var out string
	require.ErrorIs(t, cache.Get(ctx, "key", &out), ErrCacheMiss)
}
