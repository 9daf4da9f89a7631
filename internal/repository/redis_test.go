package repository

import (
	"context"
	"testing"
	"time"

	"shareit/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRedisRateLimitStore(t *testing.T) {
	s, err := miniredis.Run()
	require.NoError(t, err)
	defer s.Close()

	client := NewRedisClient(config.RedisConfig{Address: s.Addr()})
	defer client.Close()

	store := NewRedisRateLimitStore(client)
	ctx := context.Background()

	t.Run("RateLimit", func(t *testing.T) {
		key := "user:789"
		limit := 2
		window := time.Second

		allowed, err := store.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = store.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)

		// Third request (exceeds limit)
		allowed, err = store.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.False(t, allowed)

		assert.True(t, s.Exists(rateLimitPrefix+key))
		assert.Equal(t, window, s.TTL(rateLimitPrefix+key))

		s.FastForward(window + time.Millisecond)

		allowed, err = store.CheckRateLimit(ctx, key, limit, window)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("KeysAreIndependent", func(t *testing.T) {
		allowed, err := store.CheckRateLimit(ctx, "user:1", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)

		allowed, err = store.CheckRateLimit(ctx, "user:2", 1, time.Minute)
		require.NoError(t, err)
		assert.True(t, allowed)
	})

	t.Run("NilClient", func(t *testing.T) {
		_, err := NewRedisRateLimitStore(nil).CheckRateLimit(ctx, "k", 1, time.Second)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "redis client is nil")
	})

	t.Run("ServerDown", func(t *testing.T) {
		down := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
		defer down.Close()

		_, err := NewRedisRateLimitStore(down).CheckRateLimit(ctx, "k", 1, time.Second)
		assert.Error(t, err)
		assert.Error(t, Ping(ctx, down))
	})

	t.Run("Ping", func(t *testing.T) {
		assert.NoError(t, Ping(ctx, client))
	})

	t.Run("Close", func(t *testing.T) {
		assert.NoError(t, Close(nil))
	})
}
