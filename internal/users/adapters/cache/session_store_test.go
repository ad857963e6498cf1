package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"newsnotes/internal/users/adapters/cache"
)

func setupStore(t *testing.T) (*miniredis.Miniredis, *redis.Client) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, client
}

func TestRedisSessionStore(t *testing.T) {
	ctx := context.Background()

	t.Run("revoked session is reported until ttl passes", func(t *testing.T) {
		mr, client := setupStore(t)
		store := cache.NewRedisSessionStore(client)

		revoked, err := store.IsRevoked(ctx, "session-1")
		require.NoError(t, err)
		assert.False(t, revoked)

		require.NoError(t, store.Revoke(ctx, "session-1", time.Minute))

		revoked, err = store.IsRevoked(ctx, "session-1")
		require.NoError(t, err)
		assert.True(t, revoked)
		assert.Equal(t, time.Minute, mr.TTL("session:revoked:session-1"))

		mr.FastForward(2 * time.Minute)

		revoked, err = store.IsRevoked(ctx, "session-1")
		require.NoError(t, err)
		assert.False(t, revoked)
	})

	t.Run("expired session is not stored", func(t *testing.T) {
		mr, client := setupStore(t)
		store := cache.NewRedisSessionStore(client)

		require.NoError(t, store.Revoke(ctx, "session-2", 0))
		assert.False(t, mr.Exists("session:revoked:session-2"))
	})

	t.Run("redis unavailable", func(t *testing.T) {
		mr, client := setupStore(t)
		store := cache.NewRedisSessionStore(client)
		mr.Close()

		assert.Error(t, store.Revoke(ctx, "session-3", time.Minute))
		_, err := store.IsRevoked(ctx, "session-3")
		assert.Error(t, err)
	})
}
