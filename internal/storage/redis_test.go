package storage

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupTestRedis creates a miniredis server and a RedisStore pointing at it.
func setupTestRedis(t *testing.T, ttl time.Duration) (*RedisStore, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{
		Addr: mr.Addr(),
	})
	store := NewRedisStore(client, "storefront:", ttl)
	t.Cleanup(func() { client.Close() })
	return store, mr
}

func TestRedisStore(t *testing.T) {
	store, _ := setupTestRedis(t, 0)
	exerciseStore(t, store)
}

func TestRedisStore_UsesPrefix(t *testing.T) {
	store, mr := setupTestRedis(t, 0)

	require.NoError(t, store.Set(context.Background(), "orders", `[]`))

	got, err := mr.Get("storefront:orders")
	require.NoError(t, err)
	assert.Equal(t, `[]`, got)
	assert.Zero(t, mr.TTL("storefront:orders"))
}

func TestRedisStore_AppliesTTL(t *testing.T) {
	store, mr := setupTestRedis(t, 24*time.Hour)

	require.NoError(t, store.Set(context.Background(), "storefront-cart", `[]`))
	assert.Equal(t, 24*time.Hour, mr.TTL("storefront:storefront-cart"))

	mr.FastForward(25 * time.Hour)
	_, err := store.Get(context.Background(), "storefront-cart")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRedisStore_ServerDown(t *testing.T) {
	store, mr := setupTestRedis(t, 0)
	mr.Close()

	_, err := store.Get(context.Background(), "orders")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.ErrorContains(t, err, "redis get failed")
}

func TestConnectRedis(t *testing.T) {
	mr := miniredis.RunT(t)

	client, err := ConnectRedis(context.Background(), "redis://"+mr.Addr()+"/0")
	require.NoError(t, err)
	client.Close()

	_, err = ConnectRedis(context.Background(), "not a url")
	require.ErrorContains(t, err, "invalid redis url")
}

func TestOpen_RedisBackendIsWrappedInBreaker(t *testing.T) {
	mr := miniredis.RunT(t)

	s, err := Open(context.Background(), Options{
		Backend:     "redis",
		RedisURL:    "redis://" + mr.Addr(),
		RedisPrefix: "sf:",
	}, slog.Default())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })

	assert.IsType(t, &BreakerStore{}, s)
	exerciseStore(t, s)
}
