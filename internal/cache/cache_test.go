package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	Breed string `json:"breed"`
	Score int    `json:"score"`
}

func setupTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	c := NewFromClient(client, "test:")
	t.Cleanup(func() { _ = c.Close() })
	return c, mr
}

func TestRedisCache_RoundTrip(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Ping(ctx))
	require.NoError(t, c.SetJSON(ctx, "k", entry{Breed: "Beagle", Score: 88}, time.Minute))
	assert.True(t, mr.Exists("test:k"))

	var got entry
	found, err := c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, entry{Breed: "Beagle", Score: 88}, got)
}

func TestRedisCache_Miss(t *testing.T) {
	c, _ := setupTestCache(t)

	var got entry
	found, err := c.GetJSON(context.Background(), "absent", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_Expiry(t *testing.T) {
	c, mr := setupTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.SetJSON(ctx, "k", entry{Breed: "Pug"}, time.Minute))
	mr.FastForward(2 * time.Minute)

	var got entry
	found, err := c.GetJSON(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCache_CorruptValue(t *testing.T) {
	c, mr := setupTestCache(t)
	require.NoError(t, mr.Set("test:bad", "{not json"))

	var got entry
	found, err := c.GetJSON(context.Background(), "bad", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestRedisCache_Unavailable(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1, DialTimeout: 100 * time.Millisecond})
	c := NewFromClient(client, "test:")
	defer c.Close()

	assert.Error(t, c.Ping(context.Background()))
	assert.Error(t, c.SetJSON(context.Background(), "k", entry{}, 0))
}

func TestKey(t *testing.T) {
	a := Key("recommend", "first-time", "health")
	b := Key("recommend", "first-time", "health")
	c := Key("recommend", "first-timehealth")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.Contains(t, a, "recommend:")
}
