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

func newTestCache(t *testing.T) (*RedisCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return NewRedisCacheFromClient(client), mr
}

func TestRedisCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "role:1", "admin", time.Minute))

	var got string
	found, err := c.Get(ctx, "role:1", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, "admin", got)

	mr.FastForward(2 * time.Minute)
	found, err = c.Get(ctx, "role:1", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestRedisCacheDeletePattern(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for _, k := range []string{"news:list", "news:slug:a", "role:1"} {
		require.NoError(t, c.Set(ctx, k, 1, time.Minute))
	}

	require.NoError(t, c.DeletePattern(ctx, "news:*"))
	assert.False(t, mr.Exists("news:list"))
	assert.False(t, mr.Exists("news:slug:a"))
	assert.True(t, mr.Exists("role:1"))
}
