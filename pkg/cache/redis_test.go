package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setupRedisCache creates a miniredis instance and returns a connected cache.
func setupRedisCache(t *testing.T) Cache {
	t.Helper()

	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisOptions{
		URL:            fmt.Sprintf("redis://%s", mr.Addr()),
		ConnectTimeout: 5 * time.Second,
	})
	require.NoError(t, err)

	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestNewRedisCache(t *testing.T) {
	t.Run("successful connection", func(t *testing.T) {
		mr := miniredis.RunT(t)
		c, err := NewRedisCache(RedisOptions{URL: fmt.Sprintf("redis://%s", mr.Addr())})
		require.NoError(t, err)
		require.NotNil(t, c)
		defer c.Close()
	})

	t.Run("invalid URL", func(t *testing.T) {
		_, err := NewRedisCache(RedisOptions{URL: "://nope"})
		require.Error(t, err)
	})
}

func TestRedisCacheRoundTrip(t *testing.T) {
	ctx := context.Background()
	c := setupRedisCache(t)

	_, hit, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, hit)

	require.NoError(t, c.Set(ctx, "form", []byte("(:A ) => out:  in: "), time.Hour))

	data, hit, err := c.Get(ctx, "form")
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, []byte("(:A ) => out:  in: "), data)

	require.NoError(t, c.Delete(ctx, "form"))
	_, hit, err = c.Get(ctx, "form")
	require.NoError(t, err)
	assert.False(t, hit)
}

func TestRedisCacheTTL(t *testing.T) {
	ctx := context.Background()

	mr := miniredis.RunT(t)
	c, err := NewRedisCache(RedisOptions{URL: fmt.Sprintf("redis://%s", mr.Addr())})
	require.NoError(t, err)
	defer c.Close()

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))

	// miniredis expires keys on FastForward rather than wall-clock time.
	mr.FastForward(2 * time.Minute)

	_, hit, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, hit)
}
