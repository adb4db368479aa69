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

type payload struct {
	Total int64  `json:"total"`
	Label string `json:"label"`
}

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return New(rdb, time.Minute), mr
}

func TestCacheRoundTrip(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", payload{Total: 42, Label: "x"}))
	assert.Equal(t, time.Minute, mr.TTL("k"))

	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, payload{Total: 42, Label: "x"}, got)

	require.NoError(t, c.Delete(ctx, "k"))
	found, err = c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheExpires(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, c.Set(ctx, "k", payload{Total: 1}))
	mr.FastForward(2 * time.Minute)

	var got payload
	found, err := c.Get(ctx, "k", &got)
	require.NoError(t, err)
	assert.False(t, found)
}

func TestCacheCorruptValue(t *testing.T) {
	c, mr := newTestCache(t)
	require.NoError(t, mr.Set("k", "not json"))

	var got payload
	found, err := c.Get(context.Background(), "k", &got)
	assert.Error(t, err)
	assert.False(t, found)
}

func TestDisabledCacheIsNoop(t *testing.T) {
	ctx := context.Background()
	for _, c := range []*Cache{nil, New(nil, time.Minute)} {
		assert.False(t, c.Enabled())
		require.NoError(t, c.Set(ctx, "k", payload{Total: 1}))
		var got payload
		found, err := c.Get(ctx, "k", &got)
		require.NoError(t, err)
		assert.False(t, found)
		require.NoError(t, c.Delete(ctx, "k"))
		require.NoError(t, c.Ping(ctx))
		n, err := c.Incr(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, int64(0), n)
	}
}

func TestCacheIncr(t *testing.T) {
	c, mr := newTestCache(t)
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		n, err := c.Incr(ctx, "counter")
		require.NoError(t, err)
		assert.Equal(t, want, n)
	}

	// counters read back through Get like any JSON value
	var got int64
	found, err := c.Get(ctx, "counter", &got)
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, int64(3), got)
	assert.Equal(t, time.Duration(0), mr.TTL("counter"))
}
