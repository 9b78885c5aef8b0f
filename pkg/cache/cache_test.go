package cache

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func TestMemoryCache_SetGetDelete(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(&fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)})

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Hour))
	got, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), got)

	require.NoError(t, c.Delete(ctx, "k"))
	_, found, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	clock := &fakeClock{now: time.Date(2024, 1, 15, 10, 0, 0, 0, time.UTC)}
	c := NewMemoryCache(clock)

	require.NoError(t, c.Set(ctx, "k", []byte("v"), time.Minute))
	require.NoError(t, c.Set(ctx, "forever", []byte("v"), 0))

	clock.Advance(59 * time.Second)
	_, found, _ := c.Get(ctx, "k")
	assert.True(t, found)

	clock.Advance(time.Second)
	_, found, _ = c.Get(ctx, "k")
	assert.False(t, found)

	clock.Advance(24 * time.Hour)
	_, found, _ = c.Get(ctx, "forever")
	assert.True(t, found)
}

func TestMemoryCache_ValuesAreCopied(t *testing.T) {
	ctx := context.Background()
	c := NewMemoryCache(nil)

	buf := []byte("abc")
	require.NoError(t, c.Set(ctx, "k", buf, 0))
	buf[0] = 'x'

	got, _, _ := c.Get(ctx, "k")
	assert.Equal(t, []byte("abc"), got)
}

func TestBadgerCache_InMemory(t *testing.T) {
	ctx := context.Background()
	c, err := OpenBadgerCache("")
	require.NoError(t, err)
	defer c.Close()

	_, found, err := c.Get(ctx, "missing")
	require.NoError(t, err)
	assert.False(t, found)

	require.NoError(t, c.Set(ctx, "k", []byte(`{"a":1}`), time.Hour))
	got, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte(`{"a":1}`), got)

	require.NoError(t, c.Delete(ctx, "k"))
	require.NoError(t, c.Delete(ctx, "k"))
	_, found, err = c.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestBadgerCache_Persistent(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	c, err := OpenBadgerCache(dir)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, "k", []byte("v"), 0))
	require.NoError(t, c.Close())

	reopened, err := OpenBadgerCache(dir)
	require.NoError(t, err)
	defer reopened.Close()

	got, found, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, found)
	assert.Equal(t, []byte("v"), got)
}

var (
	_ Cache = (*MemoryCache)(nil)
	_ Cache = (*BadgerCache)(nil)
)
