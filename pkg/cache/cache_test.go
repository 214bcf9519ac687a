package cache

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInMemoryCache_SetAndGet(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	c.Set("key", "value", time.Minute)

	got, found := c.Get("key")
	require.True(t, found)
	assert.Equal(t, "value", got)

	_, found = c.Get("missing")
	assert.False(t, found)
}

func TestInMemoryCache_Expiration(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	c.Set("key", "value", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, found := c.Get("key")
	assert.False(t, found)
}

func TestInMemoryCache_GetOrCompute(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	calls := 0
	compute := func() (interface{}, error) {
		calls++
		return 42, nil
	}

	got, err := c.GetOrCompute("stats", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)

	// Second call hits the cache, compute is not re-run.
	got, err = c.GetOrCompute("stats", time.Minute, compute)
	require.NoError(t, err)
	assert.Equal(t, 42, got)
	assert.Equal(t, 1, calls)
}

func TestInMemoryCache_GetOrComputeError(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	wantErr := errors.New("compute failed")
	_, err := c.GetOrCompute("stats", time.Minute, func() (interface{}, error) {
		return nil, wantErr
	})
	assert.ErrorIs(t, err, wantErr)

	// An error result must not be cached.
	_, found := c.Get("stats")
	assert.False(t, found)
}

func TestInMemoryCache_DeleteAndClear(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	defer c.Stop()

	c.Set("a", 1, time.Minute)
	c.Set("b", 2, time.Minute)

	c.Delete("a")
	_, found := c.Get("a")
	assert.False(t, found)

	c.Clear()
	_, found = c.Get("b")
	assert.False(t, found)
}

func TestInMemoryCache_StopIsIdempotent(t *testing.T) {
	c := NewInMemoryCache(time.Minute)
	c.Stop()
	c.Stop()
}
