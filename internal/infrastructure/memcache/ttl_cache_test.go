package memcache

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetMissOnAbsentKey(t *testing.T) {
	c := New[string](4, time.Minute)
	_, ok := c.Get("nope")
	assert.False(t, ok)
}

func TestSetThenGet(t *testing.T) {
	c := New[int](4, time.Minute)
	c.Set("a", 1)
	v, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 1, v)
}

func TestLRUEvictionOnOverflow(t *testing.T) {
	c := New[int](3, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)
	c.Set("d", 4) // evicts "a"

	_, ok := c.Get("a")
	assert.False(t, ok, "least-recently-used entry should be evicted")
	for _, k := range []string{"b", "c", "d"} {
		_, ok := c.Get(k)
		assert.True(t, ok, "entry %q should survive", k)
	}
	assert.Equal(t, 3, c.Len())
}

func TestGetRefreshesRecency(t *testing.T) {
	c := New[int](3, time.Minute)
	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	// Touch "a" so "b" becomes the eviction candidate.
	_, ok := c.Get("a")
	require.True(t, ok)

	c.Set("d", 4)
	_, ok = c.Get("b")
	assert.False(t, ok, "expected b to be evicted after a was refreshed")
	_, ok = c.Get("a")
	assert.True(t, ok, "refreshed entry should be spared")
}

func TestTTLExpiryRemovesEntry(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	c := NewWithClock[string](4, 10*time.Second, clock)

	c.Set("a", "value")
	now = now.Add(10*time.Second + time.Millisecond)

	_, ok := c.Get("a")
	assert.False(t, ok, "expired entry should read as a miss")
	assert.Equal(t, 0, c.Len(), "expired entry should be removed on get")
}

func TestSetOverwriteRefreshesTimestamp(t *testing.T) {
	now := time.Unix(1000, 0)
	clock := func() time.Time { return now }
	c := NewWithClock[string](4, 10*time.Second, clock)

	c.Set("a", "old")
	now = now.Add(8 * time.Second)
	c.Set("a", "new")
	now = now.Add(8 * time.Second)

	v, ok := c.Get("a")
	require.True(t, ok, "overwrite should reset the TTL clock")
	assert.Equal(t, "new", v)
}

func TestConcurrentAccess(t *testing.T) {
	c := New[int](64, time.Minute)
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				key := fmt.Sprintf("k%d", (n+j)%32)
				c.Set(key, j)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()
	assert.LessOrEqual(t, c.Len(), 64)
}
