// Package memcache provides the in-process caches used by the retrieval
// pipeline. Entries expire after a TTL and the least-recently-used entry is
// evicted when the cache is full.
package memcache

import (
	"container/list"
	"sync"
	"time"
)

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
}

// Cache is a bounded key-value store with per-entry TTL and strict LRU
// eviction order. Get and Set both mutate recency, so all access is guarded
// by a single mutex; the working set is small and critical sections are
// short.
type Cache[V any] struct {
	mu      sync.Mutex
	maxSize int
	ttl     time.Duration
	order   *list.List // front = most recently used
	items   map[string]*list.Element
	now     func() time.Time
}

// New creates a cache holding at most maxSize entries, each valid for ttl.
func New[V any](maxSize int, ttl time.Duration) *Cache[V] {
	if maxSize < 1 {
		maxSize = 1
	}
	return &Cache[V]{
		maxSize: maxSize,
		ttl:     ttl,
		order:   list.New(),
		items:   make(map[string]*list.Element),
		now:     time.Now,
	}
}

// NewWithClock is New with an injectable clock for tests.
func NewWithClock[V any](maxSize int, ttl time.Duration, now func() time.Time) *Cache[V] {
	c := New[V](maxSize, ttl)
	c.now = now
	return c
}

// Get returns the cached value for key. An entry older than the TTL is
// removed and reported as a miss; a hit refreshes the entry's recency.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var zero V
	el, ok := c.items[key]
	if !ok {
		return zero, false
	}
	e := el.Value.(*entry[V])
	if c.now().Sub(e.insertedAt) > c.ttl {
		c.order.Remove(el)
		delete(c.items, key)
		return zero, false
	}
	c.order.MoveToFront(el)
	return e.value, true
}

// Set inserts or overwrites the entry with a fresh timestamp, marks it most
// recently used, then evicts from the LRU end until the size bound holds.
func (c *Cache[V]) Set(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.items[key]; ok {
		e := el.Value.(*entry[V])
		e.value = value
		e.insertedAt = c.now()
		c.order.MoveToFront(el)
	} else {
		c.items[key] = c.order.PushFront(&entry[V]{key: key, value: value, insertedAt: c.now()})
	}

	for c.order.Len() > c.maxSize {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.items, oldest.Value.(*entry[V]).key)
	}
}

// Len reports the current number of entries, expired or not.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}
