// Package rendercache provides the bounded, struct-keyed caches behind the
// renderer's texture strips, sprite bitmaps, and scaled sprite bitmaps.
//
// Every key type must be a pure function of the fields that affect pixel
// output: two keys that compare equal must describe pixel-identical content.
// Eviction removes the oldest inserted entries in a fixed-size batch once a
// threshold is exceeded, which keeps individual frames from paying for a
// large bulk eviction.
package rendercache

import "sync"

// Default sizing shared by the renderer's caches.
const (
	DefaultMaxSize    = 512
	DefaultTargetSize = 384 // after eviction, 75% of max
)

// Cache is a bounded map from a comparable key to cached render content.
// Content is immutable once created, so a hit may be shared freely.
type Cache[K comparable, V any] struct {
	mu      sync.RWMutex
	entries map[K]V
	order   []K // insertion order, oldest first
	max     int
	target  int
}

// New creates a cache that evicts down to target entries whenever max is
// reached. Nonsensical limits are snapped to the defaults.
func New[K comparable, V any](max, target int) *Cache[K, V] {
	if max <= 0 {
		max = DefaultMaxSize
	}
	if target <= 0 || target >= max {
		target = max * 3 / 4
	}
	return &Cache[K, V]{
		entries: make(map[K]V, max),
		order:   make([]K, 0, max),
		max:     max,
		target:  target,
	}
}

// Get returns the cached value for key, if present.
func (c *Cache[K, V]) Get(key K) (V, bool) {
	c.mu.RLock()
	v, ok := c.entries[key]
	c.mu.RUnlock()
	return v, ok
}

// GetOrCreate returns the cached value for key, calling create on a miss.
// If create reports failure the value is not cached and ok is false, letting
// the caller fall back without poisoning the cache.
func (c *Cache[K, V]) GetOrCreate(key K, create func() (V, bool)) (V, bool) {
	c.mu.RLock()
	if v, ok := c.entries[key]; ok {
		c.mu.RUnlock()
		return v, true
	}
	c.mu.RUnlock()

	v, ok := create()
	if !ok {
		var zero V
		return zero, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	// Another caller may have created it while we were; keep the first.
	if existing, ok := c.entries[key]; ok {
		return existing, true
	}

	if len(c.entries) >= c.max {
		evict := len(c.order) - c.target
		if evict > 0 && evict <= len(c.order) {
			for i := 0; i < evict; i++ {
				delete(c.entries, c.order[i])
			}
			c.order = c.order[evict:]
		}
	}

	c.entries[key] = v
	c.order = append(c.order, key)
	return v, true
}

// Len returns the number of cached entries.
func (c *Cache[K, V]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Purge drops every entry, e.g. after a palette change invalidates content.
func (c *Cache[K, V]) Purge() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[K]V, c.max)
	c.order = c.order[:0]
}
