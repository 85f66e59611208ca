package reconcile

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Loader produces a collection, typically by reading a stored snapshot.
type Loader[V any] func(ctx context.Context) (*Collection[V], error)

type cacheEntry[V any] struct {
	coll  *Collection[V]
	built time.Time
	ttl   time.Duration
}

func (e *cacheEntry[V]) expired() bool {
	if e.ttl == 0 {
		return true // No caching
	}
	if e.ttl < 0 {
		return false
	}
	return time.Since(e.built) > e.ttl
}

// Cache holds loaded collections keyed by name with a TTL.
type Cache[V any] struct {
	mu      sync.RWMutex
	entries map[string]*cacheEntry[V]
	sf      singleflight.Group
}

// NewCache creates an empty cache.
func NewCache[V any]() *Cache[V] {
	return &Cache[V]{entries: make(map[string]*cacheEntry[V])}
}

// GetOrLoad returns the cached collection for name, or calls load when it is
// absent or expired. Concurrent callers for the same name share one load.
// A zero ttl disables caching but still deduplicates concurrent loads.
// A negative ttl keeps the entry until it is replaced or invalidated.
func (c *Cache[V]) GetOrLoad(ctx context.Context, name string, ttl time.Duration, load Loader[V]) (*Collection[V], error) {
	c.mu.RLock()
	entry, exists := c.entries[name]
	c.mu.RUnlock()

	if exists && !entry.expired() {
		return entry.coll, nil
	}

	result, err, _ := c.sf.Do(name, func() (interface{}, error) {
		// Double-check after acquiring singleflight lock
		c.mu.RLock()
		entry, exists := c.entries[name]
		c.mu.RUnlock()

		if exists && !entry.expired() {
			return entry.coll, nil
		}

		coll, err := load(ctx)
		if err != nil {
			return nil, err
		}

		c.mu.Lock()
		c.entries[name] = &cacheEntry[V]{coll: coll, built: time.Now(), ttl: ttl}
		c.mu.Unlock()

		return coll, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*Collection[V]), nil
}

// Put stores coll under name, replacing any previous entry.
func (c *Cache[V]) Put(name string, coll *Collection[V], ttl time.Duration) {
	c.mu.Lock()
	c.entries[name] = &cacheEntry[V]{coll: coll, built: time.Now(), ttl: ttl}
	c.mu.Unlock()
}

// Invalidate drops the entry for name.
func (c *Cache[V]) Invalidate(name string) {
	c.mu.Lock()
	delete(c.entries, name)
	c.mu.Unlock()
}
