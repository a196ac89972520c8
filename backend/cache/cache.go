// ABOUTME: Bounded TTL cache for computed responses
// ABOUTME: Expirable LRU with singleflight so concurrent misses compute once

package cache

import (
	"log/slog"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// DefaultSize bounds the cache when no size is configured.
const DefaultSize = 256

type Cache struct {
	lru   *expirable.LRU[string, any]
	group singleflight.Group
	ttl   time.Duration
}

// New creates a cache holding at most size entries for ttl each.
// A non-positive size uses DefaultSize.
func New(ttl time.Duration, size int) *Cache {
	if size <= 0 {
		size = DefaultSize
	}
	return &Cache{
		lru: expirable.NewLRU[string, any](size, nil, ttl),
		ttl: ttl,
	}
}

func (c *Cache) Get(key string) (any, bool) {
	val, ok := c.lru.Get(key)
	if !ok {
		slog.Debug("Cache miss", "key", key)
		return nil, false
	}
	slog.Debug("Cache hit", "key", key)
	return val, true
}

func (c *Cache) Set(key string, value any) {
	c.lru.Add(key, value)
	slog.Debug("Cache set", "key", key, "ttl", c.ttl)
}

// GetOrLoad returns the cached value for key, calling load on a miss.
// Concurrent callers for the same key share one load. Errors are not cached.
func (c *Cache) GetOrLoad(key string, load func() (any, error)) (any, error) {
	if val, ok := c.Get(key); ok {
		return val, nil
	}
	val, err, _ := c.group.Do(key, func() (any, error) {
		if val, ok := c.lru.Get(key); ok {
			return val, nil
		}
		val, err := load()
		if err != nil {
			return nil, err
		}
		c.Set(key, val)
		return val, nil
	})
	return val, err
}

func (c *Cache) Clear(key string) {
	c.lru.Remove(key)
}

// Purge drops every entry.
func (c *Cache) Purge() {
	c.lru.Purge()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
