package geocode

import (
	"context"
	"sync"
	"time"

	"github.com/golang/groupcache/lru"

	"astroengine/pkg/platform/sentinel"
)

// Cache stores resolved places by normalized key. Get returns
// sentinel.ErrNotFound for missing or expired entries.
type Cache interface {
	Get(ctx context.Context, key string) (Location, error)
	Set(ctx context.Context, key string, loc Location) error
}

type cachedLocation struct {
	loc      Location
	storedAt time.Time
}

// InMemoryCache is a bounded LRU with a TTL. Expired entries are dropped on
// read; capacity evicts the least recently used entry.
type InMemoryCache struct {
	mu    sync.Mutex
	lru   *lru.Cache
	ttl   time.Duration
	clock func() time.Time
}

// NewInMemoryCache creates a cache holding at most maxEntries places.
func NewInMemoryCache(maxEntries int, ttl time.Duration) *InMemoryCache {
	return &InMemoryCache{
		lru:   lru.New(maxEntries),
		ttl:   ttl,
		clock: time.Now,
	}
}

// Get returns a live entry.
func (c *InMemoryCache) Get(_ context.Context, key string) (Location, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	v, ok := c.lru.Get(key)
	if !ok {
		return Location{}, sentinel.ErrNotFound
	}
	cached := v.(cachedLocation)
	if c.clock().Sub(cached.storedAt) >= c.ttl {
		c.lru.Remove(key)
		return Location{}, sentinel.ErrNotFound
	}
	return cached.loc, nil
}

// Set stores loc under key.
func (c *InMemoryCache) Set(_ context.Context, key string, loc Location) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lru.Add(key, cachedLocation{loc: loc, storedAt: c.clock()})
	return nil
}

// Len returns the number of stored entries, live or expired.
func (c *InMemoryCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.Len()
}
