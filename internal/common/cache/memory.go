package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type MemoryCache struct {
	cache *gocache.Cache
}

func NewMemoryCache(defaultTTL, cleanupInterval time.Duration) *MemoryCache {
	return &MemoryCache{cache: gocache.New(defaultTTL, cleanupInterval)}
}

func (c *MemoryCache) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, found := c.cache.Get(key)
	if !found {
		return nil, false, nil
	}
	b, ok := val.([]byte)
	return b, ok, nil
}

// Set stores value; a zero ttl uses the cache default.
func (c *MemoryCache) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl == 0 {
		ttl = gocache.DefaultExpiration
	}
	c.cache.Set(key, value, ttl)
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, key string) error {
	c.cache.Delete(key)
	return nil
}

func (c *MemoryCache) Len() int {
	return c.cache.ItemCount()
}

func (c *MemoryCache) Clear() {
	c.cache.Flush()
}
