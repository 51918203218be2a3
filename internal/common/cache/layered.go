package cache

import (
	"context"
	"errors"
	"time"

	"projectflow-workers/internal/common/metrics"
)

// LayeredCache reads memory first, then the shared layer, promoting shared
// hits into memory. Writes go to both.
type LayeredCache struct {
	memory    Cache
	shared    Cache
	memoryTTL time.Duration
}

// NewLayeredCache builds a layered cache. shared may be nil, in which case
// only the memory layer is used.
func NewLayeredCache(memory, shared Cache, memoryTTL time.Duration) *LayeredCache {
	return &LayeredCache{memory: memory, shared: shared, memoryTTL: memoryTTL}
}

func (c *LayeredCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if val, found, _ := c.memory.Get(ctx, key); found {
		metrics.CacheLookups.WithLabelValues("memory", "hit").Inc()
		return val, true, nil
	}
	metrics.CacheLookups.WithLabelValues("memory", "miss").Inc()

	if c.shared == nil {
		return nil, false, nil
	}

	val, found, err := c.shared.Get(ctx, key)
	switch {
	case err != nil:
		metrics.CacheLookups.WithLabelValues("redis", "error").Inc()
		return nil, false, err
	case !found:
		metrics.CacheLookups.WithLabelValues("redis", "miss").Inc()
		return nil, false, nil
	}

	metrics.CacheLookups.WithLabelValues("redis", "hit").Inc()
	_ = c.memory.Set(ctx, key, val, c.memoryTTL)
	return val, true, nil
}

// Set writes both layers. The memory write always happens; a shared-layer
// failure is returned.
func (c *LayeredCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	memTTL := c.memoryTTL
	if ttl > 0 && ttl < memTTL {
		memTTL = ttl
	}
	_ = c.memory.Set(ctx, key, value, memTTL)

	if c.shared == nil {
		return nil
	}
	return c.shared.Set(ctx, key, value, ttl)
}

func (c *LayeredCache) Delete(ctx context.Context, key string) error {
	errs := []error{c.memory.Delete(ctx, key)}
	if c.shared != nil {
		errs = append(errs, c.shared.Delete(ctx, key))
	}
	return errors.Join(errs...)
}
