// Package cache holds the two-level store for serialized plan results: a
// process-local go-cache layer in front of a shared Redis layer.
package cache

import (
	"context"
	"errors"
	"strings"
	"time"
)

// ErrUnavailable wraps backend failures so callers can tell them from misses.
var ErrUnavailable = errors.New("CACHE_UNAVAILABLE")

// Cache stores opaque values. A miss is (nil, false, nil).
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// Key joins non-empty parts with ':'.
func Key(parts ...string) string {
	kept := make([]string, 0, len(parts))
	for _, p := range parts {
		if p != "" {
			kept = append(kept, p)
		}
	}
	return strings.Join(kept, ":")
}
