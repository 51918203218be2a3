package database

import (
	"context"
	"fmt"
	"time"
)

// Pinger is a dependency the readiness probe checks.
type Pinger interface {
	Name() string
	Ping(ctx context.Context) error
}

// CheckAll pings every dependency with its own timeout and returns the
// failures keyed by name. A nil entry in deps is skipped.
func CheckAll(ctx context.Context, timeout time.Duration, deps ...Pinger) map[string]error {
	failures := make(map[string]error)
	for _, d := range deps {
		if d == nil {
			continue
		}
		pctx, cancel := context.WithTimeout(ctx, timeout)
		if err := d.Ping(pctx); err != nil {
			failures[d.Name()] = err
		}
		cancel()
	}
	return failures
}

// Summary renders CheckAll's result for a readiness response body.
func Summary(failures map[string]error) string {
	if len(failures) == 0 {
		return "ready"
	}
	return fmt.Sprintf("not ready: %d dependency check(s) failed", len(failures))
}
