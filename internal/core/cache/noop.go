package cache

import (
	"context"
	"fmt"
	"time"
)

// NoopCache is used when no Redis URL is configured. Every lookup misses.
type NoopCache struct{}

// Get always misses.
func (NoopCache) Get(_ context.Context, key string) ([]byte, error) {
	return nil, fmt.Errorf("%w: %s", ErrCacheMiss, key)
}

// Set discards the value.
func (NoopCache) Set(context.Context, string, []byte, time.Duration) error { return nil }

// Delete is a no-op.
func (NoopCache) Delete(context.Context, string) error { return nil }

// Ping always succeeds.
func (NoopCache) Ping(context.Context) error { return nil }

// Close is a no-op.
func (NoopCache) Close() error { return nil }
