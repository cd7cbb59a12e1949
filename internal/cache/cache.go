// Package cache provides a small read-through cache for the public list
// endpoints. Values are JSON-encoded response bodies keyed per collection;
// any mutation of a collection invalidates its key.
package cache

import (
	"context"
	"time"
)

// Error is a sentinel error type for cache operations.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrMiss indicates the key was not found or has expired.
	ErrMiss Error = "cache miss"
)

// Cache is implemented by the memory and redis backends. All
// implementations are safe for concurrent use.
type Cache interface {
	// Get returns the cached value, or ErrMiss.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set stores value under key for ttl. A zero ttl uses the backend default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	// Delete removes a key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
	// Close releases backend resources.
	Close() error
}
