// Package cache provides the response cache used for hot published-content
// lists, with in-memory and Redis backends.
package cache

import (
	"context"
	"errors"
	"time"
)

// ErrMiss indicates the key was not found or has expired.
var ErrMiss = errors.New("cache: miss")

// Cache stores opaque byte values under string keys. Implementations must
// be safe for concurrent use.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// New returns a Redis cache when redisURL is set, otherwise an in-memory
// cache. defaultTTL applies when Set is called with ttl 0.
func New(redisURL string, defaultTTL time.Duration) (Cache, error) {
	if redisURL != "" {
		return NewRedis(redisURL, defaultTTL)
	}
	return NewMemory(defaultTTL), nil
}
