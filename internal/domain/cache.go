package domain

import (
	"context"
	"time"
)

// CacheError is a sentinel error from a Cache.
type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

// ErrCacheMiss means the key is absent or has expired.
const ErrCacheMiss = CacheError("cache: key not found")

// Cache is a string key/value store with per-key expiry. Quiz sessions live here.
type Cache interface {
	// Get returns ErrCacheMiss for absent keys.
	Get(ctx context.Context, key string) (string, error)
	// Set stores value under key. A zero ttl keeps it until deleted.
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Delete of an absent key is not an error.
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
