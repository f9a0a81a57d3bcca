package cache

import (
	"context"
	"errors"
	"time"
)

// ErrCacheMiss is returned by Get when the key is absent or expired.
var ErrCacheMiss = errors.New("cache: key not found")

// CacheService is a byte-oriented key/value store with per-key expiration.
type CacheService interface {
	// Set stores value under key. A zero expiration keeps the key until it is deleted.
	Set(ctx context.Context, key string, value []byte, expiration time.Duration) error

	// Get returns the stored bytes or ErrCacheMiss
	Get(ctx context.Context, key string) ([]byte, error)

	Delete(ctx context.Context, key string) error

	// DeletePattern removes all keys matching a glob pattern such as "v1:market_map:*"
	DeletePattern(ctx context.Context, pattern string) error

	Exists(ctx context.Context, key string) (bool, error)

	// PurgeExpired drops expired keys the backend does not expire on its own and
	// returns how many were removed.
	PurgeExpired(ctx context.Context) (int, error)

	Close() error

	HealthCheck(ctx context.Context) error
}
