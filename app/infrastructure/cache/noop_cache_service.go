package cache

import (
	"context"
	"time"
)

// NoOpCacheService stores nothing. Every lookup is a miss.
type NoOpCacheService struct{}

func (n *NoOpCacheService) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return nil
}

func (n *NoOpCacheService) Get(ctx context.Context, key string) ([]byte, error) {
	return nil, ErrCacheMiss
}

func (n *NoOpCacheService) Delete(ctx context.Context, key string) error {
	return nil
}

func (n *NoOpCacheService) DeletePattern(ctx context.Context, pattern string) error {
	return nil
}

func (n *NoOpCacheService) Exists(ctx context.Context, key string) (bool, error) {
	return false, nil
}

func (n *NoOpCacheService) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (n *NoOpCacheService) Close() error {
	return nil
}

func (n *NoOpCacheService) HealthCheck(ctx context.Context) error {
	return nil
}
