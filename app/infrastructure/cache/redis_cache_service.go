package cache

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

// RedisCacheService stores entries in Redis under a per-process key namespace.
type RedisCacheService struct {
	client    *redis.Client
	namespace string
}

// NewRedisCacheService connects using CACHE_URL, CACHE_PASSWORD and CACHE_DB.
func NewRedisCacheService(namespace string) CacheService {
	redisURL := environment_variables.EnvironmentVariables.CACHE_URL
	if redisURL == "" {
		redisURL = "redis://localhost:6379"
	}

	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		logger.GetLogger().Errorf("Failed to parse Redis URL: %v", err)
		opts = &redis.Options{
			Addr: "localhost:6379",
		}
	}

	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.DB = db
		}
	}

	client := redis.NewClient(opts)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		logger.GetLogger().WithFields(logrus.Fields{"addr": opts.Addr}).Errorf("Failed to connect to Redis: %v", err)
	} else {
		logger.GetLogger().WithFields(logrus.Fields{"addr": opts.Addr}).Info("Successfully connected to Redis")
	}

	return NewRedisCacheServiceWithClient(client, namespace)
}

func NewRedisCacheServiceWithClient(client *redis.Client, namespace string) *RedisCacheService {
	return &RedisCacheService{
		client:    client,
		namespace: namespace,
	}
}

func (r *RedisCacheService) key(key string) string {
	return r.namespace + key
}

func (r *RedisCacheService) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	return r.client.Set(ctx, r.key(key), value, expiration).Err()
}

func (r *RedisCacheService) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get value: %w", err)
	}
	return val, nil
}

// Delete removes a key without blocking the server.
func (r *RedisCacheService) Delete(ctx context.Context, key string) error {
	return r.client.Unlink(ctx, r.key(key)).Err()
}

func (r *RedisCacheService) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, next, err := r.client.Scan(ctx, cursor, r.key(pattern), 1000).Result()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(keys) > 0 {
			pipe := r.client.Pipeline()
			for _, k := range keys {
				pipe.Unlink(ctx, k)
			}
			if _, err := pipe.Exec(ctx); err != nil {
				return fmt.Errorf("failed to unlink keys: %w", err)
			}
		}
		if next == 0 {
			break
		}
		cursor = next
	}
	return nil
}

func (r *RedisCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check key existence: %w", err)
	}
	return result > 0, nil
}

// PurgeExpired is a no-op: Redis expires keys itself.
func (r *RedisCacheService) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (r *RedisCacheService) Close() error {
	return r.client.Close()
}

func (r *RedisCacheService) HealthCheck(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}
