package cache

import (
	"context"
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/valkey-io/valkey-go"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

// ValkeyCacheService stores entries in Valkey under a per-process key namespace.
type ValkeyCacheService struct {
	client    valkey.Client
	namespace string
}

// parseValkeyURL parses a Valkey URL and returns address, password, database, and error
func parseValkeyURL(valkeyURL string) (address, password string, database int, err error) {
	database = -1 // -1 means no database specified

	// Handle plain address without protocol
	if !strings.Contains(valkeyURL, "://") {
		return valkeyURL, "", -1, nil
	}

	u, err := url.Parse(valkeyURL)
	if err != nil {
		return "", "", -1, fmt.Errorf("invalid URL format: %w", err)
	}

	address = u.Host
	if address == "" {
		return "", "", -1, fmt.Errorf("no host specified in URL")
	}

	if u.User != nil {
		password, _ = u.User.Password()
	}

	if dbStr := strings.TrimPrefix(u.Path, "/"); dbStr != "" {
		if db, parseErr := strconv.Atoi(dbStr); parseErr == nil {
			database = db
		}
	}

	return address, password, database, nil
}

// NewValkeyCacheService connects using CACHE_URL, CACHE_PASSWORD and CACHE_DB. It degrades to
// a NoOpCacheService when Valkey is unreachable.
func NewValkeyCacheService(namespace string) CacheService {
	log := logger.GetLogger()
	valkeyURL := environment_variables.EnvironmentVariables.CACHE_URL
	if valkeyURL == "" {
		valkeyURL = "valkey://localhost:6379"
	}

	address, password, db, err := parseValkeyURL(valkeyURL)
	if err != nil {
		log.Errorf("Failed to parse Valkey URL, caching disabled: %v", err)
		return &NoOpCacheService{}
	}

	opts := valkey.ClientOption{
		InitAddress: []string{address},
	}
	if password != "" {
		opts.Password = password
	}
	if db != -1 {
		opts.SelectDB = db
	}

	if environment_variables.EnvironmentVariables.CACHE_PASSWORD != "" {
		opts.Password = environment_variables.EnvironmentVariables.CACHE_PASSWORD
	}
	if environment_variables.EnvironmentVariables.CACHE_DB != "" {
		if db, err := strconv.Atoi(environment_variables.EnvironmentVariables.CACHE_DB); err == nil {
			opts.SelectDB = db
		}
	}

	client, err := valkey.NewClient(opts)
	if err != nil {
		log.WithFields(logrus.Fields{"addr": address}).Errorf("Failed to connect to Valkey, caching disabled: %v", err)
		return &NoOpCacheService{}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Do(ctx, client.B().Ping().Build()).Error(); err != nil {
		log.WithFields(logrus.Fields{"addr": address}).Errorf("Valkey ping failed, caching disabled: %v", err)
		client.Close()
		return &NoOpCacheService{}
	}

	return &ValkeyCacheService{
		client:    client,
		namespace: namespace,
	}
}

func (v *ValkeyCacheService) key(key string) string {
	return v.namespace + key
}

func (v *ValkeyCacheService) Set(ctx context.Context, key string, value []byte, expiration time.Duration) error {
	if expiration <= 0 {
		return v.client.Do(ctx, v.client.B().Set().Key(v.key(key)).Value(valkey.BinaryString(value)).Build()).Error()
	}
	seconds := int64(math.Ceil(expiration.Seconds()))
	return v.client.Do(ctx, v.client.B().Set().Key(v.key(key)).Value(valkey.BinaryString(value)).ExSeconds(seconds).Build()).Error()
}

func (v *ValkeyCacheService) Get(ctx context.Context, key string) ([]byte, error) {
	result := v.client.Do(ctx, v.client.B().Get().Key(v.key(key)).Build())
	if err := result.Error(); err != nil {
		if valkey.IsValkeyNil(err) {
			return nil, ErrCacheMiss
		}
		return nil, fmt.Errorf("failed to get value: %w", err)
	}

	val, err := result.AsBytes()
	if err != nil {
		return nil, fmt.Errorf("failed to convert result to bytes: %w", err)
	}
	return val, nil
}

// Delete removes a key without blocking the server.
func (v *ValkeyCacheService) Delete(ctx context.Context, key string) error {
	return v.client.Do(ctx, v.client.B().Unlink().Key(v.key(key)).Build()).Error()
}

func (v *ValkeyCacheService) DeletePattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		result := v.client.Do(ctx, v.client.B().Scan().Cursor(cursor).Match(v.key(pattern)).Count(1000).Build())
		entry, err := result.AsScanEntry()
		if err != nil {
			return fmt.Errorf("failed to scan keys: %w", err)
		}
		if len(entry.Elements) > 0 {
			if err := v.client.Do(ctx, v.client.B().Unlink().Key(entry.Elements...).Build()).Error(); err != nil {
				return fmt.Errorf("failed to unlink keys: %w", err)
			}
		}
		if entry.Cursor == 0 {
			return nil
		}
		cursor = entry.Cursor
	}
}

func (v *ValkeyCacheService) Exists(ctx context.Context, key string) (bool, error) {
	result := v.client.Do(ctx, v.client.B().Exists().Key(v.key(key)).Build())
	if result.Error() != nil {
		return false, fmt.Errorf("failed to check key existence: %w", result.Error())
	}

	count, err := result.AsInt64()
	if err != nil {
		return false, fmt.Errorf("failed to parse exists result: %w", err)
	}
	return count > 0, nil
}

// PurgeExpired is a no-op: Valkey expires keys itself.
func (v *ValkeyCacheService) PurgeExpired(ctx context.Context) (int, error) {
	return 0, nil
}

func (v *ValkeyCacheService) Close() error {
	v.client.Close()
	return nil
}

func (v *ValkeyCacheService) HealthCheck(ctx context.Context) error {
	return v.client.Do(ctx, v.client.B().Ping().Build()).Error()
}
