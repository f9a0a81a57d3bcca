package cache

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

// NewCacheService creates the store selected by CACHE_TYPE. Shared backends get a fresh
// namespace per process so nothing written by an earlier run is ever read back.
func NewCacheService() CacheService {
	cacheType := strings.ToLower(strings.TrimSpace(environment_variables.EnvironmentVariables.CACHE_TYPE))
	namespace := InstanceNamespace()

	var service CacheService
	switch cacheType {
	case TypeRedis:
		service = NewRedisCacheService(namespace)
	case TypeValkey:
		service = NewValkeyCacheService(namespace)
	case TypeNoop:
		service = &NoOpCacheService{}
	case "", TypeMemory:
		cacheType = TypeMemory
		service = NewMemoryCacheService()
	default:
		logger.GetLogger().Warnf("Unknown CACHE_TYPE %q, using in-memory cache", cacheType)
		cacheType = TypeMemory
		service = NewMemoryCacheService()
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"cache_type": cacheType,
		"namespace":  namespace,
	}).Info("Response cache store ready")
	return service
}

// InstanceNamespace returns a key prefix unique to this process.
func InstanceNamespace() string {
	return fmt.Sprintf("%s:%s:", NamespacePrefix, uuid.NewString())
}
