package domain

import (
	"github.com/google/wire"
	"menlo.ai/creator-insights-gateway/app/domain/cron"
	"menlo.ai/creator-insights-gateway/app/domain/dashboard"
	"menlo.ai/creator-insights-gateway/app/domain/healthcheck"
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

func NewResponseCache(store cache.CacheService) *responsecache.Cache {
	return responsecache.New(store, environment_variables.EnvironmentVariables.CACHE_TTL)
}

func NewCronService(responses *responsecache.Cache) *cron.CronService {
	return cron.NewService(responses)
}

func NewHealthcheckService(store cache.CacheService) *healthcheck.HealthcheckCrontabService {
	return healthcheck.NewService(store)
}

var ServiceProvider = wire.NewSet(
	NewResponseCache,
	profile.NewStore,
	dashboard.NewSessionFactory,
	dashboard.NewService,
	NewCronService,
	NewHealthcheckService,
)
