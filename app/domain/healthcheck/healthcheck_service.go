package healthcheck

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mileusna/crontab"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/app/utils/metrics"
)

// Pinger is anything with a connectivity probe, such as a cache store.
type Pinger interface {
	HealthCheck(ctx context.Context) error
}

// HealthcheckCrontabService probes the cache store periodically and remembers the outcome.
type HealthcheckCrontabService struct {
	Store   Pinger
	healthy atomic.Bool
}

func NewService(store Pinger) *HealthcheckCrontabService {
	hs := &HealthcheckCrontabService{Store: store}
	hs.healthy.Store(true)
	return hs
}

func (hs *HealthcheckCrontabService) Start(ctx context.Context, ctab *crontab.Crontab) {
	hs.CheckCacheStore(ctx)
	ctab.MustAddJob("*/2 * * * *", func() {
		hs.CheckCacheStore(ctx)
	})
}

func (hs *HealthcheckCrontabService) CheckCacheStore(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	healthy := true
	if err := hs.Store.HealthCheck(ctx); err != nil {
		logger.GetLogger().Warnf("healthcheck: cache store unreachable: %v", err)
		healthy = false
	}
	hs.healthy.Store(healthy)
	metrics.SetCacheStoreHealthy(healthy)
	return healthy
}

func (hs *HealthcheckCrontabService) Healthy() bool {
	return hs.healthy.Load()
}
