package cron

import (
	"context"

	"github.com/mileusna/crontab"
	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
)

// ExpiredEntryPurger drops expired response cache entries.
type ExpiredEntryPurger interface {
	PurgeExpired(ctx context.Context) (int, error)
}

type CronService struct {
	Purger ExpiredEntryPurger
}

func NewService(purger ExpiredEntryPurger) *CronService {
	return &CronService{
		Purger: purger,
	}
}

func (cs *CronService) Start(ctx context.Context, ctab *crontab.Crontab) {
	ctab.MustAddJob("* * * * *", func() {
		cs.purgeExpired(ctx)
	})
}

func (cs *CronService) purgeExpired(ctx context.Context) int {
	if cs == nil || cs.Purger == nil {
		return 0
	}

	purged, err := cs.Purger.PurgeExpired(ctx)
	if err != nil {
		logger.GetLogger().Warnf("cron service: failed to purge expired cache entries: %v", err)
		return 0
	}
	if purged > 0 {
		logger.GetLogger().WithFields(logrus.Fields{"purged": purged}).Debug("cron service: purged expired cache entries")
	}
	return purged
}
