package main

import (
	"context"

	"github.com/mileusna/crontab"
	"menlo.ai/creator-insights-gateway/app/domain/cron"
	"menlo.ai/creator-insights-gateway/app/domain/healthcheck"
)

// DataInitializer schedules the background jobs that keep the cache store tidy and observed.
type DataInitializer struct {
	cronService        *cron.CronService
	healthcheckService *healthcheck.HealthcheckCrontabService
}

func NewDataInitializer(cronService *cron.CronService, healthcheckService *healthcheck.HealthcheckCrontabService) *DataInitializer {
	return &DataInitializer{
		cronService:        cronService,
		healthcheckService: healthcheckService,
	}
}

func (d *DataInitializer) Install(ctx context.Context, ctab *crontab.Crontab) {
	d.cronService.Start(ctx, ctab)
	d.healthcheckService.Start(ctx, ctab)
}
