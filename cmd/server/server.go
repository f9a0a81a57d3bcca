package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/mileusna/crontab"
	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
	"menlo.ai/creator-insights-gateway/app/interfaces/http"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

type Application struct {
	HttpServer      *http.HttpServer
	DataInitializer *DataInitializer
	CacheStore      cache.CacheService
}

func (application *Application) Start(ctx context.Context) {
	cron := crontab.New()
	defer cron.Shutdown()
	application.DataInitializer.Install(ctx, cron)
	defer application.CacheStore.Close()

	if err := application.HttpServer.Run(ctx); err != nil {
		panic(err)
	}
}

func init() {
	environment_variables.EnvironmentVariables.LoadFromEnv()
	environment_variables.EnvironmentVariables.ApplyDefaults()
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Credentials are resolved while building the application, so a missing key stops
	// startup before any port is opened.
	application, err := CreateApplication()
	if err != nil {
		logger.GetLogger().Fatalf("failed to start: %v", err)
	}
	application.Start(ctx)
}
