package http

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"menlo.ai/creator-insights-gateway/app/domain/healthcheck"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/middleware"
	v1 "menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

type HttpServer struct {
	engine  *gin.Engine
	v1Route *v1.V1Route
	health  *healthcheck.HealthcheckCrontabService
}

func NewHttpServer(v1Route *v1.V1Route, health *healthcheck.HealthcheckCrontabService) *HttpServer {
	gin.SetMode(gin.ReleaseMode)
	server := HttpServer{
		engine:  gin.New(),
		v1Route: v1Route,
		health:  health,
	}
	server.engine.Use(gin.Recovery(), middleware.CORS(), middleware.LoggerMiddleware(logger.GetLogger()))
	server.engine.GET("/health-check", server.healthCheck)
	server.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
	server.v1Route.RegisterRouter(server.engine.Group("/"))
	return &server
}

// healthCheck reports "ok" while the process serves requests. A failing cache store only
// degrades the answer since features still work uncached.
func (httpServer *HttpServer) healthCheck(c *gin.Context) {
	if httpServer.health != nil && !httpServer.health.Healthy() {
		c.JSON(http.StatusOK, "degraded")
		return
	}
	c.JSON(http.StatusOK, "ok")
}

func (httpServer *HttpServer) Handler() http.Handler {
	return httpServer.engine
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (httpServer *HttpServer) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", environment_variables.EnvironmentVariables.HTTP_PORT),
		Handler:           httpServer.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.GetLogger().Infof("HTTP server listening on %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
