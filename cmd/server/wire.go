//go:build wireinject

package main

import (
	"github.com/google/wire"
	"menlo.ai/creator-insights-gateway/app/domain"
	"menlo.ai/creator-insights-gateway/app/infrastructure"
	"menlo.ai/creator-insights-gateway/app/interfaces/http"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes"
)

func CreateApplication() (*Application, error) {
	wire.Build(
		infrastructure.InfrastructureProvider,
		domain.ServiceProvider,
		routes.RouteProvider,
		http.NewHttpServer,
		NewDataInitializer,
		wire.Struct(new(Application), "*"),
	)
	return nil, nil
}
