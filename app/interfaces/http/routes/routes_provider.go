package routes

import (
	"github.com/google/wire"
	v1 "menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/admin"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/dashboard"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/mcp"
	mcpimpl "menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/mcp/mcp_impl"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/profile"
)

var RouteProvider = wire.NewSet(
	profile.NewProfileRoute,
	dashboard.NewDashboardRoute,
	admin.NewCacheRoute,
	mcpimpl.NewDashboardMCP,
	mcp.NewMCPAPI,
	v1.NewV1Route,
)
