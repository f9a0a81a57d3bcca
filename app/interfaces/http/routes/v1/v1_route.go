package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/admin"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/dashboard"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/mcp"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/profile"
	"menlo.ai/creator-insights-gateway/config"
)

type V1Route struct {
	profileRoute   *profile.ProfileRoute
	dashboardRoute *dashboard.DashboardRoute
	cacheRoute     *admin.CacheRoute
	mcpAPI         *mcp.MCPAPI
}

func NewV1Route(
	profileRoute *profile.ProfileRoute,
	dashboardRoute *dashboard.DashboardRoute,
	cacheRoute *admin.CacheRoute,
	mcpAPI *mcp.MCPAPI,
) *V1Route {
	return &V1Route{
		profileRoute,
		dashboardRoute,
		cacheRoute,
		mcpAPI,
	}
}

func (v1Route *V1Route) RegisterRouter(router gin.IRouter) {
	v1Router := router.Group("/v1")
	v1Router.GET("/version", GetVersion)
	v1Route.profileRoute.RegisterRouter(v1Router)
	v1Route.dashboardRoute.RegisterRouter(v1Router)
	v1Route.cacheRoute.RegisterRouter(v1Router)
	v1Route.mcpAPI.RegisterRouter(v1Router)
}

// GetVersion godoc
// @Summary     Get API build version
// @Description Returns the current build version of the API server.
// @Tags        system
// @Produce     json
// @Success     200 {object} map[string]string "version info"
// @Router      /v1/version [get]
func GetVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"version": config.Version,
	})
}
