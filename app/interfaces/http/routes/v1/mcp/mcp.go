package mcp

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	mcpserver "github.com/mark3labs/mcp-go/server"
	mcpimpl "menlo.ai/creator-insights-gateway/app/interfaces/http/routes/v1/mcp/mcp_impl"
	"menlo.ai/creator-insights-gateway/config"
)

// MCPMethodGuard rejects JSON-RPC calls whose method is not in allowedMethods. Requests
// without a body, such as the event stream GET, pass through.
func MCPMethodGuard(allowedMethods map[string]bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method != http.MethodPost {
			c.Next()
			return
		}
		bodyBytes, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		var req struct {
			Method string `json:"method"`
		}

		if err := json.Unmarshal(bodyBytes, &req); err != nil {
			c.AbortWithStatus(http.StatusBadRequest)
			return
		}

		if !allowedMethods[req.Method] {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

type MCPAPI struct {
	DashboardMCP *mcpimpl.DashboardMCP
	MCPServer    *mcpserver.MCPServer
}

func NewMCPAPI(dashboardMCP *mcpimpl.DashboardMCP) *MCPAPI {
	mcpSrv := mcpserver.NewMCPServer("creator-insights", config.Version,
		mcpserver.WithToolCapabilities(true),
		mcpserver.WithRecovery(),
	)
	return &MCPAPI{
		DashboardMCP: dashboardMCP,
		MCPServer:    mcpSrv,
	}
}

// MCPStream
// @Summary MCP streamable endpoint
// @Description Serves the dashboard features as Model Context Protocol tools over streamable HTTP.
// @Tags MCP
// @Accept json
// @Produce text/event-stream
// @Param request body any true "MCP request payload"
// @Success 200 {string} string "Streamed response (SSE or chunked transfer)"
// @Router /v1/mcp [post]
func (mcpAPI *MCPAPI) RegisterRouter(router gin.IRouter) {
	mcpAPI.DashboardMCP.RegisterTools(mcpAPI.MCPServer)

	mcpHttpHandler := mcpserver.NewStreamableHTTPServer(mcpAPI.MCPServer)
	router.Any(
		"/mcp",
		MCPMethodGuard(map[string]bool{
			// Initialization / handshake
			"initialize":                true,
			"notifications/initialized": true,
			"ping":                      true,

			// Tools
			"tools/list": true,
			"tools/call": true,
		}),
		gin.WrapH(mcpHttpHandler))
}
