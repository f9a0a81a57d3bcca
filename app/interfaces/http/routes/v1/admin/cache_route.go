package admin

import (
	"crypto/subtle"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"menlo.ai/creator-insights-gateway/app/domain/dashboard"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/responses"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

const AdminKeyHeader = "X-Admin-Key"

// CacheRoute exposes administrative cache operations.
type CacheRoute struct {
	cache *responsecache.Cache
}

// NewCacheRoute constructs a CacheRoute instance.
func NewCacheRoute(cache *responsecache.Cache) *CacheRoute {
	return &CacheRoute{
		cache: cache,
	}
}

// RegisterRouter wires the administrative cache endpoints.
func (route *CacheRoute) RegisterRouter(router gin.IRouter) {
	if environment_variables.EnvironmentVariables.ADMIN_API_KEY == "" {
		logger.GetLogger().Warn("ADMIN_API_KEY is not set, the admin cache endpoints accept unauthenticated requests")
	}
	adminRouter := router.Group("/admin", AdminKeyMiddleware())
	adminRouter.POST("/cache/invalidate", route.InvalidateCache)
}

// AdminKeyMiddleware requires the X-Admin-Key header to match ADMIN_API_KEY when one is configured.
func AdminKeyMiddleware() gin.HandlerFunc {
	return func(reqCtx *gin.Context) {
		expected := environment_variables.EnvironmentVariables.ADMIN_API_KEY
		if expected == "" {
			reqCtx.Next()
			return
		}
		given := reqCtx.GetHeader(AdminKeyHeader)
		if subtle.ConstantTimeCompare([]byte(given), []byte(expected)) != 1 {
			reqCtx.AbortWithStatusJSON(http.StatusUnauthorized, responses.ErrorResponse{
				Code:  "3b6f9a0e-84c7-4d2e-a1f5-0c8e7d2b4a69",
				Error: "invalid admin key",
			})
			return
		}
		reqCtx.Next()
	}
}

type CacheInvalidateRequest struct {
	Feature     string `json:"feature"`
	Fingerprint string `json:"fingerprint"`
}

// CacheInvalidateResponse represents the result of a cache invalidation request.
type CacheInvalidateResponse struct {
	Object  string `json:"object"`
	Status  string `json:"status"`
	Message string `json:"message"`
}

// InvalidateCache godoc
// @Summary     Invalidate cached dashboard results
// @Description Drops one fingerprint, every entry of one feature, or the whole response cache when the body is empty.
// @Tags        admin
// @Accept      json
// @Produce     json
// @Param       request body CacheInvalidateRequest false "Scope"
// @Success     200 {object} CacheInvalidateResponse
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/admin/cache/invalidate [post]
func (route *CacheRoute) InvalidateCache(reqCtx *gin.Context) {
	ctx := reqCtx.Request.Context()

	var request CacheInvalidateRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil && !errors.Is(err, io.EOF) {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "c41d8e6f-2a97-4b03-9e5c-1f7a6b3d8e20",
			Error: err.Error(),
		})
		return
	}
	request.Feature = strings.TrimSpace(request.Feature)
	request.Fingerprint = strings.TrimSpace(request.Fingerprint)

	var (
		err     error
		message string
	)
	switch {
	case request.Fingerprint != "":
		err = route.cache.Invalidate(ctx, request.Fingerprint)
		message = "cache entry invalidated"
	case request.Feature != "":
		if !dashboard.Feature(request.Feature).Valid() {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "7a2e4c91-6d5b-4f38-8c0a-e3b1f9d7a562",
				Error: "unknown feature " + request.Feature,
			})
			return
		}
		err = route.cache.InvalidateFeature(ctx, request.Feature)
		message = "feature cache invalidated"
	default:
		err = route.cache.InvalidateAll(ctx)
		message = "cache invalidated"
	}

	if err != nil {
		logger.GetLogger().Errorf("admin cache: failed to invalidate cache: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "b0c4f1c8-2a3b-4ad4-8b1d-7a2124d7c7b1",
			Error: "failed to invalidate cache",
		})
		return
	}

	logger.GetLogger().WithFields(logrus.Fields{
		"feature":     request.Feature,
		"fingerprint": request.Fingerprint,
	}).Info("admin cache: invalidated")
	reqCtx.JSON(http.StatusOK, CacheInvalidateResponse{
		Object:  "cache.invalidation",
		Status:  "ok",
		Message: message,
	})
}
