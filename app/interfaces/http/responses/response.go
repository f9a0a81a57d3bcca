package responses

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/dashboard"
)

type ErrorResponse struct {
	Code   string `json:"code"`
	Error  string `json:"error"`
	Kind   string `json:"kind,omitempty"`
	Action string `json:"action,omitempty"`
}

type GeneralResponse[T any] struct {
	Status string `json:"status"`
	Result T      `json:"result"`
}

const ResponseCodeOk = "000000"

// StatusFor maps a feature failure kind to the HTTP status the UI receives.
func StatusFor(kind string) int {
	switch kind {
	case dashboard.KindIncompleteProfile:
		return http.StatusUnprocessableEntity
	case dashboard.KindInvalidInput:
		return http.StatusBadRequest
	case dashboard.KindRateLimit, dashboard.KindTransient:
		return http.StatusServiceUnavailable
	default:
		return http.StatusBadGateway
	}
}

// AbortWithError renders err as an ErrorResponse.
func AbortWithError(reqCtx *gin.Context, err *common.Error) {
	if err.Kind == dashboard.KindRateLimit {
		reqCtx.Header("Retry-After", "30")
	}
	reqCtx.AbortWithStatusJSON(StatusFor(err.Kind), ErrorResponse{
		Code:   err.Code,
		Error:  err.Message,
		Kind:   err.Kind,
		Action: err.Action,
	})
}
