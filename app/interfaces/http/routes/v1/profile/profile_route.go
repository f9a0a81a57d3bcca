package profile

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	domainprofile "menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/responses"
	"menlo.ai/creator-insights-gateway/app/utils/logger"
)

type ProfileRoute struct {
	store *domainprofile.Store
}

func NewProfileRoute(store *domainprofile.Store) *ProfileRoute {
	return &ProfileRoute{
		store: store,
	}
}

func (route *ProfileRoute) RegisterRouter(router gin.IRouter) {
	profileRouter := router.Group("/profile")
	profileRouter.GET("", route.GetProfile)
	profileRouter.PUT("", route.UpdateProfile)
}

type UpdateProfileRequest struct {
	Niche     string            `json:"niche" binding:"required"`
	Audience  string            `json:"audience" binding:"required"`
	Goals     []string          `json:"goals"`
	Platforms []string          `json:"platforms"`
	Answers   map[string]string `json:"answers"`
}

// GetProfile godoc
// @Summary     Get the creator profile
// @Description Returns the active profile. Version 0 means onboarding has not been completed.
// @Tags        profile
// @Produce     json
// @Success     200 {object} responses.GeneralResponse[profile.UserProfile]
// @Router      /v1/profile [get]
func (route *ProfileRoute) GetProfile(reqCtx *gin.Context) {
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[domainprofile.UserProfile]{
		Status: responses.ResponseCodeOk,
		Result: route.store.Get(),
	})
}

// UpdateProfile godoc
// @Summary     Replace the creator profile
// @Description Stores the onboarding answers and bumps the profile version, which retires every cached result.
// @Tags        profile
// @Accept      json
// @Produce     json
// @Param       request body UpdateProfileRequest true "Profile"
// @Success     200 {object} responses.GeneralResponse[profile.UserProfile]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/profile [put]
func (route *ProfileRoute) UpdateProfile(reqCtx *gin.Context) {
	var request UpdateProfileRequest
	if err := reqCtx.ShouldBindJSON(&request); err != nil {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:  "0c2f51d6-6b0e-4d1b-9c55-3f0a8f3e7b21",
			Error: err.Error(),
		})
		return
	}

	updated, err := route.store.Update(domainprofile.UserProfile{
		Niche:     request.Niche,
		Audience:  request.Audience,
		Goals:     request.Goals,
		Platforms: request.Platforms,
		Answers:   request.Answers,
	})
	if err != nil {
		if errors.Is(err, domainprofile.ErrInvalidProfile) {
			reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
				Code:  "5d8e0b7a-1c3f-4e92-8a61-2b9d7c4f0e13",
				Error: err.Error(),
			})
			return
		}
		logger.GetLogger().Errorf("profile: failed to update: %v", err)
		reqCtx.AbortWithStatusJSON(http.StatusInternalServerError, responses.ErrorResponse{
			Code:  "a7f3c2e1-9b84-4d06-b5e2-6c1f8d3a9047",
			Error: "failed to update profile",
		})
		return
	}

	logger.GetLogger().WithFields(logrus.Fields{"version": updated.Version}).Info("profile updated")
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[domainprofile.UserProfile]{
		Status: responses.ResponseCodeOk,
		Result: updated,
	})
}
