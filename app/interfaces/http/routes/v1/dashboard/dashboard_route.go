package dashboard

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"menlo.ai/creator-insights-gateway/app/domain/common"
	domaindashboard "menlo.ai/creator-insights-gateway/app/domain/dashboard"
	"menlo.ai/creator-insights-gateway/app/interfaces/http/responses"
)

type DashboardRoute struct {
	service  *domaindashboard.Service
	sessions *domaindashboard.SessionFactory
}

func NewDashboardRoute(service *domaindashboard.Service, sessions *domaindashboard.SessionFactory) *DashboardRoute {
	return &DashboardRoute{
		service:  service,
		sessions: sessions,
	}
}

func (route *DashboardRoute) RegisterRouter(router gin.IRouter) {
	dashboardRouter := router.Group("/dashboard")
	dashboardRouter.POST("/market-map", route.MarketMap)
	dashboardRouter.POST("/growth-strategy", route.GrowthStrategy)
	dashboardRouter.POST("/competitor-analysis", route.CompetitorAnalysis)
	dashboardRouter.POST("/viral-score", route.ViralScore)
	dashboardRouter.POST("/content-calendar", route.ContentCalendar)
	dashboardRouter.POST("/posting-schedule", route.PostingSchedule)
	dashboardRouter.POST("/hashtag-strategy", route.HashtagStrategy)
	dashboardRouter.POST("/content-ideas", route.ContentIdeas)
	dashboardRouter.POST("/recommendations", route.Recommendations)
	dashboardRouter.POST("/global-insights", route.GlobalInsights)
	dashboardRouter.POST("/trending-sounds", route.TrendingSounds)
	dashboardRouter.POST("/brand-collaborations", route.BrandCollaborations)
}

type CompetitorAnalysisRequest struct {
	Region string `json:"region" binding:"max=64"`
}

type ViralScoreRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

type ContentCalendarRequest struct {
	Timeframe string `json:"timeframe" binding:"omitempty,oneof=daily weekly monthly"`
}

type PostingScheduleRequest struct {
	ContentType string `json:"content_type" binding:"max=32"`
}

type HashtagStrategyRequest struct {
	Topic  string `json:"topic" binding:"required,max=200"`
	Region string `json:"region" binding:"max=64"`
}

type ContentIdeasRequest struct {
	Country string `json:"country" binding:"omitempty,len=2"`
}

type RecommendationsRequest struct {
	EntityType string `json:"entity_type" binding:"required"`
}

type TrendingSoundsRequest struct {
	Platform string `json:"platform" binding:"max=32"`
	Region   string `json:"region" binding:"max=64"`
}

type BrandCollaborationsRequest struct {
	Platform string `json:"platform" binding:"max=32"`
}

// bindOptionalJSON decodes the body into request when there is one.
func bindOptionalJSON(reqCtx *gin.Context, request any) bool {
	if err := reqCtx.ShouldBindJSON(request); err != nil && !errors.Is(err, io.EOF) {
		reqCtx.AbortWithStatusJSON(http.StatusBadRequest, responses.ErrorResponse{
			Code:   "9e4b7d21-3f8a-4c65-b0d2-7a1e5c9f8b34",
			Error:  err.Error(),
			Kind:   domaindashboard.KindInvalidInput,
			Action: domaindashboard.ActionFixInput,
		})
		return false
	}
	return true
}

func respond[T any](reqCtx *gin.Context, result *T, err *common.Error) {
	if err != nil {
		responses.AbortWithError(reqCtx, err)
		return
	}
	reqCtx.JSON(http.StatusOK, responses.GeneralResponse[T]{
		Status: responses.ResponseCodeOk,
		Result: *result,
	})
}

// MarketMap godoc
// @Summary     Audience market map
// @Description Ranks the countries where the profile's niche resonates most, with each country's trending topics.
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} responses.GeneralResponse[dashboard.MarketMap]
// @Failure     422 {object} responses.ErrorResponse
// @Router      /v1/dashboard/market-map [post]
func (route *DashboardRoute) MarketMap(reqCtx *gin.Context) {
	result, err := route.service.MarketMap(reqCtx.Request.Context(), route.sessions.Session())
	respond(reqCtx, result, err)
}

// GrowthStrategy godoc
// @Summary     Audience growth strategy
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} responses.GeneralResponse[dashboard.GrowthStrategy]
// @Failure     422 {object} responses.ErrorResponse
// @Router      /v1/dashboard/growth-strategy [post]
func (route *DashboardRoute) GrowthStrategy(reqCtx *gin.Context) {
	result, err := route.service.GrowthStrategy(reqCtx.Request.Context(), route.sessions.Session())
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) CompetitorAnalysis(reqCtx *gin.Context) {
	var request CompetitorAnalysisRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.CompetitorAnalysis(reqCtx.Request.Context(), route.sessions.Session(), request.Region)
	respond(reqCtx, result, err)
}

// ViralScore godoc
// @Summary     Viral potential of a content idea
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       request body ViralScoreRequest true "Content idea"
// @Success     200 {object} responses.GeneralResponse[dashboard.ViralScore]
// @Failure     400 {object} responses.ErrorResponse
// @Failure     422 {object} responses.ErrorResponse
// @Router      /v1/dashboard/viral-score [post]
func (route *DashboardRoute) ViralScore(reqCtx *gin.Context) {
	var request ViralScoreRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.ViralScore(reqCtx.Request.Context(), route.sessions.Session(), request.Content)
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) ContentCalendar(reqCtx *gin.Context) {
	var request ContentCalendarRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.ContentCalendar(reqCtx.Request.Context(), route.sessions.Session(), request.Timeframe)
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) PostingSchedule(reqCtx *gin.Context) {
	var request PostingScheduleRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.PostingSchedule(reqCtx.Request.Context(), route.sessions.Session(), request.ContentType)
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) HashtagStrategy(reqCtx *gin.Context) {
	var request HashtagStrategyRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.HashtagStrategy(reqCtx.Request.Context(), route.sessions.Session(), request.Topic, request.Region)
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) ContentIdeas(reqCtx *gin.Context) {
	var request ContentIdeasRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.ContentIdeas(reqCtx.Request.Context(), route.sessions.Session(), request.Country)
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) Recommendations(reqCtx *gin.Context) {
	var request RecommendationsRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.Recommendations(reqCtx.Request.Context(), route.sessions.Session(), request.EntityType)
	respond(reqCtx, result, err)
}

// GlobalInsights godoc
// @Summary     Worldwide engagement and trends for the niche
// @Description Scores engagement potential per country and lists global trends, regional summaries and leading creators.
// @Tags        dashboard
// @Produce     json
// @Success     200 {object} responses.GeneralResponse[dashboard.GlobalInsights]
// @Failure     422 {object} responses.ErrorResponse
// @Router      /v1/dashboard/global-insights [post]
func (route *DashboardRoute) GlobalInsights(reqCtx *gin.Context) {
	result, err := route.service.GlobalInsights(reqCtx.Request.Context(), route.sessions.Session())
	respond(reqCtx, result, err)
}

// TrendingSounds godoc
// @Summary     Trending audio on a platform
// @Tags        dashboard
// @Accept      json
// @Produce     json
// @Param       request body TrendingSoundsRequest false "Platform and region"
// @Success     200 {object} responses.GeneralResponse[dashboard.TrendingSounds]
// @Failure     400 {object} responses.ErrorResponse
// @Router      /v1/dashboard/trending-sounds [post]
func (route *DashboardRoute) TrendingSounds(reqCtx *gin.Context) {
	var request TrendingSoundsRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.TrendingSounds(reqCtx.Request.Context(), route.sessions.Session(), request.Platform, request.Region)
	respond(reqCtx, result, err)
}

func (route *DashboardRoute) BrandCollaborations(reqCtx *gin.Context) {
	var request BrandCollaborationsRequest
	if !bindOptionalJSON(reqCtx, &request) {
		return
	}
	result, err := route.service.BrandCollaborations(reqCtx.Request.Context(), route.sessions.Session(), request.Platform)
	respond(reqCtx, result, err)
}
