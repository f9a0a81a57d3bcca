package mcpimpl

import (
	"context"
	"encoding/json"

	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/dashboard"
)

// DashboardMCP exposes the dashboard features as MCP tools.
type DashboardMCP struct {
	service  *dashboard.Service
	sessions *dashboard.SessionFactory
}

func NewDashboardMCP(service *dashboard.Service, sessions *dashboard.SessionFactory) *DashboardMCP {
	return &DashboardMCP{
		service:  service,
		sessions: sessions,
	}
}

func toolResult[T any](result *T, err *common.Error) (*mcp.CallToolResult, error) {
	if err != nil {
		payload, _ := json.Marshal(err)
		return mcp.NewToolResultError(string(payload)), nil
	}
	payload, marshalErr := json.Marshal(result)
	if marshalErr != nil {
		return nil, marshalErr
	}
	return mcp.NewToolResultText(string(payload)), nil
}

func (d *DashboardMCP) RegisterTools(server *mcpserver.MCPServer) {
	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureMarketMap),
			mcp.WithDescription("Rank the countries where the creator's niche resonates most, with each country's trending topics"),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.MarketMap(ctx, d.sessions.Session())
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureGrowthStrategy),
			mcp.WithDescription("Write an audience growth strategy for the creator profile"),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.GrowthStrategy(ctx, d.sessions.Session())
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureCompetitorAnalysis),
			mcp.WithDescription("Research leading creators in the niche and analyse the competitive landscape"),
			mcp.WithString("region", mcp.Description("Market to analyse, e.g. global, US, Brazil")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.CompetitorAnalysis(ctx, d.sessions.Session(), request.GetString("region", ""))
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureViralScore),
			mcp.WithDescription("Score the viral potential (1-100) of a content idea"),
			mcp.WithString("content", mcp.Required(), mcp.Description("The content idea to score")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			content, err := request.RequireString("content")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			result, cerr := d.service.ViralScore(ctx, d.sessions.Session(), content)
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureContentCalendar),
			mcp.WithDescription("Plan a content calendar around current trends"),
			mcp.WithString("timeframe", mcp.Enum("daily", "weekly", "monthly"), mcp.Description("Calendar span, monthly by default")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.ContentCalendar(ctx, d.sessions.Session(), request.GetString("timeframe", ""))
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeaturePostingSchedule),
			mcp.WithDescription("Recommend posting days and hours for the audience"),
			mcp.WithString("content_type", mcp.Description("post, story, reel, video...")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.PostingSchedule(ctx, d.sessions.Session(), request.GetString("content_type", ""))
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureHashtagStrategy),
			mcp.WithDescription("Suggest hashtags for a topic"),
			mcp.WithString("topic", mcp.Required(), mcp.Description("Content topic")),
			mcp.WithString("region", mcp.Description("Target region, global by default")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			topic, err := request.RequireString("topic")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			result, cerr := d.service.HashtagStrategy(ctx, d.sessions.Session(), topic, request.GetString("region", ""))
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureContentIdeas),
			mcp.WithDescription("Research content ideas built on a country's trending topics"),
			mcp.WithString("country", mcp.Description("Two-letter country code, the strongest market by default")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.ContentIdeas(ctx, d.sessions.Session(), request.GetString("country", ""))
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureRecommendations),
			mcp.WithDescription("List entities people interested in the niche also like"),
			mcp.WithString("entity_type", mcp.Required(), mcp.Description("movie, artist, book, brand, destination, person, place, podcast, tv_show or video_game")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			entityType, err := request.RequireString("entity_type")
			if err != nil {
				return mcp.NewToolResultError(err.Error()), nil
			}
			result, cerr := d.service.Recommendations(ctx, d.sessions.Session(), entityType)
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureGlobalInsights),
			mcp.WithDescription("Score engagement potential per country and summarize global and regional trends for the niche"),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.GlobalInsights(ctx, d.sessions.Session())
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureTrendingSounds),
			mcp.WithDescription("List audio currently trending on a platform"),
			mcp.WithString("platform", mcp.Enum("tiktok", "instagram", "youtube"), mcp.Description("Platform, tiktok by default")),
			mcp.WithString("region", mcp.Description("Region, global by default")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.TrendingSounds(ctx, d.sessions.Session(), request.GetString("platform", ""), request.GetString("region", ""))
			return toolResult(result, cerr)
		},
	)

	server.AddTool(
		mcp.NewTool(string(dashboard.FeatureBrandCollaboration),
			mcp.WithDescription("Find brands running influencer programs that fit the niche and audience"),
			mcp.WithString("platform", mcp.Enum("tiktok", "instagram", "youtube"), mcp.Description("Platform, tiktok by default")),
		),
		func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
			result, cerr := d.service.BrandCollaborations(ctx, d.sessions.Session(), request.GetString("platform", ""))
			return toolResult(result, cerr)
		},
	)
}
