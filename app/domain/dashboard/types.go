package dashboard

import (
	"menlo.ai/creator-insights-gateway/app/domain/insights"
	"menlo.ai/creator-insights-gateway/app/domain/research"
)

type Feature string

const (
	FeatureMarketMap          Feature = "market_map"
	FeatureGrowthStrategy     Feature = "growth_strategy"
	FeatureCompetitorAnalysis Feature = "competitor_analysis"
	FeatureViralScore         Feature = "viral_score"
	FeatureContentCalendar    Feature = "content_calendar"
	FeaturePostingSchedule    Feature = "posting_schedule"
	FeatureHashtagStrategy    Feature = "hashtag_strategy"
	FeatureContentIdeas       Feature = "content_ideas"
	FeatureRecommendations    Feature = "recommendations"
	FeatureGlobalInsights     Feature = "global_insights"
	FeatureTrendingSounds     Feature = "trending_sounds"
	FeatureBrandCollaboration Feature = "brand_collaborations"
)

// Features lists every dashboard feature.
var Features = []Feature{
	FeatureMarketMap,
	FeatureGrowthStrategy,
	FeatureCompetitorAnalysis,
	FeatureViralScore,
	FeatureContentCalendar,
	FeaturePostingSchedule,
	FeatureHashtagStrategy,
	FeatureContentIdeas,
	FeatureRecommendations,
	FeatureGlobalInsights,
	FeatureTrendingSounds,
	FeatureBrandCollaboration,
}

func (f Feature) Valid() bool {
	for _, known := range Features {
		if f == known {
			return true
		}
	}
	return false
}

type Market struct {
	Country string   `json:"country"`
	Name    string   `json:"name"`
	Weight  float64  `json:"weight"`
	Topics  []string `json:"topics"`
}

type MarketMap struct {
	Niche    string   `json:"niche"`
	Audience string   `json:"audience"`
	Markets  []Market `json:"markets"`
}

type GrowthStrategy struct {
	Strategy string                `json:"strategy"`
	Markets  []insights.GeoInsight `json:"markets"`
	Model    string                `json:"model"`
}

type CompetitorAnalysis struct {
	Region      string                `json:"region"`
	Competitors []research.Competitor `json:"competitors"`
	Citations   []string              `json:"citations"`
	Analysis    string                `json:"analysis"`
}

type ViralScore struct {
	Content              string   `json:"content"`
	Score                int      `json:"viral_score"`
	Reasons              []string `json:"reasons"`
	Improvements         []string `json:"improvements"`
	Timing               string   `json:"timing"`
	Hashtags             []string `json:"hashtag_strategy"`
	EngagementPrediction string   `json:"engagement_prediction"`
	Country              string   `json:"country"`
	Trends               []string `json:"trends"`
}

type ContentCalendar struct {
	Timeframe string   `json:"timeframe"`
	Country   string   `json:"country"`
	Trends    []string `json:"trends"`
	Calendar  string   `json:"calendar"`
}

type PostingSchedule struct {
	ContentType            string   `json:"content_type"`
	BestDays               []string `json:"best_days"`
	OptimalHours           []string `json:"optimal_hours"`
	TimezoneConsiderations string   `json:"timezone_considerations"`
	ContentFrequency       string   `json:"content_frequency"`
	SeasonalAdjustments    string   `json:"seasonal_adjustments"`
}

type HashtagStrategy struct {
	Topic    string   `json:"topic"`
	Region   string   `json:"region"`
	Hashtags []string `json:"hashtags"`
}

type ContentIdeas struct {
	Country   string   `json:"country"`
	Name      string   `json:"name"`
	Topics    []string `json:"topics"`
	Ideas     string   `json:"ideas"`
	Citations []string `json:"citations"`
}

type Recommendations struct {
	EntityType string            `json:"entity_type"`
	Entities   []insights.Entity `json:"entities"`
}

// GlobalInsights is the data behind the world engagement map.
type GlobalInsights struct {
	Niche          string                       `json:"niche"`
	Audience       string                       `json:"audience"`
	Summary        string                       `json:"summary"`
	Countries      []research.CountryEngagement `json:"countries"`
	GlobalTrends   []research.GlobalTrend       `json:"global_trends"`
	RegionalTrends []research.RegionalTrend     `json:"regional_trends"`
	Competitors    []research.Competitor        `json:"competitors"`
	Citations      []string                     `json:"citations"`
}

type TrendingSounds struct {
	Platform  string           `json:"platform"`
	Region    string           `json:"region"`
	Sounds    []research.Sound `json:"sounds"`
	Citations []string         `json:"citations"`
}

type BrandCollaborations struct {
	Platform  string           `json:"platform"`
	Brands    []research.Brand `json:"brands"`
	Citations []string         `json:"citations"`
}
