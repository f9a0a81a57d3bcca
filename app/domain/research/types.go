package research

type Competitor struct {
	Name          string `json:"name"`
	Platform      string `json:"platform"`
	Followers     string `json:"followers"`
	ContentStyle  string `json:"content_style"`
	SuccessFactor string `json:"success_factor"`
}

type CompetitorList struct {
	Competitors []Competitor `json:"competitors"`
}

type GlobalTrend struct {
	Trend           string   `json:"trend"`
	Description     string   `json:"description"`
	Regions         []string `json:"regions"`
	EngagementScore int      `json:"engagement_score"`
}

type TrendList struct {
	Trends []GlobalTrend `json:"trends"`
}

type CountryEngagement struct {
	CountryCode     string  `json:"country_code"`
	CountryName     string  `json:"country_name"`
	EngagementScore float64 `json:"engagement_score"`
	MarketSize      string  `json:"market_size"`
	KeyInsights     string  `json:"key_insights"`
}

type EngagementList struct {
	Countries []CountryEngagement `json:"countries"`
}

// RegionalTrend summarizes what content works in one world region.
type RegionalTrend struct {
	Region  string `json:"region"`
	Summary string `json:"summary"`
}

type RegionalTrendList struct {
	Regions []RegionalTrend `json:"regions"`
}

// Sound is a trending audio track on a short-video platform.
type Sound struct {
	Title            string   `json:"title"`
	Artist           string   `json:"artist"`
	Duration         int      `json:"duration"`
	Genre            string   `json:"genre"`
	Mood             string   `json:"mood"`
	ViralPotential   string   `json:"viral_potential"`
	UsageCount       int64    `json:"usage_count"`
	TrendScore       int      `json:"trend_score"`
	Hashtags         []string `json:"hashtags"`
	BestContentTypes []string `json:"best_content_types"`
	PeakUsageTime    string   `json:"peak_usage_time"`
}

type SoundList struct {
	Sounds []Sound `json:"sounds"`
}

// Brand is a brand open to influencer partnerships.
type Brand struct {
	Name               string   `json:"name"`
	FitReason          string   `json:"fit_reason"`
	CollaborationTypes []string `json:"collaboration_types"`
	ValueRange         string   `json:"value_range"`
	Approach           string   `json:"approach"`
}

type BrandList struct {
	Brands []Brand `json:"brands"`
}
