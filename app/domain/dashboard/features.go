package dashboard

import (
	"context"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/insights"
	"menlo.ai/creator-insights-gateway/app/domain/llm"
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
	"menlo.ai/creator-insights-gateway/app/utils/functional"
)

var nicheAndAudience = []profile.Field{profile.FieldNiche, profile.FieldAudience}

// MarketMap ranks the profile's strongest countries and attaches each one's trending topics.
func (s *Service) MarketMap(ctx context.Context, session *Session) (*MarketMap, *common.Error) {
	return run(ctx, session, FeatureMarketMap, nicheAndAudience, nil, func(ctx context.Context, p profile.UserProfile) (MarketMap, error) {
		top, err := s.topMarkets(ctx, p)
		if err != nil {
			return MarketMap{}, err
		}
		markets := make([]Market, 0, len(top))
		for _, geo := range top {
			trends, err := s.insights.RegionalTrends(ctx, insights.TrendsQuery{
				Country:  geo.Country,
				Category: p.Niche,
				Audience: p.Audience,
			})
			if err != nil {
				return MarketMap{}, err
			}
			markets = append(markets, Market{
				Country: geo.Country,
				Name:    geo.Name,
				Weight:  geo.Weight,
				Topics:  trends.Topics,
			})
		}
		return MarketMap{Niche: p.Niche, Audience: p.Audience, Markets: markets}, nil
	})
}

// GrowthStrategy feeds the profile's top markets into the growth strategy prompt.
func (s *Service) GrowthStrategy(ctx context.Context, session *Session) (*GrowthStrategy, *common.Error) {
	return run(ctx, session, FeatureGrowthStrategy, nicheAndAudience, nil, func(ctx context.Context, p profile.UserProfile) (GrowthStrategy, error) {
		top, err := s.topMarkets(ctx, p)
		if err != nil {
			return GrowthStrategy{}, err
		}
		prompt, err := llm.GrowthStrategyPrompt(llm.GrowthStrategyInput{
			Niche:      p.Niche,
			Audience:   p.Audience,
			Goals:      p.Goals,
			Platforms:  p.Platforms,
			TopMarkets: promptMarkets(top),
		})
		if err != nil {
			return GrowthStrategy{}, err
		}
		completion, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return GrowthStrategy{}, err
		}
		return GrowthStrategy{Strategy: completion.Text, Markets: top, Model: completion.Model}, nil
	})
}

// CompetitorAnalysis researches leading creators of the niche and asks the language model to
// position the user against them.
func (s *Service) CompetitorAnalysis(ctx context.Context, session *Session, region string) (*CompetitorAnalysis, *common.Error) {
	region = strings.TrimSpace(region)
	if region == "" {
		region = "global"
	}
	params := responsecache.Params{"region": strings.ToLower(region)}
	return run(ctx, session, FeatureCompetitorAnalysis, nicheAndAudience, params, func(ctx context.Context, p profile.UserProfile) (CompetitorAnalysis, error) {
		list, answer, err := research.AskStructured[research.CompetitorList](ctx, s.research, research.Query{
			Question: competitorQuestion(p, region),
		})
		if err != nil {
			return CompetitorAnalysis{}, err
		}
		competitors := namedCompetitors(list.Competitors)

		summaries := functional.Map(competitors, func(c research.Competitor) llm.CompetitorSummary {
			return llm.CompetitorSummary(c)
		})
		prompt, err := llm.CompetitorLandscapePrompt(llm.CompetitorLandscapeInput{
			Niche:       p.Niche,
			Audience:    p.Audience,
			Region:      region,
			Competitors: summaries,
		})
		if err != nil {
			return CompetitorAnalysis{}, err
		}
		completion, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return CompetitorAnalysis{}, err
		}
		return CompetitorAnalysis{
			Region:      region,
			Competitors: competitors,
			Citations:   answer.Citations,
			Analysis:    completion.Text,
		}, nil
	})
}

func competitorQuestion(p profile.UserProfile, region string) string {
	where := "globally"
	if !strings.EqualFold(region, "global") {
		where = "in " + region
	}
	return fmt.Sprintf(`Find the top 5 successful %s content creators targeting %s %s.

For each creator, provide exact details:
- name: exact creator name or handle
- platform: primary platform (TikTok, Instagram, YouTube, etc.)
- followers: follower count (e.g., "2.5M", "500K")
- content_style: brief description of their content style
- success_factor: what makes them successful (1-2 sentences)

Focus on diverse creators, not the same creator repeatedly.`, p.Niche, p.Audience, where)
}

type viralPotentialAnswer struct {
	Score                *float64   `json:"viral_score"`
	Reasons              stringList `json:"reasons"`
	Improvements         stringList `json:"improvements"`
	Timing               string     `json:"timing"`
	Hashtags             stringList `json:"hashtag_strategy"`
	EngagementPrediction string     `json:"engagement_prediction"`
}

// ViralScore has the language model rate content against the top market's current trends.
func (s *Service) ViralScore(ctx context.Context, session *Session, content string) (*ViralScore, *common.Error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, toError(FeatureViralScore, invalidInput("content is required"))
	}
	if utf8.RuneCountInString(content) > maxContentLength {
		return nil, toError(FeatureViralScore, invalidInput("content must be at most %d characters", maxContentLength))
	}
	params := responsecache.Params{"content": content}
	return run(ctx, session, FeatureViralScore, nicheAndAudience, params, func(ctx context.Context, p profile.UserProfile) (ViralScore, error) {
		trends, err := s.topMarketTrends(ctx, p)
		if err != nil {
			return ViralScore{}, err
		}
		prompt, err := llm.ViralPotentialPrompt(llm.ViralPotentialInput{
			Content:  content,
			Niche:    p.Niche,
			Audience: p.Audience,
			Trends:   trends.Topics,
		})
		if err != nil {
			return ViralScore{}, err
		}
		completion, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return ViralScore{}, err
		}
		answer, err := llm.DecodeJSON[viralPotentialAnswer](prompt.Template, completion)
		if err != nil {
			return ViralScore{}, err
		}
		if answer.Score == nil {
			return ViralScore{}, upstream.Malformed(upstream.ServiceOpenAI, string(prompt.Template), "viral_score is missing")
		}
		score := int(math.Round(*answer.Score))
		if score < 1 || score > 100 {
			return ViralScore{}, upstream.Malformed(upstream.ServiceOpenAI, string(prompt.Template), "viral_score %d is outside 1-100", score)
		}
		return ViralScore{
			Content:              content,
			Score:                score,
			Reasons:              answer.Reasons.orEmpty(),
			Improvements:         answer.Improvements.orEmpty(),
			Timing:               answer.Timing,
			Hashtags:             normalizeHashtags(answer.Hashtags),
			EngagementPrediction: answer.EngagementPrediction,
			Country:              trends.Country,
			Trends:               trends.Topics,
		}, nil
	})
}

var timeframes = map[string]bool{"daily": true, "weekly": true, "monthly": true}

// ContentCalendar plans content for timeframe around the top market's trending topics.
func (s *Service) ContentCalendar(ctx context.Context, session *Session, timeframe string) (*ContentCalendar, *common.Error) {
	timeframe = strings.ToLower(strings.TrimSpace(timeframe))
	if timeframe == "" {
		timeframe = "monthly"
	}
	if !timeframes[timeframe] {
		return nil, toError(FeatureContentCalendar, invalidInput("timeframe must be daily, weekly or monthly"))
	}
	params := responsecache.Params{"timeframe": timeframe}
	return run(ctx, session, FeatureContentCalendar, nicheAndAudience, params, func(ctx context.Context, p profile.UserProfile) (ContentCalendar, error) {
		trends, err := s.topMarketTrends(ctx, p)
		if err != nil {
			return ContentCalendar{}, err
		}
		prompt, err := llm.ContentCalendarPrompt(llm.ContentCalendarInput{
			Timeframe: timeframe,
			Niche:     p.Niche,
			Audience:  p.Audience,
			Trends:    trends.Topics,
		})
		if err != nil {
			return ContentCalendar{}, err
		}
		completion, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return ContentCalendar{}, err
		}
		return ContentCalendar{
			Timeframe: timeframe,
			Country:   trends.Country,
			Trends:    trends.Topics,
			Calendar:  completion.Text,
		}, nil
	})
}

type postingTimesAnswer struct {
	BestDays               stringList `json:"best_days"`
	OptimalHours           stringList `json:"optimal_hours"`
	TimezoneConsiderations string     `json:"timezone_considerations"`
	ContentFrequency       string     `json:"content_frequency"`
	SeasonalAdjustments    string     `json:"seasonal_adjustments"`
}

// PostingSchedule recommends posting days and hours from the audience's geographic spread.
func (s *Service) PostingSchedule(ctx context.Context, session *Session, contentType string) (*PostingSchedule, *common.Error) {
	contentType = strings.ToLower(strings.TrimSpace(contentType))
	if contentType == "" {
		contentType = "post"
	}
	params := responsecache.Params{"content_type": contentType}
	return run(ctx, session, FeaturePostingSchedule, []profile.Field{profile.FieldAudience}, params, func(ctx context.Context, p profile.UserProfile) (PostingSchedule, error) {
		top, err := s.topMarkets(ctx, p)
		if err != nil {
			return PostingSchedule{}, err
		}
		prompt, err := llm.PostingTimesPrompt(llm.PostingTimesInput{
			Audience:    p.Audience,
			ContentType: contentType,
			Markets:     promptMarkets(top),
		})
		if err != nil {
			return PostingSchedule{}, err
		}
		completion, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return PostingSchedule{}, err
		}
		answer, err := llm.DecodeJSON[postingTimesAnswer](prompt.Template, completion)
		if err != nil {
			return PostingSchedule{}, err
		}
		if len(answer.BestDays) == 0 || len(answer.OptimalHours) == 0 {
			return PostingSchedule{}, upstream.Malformed(upstream.ServiceOpenAI, string(prompt.Template), "best_days and optimal_hours are required")
		}
		return PostingSchedule{
			ContentType:            contentType,
			BestDays:               answer.BestDays,
			OptimalHours:           answer.OptimalHours,
			TimezoneConsiderations: answer.TimezoneConsiderations,
			ContentFrequency:       answer.ContentFrequency,
			SeasonalAdjustments:    answer.SeasonalAdjustments,
		}, nil
	})
}

type hashtagAnswer struct {
	Hashtags stringList `json:"hashtags"`
}

// HashtagStrategy suggests hashtags for topic in region.
func (s *Service) HashtagStrategy(ctx context.Context, session *Session, topic string, region string) (*HashtagStrategy, *common.Error) {
	topic = strings.TrimSpace(topic)
	if topic == "" {
		return nil, toError(FeatureHashtagStrategy, invalidInput("topic is required"))
	}
	region = strings.TrimSpace(region)
	if region == "" {
		region = "global"
	}
	params := responsecache.Params{"topic": strings.ToLower(topic), "region": strings.ToLower(region)}
	return run(ctx, session, FeatureHashtagStrategy, []profile.Field{profile.FieldAudience}, params, func(ctx context.Context, p profile.UserProfile) (HashtagStrategy, error) {
		prompt, err := llm.HashtagStrategyPrompt(llm.HashtagStrategyInput{
			Topic:    topic,
			Audience: p.Audience,
			Region:   region,
		})
		if err != nil {
			return HashtagStrategy{}, err
		}
		completion, err := s.llm.Complete(ctx, prompt)
		if err != nil {
			return HashtagStrategy{}, err
		}
		tags, err := parseHashtags(prompt.Template, completion)
		if err != nil {
			return HashtagStrategy{}, err
		}
		return HashtagStrategy{Topic: topic, Region: region, Hashtags: tags}, nil
	})
}

// parseHashtags accepts {"hashtags": [...]} or a bare JSON array.
func parseHashtags(template llm.Template, completion llm.Completion) ([]string, error) {
	var tags []string
	if answer, err := llm.DecodeJSON[hashtagAnswer](template, completion); err == nil {
		tags = normalizeHashtags(answer.Hashtags)
	} else if list, listErr := llm.DecodeJSON[stringList](template, completion); listErr == nil {
		tags = normalizeHashtags(list)
	} else {
		return nil, err
	}
	if len(tags) == 0 {
		return nil, upstream.Malformed(upstream.ServiceOpenAI, string(template), "no hashtags in completion")
	}
	return tags, nil
}

// ContentIdeas researches content ideas built on a country's trending topics. An empty
// country selects the profile's strongest market.
func (s *Service) ContentIdeas(ctx context.Context, session *Session, country string) (*ContentIdeas, *common.Error) {
	country = strings.ToUpper(strings.TrimSpace(country))
	if country != "" && utf8.RuneCountInString(country) != 2 {
		return nil, toError(FeatureContentIdeas, invalidInput("country must be a two-letter country code"))
	}
	params := responsecache.Params{"country": country}
	return run(ctx, session, FeatureContentIdeas, nicheAndAudience, params, func(ctx context.Context, p profile.UserProfile) (ContentIdeas, error) {
		var (
			trends insights.RegionalTrends
			err    error
		)
		if country == "" {
			trends, err = s.topMarketTrends(ctx, p)
		} else {
			trends, err = s.insights.RegionalTrends(ctx, insights.TrendsQuery{Country: country, Category: p.Niche, Audience: p.Audience})
		}
		if err != nil {
			return ContentIdeas{}, err
		}
		answer, err := s.research.Ask(ctx, research.Query{Question: contentIdeasQuestion(p, trends)})
		if err != nil {
			return ContentIdeas{}, err
		}
		return ContentIdeas{
			Country:   trends.Country,
			Name:      trends.Name,
			Topics:    trends.Topics,
			Ideas:     answer.Text,
			Citations: answer.Citations,
		}, nil
	})
}

func contentIdeasQuestion(p profile.UserProfile, trends insights.RegionalTrends) string {
	topics := "No specific topics available"
	if len(trends.Topics) > 0 {
		head := trends.Topics
		if len(head) > 5 {
			head = head[:5]
		}
		topics = strings.Join(head, ", ")
	}
	return fmt.Sprintf(`Generate 5 specific and detailed content ideas for a creator in the %s niche targeting %s in %s.

These are the current trending topics in this region: %s

For each idea, provide:
1. A catchy title
2. Brief description of the content (2-3 sentences)
3. Why this would resonate with the audience
4. Potential hashtags

Format your response as a structured list with clear headings for each idea.`, p.Niche, p.Audience, trends.Name, topics)
}

// Recommendations lists entities of entityType that people interested in the niche also like.
func (s *Service) Recommendations(ctx context.Context, session *Session, entityType string) (*Recommendations, *common.Error) {
	urn, err := insights.EntityTypeURN(entityType)
	if err != nil {
		return nil, toError(FeatureRecommendations, invalidInput("%v", err))
	}
	params := responsecache.Params{"entity_type": urn}
	return run(ctx, session, FeatureRecommendations, []profile.Field{profile.FieldNiche}, params, func(ctx context.Context, p profile.UserProfile) (Recommendations, error) {
		entities, err := s.insights.Recommendations(ctx, insights.RecommendationQuery{
			EntityType:   urn,
			InterestTags: []string{strings.ToLower(p.Niche)},
			Take:         defaultRecommendations,
		})
		if err != nil {
			return Recommendations{}, err
		}
		return Recommendations{EntityType: urn, Entities: entities}, nil
	})
}
