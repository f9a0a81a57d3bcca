package dashboard

import (
	"context"

	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/insights"
	"menlo.ai/creator-insights-gateway/app/domain/llm"
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/domain/responsecache"
	"menlo.ai/creator-insights-gateway/app/utils/functional"
)

const (
	// DefaultCountry is used when the insights upstream knows no market for the profile.
	DefaultCountry = "US"
	// DefaultCategory stands in for the niche on features that do not require one.
	DefaultCategory = "general"

	defaultMarketCount     = 5
	defaultRecommendations = 10
	maxContentLength       = 2000
)

// Session carries the per-user state every feature reads. It is passed explicitly so that
// features can be exercised with any profile and cache.
type Session struct {
	Profile profile.UserProfile
	Cache   *responsecache.Cache
}

// Service composes the upstream clients into dashboard features.
type Service struct {
	insights    insights.Provider
	research    research.Provider
	llm         llm.Provider
	marketCount int
}

func NewService(insightsProvider insights.Provider, researchProvider research.Provider, llmProvider llm.Provider) *Service {
	return &Service{
		insights:    insightsProvider,
		research:    researchProvider,
		llm:         llmProvider,
		marketCount: defaultMarketCount,
	}
}

// run validates the profile, then serves feature from the session cache, computing it on a miss.
func run[T any](ctx context.Context, session *Session, feature Feature, required []profile.Field, params responsecache.Params, compute func(ctx context.Context, p profile.UserProfile) (T, error)) (*T, *common.Error) {
	p := session.Profile
	if err := p.Require(required...); err != nil {
		return nil, toError(feature, err)
	}

	var (
		result T
		err    error
	)
	if session.Cache == nil {
		result, err = compute(ctx, p)
	} else {
		fingerprint := responsecache.Fingerprint(string(feature), params, p.Version)
		result, err = responsecache.Fetch(ctx, session.Cache, fingerprint, func(ctx context.Context) (T, error) {
			return compute(ctx, p)
		})
	}
	if err != nil {
		return nil, toError(feature, err)
	}
	return &result, nil
}

func category(p profile.UserProfile) string {
	if p.Niche == "" {
		return DefaultCategory
	}
	return p.Niche
}

func (s *Service) topMarkets(ctx context.Context, p profile.UserProfile) ([]insights.GeoInsight, error) {
	geo, err := s.insights.Geography(ctx, insights.GeographyQuery{
		Category: category(p),
		Audience: p.Audience,
	})
	if err != nil {
		return nil, err
	}
	return insights.TopMarkets(geo, s.marketCount), nil
}

// topMarketTrends returns the trending topics of the profile's strongest market.
func (s *Service) topMarketTrends(ctx context.Context, p profile.UserProfile) (insights.RegionalTrends, error) {
	markets, err := s.topMarkets(ctx, p)
	if err != nil {
		return insights.RegionalTrends{}, err
	}
	country := DefaultCountry
	if len(markets) > 0 {
		country = markets[0].Country
	}
	return s.insights.RegionalTrends(ctx, insights.TrendsQuery{
		Country:  country,
		Category: category(p),
		Audience: p.Audience,
	})
}

func promptMarkets(geo []insights.GeoInsight) []llm.Market {
	return functional.Map(geo, func(g insights.GeoInsight) llm.Market {
		return llm.Market{Country: g.Country, Name: g.Name, Weight: g.Weight}
	})
}
