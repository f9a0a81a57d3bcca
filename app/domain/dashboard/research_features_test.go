package dashboard

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/creator-insights-gateway/app/domain/profile"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

// schemaResearch answers by the type of the schema a query carries, so concurrent
// questions get their own answer regardless of arrival order.
type schemaResearch struct {
	mu      sync.Mutex
	answers map[string]research.Answer
	errs    map[string]error
	queries []research.Query
}

func (f *schemaResearch) Ask(ctx context.Context, query research.Query) (research.Answer, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.queries = append(f.queries, query)
	key := fmt.Sprintf("%T", query.Schema)
	if err := f.errs[key]; err != nil {
		return research.Answer{}, err
	}
	return f.answers[key], nil
}

func (f *schemaResearch) calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queries)
}

func globalResearch() *schemaResearch {
	return &schemaResearch{answers: map[string]research.Answer{
		"research.EngagementList": {
			Text:      `{"countries": [{"country_code": "usa", "country_name": "United States", "engagement_score": 0.7}, {"country_code": "BRA", "country_name": "Brazil", "engagement_score": 1.4}, {"country_code": "", "engagement_score": 0.9}]}`,
			Citations: []string{"https://example.com/a"},
		},
		"research.TrendList": {
			Text:      "```json\n{\"trends\": [{\"trend\": \"75 Hard\", \"description\": \"A discipline challenge.\", \"regions\": [\"USA\", \"UK\", \"Canada\", \"Australia\"], \"engagement_score\": 87}, {\"trend\": \" \"}]}\n```",
			Citations: []string{"https://example.com/a", "https://example.com/b"},
		},
		"research.RegionalTrendList": {
			Text: `{"regions": [{"region": "India", "summary": "**Yoga reels** dominate."}, {"region": "Europe", "summary": ""}]}`,
		},
		"research.CompetitorList": {
			Text: `{"competitors": [{"name": "Chloe Ting", "platform": "YouTube"}, {"name": ""}]}`,
		},
	}}
}

func TestGlobalInsights(t *testing.T) {
	res := globalResearch()
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})

	result, cerr := svc.GlobalInsights(context.Background(), fitnessSession())
	require.Nil(t, cerr)
	assert.Equal(t, "fitness", result.Niche)

	require.Len(t, result.Countries, 2)
	assert.Equal(t, "BRA", result.Countries[0].CountryCode)
	assert.Equal(t, 1.0, result.Countries[0].EngagementScore)
	assert.Equal(t, "USA", result.Countries[1].CountryCode)

	require.Len(t, result.GlobalTrends, 1)
	assert.Equal(t, "75 Hard", result.GlobalTrends[0].Trend)
	assert.Equal(t, "Leading trend: 75 Hard. A discipline challenge. Popular in USA, UK, Canada with 87/100 engagement potential.", result.Summary)

	assert.Equal(t, []research.RegionalTrend{{Region: "India", Summary: "Yoga reels dominate."}}, result.RegionalTrends)
	require.Len(t, result.Competitors, 1)
	assert.Equal(t, "Chloe Ting", result.Competitors[0].Name)
	assert.Equal(t, []string{"https://example.com/a", "https://example.com/b"}, result.Citations)

	assert.Equal(t, 4, res.calls())
	for _, q := range res.queries {
		assert.Contains(t, q.Question, "fitness")
	}
}

func TestGlobalInsights_ServedFromCache(t *testing.T) {
	res := globalResearch()
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})
	session := fitnessSession()

	_, cerr := svc.GlobalInsights(context.Background(), session)
	require.Nil(t, cerr)
	_, cerr = svc.GlobalInsights(context.Background(), session)
	require.Nil(t, cerr)
	assert.Equal(t, 4, res.calls())
}

func TestGlobalInsights_FallbackSummaryWithoutTrends(t *testing.T) {
	res := globalResearch()
	res.answers["research.TrendList"] = research.Answer{Text: `{"trends": []}`}
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})

	result, cerr := svc.GlobalInsights(context.Background(), fitnessSession())
	require.Nil(t, cerr)
	assert.Empty(t, result.GlobalTrends)
	assert.Equal(t, "Current fitness trends show dynamic engagement patterns across global markets.", result.Summary)
}

func TestGlobalInsights_Failures(t *testing.T) {
	t.Run("no country scores", func(t *testing.T) {
		res := globalResearch()
		res.answers["research.EngagementList"] = research.Answer{Text: `{"countries": []}`}
		svc := NewService(&fakeInsights{}, res, &fakeLLM{})

		_, cerr := svc.GlobalInsights(context.Background(), fitnessSession())
		require.NotNil(t, cerr)
		assert.Equal(t, KindMalformed, cerr.Kind)
		assert.Equal(t, "global_insights.malformed_response", cerr.Code)
	})

	t.Run("one question fails", func(t *testing.T) {
		res := globalResearch()
		res.errs = map[string]error{"research.RegionalTrendList": upstream.NewError(upstream.ServicePerplexity, research.OperationQuery, upstream.ErrRateLimited, 429, nil)}
		svc := NewService(&fakeInsights{}, res, &fakeLLM{})
		session := fitnessSession()

		_, cerr := svc.GlobalInsights(context.Background(), session)
		require.NotNil(t, cerr)
		assert.Equal(t, KindRateLimit, cerr.Kind)

		res.errs = nil
		result, cerr := svc.GlobalInsights(context.Background(), session)
		require.Nil(t, cerr)
		assert.NotEmpty(t, result.Countries)
	})

	t.Run("incomplete profile", func(t *testing.T) {
		res := globalResearch()
		svc := NewService(&fakeInsights{}, res, &fakeLLM{})

		_, cerr := svc.GlobalInsights(context.Background(), &Session{Profile: profile.UserProfile{Niche: "fitness"}})
		require.NotNil(t, cerr)
		assert.Equal(t, KindIncompleteProfile, cerr.Kind)
		assert.Zero(t, res.calls())
	})
}

func TestTrendingSounds(t *testing.T) {
	res := &schemaResearch{answers: map[string]research.Answer{
		"research.SoundList": {
			Text:      `{"sounds": [{"title": "<b>Espresso</b>", "artist": "Sabrina Carpenter", "duration": 30, "trend_score": 140, "hashtags": ["#espresso", "espresso"]}, {"title": ""}]}`,
			Citations: []string{"https://example.com/s"},
		},
	}}
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})
	session := &Session{Profile: profile.UserProfile{Version: 1}}

	result, cerr := svc.TrendingSounds(context.Background(), session, "", "")
	require.Nil(t, cerr)
	assert.Equal(t, "tiktok", result.Platform)
	assert.Equal(t, "global", result.Region)
	require.Len(t, result.Sounds, 1)
	assert.Equal(t, "Espresso", result.Sounds[0].Title)
	assert.Equal(t, 100, result.Sounds[0].TrendScore)
	assert.Equal(t, []string{"espresso"}, result.Sounds[0].Hashtags)
	assert.Equal(t, []string{}, result.Sounds[0].BestContentTypes)
	assert.Equal(t, []string{"https://example.com/s"}, result.Citations)

	require.Len(t, res.queries, 1)
	assert.Contains(t, res.queries[0].Question, "on TikTok globally")
	assert.NotContains(t, res.queries[0].Question, "content globally")
}

func TestTrendingSounds_NicheAndRegionShapeQuestion(t *testing.T) {
	res := &schemaResearch{answers: map[string]research.Answer{
		"research.SoundList": {Text: `{"sounds": [{"title": "Gym Phonk"}]}`},
	}}
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})
	session := fitnessSession()

	_, cerr := svc.TrendingSounds(context.Background(), session, "YouTube", "Brazil")
	require.Nil(t, cerr)
	_, cerr = svc.TrendingSounds(context.Background(), session, "youtube", "brazil")
	require.Nil(t, cerr)

	require.Len(t, res.queries, 1)
	assert.Contains(t, res.queries[0].Question, "on YouTube for fitness content in Brazil")
}

func TestTrendingSounds_Failures(t *testing.T) {
	res := &schemaResearch{answers: map[string]research.Answer{
		"research.SoundList": {Text: `{"sounds": [{"title": "  "}]}`},
	}}
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})

	_, cerr := svc.TrendingSounds(context.Background(), fitnessSession(), "myspace", "")
	require.NotNil(t, cerr)
	assert.Equal(t, KindInvalidInput, cerr.Kind)
	assert.Equal(t, ActionFixInput, cerr.Action)
	assert.Zero(t, res.calls())

	_, cerr = svc.TrendingSounds(context.Background(), fitnessSession(), "tiktok", "")
	require.NotNil(t, cerr)
	assert.Equal(t, KindMalformed, cerr.Kind)
}

func TestBrandCollaborations(t *testing.T) {
	res := &schemaResearch{answers: map[string]research.Answer{
		"research.BrandList": {
			Text: `{"brands": [
				{"name": "**Gymshark**", "fit_reason": "Sponsors <i>fitness</i> creators.", "collaboration_types": ["Sponsored Posts", " "], "value_range": "$500-$2,000", "approach": "Apply through influencer portal"},
				{"name": ""}
			]}`,
			Citations: []string{"https://example.com/g"},
		},
	}}
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})

	result, cerr := svc.BrandCollaborations(context.Background(), fitnessSession(), "Instagram")
	require.Nil(t, cerr)
	assert.Equal(t, "instagram", result.Platform)
	require.Len(t, result.Brands, 1)
	assert.Equal(t, research.Brand{
		Name:               "Gymshark",
		FitReason:          "Sponsors fitness creators.",
		CollaborationTypes: []string{"Sponsored Posts"},
		ValueRange:         "$500-$2,000",
		Approach:           "Apply through influencer portal",
	}, result.Brands[0])
	assert.Equal(t, []string{"https://example.com/g"}, result.Citations)
	assert.Contains(t, res.queries[0].Question, "fitness content creators targeting 18-24 on Instagram")
}

func TestBrandCollaborations_Failures(t *testing.T) {
	res := &schemaResearch{answers: map[string]research.Answer{
		"research.BrandList": {Text: `not json`},
	}}
	svc := NewService(&fakeInsights{}, res, &fakeLLM{})

	_, cerr := svc.BrandCollaborations(context.Background(), &Session{Profile: profile.UserProfile{Audience: "18-24"}}, "")
	require.NotNil(t, cerr)
	assert.Equal(t, KindIncompleteProfile, cerr.Kind)
	assert.Zero(t, res.calls())

	_, cerr = svc.BrandCollaborations(context.Background(), fitnessSession(), "")
	require.NotNil(t, cerr)
	assert.Equal(t, KindMalformed, cerr.Kind)
	assert.Equal(t, "brand_collaborations.malformed_response", cerr.Code)
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "Yoga reels dominate.", cleanText("  **Yoga   reels** <br/>dominate. "))
	assert.Equal(t, "#fitness", cleanText("#fitness"))
	assert.Equal(t, "", cleanText("<p></p>"))
}
