package llm

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

func TestGrowthStrategyPrompt(t *testing.T) {
	prompt, err := GrowthStrategyPrompt(GrowthStrategyInput{
		Niche:      "fitness",
		Audience:   "18-24",
		Goals:      []string{"grow followers"},
		TopMarkets: []Market{{Country: "US", Name: "United States", Weight: 0.8}},
	})
	require.NoError(t, err)
	assert.Equal(t, TemplateGrowthStrategy, prompt.Template)
	assert.False(t, prompt.JSON)
	assert.Contains(t, prompt.User, "Niche: fitness")
	assert.Contains(t, prompt.User, "US (United States): 80%")
	assert.Contains(t, prompt.User, "Goals: grow followers")
	assert.NotContains(t, prompt.User, "Platforms:")
}

func TestContentCalendarPrompt_LimitsTrends(t *testing.T) {
	trends := make([]string, 15)
	for i := range trends {
		trends[i] = fmt.Sprintf("topic-%02d", i)
	}
	prompt, err := ContentCalendarPrompt(ContentCalendarInput{Timeframe: "weekly", Niche: "cooking", Audience: "parents", Trends: trends})
	require.NoError(t, err)
	assert.Contains(t, prompt.User, "Create a weekly content calendar for a cooking creator")
	assert.Contains(t, prompt.User, "topic-09")
	assert.NotContains(t, prompt.User, "topic-10")
}

func TestJSONPrompts(t *testing.T) {
	viral, err := ViralPotentialPrompt(ViralPotentialInput{Content: "5 minute abs", Niche: "fitness", Audience: "18-24", Trends: []string{"HIIT"}})
	require.NoError(t, err)
	assert.True(t, viral.JSON)
	assert.Contains(t, viral.User, `"5 minute abs"`)
	assert.Contains(t, viral.User, "viral_score")

	posting, err := PostingTimesPrompt(PostingTimesInput{Audience: "18-24", ContentType: "reel"})
	require.NoError(t, err)
	assert.True(t, posting.JSON)
	assert.Contains(t, posting.User, "Content type: reel")

	hashtags, err := HashtagStrategyPrompt(HashtagStrategyInput{Topic: "running", Audience: "students", Region: "global"})
	require.NoError(t, err)
	assert.True(t, hashtags.JSON)
	assert.Contains(t, hashtags.User, "Topic: running")
}

func TestCompetitorLandscapePrompt(t *testing.T) {
	prompt, err := CompetitorLandscapePrompt(CompetitorLandscapeInput{
		Niche:       "gaming",
		Audience:    "teens",
		Region:      "JP",
		Competitors: []CompetitorSummary{{Name: "Pekora", Platform: "YouTube"}},
	})
	require.NoError(t, err)
	assert.Contains(t, prompt.User, "gaming niche in the JP market")
	assert.Contains(t, prompt.User, "- Pekora on YouTube")
}

func TestDecodeJSON(t *testing.T) {
	type schedule struct {
		BestDays []string `json:"best_days"`
	}

	out, err := DecodeJSON[schedule](TemplatePostingTimes, Completion{Text: "```json\n{\"best_days\": [\"Tuesday\"]}\n```"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Tuesday"}, out.BestDays)

	_, err = DecodeJSON[schedule](TemplatePostingTimes, Completion{Text: "Tuesdays are best"})
	assert.ErrorIs(t, err, upstream.ErrMalformedResponse)
}
