package llm

import (
	"context"
	"encoding/json"

	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

// Template names a fixed prompt shape. It doubles as the upstream operation name.
type Template string

const (
	TemplateGrowthStrategy      Template = "growth_strategy"
	TemplateContentCalendar     Template = "content_calendar"
	TemplateCompetitorLandscape Template = "competitor_landscape"
	TemplateViralPotential      Template = "viral_potential"
	TemplatePostingTimes        Template = "posting_times"
	TemplateHashtagStrategy     Template = "hashtag_strategy"
)

type Prompt struct {
	Template    Template
	System      string
	User        string
	MaxTokens   int
	Temperature float32
	// JSON asks the model for a bare JSON answer.
	JSON bool
}

type Completion struct {
	Text         string `json:"text"`
	Model        string `json:"model"`
	FinishReason string `json:"finish_reason"`
}

type Provider interface {
	Complete(ctx context.Context, prompt Prompt) (Completion, error)
}

// DecodeJSON decodes a JSON completion produced for template into T.
func DecodeJSON[T any](template Template, completion Completion) (T, error) {
	var out T
	if err := json.Unmarshal([]byte(upstream.StripCodeFence(completion.Text)), &out); err != nil {
		return out, upstream.Malformed(upstream.ServiceOpenAI, string(template), "completion is not valid JSON: %v", err)
	}
	return out, nil
}
