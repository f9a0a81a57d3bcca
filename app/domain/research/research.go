package research

import (
	"context"
	"encoding/json"

	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

const OperationQuery = "research_query"

// Query is a single free-text research question.
type Query struct {
	Question  string
	System    string
	MaxTokens int
	// Schema, when set, is a Go value whose type describes the JSON the answer must follow.
	Schema any
}

type Answer struct {
	Text      string   `json:"text"`
	Citations []string `json:"citations"`
	Model     string   `json:"model"`
}

// Provider is the real-time research upstream.
type Provider interface {
	Ask(ctx context.Context, query Query) (Answer, error)
}

// AskStructured asks query with T's JSON schema attached and decodes the answer into T.
func AskStructured[T any](ctx context.Context, provider Provider, query Query) (T, Answer, error) {
	var out T
	query.Schema = out
	answer, err := provider.Ask(ctx, query)
	if err != nil {
		return out, answer, err
	}
	if err := json.Unmarshal([]byte(upstream.StripCodeFence(answer.Text)), &out); err != nil {
		return out, answer, upstream.Malformed(upstream.ServicePerplexity, OperationQuery, "structured answer: %v", err)
	}
	return out, answer, nil
}
