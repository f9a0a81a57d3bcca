package perplexity

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL, "pplx-key", "sonar-pro", 5*time.Second).WithRetryPolicy(upstream.RetryPolicy{
		MaxAttempts:         3,
		MaxRateLimitRetries: 1,
		InitialInterval:     time.Millisecond,
		MaxInterval:         2 * time.Millisecond,
	})
}

type capturedRequest struct {
	Model          string `json:"model"`
	MaxTokens      int    `json:"max_tokens"`
	ResponseFormat *struct {
		Type       string          `json:"type"`
		JSONSchema json.RawMessage `json:"json_schema"`
	} `json:"response_format"`
	Messages []struct {
		Role    string `json:"role"`
		Content string `json:"content"`
	} `json:"messages"`
}

func TestAsk_PlainQuestion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer pplx-key", r.Header.Get("Authorization"))

		var body capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "sonar-pro", body.Model)
		assert.Equal(t, defaultMaxTokens, body.MaxTokens)
		assert.Nil(t, body.ResponseFormat)
		require.Len(t, body.Messages, 2)
		assert.Equal(t, "What is trending in fitness?", body.Messages[1].Content)

		w.Write([]byte(`{"model": "sonar-pro", "choices": [{"message": {"content": "  HIIT is trending.  "}}], "citations": ["https://example.com"]}`))
	})

	answer, err := client.Ask(context.Background(), research.Query{Question: "What is trending in fitness?"})
	require.NoError(t, err)
	assert.Equal(t, "HIIT is trending.", answer.Text)
	assert.Equal(t, []string{"https://example.com"}, answer.Citations)
}

func TestAskStructured_DecodesSchemaAnswer(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body capturedRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.NotNil(t, body.ResponseFormat)
		assert.Equal(t, "json_schema", body.ResponseFormat.Type)
		assert.Contains(t, string(body.ResponseFormat.JSONSchema), "competitors")
		assert.Equal(t, structuredSystemPrompt, body.Messages[0].Content)

		content := "```json\n{\"competitors\": [{\"name\": \"Chloe Ting\", \"platform\": \"YouTube\", \"followers\": \"25M\"}]}\n```"
		resp, _ := json.Marshal(map[string]any{
			"choices": []any{map[string]any{"message": map[string]any{"content": content}}},
		})
		w.Write(resp)
	})

	list, answer, err := research.AskStructured[research.CompetitorList](context.Background(), client, research.Query{Question: "Top fitness creators"})
	require.NoError(t, err)
	require.Len(t, list.Competitors, 1)
	assert.Equal(t, "Chloe Ting", list.Competitors[0].Name)
	assert.Empty(t, list.Competitors[0].ContentStyle)
	assert.Empty(t, answer.Citations)
}

func TestAskStructured_NonJSONAnswerIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": [{"message": {"content": "Sorry, I cannot help."}}]}`))
	})

	_, _, err := research.AskStructured[research.TrendList](context.Background(), client, research.Query{Question: "trends"})
	assert.ErrorIs(t, err, upstream.ErrMalformedResponse)
}

func TestAsk_NoChoicesIsMalformed(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"choices": []}`))
	})

	_, err := client.Ask(context.Background(), research.Query{Question: "q"})
	assert.ErrorIs(t, err, upstream.ErrMalformedResponse)
}

func TestAsk_ServerErrorsRetried(t *testing.T) {
	var calls int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(`{"choices": [{"message": {"content": "ok"}}]}`))
	})

	answer, err := client.Ask(context.Background(), research.Query{Question: "q"})
	require.NoError(t, err)
	assert.Equal(t, "ok", answer.Text)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestAsk_EmptyQuestion(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request expected")
	})

	_, err := client.Ask(context.Background(), research.Query{Question: "   "})
	require.Error(t, err)
	assert.ErrorIs(t, err, upstream.ErrInvalidRequest)
	assert.NotErrorIs(t, err, upstream.ErrTransientNetwork)
	assert.Equal(t, upstream.ErrInvalidRequest, upstream.KindOf(err))
}
