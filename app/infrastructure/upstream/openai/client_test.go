package openai

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
	"menlo.ai/creator-insights-gateway/app/domain/llm"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/v1", "sk-test", "gpt-4o-mini", 5*time.Second).WithRetryPolicy(upstream.RetryPolicy{
		MaxAttempts:         3,
		MaxRateLimitRetries: 1,
		InitialInterval:     time.Millisecond,
		MaxInterval:         2 * time.Millisecond,
	})
}

const okBody = `{"id": "chatcmpl-1", "object": "chat.completion", "model": "gpt-4o-mini", "choices": [{"index": 0, "message": {"role": "assistant", "content": "{\"viral_score\": 72}"}, "finish_reason": "stop"}]}`

func TestComplete_JSONPrompt(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/chat/completions", r.URL.Path)
		assert.Equal(t, "Bearer sk-test", r.Header.Get("Authorization"))

		var body struct {
			Model          string `json:"model"`
			ResponseFormat struct {
				Type string `json:"type"`
			} `json:"response_format"`
			Messages []struct {
				Content string `json:"content"`
			} `json:"messages"`
		}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "gpt-4o-mini", body.Model)
		assert.Equal(t, "json_object", body.ResponseFormat.Type)
		assert.Equal(t, "rate this", body.Messages[1].Content)

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(okBody))
	})

	completion, err := client.Complete(context.Background(), llm.Prompt{
		Template: llm.TemplateViralPotential,
		System:   "system",
		User:     "rate this",
		JSON:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, `{"viral_score": 72}`, completion.Text)
	assert.Equal(t, "stop", completion.FinishReason)
}

func TestComplete_ErrorClassification(t *testing.T) {
	tests := []struct {
		name          string
		status        int
		body          string
		expectedKind  error
		expectedCalls int32
	}{
		{"unauthorized", http.StatusUnauthorized, `{"error": {"message": "bad key", "type": "invalid_request_error"}}`, upstream.ErrAuth, 1},
		{"rate limited", http.StatusTooManyRequests, `{"error": {"message": "slow down", "type": "rate_limit"}}`, upstream.ErrRateLimited, 2},
		{"server error", http.StatusInternalServerError, `{"error": {"message": "boom", "type": "server_error"}}`, upstream.ErrTransientNetwork, 3},
		{"bad request", http.StatusBadRequest, `{"error": {"message": "bad", "type": "invalid_request_error"}}`, upstream.ErrMalformedResponse, 1},
		{"html gateway page", http.StatusBadGateway, `<html>bad gateway</html>`, upstream.ErrTransientNetwork, 3},
		{"no choices", http.StatusOK, `{"model": "gpt-4o-mini", "choices": []}`, upstream.ErrMalformedResponse, 1},
		{"not json", http.StatusOK, `not json`, upstream.ErrMalformedResponse, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls int32
			client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				atomic.AddInt32(&calls, 1)
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := client.Complete(context.Background(), llm.Prompt{Template: llm.TemplateGrowthStrategy, User: "hello"})
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.expectedKind)
			assert.Equal(t, tt.expectedCalls, atomic.LoadInt32(&calls))
		})
	}
}
