package openai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"menlo.ai/creator-insights-gateway/app/domain/llm"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
)

type Client struct {
	api    *openai.Client
	model  string
	policy upstream.RetryPolicy
}

func NewClient(baseURL string, apiKey string, model string, timeout time.Duration) *Client {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = strings.TrimRight(baseURL, "/")
	}
	cfg.HTTPClient = &http.Client{Timeout: timeout}
	return &Client{
		api:    openai.NewClientWithConfig(cfg),
		model:  model,
		policy: upstream.DefaultRetryPolicy(),
	}
}

func (c *Client) WithRetryPolicy(policy upstream.RetryPolicy) *Client {
	c.policy = policy
	return c
}

func (c *Client) Complete(ctx context.Context, prompt llm.Prompt) (llm.Completion, error) {
	operation := string(prompt.Template)
	request := openai.ChatCompletionRequest{
		Model:       c.model,
		MaxTokens:   prompt.MaxTokens,
		Temperature: prompt.Temperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: prompt.System},
			{Role: openai.ChatMessageRoleUser, Content: prompt.User},
		},
	}
	if prompt.JSON {
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		}
	}

	return upstream.Call(ctx, c.policy, upstream.ServiceOpenAI, operation, func(ctx context.Context) (llm.Completion, error) {
		resp, err := c.api.CreateChatCompletion(ctx, request)
		if err != nil {
			return llm.Completion{}, classify(operation, err)
		}
		if len(resp.Choices) == 0 {
			return llm.Completion{}, upstream.Malformed(upstream.ServiceOpenAI, operation, "response has no choices")
		}
		text := strings.TrimSpace(resp.Choices[0].Message.Content)
		if text == "" {
			return llm.Completion{}, upstream.Malformed(upstream.ServiceOpenAI, operation, "empty completion")
		}
		return llm.Completion{
			Text:         text,
			Model:        resp.Model,
			FinishReason: string(resp.Choices[0].FinishReason),
		}, nil
	})
}

// classify maps go-openai errors onto the upstream taxonomy.
func classify(operation string, err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return upstream.NewError(upstream.ServiceOpenAI, operation, statusKind(apiErr.HTTPStatusCode), apiErr.HTTPStatusCode, err)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return upstream.NewError(upstream.ServiceOpenAI, operation, statusKind(reqErr.HTTPStatusCode), reqErr.HTTPStatusCode, err)
	}
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) {
		return upstream.Malformed(upstream.ServiceOpenAI, operation, "invalid JSON body: %v", err)
	}
	return upstream.Transport(upstream.ServiceOpenAI, operation, err)
}

func statusKind(statusCode int) error {
	if kind := upstream.ClassifyStatus(statusCode); kind != nil {
		return kind
	}
	return upstream.ErrMalformedResponse
}
