package perplexity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
	"menlo.ai/creator-insights-gateway/app/utils/httpclients"
	"resty.dev/v3"
)

const (
	defaultSystemPrompt       = "You are an expert research assistant helping content creators discover trending content ideas based on geography and audience demographics."
	structuredSystemPrompt    = "You are an expert research assistant. Always respond with valid JSON that matches the requested schema exactly."
	defaultMaxTokens          = 1024
	defaultStructuredMaxToken = 2048
)

type Client struct {
	baseURL string
	apiKey  string
	model   string
	rest    *resty.Client
	policy  upstream.RetryPolicy
}

func NewClient(baseURL string, apiKey string, model string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		rest:    httpclients.NewClient("PerplexityClient", timeout),
		policy:  upstream.DefaultRetryPolicy(),
	}
}

func (c *Client) WithRetryPolicy(policy upstream.RetryPolicy) *Client {
	c.policy = policy
	return c
}

type completionResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Citations []string `json:"citations"`
}

func (c *Client) Ask(ctx context.Context, query research.Query) (research.Answer, error) {
	if strings.TrimSpace(query.Question) == "" {
		return research.Answer{}, upstream.InvalidRequest(upstream.ServicePerplexity, research.OperationQuery, "research question is empty")
	}
	request, err := c.buildRequest(query)
	if err != nil {
		return research.Answer{}, err
	}

	return upstream.Call(ctx, c.policy, upstream.ServicePerplexity, research.OperationQuery, func(ctx context.Context) (research.Answer, error) {
		req := c.rest.R().
			SetContext(ctx).
			SetHeader("Authorization", fmt.Sprintf("Bearer %s", c.apiKey)).
			SetHeader("Content-Type", "application/json").
			SetBody(request)

		status, raw, err := httpclients.Send(req, http.MethodPost, c.baseURL+"/chat/completions")
		if err != nil {
			return research.Answer{}, upstream.Transport(upstream.ServicePerplexity, research.OperationQuery, err)
		}
		if err := upstream.FromStatus(upstream.ServicePerplexity, research.OperationQuery, status, raw); err != nil {
			return research.Answer{}, err
		}
		return parseAnswer(raw)
	})
}

func (c *Client) buildRequest(query research.Query) (openai.ChatCompletionRequest, error) {
	system := query.System
	maxTokens := query.MaxTokens
	if system == "" {
		system = defaultSystemPrompt
		if query.Schema != nil {
			system = structuredSystemPrompt
		}
	}
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
		if query.Schema != nil {
			maxTokens = defaultStructuredMaxToken
		}
	}

	request := openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: system},
			{Role: openai.ChatMessageRoleUser, Content: query.Question},
		},
		MaxTokens: maxTokens,
	}
	if query.Schema != nil {
		schema, err := jsonschema.GenerateSchemaForType(query.Schema)
		if err != nil {
			return request, fmt.Errorf("failed to generate answer schema: %w", err)
		}
		request.ResponseFormat = &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   "answer",
				Schema: schema,
			},
		}
	}
	return request, nil
}

func parseAnswer(raw []byte) (research.Answer, error) {
	var resp completionResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return research.Answer{}, upstream.Malformed(upstream.ServicePerplexity, research.OperationQuery, "invalid JSON body: %v", err)
	}
	if len(resp.Choices) == 0 {
		return research.Answer{}, upstream.Malformed(upstream.ServicePerplexity, research.OperationQuery, "response has no choices")
	}
	citations := resp.Citations
	if citations == nil {
		citations = []string{}
	}
	return research.Answer{
		Text:      strings.TrimSpace(resp.Choices[0].Message.Content),
		Citations: citations,
		Model:     resp.Model,
	}, nil
}
