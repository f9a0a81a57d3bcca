package qloo

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"menlo.ai/creator-insights-gateway/app/domain/insights"
	"menlo.ai/creator-insights-gateway/app/domain/upstream"
	"menlo.ai/creator-insights-gateway/app/utils/httpclients"
	"resty.dev/v3"
)

const defaultTake = 10

type Client struct {
	baseURL string
	apiKey  string
	rest    *resty.Client
	policy  upstream.RetryPolicy
}

func NewClient(baseURL string, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		rest:    httpclients.NewClient("QlooClient", timeout),
		policy:  upstream.DefaultRetryPolicy(),
	}
}

// WithRetryPolicy replaces the default retry policy.
func (c *Client) WithRetryPolicy(policy upstream.RetryPolicy) *Client {
	c.policy = policy
	return c
}

type geographyRequest struct {
	ContentCategory string `json:"content_category"`
	AudienceType    string `json:"audience_type"`
}

type trendsRequest struct {
	CountryCode     string `json:"country_code"`
	ContentCategory string `json:"content_category"`
	AudienceType    string `json:"audience_type"`
}

func (c *Client) Geography(ctx context.Context, query insights.GeographyQuery) ([]insights.GeoInsight, error) {
	op := string(insights.OperationGeography)
	return upstream.Call(ctx, c.policy, upstream.ServiceQloo, op, func(ctx context.Context) ([]insights.GeoInsight, error) {
		raw, err := c.send(ctx, op, http.MethodPost, "/insights/geography", geographyRequest{
			ContentCategory: query.Category,
			AudienceType:    query.Audience,
		}, nil)
		if err != nil {
			return nil, err
		}
		return parseGeography(op, raw)
	})
}

func (c *Client) RegionalTrends(ctx context.Context, query insights.TrendsQuery) (insights.RegionalTrends, error) {
	op := string(insights.OperationRegionalTrends)
	return upstream.Call(ctx, c.policy, upstream.ServiceQloo, op, func(ctx context.Context) (insights.RegionalTrends, error) {
		raw, err := c.send(ctx, op, http.MethodPost, "/trends/region", trendsRequest{
			CountryCode:     query.Country,
			ContentCategory: query.Category,
			AudienceType:    query.Audience,
		}, nil)
		if err != nil {
			return insights.RegionalTrends{}, err
		}
		return parseRegionalTrends(op, query.Country, raw)
	})
}

func (c *Client) Recommendations(ctx context.Context, query insights.RecommendationQuery) ([]insights.Entity, error) {
	op := string(insights.OperationRecommendations)
	urn, err := insights.EntityTypeURN(query.EntityType)
	if err != nil {
		return nil, upstream.NewError(upstream.ServiceQloo, op, upstream.ErrMalformedResponse, 0, err)
	}
	take := query.Take
	if take <= 0 {
		take = defaultTake
	}
	params := map[string]string{
		"filter.type": urn,
		"take":        strconv.Itoa(take),
	}
	if len(query.InterestTags) > 0 {
		params["signal.interests.tags"] = strings.Join(query.InterestTags, ",")
	}

	return upstream.Call(ctx, c.policy, upstream.ServiceQloo, op, func(ctx context.Context) ([]insights.Entity, error) {
		raw, err := c.send(ctx, op, http.MethodGet, "/v2/insights/", nil, params)
		if err != nil {
			return nil, err
		}
		return parseEntities(op, raw)
	})
}

func (c *Client) send(ctx context.Context, op string, method string, path string, body any, params map[string]string) ([]byte, error) {
	req := c.rest.R().
		SetContext(ctx).
		SetHeader("X-Api-Key", c.apiKey)
	if body != nil {
		req.SetHeader("Content-Type", "application/json").SetBody(body)
	}
	if len(params) > 0 {
		req.SetQueryParams(params)
	}

	status, raw, err := httpclients.Send(req, method, c.baseURL+path)
	if err != nil {
		return nil, upstream.Transport(upstream.ServiceQloo, op, err)
	}
	if err := upstream.FromStatus(upstream.ServiceQloo, op, status, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
