package httpclients

import (
	"fmt"
	"io"
	"time"

	"menlo.ai/creator-insights-gateway/config"
	"resty.dev/v3"
)

// maxBodyBytes bounds how much of an upstream response is read into memory.
const maxBodyBytes = 8 << 20

// NewClient returns a resty client tagged with name for upstream identification.
func NewClient(name string, timeout time.Duration) *resty.Client {
	return resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", fmt.Sprintf("creator-insights-gateway/%s (%s)", config.Version, name)).
		SetHeader("Accept", "application/json")
}

// Send executes req and returns the status code together with the raw body so callers can
// classify failures before decoding.
func Send(req *resty.Request, method string, url string) (int, []byte, error) {
	resp, err := req.
		SetDoNotParseResponse(true).
		Execute(method, url)
	if err != nil {
		return 0, nil, err
	}
	defer resp.RawResponse.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.RawResponse.Body, maxBodyBytes))
	if err != nil {
		return resp.RawResponse.StatusCode, nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return resp.RawResponse.StatusCode, body, nil
}
