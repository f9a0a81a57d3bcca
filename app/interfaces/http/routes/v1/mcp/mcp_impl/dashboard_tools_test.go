package mcpimpl

import (
	"encoding/json"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"menlo.ai/creator-insights-gateway/app/domain/common"
	"menlo.ai/creator-insights-gateway/app/domain/dashboard"
)

func textOf(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.Len(t, result.Content, 1)
	text, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

func TestToolResultSuccess(t *testing.T) {
	result, err := toolResult(&dashboard.ViralScore{Content: "plank challenge", Score: 64}, nil)

	require.NoError(t, err)
	assert.False(t, result.IsError)
	var decoded dashboard.ViralScore
	require.NoError(t, json.Unmarshal([]byte(textOf(t, result)), &decoded))
	assert.Equal(t, 64, decoded.Score)
}

func TestToolResultFeatureError(t *testing.T) {
	result, err := toolResult[dashboard.ViralScore](nil, &common.Error{
		Code:    "viral_score.incomplete_profile",
		Kind:    dashboard.KindIncompleteProfile,
		Action:  dashboard.ActionOnboarding,
		Message: "Your profile is missing: niche.",
	})

	require.NoError(t, err)
	assert.True(t, result.IsError)
	text := textOf(t, result)
	assert.Contains(t, text, "viral_score.incomplete_profile")
	assert.Contains(t, text, dashboard.ActionOnboarding)
}
