package infrastructure

import (
	"github.com/google/wire"
	"menlo.ai/creator-insights-gateway/app/domain/insights"
	"menlo.ai/creator-insights-gateway/app/domain/llm"
	"menlo.ai/creator-insights-gateway/app/domain/research"
	"menlo.ai/creator-insights-gateway/app/infrastructure/cache"
	"menlo.ai/creator-insights-gateway/app/infrastructure/upstream/openai"
	"menlo.ai/creator-insights-gateway/app/infrastructure/upstream/perplexity"
	"menlo.ai/creator-insights-gateway/app/infrastructure/upstream/qloo"
	"menlo.ai/creator-insights-gateway/config/credentials"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

func NewQlooClient(creds *credentials.Credentials) *qloo.Client {
	ev := environment_variables.EnvironmentVariables
	return qloo.NewClient(ev.QLOO_BASE_URL, creds.Qloo, ev.UPSTREAM_TIMEOUT)
}

func NewPerplexityClient(creds *credentials.Credentials) *perplexity.Client {
	ev := environment_variables.EnvironmentVariables
	return perplexity.NewClient(ev.PERPLEXITY_BASE_URL, creds.Perplexity, ev.PERPLEXITY_MODEL, ev.UPSTREAM_TIMEOUT)
}

func NewOpenAIClient(creds *credentials.Credentials) *openai.Client {
	ev := environment_variables.EnvironmentVariables
	return openai.NewClient(ev.OPENAI_BASE_URL, creds.OpenAI, ev.OPENAI_MODEL, ev.UPSTREAM_TIMEOUT)
}

var InfrastructureProvider = wire.NewSet(
	credentials.LoadFromEnvironment,
	NewQlooClient,
	NewPerplexityClient,
	NewOpenAIClient,
	wire.Bind(new(insights.Provider), new(*qloo.Client)),
	wire.Bind(new(research.Provider), new(*perplexity.Client)),
	wire.Bind(new(llm.Provider), new(*openai.Client)),
	cache.NewCacheService,
)
