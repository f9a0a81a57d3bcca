package environment_variables

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadFromEnvParsesTypedFields(t *testing.T) {
	t.Setenv("QLOO_API_KEY", "qloo-key")
	t.Setenv("UPSTREAM_TIMEOUT", "12s")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("ALLOWED_CORS_HOSTS", "https://a.example, ,https://b.example")
	t.Setenv("CACHE_TTL", "not-a-duration")

	var ev EnvironmentVariable
	ev.LoadFromEnv()

	assert.Equal(t, "qloo-key", ev.QLOO_API_KEY)
	assert.Equal(t, 12*time.Second, ev.UPSTREAM_TIMEOUT)
	assert.Equal(t, 9090, ev.HTTP_PORT)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, ev.ALLOWED_CORS_HOSTS)
	assert.Zero(t, ev.CACHE_TTL)
}

func TestApplyDefaults(t *testing.T) {
	ev := EnvironmentVariable{OPENAI_MODEL: "gpt-4o"}
	ev.ApplyDefaults()

	assert.Equal(t, "gpt-4o", ev.OPENAI_MODEL)
	assert.Equal(t, "sonar-pro", ev.PERPLEXITY_MODEL)
	assert.Equal(t, "memory", ev.CACHE_TYPE)
	assert.Equal(t, 15*time.Minute, ev.CACHE_TTL)
	assert.Equal(t, 30*time.Second, ev.UPSTREAM_TIMEOUT)
	assert.Equal(t, 8080, ev.HTTP_PORT)
	assert.Equal(t, "secrets.toml", ev.SECRETS_FILE)
}
