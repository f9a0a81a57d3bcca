// Package credentials resolves the three upstream API keys from a TOML settings file and the
// environment. Environment values win over the file; placeholders count as absent.
package credentials

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"menlo.ai/creator-insights-gateway/config/environment_variables"
)

const (
	QlooKey       = "QLOO_API_KEY"
	PerplexityKey = "PERPLEXITY_API_KEY"
	OpenAIKey     = "OPENAI_API_KEY"
)

// short names used by the [secrets] table
var shortNames = map[string]string{
	QlooKey:       "qloo",
	PerplexityKey: "perplexity",
	OpenAIKey:     "openai",
}

var requiredKeys = []string{QlooKey, PerplexityKey, OpenAIKey}

type Credentials struct {
	Qloo       string
	Perplexity string
	OpenAI     string
}

// MissingCredentialsError names every credential that could not be resolved.
type MissingCredentialsError struct {
	Missing []string
	Source  string
}

func (e *MissingCredentialsError) Error() string {
	return fmt.Sprintf(
		"missing API credentials: %s (set them as environment variables or in %s under [default])",
		strings.Join(e.Missing, ", "), e.Source,
	)
}

type settingsFile struct {
	Default map[string]string `toml:"default"`
	Secrets map[string]string `toml:"secrets"`
}

// Load reads the settings file at path (a missing file is not an error) and overlays the
// non-empty values in env. It fails if any of the three keys is still absent.
func Load(path string, env map[string]string) (*Credentials, error) {
	values, err := readSettings(path)
	if err != nil {
		return nil, err
	}
	for key, value := range env {
		if !isPlaceholder(key, value) {
			values[key] = strings.TrimSpace(value)
		}
	}

	missing := make([]string, 0)
	for _, key := range requiredKeys {
		if isPlaceholder(key, values[key]) {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return nil, &MissingCredentialsError{Missing: missing, Source: path}
	}

	return &Credentials{
		Qloo:       values[QlooKey],
		Perplexity: values[PerplexityKey],
		OpenAI:     values[OpenAIKey],
	}, nil
}

// LoadFromEnvironment resolves credentials using the process environment variables singleton.
func LoadFromEnvironment() (*Credentials, error) {
	ev := environment_variables.EnvironmentVariables
	return Load(ev.SECRETS_FILE, map[string]string{
		QlooKey:       ev.QLOO_API_KEY,
		PerplexityKey: ev.PERPLEXITY_API_KEY,
		OpenAIKey:     ev.OPENAI_API_KEY,
	})
}

func readSettings(path string) (map[string]string, error) {
	values := make(map[string]string, len(requiredKeys))
	if path == "" {
		return values, nil
	}
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return values, nil
		}
		return nil, fmt.Errorf("failed to read settings file %s: %w", path, err)
	}

	var settings settingsFile
	if err := toml.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("failed to parse settings file %s: %w", path, err)
	}
	for _, key := range requiredKeys {
		if v := strings.TrimSpace(settings.Default[key]); v != "" {
			values[key] = v
			continue
		}
		if v := strings.TrimSpace(settings.Secrets[shortNames[key]]); v != "" {
			values[key] = v
		}
	}
	return values, nil
}

func isPlaceholder(key string, value string) bool {
	value = strings.TrimSpace(value)
	if value == "" {
		return true
	}
	return value == fmt.Sprintf("your_%s_api_key_here", shortNames[key])
}
