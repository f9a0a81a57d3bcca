package environment_variables

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"
)

type EnvironmentVariable struct {
	QLOO_API_KEY        string
	QLOO_BASE_URL       string
	PERPLEXITY_API_KEY  string
	PERPLEXITY_BASE_URL string
	PERPLEXITY_MODEL    string
	OPENAI_API_KEY      string
	OPENAI_BASE_URL     string
	OPENAI_MODEL        string
	SECRETS_FILE        string
	UPSTREAM_TIMEOUT    time.Duration
	CACHE_TYPE          string
	CACHE_URL           string
	CACHE_PASSWORD      string
	CACHE_DB            string
	CACHE_TTL           time.Duration
	HTTP_PORT           int
	LOG_LEVEL           string
	LOG_FORMAT          string
	ALLOWED_CORS_HOSTS  []string
	ADMIN_API_KEY       string
}

var durationType = reflect.TypeOf(time.Duration(0))

func (ev *EnvironmentVariable) LoadFromEnv() {
	v := reflect.ValueOf(ev).Elem()
	t := v.Type()
	for i := 0; i < v.NumField(); i++ {
		field := t.Field(i)
		envKey := field.Name
		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}
		fieldValue := v.Field(i)
		switch {
		case field.Type == durationType:
			d, err := time.ParseDuration(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV %s=%q: %v\n", envKey, envValue, err)
				continue
			}
			fieldValue.SetInt(int64(d))
		case fieldValue.Kind() == reflect.Int:
			n, err := strconv.Atoi(envValue)
			if err != nil {
				fmt.Printf("Invalid SYSENV %s=%q: %v\n", envKey, envValue, err)
				continue
			}
			fieldValue.SetInt(int64(n))
		case fieldValue.Kind() == reflect.String:
			fieldValue.SetString(envValue)
		case fieldValue.Kind() == reflect.Slice && fieldValue.Type().Elem().Kind() == reflect.String:
			parts := strings.Split(envValue, ",")
			values := make([]string, 0, len(parts))
			for _, part := range parts {
				if part = strings.TrimSpace(part); part != "" {
					values = append(values, part)
				}
			}
			fieldValue.Set(reflect.ValueOf(values))
		}
	}
}

// ApplyDefaults fills every unset field with its production default.
func (ev *EnvironmentVariable) ApplyDefaults() {
	if ev.QLOO_BASE_URL == "" {
		ev.QLOO_BASE_URL = "https://hackathon.api.qloo.com"
	}
	if ev.PERPLEXITY_BASE_URL == "" {
		ev.PERPLEXITY_BASE_URL = "https://api.perplexity.ai"
	}
	if ev.PERPLEXITY_MODEL == "" {
		ev.PERPLEXITY_MODEL = "sonar-pro"
	}
	if ev.OPENAI_BASE_URL == "" {
		ev.OPENAI_BASE_URL = "https://api.openai.com/v1"
	}
	if ev.OPENAI_MODEL == "" {
		ev.OPENAI_MODEL = "gpt-4o-mini"
	}
	if ev.SECRETS_FILE == "" {
		ev.SECRETS_FILE = "secrets.toml"
	}
	if ev.UPSTREAM_TIMEOUT <= 0 {
		ev.UPSTREAM_TIMEOUT = 30 * time.Second
	}
	if ev.CACHE_TYPE == "" {
		ev.CACHE_TYPE = "memory"
	}
	if ev.CACHE_TTL <= 0 {
		ev.CACHE_TTL = 15 * time.Minute
	}
	if ev.HTTP_PORT == 0 {
		ev.HTTP_PORT = 8080
	}
	if ev.LOG_LEVEL == "" {
		ev.LOG_LEVEL = "info"
	}
}

// Singleton
var EnvironmentVariables = EnvironmentVariable{}
