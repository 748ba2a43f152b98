package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func TestFromEnv_Defaults(t *testing.T) {
	cfg, err := FromEnv(envOf(nil))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ProviderGroq, cfg.LLMProvider)
	assert.Equal(t, "llama-3.3-70b-versatile", cfg.GroqModel)
	assert.Equal(t, StorageMemory, cfg.StorageDriver)
	assert.Equal(t, 30*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 15*time.Second, cfg.InterpretTimeout)
	assert.Zero(t, cfg.RateLimitRPS)
	assert.Empty(t, cfg.LLMAPIKey())
	assert.False(t, cfg.IsProduction())
}

func TestFromEnv_Overrides(t *testing.T) {
	cfg, err := FromEnv(envOf(map[string]string{
		"ENV":              "production",
		"LLM_PROVIDER":     "Gemini",
		"GEMINI_API_KEY":   "secret",
		"STORAGE_DRIVER":   "postgres",
		"DATABASE_URL":     "postgres://localhost/books",
		"ALLOWED_ORIGINS":  "https://a.example, https://b.example,",
		"SEARCH_TIMEOUT":   "5s",
		"RATE_LIMIT_RPS":   "2.5",
		"RATE_LIMIT_BURST": "10",
	}))
	require.NoError(t, err)

	assert.True(t, cfg.IsProduction())
	assert.Equal(t, ProviderGemini, cfg.LLMProvider)
	assert.Equal(t, "secret", cfg.LLMAPIKey())
	assert.Equal(t, "GEMINI_API_KEY", cfg.LLMAPIKeyName())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.Equal(t, 5*time.Second, cfg.SearchTimeout)
	assert.Equal(t, 2.5, cfg.RateLimitRPS)
	assert.Equal(t, 10, cfg.RateLimitBurst)
}

func TestFromEnv_Invalid(t *testing.T) {
	tests := map[string]map[string]string{
		"unknown provider":      {"LLM_PROVIDER": "openrouter"},
		"unknown storage":       {"STORAGE_DRIVER": "mongo"},
		"postgres without url":  {"STORAGE_DRIVER": "postgres"},
		"bad timeout":           {"SEARCH_TIMEOUT": "soon"},
		"negative timeout":      {"LLM_TIMEOUT": "-1s"},
		"bad rps":               {"RATE_LIMIT_RPS": "fast"},
		"zero burst with limit": {"RATE_LIMIT_RPS": "1", "RATE_LIMIT_BURST": "0"},
	}
	for name, env := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := FromEnv(envOf(env))
			assert.Error(t, err)
		})
	}
}
