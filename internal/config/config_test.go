package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/stackmatch/internal/llm"
)

// clearEnv blanks variables a developer shell may carry.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{"AI_PROVIDER", "AI_TIMEOUT", "GEMINI_API_KEY", "OPENAI_API_KEY", "PORT", "SERVER_PORT", "LOG_JSON"} {
		t.Setenv(k, "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "gemini", cfg.AI.Provider)
	assert.InDelta(t, 0.1, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, 2, cfg.AI.RetryAttempts)
	assert.Equal(t, 10000, cfg.AI.TimeoutMS)
	assert.Equal(t, 1500, cfg.AI.MaxTokens)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.Gemini.Model)
	assert.Equal(t, "gpt-4", cfg.OpenAI.Model)
	assert.Equal(t, "https://api.openai.com/v1", cfg.OpenAI.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Scholar.Timeout)
	assert.Equal(t, 20, cfg.Scholar.RatePerMinute)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, time.Minute, cfg.RateLimit.DefaultWindow)
	assert.Empty(t, cfg.Gemini.APIKey)
}

func TestLoad_Environment(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("AI_TEMPERATURE", "0.7")
	t.Setenv("OPENAI_API_KEY", "sk-test")
	t.Setenv("OPENAI_TIMEOUT", "2500")
	t.Setenv("SCHOLAR_TIMEOUT", "5s")
	t.Setenv("SCHOLAR_USE_BROWSER", "true")
	t.Setenv("PORT", "9090")
	t.Setenv("RATE_LIMIT_WHITELIST", "10.0.0.1,10.0.0.2")
	t.Setenv("LOG_JSON", "true")

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	assert.Equal(t, "sk-test", cfg.OpenAI.APIKey)
	assert.Equal(t, 2500, cfg.OpenAI.TimeoutMS)
	assert.Equal(t, 5*time.Second, cfg.Scholar.Timeout)
	assert.True(t, cfg.Scholar.UseBrowser)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, []string{"10.0.0.1", "10.0.0.2"}, cfg.RateLimit.Whitelist)
	assert.True(t, cfg.Log.JSON)
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	content := `{
		"ai": {"provider": "openai", "max_tokens": 800},
		"gemini": {"api_key": "from-file"},
		"server": {"port": 3000}
	}`
	path := filepath.Join(t.TempDir(), "stackmatch.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(nil, path)
	require.NoError(t, err)

	assert.Equal(t, "openai", cfg.AI.Provider)
	assert.Equal(t, 800, cfg.AI.MaxTokens)
	assert.Equal(t, "from-file", cfg.Gemini.APIKey)
	assert.Equal(t, "gemini-2.0-flash-exp", cfg.Gemini.Model)
	assert.Equal(t, 3000, cfg.Server.Port)
}

func TestLoad_EnvironmentOverridesFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "stackmatch.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"ai": {"provider": "openai"}}`), 0o644))
	t.Setenv("AI_PROVIDER", "gemini")

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, "gemini", cfg.AI.Provider)
}

func TestLoad_Errors(t *testing.T) {
	clearEnv(t)

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(nil, "/nonexistent/path/config.json")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("invalid json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{ invalid json }`), 0o644))

		_, err := Load(nil, path)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to read config file")
	})

	t.Run("unknown provider", func(t *testing.T) {
		t.Setenv("AI_PROVIDER", "claude")

		_, err := Load(nil, "")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "config error")
		assert.Contains(t, err.Error(), "Provider")
	})
}

func TestValidate(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(nil, "")
	require.NoError(t, err)

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"temperature above range", func(c *Config) { c.AI.Temperature = 2.5 }},
		{"negative temperature", func(c *Config) { c.AI.Temperature = -0.1 }},
		{"zero timeout", func(c *Config) { c.AI.TimeoutMS = 0 }},
		{"zero max tokens", func(c *Config) { c.OpenAI.MaxTokens = 0 }},
		{"bad base url", func(c *Config) { c.OpenAI.BaseURL = "not a url" }},
		{"port out of range", func(c *Config) { c.Server.Port = 70000 }},
		{"missing model", func(c *Config) { c.Gemini.Model = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := *cfg
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, cfg.Validate())
}

func TestConfig_LLM_ZeroTemperature(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_TEMPERATURE", "0")

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	out := cfg.LLM()
	require.NotNil(t, out.Gemini.Temperature)
	assert.Zero(t, *out.Gemini.Temperature)
	require.NotNil(t, out.OpenAI.Temperature)
	assert.Zero(t, *out.OpenAI.Temperature)
}

func TestConfig_LLM(t *testing.T) {
	clearEnv(t)
	t.Setenv("AI_PROVIDER", "openai")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_TIMEOUT", "4000")

	cfg, err := Load(nil, "")
	require.NoError(t, err)

	out := cfg.LLM()
	assert.Equal(t, llm.ProviderOpenAI, out.Primary)
	assert.Equal(t, "g-key", out.Gemini.APIKey)
	assert.Equal(t, 4*time.Second, out.OpenAI.Timeout)
	assert.Equal(t, 10*time.Second, out.Gemini.Timeout)
	assert.Equal(t, 1500, out.Gemini.MaxTokens)
	require.NotNil(t, out.OpenAI.Temperature)
	assert.InDelta(t, 0.1, *out.OpenAI.Temperature, 1e-6)
	assert.Equal(t, 10*time.Second, cfg.AITimeout())
}
