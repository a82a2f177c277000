// Package config loads process configuration from defaults, an optional JSON
// file and the environment.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/jonathan/stackmatch/internal/llm"
)

// Config is the full process configuration. Durations named *MS are
// milliseconds, matching the environment variables they come from.
type Config struct {
	AI        AIConfig        `mapstructure:"ai"`
	Gemini    ProviderConfig  `mapstructure:"gemini"`
	OpenAI    ProviderConfig  `mapstructure:"openai"`
	Scholar   ScholarConfig   `mapstructure:"scholar"`
	Server    ServerConfig    `mapstructure:"server"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Log       LogConfig       `mapstructure:"log"`
}

// AIConfig holds settings shared by both providers.
type AIConfig struct {
	Provider      string  `mapstructure:"provider" validate:"oneof=gemini openai"`
	Temperature   float64 `mapstructure:"temperature" validate:"gte=0,lte=2"`
	RetryAttempts int     `mapstructure:"retry_attempts" validate:"gte=0"`
	TimeoutMS     int     `mapstructure:"timeout" validate:"gt=0"`
	MaxTokens     int     `mapstructure:"max_tokens" validate:"gt=0"`
}

// ProviderConfig holds one provider's settings. An empty APIKey leaves the
// provider unavailable, which is not a configuration error.
type ProviderConfig struct {
	APIKey    string `mapstructure:"api_key"`
	Model     string `mapstructure:"model" validate:"required"`
	BaseURL   string `mapstructure:"base_url" validate:"omitempty,url"`
	MaxTokens int    `mapstructure:"max_tokens" validate:"gt=0"`
	TimeoutMS int    `mapstructure:"timeout" validate:"gt=0"`
}

// ScholarConfig configures profile page fetching.
type ScholarConfig struct {
	Timeout       time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RatePerMinute int           `mapstructure:"rate_per_minute" validate:"gte=0"`
	UseBrowser    bool          `mapstructure:"use_browser"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `mapstructure:"port" validate:"gt=0,lte=65535"`
}

// RateLimitConfig configures the per-client API limiter.
type RateLimitConfig struct {
	Enabled         bool          `mapstructure:"enabled"`
	DefaultLimit    int           `mapstructure:"default_limit" validate:"gte=0"`
	DefaultWindow   time.Duration `mapstructure:"default_window" validate:"gte=0"`
	CleanupInterval time.Duration `mapstructure:"cleanup_interval" validate:"gte=0"`
	Whitelist       []string      `mapstructure:"whitelist"`
	Blacklist       []string      `mapstructure:"blacklist"`
}

// LogConfig selects the logger encoding and level.
type LogConfig struct {
	JSON  bool `mapstructure:"json"`
	Debug bool `mapstructure:"debug"`
}

var defaults = map[string]any{
	"ai.provider":       "gemini",
	"ai.temperature":    llm.DefaultTemperature,
	"ai.retry_attempts": 2,
	"ai.timeout":        10000,
	"ai.max_tokens":     llm.DefaultMaxTokens,

	"gemini.api_key":    "",
	"gemini.model":      llm.DefaultGeminiModel,
	"gemini.base_url":   "",
	"gemini.max_tokens": llm.DefaultMaxTokens,
	"gemini.timeout":    10000,

	"openai.api_key":    "",
	"openai.model":      llm.DefaultOpenAIModel,
	"openai.base_url":   llm.DefaultOpenAIURL,
	"openai.max_tokens": llm.DefaultMaxTokens,
	"openai.timeout":    10000,

	"scholar.timeout":         30 * time.Second,
	"scholar.rate_per_minute": 20,
	"scholar.use_browser":     false,

	"server.port": 8080,

	"rate_limit.enabled":          true,
	"rate_limit.default_limit":    1000,
	"rate_limit.default_window":   time.Minute,
	"rate_limit.cleanup_interval": 5 * time.Minute,
	"rate_limit.whitelist":        []string{},
	"rate_limit.blacklist":        []string{},

	"log.json":  false,
	"log.debug": false,
}

// New returns a viper instance with every key defaulted and bound to its
// environment variable: "ai.timeout" reads AI_TIMEOUT, except "server.port"
// which reads PORT.
func New() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv("server.port", "PORT", "SERVER_PORT")
	return v
}

// Load reads configuration from v, merging the JSON file at path first when
// path is not empty. A nil v uses New().
func Load(v *viper.Viper, path string) (*Config, error) {
	if v == nil {
		v = New()
	}

	if path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("json")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var validate = validator.New()

// Validate checks value ranges. Missing API keys are allowed.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	return nil
}

// LLM converts the AI settings to the router configuration. Per-provider
// token and timeout settings win over the shared ones.
func (c *Config) LLM() *llm.Config {
	primary, err := llm.ParseProviderName(c.AI.Provider)
	if err != nil {
		primary = llm.ProviderGemini
	}

	provider := func(p ProviderConfig) llm.ProviderConfig {
		return llm.ProviderConfig{
			APIKey:      p.APIKey,
			Model:       p.Model,
			BaseURL:     p.BaseURL,
			MaxTokens:   firstPositive(p.MaxTokens, c.AI.MaxTokens),
			Timeout:     time.Duration(firstPositive(p.TimeoutMS, c.AI.TimeoutMS)) * time.Millisecond,
			Temperature: llm.Float32(float32(c.AI.Temperature)),
		}
	}

	return &llm.Config{
		Primary: primary,
		Gemini:  provider(c.Gemini),
		OpenAI:  provider(c.OpenAI),
	}
}

// AITimeout is the orchestration deadline for one AI extraction.
func (c *Config) AITimeout() time.Duration {
	return time.Duration(c.AI.TimeoutMS) * time.Millisecond
}

func firstPositive(vals ...int) int {
	for _, v := range vals {
		if v > 0 {
			return v
		}
	}
	return 0
}
