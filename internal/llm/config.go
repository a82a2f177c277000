// Package llm provides the language-model providers used to enrich résumé
// extraction and a router that falls back from one provider to the other.
package llm

import (
	"fmt"
	"strings"
	"time"
)

// ProviderName identifies an LLM provider
type ProviderName string

// Supported providers
const (
	// ProviderGemini is the Google Gemini provider
	ProviderGemini ProviderName = "gemini"
	// ProviderOpenAI is the OpenAI chat completions provider
	ProviderOpenAI ProviderName = "openai"
)

// ParseProviderName maps a configuration value to a ProviderName.
func ParseProviderName(s string) (ProviderName, error) {
	switch ProviderName(strings.ToLower(strings.TrimSpace(s))) {
	case ProviderGemini:
		return ProviderGemini, nil
	case ProviderOpenAI:
		return ProviderOpenAI, nil
	default:
		return "", fmt.Errorf("unsupported AI provider: %q", s)
	}
}

// Other returns the provider used as fallback for p.
func (p ProviderName) Other() ProviderName {
	if p == ProviderOpenAI {
		return ProviderGemini
	}
	return ProviderOpenAI
}

// Default settings
const (
	DefaultTemperature = 0.1
	DefaultMaxTokens   = 1500
	DefaultTimeout     = 10 * time.Second
	DefaultGeminiModel = "gemini-2.0-flash-exp"
	DefaultOpenAIModel = "gpt-4"
	DefaultOpenAIURL   = "https://api.openai.com/v1"
)

// ProviderConfig holds the settings of one provider. A provider without an API
// key is constructed but reports itself unavailable. A nil Temperature means
// DefaultTemperature; 0 is a valid setting.
type ProviderConfig struct {
	APIKey      string
	Model       string
	BaseURL     string
	MaxTokens   int
	Timeout     time.Duration
	Temperature *float32
}

// Config holds the settings of both providers and which one is tried first.
type Config struct {
	Primary ProviderName
	Gemini  ProviderConfig
	OpenAI  ProviderConfig
}

// DefaultConfig returns the defaults with Gemini as the primary provider.
func DefaultConfig() *Config {
	return &Config{
		Primary: ProviderGemini,
		Gemini: ProviderConfig{
			Model:       DefaultGeminiModel,
			MaxTokens:   DefaultMaxTokens,
			Timeout:     DefaultTimeout,
			Temperature: Float32(DefaultTemperature),
		},
		OpenAI: ProviderConfig{
			Model:       DefaultOpenAIModel,
			BaseURL:     DefaultOpenAIURL,
			MaxTokens:   DefaultMaxTokens,
			Timeout:     DefaultTimeout,
			Temperature: Float32(DefaultTemperature),
		},
	}
}

// withDefaults fills zero fields from def.
func (c ProviderConfig) withDefaults(def ProviderConfig) ProviderConfig {
	if c.Model == "" {
		c.Model = def.Model
	}
	if c.BaseURL == "" {
		c.BaseURL = def.BaseURL
	}
	if c.MaxTokens <= 0 {
		c.MaxTokens = def.MaxTokens
	}
	if c.Timeout <= 0 {
		c.Timeout = def.Timeout
	}
	if c.Temperature == nil {
		c.Temperature = def.Temperature
	}
	return c
}

// Float32 returns a pointer to v.
func Float32(v float32) *float32 {
	return &v
}
