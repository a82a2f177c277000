package ratelimit

import (
	"net/http"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // exact path, or a prefix when it ends in "/"
	Method string
	Limit  int           // requests per window
	Window time.Duration
	Burst  int           // defaults to Limit when 0
}

// Config holds rate limiting configuration.
type Config struct {
	Enabled         bool
	DefaultLimit    int
	DefaultWindow   time.Duration
	CleanupInterval time.Duration
	Whitelist       map[string]bool
	Blacklist       map[string]bool
	EndpointConfigs []EndpointConfig
}

// DefaultConfig allows 1000 requests a minute with the endpoint tiers of
// DefaultEndpointConfigs.
func DefaultConfig() *Config {
	return &Config{
		Enabled:         true,
		DefaultLimit:    1000,
		DefaultWindow:   time.Minute,
		CleanupInterval: 5 * time.Minute,
		Whitelist:       make(map[string]bool),
		Blacklist:       make(map[string]bool),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific configurations.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: calls that reach an AI provider or a remote profile page
		{Path: "/resume/parse", Method: http.MethodPost, Limit: 30, Window: time.Hour, Burst: 5},
		{Path: "/scholar/fetch", Method: http.MethodPost, Limit: 20, Window: time.Minute, Burst: 5},

		// Tier 2: in-memory ranking
		{Path: "/projects/suggestions", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},
		{Path: "/projects/best-matches", Method: http.MethodPost, Limit: 300, Window: time.Minute, Burst: 30},

		// Tier 3: catalog reads use the default limit; /health is unlimited
	}
}

// NewConfig builds a Config with the default endpoint tiers. Blank list
// entries are ignored.
func NewConfig(enabled bool, limit int, window, cleanup time.Duration, whitelist, blacklist []string) *Config {
	return &Config{
		Enabled:         enabled,
		DefaultLimit:    limit,
		DefaultWindow:   window,
		CleanupInterval: cleanup,
		Whitelist:       ipSet(whitelist),
		Blacklist:       ipSet(blacklist),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

func ipSet(list []string) map[string]bool {
	result := make(map[string]bool, len(list))
	for _, ip := range list {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
