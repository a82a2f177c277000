package llm

import (
	"context"
	"strings"
	"time"
)

// Role is the author of a chat message
type Role string

// Chat roles
const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one turn of a chat conversation.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// Options override provider defaults for one call. Zero values keep the default.
type Options struct {
	Temperature float32
	MaxTokens   int
	Timeout     time.Duration
	// JSON asks providers that support it for a JSON-only response
	JSON bool
}

// Provider is a chat-completion backend.
type Provider interface {
	Name() ProviderName
	Model() string
	// IsAvailable reports whether the provider is configured well enough to be called.
	IsAvailable() bool
	// CreateChatCompletion returns the model's reply. An empty reply is not an error.
	CreateChatCompletion(ctx context.Context, messages []Message, opts Options) (string, error)
}

// ConvertMessagesToPrompt flattens a conversation into a single prompt for
// providers without a chat interface.
func ConvertMessagesToPrompt(messages []Message) string {
	var sb strings.Builder
	for _, m := range messages {
		switch m.Role {
		case RoleSystem:
			sb.WriteString("System Instructions: ")
		case RoleUser:
			sb.WriteString("User: ")
		case RoleAssistant:
			sb.WriteString("Assistant: ")
		default:
			continue
		}
		sb.WriteString(m.Content)
		sb.WriteString("\n\n")
	}
	return strings.TrimSpace(sb.String())
}

// resolve merges per-call options over the provider config.
func resolve(cfg ProviderConfig, opts Options) (temperature float32, maxTokens int, timeout time.Duration) {
	temperature, maxTokens, timeout = DefaultTemperature, cfg.MaxTokens, cfg.Timeout
	if cfg.Temperature != nil {
		temperature = *cfg.Temperature
	}
	if opts.Temperature > 0 {
		temperature = opts.Temperature
	}
	if opts.MaxTokens > 0 {
		maxTokens = opts.MaxTokens
	}
	if opts.Timeout > 0 {
		timeout = opts.Timeout
	}
	return temperature, maxTokens, timeout
}
