package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiProvider implements Provider for Google Gemini
type GeminiProvider struct {
	client *genai.Client
	config ProviderConfig
}

// NewGeminiProvider creates a Gemini provider. Without an API key the provider
// is returned unavailable rather than failing.
func NewGeminiProvider(ctx context.Context, config ProviderConfig) (*GeminiProvider, error) {
	config = config.withDefaults(DefaultConfig().Gemini)
	p := &GeminiProvider{config: config}
	if config.APIKey == "" {
		return p, nil
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(config.APIKey))
	if err != nil {
		return p, fmt.Errorf("failed to create Gemini client: %w", err)
	}
	p.client = client
	return p, nil
}

// Name returns ProviderGemini.
func (p *GeminiProvider) Name() ProviderName { return ProviderGemini }

// Model returns the configured model name.
func (p *GeminiProvider) Model() string { return p.config.Model }

// IsAvailable reports whether a client was created.
func (p *GeminiProvider) IsAvailable() bool { return p.client != nil }

// CreateChatCompletion flattens messages into one prompt and generates a reply.
func (p *GeminiProvider) CreateChatCompletion(ctx context.Context, messages []Message, opts Options) (string, error) {
	if !p.IsAvailable() {
		return "", &ProviderError{Provider: ProviderGemini, Message: "Gemini client not available", Cause: ErrProviderUnavailable}
	}

	temperature, maxTokens, timeout := resolve(p.config, opts)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	model := p.client.GenerativeModel(p.config.Model)
	model.SetTemperature(temperature)
	model.SetMaxOutputTokens(int32(maxTokens))
	if opts.JSON {
		model.ResponseMIMEType = "application/json"
	}

	resp, err := model.GenerateContent(ctx, genai.Text(ConvertMessagesToPrompt(messages)))
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &ProviderError{Provider: ProviderGemini, Message: "Gemini request timeout", Timeout: true, Cause: err}
		}
		return "", &ProviderError{Provider: ProviderGemini, Message: "failed to generate content", Cause: err}
	}

	return extractTextFromResponse(resp), nil
}

// Close releases resources held by the client
func (p *GeminiProvider) Close() error {
	if p.client != nil {
		return p.client.Close()
	}
	return nil
}

// extractTextFromResponse joins the text parts of the first candidate.
func extractTextFromResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	candidate := resp.Candidates[0]
	if candidate.Content == nil {
		return ""
	}

	var parts []string
	for _, part := range candidate.Content.Parts {
		if text, ok := part.(genai.Text); ok {
			parts = append(parts, string(text))
		}
	}
	return strings.Join(parts, "")
}
