package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// OpenAIProvider implements Provider against an OpenAI-compatible chat
// completions endpoint.
type OpenAIProvider struct {
	config     ProviderConfig
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI provider. httpClient may be nil.
func NewOpenAIProvider(config ProviderConfig, httpClient *http.Client) *OpenAIProvider {
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	return &OpenAIProvider{
		config:     config.withDefaults(DefaultConfig().OpenAI),
		httpClient: httpClient,
	}
}

// Name returns ProviderOpenAI.
func (p *OpenAIProvider) Name() ProviderName { return ProviderOpenAI }

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string { return p.config.Model }

// IsAvailable reports whether an API key is configured.
func (p *OpenAIProvider) IsAvailable() bool { return p.config.APIKey != "" }

type chatRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float32   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// CreateChatCompletion posts messages to the chat completions endpoint.
func (p *OpenAIProvider) CreateChatCompletion(ctx context.Context, messages []Message, opts Options) (string, error) {
	if !p.IsAvailable() {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "OpenAI client not available", Cause: ErrProviderUnavailable}
	}

	temperature, maxTokens, timeout := resolve(p.config, opts)

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	body, err := json.Marshal(chatRequest{
		Model:       p.config.Model,
		Messages:    messages,
		Temperature: temperature,
		MaxTokens:   maxTokens,
	})
	if err != nil {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "failed to marshal request", Cause: err}
	}

	endpoint := strings.TrimRight(p.config.BaseURL, "/") + "/chat/completions"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return "", &ProviderError{Provider: ProviderOpenAI, Message: "OpenAI request timeout", Timeout: true, Cause: err}
		}
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", &ProviderError{
			Provider:   ProviderOpenAI,
			Message:    fmt.Sprintf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(errBody))),
			StatusCode: resp.StatusCode,
		}
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &ProviderError{Provider: ProviderOpenAI, Message: "failed to decode response", Cause: err}
	}

	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return parsed.Choices[0].Message.Content, nil
}
