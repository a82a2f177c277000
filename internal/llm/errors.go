package llm

import (
	"errors"
	"fmt"
)

// ErrProviderUnavailable is returned when a provider has no usable configuration.
var ErrProviderUnavailable = errors.New("provider not available")

// ProviderError reports a failed or timed-out completion call.
type ProviderError struct {
	Provider   ProviderName
	Message    string
	StatusCode int
	Timeout    bool
	Cause      error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Provider, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Provider, e.Message)
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// FallbackUnavailableError reports that the primary provider failed and the
// other provider could not be tried.
type FallbackUnavailableError struct {
	Fallback ProviderName
	Cause    error
}

func (e *FallbackUnavailableError) Error() string {
	return fmt.Sprintf("Primary provider failed and fallback (%s) is not available", e.Fallback)
}

func (e *FallbackUnavailableError) Unwrap() error {
	return e.Cause
}

// BothProvidersFailedError reports that the primary and the fallback provider
// both failed.
type BothProvidersFailedError struct {
	Primary  error
	Fallback error
}

func (e *BothProvidersFailedError) Error() string {
	return "Both AI providers failed"
}

func (e *BothProvidersFailedError) Unwrap() []error {
	return []error{e.Primary, e.Fallback}
}

// MalformedResponseError reports a reply that is not the JSON the caller asked for.
type MalformedResponseError struct {
	Message string
	Cause   error
}

func (e *MalformedResponseError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("malformed AI response: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("malformed AI response: %s", e.Message)
}

func (e *MalformedResponseError) Unwrap() error {
	return e.Cause
}
