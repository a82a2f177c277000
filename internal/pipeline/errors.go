package pipeline

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/stackmatch/internal/fetch"
	"github.com/jonathan/stackmatch/internal/ingestion"
	"github.com/jonathan/stackmatch/internal/llm"
	"github.com/jonathan/stackmatch/internal/scholar"
)

// ErrorKind classifies a failure for callers at the boundary.
type ErrorKind string

// Error kinds
const (
	KindInputValidation     ErrorKind = "input_validation"
	KindParseFailure        ErrorKind = "parse_failure"
	KindFetchError          ErrorKind = "fetch_error"
	KindAIProviderError     ErrorKind = "ai_provider_error"
	KindBothProvidersFailed ErrorKind = "both_providers_failed"
	KindMalformedAIResponse ErrorKind = "malformed_ai_response"
	KindInternal            ErrorKind = "internal"
)

// InputError reports a malformed request.
type InputError struct {
	Message string
}

func (e *InputError) Error() string {
	return e.Message
}

// Classify maps err to its kind. Unknown errors are KindInternal.
func Classify(err error) ErrorKind {
	var (
		inputErr     *InputError
		uploadErr    *ingestion.ValidationError
		refErr       *scholar.InvalidReferenceError
		fieldErrs    validator.ValidationErrors
		parseErr     *ingestion.ParseError
		fetchErr     *fetch.Error
		bothErr      *llm.BothProvidersFailedError
		noFallback   *llm.FallbackUnavailableError
		malformedErr *llm.MalformedResponseError
		providerErr  *llm.ProviderError
	)

	switch {
	case err == nil:
		return ""
	case errors.As(err, &inputErr), errors.As(err, &uploadErr), errors.As(err, &refErr), errors.As(err, &fieldErrs):
		return KindInputValidation
	case errors.As(err, &parseErr):
		return KindParseFailure
	case errors.As(err, &fetchErr):
		return KindFetchError
	// both wrap provider errors, so they are checked first
	case errors.As(err, &bothErr), errors.As(err, &noFallback):
		return KindBothProvidersFailed
	case errors.As(err, &malformedErr):
		return KindMalformedAIResponse
	case errors.As(err, &providerErr), errors.Is(err, llm.ErrProviderUnavailable), errors.Is(err, context.DeadlineExceeded):
		return KindAIProviderError
	default:
		return KindInternal
	}
}

// headline is the user-facing message for kinds whose error text is detail.
var headline = map[ErrorKind]string{
	KindParseFailure:        "Failed to parse resume",
	KindFetchError:          "Failed to fetch Google Scholar profile",
	KindAIProviderError:     "AI provider request failed",
	KindBothProvidersFailed: "Both AI providers failed",
	KindMalformedAIResponse: "AI response could not be used",
	KindInternal:            "Internal server error",
}

// Failure is the error half of an Envelope.
type Failure struct {
	Message string    `json:"error"`
	Kind    ErrorKind `json:"kind"`
	Details string    `json:"details,omitempty"`

	Err error `json:"-"`
}

// NewFailure describes err. Input errors carry their own message; other kinds
// get a fixed headline with the error text as detail.
func NewFailure(err error) *Failure {
	kind := Classify(err)

	var refErr *scholar.InvalidReferenceError
	switch {
	case errors.As(err, &refErr):
		return &Failure{Message: "Invalid Google Scholar URL format", Kind: kind, Details: err.Error(), Err: err}
	case kind == KindInputValidation:
		return &Failure{Message: err.Error(), Kind: kind, Err: err}
	default:
		return &Failure{Message: headline[kind], Kind: kind, Details: err.Error(), Err: err}
	}
}
