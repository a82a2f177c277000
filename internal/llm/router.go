package llm

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/stackmatch/internal/logger"
)

// Completion is a reply together with the provider that produced it.
type Completion struct {
	Content  string
	Provider ProviderName
	Model    string
}

// ProviderInfo describes the primary provider.
type ProviderInfo struct {
	Provider  ProviderName `json:"provider"`
	Model     string       `json:"model"`
	Available bool         `json:"available"`
}

// Router sends completions to a primary provider and falls back to a secondary
// one. It is built once at startup and shared; it holds no per-call state.
type Router struct {
	primary  Provider
	fallback Provider
	stats    *Stats
	log      *zap.Logger
}

// NewRouter returns a Router. fallback may be nil.
func NewRouter(primary, fallback Provider, log *zap.Logger) *Router {
	return &Router{
		primary:  primary,
		fallback: fallback,
		stats:    NewStats(),
		log:      logger.OrNop(log),
	}
}

// NewRouterFromConfig builds both providers and orders them by cfg.Primary.
// A Gemini client that cannot be created is logged and left unavailable.
func NewRouterFromConfig(ctx context.Context, cfg *Config, log *zap.Logger) *Router {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	log = logger.OrNop(log)

	gemini, err := NewGeminiProvider(ctx, cfg.Gemini)
	if err != nil {
		log.Warn("gemini provider disabled", zap.Error(err))
	}
	openai := NewOpenAIProvider(cfg.OpenAI, nil)

	if cfg.Primary == ProviderOpenAI {
		return NewRouter(openai, gemini, log)
	}
	return NewRouter(gemini, openai, log)
}

// Primary returns the primary provider.
func (r *Router) Primary() Provider {
	return r.primary
}

// IsAvailable reports whether the primary provider can be called.
func (r *Router) IsAvailable() bool {
	return r.primary != nil && r.primary.IsAvailable()
}

// Info describes the primary provider.
func (r *Router) Info() ProviderInfo {
	if r.primary == nil {
		return ProviderInfo{}
	}
	return ProviderInfo{
		Provider:  r.primary.Name(),
		Model:     r.primary.Model(),
		Available: r.primary.IsAvailable(),
	}
}

// Stats returns per-provider call statistics.
func (r *Router) Stats() map[ProviderName]ProviderStats {
	return r.stats.Snapshot()
}

// CreateChatCompletion calls the primary provider only.
func (r *Router) CreateChatCompletion(ctx context.Context, messages []Message, opts Options) (Completion, error) {
	return r.call(ctx, r.primary, messages, opts)
}

// CreateChatCompletionWithFallback calls the primary provider and, if it fails,
// the fallback provider. The error is *FallbackUnavailableError when the
// fallback cannot be tried and *BothProvidersFailedError when it also fails.
func (r *Router) CreateChatCompletionWithFallback(ctx context.Context, messages []Message, opts Options) (Completion, error) {
	completion, primaryErr := r.call(ctx, r.primary, messages, opts)
	if primaryErr == nil {
		return completion, nil
	}

	primaryName := ProviderGemini
	if r.primary != nil {
		primaryName = r.primary.Name()
	}
	fallbackName := primaryName.Other()

	r.log.Warn("primary provider failed",
		zap.String(logger.FieldProvider, string(primaryName)),
		zap.Error(primaryErr),
	)

	if r.fallback == nil || !r.fallback.IsAvailable() {
		return Completion{}, &FallbackUnavailableError{Fallback: fallbackName, Cause: primaryErr}
	}

	r.log.Info("falling back", zap.String(logger.FieldProvider, string(r.fallback.Name())))

	completion, fallbackErr := r.call(ctx, r.fallback, messages, opts)
	if fallbackErr != nil {
		r.log.Error("fallback provider also failed",
			zap.String(logger.FieldProvider, string(r.fallback.Name())),
			zap.Error(fallbackErr),
		)
		return Completion{}, &BothProvidersFailedError{Primary: primaryErr, Fallback: fallbackErr}
	}
	return completion, nil
}

func (r *Router) call(ctx context.Context, p Provider, messages []Message, opts Options) (Completion, error) {
	if p == nil {
		return Completion{}, ErrProviderUnavailable
	}

	start := time.Now()
	content, err := p.CreateChatCompletion(ctx, messages, opts)
	latency := time.Since(start)
	r.stats.Record(p.Name(), latency, err)

	logger.WithCommonFields(r.log, string(p.Name()), p.Model()).Debug("chat completion",
		zap.Duration("latency", latency),
		zap.Bool("ok", err == nil),
	)

	if err != nil {
		return Completion{}, err
	}
	return Completion{Content: content, Provider: p.Name(), Model: p.Model()}, nil
}

// Close releases provider clients that hold resources.
func (r *Router) Close() error {
	var errs []error
	for _, p := range []Provider{r.primary, r.fallback} {
		if c, ok := p.(io.Closer); ok {
			errs = append(errs, c.Close())
		}
	}
	return errors.Join(errs...)
}
