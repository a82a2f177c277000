package enhancement

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/jonathan/stackmatch/internal/llm"
	"github.com/jonathan/stackmatch/internal/logger"
	"github.com/jonathan/stackmatch/internal/parsing"
	"github.com/jonathan/stackmatch/internal/types"
)

// DefaultTimeout bounds the whole model path of one ParseResume call.
const DefaultTimeout = 10 * time.Second

// Messages reported by ParseResume on failure
const (
	MsgFallbackDisabled = "AI parsing failed and fallback disabled"
	MsgBothPathsFailed  = "Both AI and fallback parsing failed"
)

// Options controls ParseResume.
type Options struct {
	UseAI           bool
	Strategy        Strategy
	FallbackOnError bool
	Timeout         time.Duration
}

// DefaultOptions uses the model with the full strategy and falls back on error.
func DefaultOptions() Options {
	return Options{
		UseAI:           true,
		Strategy:        StrategyFull,
		FallbackOnError: true,
		Timeout:         DefaultTimeout,
	}
}

// Result is the outcome of ParseResume. Data is set when Success is true.
type Result struct {
	Success            bool                    `json:"success"`
	Data               *types.ExtractionResult `json:"data,omitempty"`
	Error              string                  `json:"error,omitempty"`
	Source             types.Provenance        `json:"source"`
	Provider           string                  `json:"provider,omitempty"`
	ProcessingTimeMS   int64                   `json:"processing_time_ms"`
	AIProcessingTimeMS int64                   `json:"ai_processing_time_ms,omitempty"`

	// Err is the model-path failure, if any, kept for logging and classification
	Err error `json:"-"`
}

type attempt struct {
	result     types.ExtractionResult
	completion llm.Completion
	err        error
}

// ParseResume extracts a profile from text. The model path runs under
// opts.Timeout; on any failure, or when the model is unavailable or disabled,
// the deterministic extractor produces the result with provenance fallback.
// With opts.FallbackOnError false a model failure is reported instead.
func (p *Parser) ParseResume(ctx context.Context, text string, opts Options) Result {
	start := time.Now()
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}

	if !opts.UseAI || !p.Available() {
		p.log.Debug("using deterministic extraction", zap.Bool("use_ai", opts.UseAI))
		return p.fallback(text, start, nil)
	}

	log := logger.WithFields(p.log, zap.String(logger.FieldStrategy, string(opts.Strategy)))

	aiStart := time.Now()
	a := p.race(ctx, text, opts)
	aiMS := time.Since(aiStart).Milliseconds()

	if a.err != nil {
		log.Warn("AI parsing failed", zap.Error(a.err), zap.Bool("fallback", opts.FallbackOnError))
		if !opts.FallbackOnError {
			return Result{
				Success:            false,
				Error:              MsgFallbackDisabled,
				Source:             types.ProvenanceAI,
				ProcessingTimeMS:   time.Since(start).Milliseconds(),
				AIProcessingTimeMS: aiMS,
				Err:                a.err,
			}
		}
		res := p.fallback(text, start, a.err)
		res.AIProcessingTimeMS = aiMS
		return res
	}

	data := a.result
	data.Provenance = types.ProvenanceAI
	data.Provider = string(a.completion.Provider)
	data.ProcessingTimeMS = time.Since(start).Milliseconds()

	logger.WithCommonFields(log, data.Provider, a.completion.Model).Info("AI parsing succeeded",
		zap.Int("skills", len(data.Skills)),
		zap.Int64("ai_ms", aiMS),
	)

	return Result{
		Success:            true,
		Data:               &data,
		Source:             types.ProvenanceAI,
		Provider:           data.Provider,
		ProcessingTimeMS:   data.ProcessingTimeMS,
		AIProcessingTimeMS: aiMS,
	}
}

// race runs the strategy against a timer. The strategy's context is canceled
// when the timer wins so the in-flight request is aborted too.
func (p *Parser) race(ctx context.Context, text string, opts Options) attempt {
	ctx, cancel := context.WithTimeout(ctx, opts.Timeout)
	defer cancel()

	done := make(chan attempt, 1)
	go func() {
		result, completion, err := p.Parse(ctx, text, opts.Strategy)
		done <- attempt{result: result, completion: completion, err: err}
	}()

	select {
	case a := <-done:
		return a
	case <-ctx.Done():
		return attempt{err: fmt.Errorf("AI parsing timed out after %s: %w", opts.Timeout, ctx.Err())}
	}
}

// fallback runs the deterministic extractor. cause is the model failure that
// led here, if any.
func (p *Parser) fallback(text string, start time.Time, cause error) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			p.log.Error("deterministic extraction panicked", zap.Any("panic", r))
			res = Result{
				Success:          false,
				Error:            MsgBothPathsFailed,
				Source:           types.ProvenanceFallback,
				ProcessingTimeMS: time.Since(start).Milliseconds(),
				Err:              cause,
			}
		}
	}()

	data := parsing.Extract(text)
	data.Provenance = types.ProvenanceFallback
	data.ProcessingTimeMS = time.Since(start).Milliseconds()

	return Result{
		Success:          true,
		Data:             &data,
		Source:           types.ProvenanceFallback,
		ProcessingTimeMS: data.ProcessingTimeMS,
		Err:              cause,
	}
}

// ParseResumeWithAI is shorthand for NewParser(ai, log).ParseResume(ctx, text, opts).
func ParseResumeWithAI(ctx context.Context, ai Completer, text string, opts Options, log *zap.Logger) Result {
	return NewParser(ai, log).ParseResume(ctx, text, opts)
}
