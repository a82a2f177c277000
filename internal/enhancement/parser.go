// Package enhancement asks a language model to extract or refine résumé data
// and falls back to the deterministic extractor whenever the model path fails.
package enhancement

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jonathan/stackmatch/internal/llm"
	"github.com/jonathan/stackmatch/internal/logger"
	"github.com/jonathan/stackmatch/internal/parsing"
	"github.com/jonathan/stackmatch/internal/prompts"
	"github.com/jonathan/stackmatch/internal/schemas"
	"github.com/jonathan/stackmatch/internal/skills"
	"github.com/jonathan/stackmatch/internal/types"
)

// Strategy selects what the model is asked to do.
type Strategy string

const (
	// StrategyFull extracts the whole profile with the model
	StrategyFull Strategy = "full"
	// StrategySkillsOnly runs the deterministic extractor and lets the model refine the skills
	StrategySkillsOnly Strategy = "skills_only"
	// StrategyValidationOnly runs the deterministic extractor and lets the model clean the result
	StrategyValidationOnly Strategy = "validation_only"
)

// ParseStrategy maps a user-supplied name to a Strategy. Empty selects StrategyFull.
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "full", "full_parse", "enhancement":
		return StrategyFull, nil
	case "skills", "skills_only":
		return StrategySkillsOnly, nil
	case "validation", "validation_only":
		return StrategyValidationOnly, nil
	default:
		return "", fmt.Errorf("unknown parsing strategy %q", s)
	}
}

// Completer is the part of llm.Router the parser needs.
type Completer interface {
	IsAvailable() bool
	CreateChatCompletionWithFallback(ctx context.Context, messages []llm.Message, opts llm.Options) (llm.Completion, error)
}

// Parser runs the model strategies over one résumé text at a time. It holds no
// per-call state and can be shared.
type Parser struct {
	ai  Completer
	log *zap.Logger
}

// NewParser returns a Parser. ai may be nil, which disables the model path.
func NewParser(ai Completer, log *zap.Logger) *Parser {
	return &Parser{ai: ai, log: logger.OrNop(log)}
}

// Available reports whether the model path can be used.
func (p *Parser) Available() bool {
	return p.ai != nil && p.ai.IsAvailable()
}

// Parse runs strategy over text. Unlike ParseResume it does not fall back: any
// provider or response failure is returned.
func (p *Parser) Parse(ctx context.Context, text string, strategy Strategy) (types.ExtractionResult, llm.Completion, error) {
	switch strategy {
	case StrategySkillsOnly:
		return p.EnhanceSkillsOnly(ctx, text)
	case StrategyValidationOnly:
		return p.ValidateOnly(ctx, text)
	default:
		return p.FullParse(ctx, text)
	}
}

// FullParse asks the model for the whole profile.
func (p *Parser) FullParse(ctx context.Context, text string) (types.ExtractionResult, llm.Completion, error) {
	user, err := prompts.Resume(prompts.KeyFullParseUser, map[string]string{"ResumeText": text})
	if err != nil {
		return types.ExtractionResult{}, llm.Completion{}, err
	}

	completion, cleaned, err := p.complete(ctx, prompts.KeyFullParseSystem, user, schemas.Extraction)
	if err != nil {
		return types.ExtractionResult{}, completion, err
	}

	var payload Payload
	if err := llm.ParseJSON(cleaned, &payload); err != nil {
		return types.ExtractionResult{}, completion, err
	}
	return ValidateResponse(payload, text), completion, nil
}

// EnhanceSkillsOnly keeps the deterministic result and replaces its skills with
// the model's standardized list.
func (p *Parser) EnhanceSkillsOnly(ctx context.Context, text string) (types.ExtractionResult, llm.Completion, error) {
	base := parsing.Extract(text)

	user, err := prompts.Resume(prompts.KeySkillsEnhancement, map[string]string{
		"Skills":     strings.Join(base.Skills, ", "),
		"ResumeText": text,
	})
	if err != nil {
		return types.ExtractionResult{}, llm.Completion{}, err
	}

	completion, cleaned, err := p.complete(ctx, prompts.KeySkillsSystem, user, schemas.Skills)
	if err != nil {
		return types.ExtractionResult{}, completion, err
	}

	var enhanced []any
	if err := llm.ParseJSON(cleaned, &enhanced); err != nil {
		return types.ExtractionResult{}, completion, &llm.MalformedResponseError{Message: "AI did not return valid skills array", Cause: err}
	}

	names := make([]string, 0, len(enhanced))
	for _, item := range enhanced {
		if name, ok := item.(string); ok {
			names = append(names, name)
		}
	}
	base.Skills = skills.Dedupe(names)
	return base, completion, nil
}

// ValidateOnly sends the deterministic result to the model for cleaning.
func (p *Parser) ValidateOnly(ctx context.Context, text string) (types.ExtractionResult, llm.Completion, error) {
	base := parsing.Extract(text)

	extracted, err := json.MarshalIndent(payloadFrom(base), "", "  ")
	if err != nil {
		return types.ExtractionResult{}, llm.Completion{}, fmt.Errorf("failed to encode extraction: %w", err)
	}

	user, err := prompts.Resume(prompts.KeyValidation, map[string]string{"ExtractedData": string(extracted)})
	if err != nil {
		return types.ExtractionResult{}, llm.Completion{}, err
	}

	completion, cleaned, err := p.complete(ctx, prompts.KeyValidationSystem, user, schemas.Extraction)
	if err != nil {
		return types.ExtractionResult{}, completion, err
	}

	var payload Payload
	if err := llm.ParseJSON(cleaned, &payload); err != nil {
		return types.ExtractionResult{}, completion, err
	}
	return ValidateResponse(payload, text), completion, nil
}

// complete sends the system and user prompts and returns the reply reduced to
// its JSON block after checking it against schema.
func (p *Parser) complete(ctx context.Context, systemKey, user, schema string) (llm.Completion, string, error) {
	if !p.Available() {
		return llm.Completion{}, "", llm.ErrProviderUnavailable
	}

	system, err := prompts.Get(prompts.ResumeFile, systemKey)
	if err != nil {
		return llm.Completion{}, "", err
	}

	completion, err := p.ai.CreateChatCompletionWithFallback(ctx, []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}, llm.Options{JSON: true})
	if err != nil {
		return completion, "", err
	}

	cleaned := llm.CleanJSONBlock(completion.Content)
	if cleaned == "" {
		return completion, "", &llm.MalformedResponseError{Message: "no response from AI"}
	}
	if err := schemas.Validate(schema, cleaned); err != nil {
		p.log.Debug("AI response rejected",
			zap.String(logger.FieldProvider, string(completion.Provider)),
			zap.String("response", logger.TruncateForLog(cleaned, 200)),
		)
		return completion, "", &llm.MalformedResponseError{Message: "response does not match schema", Cause: err}
	}
	return completion, cleaned, nil
}
