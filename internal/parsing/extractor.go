// Package parsing derives a structured profile from résumé text using regular
// expressions only. It performs no I/O and is deterministic for a given input.
package parsing

import (
	"github.com/jonathan/stackmatch/internal/ingestion"
	"github.com/jonathan/stackmatch/internal/types"
)

// Extractor holds the normalized text of one résumé and its sections.
type Extractor struct {
	text     string
	sections *ingestion.SectionMap
}

// NewExtractor normalizes rawText and segments it.
func NewExtractor(rawText string) *Extractor {
	text := ingestion.Normalize(rawText)
	return &Extractor{
		text:     text,
		sections: ingestion.Segment(text),
	}
}

// Text returns the normalized text the extractor operates on.
func (e *Extractor) Text() string {
	return e.text
}

// Sections returns the labeled sections of the normalized text.
func (e *Extractor) Sections() *ingestion.SectionMap {
	return e.sections
}

// Extract runs every extraction step. It never fails; fields that could not be
// found are left empty.
func (e *Extractor) Extract() types.ExtractionResult {
	return types.ExtractionResult{
		PersonalInfo: e.PersonalInfo(),
		Skills:       e.Skills(),
		Education:    e.Education(),
		Experience:   e.Experience(),
		RawText:      e.text,
	}
}

// Extract is shorthand for NewExtractor(rawText).Extract().
func Extract(rawText string) types.ExtractionResult {
	return NewExtractor(rawText).Extract()
}
