// Package types provides type definitions for structured data used throughout the stackmatch system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// Provenance records which extraction path produced a result.
type Provenance string

const (
	// ProvenanceAI marks results produced by a language-model provider
	ProvenanceAI Provenance = "ai"
	// ProvenanceFallback marks results produced by the deterministic extractor
	ProvenanceFallback Provenance = "fallback"
)

// PersonalInfo holds best-effort contact details. Empty fields were not found.
type PersonalInfo struct {
	Name     string `json:"name,omitempty"`
	Email    string `json:"email,omitempty"`
	Phone    string `json:"phone,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	GitHub   string `json:"github,omitempty"`
	Website  string `json:"website,omitempty"`
}

// EducationEntry represents a single education block
type EducationEntry struct {
	Institution string `json:"institution,omitempty"`
	Degree      string `json:"degree,omitempty"`
	Field       string `json:"field,omitempty"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	GPA         string `json:"gpa,omitempty"`
	Location    string `json:"location,omitempty"`
}

// ExperienceEntry represents a single job with its bullet points in document order
type ExperienceEntry struct {
	Company     string   `json:"company,omitempty"`
	Position    string   `json:"position,omitempty"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
	Description []string `json:"description,omitempty"`
}

// ExtractionResult is the structured profile extracted from résumé text.
type ExtractionResult struct {
	PersonalInfo PersonalInfo      `json:"personal_info"`
	Skills       []string          `json:"skills"`
	Education    []EducationEntry  `json:"education"`
	Experience   []ExperienceEntry `json:"experience"`
	RawText      string            `json:"raw_text,omitempty"`

	// Provenance and timing
	Provenance       Provenance `json:"provenance,omitempty"`
	Provider         string     `json:"provider,omitempty"`
	ProcessingTimeMS int64      `json:"processing_time_ms"`
}

// DocumentMetadata describes the uploaded document a result was derived from
type DocumentMetadata struct {
	FileName           string     `json:"file_name"`
	FileSize           int64      `json:"file_size"`
	FileType           string     `json:"file_type"`
	TotalPages         int        `json:"total_pages,omitempty"`
	TotalCharacters    int        `json:"total_characters"`
	ProcessingTimeMS   int64      `json:"processing_time_ms"`
	ParsingSource      Provenance `json:"parsing_source,omitempty"`
	AIProcessingTimeMS int64      `json:"ai_processing_time_ms,omitempty"`
}

// ResumeData is an extraction result together with the metadata of its source document.
type ResumeData struct {
	ExtractionResult
	Metadata DocumentMetadata `json:"metadata"`
}
