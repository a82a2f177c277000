package types

import (
	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// SuggestionsRequest asks for project suggestions for a flat skill list.
type SuggestionsRequest struct {
	Skills      []string `json:"skills" validate:"required,dive,max=100"`
	Standardize bool     `json:"standardize,omitempty"`
}

// ScholarRequest asks for an academic profile to be fetched and parsed.
type ScholarRequest struct {
	ProfileURL string `json:"profile_url" validate:"required,max=2048"`
}

// BestMatchesRequest asks for matches over a résumé and a scholar skill list.
type BestMatchesRequest struct {
	ResumeSkills  []string `json:"resume_skills" validate:"dive,max=100"`
	ScholarSkills []string `json:"scholar_skills" validate:"dive,max=100"`
	Limit         int      `json:"limit,omitempty" validate:"omitempty,min=1,max=100"`
}

// Validate validates the SuggestionsRequest using the validator.
func (r *SuggestionsRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the ScholarRequest using the validator.
func (r *ScholarRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the BestMatchesRequest using the validator.
func (r *BestMatchesRequest) Validate() error {
	return validate.Struct(r)
}
