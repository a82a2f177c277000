package types

import "fmt"

// Difficulty is the effort level of a project idea
type Difficulty string

// Difficulty levels
const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

// Category is the closed set of project domains in the catalog
type Category string

// Project categories
const (
	CategoryWebDevelopment    Category = "Web Development"
	CategoryMobileDevelopment Category = "Mobile Development"
	CategoryDataScience       Category = "Data Science"
	CategoryDevOps            Category = "DevOps"
	CategoryAIML              Category = "AI/ML"
	CategoryBlockchain        Category = "Blockchain"
	CategoryGameDevelopment   Category = "Game Development"
	CategoryDesktopApps       Category = "Desktop Apps"
	CategoryIoT               Category = "IoT"
	CategoryECommerce         Category = "E-commerce"
)

// Categories lists every catalog category in declaration order.
func Categories() []Category {
	return []Category{
		CategoryWebDevelopment,
		CategoryMobileDevelopment,
		CategoryDataScience,
		CategoryDevOps,
		CategoryAIML,
		CategoryBlockchain,
		CategoryGameDevelopment,
		CategoryDesktopApps,
		CategoryIoT,
		CategoryECommerce,
	}
}

// ProjectIdea is an immutable catalog entry
type ProjectIdea struct {
	ID             string     `json:"id" validate:"required"`
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description"`
	RequiredSkills []string   `json:"required_skills" validate:"min=1,dive,required"`
	Difficulty     Difficulty `json:"difficulty" validate:"oneof=Beginner Intermediate Advanced"`
	Category       Category   `json:"category" validate:"required"`
	EstimatedTime  string     `json:"estimated_time"`
}

// Validate checks the struct tags and that Category is one of Categories().
func (p *ProjectIdea) Validate() error {
	if err := validate.Struct(p); err != nil {
		return err
	}
	for _, c := range Categories() {
		if p.Category == c {
			return nil
		}
	}
	return fmt.Errorf("project %s: unknown category %q", p.ID, p.Category)
}

// MatchedProject is a catalog entry decorated with a per-request match breakdown.
type MatchedProject struct {
	ProjectIdea
	MatchPercentage int      `json:"match_percentage"`
	MatchedSkills   []string `json:"matched_skills"`
	MissingSkills   []string `json:"missing_skills"`
}

// SkillSources splits matched skills by the profile they came from
type SkillSources struct {
	FromResume  []string `json:"from_resume"`
	FromScholar []string `json:"from_scholar"`
}

// ProjectMatch is a MatchedProject that also records which profile supplied each matched skill.
type ProjectMatch struct {
	MatchedProject
	SkillSources SkillSources `json:"skill_sources"`
}
