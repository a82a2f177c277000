package ranking

import (
	"strings"

	"github.com/jonathan/stackmatch/internal/parsing"
	"github.com/jonathan/stackmatch/internal/skills"
	"github.com/jonathan/stackmatch/internal/types"
)

// MatchFunc reports whether a user skill satisfies a required skill. Both
// arguments are already lowercased and trimmed.
type MatchFunc func(userSkill, requiredSkill string) bool

// IsSkillMatch reports whether either skill contains the other or their
// similarity exceeds SimilarityThreshold, ignoring case. It does not
// standardize: "JS" does not match "JavaScript".
func IsSkillMatch(userSkill, requiredSkill string) bool {
	return fuzzyMatch(normalize(userSkill), normalize(requiredSkill))
}

// IsSubstringMatch is IsSkillMatch without the edit-distance test.
func IsSubstringMatch(userSkill, requiredSkill string) bool {
	return substringMatch(normalize(userSkill), normalize(requiredSkill))
}

func fuzzyMatch(user, required string) bool {
	return substringMatch(user, required) || Similarity(user, required) > SimilarityThreshold
}

func substringMatch(user, required string) bool {
	return strings.Contains(user, required) || strings.Contains(required, user)
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// StandardizeSkills maps raw skill tokens through the extractor's
// standardization table and dedupes the result. Callers that pass loose tokens
// such as "js" use it before ranking.
func StandardizeSkills(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range list {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, parsing.StandardizeSkill(s))
		}
	}
	return skills.Dedupe(out)
}

// MatchProject splits the project's required skills into matched and missing
// using any-match semantics: a required skill is matched when at least one
// user skill satisfies match. Blank user skills are ignored.
func MatchProject(project types.ProjectIdea, userSkills []string, match MatchFunc) types.MatchedProject {
	return matchLowered(project, lowerNonEmpty(userSkills), match)
}

func matchLowered(project types.ProjectIdea, user []string, match MatchFunc) types.MatchedProject {
	mp := types.MatchedProject{
		ProjectIdea:   project,
		MatchedSkills: []string{},
		MissingSkills: []string{},
	}
	for _, required := range project.RequiredSkills {
		if anyMatches(user, normalize(required), match) {
			mp.MatchedSkills = append(mp.MatchedSkills, required)
		} else {
			mp.MissingSkills = append(mp.MissingSkills, required)
		}
	}
	mp.MatchPercentage = percentage(len(mp.MatchedSkills), len(project.RequiredSkills))
	return mp
}

func anyMatches(user []string, required string, match MatchFunc) bool {
	for _, u := range user {
		if match(u, required) {
			return true
		}
	}
	return false
}

// percentage is round(100 * matched / total), rounding halves up.
func percentage(matched, total int) int {
	if total == 0 {
		return 0
	}
	return (200*matched + total) / (2 * total)
}

func lowerNonEmpty(list []string) []string {
	out := make([]string, 0, len(list))
	for _, s := range skills.Lower(list) {
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}
