// Package ranking scores catalog projects against a user's skills with
// case-insensitive substring and edit-distance matching.
package ranking

import (
	"sort"

	"github.com/jonathan/stackmatch/internal/types"
)

const (
	// MinMatchPercentage is the lowest score RankProjects and FindBestMatches keep.
	MinMatchPercentage = 20
	// DefaultLimit is the size of the suggestion list.
	DefaultLimit = 12
	// ProjectsBySkillsMinRatio is the share of required skills, in percent,
	// ProjectsBySkills demands. It differs from MinMatchPercentage on purpose:
	// the catalog browser only lists closer fits.
	ProjectsBySkillsMinRatio = 30
)

// RankProjects matches userSkills against every project with IsSkillMatch,
// drops projects below MinMatchPercentage and sorts by percentage descending.
// Ties keep catalog order. limit <= 0 keeps every qualifying project.
func RankProjects(userSkills []string, projects []types.ProjectIdea, limit int) []types.MatchedProject {
	user := lowerNonEmpty(userSkills)

	ranked := make([]types.MatchedProject, 0, len(projects))
	for _, p := range projects {
		mp := matchLowered(p, user, fuzzyMatch)
		if mp.MatchPercentage >= MinMatchPercentage {
			ranked = append(ranked, mp)
		}
	}

	sortByPercentage(ranked, func(i int) int { return ranked[i].MatchPercentage })
	return truncate(ranked, limit)
}

// ProjectsBySkills lists projects where at least ProjectsBySkillsMinRatio
// percent of the required skills match by substring alone, best first.
func ProjectsBySkills(userSkills []string, projects []types.ProjectIdea) []types.MatchedProject {
	user := lowerNonEmpty(userSkills)

	out := []types.MatchedProject{}
	for _, p := range projects {
		mp := matchLowered(p, user, substringMatch)
		// compare the exact ratio, not the rounded percentage
		if 100*len(mp.MatchedSkills) >= ProjectsBySkillsMinRatio*len(p.RequiredSkills) {
			out = append(out, mp)
		}
	}

	sortByPercentage(out, func(i int) int { return out[i].MatchPercentage })
	return out
}

func sortByPercentage[T any](s []T, pct func(i int) int) {
	sort.SliceStable(s, func(i, j int) bool {
		return pct(i) > pct(j)
	})
}

func truncate[T any](s []T, limit int) []T {
	if limit > 0 && len(s) > limit {
		return s[:limit]
	}
	return s
}
