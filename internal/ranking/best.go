package ranking

import (
	"sort"

	"github.com/jonathan/stackmatch/internal/skills"
	"github.com/jonathan/stackmatch/internal/types"
)

const (
	// BestMatchesDefaultLimit is used by FindBestMatches when limit <= 0.
	BestMatchesDefaultLimit = 10
	// AcademicDefaultLimit is used by AcademicProjects when limit <= 0.
	AcademicDefaultLimit = 5

	learningPathPool = 50
	learningPathSize = 10
)

var academicCategories = map[types.Category]bool{
	types.CategoryAIML:            true,
	types.CategoryDataScience:     true,
	types.CategoryGameDevelopment: true,
}

// FindBestMatches ranks projects against the union of résumé and scholar
// skills using substring matching only, and records which profile supplied
// each matched skill.
func FindBestMatches(resumeSkills, scholarSkills []string, projects []types.ProjectIdea, limit int) []types.ProjectMatch {
	if limit <= 0 {
		limit = BestMatchesDefaultLimit
	}

	user := lowerNonEmpty(skills.Union(resumeSkills, scholarSkills))
	resume := lowerNonEmpty(resumeSkills)
	scholar := lowerNonEmpty(scholarSkills)

	matches := make([]types.ProjectMatch, 0, len(projects))
	for _, p := range projects {
		mp := matchLowered(p, user, substringMatch)
		if mp.MatchPercentage < MinMatchPercentage {
			continue
		}

		sources := types.SkillSources{FromResume: []string{}, FromScholar: []string{}}
		for _, s := range mp.MatchedSkills {
			required := normalize(s)
			if anyMatches(resume, required, substringMatch) {
				sources.FromResume = append(sources.FromResume, s)
			}
			if anyMatches(scholar, required, substringMatch) {
				sources.FromScholar = append(sources.FromScholar, s)
			}
		}
		matches = append(matches, types.ProjectMatch{MatchedProject: mp, SkillSources: sources})
	}

	sortByPercentage(matches, func(i int) int { return matches[i].MatchPercentage })
	return truncate(matches, limit)
}

// RecommendedLearningPath returns the skills missing most often across the
// best matches, most frequent first. Ties keep the order skills were first seen.
func RecommendedLearningPath(resumeSkills, scholarSkills []string, projects []types.ProjectIdea) []string {
	matches := FindBestMatches(resumeSkills, scholarSkills, projects, learningPathPool)

	var order []string
	counts := make(map[string]int)
	for _, m := range matches {
		for _, s := range m.MissingSkills {
			if counts[s] == 0 {
				order = append(order, s)
			}
			counts[s]++
		}
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})
	return truncate(append([]string{}, order...), learningPathSize)
}

// AcademicProjects returns the best scholar-skill matches that are research
// oriented: AI/ML, Data Science or Game Development projects, or any Advanced one.
func AcademicProjects(scholarSkills []string, projects []types.ProjectIdea, limit int) []types.ProjectMatch {
	if limit <= 0 {
		limit = AcademicDefaultLimit
	}

	out := []types.ProjectMatch{}
	for _, m := range FindBestMatches(nil, scholarSkills, projects, learningPathPool) {
		if academicCategories[m.Category] || m.Difficulty == types.DifficultyAdvanced {
			out = append(out, m)
		}
	}
	return truncate(out, limit)
}
