// Package skills provides helpers for working with flat skill lists.
package skills

import "strings"

// key folds a skill to the form used for equality checks.
func key(skill string) string {
	return strings.ToLower(strings.TrimSpace(skill))
}

// Dedupe trims every skill, drops empty entries and removes case-insensitive duplicates.
// The first spelling seen wins and insertion order is preserved.
func Dedupe(skills []string) []string {
	result := make([]string, 0, len(skills))
	seen := make(map[string]bool, len(skills))
	for _, skill := range skills {
		trimmed := strings.TrimSpace(skill)
		if trimmed == "" {
			continue
		}
		k := key(trimmed)
		if seen[k] {
			continue
		}
		seen[k] = true
		result = append(result, trimmed)
	}
	return result
}

// Union concatenates the lists and dedupes the result.
func Union(lists ...[]string) []string {
	var all []string
	for _, list := range lists {
		all = append(all, list...)
	}
	return Dedupe(all)
}

// Lower returns the trimmed lowercase form of every skill, keeping order and duplicates.
func Lower(list []string) []string {
	result := make([]string, len(list))
	for i, s := range list {
		result[i] = key(s)
	}
	return result
}
