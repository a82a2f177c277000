package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/stackmatch/internal/types"
)

const bullet = "•"

var companyPatterns = []*regexp.Regexp{
	// ALL CAPS company names
	regexp.MustCompile(`^[A-Z][A-Z\s&]+$`),
	// company followed by a known location
	regexp.MustCompile(`(?i)^[A-Za-z0-9\s&]+\s+(India|USA|CA|Palo Alto)`),
}

var positionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)developer|engineer|contributor|mentor|ambassador`),
	regexp.MustCompile(`(?i)intern|associate|senior|junior|lead`),
	regexp.MustCompile(`(?i)open source`),
}

// Experience scans the "work experience" (or "experience") section. A company
// line starts a new job; a job is emitted only once it has both a company and
// a position.
func (e *Extractor) Experience() []types.ExperienceEntry {
	jobs := []types.ExperienceEntry{}

	section := e.sections.Get("work experience")
	if section == "" {
		section = e.sections.Get("experience")
	}
	if section == "" {
		return jobs
	}

	var (
		current    types.ExperienceEntry
		collecting bool
	)

	flush := func() {
		if current.Company != "" && current.Position != "" {
			jobs = append(jobs, current)
		}
	}

	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if !strings.Contains(line, bullet) && anyMatch(companyPatterns, line) {
			flush()
			current = types.ExperienceEntry{Company: line}
			collecting = false
		}

		if current.Company != "" && current.Position == "" && anyMatch(positionPatterns, line) {
			current.Position = line
			collecting = true
		}

		if m := dateRangePattern.FindStringSubmatch(line); m != nil {
			current.StartDate = m[1]
			current.EndDate = m[2]
		}

		if collecting && strings.HasPrefix(line, bullet) {
			current.Description = append(current.Description, strings.TrimSpace(strings.TrimPrefix(line, bullet)))
		}
		// tech stack lines are also kept verbatim, so a bulleted one appears twice
		if strings.Contains(strings.ToLower(line), "tech stack:") {
			current.Description = append(current.Description, line)
		}
	}
	flush()

	return jobs
}
