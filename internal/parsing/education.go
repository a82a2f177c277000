package parsing

import (
	"regexp"
	"strings"

	"github.com/jonathan/stackmatch/internal/types"
)

var institutionPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)NATIONAL INSTITUTE OF TECHNOLOGY|NIT`),
	regexp.MustCompile(`(?i)INDIAN INSTITUTE OF TECHNOLOGY|IIT`),
	regexp.MustCompile(`(?i)UNIVERSITY|COLLEGE|INSTITUTE|SCHOOL`),
}

var degreePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)bachelor.*technology|b\.?tech|b\.?e\.`),
	regexp.MustCompile(`(?i)master.*technology|m\.?tech|m\.?e\.`),
	regexp.MustCompile(`(?i)bachelor.*science|b\.?sc|b\.?s\.`),
	regexp.MustCompile(`(?i)master.*science|m\.?sc|m\.?s\.`),
	regexp.MustCompile(`(?i)bachelor.*arts|b\.?a\.`),
	regexp.MustCompile(`(?i)ph\.?d|doctorate`),
}

var fieldPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)major in ([^,\n]+)`),
	regexp.MustCompile(`(?i)specialization in ([^,\n]+)`),
	regexp.MustCompile(`(?i)(electrical.*electronics|computer.*science|mechanical|civil|chemical)`),
}

var (
	gpaPattern       = regexp.MustCompile(`(?i)(?:cgpa|gpa):?\s*([0-9]+\.?[0-9]*)`)
	dateRangePattern = regexp.MustCompile(`(?i)([A-Za-z]{3}\s+\d{4})\s*[-–]\s*([A-Za-z]{3}\s+\d{4}|Present)`)
	locationPattern  = regexp.MustCompile(`([A-Za-z\s]+,\s*[A-Za-z\s]+)`)
)

// Education scans the "education" section into a single entry. Every line feeds
// the same accumulator, so a section listing two degrees still yields one entry.
func (e *Extractor) Education() []types.EducationEntry {
	entries := []types.EducationEntry{}

	section := e.sections.Get("education")
	if section == "" {
		return entries
	}

	var current types.EducationEntry
	for _, line := range strings.Split(section, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if current.Institution == "" && anyMatch(institutionPatterns, line) {
			current.Institution = line
		}

		if current.Degree == "" && anyMatch(degreePatterns, line) {
			current.Degree = line
		}

		if current.Field == "" {
			if field := firstCapture(fieldPatterns, line); field != "" {
				current.Field = field
			}
		}

		if m := gpaPattern.FindStringSubmatch(line); m != nil {
			current.GPA = m[1]
		}

		if m := dateRangePattern.FindStringSubmatch(line); m != nil {
			current.StartDate = m[1]
			current.EndDate = m[2]
		}

		if current.Location == "" {
			if m := locationPattern.FindStringSubmatch(line); m != nil {
				current.Location = m[1]
			}
		}
	}

	if current.Institution != "" || current.Degree != "" {
		entries = append(entries, current)
	}
	return entries
}

func anyMatch(patterns []*regexp.Regexp, s string) bool {
	for _, p := range patterns {
		if p.MatchString(s) {
			return true
		}
	}
	return false
}
