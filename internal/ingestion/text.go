// Package ingestion turns uploaded documents into normalized text and labeled sections.
package ingestion

import (
	"strings"
)

// LabelGeneral labels text that appears before the first recognized header.
const LabelGeneral = "general"

// sectionHeaders is the header vocabulary, tried in order. Longer phrases that
// contain a shorter header ("work experience") are listed before it.
var sectionHeaders = []string{
	"summary",
	"education",
	"work experience",
	"experience",
	"employment",
	"skills and interests",
	"skills",
	"technical skills",
	"projects",
	"certifications",
	"activities and certifications",
	"activities",
	"achievements",
}

// Normalize canonicalizes line endings, collapses whitespace runs within each line
// to a single space, trims every line and drops blank lines.
// Normalize is idempotent.
func Normalize(content string) string {
	if content == "" {
		return ""
	}

	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	lines := strings.Split(content, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			continue
		}
		cleaned = append(cleaned, line)
	}

	return strings.Join(cleaned, "\n")
}

// Section is a labeled span of document text
type Section struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

// SectionMap is an ordered list of sections in document order.
type SectionMap struct {
	sections []Section
}

// Sections returns the sections in the order they were committed.
func (m *SectionMap) Sections() []Section {
	out := make([]Section, len(m.sections))
	copy(out, m.sections)
	return out
}

// Get returns the body for label. When a header repeats, the last body wins.
func (m *SectionMap) Get(label string) string {
	for i := len(m.sections) - 1; i >= 0; i-- {
		if m.sections[i].Label == label {
			return m.sections[i].Body
		}
	}
	return ""
}

// Has reports whether a non-empty section exists for label.
func (m *SectionMap) Has(label string) bool {
	return m.Get(label) != ""
}

// Labels returns the distinct labels in first-seen order.
func (m *SectionMap) Labels() []string {
	seen := make(map[string]bool)
	var labels []string
	for _, s := range m.sections {
		if !seen[s.Label] {
			seen[s.Label] = true
			labels = append(labels, s.Label)
		}
	}
	return labels
}

// MatchHeader reports whether line is a section header and which label it opens.
// A line is a header when, case-insensitively, it equals a known term, starts with
// the term followed by ':' or a space, or contains the term and is fewer than
// ten characters longer than it.
func MatchHeader(line string) (string, bool) {
	lower := strings.ToLower(strings.TrimSpace(line))
	if lower == "" {
		return "", false
	}
	for _, header := range sectionHeaders {
		if lower == header ||
			strings.HasPrefix(lower, header+":") ||
			strings.HasPrefix(lower, header+" ") ||
			(strings.Contains(lower, header) && len(lower) < len(header)+10) {
			return header, true
		}
	}
	return "", false
}

// Segment splits text into labeled sections. Header lines delimit sections and
// never appear in a body; text before the first header is labeled "general".
// Sections whose body is blank are not recorded.
func Segment(text string) *SectionMap {
	m := &SectionMap{}
	label := LabelGeneral
	var buf strings.Builder

	commit := func() {
		body := strings.TrimSpace(buf.String())
		if body != "" {
			m.sections = append(m.sections, Section{Label: label, Body: body})
		}
		buf.Reset()
	}

	for _, line := range strings.Split(text, "\n") {
		if header, ok := MatchHeader(line); ok {
			commit()
			label = header
			continue
		}
		buf.WriteString(line)
		buf.WriteString("\n")
	}
	commit()

	return m
}
