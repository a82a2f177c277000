package ingestion

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_CollapsesWhitespace(t *testing.T) {
	input := "Jane    Doe\t\tEngineer\n   Go,   Python  "
	assert.Equal(t, "Jane Doe Engineer\nGo, Python", Normalize(input))
}

func TestNormalize_DropsBlankLines(t *testing.T) {
	input := "Line 1\n\n\n   \n\t\nLine 2"
	assert.Equal(t, "Line 1\nLine 2", Normalize(input))
}

func TestNormalize_LineEndings(t *testing.T) {
	input := "Line 1\r\nLine 2\rLine 3\nLine 4"
	result := Normalize(input)

	assert.NotContains(t, result, "\r")
	assert.Equal(t, "Line 1\nLine 2\nLine 3\nLine 4", result)
}

func TestNormalize_Empty(t *testing.T) {
	assert.Equal(t, "", Normalize(""))
	assert.Equal(t, "", Normalize(" \n\t\r\n "))
}

func TestNormalize_Idempotent(t *testing.T) {
	inputs := []string{
		"",
		"single",
		"  a  b  \n\n c \r\n d\te ",
		"EDUCATION\n\nStanford University\n\n\nSKILLS:  Go, Rust",
		"\f page two \v\n",
	}
	for _, input := range inputs {
		once := Normalize(input)
		assert.Equal(t, once, Normalize(once), "input %q", input)
	}
}

func TestMatchHeader(t *testing.T) {
	tests := []struct {
		line   string
		label  string
		header bool
	}{
		{"EDUCATION", "education", true},
		{"  Skills:", "skills", true},
		{"Skills: Go, Python", "skills", true},
		{"Work Experience", "work experience", true},
		{"Relevant Experience", "experience", true},
		{"Technical Skills", "technical skills", true},
		{"Projects & Research", "projects", true},
		{"Activities and Certifications", "activities and certifications", true},
		{"Led summary reviews for the quarterly planning cycle", "", false},
		{"Built a projects dashboard for the analytics team", "", false},
		{"Jane Doe", "", false},
		{"", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			label, ok := MatchHeader(tt.line)
			assert.Equal(t, tt.header, ok)
			assert.Equal(t, tt.label, label)
		})
	}
}

func TestMatchHeader_LengthBoundary(t *testing.T) {
	label, ok := MatchHeader("top skills 2024")
	require.True(t, ok)
	assert.Equal(t, "skills", label)

	// ten characters longer than "skills" is too long
	label, ok = MatchHeader("core skills 2024")
	assert.False(t, ok)
	assert.Empty(t, label)
}

func TestSegment_Basic(t *testing.T) {
	text := Normalize(`Jane Doe
jane@example.com
EDUCATION
Stanford University
B.S. Computer Science
SKILLS
Go, Python, Docker`)

	sections := Segment(text)

	assert.Equal(t, []string{"general", "education", "skills"}, sections.Labels())
	assert.Equal(t, "Jane Doe\njane@example.com", sections.Get("general"))
	assert.Equal(t, "Stanford University\nB.S. Computer Science", sections.Get("education"))
	assert.Equal(t, "Go, Python, Docker", sections.Get("skills"))
	assert.Empty(t, sections.Get("projects"))
	assert.False(t, sections.Has("projects"))
}

func TestSegment_NoHeaders(t *testing.T) {
	sections := Segment("just some text\nmore text")

	require.Len(t, sections.Sections(), 1)
	assert.Equal(t, LabelGeneral, sections.Sections()[0].Label)
}

func TestSegment_EmptySectionsSkipped(t *testing.T) {
	sections := Segment("EDUCATION\nSKILLS\nGo")

	assert.Equal(t, []string{"skills"}, sections.Labels())
}

func TestSegment_DuplicateHeadersKeepLast(t *testing.T) {
	sections := Segment("SKILLS\nGo\nEDUCATION\nMIT\nSKILLS\nRust")

	all := sections.Sections()
	require.Len(t, all, 3)
	assert.Equal(t, "Go", all[0].Body)
	assert.Equal(t, "Rust", sections.Get("skills"))
}

func TestSegment_CoversAllNonHeaderLines(t *testing.T) {
	text := Normalize(`Jane Doe
SUMMARY
Backend engineer
WORK EXPERIENCE
Software Engineer at Acme
Jan 2020 - Present
PROJECTS
stackmatch
CERTIFICATIONS
AWS Certified`)

	var expected []string
	for _, line := range strings.Split(text, "\n") {
		if _, ok := MatchHeader(line); !ok {
			expected = append(expected, line)
		}
	}

	var bodies []string
	for _, s := range Segment(text).Sections() {
		bodies = append(bodies, s.Body)
	}

	assert.Equal(t, strings.Join(expected, "\n"), strings.Join(bodies, "\n"))
}
