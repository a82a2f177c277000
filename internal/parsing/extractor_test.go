package parsing

import (
	"strings"
	"testing"

	"github.com/jonathan/stackmatch/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleResume = `Jane   Doe
Software Engineer
jane.doe@example.com | 9876543210 | github.com/janedoe | linkedin.com/in/jane-doe | janedoe.dev

SUMMARY
Backend developer with a focus on distributed systems.
EDUCATION
Stanford University
B.S. in Computer Science
GPA: 3.8
Sep 2014 - Jun 2018
Stanford, California
WORK EXPERIENCE
ACME CORP
Senior Software Engineer
Jan 2020 - Present
• Built payment APIs in Go and Python
• Tech Stack: Docker, Kubernetes, PostgreSQL
GLOBEX
Software Engineer Intern
Jun 2018 - Dec 2019
• Shipped React dashboards
SKILLS
Languages: Go, Python, JavaScript
`

func TestExtract_PersonalInfo(t *testing.T) {
	info := NewExtractor(sampleResume).PersonalInfo()

	assert.Equal(t, "Jane Doe", info.Name)
	assert.Equal(t, "jane.doe@example.com", info.Email)
	assert.Equal(t, "9876543210", info.Phone)
	assert.Equal(t, "https://github.com/janedoe", info.GitHub)
	assert.Equal(t, "https://linkedin.com/in/jane-doe", info.LinkedIn)
	assert.Equal(t, "https://janedoe.dev", info.Website)
}

func TestExtract_PersonalInfo_SingleTokenName(t *testing.T) {
	info := NewExtractor("\n\n  Madonna  \nmadonna@example.org").PersonalInfo()
	assert.Equal(t, "Madonna", info.Name)
	assert.Equal(t, "madonna@example.org", info.Email)
}

func TestExtract_PersonalInfo_TwitterFallback(t *testing.T) {
	info := NewExtractor("Jane Doe\nx.com/jane_codes").PersonalInfo()
	assert.Equal(t, "https://x.com/jane_codes", info.Website)
}

func TestExtract_PersonalInfo_NothingFabricated(t *testing.T) {
	info := NewExtractor("Jane Doe").PersonalInfo()

	assert.Equal(t, "Jane Doe", info.Name)
	assert.Empty(t, info.Email)
	assert.Empty(t, info.Phone)
	assert.Empty(t, info.GitHub)
	assert.Empty(t, info.LinkedIn)
	assert.Empty(t, info.Website)
}

func TestExtract_Education(t *testing.T) {
	education := NewExtractor(sampleResume).Education()

	require.Len(t, education, 1)
	assert.Equal(t, types.EducationEntry{
		Institution: "Stanford University",
		Degree:      "B.S. in Computer Science",
		Field:       "Computer Science",
		GPA:         "3.8",
		StartDate:   "Sep 2014",
		EndDate:     "Jun 2018",
		Location:    "Stanford, California",
	}, education[0])
}

func TestExtract_Education_TwoDegreesYieldOneEntry(t *testing.T) {
	text := `Jane Doe
EDUCATION
Stanford University
B.S. in Computer Science
Carnegie Mellon University
M.S. in Computer Science`

	education := NewExtractor(text).Education()

	require.Len(t, education, 1)
	assert.Equal(t, "Stanford University", education[0].Institution)
	assert.Equal(t, "B.S. in Computer Science", education[0].Degree)
}

func TestExtract_Education_NoSection(t *testing.T) {
	education := NewExtractor("Jane Doe\nStanford University").Education()
	assert.NotNil(t, education)
	assert.Empty(t, education)
}

func TestExtract_Experience(t *testing.T) {
	jobs := NewExtractor(sampleResume).Experience()

	require.Len(t, jobs, 2)

	assert.Equal(t, "ACME CORP", jobs[0].Company)
	assert.Equal(t, "Senior Software Engineer", jobs[0].Position)
	assert.Equal(t, "Jan 2020", jobs[0].StartDate)
	assert.Equal(t, "Present", jobs[0].EndDate)
	assert.Equal(t, []string{
		"Built payment APIs in Go and Python",
		"Tech Stack: Docker, Kubernetes, PostgreSQL",
		"• Tech Stack: Docker, Kubernetes, PostgreSQL",
	}, jobs[0].Description)

	assert.Equal(t, "GLOBEX", jobs[1].Company)
	assert.Equal(t, "Software Engineer Intern", jobs[1].Position)
	assert.Equal(t, "Jun 2018", jobs[1].StartDate)
	assert.Equal(t, "Dec 2019", jobs[1].EndDate)
	assert.Equal(t, []string{"Shipped React dashboards"}, jobs[1].Description)
}

func TestExtract_Experience_TechStackLine(t *testing.T) {
	text := "EXPERIENCE\nHOOLI\nBackend Developer\nTech stack: Go, Redis\n• tech stack: Kafka"

	jobs := NewExtractor(text).Experience()

	require.Len(t, jobs, 1)
	assert.Equal(t, []string{
		"Tech stack: Go, Redis",
		"tech stack: Kafka",
		"• tech stack: Kafka",
	}, jobs[0].Description)
}

func TestExtract_Experience_CompanyWithoutPositionDropped(t *testing.T) {
	text := "EXPERIENCE\nINITECH\nJan 2019 - Feb 2020\nHOOLI\nBackend Developer"

	jobs := NewExtractor(text).Experience()

	require.Len(t, jobs, 1)
	assert.Equal(t, "HOOLI", jobs[0].Company)
	assert.Equal(t, "Backend Developer", jobs[0].Position)
}

func TestExtract_Skills(t *testing.T) {
	skills := NewExtractor(sampleResume).Skills()

	assert.Equal(t, []string{
		"Go", "Python", "JavaScript", "React.js", "PostgreSQL", "GitHub", "Docker", "Kubernetes",
	}, skills)
}

func TestExtract_Skills_DedupAfterStandardization(t *testing.T) {
	skills := NewExtractor("Skills: JS, javascript, Javascript, nodejs, Node.js, react, React.js").Skills()

	seen := make(map[string]bool)
	for _, s := range skills {
		k := strings.ToLower(s)
		assert.False(t, seen[k], "duplicate skill %q", s)
		seen[k] = true
	}
	assert.Contains(t, skills, "JavaScript")
	assert.Contains(t, skills, "Node.js")
	assert.Contains(t, skills, "React.js")
}

func TestExtract_Skills_LabelWithoutColonIgnored(t *testing.T) {
	skills := NewExtractor("Strong communication skills in leadership").Skills()
	assert.Empty(t, skills)
}

func TestExtract_Skills_StoplistFiltered(t *testing.T) {
	skills := NewExtractor("Tools: Skills, Experience, Terraform").Skills()

	assert.Equal(t, []string{"Terraform"}, skills)
}

func TestExtract_Empty(t *testing.T) {
	result := Extract("")

	assert.Equal(t, types.PersonalInfo{}, result.PersonalInfo)
	assert.NotNil(t, result.Skills)
	assert.Empty(t, result.Skills)
	assert.NotNil(t, result.Education)
	assert.NotNil(t, result.Experience)
	assert.Empty(t, result.RawText)
}

func TestExtract_Deterministic(t *testing.T) {
	assert.Equal(t, Extract(sampleResume), Extract(sampleResume))
}

func TestExtract_RawTextIsNormalized(t *testing.T) {
	result := Extract(sampleResume)
	assert.True(t, strings.HasPrefix(result.RawText, "Jane Doe\nSoftware Engineer"))
	assert.NotContains(t, result.RawText, "\n\n")
}
