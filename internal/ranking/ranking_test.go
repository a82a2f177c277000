package ranking

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/stackmatch/internal/catalog"
	"github.com/jonathan/stackmatch/internal/types"
)

func project(id string, category types.Category, difficulty types.Difficulty, skills ...string) types.ProjectIdea {
	return types.ProjectIdea{
		ID:             id,
		Title:          "Project " + id,
		RequiredSkills: skills,
		Category:       category,
		Difficulty:     difficulty,
	}
}

var mern = project("mern", types.CategoryWebDevelopment, types.DifficultyIntermediate, "React.js", "Node.js", "MongoDB")

func TestLevenshtein(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"flaw", "lawn", 2},
		{"reactjs", "react.js", 1},
		{"café", "cafe", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Levenshtein(tt.a, tt.b), "%s/%s", tt.a, tt.b)
		assert.Equal(t, tt.want, Levenshtein(tt.b, tt.a), "%s/%s", tt.b, tt.a)
	}
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, Similarity("", ""))
	assert.Equal(t, 1.0, Similarity("go", "go"))
	assert.InDelta(t, 0.2, Similarity("js", "javascript"), 1e-9)
	assert.InDelta(t, 0.875, Similarity("reactjs", "react.js"), 1e-9)
	assert.Equal(t, 0.0, Similarity("abc", ""))
}

func TestIsSkillMatch(t *testing.T) {
	tests := []struct {
		user, required string
		want           bool
	}{
		{"React", "React.js", true},
		{"Go", "Golang", true},
		{"golang", "Go", true},
		{"  REACT.JS ", "react.js", true},
		{"Reactjs", "React.js", true},
		{"Postgres", "PostgreSQL", true},
		{"JS", "JavaScript", false},
		{"Java", "Rust", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsSkillMatch(tt.user, tt.required), "%q vs %q", tt.user, tt.required)
	}

	assert.False(t, IsSubstringMatch("Reactjs", "React.js"))
	assert.True(t, IsSubstringMatch("React", "React.js"))
}

func TestStandardizeSkills_BridgesAbbreviations(t *testing.T) {
	standardized := StandardizeSkills([]string{"js", " ", "JavaScript", "reactjs"})

	assert.Equal(t, []string{"JavaScript", "React.js"}, standardized)
	assert.True(t, IsSkillMatch(standardized[0], "JavaScript"))
}

func TestMatchProject_Scenarios(t *testing.T) {
	full := MatchProject(mern, []string{"React.js", "Node.js", "MongoDB"}, IsSkillMatch)
	assert.Equal(t, 100, full.MatchPercentage)
	assert.Equal(t, []string{"React.js", "Node.js", "MongoDB"}, full.MatchedSkills)
	assert.Empty(t, full.MissingSkills)

	partial := MatchProject(mern, []string{"React.js"}, IsSkillMatch)
	assert.Equal(t, 33, partial.MatchPercentage)
	assert.Equal(t, []string{"React.js"}, partial.MatchedSkills)
	assert.Equal(t, []string{"Node.js", "MongoDB"}, partial.MissingSkills)

	twoThirds := MatchProject(mern, []string{"react", "mongo"}, IsSkillMatch)
	assert.Equal(t, 67, twoThirds.MatchPercentage)
}

func TestMatchProject_BlankSkillsIgnored(t *testing.T) {
	mp := MatchProject(mern, []string{"", "   "}, IsSkillMatch)
	assert.Zero(t, mp.MatchPercentage)
	assert.Len(t, mp.MissingSkills, 3)
}

func TestRankProjects_BelowThresholdExcluded(t *testing.T) {
	wide := project("wide", types.CategoryDevOps, types.DifficultyAdvanced,
		"Terraform", "Ansible", "Prometheus", "Grafana", "Helm", "Istio", "Vault", "Consul", "Nomad", "Packer")

	ranked := RankProjects([]string{"Terraform"}, []types.ProjectIdea{wide, mern}, DefaultLimit)
	assert.Empty(t, ranked, "a 10 percent match must be dropped")

	ranked = RankProjects([]string{"Terraform", "Ansible"}, []types.ProjectIdea{wide}, DefaultLimit)
	require.Len(t, ranked, 1)
	assert.Equal(t, 20, ranked[0].MatchPercentage)
}

func TestRankProjects_OrderAndTies(t *testing.T) {
	a := project("a", types.CategoryWebDevelopment, types.DifficultyBeginner, "React.js", "CSS")
	b := project("b", types.CategoryWebDevelopment, types.DifficultyBeginner, "React.js", "Node.js", "MongoDB")
	c := project("c", types.CategoryWebDevelopment, types.DifficultyBeginner, "React.js", "HTML")

	ranked := RankProjects([]string{"React.js", "MongoDB"}, []types.ProjectIdea{a, b, c}, 0)
	require.Len(t, ranked, 3)
	assert.Equal(t, "b", ranked[0].ID)
	assert.Equal(t, 67, ranked[0].MatchPercentage)
	assert.Equal(t, "a", ranked[1].ID, "ties keep catalog order")
	assert.Equal(t, "c", ranked[2].ID)

	assert.Len(t, RankProjects([]string{"React.js"}, []types.ProjectIdea{a, b, c}, 2), 2)
}

func TestRankProjects_CatalogProperties(t *testing.T) {
	projects := catalog.Default().All()
	userSkills := []string{"React.js", "Node.js", "Python", "Docker", "TensorFlow", "Go"}

	first := RankProjects(userSkills, projects, DefaultLimit)
	second := RankProjects(userSkills, projects, DefaultLimit)
	assert.Equal(t, first, second)
	assert.LessOrEqual(t, len(first), DefaultLimit)
	assert.NotEmpty(t, first)

	for i, mp := range first {
		total := len(mp.RequiredSkills)
		assert.Equal(t, total, len(mp.MatchedSkills)+len(mp.MissingSkills))
		assert.Equal(t, percentage(len(mp.MatchedSkills), total), mp.MatchPercentage)
		assert.GreaterOrEqual(t, mp.MatchPercentage, MinMatchPercentage)
		assert.LessOrEqual(t, mp.MatchPercentage, 100)
		if i > 0 {
			assert.GreaterOrEqual(t, first[i-1].MatchPercentage, mp.MatchPercentage)
		}
	}
}

func TestPercentage(t *testing.T) {
	for total := 1; total <= 12; total++ {
		for matched := 0; matched <= total; matched++ {
			want := int(float64(100*matched)/float64(total) + 0.5)
			assert.Equal(t, want, percentage(matched, total), fmt.Sprintf("%d/%d", matched, total))
		}
	}
	assert.Zero(t, percentage(0, 0))
}

func TestProjectsBySkills_ThirtyPercentCutoff(t *testing.T) {
	ten := project("ten", types.CategoryIoT, types.DifficultyAdvanced,
		"Arduino", "MQTT", "C++", "Raspberry Pi", "Python", "InfluxDB", "Grafana", "Node-RED", "LoRa", "Zigbee")
	seven := project("seven", types.CategoryIoT, types.DifficultyAdvanced,
		"Arduino", "MQTT", "C++", "Raspberry Pi", "InfluxDB", "Grafana", "LoRa")

	got := ProjectsBySkills([]string{"Arduino", "MQTT", "Zigbee"}, []types.ProjectIdea{ten, seven})
	require.Len(t, got, 1, "2 of 7 is below the cutoff")
	assert.Equal(t, "ten", got[0].ID)
	assert.Equal(t, 30, got[0].MatchPercentage)

	three := project("three", types.CategoryIoT, types.DifficultyBeginner, "Arduino", "MQTT", "LoRa")
	assert.Empty(t, ProjectsBySkills([]string{"Arduin0"}, []types.ProjectIdea{three}),
		"edit-distance matches do not count here")
	assert.Len(t, RankProjects([]string{"Arduin0"}, []types.ProjectIdea{three}, 0), 1)
}

func TestFindBestMatches_SkillSources(t *testing.T) {
	ml := project("ml", types.CategoryAIML, types.DifficultyAdvanced, "Python", "TensorFlow", "Docker", "React.js")

	matches := FindBestMatches([]string{"Python", "Docker"}, []string{"python", "TensorFlow"}, []types.ProjectIdea{ml, mern}, 0)
	require.Len(t, matches, 1)

	m := matches[0]
	assert.Equal(t, "ml", m.ID)
	assert.Equal(t, 75, m.MatchPercentage)
	assert.Equal(t, []string{"Python", "TensorFlow", "Docker"}, m.MatchedSkills)
	assert.Equal(t, []string{"Python", "Docker"}, m.SkillSources.FromResume)
	assert.Equal(t, []string{"Python", "TensorFlow"}, m.SkillSources.FromScholar)
}

func TestFindBestMatches_SubstringOnly(t *testing.T) {
	matches := FindBestMatches([]string{"Reactjs"}, nil, []types.ProjectIdea{mern}, 0)
	assert.Empty(t, matches)
}

func TestRecommendedLearningPath(t *testing.T) {
	p1 := project("p1", types.CategoryWebDevelopment, types.DifficultyBeginner, "Go", "Redis", "Kafka")
	p2 := project("p2", types.CategoryWebDevelopment, types.DifficultyBeginner, "Go", "Kafka", "gRPC")
	p3 := project("p3", types.CategoryWebDevelopment, types.DifficultyBeginner, "Go", "Redis", "Kafka", "NATS")

	path := RecommendedLearningPath([]string{"Go"}, nil, []types.ProjectIdea{p1, p2, p3})

	assert.Equal(t, []string{"Kafka", "Redis", "gRPC", "NATS"}, path)
}

func TestAcademicProjects(t *testing.T) {
	web := project("web", types.CategoryWebDevelopment, types.DifficultyBeginner, "Python", "Flask")
	hard := project("hard", types.CategoryWebDevelopment, types.DifficultyAdvanced, "Python", "Django")
	ml := project("ml", types.CategoryAIML, types.DifficultyIntermediate, "Python", "PyTorch")

	got := AcademicProjects([]string{"Python"}, []types.ProjectIdea{web, hard, ml}, 0)

	require.Len(t, got, 2)
	assert.Equal(t, "hard", got[0].ID)
	assert.Equal(t, "ml", got[1].ID)
	assert.Len(t, AcademicProjects([]string{"Python"}, []types.ProjectIdea{web, hard, ml}, 1), 1)
}
