package skills

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDedupe(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{name: "nil input", input: nil, want: []string{}},
		{name: "keeps first spelling", input: []string{"React.js", "react.js", "REACT.JS"}, want: []string{"React.js"}},
		{name: "preserves insertion order", input: []string{"Python", "Go", "python", "Docker"}, want: []string{"Python", "Go", "Docker"}},
		{name: "trims and drops empty", input: []string{"  Go ", "", "   ", "go"}, want: []string{"Go"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Dedupe(tt.input))
		})
	}
}

func TestDedupe_NoCaseFoldedDuplicates(t *testing.T) {
	result := Dedupe([]string{"AWS", "aws", "Aws", "Docker", "docker", "Kubernetes"})
	seen := map[string]bool{}
	for _, s := range result {
		k := strings.ToLower(s)
		assert.False(t, seen[k], "duplicate %q", s)
		seen[k] = true
	}
}

func TestUnion(t *testing.T) {
	got := Union([]string{"Go", "Docker"}, []string{"docker", "Python"}, nil)
	assert.Equal(t, []string{"Go", "Docker", "Python"}, got)
}

func TestLower(t *testing.T) {
	assert.Equal(t, []string{"react.js", "go"}, Lower([]string{" React.js", "GO "}))
}
