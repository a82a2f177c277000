// Package catalog serves the static set of project ideas that skills are
// matched against. The catalog is embedded, loaded once and never mutated.
package catalog

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"sync"

	"github.com/jonathan/stackmatch/internal/types"
)

//go:embed projects.json
var projectsJSON []byte

// Catalog is a read-only list of project ideas. Safe for concurrent use.
type Catalog struct {
	projects []types.ProjectIdea
	byID     map[string]int
}

// Load parses and validates a JSON array of project ideas. IDs must be unique.
func Load(data []byte) (*Catalog, error) {
	var projects []types.ProjectIdea
	if err := json.Unmarshal(data, &projects); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}
	return New(projects)
}

// New builds a catalog from projects, which are copied.
func New(projects []types.ProjectIdea) (*Catalog, error) {
	c := &Catalog{
		projects: make([]types.ProjectIdea, 0, len(projects)),
		byID:     make(map[string]int, len(projects)),
	}
	for i := range projects {
		p := projects[i]
		if err := p.Validate(); err != nil {
			return nil, fmt.Errorf("invalid catalog entry %d: %w", i, err)
		}
		if _, dup := c.byID[p.ID]; dup {
			return nil, fmt.Errorf("duplicate catalog id %q", p.ID)
		}
		p.RequiredSkills = append([]string(nil), p.RequiredSkills...)
		c.byID[p.ID] = len(c.projects)
		c.projects = append(c.projects, p)
	}
	return c, nil
}

var loadDefault = sync.OnceValues(func() (*Catalog, error) {
	return Load(projectsJSON)
})

// Default returns the embedded catalog.
func Default() *Catalog {
	c, err := loadDefault()
	if err != nil {
		// embedded data is fixed at build time and covered by tests
		panic(err)
	}
	return c
}

// Len returns the number of projects.
func (c *Catalog) Len() int {
	return len(c.projects)
}

// All returns every project in catalog order. The slice is a copy.
func (c *Catalog) All() []types.ProjectIdea {
	return c.filter(func(types.ProjectIdea) bool { return true })
}

// ByID looks up a project.
func (c *Catalog) ByID(id string) (types.ProjectIdea, bool) {
	i, ok := c.byID[id]
	if !ok {
		return types.ProjectIdea{}, false
	}
	return clone(c.projects[i]), true
}

// ByCategory returns the projects in category, in catalog order.
func (c *Catalog) ByCategory(category types.Category) []types.ProjectIdea {
	return c.filter(func(p types.ProjectIdea) bool { return p.Category == category })
}

// ByDifficulty returns the projects of difficulty, in catalog order.
func (c *Catalog) ByDifficulty(difficulty types.Difficulty) []types.ProjectIdea {
	return c.filter(func(p types.ProjectIdea) bool { return p.Difficulty == difficulty })
}

// Filter narrows the catalog by category and difficulty. An empty value
// does not filter.
func (c *Catalog) Filter(category types.Category, difficulty types.Difficulty) []types.ProjectIdea {
	switch {
	case category == "" && difficulty == "":
		return c.All()
	case difficulty == "":
		return c.ByCategory(category)
	case category == "":
		return c.ByDifficulty(difficulty)
	}
	return c.filter(func(p types.ProjectIdea) bool {
		return p.Category == category && p.Difficulty == difficulty
	})
}

// CategoryBreakdown counts projects per category over the whole catalog.
func (c *Catalog) CategoryBreakdown() map[types.Category]int {
	counts := make(map[types.Category]int)
	for _, p := range c.projects {
		counts[p.Category]++
	}
	return counts
}

// RandomSample returns n distinct projects chosen uniformly at random, or the
// whole catalog in random order when n exceeds its size. rng may be nil.
func (c *Catalog) RandomSample(n int, rng *rand.Rand) []types.ProjectIdea {
	if n <= 0 {
		return []types.ProjectIdea{}
	}
	n = min(n, len(c.projects))

	var perm []int
	if rng != nil {
		perm = rng.Perm(len(c.projects))
	} else {
		perm = rand.Perm(len(c.projects))
	}

	out := make([]types.ProjectIdea, n)
	for i := range out {
		out[i] = clone(c.projects[perm[i]])
	}
	return out
}

func (c *Catalog) filter(keep func(types.ProjectIdea) bool) []types.ProjectIdea {
	out := []types.ProjectIdea{}
	for _, p := range c.projects {
		if keep(p) {
			out = append(out, clone(p))
		}
	}
	return out
}

// clone copies the skill slice so callers cannot alter catalog data.
func clone(p types.ProjectIdea) types.ProjectIdea {
	p.RequiredSkills = append([]string(nil), p.RequiredSkills...)
	return p
}
