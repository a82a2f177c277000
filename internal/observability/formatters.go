// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/stackmatch/internal/llm"
	"github.com/jonathan/stackmatch/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %s │\n", pad(title, boxWidth-4))
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %s │\n", pad(truncate(line, boxWidth-4), boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n-3]) + "..."
}

// pad right-pads s with spaces to n runes. %-*s counts bytes, which skews
// the box for non-ASCII names.
func pad(s string, n int) string {
	if c := utf8.RuneCountInString(s); c < n {
		return s + strings.Repeat(" ", n-c)
	}
	return s
}

func writeList(sb *strings.Builder, label string, items []string, limit int) {
	if len(items) == 0 {
		return
	}
	sb.WriteString(label + ":\n")
	for _, item := range items[:min(len(items), limit)] {
		fmt.Fprintf(sb, "  • %s\n", item)
	}
	if len(items) > limit {
		fmt.Fprintf(sb, "  ... and %d more\n", len(items)-limit)
	}
}

// PrintResume outputs a summary of an extracted résumé.
func (p *Printer) PrintResume(data *types.ResumeData) {
	if data == nil {
		return
	}

	var sb strings.Builder
	info := data.PersonalInfo
	fmt.Fprintf(&sb, "Name:     %s\n", orUnknown(info.Name))
	if info.Email != "" {
		fmt.Fprintf(&sb, "Email:    %s\n", info.Email)
	}
	source := string(data.Provenance)
	if data.Provider != "" {
		source += " (" + data.Provider + ")"
	}
	fmt.Fprintf(&sb, "Source:   %s\n", source)
	fmt.Fprintf(&sb, "File:     %s, %d chars\n", data.Metadata.FileName, data.Metadata.TotalCharacters)
	sb.WriteString("\n")

	fmt.Fprintf(&sb, "Skills (%d): %s\n", len(data.Skills), strings.Join(data.Skills, ", "))

	if len(data.Experience) > 0 {
		sb.WriteString("\n")
		roles := make([]string, 0, len(data.Experience))
		for _, e := range data.Experience {
			roles = append(roles, strings.TrimSpace(e.Position+" @ "+e.Company))
		}
		writeList(&sb, "Experience", roles, 3)
	}

	if len(data.Education) > 0 {
		sb.WriteString("\n")
		schools := make([]string, 0, len(data.Education))
		for _, e := range data.Education {
			schools = append(schools, e.Institution)
		}
		writeList(&sb, "Education", schools, 3)
	}

	p.printBox("PARSED RESUME", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintScholarProfile outputs a summary of a fetched academic profile.
func (p *Printer) PrintScholarProfile(profile *types.ScholarProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Name:        %s\n", profile.Name)
	fmt.Fprintf(&sb, "Affiliation: %s\n", profile.Affiliation)
	fmt.Fprintf(&sb, "Citations:   %d (h-index %d, i10 %d)\n", profile.CitationCount, profile.HIndex, profile.I10Index)
	sb.WriteString("\n")

	writeList(&sb, "Research interests", profile.ResearchInterests, 3)

	if len(profile.Publications) > 0 {
		titles := make([]string, 0, len(profile.Publications))
		for _, pub := range profile.Publications {
			titles = append(titles, fmt.Sprintf("%s (%d)", pub.Title, pub.Citations))
		}
		writeList(&sb, fmt.Sprintf("Publications (%d)", len(profile.Publications)), titles, 3)
	}

	fmt.Fprintf(&sb, "Derived skills: %s\n", strings.Join(profile.Skills, ", "))

	p.printBox("SCHOLAR PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintMatches outputs the top N ranked projects with their match breakdown.
func (p *Printer) PrintMatches(matches []types.MatchedProject) {
	if len(matches) == 0 {
		p.printBox("PROJECT MATCHES", "No project matched these skills")
		return
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Matched projects: %d\n\n", len(matches))

	count := min(len(matches), maxItemsToShow)
	for i, m := range matches[:count] {
		fmt.Fprintf(&sb, "#%d  %s\n", i+1, m.Title)
		fmt.Fprintf(&sb, "    %d%% · %s · %s\n", m.MatchPercentage, m.Category, m.Difficulty)
		if len(m.MissingSkills) > 0 {
			fmt.Fprintf(&sb, "    Learn: %s\n", truncate(strings.Join(m.MissingSkills, ", "), 40))
		}
		if i < count-1 {
			sb.WriteString("\n")
		}
	}

	if len(matches) > maxItemsToShow {
		fmt.Fprintf(&sb, "\n... and %d more projects", len(matches)-maxItemsToShow)
	}

	p.printBox("PROJECT MATCHES", sb.String())
}

// PrintLearningPath outputs the skills recommended across the best matches.
func (p *Printer) PrintLearningPath(path []string) {
	if len(path) == 0 {
		return
	}

	var sb strings.Builder
	for i, s := range path {
		fmt.Fprintf(&sb, "%2d. %s\n", i+1, s)
	}
	p.printBox("RECOMMENDED LEARNING PATH", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintProviderStats outputs call counts and average latency per AI provider.
func (p *Printer) PrintProviderStats(stats map[llm.ProviderName]llm.ProviderStats) {
	if len(stats) == 0 {
		return
	}

	names := make([]llm.ProviderName, 0, len(stats))
	for name := range stats {
		names = append(names, name)
	}
	slices.Sort(names)

	var sb strings.Builder
	for _, name := range names {
		s := stats[name]
		fmt.Fprintf(&sb, "%-8s calls=%d failures=%d avg=%dms\n", name, s.Calls, s.Failures, s.AvgLatencyMS)
	}
	p.printBox("AI PROVIDERS", strings.TrimSuffix(sb.String(), "\n"))
}

func orUnknown(s string) string {
	if s == "" {
		return "Unknown"
	}
	return s
}
