package export

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/jonathan/stackmatch/internal/types"
)

// Report is the content of an HTML suggestions report.
type Report struct {
	Title        string
	UserSkills   []string
	Matches      []types.MatchedProject
	LearningPath []string
}

// Markdown renders r as a Markdown document: a summary table followed by one
// section per project.
func (r Report) Markdown() string {
	var sb strings.Builder

	title := r.Title
	if title == "" {
		title = "Project suggestions"
	}
	fmt.Fprintf(&sb, "# %s\n\n", escapeInline(title))

	if len(r.UserSkills) > 0 {
		fmt.Fprintf(&sb, "**Your skills:** %s\n\n", escapeInline(strings.Join(r.UserSkills, ", ")))
	}

	if len(r.Matches) == 0 {
		sb.WriteString("No catalog project matched these skills.\n")
		return sb.String()
	}

	sb.WriteString("| # | Project | Category | Difficulty | Match |\n")
	sb.WriteString("|---|---------|----------|------------|------:|\n")
	for i, m := range r.Matches {
		fmt.Fprintf(&sb, "| %d | %s | %s | %s | %d%% |\n",
			i+1, escapeCell(m.Title), escapeCell(string(m.Category)), m.Difficulty, m.MatchPercentage)
	}
	sb.WriteString("\n")

	for _, m := range r.Matches {
		fmt.Fprintf(&sb, "## %s\n\n", escapeInline(m.Title))
		if m.Description != "" {
			fmt.Fprintf(&sb, "%s\n\n", escapeInline(m.Description))
		}
		fmt.Fprintf(&sb, "- **Matched:** %s\n", skillList(m.MatchedSkills))
		fmt.Fprintf(&sb, "- **To learn:** %s\n", skillList(m.MissingSkills))
		if m.EstimatedTime != "" {
			fmt.Fprintf(&sb, "- **Estimated time:** %s\n", escapeInline(m.EstimatedTime))
		}
		sb.WriteString("\n")
	}

	if len(r.LearningPath) > 0 {
		sb.WriteString("## Recommended learning path\n\n")
		for i, s := range r.LearningPath {
			fmt.Fprintf(&sb, "%d. %s\n", i+1, escapeInline(s))
		}
	}

	return sb.String()
}

// RenderHTMLReport renders r's Markdown to HTML.
func RenderHTMLReport(w io.Writer, r Report) error {
	md := goldmark.New(goldmark.WithExtensions(extension.Table))

	var buf bytes.Buffer
	if err := md.Convert([]byte(r.Markdown()), &buf); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if _, err := io.Copy(w, &buf); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

func skillList(skills []string) string {
	if len(skills) == 0 {
		return "none"
	}
	return escapeInline(strings.Join(skills, ", "))
}

var inlineEscaper = strings.NewReplacer(
	`\`, `\\`, "*", `\*`, "_", `\_`, "`", "\\`", "[", `\[`, "]", `\]`, "<", `\<`, "#", `\#`,
)

func escapeInline(s string) string {
	return inlineEscaper.Replace(s)
}

func escapeCell(s string) string {
	return strings.ReplaceAll(escapeInline(s), "|", `\|`)
}
