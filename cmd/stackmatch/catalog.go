package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jonathan/stackmatch/internal/catalog"
	"github.com/jonathan/stackmatch/internal/ranking"
	"github.com/jonathan/stackmatch/internal/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "List the project catalog",
	RunE:  runCatalog,
}

var (
	catalogCategory   string
	catalogDifficulty string
	catalogID         string
	catalogSkills     []string
	catalogSummary    bool
)

func init() {
	catalogCmd.Flags().StringVar(&catalogCategory, "category", "", "Only projects in this category")
	catalogCmd.Flags().StringVar(&catalogDifficulty, "difficulty", "", "Only projects of this difficulty (Beginner, Intermediate, Advanced)")
	catalogCmd.Flags().StringVar(&catalogID, "id", "", "Show one project")
	catalogCmd.Flags().StringSliceVar(&catalogSkills, "skills", nil, "Only projects covering at least 30% of their required skills with these")
	catalogCmd.Flags().BoolVar(&catalogSummary, "summary", false, "Print the per-category tally instead of projects")

	rootCmd.AddCommand(catalogCmd)
}

func runCatalog(cmd *cobra.Command, _ []string) error {
	cat := catalog.Default()
	out := cmd.OutOrStdout()

	if catalogID != "" {
		p, ok := cat.ByID(catalogID)
		if !ok {
			return fmt.Errorf("project not found: %s", catalogID)
		}
		return writeJSON(out, "", p)
	}

	if catalogSummary {
		return writeJSON(out, "", map[string]any{
			"projects_by_category": cat.CategoryBreakdown(),
			"total_projects":       cat.Len(),
		})
	}

	projects := cat.Filter(types.Category(catalogCategory), types.Difficulty(catalogDifficulty))
	if len(catalogSkills) > 0 {
		return writeJSON(out, "", ranking.ProjectsBySkills(catalogSkills, projects))
	}
	return writeJSON(out, "", projects)
}
