package main

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/stackmatch/internal/export"
	"github.com/jonathan/stackmatch/internal/pipeline"
	"github.com/jonathan/stackmatch/internal/types"
)

var matchCmd = &cobra.Command{
	Use:   "match",
	Short: "Match a résumé and a Google Scholar profile against the catalog",
	Long: `Parse --resume and fetch --scholar at the same time, then rank the catalog
against both skill lists. The first failure cancels the other step.`,
	RunE: runMatch,
}

var (
	matchResume  string
	matchScholar string
	matchNoAI    bool
	matchOut     string
	matchXLSX    string
	matchReport  string
)

func init() {
	matchCmd.Flags().StringVarP(&matchResume, "resume", "r", "", "Path to the résumé (.pdf or .docx)")
	matchCmd.Flags().StringVarP(&matchScholar, "scholar", "p", "", "Scholar profile URL or bare user id")
	matchCmd.Flags().BoolVar(&matchNoAI, "no-ai", false, "Use the deterministic extractor only")
	matchCmd.Flags().StringVarP(&matchOut, "out", "o", "", "Path to output JSON file (default stdout)")
	matchCmd.Flags().StringVar(&matchXLSX, "xlsx", "", "Also write matches to this .xlsx file")
	matchCmd.Flags().StringVar(&matchReport, "report", "", "Also write an HTML report to this file")
	matchCmd.Flags().Bool("browser", false, "Render the profile page in headless Chrome when the plain fetch has no profile markup")
	_ = matchCmd.MarkFlagRequired("resume")
	_ = matchCmd.MarkFlagRequired("scholar")

	rootCmd.AddCommand(matchCmd)
}

func runMatch(cmd *cobra.Command, _ []string) error {
	raw, err := readResume(matchResume)
	if err != nil {
		return err
	}

	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	opts := a.enhancementOptions()
	opts.UseAI = !matchNoAI

	combined, err := a.svc.CombinedProfile(ctx, raw, matchScholar, opts)
	if err != nil {
		return envelopeError(pipeline.NewFailure(err))
	}

	matches := make([]types.MatchedProject, 0, len(combined.Matches))
	for _, m := range combined.Matches {
		matches = append(matches, m.MatchedProject)
	}

	if verbose {
		a.printer.PrintResume(combined.Resume)
		a.printer.PrintScholarProfile(combined.Scholar)
		a.printer.PrintMatches(matches)
		a.printer.PrintLearningPath(combined.LearningPath)
	}

	if matchXLSX != "" {
		if err := writeFile(matchXLSX, func(f *os.File) error { return export.WriteMatchesXLSX(f, matches) }); err != nil {
			return err
		}
	}
	if matchReport != "" {
		report := export.Report{
			Title:        "Project suggestions for " + combined.Scholar.Name,
			UserSkills:   combined.Resume.Skills,
			Matches:      matches,
			LearningPath: combined.LearningPath,
		}
		if err := writeFile(matchReport, func(f *os.File) error { return export.RenderHTMLReport(f, report) }); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), matchOut, map[string]any{
		"success": true,
		"data":    combined,
	})
}
