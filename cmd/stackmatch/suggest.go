package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/stackmatch/internal/export"
	"github.com/jonathan/stackmatch/internal/pipeline"
	"github.com/jonathan/stackmatch/internal/types"
)

var suggestCmd = &cobra.Command{
	Use:   "suggest",
	Short: "Rank catalog projects against a skill list",
	Long: `Rank the project catalog against --skills. With --scholar-skills the two
lists are matched together and a learning path is added. Results can also be
written as a spreadsheet (--xlsx) or an HTML report (--report).`,
	RunE: runSuggest,
}

var (
	suggestSkills        []string
	suggestScholarSkills []string
	suggestStandardize   bool
	suggestLimit         int
	suggestOut           string
	suggestXLSX          string
	suggestReport        string
)

func init() {
	suggestCmd.Flags().StringSliceVarP(&suggestSkills, "skills", "s", nil, "Comma-separated skills")
	suggestCmd.Flags().StringSliceVar(&suggestScholarSkills, "scholar-skills", nil, "Comma-separated skills from a scholar profile")
	suggestCmd.Flags().BoolVar(&suggestStandardize, "standardize", false, "Map raw tokens such as \"js\" to canonical names before matching")
	suggestCmd.Flags().IntVar(&suggestLimit, "limit", 0, "Maximum best matches with --scholar-skills (default 10)")
	suggestCmd.Flags().StringVarP(&suggestOut, "out", "o", "", "Path to output JSON file (default stdout)")
	suggestCmd.Flags().StringVar(&suggestXLSX, "xlsx", "", "Also write matches to this .xlsx file")
	suggestCmd.Flags().StringVar(&suggestReport, "report", "", "Also write an HTML report to this file")
	_ = suggestCmd.MarkFlagRequired("skills")

	rootCmd.AddCommand(suggestCmd)
}

func runSuggest(cmd *cobra.Command, _ []string) error {
	// Ranking needs no AI or network, so no app is built.
	svc := pipeline.New(nil, nil, nil)
	ctx := cmd.Context()

	env := svc.Suggest(ctx, types.SuggestionsRequest{Skills: suggestSkills, Standardize: suggestStandardize})
	if !env.Success {
		return envelopeError(env.Failure)
	}

	var (
		result  any = env
		matches     = env.Data.MatchedProjects
		path    []string
	)

	if len(suggestScholarSkills) > 0 {
		best := svc.FindBestMatches(ctx, types.BestMatchesRequest{
			ResumeSkills:  env.Data.UserSkills,
			ScholarSkills: suggestScholarSkills,
			Limit:         suggestLimit,
		})
		if !best.Success {
			return envelopeError(best.Failure)
		}
		result = best
		matches = make([]types.MatchedProject, 0, len(best.Data.Matches))
		for _, m := range best.Data.Matches {
			matches = append(matches, m.MatchedProject)
		}
		path = best.Data.LearningPath
	}

	if verbose {
		p := newPrinter(cmd)
		p.PrintMatches(matches)
		p.PrintLearningPath(path)
	}

	if suggestXLSX != "" {
		if err := writeFile(suggestXLSX, func(f *os.File) error { return export.WriteMatchesXLSX(f, matches) }); err != nil {
			return err
		}
	}

	if suggestReport != "" {
		report := export.Report{UserSkills: env.Data.UserSkills, Matches: matches, LearningPath: path}
		if err := writeFile(suggestReport, func(f *os.File) error { return export.RenderHTMLReport(f, report) }); err != nil {
			return err
		}
	}

	return writeJSON(cmd.OutOrStdout(), suggestOut, result)
}

func writeFile(path string, write func(*os.File) error) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
