package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jonathan/stackmatch/internal/enhancement"
	"github.com/jonathan/stackmatch/internal/ingestion"
)

var parseResumeCmd = &cobra.Command{
	Use:   "parse-resume",
	Short: "Extract a structured profile from a PDF or DOCX résumé",
	Long: `Extract contact details, skills, education and experience from a résumé.
The AI providers are tried first unless --no-ai is set; on any AI failure the
deterministic extractor answers instead unless --no-fallback is set.`,
	RunE: runParseResume,
}

var (
	parseResumeIn         string
	parseResumeOut        string
	parseResumeNoAI       bool
	parseResumeNoFallback bool
	parseResumeStrategy   string
)

func init() {
	parseResumeCmd.Flags().StringVarP(&parseResumeIn, "in", "i", "", "Path to the résumé (.pdf or .docx)")
	parseResumeCmd.Flags().StringVarP(&parseResumeOut, "out", "o", "", "Path to output JSON file (default stdout)")
	parseResumeCmd.Flags().BoolVar(&parseResumeNoAI, "no-ai", false, "Use the deterministic extractor only")
	parseResumeCmd.Flags().BoolVar(&parseResumeNoFallback, "no-fallback", false, "Fail instead of falling back when the AI pass fails")
	parseResumeCmd.Flags().StringVar(&parseResumeStrategy, "strategy", "full", "AI strategy: full, skills or validation")
	_ = parseResumeCmd.MarkFlagRequired("in")

	rootCmd.AddCommand(parseResumeCmd)
}

func runParseResume(cmd *cobra.Command, _ []string) error {
	strategy, err := enhancement.ParseStrategy(parseResumeStrategy)
	if err != nil {
		return err
	}

	raw, err := readResume(parseResumeIn)
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
	opts.UseAI = !parseResumeNoAI
	opts.FallbackOnError = !parseResumeNoFallback
	opts.Strategy = strategy

	env := a.svc.ParseDocument(ctx, raw, opts)
	if !env.Success {
		return envelopeError(env.Failure)
	}

	if verbose {
		a.printer.PrintResume(env.Data)
		a.printer.PrintProviderStats(a.router.Stats())
	}
	return writeJSON(cmd.OutOrStdout(), parseResumeOut, env)
}

// readResume loads path with its media type taken from the extension.
func readResume(path string) (*ingestion.RawDocument, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input file: %w", err)
	}
	return &ingestion.RawDocument{
		FileName:  path,
		MediaType: ingestion.MediaTypeFromFileName(path),
		Content:   content,
	}, nil
}
