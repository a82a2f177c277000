package main

import (
	"github.com/spf13/cobra"
)

var fetchScholarCmd = &cobra.Command{
	Use:   "fetch-scholar",
	Short: "Fetch a Google Scholar profile and derive its technology skills",
	RunE:  runFetchScholar,
}

var (
	fetchScholarProfile string
	fetchScholarOut     string
)

func init() {
	fetchScholarCmd.Flags().StringVarP(&fetchScholarProfile, "profile", "p", "", "Profile URL or bare user id")
	fetchScholarCmd.Flags().StringVarP(&fetchScholarOut, "out", "o", "", "Path to output JSON file (default stdout)")
	fetchScholarCmd.Flags().Bool("browser", false, "Render the page in headless Chrome when the plain fetch has no profile markup")
	_ = fetchScholarCmd.MarkFlagRequired("profile")

	rootCmd.AddCommand(fetchScholarCmd)
}

func runFetchScholar(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	env := a.svc.FetchScholar(ctx, fetchScholarProfile)
	if !env.Success {
		return envelopeError(env.Failure)
	}

	if verbose {
		a.printer.PrintScholarProfile(env.Data)
	}
	return writeJSON(cmd.OutOrStdout(), fetchScholarOut, env)
}
