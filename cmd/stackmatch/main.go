// Package main provides the stackmatch command line: résumé and scholar
// profile extraction plus project matching, locally or as an HTTP API.
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

var (
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:           "stackmatch",
	Short:         "Extract skills from résumés and scholar profiles and match them to project ideas",
	Long:          "stackmatch parses PDF/DOCX résumés (with an optional Gemini/OpenAI pass), scrapes Google Scholar profiles, and ranks a catalog of project ideas against the combined skill set.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "JSON config file (env vars still override it)")
	rootCmd.PersistentFlags().BoolP("debug", "d", false, "debug logging")
	rootCmd.PersistentFlags().Bool("log-json", false, "JSON log output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print human-readable summaries to stderr")
}

func main() {
	// Load .env file if it exists
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
