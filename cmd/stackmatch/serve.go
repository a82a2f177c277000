package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jonathan/stackmatch/internal/server"
	"github.com/jonathan/stackmatch/internal/server/ratelimit"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the REST API server",
	Long:  `Start an HTTP server that exposes résumé parsing, scholar fetching and project matching.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 8080, "Port to listen on (overrides PORT)")
	serveCmd.Flags().Bool("browser", false, "Allow headless Chrome for scholar pages")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cmd)
	if err != nil {
		return err
	}
	defer a.close()

	rl := a.cfg.RateLimit
	srv, err := server.New(server.Config{
		Port:      a.cfg.Server.Port,
		RateLimit: ratelimit.NewConfig(rl.Enabled, rl.DefaultLimit, rl.DefaultWindow, rl.CleanupInterval, rl.Whitelist, rl.Blacklist),
		AI:        a.router,
		Logger:    a.log,
	}, a.svc)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	return srv.Start(ctx)
}
