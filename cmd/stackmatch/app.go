package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/jonathan/stackmatch/internal/catalog"
	"github.com/jonathan/stackmatch/internal/config"
	"github.com/jonathan/stackmatch/internal/enhancement"
	"github.com/jonathan/stackmatch/internal/fetch"
	"github.com/jonathan/stackmatch/internal/llm"
	"github.com/jonathan/stackmatch/internal/logger"
	"github.com/jonathan/stackmatch/internal/observability"
	"github.com/jonathan/stackmatch/internal/pipeline"
	"github.com/jonathan/stackmatch/internal/scholar"
)

// app holds what a command needs, built from flags, config file and environment.
type app struct {
	cfg     *config.Config
	log     *zap.Logger
	router  *llm.Router
	svc     *pipeline.Service
	printer *observability.Printer
}

// flagKeys binds command line flags to config keys when the command defines them.
var flagKeys = map[string]string{
	"debug":    "log.debug",
	"log-json": "log.json",
	"port":     "server.port",
	"browser":  "scholar.use_browser",
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	v := config.New()
	bindFlags(v, cmd)
	return config.Load(v, cfgFile)
}

func bindFlags(v *viper.Viper, cmd *cobra.Command) {
	for flag, key := range flagKeys {
		if f := cmd.Flags().Lookup(flag); f != nil {
			_ = v.BindPFlag(key, f)
		}
	}
}

func newApp(ctx context.Context, cmd *cobra.Command) (*app, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}

	a := &app{
		cfg:     cfg,
		log:     log,
		router:  llm.NewRouterFromConfig(ctx, cfg.LLM(), log),
		printer: newPrinter(cmd),
	}

	clientOpts := []scholar.Option{
		scholar.WithTimeout(cfg.Scholar.Timeout),
		scholar.WithRatePerMinute(cfg.Scholar.RatePerMinute),
		scholar.WithLogger(log),
	}
	if cfg.Scholar.UseBrowser {
		clientOpts = append(clientOpts, scholar.WithRenderer(fetch.BrowserRenderer(cfg.Scholar.Timeout, log)))
	}

	svcOpts := []pipeline.Option{pipeline.WithLogger(log)}
	if verbose {
		svcOpts = append(svcOpts, pipeline.WithProgress(func(e pipeline.ProgressEvent) {
			log.Info(e.Message, zap.String("step", e.Step))
		}))
	}

	a.svc = pipeline.New(
		catalog.Default(),
		enhancement.NewParser(a.router, log),
		scholar.NewClient(clientOpts...),
		svcOpts...,
	)
	return a, nil
}

func newPrinter(cmd *cobra.Command) *observability.Printer {
	return observability.NewPrinter(cmd.ErrOrStderr())
}

func (a *app) close() {
	_ = a.router.Close()
	_ = a.log.Sync()
}

// enhancementOptions applies the configured AI timeout to the defaults.
func (a *app) enhancementOptions() enhancement.Options {
	opts := enhancement.DefaultOptions()
	if t := a.cfg.AITimeout(); t > 0 {
		opts.Timeout = t
	}
	return opts
}

// writeJSON writes v as indented JSON to path, or to w when path is empty.
func writeJSON(w io.Writer, path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = w.Write(data)
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return nil
}

// envelopeError turns a failed envelope into the command's error.
func envelopeError(f *pipeline.Failure) error {
	if f == nil {
		return nil
	}
	if f.Details != "" {
		return fmt.Errorf("%s (%s): %s", f.Message, f.Kind, f.Details)
	}
	return fmt.Errorf("%s (%s)", f.Message, f.Kind)
}
