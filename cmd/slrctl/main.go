// Command slrctl is the operator CLI for the systematic-literature-review
// pipeline. It wires Config -> slog logger -> Controller and exposes one
// subcommand per Controller operation: start, run-stage, approve, status,
// list-stages.
//
// Optional environment variables:
//
//	SLR_CONFIG        - path to the TOML config file
//	SLR_BASE_DIR      - project storage root (default: ./slr-projects)
//	SLR_LLM_PROVIDER  - openai, mock, or deterministic (default: deterministic)
//	SLR_LLM_API_KEY   - API key for the openai provider
//	ANTHROPIC_API_KEY - SDK-conventional alias for SLR_LLM_API_KEY
//	SLR_LOG_LEVEL     - debug, info, warn, error (default: info)
package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/mbsoft31/slr-pipeline/internal/artifact"
	"github.com/mbsoft31/slr-pipeline/internal/config"
	"github.com/mbsoft31/slr-pipeline/internal/llm"
	"github.com/mbsoft31/slr-pipeline/internal/search"
	"github.com/mbsoft31/slr-pipeline/internal/stage"
)

// Version is set via ldflags at build time.
var Version = "dev"

var configPath string

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "slrctl: %v\n", err)
		os.Exit(1)
	}
}

// buildController loads configuration and assembles the Controller every
// subcommand operates against.
func buildController() (*stage.Controller, *slog.Logger, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.Log.Level),
	}))

	store := artifact.New(cfg.Storage.BaseDir)

	drafter, err := llm.Build(cfg.LLM.Provider, cfg.LLM.APIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("building LLM drafter: %w", err)
	}

	executor := search.New(cfg.Executor, cfg.Providers, store, logger, http.DefaultClient, cfg.Dedup.Enabled)

	deps := &stage.Deps{
		Store:                 store,
		Drafter:               drafter,
		Executor:              executor,
		CritiqueMaxIterations: cfg.LLM.CritiqueMaxIterations,
	}

	return stage.NewController(deps), logger, nil
}

func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
