// Package config loads the pipeline's configuration from a TOML file layered
// under environment variables, following the precedence and file-search
// conventions of the rest of the toolchain: environment variables > config
// file > defaults.
package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds all configuration for the SLR pipeline.
type Config struct {
	Storage   StorageConfig             `toml:"storage"`
	LLM       LLMConfig                 `toml:"llm"`
	Executor  ExecutorConfig            `toml:"executor"`
	Providers map[string]ProviderConfig `toml:"provider"`
	Dedup     DedupConfig               `toml:"dedup"`
	Log       LogConfig                 `toml:"log"`
}

// StorageConfig controls where project artifacts are persisted.
type StorageConfig struct {
	BaseDir string `toml:"base_dir"`
}

// LLMConfig selects and configures the LLMDrafter backend.
type LLMConfig struct {
	Provider             string `toml:"provider"` // openai, mock, deterministic
	APIKey               string `toml:"api_key"`
	CritiqueMaxIterations int   `toml:"critique_max_iterations"`
}

// ExecutorConfig controls the Search Executor's fan-out and retry behavior.
type ExecutorConfig struct {
	MaxResultsPerDB      int         `toml:"max_results_per_db"`
	Concurrency          int         `toml:"concurrency"`
	PerCallTimeoutSeconds   int      `toml:"per_call_timeout_seconds"`
	OverallTimeoutSeconds   int      `toml:"overall_timeout_seconds"`
	Retry                RetryConfig `toml:"retry"`
}

// RetryConfig controls the bounded exponential backoff applied to each
// provider call.
type RetryConfig struct {
	Attempts    int     `toml:"attempts"`
	BaseMs      int     `toml:"base_ms"`
	JitterRatio float64 `toml:"jitter_ratio"`
}

// ProviderConfig holds per-provider rate limiting and credentials.
type ProviderConfig struct {
	APIKey string     `toml:"api_key"`
	Rate   RateConfig `toml:"rate"`
}

// RateConfig describes a token-bucket rate limit.
type RateConfig struct {
	Capacity       int     `toml:"capacity"`
	RefillPerSecond float64 `toml:"refill_per_second"`
}

// DedupConfig controls automatic deduplication after a search run.
type DedupConfig struct {
	Enabled bool `toml:"enabled"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
}

// Load creates a Config by reading from a TOML config file and environment
// variables. Precedence: environment variables > config file > defaults.
//
// Config file search order (first found wins):
//  1. Path passed via configPath parameter (from --config flag)
//  2. SLR_CONFIG environment variable
//  3. ./slrctl.toml (current directory)
//  4. ~/.config/slrctl/slrctl.toml (XDG-style)
func Load(configPath string) (*Config, error) {
	cfg := defaults()

	if err := cfg.loadFile(configPath); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Storage: StorageConfig{
			BaseDir: "./slr-projects",
		},
		LLM: LLMConfig{
			Provider:              "deterministic",
			CritiqueMaxIterations: 2,
		},
		Executor: ExecutorConfig{
			MaxResultsPerDB:       100,
			Concurrency:           4,
			PerCallTimeoutSeconds: 60,
			OverallTimeoutSeconds: 300,
			Retry: RetryConfig{
				Attempts:    3,
				BaseMs:      500,
				JitterRatio: 0.2,
			},
		},
		Providers: map[string]ProviderConfig{
			"openalex": {Rate: RateConfig{Capacity: 10, RefillPerSecond: 5}},
			"arxiv":    {Rate: RateConfig{Capacity: 3, RefillPerSecond: 1}},
			"crossref": {Rate: RateConfig{Capacity: 10, RefillPerSecond: 5}},
			"semanticscholar": {Rate: RateConfig{Capacity: 5, RefillPerSecond: 1}},
		},
		Dedup: DedupConfig{
			Enabled: true,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// loadFile finds and parses the TOML config file. If no file is found,
// this is a no-op (config file is optional).
func (c *Config) loadFile(configPath string) error {
	path := resolveConfigPath(configPath)
	if path == "" {
		return nil
	}

	if _, err := toml.DecodeFile(path, c); err != nil {
		return fmt.Errorf("reading config file %s: %w", path, err)
	}

	return nil
}

// resolveConfigPath determines which config file to use. Returns empty string
// if no config file is found (config file is optional).
func resolveConfigPath(explicit string) string {
	if explicit != "" {
		return explicit
	}

	if p := os.Getenv("SLR_CONFIG"); p != "" {
		return p
	}

	if _, err := os.Stat("slrctl.toml"); err == nil {
		return "slrctl.toml"
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := home + "/.config/slrctl/slrctl.toml"
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	return ""
}

// applyEnv overlays environment variables on top of existing config values.
// An env var only takes effect if it is non-empty.
func (c *Config) applyEnv() {
	envOverride("SLR_BASE_DIR", &c.Storage.BaseDir)
	envOverride("SLR_LLM_PROVIDER", &c.LLM.Provider)
	envOverride("SLR_LLM_API_KEY", &c.LLM.APIKey)
	envOverride("ANTHROPIC_API_KEY", &c.LLM.APIKey) // SDK-conventional alias
	envOverride("SLR_LOG_LEVEL", &c.Log.Level)
}

// Validate checks that required fields are present.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "mock", "deterministic":
		// no credential required
	case "openai", "":
		if c.LLM.Provider != "" && c.LLM.APIKey == "" {
			return fmt.Errorf("llm.api_key is required when llm.provider is %q: set llm.api_key in config file, or SLR_LLM_API_KEY/ANTHROPIC_API_KEY env var", c.LLM.Provider)
		}
	default:
		return fmt.Errorf("invalid llm provider: %q (must be one of openai, mock, deterministic)", c.LLM.Provider)
	}

	if c.Executor.Concurrency <= 0 {
		return fmt.Errorf("executor.concurrency must be positive")
	}

	return nil
}

// envOverride sets *dst to the value of the named env var, if it is non-empty.
func envOverride(key string, dst *string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
