package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mbsoft31/slr-pipeline/internal/config"
)

func TestLoad_ExplicitMissingPathFails(t *testing.T) {
	cfg, err := config.Load("/nonexistent/path/slrctl.toml")
	require.Error(t, err, "an explicit, unreadable config path must fail, not silently fall back")
	_ = cfg
}

func TestLoad_NoExplicitPathUsesDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "./slr-projects", cfg.Storage.BaseDir)
	assert.Equal(t, "deterministic", cfg.LLM.Provider)
	assert.Equal(t, 4, cfg.Executor.Concurrency)
	assert.True(t, cfg.Dedup.Enabled)
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slrctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
base_dir = "/data/slr-projects"

[llm]
provider = "mock"
`), 0o644))

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/slr-projects", cfg.Storage.BaseDir)
	assert.Equal(t, "mock", cfg.LLM.Provider)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "slrctl.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[storage]
base_dir = "/from/file"
`), 0o644))

	t.Setenv("SLR_BASE_DIR", "/from/env")

	cfg, err := config.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/from/env", cfg.Storage.BaseDir)
}

func TestLoad_AnthropicAPIKeyAliasesSLRLLMAPIKey(t *testing.T) {
	t.Setenv("SLR_LLM_PROVIDER", "openai")
	t.Setenv("ANTHROPIC_API_KEY", "sk-test-key")

	dir := t.TempDir()
	t.Chdir(dir)

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "sk-test-key", cfg.LLM.APIKey)
}

func TestValidate_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("SLR_LLM_PROVIDER", "not-a-real-provider")
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid llm provider")
}

func TestValidate_RejectsOpenAIProviderWithoutAPIKey(t *testing.T) {
	t.Setenv("SLR_LLM_PROVIDER", "openai")
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := config.Load("")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "llm.api_key is required")
}
