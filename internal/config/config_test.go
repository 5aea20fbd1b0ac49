package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/scrypster/navigator/internal/config"
)

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "none", cfg.LLM.Provider)
	assert.Equal(t, 30*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "file", cfg.Cache.Backend)
	assert.Equal(t, 5, cfg.Pipeline.MaxPosts)
	assert.Equal(t, 3, cfg.Pipeline.MaxTalkingPoints)
	assert.Equal(t, 20, cfg.Pipeline.MaxLLMPosts)
	assert.Equal(t, config.ThemeSourceRanked, cfg.Pipeline.ThemeSource)
	assert.True(t, cfg.Pipeline.Rehearsal)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	t.Setenv("NAVIGATOR_LLM_PROVIDER", "Anthropic")
	t.Setenv("NAVIGATOR_LLM_TIMEOUT", "5s")
	t.Setenv("NAVIGATOR_LLM_RPS", "0.5")
	t.Setenv("NAVIGATOR_THEME_SOURCE", "raw")
	t.Setenv("NAVIGATOR_REHEARSAL", "no")
	t.Setenv("NAVIGATOR_MAX_POSTS", "not-a-number")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "anthropic", cfg.LLM.Provider)
	assert.Equal(t, 5*time.Second, cfg.LLM.Timeout)
	assert.InDelta(t, 0.5, cfg.LLM.RequestsPerSec, 1e-9)
	assert.Equal(t, config.ThemeSourceRaw, cfg.Pipeline.ThemeSource)
	assert.False(t, cfg.Pipeline.Rehearsal)
	assert.Equal(t, 5, cfg.Pipeline.MaxPosts, "unparseable ints keep the default")
}

func TestLoadConfig_RejectsUnknownProvider(t *testing.T) {
	t.Setenv("NAVIGATOR_LLM_PROVIDER", "llama-cloud")
	_, err := config.LoadConfig()
	assert.Error(t, err)
}

func TestLoadConfigFile_YAMLThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
llm:
  provider: ollama
  model: qwen2.5:7b
  timeout: 12s
cache:
  backend: sqlite
  path: /tmp/briefings.db
pipeline:
  max_posts: 4
  theme_source: raw
`), 0o600))
	t.Setenv("NAVIGATOR_LLM_MODEL", "llama3")

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "ollama", cfg.LLM.Provider)
	assert.Equal(t, "llama3", cfg.LLM.Model, "env wins over file")
	assert.Equal(t, 12*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, "sqlite", cfg.Cache.Backend)
	assert.Equal(t, 4, cfg.Pipeline.MaxPosts)
	assert.Equal(t, 3, cfg.Pipeline.MaxTalkingPoints, "unset keys keep defaults")
}

func TestLoadConfigFile_PostgresNeedsDSN(t *testing.T) {
	path := filepath.Join(t.TempDir(), "navigator.yaml")
	require.NoError(t, os.WriteFile(path, []byte("cache:\n  backend: postgres\n"), 0o600))

	_, err := config.LoadConfigFile(path)
	assert.Error(t, err)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := config.LoadConfigFile(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_CacheRetention(t *testing.T) {
	t.Setenv("NAVIGATOR_CACHE_MAX_AGE", "720h")
	t.Setenv("NAVIGATOR_CACHE_MAX_ENTRIES", "50")

	cfg, err := config.LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 30*24*time.Hour, cfg.Cache.MaxAge)
	assert.Equal(t, 50, cfg.Cache.MaxEntries)

	t.Setenv("NAVIGATOR_CACHE_MAX_ENTRIES", "-1")
	_, err = config.LoadConfig()
	assert.Error(t, err)
}
