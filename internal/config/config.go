// Package config provides configuration management for Navigator.
// Settings come from an optional YAML file, then environment variables with
// the NAVIGATOR_ prefix, then built-in defaults. Environment variables win
// over the file so a deployment can override a checked-in config.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Theme source conventions for the analysis stage.
const (
	ThemeSourceRanked = "ranked"
	ThemeSourceRaw    = "raw"
)

// Config holds all configuration settings for Navigator.
type Config struct {
	LLM      LLMConfig      `yaml:"llm"`
	Cache    CacheConfig    `yaml:"cache"`
	Pipeline PipelineConfig `yaml:"pipeline"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// LLMConfig contains generative-text provider configuration.
type LLMConfig struct {
	Provider       string        `yaml:"provider"` // none, anthropic, openai, ollama, gemini (default: none)
	Model          string        `yaml:"model"`    // provider default when empty
	APIKey         string        `yaml:"api_key"`
	BaseURL        string        `yaml:"base_url"`
	Timeout        time.Duration `yaml:"timeout"`          // default: 30s
	RequestsPerSec float64       `yaml:"requests_per_sec"` // default: 1
	Burst          int           `yaml:"burst"`            // default: 2
}

// CacheConfig contains briefing cache configuration.
type CacheConfig struct {
	Backend string `yaml:"backend"` // none, file, sqlite, postgres (default: file)
	Path    string `yaml:"path"`    // directory for file, database file for sqlite (default: ./data/cache)
	DSN     string `yaml:"dsn"`     // postgres connection string

	// Retention for "cache prune". Zero disables a rule.
	MaxAge     time.Duration `yaml:"max_age"`
	MaxEntries int           `yaml:"max_entries"`
}

// PipelineConfig contains briefing pipeline knobs.
type PipelineConfig struct {
	MaxPosts         int    `yaml:"max_posts"`          // default: 5
	MaxTalkingPoints int    `yaml:"max_talking_points"` // default: 3
	MaxLLMPosts      int    `yaml:"max_llm_posts"`      // default: 20
	ThemeSource      string `yaml:"theme_source"`       // ranked or raw (default: ranked)
	Rehearsal        bool   `yaml:"rehearsal"`          // default: true
}

// LoggingConfig contains logging configuration.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error (default: info)
}

// LoadConfig loads configuration from environment variables with defaults.
func LoadConfig() (*Config, error) {
	cfg := Defaults()
	applyEnv(cfg)
	return cfg, cfg.Validate()
}

// LoadConfigFile loads a YAML file, then applies environment overrides.
// An empty path behaves like LoadConfig.
func LoadConfigFile(path string) (*Config, error) {
	cfg := Defaults()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: failed to parse %s: %w", path, err)
		}
	}
	applyEnv(cfg)
	return cfg, cfg.Validate()
}

// Defaults returns the built-in configuration.
func Defaults() *Config {
	return &Config{
		LLM: LLMConfig{
			Provider:       "none",
			Timeout:        30 * time.Second,
			RequestsPerSec: 1,
			Burst:          2,
		},
		Cache: CacheConfig{
			Backend: "file",
			Path:    "./data/cache",
		},
		Pipeline: PipelineConfig{
			MaxPosts:         5,
			MaxTalkingPoints: 3,
			MaxLLMPosts:      20,
			ThemeSource:      ThemeSourceRanked,
			Rehearsal:        true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Validate checks enumerated settings.
func (c *Config) Validate() error {
	switch c.LLM.Provider {
	case "none", "anthropic", "openai", "ollama", "gemini":
	default:
		return fmt.Errorf("config: unsupported llm provider %q", c.LLM.Provider)
	}
	switch c.Cache.Backend {
	case "none", "file", "sqlite":
	case "postgres":
		if c.Cache.DSN == "" {
			return errors.New("config: postgres cache requires a DSN")
		}
	default:
		return fmt.Errorf("config: unsupported cache backend %q", c.Cache.Backend)
	}
	if c.Cache.MaxAge < 0 || c.Cache.MaxEntries < 0 {
		return errors.New("config: cache retention must not be negative")
	}
	switch c.Pipeline.ThemeSource {
	case ThemeSourceRanked, ThemeSourceRaw:
	default:
		return fmt.Errorf("config: theme_source must be %q or %q, got %q",
			ThemeSourceRanked, ThemeSourceRaw, c.Pipeline.ThemeSource)
	}
	if c.Pipeline.MaxPosts <= 0 || c.Pipeline.MaxTalkingPoints <= 0 {
		return errors.New("config: max_posts and max_talking_points must be positive")
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.LLM.Provider = strings.ToLower(getEnv("NAVIGATOR_LLM_PROVIDER", cfg.LLM.Provider))
	cfg.LLM.Model = getEnv("NAVIGATOR_LLM_MODEL", cfg.LLM.Model)
	cfg.LLM.APIKey = getEnv("NAVIGATOR_LLM_API_KEY", cfg.LLM.APIKey)
	cfg.LLM.BaseURL = getEnv("NAVIGATOR_LLM_BASE_URL", cfg.LLM.BaseURL)
	cfg.LLM.Timeout = getEnvDuration("NAVIGATOR_LLM_TIMEOUT", cfg.LLM.Timeout)
	cfg.LLM.RequestsPerSec = getEnvFloat("NAVIGATOR_LLM_RPS", cfg.LLM.RequestsPerSec)
	cfg.LLM.Burst = getEnvInt("NAVIGATOR_LLM_BURST", cfg.LLM.Burst)

	cfg.Cache.Backend = strings.ToLower(getEnv("NAVIGATOR_CACHE_BACKEND", cfg.Cache.Backend))
	cfg.Cache.Path = getEnv("NAVIGATOR_CACHE_PATH", cfg.Cache.Path)
	cfg.Cache.DSN = getEnv("NAVIGATOR_CACHE_DSN", cfg.Cache.DSN)
	cfg.Cache.MaxAge = getEnvDuration("NAVIGATOR_CACHE_MAX_AGE", cfg.Cache.MaxAge)
	cfg.Cache.MaxEntries = getEnvInt("NAVIGATOR_CACHE_MAX_ENTRIES", cfg.Cache.MaxEntries)

	cfg.Pipeline.MaxPosts = getEnvInt("NAVIGATOR_MAX_POSTS", cfg.Pipeline.MaxPosts)
	cfg.Pipeline.MaxTalkingPoints = getEnvInt("NAVIGATOR_MAX_TALKING_POINTS", cfg.Pipeline.MaxTalkingPoints)
	cfg.Pipeline.MaxLLMPosts = getEnvInt("NAVIGATOR_MAX_LLM_POSTS", cfg.Pipeline.MaxLLMPosts)
	cfg.Pipeline.ThemeSource = strings.ToLower(getEnv("NAVIGATOR_THEME_SOURCE", cfg.Pipeline.ThemeSource))
	cfg.Pipeline.Rehearsal = getEnvBool("NAVIGATOR_REHEARSAL", cfg.Pipeline.Rehearsal)

	cfg.Logging.Level = getEnv("NAVIGATOR_LOG_LEVEL", cfg.Logging.Level)
}

// getEnv retrieves a string environment variable or returns a default value.
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt retrieves an integer environment variable or returns a default
// value when unset or unparseable.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

// getEnvBool recognizes true/1/yes and false/0/no (case-insensitive).
func getEnvBool(key string, defaultValue bool) bool {
	switch strings.ToLower(os.Getenv(key)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultValue
}
