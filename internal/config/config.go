package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// ErrMissingAPIKey indicates that no API credential was configured for a
// provider that requires one.
var ErrMissingAPIKey = errors.New("OPENAI_API_KEY environment variable is not set")

// Config is the effective configuration for one critic run. It is built once
// at process start and passed into each component; nothing reads the
// environment after Load returns.
type Config struct {
	Provider        string
	Model           string
	BaseURL         string
	APIKey          string
	MaxContextChars int
	GitTimeout      time.Duration
	PromptFile      string
	// PromptFileSet records whether the prompt file path was configured
	// explicitly (env or flag) rather than defaulted. A missing default
	// falls back to the built-in template; a missing explicit path is a
	// configuration error.
	PromptFileSet bool
	RedactSecrets bool
	RedactPaths   []string
	LogLevel      string
	LogFormat     string
}

// Default returns a Config with all defaults applied.
func Default() Config {
	return Config{
		Provider:        "openai",
		Model:           "o3-mini",
		MaxContextChars: 100000,
		GitTimeout:      10 * time.Second,
		PromptFile:      "prompt.md",
		RedactSecrets:   true,
		RedactPaths:     []string{"**/.env", "**/*secrets*"},
		LogLevel:        "warn",
		LogFormat:       "text",
	}
}

// Load builds the effective config by merging: defaults <- .env file <- env
// <- overrides. The overrides map comes from CLI flags (only set values
// should be present). A .env file in the working directory is loaded first so
// users can avoid exporting OPENAI_API_KEY each session.
func Load(overrides map[string]string) (Config, error) {
	_ = godotenv.Load()

	cfg := Default()
	mergeEnv(&cfg)
	if err := mergeOverrides(&cfg, overrides); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func mergeEnv(cfg *Config) {
	if v := os.Getenv("CRITIC_PROVIDER"); v != "" {
		cfg.Provider = v
	}
	// MODEL is the legacy name; CRITIC_MODEL wins when both are set.
	if v := os.Getenv("MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CRITIC_MODEL"); v != "" {
		cfg.Model = v
	}
	if v := os.Getenv("CRITIC_BASE_URL"); v != "" {
		cfg.BaseURL = v
	}
	if v := os.Getenv("OPENAI_API_KEY"); v != "" {
		cfg.APIKey = v
	}
	if v := os.Getenv("MAX_CONTEXT_CHARS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.MaxContextChars = n
		}
	}
	if v := os.Getenv("CRITIC_GIT_TIMEOUT"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.GitTimeout = time.Duration(n) * time.Second
		}
	}
	if v := os.Getenv("CRITIC_PROMPT_FILE"); v != "" {
		cfg.PromptFile = v
		cfg.PromptFileSet = true
	}
	if v := os.Getenv("CRITIC_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("CRITIC_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
}

func mergeOverrides(cfg *Config, overrides map[string]string) error {
	if overrides == nil {
		return nil
	}
	if v, ok := overrides["provider"]; ok && v != "" {
		cfg.Provider = v
	}
	if v, ok := overrides["model"]; ok && v != "" {
		cfg.Model = v
	}
	if v, ok := overrides["baseURL"]; ok && v != "" {
		cfg.BaseURL = v
	}
	if v, ok := overrides["maxContextChars"]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("max-context-chars must be a non-negative integer: %q", v)
		}
		cfg.MaxContextChars = n
	}
	if v, ok := overrides["gitTimeout"]; ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return fmt.Errorf("timeout must be a non-negative integer: %q", v)
		}
		cfg.GitTimeout = time.Duration(n) * time.Second
	}
	if v, ok := overrides["promptFile"]; ok && v != "" {
		cfg.PromptFile = v
		cfg.PromptFileSet = true
	}
	if v, ok := overrides["noRedact"]; ok && v == "true" {
		cfg.RedactSecrets = false
	}
	return nil
}
