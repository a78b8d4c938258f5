// Package config holds all application configuration, loaded from
// environment variables (with .env support) and sensible defaults.
//
// Environment Variables:
//
// Pipeline:
//   - TRANSLATE_BACKEND: "rest" or "prompt" (default: rest)
//   - SOURCE_LANG: source language code of the input files (default: en)
//   - TARGET_LANGS: comma-separated target language codes (required)
//   - INPUT_DIRS: comma-separated directories to scan (default: .)
//   - CHECK_SOURCE_LANG: detect-and-warn on language mismatch (default: true)
//   - CONCURRENCY: worker count; 0 picks a backend-appropriate default
//   - PROGRESS_EVERY: completions between progress log lines (default: 10)
//   - STRICT_RECONSTRUCT: fail instead of degrading on translation
//     shortfall (default: false)
//   - CRON_EXPR: schedule for watch mode (default: "0 * * * *")
//   - LOG_LEVEL: debug|info|warn|error (default: info)
//
// REST backend:
//   - AWS_REGION (default: us-east-1)
//   - AWS_ACCESS_KEY_ID, AWS_SECRET_ACCESS_KEY, AWS_SESSION_TOKEN
//   - AWS_PROFILE, AWS_SHARED_CREDENTIALS_FILE
//   - MAX_CHUNK_BYTES: request payload budget (default: 9500)
//
// Prompt backend:
//   - LLM_API_KEY (required for the prompt backend)
//   - LLM_API_URL (default: https://openrouter.ai/api/v1)
//   - LLM_MODEL (default: openai/gpt-4o-mini)
//   - LLM_MAX_TOKENS (default: 8000)
//   - LLM_TEMPERATURE (default: 0.3)
//   - LLM_TIMEOUT: request timeout in seconds (default: 120)
//   - LLM_BATCH_BLOCKS: cue blocks per prompt call (default: 25)
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"subtrans/internal/langs"
)

const (
	BackendREST   = "rest"
	BackendPrompt = "prompt"
)

type Config struct {
	Backend string `json:"backend"`

	Source  SourceConfig `json:"source"`
	Targets []string     `json:"targets"`

	AWS AWSConfig `json:"aws"`
	LLM LLMConfig `json:"llm"`
	Run RunConfig `json:"run"`

	LogLevel string `json:"log_level"`
}

// SourceConfig describes where the source files live and what language
// they are in.
type SourceConfig struct {
	Lang      string   `json:"lang"`
	Dirs      []string `json:"dirs"`
	CheckLang bool     `json:"check_lang"`
}

// AWSConfig holds everything the REST backend needs.
type AWSConfig struct {
	Region          string `json:"region"`
	AccessKeyID     string `json:"-"`
	SecretAccessKey string `json:"-"`
	SessionToken    string `json:"-"`
	Profile         string `json:"profile"`
	CredentialsFile string `json:"credentials_file"`
	MaxChunkBytes   int    `json:"max_chunk_bytes"`
}

// LLMConfig holds the configuration for the prompt backend's client.
type LLMConfig struct {
	APIKey      string  `json:"-"`
	APIURL      string  `json:"api_url"`
	Model       string  `json:"model"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	Timeout     int     `json:"timeout"`
	BatchBlocks int     `json:"batch_blocks"`
}

// RunConfig tunes scheduling.
type RunConfig struct {
	Concurrency       int    `json:"concurrency"`
	ProgressEvery     int    `json:"progress_every"`
	StrictReconstruct bool   `json:"strict_reconstruct"`
	CronExpr          string `json:"cron_expr"`
}

// Option is a function type for adjusting Config after env loading.
type Option func(*Config)

// NewFromEnv creates a Config from environment variables and options. A
// .env file in the working directory is honored when present.
func NewFromEnv(opts ...Option) (*Config, error) {
	_ = godotenv.Load()

	config := &Config{
		Backend: getEnvString("TRANSLATE_BACKEND", BackendREST),
		Source: SourceConfig{
			Lang:      getEnvString("SOURCE_LANG", "en"),
			Dirs:      splitList(getEnvString("INPUT_DIRS", ".")),
			CheckLang: getEnvBool("CHECK_SOURCE_LANG", true),
		},
		Targets: splitList(getEnvString("TARGET_LANGS", "")),
		AWS: AWSConfig{
			Region:          getEnvString("AWS_REGION", "us-east-1"),
			AccessKeyID:     getEnvString("AWS_ACCESS_KEY_ID", ""),
			SecretAccessKey: getEnvString("AWS_SECRET_ACCESS_KEY", ""),
			SessionToken:    getEnvString("AWS_SESSION_TOKEN", ""),
			Profile:         getEnvString("AWS_PROFILE", "default"),
			CredentialsFile: getEnvString("AWS_SHARED_CREDENTIALS_FILE", ""),
			MaxChunkBytes:   getEnvInt("MAX_CHUNK_BYTES", 9500),
		},
		LLM: LLMConfig{
			APIKey:      getEnvString("LLM_API_KEY", ""),
			APIURL:      getEnvString("LLM_API_URL", "https://openrouter.ai/api/v1"),
			Model:       getEnvString("LLM_MODEL", "openai/gpt-4o-mini"),
			MaxTokens:   getEnvInt("LLM_MAX_TOKENS", 8000),
			Temperature: getEnvFloat("LLM_TEMPERATURE", 0.3),
			Timeout:     getEnvInt("LLM_TIMEOUT", 120),
			BatchBlocks: getEnvInt("LLM_BATCH_BLOCKS", 25),
		},
		Run: RunConfig{
			Concurrency:       getEnvInt("CONCURRENCY", 0),
			ProgressEvery:     getEnvInt("PROGRESS_EVERY", 10),
			StrictReconstruct: getEnvBool("STRICT_RECONSTRUCT", false),
			CronExpr:          getEnvString("CRON_EXPR", "0 * * * *"),
		},
		LogLevel: getEnvString("LOG_LEVEL", "info"),
	}

	for _, opt := range opts {
		opt(config)
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Workers resolves the effective worker count: an explicit setting wins,
// otherwise the prompt backend runs sequentially and the REST backend gets
// a modest pool.
func (c *Config) Workers() int {
	if c.Run.Concurrency > 0 {
		return c.Run.Concurrency
	}
	if c.Backend == BackendPrompt {
		return 1
	}
	return 8
}

func (c *Config) validate() error {
	if c.Backend != BackendREST && c.Backend != BackendPrompt {
		return fmt.Errorf("TRANSLATE_BACKEND must be %q or %q, got %q",
			BackendREST, BackendPrompt, c.Backend)
	}
	if c.Source.Lang == "" {
		return fmt.Errorf("SOURCE_LANG is required")
	}
	if len(c.Targets) == 0 {
		return fmt.Errorf("TARGET_LANGS is required")
	}
	if len(c.Source.Dirs) == 0 {
		return fmt.Errorf("INPUT_DIRS is required")
	}

	normalized, err := langs.NormalizeAll(c.Targets)
	if err != nil {
		return err
	}
	c.Targets = normalized

	if _, err := langs.Normalize(c.Source.Lang); err != nil {
		return err
	}

	return nil
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// getEnvString gets a string value from environment variables with default.
func getEnvString(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an integer value from environment variables with default.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvFloat gets a float value from environment variables with default.
func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(value, 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}

// getEnvBool gets a boolean value from environment variables with default.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
