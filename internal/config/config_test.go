package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("TARGET_LANGS", "fr,de")
	t.Setenv("INPUT_DIRS", t.TempDir())
}

func TestNewFromEnv_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendREST, cfg.Backend)
	assert.Equal(t, "en", cfg.Source.Lang)
	assert.True(t, cfg.Source.CheckLang)
	assert.Equal(t, []string{"fr", "de"}, cfg.Targets)
	assert.Equal(t, "us-east-1", cfg.AWS.Region)
	assert.Equal(t, 9500, cfg.AWS.MaxChunkBytes)
	assert.Equal(t, "openai/gpt-4o-mini", cfg.LLM.Model)
	assert.Equal(t, 25, cfg.LLM.BatchBlocks)
	assert.Equal(t, 10, cfg.Run.ProgressEvery)
	assert.False(t, cfg.Run.StrictReconstruct)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestNewFromEnv_OverridesAndLists(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TRANSLATE_BACKEND", "prompt")
	t.Setenv("SOURCE_LANG", "ja")
	t.Setenv("TARGET_LANGS", " FR , de ,fr,")
	t.Setenv("CONCURRENCY", "3")
	t.Setenv("STRICT_RECONSTRUCT", "true")
	t.Setenv("LLM_TEMPERATURE", "0.7")

	cfg, err := NewFromEnv()
	require.NoError(t, err)

	assert.Equal(t, BackendPrompt, cfg.Backend)
	assert.Equal(t, "ja", cfg.Source.Lang)
	// Normalized, deduplicated, first-seen order.
	assert.Equal(t, []string{"fr", "de"}, cfg.Targets)
	assert.Equal(t, 3, cfg.Run.Concurrency)
	assert.True(t, cfg.Run.StrictReconstruct)
	assert.InDelta(t, 0.7, cfg.LLM.Temperature, 1e-9)
}

func TestNewFromEnv_RejectsUnknownBackend(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TRANSLATE_BACKEND", "carrier-pigeon")

	_, err := NewFromEnv()
	assert.ErrorContains(t, err, "TRANSLATE_BACKEND")
}

func TestNewFromEnv_RequiresTargets(t *testing.T) {
	t.Setenv("TARGET_LANGS", "")
	t.Setenv("INPUT_DIRS", t.TempDir())

	_, err := NewFromEnv()
	assert.ErrorContains(t, err, "TARGET_LANGS")
}

func TestNewFromEnv_RejectsBadLanguageCode(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("TARGET_LANGS", "fr,!!")

	_, err := NewFromEnv()
	assert.ErrorContains(t, err, "invalid language code")
}

func TestWorkers(t *testing.T) {
	cfg := &Config{Backend: BackendREST}
	assert.Equal(t, 8, cfg.Workers())

	cfg.Backend = BackendPrompt
	assert.Equal(t, 1, cfg.Workers())

	cfg.Run.Concurrency = 5
	assert.Equal(t, 5, cfg.Workers())
}

func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("CFG_TEST_INT", "not-a-number")
	assert.Equal(t, 42, getEnvInt("CFG_TEST_INT", 42))

	t.Setenv("CFG_TEST_INT", "7")
	assert.Equal(t, 7, getEnvInt("CFG_TEST_INT", 42))

	t.Setenv("CFG_TEST_BOOL", "maybe")
	assert.True(t, getEnvBool("CFG_TEST_BOOL", true))

	t.Setenv("CFG_TEST_BOOL", "false")
	assert.False(t, getEnvBool("CFG_TEST_BOOL", true))

	assert.Equal(t, []string{"a", "b"}, splitList(" a , b ,"))
	assert.Empty(t, splitList("  "))
}
