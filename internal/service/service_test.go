package service

import (
	"context"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrans/internal/config"
	"subtrans/internal/subtitle"
)

const sample = "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n"

type identityBackend struct {
	calls atomic.Int64
}

func (b *identityBackend) Name() string { return "identity" }

func (b *identityBackend) TranslateDocument(_ context.Context, doc *subtitle.Document, _ string) (string, error) {
	b.calls.Add(1)
	return doc.Reconstruct(doc.ExtractText(), subtitle.Lenient)
}

func testConfig(t *testing.T, targets ...string) *config.Config {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "movie.en.srt"), []byte(sample), 0o644))

	return &config.Config{
		Backend: config.BackendREST,
		Source:  config.SourceConfig{Lang: "en", Dirs: []string{dir}},
		Targets: targets,
		Run:     config.RunConfig{Concurrency: 2, ProgressEvery: 10, CronExpr: "@every 50ms"},
	}
}

func TestRunOnce_TranslatesAndReports(t *testing.T) {
	cfg := testConfig(t, "fr", "de")
	backend := &identityBackend{}

	report, err := NewWithBackend(cfg, backend).RunOnce(context.Background())
	require.NoError(t, err)

	assert.Equal(t, 2, report.Succeeded)
	assert.True(t, report.OK())
	assert.FileExists(t, filepath.Join(cfg.Source.Dirs[0], "movie.fr.srt"))
	assert.FileExists(t, filepath.Join(cfg.Source.Dirs[0], "movie.de.srt"))
}

func TestRunOnce_EmptyLibraryFails(t *testing.T) {
	cfg := testConfig(t, "fr")
	cfg.Source.Dirs = []string{t.TempDir()}

	_, err := NewWithBackend(cfg, &identityBackend{}).RunOnce(context.Background())
	assert.ErrorIs(t, err, ErrNoInputFiles)
}

func TestNew_PromptBackendNeedsAPIKey(t *testing.T) {
	cfg := testConfig(t, "fr")
	cfg.Backend = config.BackendPrompt

	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrPrerequisiteMissing)
}

func TestNew_RESTBackendNeedsCredentials(t *testing.T) {
	cfg := testConfig(t, "fr")
	cfg.AWS.CredentialsFile = filepath.Join(t.TempDir(), "absent")

	_, err := New(cfg)
	assert.ErrorIs(t, err, ErrPrerequisiteMissing)
}

func TestNew_PromptBackendWithKey(t *testing.T) {
	cfg := testConfig(t, "fr")
	cfg.Backend = config.BackendPrompt
	cfg.LLM = config.LLMConfig{
		APIKey: "sk-test", APIURL: "https://example.invalid/v1",
		Model: "test-model", MaxTokens: 100, Temperature: 0.3, Timeout: 5,
	}

	svc, err := New(cfg)
	require.NoError(t, err)
	assert.NotNil(t, svc)
}

func TestWatch_RunsOnScheduleUntilCancelled(t *testing.T) {
	cfg := testConfig(t, "fr")
	backend := &identityBackend{}
	svc := NewWithBackend(cfg, backend)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Watch(ctx) }()

	require.Eventually(t, func() bool {
		return backend.calls.Load() >= 1
	}, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watch did not stop after cancellation")
	}
}

func TestWatch_RejectsBadCronExpression(t *testing.T) {
	cfg := testConfig(t, "fr")
	cfg.Run.CronExpr = "not a schedule"
	svc := NewWithBackend(cfg, &identityBackend{})

	err := svc.Watch(context.Background())
	assert.ErrorContains(t, err, "invalid cron expression")
}
