package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"subtrans/internal/subtitle"
)

const sample = "1\n00:00:01,000 --> 00:00:02,000\nHello\n\n2\n00:00:03,000 --> 00:00:04,000\nWorld\n"

// countingBackend translates by identity and counts invocations; failLangs
// marks target languages whose jobs must fail.
type countingBackend struct {
	calls     atomic.Int64
	failLangs map[string]bool

	mu    sync.Mutex
	order []string
}

func (b *countingBackend) Name() string { return "counting" }

func (b *countingBackend) TranslateDocument(_ context.Context, doc *subtitle.Document, targetLang string) (string, error) {
	b.calls.Add(1)
	b.mu.Lock()
	b.order = append(b.order, targetLang)
	b.mu.Unlock()

	if b.failLangs[targetLang] {
		return "", fmt.Errorf("simulated backend failure")
	}
	return doc.Reconstruct(doc.ExtractText(), subtitle.Lenient)
}

func writeSources(t *testing.T, names ...string) (string, []string) {
	t.Helper()
	dir := t.TempDir()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
		paths = append(paths, path)
	}
	return dir, paths
}

func TestEnumerate_FilesOuterLanguagesInner(t *testing.T) {
	jobs := Enumerate([]string{"/a/x.en.srt", "/a/y.en.srt"}, []string{"fr", "de"}, "en")
	require.Len(t, jobs, 4)

	assert.Equal(t, "/a/x.en.srt|fr", jobs[0].Key())
	assert.Equal(t, "/a/x.en.srt|de", jobs[1].Key())
	assert.Equal(t, "/a/y.en.srt|fr", jobs[2].Key())
	assert.Equal(t, "/a/y.en.srt|de", jobs[3].Key())
	assert.Equal(t, "/a/x.en.srt", jobs[0].SourcePath)
	assert.Equal(t, "/a/x.fr.srt", jobs[0].DestPath)
}

func TestDestinationPath(t *testing.T) {
	assert.Equal(t, "/a/x.fr.srt", DestinationPath("/a/x.en.srt", "en", "fr"))
	// No language suffix: target code goes before the extension.
	assert.Equal(t, "/a/x.fr.srt", DestinationPath("/a/x.srt", "en", "fr"))
}

func TestRunAll_TranslatesEveryPair(t *testing.T) {
	_, paths := writeSources(t, "a.en.srt", "b.en.srt")
	backend := &countingBackend{}

	s := New(backend, 4, 1)
	jobs := Enumerate(paths, []string{"fr", "de"}, "en")
	report := s.RunAll(context.Background(), jobs)

	assert.Equal(t, 4, report.Succeeded)
	assert.Equal(t, 0, report.Failed)
	assert.Equal(t, 0, report.Skipped)
	assert.True(t, report.OK())
	assert.EqualValues(t, 4, backend.calls.Load())

	for _, job := range jobs {
		data, err := os.ReadFile(job.DestPath)
		require.NoError(t, err, job.DestPath)
		assert.Equal(t, sample, string(data))
	}
}

func TestRunAll_IdempotentRerunSkipsWithoutBackendCalls(t *testing.T) {
	_, paths := writeSources(t, "a.en.srt")
	backend := &countingBackend{}

	s := New(backend, 2, 1)
	jobs := Enumerate(paths, []string{"fr", "de"}, "en")

	first := s.RunAll(context.Background(), jobs)
	require.Equal(t, 2, first.Succeeded)
	require.EqualValues(t, 2, backend.calls.Load())

	second := s.RunAll(context.Background(), jobs)
	assert.Equal(t, 0, second.Succeeded)
	assert.Equal(t, 2, second.Skipped)
	assert.True(t, second.OK())
	// No additional backend calls on the re-run.
	assert.EqualValues(t, 2, backend.calls.Load())
}

func TestRun_PreexistingDestinationLeftUntouched(t *testing.T) {
	dir, paths := writeSources(t, "a.en.srt")
	dest := filepath.Join(dir, "a.fr.srt")
	require.NoError(t, os.WriteFile(dest, []byte("hands off"), 0o644))

	backend := &countingBackend{}
	s := New(backend, 1, 1)

	result := s.Run(context.Background(), Job{SourcePath: paths[0], TargetLang: "fr", DestPath: dest})
	assert.Equal(t, StatusSkipped, result.Status)
	assert.EqualValues(t, 0, backend.calls.Load())

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, "hands off", string(data))
}

func TestRunAll_FailureDoesNotAbortSiblings(t *testing.T) {
	_, paths := writeSources(t, "a.en.srt")
	backend := &countingBackend{failLangs: map[string]bool{"de": true}}

	s := New(backend, 2, 1)
	jobs := Enumerate(paths, []string{"fr", "de", "ja"}, "en")
	report := s.RunAll(context.Background(), jobs)

	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, 1, report.Failed)
	assert.False(t, report.OK())

	// The failed pair left no destination behind.
	assert.NoFileExists(t, DestinationPath(paths[0], "en", "de"))
	assert.FileExists(t, DestinationPath(paths[0], "en", "fr"))
	assert.FileExists(t, DestinationPath(paths[0], "en", "ja"))
}

func TestRunAll_SequentialModePreservesEnumerationOrder(t *testing.T) {
	_, paths := writeSources(t, "a.en.srt")
	backend := &countingBackend{}

	s := New(backend, 1, 1)
	jobs := Enumerate(paths, []string{"fr", "de", "ja"}, "en")
	report := s.RunAll(context.Background(), jobs)

	require.Equal(t, 3, report.Succeeded)
	assert.Equal(t, []string{"fr", "de", "ja"}, backend.order)
}

func TestRunAll_EmptyJobList(t *testing.T) {
	s := New(&countingBackend{}, 4, 1)
	report := s.RunAll(context.Background(), nil)
	assert.Equal(t, 0, report.Total())
	assert.True(t, report.OK())
}

func TestVerifyLineCounts(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "src.srt")
	dst := filepath.Join(dir, "dst.srt")
	require.NoError(t, os.WriteFile(src, []byte("a\nb\nc\n"), 0o644))
	require.NoError(t, os.WriteFile(dst, []byte("x\ny\nz\n"), 0o644))

	assert.NoError(t, verifyLineCounts(src, dst))

	require.NoError(t, os.WriteFile(dst, []byte("x\ny\n"), 0o644))
	assert.ErrorIs(t, verifyLineCounts(src, dst), ErrPostconditionViolation)
}

func TestReport_Render(t *testing.T) {
	_, paths := writeSources(t, "a.en.srt")
	backend := &countingBackend{failLangs: map[string]bool{"de": true}}

	s := New(backend, 1, 1)
	report := s.RunAll(context.Background(), Enumerate(paths, []string{"fr", "de"}, "en"))

	rendered := report.RenderReport()
	assert.Contains(t, rendered, "a.en.srt")
	assert.Contains(t, rendered, "succeeded")
	assert.Contains(t, rendered, "failed")
	assert.Contains(t, rendered, "2 jobs: 1 succeeded, 0 skipped, 1 failed")
}
