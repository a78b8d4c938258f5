package scheduler

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"subtrans/internal/translator"
	"subtrans/pkg/file"
	"subtrans/pkg/log"
)

// Scheduler fans the (file, language) cross-product out over a bounded
// worker pool and aggregates terminal results. All jobs run to completion;
// a failure never cancels its siblings.
type Scheduler struct {
	backend       translator.Backend
	workers       int
	progressEvery int
}

// New builds a scheduler. workers <= 1 means strictly sequential execution
// in enumeration order; progressEvery controls how many completions pass
// between progress log lines.
func New(backend translator.Backend, workers, progressEvery int) *Scheduler {
	if workers < 1 {
		workers = 1
	}
	if progressEvery < 1 {
		progressEvery = 10
	}
	return &Scheduler{
		backend:       backend,
		workers:       workers,
		progressEvery: progressEvery,
	}
}

// Enumerate builds one job per (file, language) pair, files outer and
// languages inner, so logs group by file.
func Enumerate(files, targetLangs []string, sourceLang string) []Job {
	jobs := make([]Job, 0, len(files)*len(targetLangs))
	for _, path := range files {
		for _, lang := range targetLangs {
			jobs = append(jobs, Job{
				SourcePath: path,
				TargetLang: lang,
				DestPath:   DestinationPath(path, sourceLang, lang),
			})
		}
	}
	return jobs
}

// DestinationPath derives the output path by swapping the source-language
// suffix for the target one, in the same directory. A file without the
// language suffix gets the target code inserted before its extension.
func DestinationPath(path, sourceLang, targetLang string) string {
	if dest, ok := file.ReplaceSuffix(path, "."+sourceLang+".srt", "."+targetLang+".srt"); ok {
		return dest
	}
	dest, _ := file.ReplaceSuffix(path, ".srt", "."+targetLang+".srt")
	return dest
}

// Run executes one job to its terminal state. A pre-existing destination is
// never overwritten; the job is skipped without touching the backend.
func (s *Scheduler) Run(ctx context.Context, job Job) Result {
	started := time.Now()

	if file.Exists(job.DestPath) {
		return Result{Job: job, Status: StatusSkipped, Elapsed: time.Since(started)}
	}

	out, err := translator.TranslateFile(ctx, s.backend, job.SourcePath, job.TargetLang)
	if err != nil {
		return Result{Job: job, Status: StatusFailed, Err: err, Elapsed: time.Since(started)}
	}

	if err := os.WriteFile(job.DestPath, []byte(out), 0o644); err != nil {
		return Result{Job: job, Status: StatusFailed,
			Err: fmt.Errorf("failed to write destination: %w", err), Elapsed: time.Since(started)}
	}

	// Re-check the artifact on disk; a mismatch demotes the success. The
	// bad file is removed so a later run retries instead of skipping it.
	if err := verifyLineCounts(job.SourcePath, job.DestPath); err != nil {
		if removeErr := os.Remove(job.DestPath); removeErr != nil {
			log.Error("Failed to remove bad destination %s: %v", job.DestPath, removeErr)
		}
		return Result{Job: job, Status: StatusFailed, Err: err, Elapsed: time.Since(started)}
	}

	return Result{Job: job, Status: StatusSucceeded, Elapsed: time.Since(started)}
}

// RunAll executes every job and blocks until all have reached a terminal
// state. Workers push results onto a channel; a single collector goroutine
// owns the counters, so no counter is ever shared.
func (s *Scheduler) RunAll(ctx context.Context, jobs []Job) Report {
	started := time.Now()
	if len(jobs) == 0 {
		return Report{}
	}

	workers := s.workers
	if workers > len(jobs) {
		workers = len(jobs)
	}

	pending := make(chan Job)
	results := make(chan Result)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range pending {
				results <- s.Run(ctx, job)
			}
		}()
	}

	report := Report{Results: make([]Result, 0, len(jobs))}
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		completed := 0
		for result := range results {
			completed++
			switch result.Status {
			case StatusSucceeded:
				report.Succeeded++
				log.Info("Job %s succeeded in %s", result.Job.Key(), result.Elapsed.Round(time.Millisecond))
			case StatusSkipped:
				report.Skipped++
				log.Info("Job %s skipped: destination already exists", result.Job.Key())
			default:
				report.Failed++
				log.Error("Job %s failed: %v", result.Job.Key(), result.Err)
			}
			if completed%s.progressEvery == 0 {
				log.Info("Progress: %d/%d jobs done (%d failed)", completed, len(jobs), report.Failed)
			}
			report.Results = append(report.Results, result)
		}
	}()

	for _, job := range jobs {
		pending <- job
	}
	close(pending)
	wg.Wait()
	close(results)
	<-collectorDone

	report.Elapsed = time.Since(started)
	return report
}

func verifyLineCounts(sourcePath, destPath string) error {
	src, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to re-read source: %w", err)
	}
	dst, err := os.ReadFile(destPath)
	if err != nil {
		return fmt.Errorf("failed to read destination: %w", err)
	}

	srcLines := len(strings.Split(string(src), "\n"))
	dstLines := len(strings.Split(string(dst), "\n"))
	if srcLines != dstLines {
		return fmt.Errorf("%w: source %d lines, destination %d lines",
			ErrPostconditionViolation, srcLines, dstLines)
	}
	return nil
}
