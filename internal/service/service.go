// Package service wires configuration, discovery, backend and scheduler
// into runnable entry points: one-shot runs and a cron-driven watch loop.
package service

import (
	"context"
	"fmt"

	"subtrans/internal/awsauth"
	"subtrans/internal/config"
	"subtrans/internal/library"
	"subtrans/internal/llm"
	"subtrans/internal/scheduler"
	"subtrans/internal/subtitle"
	"subtrans/internal/translator"
	"subtrans/pkg/log"
)

type Service struct {
	cfg     *config.Config
	backend translator.Backend
	scanner *library.Scanner
}

// New builds the service for the configured backend. Prerequisites are
// checked here, before any file is touched: a misconfigured backend fails
// the whole run at startup rather than failing every job.
func New(cfg *config.Config) (*Service, error) {
	backend, err := buildBackend(cfg)
	if err != nil {
		return nil, err
	}
	return NewWithBackend(cfg, backend), nil
}

// NewWithBackend injects a ready-made backend; tests use it to bypass
// credential resolution.
func NewWithBackend(cfg *config.Config, backend translator.Backend) *Service {
	return &Service{
		cfg:     cfg,
		backend: backend,
		scanner: library.NewScanner(cfg.Source.Dirs, cfg.Source.Lang, cfg.Source.CheckLang),
	}
}

func buildBackend(cfg *config.Config) (translator.Backend, error) {
	mode := subtitle.Lenient
	if cfg.Run.StrictReconstruct {
		mode = subtitle.Strict
	}

	switch cfg.Backend {
	case config.BackendREST:
		creds, err := awsauth.Resolve(awsauth.Credentials{
			AccessKeyID:     cfg.AWS.AccessKeyID,
			SecretAccessKey: cfg.AWS.SecretAccessKey,
			SessionToken:    cfg.AWS.SessionToken,
		}, cfg.AWS.Profile, cfg.AWS.CredentialsFile)
		if err != nil {
			// Both sentinels stay in the chain so classification can give
			// credential-specific advice.
			return nil, fmt.Errorf("%w: %w", ErrPrerequisiteMissing, err)
		}
		return translator.NewRESTBackend(translator.RESTConfig{
			Region:        cfg.AWS.Region,
			SourceLang:    cfg.Source.Lang,
			MaxChunkBytes: cfg.AWS.MaxChunkBytes,
			Mode:          mode,
		}, creds), nil

	case config.BackendPrompt:
		if cfg.LLM.APIKey == "" {
			return nil, fmt.Errorf("%w: LLM_API_KEY is not set", ErrPrerequisiteMissing)
		}
		client, err := llm.NewClient(&llm.Config{
			APIKey:      cfg.LLM.APIKey,
			APIURL:      cfg.LLM.APIURL,
			Model:       cfg.LLM.Model,
			MaxTokens:   cfg.LLM.MaxTokens,
			Temperature: cfg.LLM.Temperature,
			Timeout:     cfg.LLM.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrPrerequisiteMissing, err)
		}
		return translator.NewPromptBackend(client, cfg.LLM.BatchBlocks, mode), nil

	default:
		return nil, fmt.Errorf("%w: unknown backend %q", ErrPrerequisiteMissing, cfg.Backend)
	}
}

// RunOnce scans, enumerates and executes the full job set, then renders the
// report. The returned report is complete even when some jobs failed; the
// error is reserved for runs that could not start.
func (s *Service) RunOnce(ctx context.Context) (scheduler.Report, error) {
	files, err := s.scanner.Scan()
	if err != nil {
		return scheduler.Report{}, err
	}
	if len(files) == 0 {
		return scheduler.Report{}, fmt.Errorf("%w (suffix %s)", ErrNoInputFiles, s.scanner.SourceSuffix())
	}

	jobs := scheduler.Enumerate(files, s.cfg.Targets, s.cfg.Source.Lang)
	log.Info("Translating %d file(s) into %d language(s) with backend %q, %d worker(s)",
		len(files), len(s.cfg.Targets), s.backend.Name(), s.cfg.Workers())

	sched := scheduler.New(s.backend, s.cfg.Workers(), s.cfg.Run.ProgressEvery)
	report := sched.RunAll(ctx, jobs)

	log.Info("Run finished:\n%s", report.RenderReport())
	return report, nil
}
