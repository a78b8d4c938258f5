package service

import (
	"context"
	"fmt"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/singleflight"

	"subtrans/pkg/log"
)

// Watch runs the translation pass on the configured cron schedule until the
// context is cancelled. Ticks that arrive while a pass is still running are
// coalesced into it instead of stacking up.
func (s *Service) Watch(ctx context.Context) error {
	var inflight singleflight.Group

	c := cron.New()
	_, err := c.AddFunc(s.cfg.Run.CronExpr, func() {
		_, err, shared := inflight.Do("run", func() (interface{}, error) {
			report, err := s.RunOnce(ctx)
			if err != nil {
				return nil, err
			}
			if !report.OK() {
				log.Warn("Pass completed with %d failed job(s)", report.Failed)
			}
			return nil, nil
		})
		if shared {
			log.Warn("Previous pass still running, tick coalesced")
		}
		if err != nil {
			log.Error("Scheduled pass failed: %v; advice: %s", err, Advice(err))
		}
	})
	if err != nil {
		return fmt.Errorf("invalid cron expression %q: %w", s.cfg.Run.CronExpr, err)
	}

	log.Info("Watching on schedule %q", s.cfg.Run.CronExpr)
	c.Start()

	<-ctx.Done()
	stopped := c.Stop()
	<-stopped.Done()
	return nil
}
