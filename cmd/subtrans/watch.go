package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"subtrans/internal/service"
	"subtrans/pkg/log"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Translate on a cron schedule until interrupted",
	Long: `Runs the translation pass on the CRON_EXPR schedule. New files that
appear between ticks are picked up on the next pass; already-translated
pairs are skipped, so repeated passes are cheap. Stops on SIGINT/SIGTERM.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		svc, err := service.New(cfg)
		if err != nil {
			log.Error("Cannot start: %v; advice: %s", err, service.Advice(err))
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return svc.Watch(ctx)
	},
}
