package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"subtrans/internal/service"
	"subtrans/pkg/log"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Translate the library once and exit",
	Long: `Scans the configured directories, translates every missing
(file, language) pair and prints a per-job report. The exit status is zero
only when no job failed and at least one source file was found.`,
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

		report, err := svc.RunOnce(cmd.Context())
		if err != nil {
			log.Error("Run aborted: %v; advice: %s", err, service.Advice(err))
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), report.RenderReport())
		if !report.OK() {
			return fmt.Errorf("%d of %d job(s) failed", report.Failed, report.Total())
		}
		return nil
	},
}
