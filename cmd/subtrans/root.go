package main

import (
	"github.com/spf13/cobra"

	"subtrans/internal/config"
	"subtrans/pkg/log"
)

var rootCmd = &cobra.Command{
	Use:   "subtrans",
	Short: "Batch subtitle translator",
	Long: `subtrans scans directories for source-language SRT files and writes a
translated sibling file per target language. Configuration comes from the
environment (a .env file is honored); see the run command for the one-shot
mode and watch for the cron-driven mode.`,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.AddCommand(runCmd, watchCmd, langsCmd)
}

// loadConfig builds the run configuration and applies its log level before
// anything else logs.
func loadConfig() (*config.Config, error) {
	cfg, err := config.NewFromEnv()
	if err != nil {
		return nil, err
	}
	log.InitLogger(log.ParseLevel(cfg.LogLevel))
	return cfg, nil
}
