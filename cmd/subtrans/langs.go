package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"subtrans/internal/langs"
)

var langsCmd = &cobra.Command{
	Use:   "langs [code ...]",
	Short: "Show how language codes resolve",
	Long: `Normalizes each given language code and prints its canonical form
and English display name. With no arguments, the configured TARGET_LANGS
are shown. Useful for checking a code before pointing a long run at it.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		codes := args
		if len(codes) == 0 {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			codes = cfg.Targets
		}

		normalized, err := langs.NormalizeAll(codes)
		if err != nil {
			return err
		}

		tw := table.NewWriter()
		tw.SetStyle(table.StyleRounded)
		tw.AppendHeader(table.Row{"Code", "Name"})
		for _, code := range normalized {
			tw.AppendRow(table.Row{code, langs.Name(code)})
		}
		fmt.Fprintln(cmd.OutOrStdout(), tw.Render())
		return nil
	},
}
