package scheduler

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// RenderReport renders the aggregate as a table plus a one-line summary,
// suitable for the end of a run.
func (r Report) RenderReport() string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"File", "Lang", "Status", "Elapsed", "Error"})

	for _, result := range r.Results {
		errText := ""
		if result.Err != nil {
			errText = result.Err.Error()
		}
		tw.AppendRow(table.Row{
			filepath.Base(result.Job.SourcePath),
			result.Job.TargetLang,
			string(result.Status),
			result.Elapsed.Round(time.Millisecond).String(),
			errText,
		})
	}

	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 4, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 5, WidthMax: 60},
	})

	return tw.Render() + "\n" + fmt.Sprintf(
		"%d jobs: %d succeeded, %d skipped, %d failed in %s",
		r.Total(), r.Succeeded, r.Skipped, r.Failed, r.Elapsed.Round(time.Millisecond))
}
