package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"taskdeck/internal/ui"
)

func statsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress and statistics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := newApp(cmd.Context())
			if err != nil {
				return err
			}
			tr := app.tr
			s := app.store.Statistics()
			p := app.store.ProgressToday()

			lines := []string{
				ui.TitleStyle.Render(tr.T("stats.title")),
				"",
				tr.T("progress.title") + "  " + ui.ProgressBar(p.Completed, p.Total, 24) + fmt.Sprintf("  %d%%", p.Percent),
				"",
				fmt.Sprintf("%s: %d   %s: %d   %s: %d%%   %s: %d",
					tr.T("stats.total"), s.Total,
					tr.T("stats.completed"), s.Completed,
					tr.T("stats.completionRate"), s.CompletionRate,
					tr.T("stats.thisWeek"), s.CreatedThisWeek),
				"",
			}

			days := []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}
			for i, d := range days {
				bar := strings.Repeat("▇", s.WeekHeights[i]/10)
				lines = append(lines, fmt.Sprintf("%s %-10s %d",
					ui.MutedStyle.Render(d), ui.AccentStyle.Render(bar), s.Week[i]))
			}

			ui.Panel(lines)
			return nil
		},
	}
}
