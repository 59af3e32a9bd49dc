package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgilabert/lectio/internal/schedule"
	"github.com/mgilabert/lectio/internal/summary"
)

func (a *App) summaryCmd() *cobra.Command {
	var noColor bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Show weekly workload statistics",
		Long: `Display totals for the weekly template: sessions and hours per
weekday and per subject, plus the busiest day.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if noColor {
				DisableColor()
			}
			if err := a.ensureStore(); err != nil {
				return err
			}

			s, err := summary.BuildWeekSummary(context.Background(), a.store, a.store)
			if err != nil {
				return fmt.Errorf("building week summary: %w", err)
			}

			if s.TotalSessions == 0 {
				fmt.Println("No sessions scheduled.")
				return nil
			}

			width := termWidth()
			if width > 74 {
				width = 74
			}
			rule := strings.Repeat("─", width)

			fmt.Printf("\n  %s\n", formatHeader("WEEKLY TEMPLATE"))
			fmt.Println(rule)
			for _, d := range s.Weekdays {
				if d.Sessions == 0 {
					continue
				}
				line := fmt.Sprintf("  %-10s %2d session(s)  %s",
					schedule.WeekdayName(d.Weekday), d.Sessions, formatDuration(d.Minutes))
				if d.Weekday == s.BusiestWeekday {
					line += "  " + formatWarn("busiest")
				}
				fmt.Println(line)
			}

			if len(s.Subjects) > 0 {
				fmt.Println(rule)
				fmt.Printf("  %s\n", formatHeader("BY SUBJECT"))
				for _, sub := range s.Subjects {
					fmt.Printf("  %-14s %2d session(s)  %s\n",
						sub.SubjectName, sub.Sessions, formatDuration(sub.Minutes))
				}
			}

			fmt.Println(rule)
			totals := fmt.Sprintf("  Total: %d session(s), %s", s.TotalSessions, formatDuration(s.TotalMinutes))
			if s.GroupSessions > 0 {
				totals += fmt.Sprintf(" (%d group)", s.GroupSessions)
			}
			fmt.Println(formatStats(totals))

			return nil
		},
	}

	cmd.Flags().BoolVar(&noColor, "no-color", false, "Disable colored output")

	return cmd
}

// formatDuration renders minutes as hours and minutes.
func formatDuration(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh %dm", h, m)
	}
}
