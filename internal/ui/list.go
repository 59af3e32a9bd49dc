package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgilabert/lectio/internal/schedule"
)

func (a *App) listCmd() *cobra.Command {
	var day string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the weekly timetable",
		Long: `List all scheduled sessions grouped by weekday.

With --day, lists a single weekday.`,
		Example: `  lectio list
  lectio list --day=wednesday`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			ctx := context.Background()

			var sessions []*schedule.Session
			var err error
			if day != "" {
				weekday, werr := parseWeekday(day)
				if werr != nil {
					return werr
				}
				sessions, err = a.store.ListSessionsByWeekday(ctx, weekday)
			} else {
				sessions, err = a.store.ListSessions(ctx)
			}
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}

			if len(sessions) == 0 {
				fmt.Println("No sessions scheduled.")
				return nil
			}

			currentDay := -1
			for _, s := range sessions {
				if s.Weekday != currentDay {
					if currentDay != -1 {
						fmt.Println()
					}
					fmt.Println(formatHeader(fmt.Sprintf("=== %s ===", schedule.WeekdayName(s.Weekday))))
					currentDay = s.Weekday
				}

				line := fmt.Sprintf("  %s-%s  lane %d  %s  %s",
					s.StartsAt, s.EndsAt, s.Lane, shortID(s.ID), a.sessionLabel(ctx, s))
				if s.Pinned {
					line += "  (pinned)"
				}
				fmt.Println(formatSession(line, s.Pinned))
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Weekday (monday..sunday or 0..6)")

	return cmd
}

// sessionLabel resolves participant names for a session line.
func (a *App) sessionLabel(ctx context.Context, s *schedule.Session) string {
	parts := make([]string, 0, len(s.ParticipantRefs))
	for _, ref := range s.ParticipantRefs {
		label, err := a.store.LabelFor(ctx, ref)
		if err != nil {
			parts = append(parts, shortID(ref))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s/%s", label.StudentName, label.SubjectName))
	}
	return strings.Join(parts, ", ")
}

// shortID abbreviates a UUID for display.
func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
