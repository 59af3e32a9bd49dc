package ui

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mgilabert/lectio/internal/grid"
	"github.com/mgilabert/lectio/internal/schedule"
)

func (a *App) addCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add students, subjects, enrollments or sessions",
	}

	cmd.AddCommand(a.addStudentCmd())
	cmd.AddCommand(a.addSubjectCmd())
	cmd.AddCommand(a.addEnrollCmd())
	cmd.AddCommand(a.addSessionCmd())

	return cmd
}

func (a *App) addStudentCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "student [name]",
		Short: "Register a new student",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			st := &schedule.Student{Name: args[0]}
			if err := a.store.CreateStudent(context.Background(), st); err != nil {
				return fmt.Errorf("creating student: %w", err)
			}

			fmt.Printf("Created student %s: %s\n", st.ID, st.Name)
			return nil
		},
	}
}

func (a *App) addSubjectCmd() *cobra.Command {
	var subjectColor string

	cmd := &cobra.Command{
		Use:   "subject [name]",
		Short: "Register a new subject",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			su := &schedule.Subject{Name: args[0], Color: subjectColor}
			if err := a.store.CreateSubject(context.Background(), su); err != nil {
				return fmt.Errorf("creating subject: %w", err)
			}

			fmt.Printf("Created subject %s: %s (%s)\n", su.ID, su.Name, su.Color)
			return nil
		},
	}

	cmd.Flags().StringVar(&subjectColor, "color", "", "Block color as #rrggbb (default: theme block color)")

	return cmd
}

func (a *App) addEnrollCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "enroll [student-id] [subject-id]",
		Short: "Enroll a student in a subject",
		Args:  cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			e := &schedule.Enrollment{StudentID: args[0], SubjectID: args[1]}
			if err := a.store.CreateEnrollment(context.Background(), e); err != nil {
				return fmt.Errorf("creating enrollment: %w", err)
			}

			fmt.Printf("Created enrollment %s\n", e.ID)
			return nil
		},
	}
}

func (a *App) addSessionCmd() *cobra.Command {
	var (
		day   string
		start string
		slots int
	)

	cmd := &cobra.Command{
		Use:   "session [enrollment-id]",
		Short: "Schedule a session for an enrollment",
		Long: `Schedule a weekly session for an enrollment.

Without --day and --start, the session goes into the first open slot
of the week. With an explicit target, any session already occupying
that spot is pushed down a lane; times never change.`,
		Example: `  lectio add session 4f1c... --day=monday --start=16:00
  lectio add session 4f1c... --slots=3`,
		Args: cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			ctx := context.Background()

			sessions, err := a.store.ListSessions(ctx)
			if err != nil {
				return fmt.Errorf("listing sessions: %w", err)
			}

			gridCfg := a.gridConfig()
			weekday, startsAt, lane := -1, start, 1
			if day == "" && start == "" {
				d, at, l, ok := grid.FindOpenSlot(gridCfg, sessions, slots)
				if !ok {
					return fmt.Errorf("no open slot for %d slot(s)", slots)
				}
				weekday, startsAt, lane = d, at, l
			} else {
				weekday, err = parseWeekday(day)
				if err != nil {
					return err
				}
				if startsAt == "" {
					return fmt.Errorf("--start is required with --day")
				}
			}

			slotIndex, err := gridCfg.SlotIndex(startsAt)
			if err != nil {
				return fmt.Errorf("invalid start time: %w", err)
			}

			// Drop the enrollment through the resolution engine so the
			// lane choice and any displacements match the TUI.
			ctrl := grid.NewController(gridCfg)
			ctrl.SetSessions(sessions)
			handle, err := ctrl.BeginParticipantDrag(args[0], slots)
			if err != nil {
				return err
			}
			if _, err := ctrl.UpdateDragTarget(handle, slotIndex*gridCfg.SlotWidthPX, (lane-1)*gridCfg.LaneHeightPX, weekday); err != nil {
				return err
			}
			mutations, err := ctrl.CommitDrag(handle)
			if err != nil {
				return err
			}
			if len(mutations) == 0 {
				return fmt.Errorf("target %s %s is outside the day window",
					schedule.WeekdayName(weekday), startsAt)
			}
			if err := a.store.ApplyPlacements(ctx, placementsFromMutations(mutations)); err != nil {
				return fmt.Errorf("applying placements: %w", err)
			}

			created := mutations[0]
			fmt.Printf("Scheduled %s %s-%s (lane %d)\n",
				schedule.WeekdayName(created.Weekday), created.StartsAt, created.EndsAt, created.Lane)
			if moved := len(mutations) - 1; moved > 0 {
				fmt.Println(formatMuted(fmt.Sprintf("Moved %d colliding session(s) to other lanes", moved)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&day, "day", "", "Weekday (monday..sunday or 0..6)")
	cmd.Flags().StringVar(&start, "start", "", "Start time (HH:MM on the half hour)")
	cmd.Flags().IntVar(&slots, "slots", 2, "Duration in half-hour slots")

	return cmd
}

// gridConfig builds the engine geometry from the loaded config.
func (a *App) gridConfig() grid.Config {
	dayStart, dayEnd := a.config.DayWindow()
	return grid.Config{
		DayStartMinutes: dayStart,
		DayEndMinutes:   dayEnd,
		SlotWidthPX:     a.config.Grid.SlotWidthPX,
		LaneHeightPX:    a.config.Grid.LaneHeightPX,
		MinBlockWidthPX: a.config.Grid.MinBlockWidthPX,
		ReserveLanes:    a.config.Grid.ReserveLanes,
	}
}

// parseWeekday accepts a weekday name or a Monday-first index.
func parseWeekday(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n < 0 || n > 6 {
			return 0, fmt.Errorf("weekday out of range: %d", n)
		}
		return n, nil
	}
	for d := 0; d <= 6; d++ {
		if strings.EqualFold(schedule.WeekdayName(d), s) {
			return d, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday: %q", s)
}

// placementsFromMutations converts engine mutations into repository
// placements.
func placementsFromMutations(mutations []grid.Mutation) []schedule.Placement {
	placements := make([]schedule.Placement, 0, len(mutations))
	for _, mut := range mutations {
		placements = append(placements, schedule.Placement{
			SessionID:       mut.SessionID,
			Weekday:         mut.Weekday,
			StartsAt:        mut.StartsAt,
			EndsAt:          mut.EndsAt,
			Lane:            mut.Lane,
			Pinned:          mut.Pinned,
			Create:          mut.Create,
			ParticipantRefs: mut.ParticipantRefs,
		})
	}
	return placements
}
