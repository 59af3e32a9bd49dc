// Package commands provides TUI command constructors and message types.
package commands

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgilabert/lectio/internal/schedule"
	"github.com/mgilabert/lectio/internal/summary"
)

// SessionsLoadedMsg is sent when the weekly session list is loaded.
type SessionsLoadedMsg struct {
	Sessions []*schedule.Session
}

// RosterLoadedMsg is sent when roster display data is loaded.
type RosterLoadedMsg struct {
	Unscheduled []*schedule.Enrollment
	Labels      map[string]*schedule.ParticipantLabel
}

// PlacementsAppliedMsg is sent after a committed drop is persisted.
type PlacementsAppliedMsg struct {
	Count int
}

// SessionDeletedMsg is sent after a session is removed.
type SessionDeletedMsg struct {
	ID string
}

// SummaryMsg is sent when week summary data is ready.
type SummaryMsg struct {
	Summary *summary.WeekSummary
}

// ErrMsg is sent when an error occurs.
type ErrMsg struct {
	Err error
}

// StatusMsgCmd is sent for temporary status messages.
type StatusMsgCmd struct {
	Msg string
}

// ClearStatusMsg is sent to clear the status message.
type ClearStatusMsg struct{}

// LoadSessions loads the full weekly template.
func LoadSessions(repo schedule.Repository) tea.Cmd {
	return func() tea.Msg {
		sessions, err := repo.ListSessions(context.Background())
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading sessions: %w", err)}
		}
		return SessionsLoadedMsg{Sessions: sessions}
	}
}

// LoadRoster loads unscheduled enrollments plus display labels for every
// enrollment referenced anywhere.
func LoadRoster(roster schedule.Roster) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		enrollments, err := roster.ListEnrollments(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading enrollments: %w", err)}
		}

		labels := make(map[string]*schedule.ParticipantLabel, len(enrollments))
		for _, e := range enrollments {
			label, err := roster.LabelFor(ctx, e.ID)
			if err != nil {
				return ErrMsg{Err: fmt.Errorf("resolving enrollment %s: %w", e.ID, err)}
			}
			labels[e.ID] = label
		}

		unscheduled, err := roster.UnscheduledEnrollments(ctx)
		if err != nil {
			return ErrMsg{Err: fmt.Errorf("loading unscheduled enrollments: %w", err)}
		}

		return RosterLoadedMsg{Unscheduled: unscheduled, Labels: labels}
	}
}

// ApplyPlacements persists a committed drop's placements.
func ApplyPlacements(repo schedule.Repository, placements []schedule.Placement) tea.Cmd {
	return func() tea.Msg {
		if err := repo.ApplyPlacements(context.Background(), placements); err != nil {
			return ErrMsg{Err: fmt.Errorf("applying placements: %w", err)}
		}
		return PlacementsAppliedMsg{Count: len(placements)}
	}
}

// DeleteSession removes a session.
func DeleteSession(repo schedule.Repository, id string) tea.Cmd {
	return func() tea.Msg {
		if err := repo.DeleteSession(context.Background(), id); err != nil {
			return ErrMsg{Err: fmt.Errorf("deleting session: %w", err)}
		}
		return SessionDeletedMsg{ID: id}
	}
}

// WeekSummary builds the weekly template summary.
func WeekSummary(repo schedule.Repository, roster schedule.Roster) tea.Cmd {
	return func() tea.Msg {
		s, err := summary.BuildWeekSummary(context.Background(), repo, roster)
		if err != nil {
			return ErrMsg{Err: err}
		}
		return SummaryMsg{Summary: s}
	}
}
