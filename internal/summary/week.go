// Package summary provides shared week summary utilities.
package summary

import (
	"context"
	"fmt"
	"sort"

	"github.com/mgilabert/lectio/internal/schedule"
)

// WeekdayStats holds aggregated data for one weekday.
type WeekdayStats struct {
	Weekday  int
	Sessions int
	Minutes  int
}

// SubjectStats holds aggregated minutes for one subject.
type SubjectStats struct {
	SubjectName string
	Sessions    int
	Minutes     int
}

// WeekSummary holds aggregated data for the weekly template.
type WeekSummary struct {
	TotalSessions int
	TotalMinutes  int
	GroupSessions int
	Weekdays      [7]WeekdayStats
	// BusiestWeekday is -1 for an empty week.
	BusiestWeekday int
	Subjects       []SubjectStats
}

// SummarizeWeek aggregates the weekly template from a session list.
func SummarizeWeek(sessions []*schedule.Session) *WeekSummary {
	s := &WeekSummary{BusiestWeekday: -1}
	for day := range s.Weekdays {
		s.Weekdays[day].Weekday = day
	}

	for _, sess := range sessions {
		if sess.Weekday < 0 || sess.Weekday > 6 {
			continue
		}
		mins := sess.Duration()
		s.TotalSessions++
		s.TotalMinutes += mins
		if sess.IsGroup() {
			s.GroupSessions++
		}
		s.Weekdays[sess.Weekday].Sessions++
		s.Weekdays[sess.Weekday].Minutes += mins
	}

	for day, stats := range s.Weekdays {
		if stats.Minutes == 0 {
			continue
		}
		if s.BusiestWeekday == -1 || stats.Minutes > s.Weekdays[s.BusiestWeekday].Minutes {
			s.BusiestWeekday = day
		}
	}

	return s
}

// BuildWeekSummary loads all sessions and aggregates them, resolving
// per-subject totals through the roster.
func BuildWeekSummary(ctx context.Context, repo schedule.Repository, roster schedule.Roster) (*WeekSummary, error) {
	sessions, err := repo.ListSessions(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching sessions: %w", err)
	}

	s := SummarizeWeek(sessions)

	bySubject := make(map[string]*SubjectStats)
	for _, sess := range sessions {
		mins := sess.Duration()
		for _, ref := range sess.ParticipantRefs {
			label, err := roster.LabelFor(ctx, ref)
			if err != nil {
				return nil, fmt.Errorf("resolving participant: %w", err)
			}
			st, ok := bySubject[label.SubjectName]
			if !ok {
				st = &SubjectStats{SubjectName: label.SubjectName}
				bySubject[label.SubjectName] = st
			}
			st.Sessions++
			st.Minutes += mins
		}
	}

	for _, st := range bySubject {
		s.Subjects = append(s.Subjects, *st)
	}
	sort.Slice(s.Subjects, func(i, j int) bool {
		if s.Subjects[i].Minutes != s.Subjects[j].Minutes {
			return s.Subjects[i].Minutes > s.Subjects[j].Minutes
		}
		return s.Subjects[i].SubjectName < s.Subjects[j].SubjectName
	})

	return s, nil
}
