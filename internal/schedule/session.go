// Package schedule defines the core domain types for lectio.
package schedule

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Validation errors.
var (
	ErrInvalidWeekday       = errors.New("weekday must be between 0 (Monday) and 6 (Sunday)")
	ErrEndBeforeStart       = errors.New("end time must be after start time")
	ErrDuplicateParticipant = errors.New("participant is already in this session")
	ErrNoParticipants       = errors.New("session needs at least one participant")
)

// Domain errors.
var (
	ErrSessionNotFound = errors.New("session not found")
)

// Weekday names, Monday-first, indexed by Session.Weekday.
var weekdayNames = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// WeekdayName returns the Monday-first name for a weekday index.
func WeekdayName(weekday int) string {
	if weekday < 0 || weekday > 6 {
		return "?"
	}
	return weekdayNames[weekday]
}

// Session represents a scheduled class occurrence on the weekly grid.
type Session struct {
	ID              string
	Weekday         int    // 0=Monday .. 6=Sunday
	StartsAt        string // "HH:MM", grid-aligned
	EndsAt          string // "HH:MM", grid-aligned, after StartsAt
	ParticipantRefs []string
	Lane            int  // vertical lane >= 1, assigned by layout
	Pinned          bool // lane was set by an explicit drag-drop commit
	CreatedAt       time.Time
}

// NewSession creates a Session with validation. Times must be grid-aligned
// "HH:MM" strings with end strictly after start; participantRefs must be
// non-empty and free of duplicates.
func NewSession(weekday int, startsAt, endsAt string, participantRefs []string) (*Session, error) {
	if weekday < 0 || weekday > 6 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidWeekday, weekday)
	}
	if _, err := ToMinutes(startsAt); err != nil {
		return nil, fmt.Errorf("start time: %w", err)
	}
	if _, err := ToMinutes(endsAt); err != nil {
		return nil, fmt.Errorf("end time: %w", err)
	}
	if endsAt <= startsAt {
		return nil, ErrEndBeforeStart
	}
	if len(participantRefs) == 0 {
		return nil, ErrNoParticipants
	}
	seen := make(map[string]bool, len(participantRefs))
	refs := make([]string, 0, len(participantRefs))
	for _, ref := range participantRefs {
		if seen[ref] {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateParticipant, ref)
		}
		seen[ref] = true
		refs = append(refs, ref)
	}

	return &Session{
		ID:              uuid.NewString(),
		Weekday:         weekday,
		StartsAt:        startsAt,
		EndsAt:          endsAt,
		ParticipantRefs: refs,
		CreatedAt:       time.Now(),
	}, nil
}

// Duration returns the session duration in minutes.
func (s *Session) Duration() int {
	start, err1 := ToMinutes(s.StartsAt)
	end, err2 := ToMinutes(s.EndsAt)
	if err1 != nil || err2 != nil {
		return 0
	}
	return end - start
}

// OverlapsWith returns true if this session overlaps another in time
// on the same weekday.
func (s *Session) OverlapsWith(other *Session) bool {
	if other == nil || s.Weekday != other.Weekday {
		return false
	}
	return Overlaps(s.StartsAt, s.EndsAt, other.StartsAt, other.EndsAt)
}

// HasParticipant returns true if the enrollment ref is part of this session.
func (s *Session) HasParticipant(ref string) bool {
	for _, r := range s.ParticipantRefs {
		if r == ref {
			return true
		}
	}
	return false
}

// AddParticipant appends an enrollment ref.
// Returns ErrDuplicateParticipant if the ref is already present.
func (s *Session) AddParticipant(ref string) error {
	if s.HasParticipant(ref) {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, ref)
	}
	s.ParticipantRefs = append(s.ParticipantRefs, ref)
	return nil
}

// Clone returns a copy of the session with its own participant slice.
// Layout and conflict resolution never mutate caller-owned sessions;
// they work on clones and hand back updated records.
func (s *Session) Clone() *Session {
	cp := *s
	cp.ParticipantRefs = append([]string(nil), s.ParticipantRefs...)
	return &cp
}

// IsGroup returns true if the session has more than one participant.
func (s *Session) IsGroup() bool {
	return len(s.ParticipantRefs) > 1
}
