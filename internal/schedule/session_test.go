package schedule

import (
	"errors"
	"testing"
)

func TestNewSession(t *testing.T) {
	s, err := NewSession(0, "09:00", "10:30", []string{"enr-1", "enr-2"})
	if err != nil {
		t.Fatalf("NewSession() unexpected error: %v", err)
	}
	if s.ID == "" {
		t.Errorf("ID is empty")
	}
	if s.Weekday != 0 || s.StartsAt != "09:00" || s.EndsAt != "10:30" {
		t.Errorf("session = %+v", s)
	}
	if s.CreatedAt.IsZero() {
		t.Errorf("CreatedAt is zero")
	}
	if s.Lane != 0 || s.Pinned {
		t.Errorf("new session must start unplaced, got lane=%d pinned=%v", s.Lane, s.Pinned)
	}
}

func TestNewSession_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		weekday int
		starts  string
		ends    string
		refs    []string
		wantErr error
	}{
		{"weekday high", 7, "09:00", "10:00", []string{"e"}, ErrInvalidWeekday},
		{"weekday negative", -1, "09:00", "10:00", []string{"e"}, ErrInvalidWeekday},
		{"bad start", 0, "9:0", "10:00", []string{"e"}, ErrInvalidTimeFormat},
		{"bad end", 0, "09:00", "10:15", []string{"e"}, ErrInvalidTimeFormat},
		{"end equals start", 0, "10:00", "10:00", []string{"e"}, ErrEndBeforeStart},
		{"end before start", 0, "10:00", "09:30", []string{"e"}, ErrEndBeforeStart},
		{"no participants", 0, "09:00", "10:00", nil, ErrNoParticipants},
		{"duplicate participants", 0, "09:00", "10:00", []string{"e", "e"}, ErrDuplicateParticipant},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSession(tt.weekday, tt.starts, tt.ends, tt.refs)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("NewSession() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestSession_Duration(t *testing.T) {
	s, err := NewSession(2, "14:00", "16:30", []string{"e"})
	if err != nil {
		t.Fatalf("NewSession() unexpected error: %v", err)
	}
	if got := s.Duration(); got != 150 {
		t.Errorf("Duration() = %d, want 150", got)
	}
}

func TestSession_OverlapsWith(t *testing.T) {
	a, _ := NewSession(0, "09:00", "10:00", []string{"e1"})
	b, _ := NewSession(0, "09:30", "10:30", []string{"e2"})
	c, _ := NewSession(1, "09:30", "10:30", []string{"e3"})

	if !a.OverlapsWith(b) {
		t.Errorf("same-weekday overlapping sessions reported disjoint")
	}
	if a.OverlapsWith(c) {
		t.Errorf("sessions on different weekdays reported overlapping")
	}
	if a.OverlapsWith(nil) {
		t.Errorf("OverlapsWith(nil) = true")
	}
}

func TestSession_AddParticipant(t *testing.T) {
	s, _ := NewSession(0, "09:00", "10:00", []string{"e1"})

	if err := s.AddParticipant("e2"); err != nil {
		t.Fatalf("AddParticipant() unexpected error: %v", err)
	}
	if !s.HasParticipant("e2") {
		t.Errorf("HasParticipant(e2) = false after add")
	}
	if !s.IsGroup() {
		t.Errorf("IsGroup() = false with two participants")
	}
	if err := s.AddParticipant("e1"); !errors.Is(err, ErrDuplicateParticipant) {
		t.Errorf("AddParticipant(dup) error = %v, want ErrDuplicateParticipant", err)
	}
}

func TestSession_Clone(t *testing.T) {
	s, _ := NewSession(0, "09:00", "10:00", []string{"e1"})
	s.Lane = 2
	s.Pinned = true

	cp := s.Clone()
	if cp.ID != s.ID || cp.Lane != 2 || !cp.Pinned {
		t.Errorf("Clone() = %+v, want a field-for-field copy", cp)
	}

	cp.ParticipantRefs[0] = "other"
	if s.ParticipantRefs[0] != "e1" {
		t.Errorf("clone shares the participant slice with the original")
	}
}

func TestWeekdayName(t *testing.T) {
	tests := []struct {
		weekday int
		want    string
	}{
		{0, "Monday"},
		{4, "Friday"},
		{6, "Sunday"},
		{7, "?"},
		{-1, "?"},
	}
	for _, tt := range tests {
		if got := WeekdayName(tt.weekday); got != tt.want {
			t.Errorf("WeekdayName(%d) = %q, want %q", tt.weekday, got, tt.want)
		}
	}
}
