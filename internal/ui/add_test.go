package ui

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/mgilabert/lectio/internal/config"
	"github.com/mgilabert/lectio/internal/schedule"
)

func newTestApp(t *testing.T) *App {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "lectio.db")
	a := NewApp(cfg)
	t.Cleanup(func() {
		_ = a.Close()
	})
	return a
}

func seedEnrollment(t *testing.T, a *App) *schedule.Enrollment {
	t.Helper()
	if err := a.ensureStore(); err != nil {
		t.Fatalf("opening store: %v", err)
	}
	ctx := context.Background()

	student := &schedule.Student{Name: "Ana"}
	if err := a.store.CreateStudent(ctx, student); err != nil {
		t.Fatalf("creating student: %v", err)
	}
	subject := &schedule.Subject{Name: "Math", Color: "#8caaee"}
	if err := a.store.CreateSubject(ctx, subject); err != nil {
		t.Fatalf("creating subject: %v", err)
	}
	enrollment := &schedule.Enrollment{StudentID: student.ID, SubjectID: subject.ID}
	if err := a.store.CreateEnrollment(ctx, enrollment); err != nil {
		t.Fatalf("creating enrollment: %v", err)
	}
	return enrollment
}

func TestAddSession_ExplicitTarget(t *testing.T) {
	a := newTestApp(t)
	enrollment := seedEnrollment(t, a)

	a.root.SetArgs([]string{"add", "session", enrollment.ID, "--day=wednesday", "--start=16:00"})
	if err := a.Execute(); err != nil {
		t.Fatalf("add session: %v", err)
	}

	sessions, err := a.store.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	s := sessions[0]
	if s.Weekday != 2 || s.StartsAt != "16:00" || s.EndsAt != "17:00" {
		t.Errorf("session = %s %s-%s, want Wednesday 16:00-17:00",
			schedule.WeekdayName(s.Weekday), s.StartsAt, s.EndsAt)
	}
	if s.Lane != 1 || !s.Pinned {
		t.Errorf("lane = %d pinned = %v, want pinned lane 1", s.Lane, s.Pinned)
	}
	if len(s.ParticipantRefs) != 1 || s.ParticipantRefs[0] != enrollment.ID {
		t.Errorf("refs = %v, want [%s]", s.ParticipantRefs, enrollment.ID)
	}
}

func TestAddSession_AutoPlacement(t *testing.T) {
	a := newTestApp(t)
	enrollment := seedEnrollment(t, a)

	a.root.SetArgs([]string{"add", "session", enrollment.ID, "--slots=3"})
	if err := a.Execute(); err != nil {
		t.Fatalf("add session: %v", err)
	}

	sessions, err := a.store.ListSessions(context.Background())
	if err != nil {
		t.Fatalf("ListSessions: %v", err)
	}
	if len(sessions) != 1 {
		t.Fatalf("len(sessions) = %d, want 1", len(sessions))
	}
	s := sessions[0]
	if s.Weekday != 0 || s.StartsAt != "09:00" || s.EndsAt != "10:30" {
		t.Errorf("session = %s %s-%s, want Monday 09:00-10:30",
			schedule.WeekdayName(s.Weekday), s.StartsAt, s.EndsAt)
	}
}

func TestAddSession_DisplacesOccupant(t *testing.T) {
	a := newTestApp(t)
	first := seedEnrollment(t, a)
	ctx := context.Background()

	existing, err := schedule.NewSession(2, "16:00", "17:00", []string{first.ID})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	existing.Lane = 1
	if err := a.store.CreateSession(ctx, existing); err != nil {
		t.Fatalf("CreateSession: %v", err)
	}

	second := &schedule.Enrollment{StudentID: first.StudentID, SubjectID: first.SubjectID}
	if err := a.store.CreateEnrollment(ctx, second); err != nil {
		t.Fatalf("creating enrollment: %v", err)
	}

	a.root.SetArgs([]string{"add", "session", second.ID, "--day=2", "--start=16:00"})
	if err := a.Execute(); err != nil {
		t.Fatalf("add session: %v", err)
	}

	moved, err := a.store.GetSession(ctx, existing.ID)
	if err != nil {
		t.Fatalf("GetSession: %v", err)
	}
	if moved.Lane != 2 {
		t.Errorf("displaced lane = %d, want 2", moved.Lane)
	}
	if moved.StartsAt != "16:00" || moved.EndsAt != "17:00" {
		t.Errorf("displaced times = %s-%s, want unchanged 16:00-17:00", moved.StartsAt, moved.EndsAt)
	}
}

func TestParseWeekday(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"monday", 0, false},
		{"Sunday", 6, false},
		{"WEDNESDAY", 2, false},
		{"0", 0, false},
		{"6", 6, false},
		{"7", 0, true},
		{"-1", 0, true},
		{"someday", 0, true},
	}
	for _, tt := range tests {
		got, err := parseWeekday(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("parseWeekday(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if err == nil && got != tt.want {
			t.Errorf("parseWeekday(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		minutes int
		want    string
	}{
		{30, "30m"},
		{120, "2h"},
		{90, "1h 30m"},
	}
	for _, tt := range tests {
		if got := formatDuration(tt.minutes); got != tt.want {
			t.Errorf("formatDuration(%d) = %q, want %q", tt.minutes, got, tt.want)
		}
	}
}

func TestShortID(t *testing.T) {
	if got := shortID("0123456789abcdef"); got != "01234567" {
		t.Errorf("shortID = %q, want 01234567", got)
	}
	if got := shortID("abc"); got != "abc" {
		t.Errorf("shortID = %q, want abc", got)
	}
}
