package schedule

import "context"

// Placement is one session position change for batch updates. Create marks
// a placement that materializes a brand-new session (a dropped unscheduled
// participant) rather than updating an existing one.
type Placement struct {
	SessionID string
	Weekday   int
	StartsAt  string
	EndsAt    string
	Lane      int
	Pinned    bool
	Create    bool
	// ParticipantRefs is only set for Create placements.
	ParticipantRefs []string
}

// Repository defines the storage interface for sessions.
// The grid core never touches it; the caller persists committed mutations.
type Repository interface {
	// CreateSession adds a new session.
	CreateSession(ctx context.Context, s *Session) error

	// GetSession retrieves a session by ID.
	// Returns ErrSessionNotFound if no such session exists.
	GetSession(ctx context.Context, id string) (*Session, error)

	// DeleteSession removes a session.
	DeleteSession(ctx context.Context, id string) error

	// ListSessions returns every session on the weekly grid.
	ListSessions(ctx context.Context) ([]*Session, error)

	// ListSessionsByWeekday returns all sessions for one weekday.
	ListSessionsByWeekday(ctx context.Context, weekday int) ([]*Session, error)

	// ApplyPlacements applies a committed drag's placements atomically.
	ApplyPlacements(ctx context.Context, placements []Placement) error

	// Close releases any resources held by the repository.
	Close() error
}

// Roster defines lookups used for display text and block colors only.
type Roster interface {
	CreateStudent(ctx context.Context, st *Student) error
	CreateSubject(ctx context.Context, su *Subject) error
	CreateEnrollment(ctx context.Context, e *Enrollment) error

	// ListEnrollments returns all enrollments.
	ListEnrollments(ctx context.Context) ([]*Enrollment, error)

	// UnscheduledEnrollments returns enrollments not referenced by any session.
	UnscheduledEnrollments(ctx context.Context) ([]*Enrollment, error)

	// LabelFor resolves an enrollment ref to display data.
	// Returns ErrEnrollmentNotFound for unknown refs.
	LabelFor(ctx context.Context, enrollmentID string) (*ParticipantLabel, error)
}
