// Package db provides SQLite storage implementation.
package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mgilabert/lectio/internal/schedule"
)

// SQLite implements schedule.Repository and schedule.Roster using SQLite.
type SQLite struct {
	db *sql.DB
}

// New creates a new SQLite repository and runs migrations.
func New(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	if _, err := db.Exec(`PRAGMA foreign_keys = ON`); err != nil {
		return nil, fmt.Errorf("enabling foreign keys: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// CreateSession adds a new session with its participants.
func (s *SQLite) CreateSession(ctx context.Context, sess *schedule.Session) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	query := `
		INSERT INTO sessions (id, weekday, starts_at, ends_at, lane, pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	_, err = tx.ExecContext(ctx, query,
		sess.ID,
		sess.Weekday,
		sess.StartsAt,
		sess.EndsAt,
		sess.Lane,
		boolToInt(sess.Pinned),
		sess.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting session: %w", err)
	}

	if err := insertParticipantsTx(ctx, tx, sess.ID, sess.ParticipantRefs); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// GetSession retrieves a session by ID.
// Returns schedule.ErrSessionNotFound if no such session exists.
func (s *SQLite) GetSession(ctx context.Context, id string) (*schedule.Session, error) {
	query := `
		SELECT id, weekday, starts_at, ends_at, lane, pinned, created_at
		FROM sessions
		WHERE id = ?
	`

	var (
		sess      schedule.Session
		pinned    int
		createdAt string
	)
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&sess.ID,
		&sess.Weekday,
		&sess.StartsAt,
		&sess.EndsAt,
		&sess.Lane,
		&pinned,
		&createdAt,
	)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("querying session: %w", err)
	}

	sess.Pinned = pinned != 0
	sess.CreatedAt, err = parseTimestamp(createdAt)
	if err != nil {
		return nil, fmt.Errorf("parsing created at: %w", err)
	}

	sess.ParticipantRefs, err = s.participantRefs(ctx, sess.ID)
	if err != nil {
		return nil, err
	}

	return &sess, nil
}

// DeleteSession removes a session and its participant rows.
func (s *SQLite) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, id)
	}
	return nil
}

// ListSessions returns every session on the weekly grid, ordered by
// weekday then start time.
func (s *SQLite) ListSessions(ctx context.Context) ([]*schedule.Session, error) {
	query := `
		SELECT id, weekday, starts_at, ends_at, lane, pinned, created_at
		FROM sessions
		ORDER BY weekday, starts_at, id
	`
	return s.querySessions(ctx, query)
}

// ListSessionsByWeekday returns all sessions for one weekday.
func (s *SQLite) ListSessionsByWeekday(ctx context.Context, weekday int) ([]*schedule.Session, error) {
	query := `
		SELECT id, weekday, starts_at, ends_at, lane, pinned, created_at
		FROM sessions
		WHERE weekday = ?
		ORDER BY starts_at, id
	`
	return s.querySessions(ctx, query, weekday)
}

// querySessions runs a session SELECT and loads participants for each row.
func (s *SQLite) querySessions(ctx context.Context, query string, args ...any) ([]*schedule.Session, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying sessions: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var sessions []*schedule.Session
	for rows.Next() {
		var (
			sess      schedule.Session
			pinned    int
			createdAt string
		)
		err := rows.Scan(
			&sess.ID,
			&sess.Weekday,
			&sess.StartsAt,
			&sess.EndsAt,
			&sess.Lane,
			&pinned,
			&createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning session: %w", err)
		}

		sess.Pinned = pinned != 0
		sess.CreatedAt, err = parseTimestamp(createdAt)
		if err != nil {
			return nil, fmt.Errorf("parsing created at: %w", err)
		}

		sessions = append(sessions, &sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}

	for _, sess := range sessions {
		sess.ParticipantRefs, err = s.participantRefs(ctx, sess.ID)
		if err != nil {
			return nil, err
		}
	}

	return sessions, nil
}

// participantRefs loads the enrollment refs for one session.
func (s *SQLite) participantRefs(ctx context.Context, sessionID string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT enrollment_id FROM session_participants WHERE session_id = ? ORDER BY enrollment_id`,
		sessionID)
	if err != nil {
		return nil, fmt.Errorf("querying participants: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var refs []string
	for rows.Next() {
		var ref string
		if err := rows.Scan(&ref); err != nil {
			return nil, fmt.Errorf("scanning participant: %w", err)
		}
		refs = append(refs, ref)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating participants: %w", err)
	}
	return refs, nil
}

// ApplyPlacements applies a committed drag's placements in one
// transaction: either every session lands on its new position or none do.
func (s *SQLite) ApplyPlacements(ctx context.Context, placements []schedule.Placement) error {
	if len(placements) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	updateStmt, err := tx.PrepareContext(ctx, `
		UPDATE sessions
		SET weekday = ?, starts_at = ?, ends_at = ?, lane = ?, pinned = ?
		WHERE id = ?
	`)
	if err != nil {
		return fmt.Errorf("preparing update: %w", err)
	}
	defer func() { _ = updateStmt.Close() }()

	for _, p := range placements {
		if p.Create {
			if err := insertSessionTx(ctx, tx, p); err != nil {
				return err
			}
			continue
		}

		result, err := updateStmt.ExecContext(ctx,
			p.Weekday, p.StartsAt, p.EndsAt, p.Lane, boolToInt(p.Pinned), p.SessionID)
		if err != nil {
			return fmt.Errorf("updating session %s: %w", p.SessionID, err)
		}
		rows, _ := result.RowsAffected()
		if rows == 0 {
			return fmt.Errorf("%w: %s", schedule.ErrSessionNotFound, p.SessionID)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing transaction: %w", err)
	}
	return nil
}

// insertSessionTx materializes a Create placement inside a transaction.
func insertSessionTx(ctx context.Context, tx *sql.Tx, p schedule.Placement) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO sessions (id, weekday, starts_at, ends_at, lane, pinned, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, p.SessionID, p.Weekday, p.StartsAt, p.EndsAt, p.Lane, boolToInt(p.Pinned),
		time.Now().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("inserting session %s: %w", p.SessionID, err)
	}
	return insertParticipantsTx(ctx, tx, p.SessionID, p.ParticipantRefs)
}

// insertParticipantsTx links enrollment refs to a session.
func insertParticipantsTx(ctx context.Context, tx *sql.Tx, sessionID string, refs []string) error {
	for _, ref := range refs {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO session_participants (session_id, enrollment_id) VALUES (?, ?)`,
			sessionID, ref)
		if err != nil {
			return fmt.Errorf("inserting participant %s: %w", ref, err)
		}
	}
	return nil
}

// CreateStudent adds a student, assigning an ID when missing.
func (s *SQLite) CreateStudent(ctx context.Context, st *schedule.Student) error {
	st.Name = strings.TrimSpace(st.Name)
	if st.Name == "" {
		return schedule.ErrEmptyName
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO students (id, name) VALUES (?, ?)`, st.ID, st.Name)
	if err != nil {
		return fmt.Errorf("inserting student: %w", err)
	}
	return nil
}

// CreateSubject adds a subject, assigning an ID when missing.
func (s *SQLite) CreateSubject(ctx context.Context, su *schedule.Subject) error {
	su.Name = strings.TrimSpace(su.Name)
	if su.Name == "" {
		return schedule.ErrEmptyName
	}
	if su.ID == "" {
		su.ID = uuid.NewString()
	}
	if su.Color == "" {
		su.Color = "#8caaee"
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO subjects (id, name, color) VALUES (?, ?, ?)`, su.ID, su.Name, su.Color)
	if err != nil {
		return fmt.Errorf("inserting subject: %w", err)
	}
	return nil
}

// CreateEnrollment links a student to a subject.
func (s *SQLite) CreateEnrollment(ctx context.Context, e *schedule.Enrollment) error {
	if err := s.requireStudent(ctx, e.StudentID); err != nil {
		return err
	}
	if err := s.requireSubject(ctx, e.SubjectID); err != nil {
		return err
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO enrollments (id, student_id, subject_id) VALUES (?, ?, ?)`,
		e.ID, e.StudentID, e.SubjectID)
	if err != nil {
		return fmt.Errorf("inserting enrollment: %w", err)
	}
	return nil
}

func (s *SQLite) requireStudent(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM students WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", schedule.ErrStudentNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("querying student: %w", err)
	}
	return nil
}

func (s *SQLite) requireSubject(ctx context.Context, id string) error {
	var one int
	err := s.db.QueryRowContext(ctx, `SELECT 1 FROM subjects WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", schedule.ErrSubjectNotFound, id)
	}
	if err != nil {
		return fmt.Errorf("querying subject: %w", err)
	}
	return nil
}

// ListEnrollments returns all enrollments.
func (s *SQLite) ListEnrollments(ctx context.Context) ([]*schedule.Enrollment, error) {
	return s.queryEnrollments(ctx, `
		SELECT id, student_id, subject_id FROM enrollments ORDER BY id
	`)
}

// UnscheduledEnrollments returns enrollments not referenced by any session.
func (s *SQLite) UnscheduledEnrollments(ctx context.Context) ([]*schedule.Enrollment, error) {
	return s.queryEnrollments(ctx, `
		SELECT id, student_id, subject_id
		FROM enrollments
		WHERE id NOT IN (SELECT enrollment_id FROM session_participants)
		ORDER BY id
	`)
}

func (s *SQLite) queryEnrollments(ctx context.Context, query string) ([]*schedule.Enrollment, error) {
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("querying enrollments: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var enrollments []*schedule.Enrollment
	for rows.Next() {
		var e schedule.Enrollment
		if err := rows.Scan(&e.ID, &e.StudentID, &e.SubjectID); err != nil {
			return nil, fmt.Errorf("scanning enrollment: %w", err)
		}
		enrollments = append(enrollments, &e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating enrollments: %w", err)
	}
	return enrollments, nil
}

// LabelFor resolves an enrollment ref to display data.
// Returns schedule.ErrEnrollmentNotFound for unknown refs.
func (s *SQLite) LabelFor(ctx context.Context, enrollmentID string) (*schedule.ParticipantLabel, error) {
	query := `
		SELECT st.name, su.name, su.color
		FROM enrollments e
		JOIN students st ON st.id = e.student_id
		JOIN subjects su ON su.id = e.subject_id
		WHERE e.id = ?
	`

	var label schedule.ParticipantLabel
	err := s.db.QueryRowContext(ctx, query, enrollmentID).Scan(
		&label.StudentName, &label.SubjectName, &label.Color)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", schedule.ErrEnrollmentNotFound, enrollmentID)
	}
	if err != nil {
		return nil, fmt.Errorf("querying label: %w", err)
	}
	return &label, nil
}

// Close releases database resources.
func (s *SQLite) Close() error {
	return s.db.Close()
}

// parseTimestamp parses a timestamp string in the formats SQLite might return.
func parseTimestamp(s string) (time.Time, error) {
	formats := []string{
		time.RFC3339,
		"2006-01-02 15:04:05",
		"2006-01-02T15:04:05Z",
	}
	for _, f := range formats {
		if t, err := time.Parse(f, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized timestamp format: %s", s)
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
