package db

import "fmt"

// migrate runs database migrations.
func (s *SQLite) migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS students (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS subjects (
			id         TEXT PRIMARY KEY,
			name       TEXT NOT NULL,
			color      TEXT NOT NULL DEFAULT '#8caaee'
		);

		CREATE TABLE IF NOT EXISTS enrollments (
			id         TEXT PRIMARY KEY,
			student_id TEXT NOT NULL REFERENCES students(id),
			subject_id TEXT NOT NULL REFERENCES subjects(id)
		);

		CREATE TABLE IF NOT EXISTS sessions (
			id         TEXT PRIMARY KEY,
			weekday    INTEGER NOT NULL CHECK(weekday BETWEEN 0 AND 6),
			starts_at  TIME NOT NULL,
			ends_at    TIME NOT NULL,
			lane       INTEGER NOT NULL DEFAULT 0,
			pinned     INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);

		CREATE TABLE IF NOT EXISTS session_participants (
			session_id    TEXT NOT NULL REFERENCES sessions(id) ON DELETE CASCADE,
			enrollment_id TEXT NOT NULL REFERENCES enrollments(id),
			PRIMARY KEY (session_id, enrollment_id)
		);

		CREATE INDEX IF NOT EXISTS idx_sessions_weekday ON sessions(weekday);
		CREATE INDEX IF NOT EXISTS idx_participants_enrollment ON session_participants(enrollment_id);
	`

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("creating tables: %w", err)
	}

	return nil
}
