package schedule

import "errors"

// Roster validation errors.
var (
	ErrEmptyName          = errors.New("name cannot be empty")
	ErrStudentNotFound    = errors.New("student not found")
	ErrSubjectNotFound    = errors.New("subject not found")
	ErrEnrollmentNotFound = errors.New("enrollment not found")
)

// Student is a tutoring student. Used for display only; the layout and
// conflict algorithms never look at roster data.
type Student struct {
	ID   string
	Name string
}

// Subject is a tutored subject with a display color for session blocks.
type Subject struct {
	ID    string
	Name  string
	Color string // hex, e.g. "#8caaee"
}

// Enrollment links a student to a subject. Session.ParticipantRefs hold
// enrollment IDs.
type Enrollment struct {
	ID        string
	StudentID string
	SubjectID string
}

// ParticipantLabel describes one session participant for rendering.
type ParticipantLabel struct {
	StudentName string
	SubjectName string
	Color       string
}
