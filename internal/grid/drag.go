package grid

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/mgilabert/lectio/internal/schedule"
)

// DragState is the ephemeral state of one drag gesture. It is created on
// drag-start, updated on every drag-over and discarded on drop or
// cancel; it never outlives the gesture.
type DragState struct {
	// DraggedSessionID is empty when dragging an unscheduled
	// participant instead of an existing session.
	DraggedSessionID string
	ParticipantRef   string
	Slots            int // duration in slots, for participant drags

	SourceWeekday int
	SourceTime    string
	SourceLane    int

	TargetWeekday int
	TargetTime    string
	TargetLane    int
	HasTarget     bool

	Active bool
}

// PreviewState describes the live drop preview for rendering.
type PreviewState struct {
	Weekday int
	Time    string
	Lane    int
	Valid   bool
	// DimmedSessionIDs are the sessions overlapping the preview window;
	// the renderer shows them at reduced emphasis so the target cell
	// stays visible under the dragged block.
	DimmedSessionIDs []string
}

// Handle identifies one drag gesture. Stale handles from a finished
// gesture are rejected by every Controller method.
type Handle struct {
	id uint64
}

// Controller owns at most one DragState at a time and drives the
// Idle -> Dragging -> (Committing | Cancelled) -> Idle cycle. It works
// on an immutable snapshot of the session list taken at drag start.
type Controller struct {
	cfg      Config
	sessions []*schedule.Session

	state  DragState
	serial uint64 // increments per gesture; stale handles are rejected
}

// NewController creates a drag controller for the given grid.
func NewController(cfg Config) *Controller {
	return &Controller{cfg: cfg}
}

// SetSessions replaces the controller's session snapshot. Sessions are
// cloned so later caller-side edits cannot tear an in-flight gesture.
func (c *Controller) SetSessions(sessions []*schedule.Session) {
	snapshot := make([]*schedule.Session, 0, len(sessions))
	for _, s := range sessions {
		snapshot = append(snapshot, s.Clone())
	}
	c.sessions = snapshot
}

// Dragging returns true while a gesture is active.
func (c *Controller) Dragging() bool {
	return c.state.Active
}

// State returns a copy of the current drag state for rendering.
func (c *Controller) State() DragState {
	return c.state
}

// BeginDrag starts dragging an existing session.
// Returns ErrDragAlreadyInProgress if a gesture is active and
// ErrSessionNotFound if the session is not in the snapshot.
func (c *Controller) BeginDrag(sessionID string) (Handle, error) {
	if c.state.Active {
		return Handle{}, ErrDragAlreadyInProgress
	}
	var source *schedule.Session
	for _, s := range c.sessions {
		if s.ID == sessionID {
			source = s
			break
		}
	}
	if source == nil {
		return Handle{}, fmt.Errorf("%w: %s", ErrSessionNotFound, sessionID)
	}

	c.serial++
	c.state = DragState{
		DraggedSessionID: sessionID,
		SourceWeekday:    source.Weekday,
		SourceTime:       source.StartsAt,
		SourceLane:       source.Lane,
		Active:           true,
	}
	return Handle{id: c.serial}, nil
}

// BeginParticipantDrag starts dragging an unscheduled participant; a
// drop creates a new session spanning the given number of slots
// (defaulting to one).
func (c *Controller) BeginParticipantDrag(enrollmentRef string, slots int) (Handle, error) {
	if c.state.Active {
		return Handle{}, ErrDragAlreadyInProgress
	}
	if slots < 1 {
		slots = 1
	}

	c.serial++
	c.state = DragState{
		ParticipantRef: enrollmentRef,
		Slots:          slots,
		Active:         true,
	}
	return Handle{id: c.serial}, nil
}

// UpdateDragTarget hit-tests a pointer position within a weekday column
// and records it as the candidate drop cell. A position outside the grid
// clears the target (the gesture stays active). Called on every
// drag-over; it never mutates sessions.
func (c *Controller) UpdateDragTarget(h Handle, x, y, weekday int) (PreviewState, error) {
	if err := c.checkHandle(h); err != nil {
		return PreviewState{}, err
	}

	timeAt, lane, ok := c.cfg.HitTest(x, y)
	if !ok || weekday < 0 || weekday > 6 {
		c.state.HasTarget = false
		c.state.TargetTime = ""
		return PreviewState{}, nil
	}

	c.state.TargetWeekday = weekday
	c.state.TargetTime = timeAt
	c.state.TargetLane = lane
	c.state.HasTarget = true

	return c.preview(), nil
}

// preview builds the render preview for the current target, including
// the sessions the dragged block would cover.
func (c *Controller) preview() PreviewState {
	startMins, err := schedule.ToMinutes(c.state.TargetTime)
	if err != nil {
		return PreviewState{}
	}
	endMins := startMins + c.dragSlots()*schedule.SlotMinutes

	var dimmed []string
	for _, s := range c.sessions {
		if s.ID == c.state.DraggedSessionID || s.Weekday != c.state.TargetWeekday {
			continue
		}
		sStart, err1 := schedule.ToMinutes(s.StartsAt)
		sEnd, err2 := schedule.ToMinutes(s.EndsAt)
		if err1 != nil || err2 != nil {
			continue
		}
		if startMins < sEnd && sStart < endMins {
			dimmed = append(dimmed, s.ID)
		}
	}

	return PreviewState{
		Weekday:          c.state.TargetWeekday,
		Time:             c.state.TargetTime,
		Lane:             c.state.TargetLane,
		Valid:            true,
		DimmedSessionIDs: dimmed,
	}
}

// dragSlots returns the dragged block's span in slots.
func (c *Controller) dragSlots() int {
	if c.state.DraggedSessionID == "" {
		return c.state.Slots
	}
	for _, s := range c.sessions {
		if s.ID == c.state.DraggedSessionID {
			return s.Duration() / schedule.SlotMinutes
		}
	}
	return 1
}

// CommitDrag resolves the drop. With a valid target it runs the conflict
// resolver and returns the mutation list; with no target the gesture is
// cancelled and an empty list is returned. On resolver failure no
// session is changed and the gesture ends. Either way the controller
// returns to idle.
func (c *Controller) CommitDrag(h Handle) ([]Mutation, error) {
	if err := c.checkHandle(h); err != nil {
		return nil, err
	}

	state := c.state
	c.state = DragState{}

	if !state.HasTarget {
		return nil, nil
	}

	if state.DraggedSessionID != "" {
		return Resolve(c.cfg, c.sessions, state.DraggedSessionID,
			state.TargetWeekday, state.TargetTime, state.TargetLane)
	}

	// Unscheduled participant: resolve a pending session virtually
	// inserted at the target, then mark its mutation as a create.
	startMins, err := schedule.ToMinutes(state.TargetTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTargetTime, err)
	}
	pending := &schedule.Session{
		ID:              uuid.NewString(),
		Weekday:         state.TargetWeekday,
		StartsAt:        state.TargetTime,
		EndsAt:          schedule.MinutesToTime(startMins + state.Slots*schedule.SlotMinutes),
		ParticipantRefs: []string{state.ParticipantRef},
	}
	snapshot := append(append([]*schedule.Session(nil), c.sessions...), pending)

	mutations, err := Resolve(c.cfg, snapshot, pending.ID,
		state.TargetWeekday, state.TargetTime, state.TargetLane)
	if err != nil {
		return nil, err
	}
	mutations[0].Create = true
	mutations[0].ParticipantRefs = append([]string(nil), pending.ParticipantRefs...)
	return mutations, nil
}

// CancelDrag abandons the gesture with zero side effects. Safe to call
// from any state; cancelling an already-finished gesture is a no-op.
func (c *Controller) CancelDrag(h Handle) {
	if c.checkHandle(h) != nil {
		return
	}
	c.state = DragState{}
}

// checkHandle rejects calls without an active gesture or with a handle
// from a previous gesture.
func (c *Controller) checkHandle(h Handle) error {
	if !c.state.Active || h.id != c.serial {
		return ErrNoActiveDrag
	}
	return nil
}
