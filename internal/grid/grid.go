// Package grid implements the session layout and collision-resolution
// engine for the weekly schedule: lane assignment (time-overlapping
// sessions never share a lane), pixel geometry for rendering, the
// drag-and-drop interaction state machine, and the conflict resolver that
// displaces overlapping sessions on a committed drop.
//
// The package operates on immutable snapshots of the caller's session
// list and returns new records; it never mutates caller-owned sessions
// and never persists anything itself.
package grid

import (
	"errors"
	"fmt"

	"github.com/mgilabert/lectio/internal/schedule"
)

// Engine errors.
var (
	ErrNonPositiveDuration   = errors.New("session must span at least one slot")
	ErrInvalidTargetTime     = errors.New("target time is outside the grid or not slot-aligned")
	ErrSessionNotFound       = errors.New("session not found on the grid")
	ErrDragAlreadyInProgress = errors.New("a drag gesture is already in progress")
	ErrNoActiveDrag          = errors.New("no active drag for this handle")
	ErrInvalidLane           = errors.New("lane must be a positive integer")
)

// Grid defaults. Slot duration is fixed; the day window and pixel
// constants are configuration.
const (
	DefaultDayStartMinutes = 9 * 60  // 09:00
	DefaultDayEndMinutes   = 24 * 60 // 24:00
	DefaultSlotWidthPX     = 100
	DefaultLaneHeightPX    = 60
	DefaultMinBlockWidthPX = 40
	DefaultReserveLanes    = 5
)

// Config holds the grid window and pixel geometry constants.
type Config struct {
	DayStartMinutes int // minutes from midnight, e.g. 540 (09:00)
	DayEndMinutes   int // minutes from midnight, e.g. 1440 (24:00)

	SlotWidthPX     int // horizontal pixels per 30-minute slot
	LaneHeightPX    int // vertical pixels per lane
	MinBlockWidthPX int // minimum rendered block width

	// ReserveLanes is the minimum lane count rendered during an active
	// drag so drop targets exist below the last occupied lane. It never
	// affects lane assignment itself.
	ReserveLanes int
}

// DefaultConfig returns the standard 09:00-24:00 grid.
func DefaultConfig() Config {
	return Config{
		DayStartMinutes: DefaultDayStartMinutes,
		DayEndMinutes:   DefaultDayEndMinutes,
		SlotWidthPX:     DefaultSlotWidthPX,
		LaneHeightPX:    DefaultLaneHeightPX,
		MinBlockWidthPX: DefaultMinBlockWidthPX,
		ReserveLanes:    DefaultReserveLanes,
	}
}

// Slots returns the number of 30-minute slots in the day window.
func (c Config) Slots() int {
	return (c.DayEndMinutes - c.DayStartMinutes) / schedule.SlotMinutes
}

// SlotIndex converts a grid-aligned "HH:MM" time to its slot index.
// Returns ErrInvalidTargetTime when the time is malformed or outside
// the day window.
func (c Config) SlotIndex(t string) (int, error) {
	mins, err := schedule.ToMinutes(t)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrInvalidTargetTime, err)
	}
	if mins < c.DayStartMinutes || mins >= c.DayEndMinutes {
		return 0, fmt.Errorf("%w: %s", ErrInvalidTargetTime, t)
	}
	return (mins - c.DayStartMinutes) / schedule.SlotMinutes, nil
}

// TimeAtSlot converts a slot index back to its "HH:MM" boundary.
func (c Config) TimeAtSlot(index int) string {
	return schedule.MinutesToTime(c.DayStartMinutes + index*schedule.SlotMinutes)
}

// SlotsSpanned returns how many slots the [startsAt, endsAt) interval
// covers. Returns ErrNonPositiveDuration when the span is zero, negative
// or not slot-aligned.
func (c Config) SlotsSpanned(startsAt, endsAt string) (int, error) {
	start, err := schedule.ToMinutes(startsAt)
	if err != nil {
		return 0, err
	}
	end, err := schedule.ToMinutes(endsAt)
	if err != nil {
		return 0, err
	}
	span := end - start
	if span <= 0 || span%schedule.SlotMinutes != 0 {
		return 0, fmt.Errorf("%w: %s-%s", ErrNonPositiveDuration, startsAt, endsAt)
	}
	return span / schedule.SlotMinutes, nil
}

// ContainsInterval reports whether [startsAt, endsAt) fits inside the
// day window.
func (c Config) ContainsInterval(startsAt, endsAt string) bool {
	start, err := schedule.ToMinutes(startsAt)
	if err != nil {
		return false
	}
	end, err := schedule.ToMinutes(endsAt)
	if err != nil {
		return false
	}
	return start >= c.DayStartMinutes && end <= c.DayEndMinutes && start < end
}

// RenderLanes returns the lane count the renderer should draw for a
// weekday: maxLane normally, at least ReserveLanes during an active drag.
func (c Config) RenderLanes(maxLane int, dragging bool) int {
	if !dragging {
		if maxLane < 1 {
			return 1
		}
		return maxLane
	}
	if maxLane < c.ReserveLanes {
		return c.ReserveLanes
	}
	return maxLane
}
