package grid

import "fmt"

// Rect is a session block's pixel geometry within its weekday column.
// All values are integer pixels; sessions never span lanes vertically.
type Rect struct {
	Left   int
	Top    int
	Width  int
	Height int
}

// Project maps a session's (time, lane) position to pixel geometry.
// Width is clamped to MinBlockWidthPX so even a one-slot session stays
// visible and hit-testable.
func (c Config) Project(startsAt, endsAt string, lane int) (Rect, error) {
	if lane < 1 {
		return Rect{}, fmt.Errorf("%w: got %d", ErrInvalidLane, lane)
	}
	slot, err := c.SlotIndex(startsAt)
	if err != nil {
		return Rect{}, err
	}
	span, err := c.SlotsSpanned(startsAt, endsAt)
	if err != nil {
		return Rect{}, err
	}
	if !c.ContainsInterval(startsAt, endsAt) {
		return Rect{}, fmt.Errorf("%w: %s-%s", ErrInvalidTargetTime, startsAt, endsAt)
	}

	width := span * c.SlotWidthPX
	if width < c.MinBlockWidthPX {
		width = c.MinBlockWidthPX
	}
	return Rect{
		Left:   slot * c.SlotWidthPX,
		Top:    (lane - 1) * c.LaneHeightPX,
		Width:  width,
		Height: c.LaneHeightPX,
	}, nil
}

// HitTest maps a pixel position within a weekday column back to the
// logical grid cell under it. ok is false when the point falls outside
// the day window.
func (c Config) HitTest(x, y int) (timeAt string, lane int, ok bool) {
	if x < 0 || y < 0 {
		return "", 0, false
	}
	slot := x / c.SlotWidthPX
	if slot >= c.Slots() {
		return "", 0, false
	}
	return c.TimeAtSlot(slot), y/c.LaneHeightPX + 1, true
}
