package grid

import "github.com/mgilabert/lectio/internal/schedule"

// LayoutResult is the computed layout for one weekday: lane assignments
// plus the pixel rect for every session block. It has no identity of its
// own; it is a pure function of the session set and is recomputed on
// every change.
type LayoutResult struct {
	Weekday int
	MaxLane int
	Lanes   map[string]int
	Rects   map[string]Rect
}

// ComputeLayout computes the layout for one weekday from the full
// session list. Sessions on other weekdays are ignored. The input is
// treated as an immutable snapshot.
func ComputeLayout(cfg Config, sessions []*schedule.Session, weekday int) (LayoutResult, error) {
	var day []*schedule.Session
	for _, s := range sessions {
		if s.Weekday == weekday {
			day = append(day, s)
		}
	}

	assignment, err := AssignLanes(day)
	if err != nil {
		return LayoutResult{}, err
	}

	rects := make(map[string]Rect, len(day))
	for _, s := range day {
		rect, err := cfg.Project(s.StartsAt, s.EndsAt, assignment.Lanes[s.ID])
		if err != nil {
			return LayoutResult{}, err
		}
		rects[s.ID] = rect
	}

	return LayoutResult{
		Weekday: weekday,
		MaxLane: assignment.MaxLane,
		Lanes:   assignment.Lanes,
		Rects:   rects,
	}, nil
}
