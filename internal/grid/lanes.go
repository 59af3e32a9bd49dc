package grid

import (
	"fmt"
	"sort"

	"github.com/mgilabert/lectio/internal/schedule"
)

// Assignment is the result of lane assignment for one weekday.
type Assignment struct {
	// Lanes maps session ID to its assigned lane (>= 1).
	Lanes map[string]int
	// MaxLane is the number of lanes in use (0 for an empty weekday).
	MaxLane int
}

// interval is a session reduced to its minute range for lane packing.
type interval struct {
	id       string
	start    int
	end      int
	lane     int  // current/preferred lane, 0 when unassigned
	pinned   bool // lane was fixed by a drag commit
}

// AssignLanes assigns a lane to every session of one weekday so that
// time-overlapping sessions never share a lane.
//
// Unpinned sessions are packed greedily: sorted by (StartsAt, ID), each
// takes the lowest-numbered lane that is free by its start time, which
// yields the minimum lane count (interval-graph coloring). Pinned
// sessions keep their lane unless it now conflicts with another pinned
// session, in which case the pin is invalidated and the session rejoins
// greedy packing. The same input always produces the same assignment.
func AssignLanes(sessions []*schedule.Session) (Assignment, error) {
	ivs := make([]interval, 0, len(sessions))
	for _, s := range sessions {
		iv, err := toInterval(s)
		if err != nil {
			return Assignment{}, err
		}
		ivs = append(ivs, iv)
	}
	sortIntervals(ivs)

	lanes := make(map[string]int, len(ivs))
	occupied := make(map[int][]interval) // lane -> placed intervals
	maxLane := 0

	place := func(iv interval, lane int) {
		lanes[iv.id] = lane
		occupied[lane] = append(occupied[lane], iv)
		if lane > maxLane {
			maxLane = lane
		}
	}

	// Pinned sessions first: a pin survives only while its lane stays
	// conflict-free among the pinned set.
	var loose []interval
	for _, iv := range ivs {
		if !iv.pinned || iv.lane < 1 {
			loose = append(loose, iv)
			continue
		}
		if laneConflicts(occupied[iv.lane], iv) {
			loose = append(loose, iv)
			continue
		}
		place(iv, iv.lane)
	}

	for _, iv := range loose {
		lane := 1
		for laneConflicts(occupied[lane], iv) {
			lane++
		}
		place(iv, lane)
	}

	return Assignment{Lanes: lanes, MaxLane: maxLane}, nil
}

// toInterval validates a session's interval and reduces it to minutes.
func toInterval(s *schedule.Session) (interval, error) {
	start, err := schedule.ToMinutes(s.StartsAt)
	if err != nil {
		return interval{}, fmt.Errorf("session %s: %w", s.ID, err)
	}
	end, err := schedule.ToMinutes(s.EndsAt)
	if err != nil {
		return interval{}, fmt.Errorf("session %s: %w", s.ID, err)
	}
	if end <= start {
		return interval{}, fmt.Errorf("session %s: %w", s.ID, ErrNonPositiveDuration)
	}
	return interval{id: s.ID, start: start, end: end, lane: s.Lane, pinned: s.Pinned}, nil
}

// sortIntervals orders by (start, id) for a deterministic, stable
// assignment across calls.
func sortIntervals(ivs []interval) {
	sort.Slice(ivs, func(i, j int) bool {
		if ivs[i].start != ivs[j].start {
			return ivs[i].start < ivs[j].start
		}
		return ivs[i].id < ivs[j].id
	})
}

// laneConflicts returns true if iv overlaps any interval already placed
// in the lane.
func laneConflicts(placed []interval, iv interval) bool {
	for _, p := range placed {
		if iv.start < p.end && p.start < iv.end {
			return true
		}
	}
	return false
}
