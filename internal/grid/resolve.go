package grid

import (
	"fmt"

	"github.com/mgilabert/lectio/internal/schedule"
)

// Mutation is one proposed session change produced by a committed drag.
// The core never applies mutations itself; the caller persists them.
type Mutation struct {
	SessionID string
	Weekday   int
	StartsAt  string
	EndsAt    string
	Lane      int
	Pinned    bool

	// Create marks a mutation that materializes a new session from an
	// unscheduled participant drop. ParticipantRefs is only set then.
	Create          bool
	ParticipantRefs []string
}

// Resolve computes the mutations needed to move a session to
// (targetWeekday, targetTime, targetLane). The moving session keeps its
// duration and takes the requested lane; any session already in that
// lane whose interval overlaps is displaced to the next free lane below
// it, cascading in (StartsAt, ID) order. Sessions untouched by the
// cascade keep their lanes. Conflicts are always resolved by
// displacement, never by refusing the move.
//
// The returned list starts with the moving session, followed by
// displaced sessions in (StartsAt, ID) order. The input snapshot is
// never mutated.
func Resolve(cfg Config, sessions []*schedule.Session, movingID string, targetWeekday int, targetTime string, targetLane int) ([]Mutation, error) {
	var moving *schedule.Session
	for _, s := range sessions {
		if s.ID == movingID {
			moving = s
			break
		}
	}
	if moving == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, movingID)
	}
	if targetWeekday < 0 || targetWeekday > 6 {
		return nil, fmt.Errorf("%w: weekday %d", ErrInvalidTargetTime, targetWeekday)
	}
	if targetLane < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidLane, targetLane)
	}

	// Duration is preserved; only the start anchor changes.
	startMins, err := schedule.ToMinutes(targetTime)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidTargetTime, err)
	}
	endMins := startMins + moving.Duration()
	if startMins < cfg.DayStartMinutes || endMins > cfg.DayEndMinutes {
		return nil, fmt.Errorf("%w: %s on weekday %d", ErrInvalidTargetTime, targetTime, targetWeekday)
	}
	newStart := schedule.MinutesToTime(startMins)
	newEnd := schedule.MinutesToTime(endMins)

	// Everything else on the target weekday, in cascade order.
	var others []interval
	for _, s := range sessions {
		if s.ID == movingID || s.Weekday != targetWeekday {
			continue
		}
		iv, err := toInterval(s)
		if err != nil {
			return nil, err
		}
		others = append(others, iv)
	}
	sortIntervals(others)

	occupied := make(map[int][]interval)
	movingIv := interval{id: movingID, start: startMins, end: endMins, lane: targetLane}
	occupied[targetLane] = append(occupied[targetLane], movingIv)

	mutations := []Mutation{{
		SessionID: movingID,
		Weekday:   targetWeekday,
		StartsAt:  newStart,
		EndsAt:    newEnd,
		Lane:      targetLane,
		Pinned:    true,
	}}

	for _, iv := range others {
		lane := iv.lane
		if lane < 1 {
			lane = 1
		}
		if laneConflicts(occupied[lane], iv) {
			// Displaced: cascade to the next free lane below.
			lane++
			for laneConflicts(occupied[lane], iv) {
				lane++
			}
		}
		occupied[lane] = append(occupied[lane], interval{id: iv.id, start: iv.start, end: iv.end, lane: lane})
		if lane != iv.lane {
			mutations = append(mutations, Mutation{
				SessionID: iv.id,
				Weekday:   targetWeekday,
				StartsAt:  schedule.MinutesToTime(iv.start),
				EndsAt:    schedule.MinutesToTime(iv.end),
				Lane:      lane,
			})
		}
	}

	return mutations, nil
}
