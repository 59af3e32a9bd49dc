package grid

import (
	"github.com/mgilabert/lectio/internal/schedule"
)

// FindOpenSlot scans the week for the earliest cell that fits a block of
// the given slot count without displacing anyone. Weekdays are scanned
// Monday first, then start times, then existing lanes from one upward.
// Only when no existing lane can host the block anywhere does it open a
// new lane at the earliest cell. ok is false only when slots exceeds
// the day window.
func FindOpenSlot(cfg Config, sessions []*schedule.Session, slots int) (weekday int, startsAt string, lane int, ok bool) {
	if slots < 1 {
		slots = 1
	}
	span := slots * schedule.SlotMinutes
	if cfg.DayStartMinutes+span > cfg.DayEndMinutes {
		return 0, "", 0, false
	}

	type window struct {
		start, end, lane int
	}
	byDay := make(map[int][]window)
	maxLane := make(map[int]int)
	for _, s := range sessions {
		start, err1 := schedule.ToMinutes(s.StartsAt)
		end, err2 := schedule.ToMinutes(s.EndsAt)
		if err1 != nil || err2 != nil {
			continue
		}
		byDay[s.Weekday] = append(byDay[s.Weekday], window{start: start, end: end, lane: s.Lane})
		if s.Lane > maxLane[s.Weekday] {
			maxLane[s.Weekday] = s.Lane
		}
	}

	for day := 0; day <= 6; day++ {
		top := maxLane[day]
		if top == 0 {
			// Empty day, first cell wins.
			return day, schedule.MinutesToTime(cfg.DayStartMinutes), 1, true
		}
		for start := cfg.DayStartMinutes; start+span <= cfg.DayEndMinutes; start += schedule.SlotMinutes {
			end := start + span
			for lane := 1; lane <= top; lane++ {
				free := true
				for _, w := range byDay[day] {
					if w.lane == lane && start < w.end && w.start < end {
						free = false
						break
					}
				}
				if free {
					return day, schedule.MinutesToTime(start), lane, true
				}
			}
		}
	}
	return 0, schedule.MinutesToTime(cfg.DayStartMinutes), maxLane[0] + 1, true
}
