package schedule

import (
	"errors"
	"fmt"
)

// Time validation errors.
var (
	ErrInvalidTimeFormat = errors.New("time must be in HH:MM format aligned to the 30-minute grid")
)

// SlotMinutes is the fixed duration of one grid slot.
const SlotMinutes = 30

// ToMinutes converts "HH:MM" to minutes since midnight.
// Only grid-aligned times are accepted: minutes must be 00 or 30,
// hours 00-24 with 24 valid only as the "24:00" day-end boundary.
func ToMinutes(t string) (int, error) {
	if len(t) != 5 || t[2] != ':' {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	for _, i := range []int{0, 1, 3, 4} {
		if t[i] < '0' || t[i] > '9' {
			return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
		}
	}
	hours := int(t[0]-'0')*10 + int(t[1]-'0')
	mins := int(t[3]-'0')*10 + int(t[4]-'0')
	if mins != 0 && mins != 30 {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	if hours > 24 || (hours == 24 && mins != 0) {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, t)
	}
	return hours*60 + mins, nil
}

// MinutesToTime converts minutes since midnight to "HH:MM" format.
// Values are clamped to the 00:00-24:00 range.
func MinutesToTime(m int) string {
	if m < 0 {
		m = 0
	}
	if m > 24*60 {
		m = 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", m/60, m%60)
}

// Overlaps returns true if two [start, end) time ranges overlap.
// Lexicographic comparison is correct for zero-padded "HH:MM" strings.
func Overlaps(start1, end1, start2, end2 string) bool {
	return start1 < end2 && start2 < end1
}

// OverlapMinutes returns the overlapping minutes between two time ranges,
// or 0 when they are disjoint or malformed.
func OverlapMinutes(start1, end1, start2, end2 string) int {
	s1, err1 := ToMinutes(start1)
	e1, err2 := ToMinutes(end1)
	s2, err3 := ToMinutes(start2)
	e2, err4 := ToMinutes(end2)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return 0
	}

	overlapStart := max(s1, s2)
	overlapEnd := min(e1, e2)
	if overlapEnd <= overlapStart {
		return 0
	}
	return overlapEnd - overlapStart
}
