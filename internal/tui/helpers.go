package tui

import (
	"fmt"
	"strings"

	"github.com/mgilabert/lectio/internal/grid"
	"github.com/mgilabert/lectio/internal/schedule"
	"github.com/mgilabert/lectio/internal/summary"
)

// Screen layout constants. The grid starts after the title and time
// ruler; every day band is one header row followed by its lane rows.
const (
	headerRows  = 2 // title + time ruler
	gutterWidth = 4 // day label column before the first slot
)

// cellToGrid maps terminal coordinates to a weekday plus grid
// coordinates in cell units. ok is false when the pointer is outside
// every day band.
func (m Model) cellToGrid(termX, termY int) (day, x, y int, ok bool) {
	row := headerRows
	for d := 0; d <= 6; d++ {
		lanes := m.renderLanes(d)
		// Skip the band header row.
		if termY > row && termY <= row+lanes {
			x = termX - gutterWidth + m.scrollOffset*m.cellsPerSlot
			y = termY - row - 1
			if x < 0 || x >= m.gridCfg.Slots()*m.cellsPerSlot {
				return 0, 0, 0, false
			}
			return d, x, y, true
		}
		row += 1 + lanes
	}
	return 0, 0, 0, false
}

// ensureCursorVisible scrolls the grid horizontally so the cursor slot
// stays on screen.
func (m *Model) ensureCursorVisible() {
	if m.width <= gutterWidth {
		return
	}
	visible := (m.width - gutterWidth) / m.cellsPerSlot
	if visible < 1 {
		visible = 1
	}
	if m.cursor.Slot < m.scrollOffset {
		m.scrollOffset = m.cursor.Slot
	}
	if m.cursor.Slot >= m.scrollOffset+visible {
		m.scrollOffset = m.cursor.Slot - visible + 1
	}
	if m.scrollOffset < 0 {
		m.scrollOffset = 0
	}
}

// sessionAtCell returns the session whose layout rect covers grid cell
// (x, y) on a weekday, or nil.
func (m Model) sessionAtCell(day, x, y int) *schedule.Session {
	s, _ := m.blockAt(day, y, x)
	return s
}

// placementsFromMutations converts engine mutations into repository
// placements.
func placementsFromMutations(mutations []grid.Mutation) []schedule.Placement {
	placements := make([]schedule.Placement, 0, len(mutations))
	for _, mut := range mutations {
		placements = append(placements, schedule.Placement{
			SessionID:       mut.SessionID,
			Weekday:         mut.Weekday,
			StartsAt:        mut.StartsAt,
			EndsAt:          mut.EndsAt,
			Lane:            mut.Lane,
			Pinned:          mut.Pinned,
			Create:          mut.Create,
			ParticipantRefs: mut.ParticipantRefs,
		})
	}
	return placements
}

// buildSummaryCopyText renders the week summary as plain text for the
// clipboard.
func buildSummaryCopyText(s *summary.WeekSummary) string {
	if s == nil {
		return ""
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Week summary: %d session(s), %s total\n",
		s.TotalSessions, formatMinutes(s.TotalMinutes))
	if s.GroupSessions > 0 {
		fmt.Fprintf(&b, "Group sessions: %d\n", s.GroupSessions)
	}
	if s.BusiestWeekday >= 0 {
		fmt.Fprintf(&b, "Busiest day: %s\n", schedule.WeekdayName(s.BusiestWeekday))
	}
	for _, d := range s.Weekdays {
		if d.Sessions == 0 {
			continue
		}
		fmt.Fprintf(&b, "  %s: %d session(s), %s\n",
			schedule.WeekdayName(d.Weekday), d.Sessions, formatMinutes(d.Minutes))
	}
	if len(s.Subjects) > 0 {
		b.WriteString("By subject:\n")
		for _, sub := range s.Subjects {
			fmt.Fprintf(&b, "  %s: %d session(s), %s\n",
				sub.SubjectName, sub.Sessions, formatMinutes(sub.Minutes))
		}
	}
	return b.String()
}

// formatMinutes renders a duration in minutes as "2h30m", "45m" or "3h".
func formatMinutes(minutes int) string {
	h, m := minutes/60, minutes%60
	switch {
	case h == 0:
		return fmt.Sprintf("%dm", m)
	case m == 0:
		return fmt.Sprintf("%dh", h)
	default:
		return fmt.Sprintf("%dh%dm", h, m)
	}
}
