package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/mgilabert/lectio/internal/grid"
	"github.com/mgilabert/lectio/internal/schedule"
)

// View renders the TUI.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	if m.mode == ModeModal && m.modalType != ModalNone {
		return lipgloss.Place(m.width, m.height,
			lipgloss.Center, lipgloss.Center,
			m.renderModal(),
			lipgloss.WithWhitespaceBackground(m.styles.palette.Bg))
	}

	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteString("\n")
	b.WriteString(m.renderTimeRuler())
	b.WriteString("\n")

	today := mondayFirstWeekday(time.Now())
	for day := 0; day <= 6; day++ {
		b.WriteString(m.renderDayHeader(day, day == today))
		b.WriteString("\n")
		lanes := m.renderLanes(day)
		for lane := 1; lane <= lanes; lane++ {
			b.WriteString(m.renderLaneRow(day, lane))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.renderUnscheduledStrip())
	b.WriteString("\n")
	b.WriteString(m.renderFooter())

	return m.styles.App.Render(b.String())
}

func (m Model) renderTitle() string {
	title := " lectio"
	if m.loading {
		title += "  " + m.spinner.View() + " loading"
	}
	return m.styles.Title.Render(padRight(title, m.width))
}

// renderTimeRuler draws an hour label at the start of every full hour
// column, scrolled along with the grid.
func (m Model) renderTimeRuler() string {
	startSlot, endSlot := m.visibleSlotRange()
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", gutterWidth))
	for slot := startSlot; slot < endSlot; slot++ {
		label := ""
		t := m.gridCfg.TimeAtSlot(slot)
		if strings.HasSuffix(t, ":00") {
			label = t
		}
		b.WriteString(padRight(label, m.cellsPerSlot))
	}
	return m.styles.TimeRuler.Render(padRight(b.String(), m.width))
}

func (m Model) renderDayHeader(day int, isToday bool) string {
	name := schedule.WeekdayName(day)
	count := 0
	for _, s := range m.sessions {
		if s.Weekday == day {
			count++
		}
	}
	header := fmt.Sprintf(" %s", name)
	if count > 0 {
		header += fmt.Sprintf("  (%d)", count)
	}
	style := m.styles.DayHeader
	if isToday {
		style = m.styles.DayNow
	}
	return style.Render(padRight(header, m.width))
}

// renderLaneRow draws one lane of one day band as a run of empty cells
// and session blocks, in visible-window cell coordinates.
func (m Model) renderLaneRow(day, lane int) string {
	startSlot, endSlot := m.visibleSlotRange()
	viewStart := startSlot * m.cellsPerSlot
	viewEnd := endSlot * m.cellsPerSlot
	y := lane - 1

	var b strings.Builder
	b.WriteString(m.styles.EmptyCell.Render(padRight("", gutterWidth)))

	x := viewStart
	for x < viewEnd {
		s, rect := m.blockAt(day, y, x)
		if s == nil {
			b.WriteString(m.renderEmptyCells(day, y, x, min(x+m.cellsPerSlot, viewEnd)))
			x += m.cellsPerSlot
			continue
		}
		end := min(rect.Left+rect.Width, viewEnd)
		b.WriteString(m.renderBlock(s, end-x, day, y, x))
		x = end
	}
	return b.String()
}

// blockAt returns the session block covering cell (x, y) on a weekday,
// together with its rect, or nil when the cell is free.
func (m Model) blockAt(day, y, x int) (*schedule.Session, grid.Rect) {
	layout := m.layouts[day]
	for _, s := range m.sessions {
		if s.Weekday != day {
			continue
		}
		rect, ok := layout.Rects[s.ID]
		if !ok || rect.Top != y {
			continue
		}
		if x >= rect.Left && x < rect.Left+rect.Width {
			return s, rect
		}
	}
	return nil, grid.Rect{}
}

func (m Model) renderEmptyCells(day, y, from, to int) string {
	if to <= from {
		return ""
	}
	cells := strings.Repeat("·", to-from)
	if m.previewCovers(day, y, from) {
		return m.styles.Preview.Render(cells)
	}
	if m.cursorCovers(day, y, from) {
		return m.styles.BlockCursor.Render(cells)
	}
	return m.styles.EmptyCell.Render(cells)
}

func (m Model) renderBlock(s *schedule.Session, width, day, y, x int) string {
	label := m.blockLabel(s)
	text := padRight(ansi.Truncate(" "+label, width, "…"), width)

	if m.previewCovers(day, y, x) {
		return m.styles.Preview.Render(text)
	}
	if m.cursorCovers(day, y, x) {
		return m.styles.BlockCursor.Render(text)
	}

	color := ""
	if len(s.ParticipantRefs) > 0 {
		if lbl, ok := m.labels[s.ParticipantRefs[0]]; ok {
			color = lbl.Color
		}
	}
	dimmed := m.drag.Dragging() && contains(m.preview.DimmedSessionIDs, s.ID)
	return m.styles.BlockStyle(color, s.Pinned, dimmed).Render(text)
}

// blockLabel picks the display text for a session block.
func (m Model) blockLabel(s *schedule.Session) string {
	if len(s.ParticipantRefs) == 0 {
		return s.StartsAt
	}
	lbl, ok := m.labels[s.ParticipantRefs[0]]
	if !ok {
		return s.StartsAt
	}
	if s.IsGroup() {
		return fmt.Sprintf("%s +%d", lbl.SubjectName, len(s.ParticipantRefs)-1)
	}
	return fmt.Sprintf("%s %s", lbl.StudentName, lbl.SubjectName)
}

// previewCovers reports whether the drop preview covers cell (x, y) on
// a weekday.
func (m Model) previewCovers(day, y, x int) bool {
	if !m.drag.Dragging() || !m.preview.Valid || m.preview.Weekday != day {
		return false
	}
	if y != m.preview.Lane-1 {
		return false
	}
	slot, err := m.gridCfg.SlotIndex(m.preview.Time)
	if err != nil {
		return false
	}
	left := slot * m.cellsPerSlot
	width := m.dragSpanSlots() * m.cellsPerSlot
	return x >= left && x < left+width
}

// dragSpanSlots returns the dragged block's span in slots.
func (m Model) dragSpanSlots() int {
	state := m.drag.State()
	if state.DraggedSessionID == "" {
		return state.Slots
	}
	for _, s := range m.sessions {
		if s.ID == state.DraggedSessionID {
			return s.Duration() / schedule.SlotMinutes
		}
	}
	return 1
}

func (m Model) cursorCovers(day, y, x int) bool {
	if m.mode == ModeModal {
		return false
	}
	if day != m.cursor.Day || y != m.cursor.Lane-1 {
		return false
	}
	left := m.cursor.Slot * m.cellsPerSlot
	return x >= left && x < left+m.cellsPerSlot
}

// renderUnscheduledStrip lists enrollments waiting for a slot.
func (m Model) renderUnscheduledStrip() string {
	if len(m.unscheduled) == 0 {
		return m.styles.Help.Render(padRight(" all enrollments scheduled", m.width))
	}
	var parts []string
	for i, enr := range m.unscheduled {
		text := enr.ID
		if lbl, ok := m.labels[enr.ID]; ok {
			text = fmt.Sprintf("%s/%s", lbl.StudentName, lbl.SubjectName)
		}
		if i == m.pickIndex {
			parts = append(parts, m.styles.BlockCursor.Render(" "+text+" "))
		} else {
			parts = append(parts, m.styles.Help.Render(" "+text+" "))
		}
	}
	line := " unscheduled:" + strings.Join(parts, "")
	return ansi.Truncate(m.styles.Footer.Render(padRight(line, m.width)), m.width, "…")
}

func (m Model) renderFooter() string {
	if m.statusMsg != "" {
		style := m.styles.Status
		if strings.HasPrefix(m.statusMsg, "Error") {
			style = m.styles.StatusErr
		}
		return style.Render(padRight(" "+m.statusMsg, m.width))
	}

	if m.mode == ModeMove {
		banner := " MOVE  hjkl/arrows: target  J/K: day  enter: drop  esc: cancel"
		return m.styles.MoveBanner.Render(padRight(banner, m.width))
	}

	help := " hjkl: move  J/K: day  enter: pick up  p: place  tab: next  o: open slot  d: delete  s: summary  +/-: zoom  q: quit"
	return m.styles.Help.Render(ansi.Truncate(padRight(help, m.width), m.width, "…"))
}

func (m Model) renderModal() string {
	switch m.modalType {
	case ModalConfirmDelete:
		var label string
		for _, s := range m.sessions {
			if s.ID == m.confirmID {
				label = fmt.Sprintf("%s %s-%s",
					schedule.WeekdayName(s.Weekday), s.StartsAt, s.EndsAt)
				break
			}
		}
		return m.styles.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.ModalTitle.Render("Remove session"),
			m.styles.ModalText.Render(label),
			"",
			m.styles.ModalMuted.Render("y: remove  n: keep")))

	case ModalSummary:
		body := m.summaryCopyText
		if body == "" {
			body = "No sessions this week"
		}
		return m.styles.ModalBox.Render(lipgloss.JoinVertical(lipgloss.Left,
			m.styles.ModalTitle.Render("Week summary"),
			m.styles.ModalText.Render(strings.TrimRight(body, "\n")),
			"",
			m.styles.ModalMuted.Render("y: copy  esc: close")))
	}
	return ""
}

// visibleSlotRange returns the [start, end) slot window that fits the
// terminal width at the current zoom.
func (m Model) visibleSlotRange() (int, int) {
	total := m.gridCfg.Slots()
	if m.width <= gutterWidth {
		return 0, total
	}
	visible := (m.width - gutterWidth) / m.cellsPerSlot
	if visible < 1 {
		visible = 1
	}
	start := m.scrollOffset
	if start > total-1 {
		start = total - 1
	}
	if start < 0 {
		start = 0
	}
	end := start + visible
	if end > total {
		end = total
	}
	return start, end
}

// mondayFirstWeekday converts a time.Time weekday to the Monday-first
// 0..6 convention.
func mondayFirstWeekday(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}

func contains(ids []string, id string) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
