package tui

import (
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgilabert/lectio/internal/grid"
	"github.com/mgilabert/lectio/internal/tui/commands"
)

// Default span for a participant picked up from the unscheduled strip,
// in slots. Two slots is one hour.
const defaultPickupSlots = 2

// handleKeyMsg handles keyboard input based on the current mode.
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	LogKeyPress(msg.String(), modeString(m.mode))

	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case ModeModal:
		return m.handleModalKeys(msg)
	case ModeMove:
		return m.handleMoveKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

func (m Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q":
		return m, tea.Quit

	case "h", "left":
		m.cursor.Slot--
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case "l", "right":
		m.cursor.Slot++
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case "j", "down":
		m.cursor.Lane++
		m.clampCursor()
		return m, nil

	case "k", "up":
		m.cursor.Lane--
		m.clampCursor()
		return m, nil

	case "J", "shift+down":
		m.cursor.Day++
		m.clampCursor()
		return m, nil

	case "K", "shift+up":
		m.cursor.Day--
		m.clampCursor()
		return m, nil

	case "g":
		m.cursor.Slot = 0
		m.cursor.Lane = 1
		m.ensureCursorVisible()
		return m, nil

	case "G":
		m.cursor.Slot = m.gridCfg.Slots() - 1
		m.ensureCursorVisible()
		return m, nil

	case "+", "=":
		m.setCellsPerSlot(m.cellsPerSlot + 1)
		m.ensureCursorVisible()
		return m, nil

	case "-":
		m.setCellsPerSlot(m.cellsPerSlot - 1)
		m.ensureCursorVisible()
		return m, nil

	case "tab":
		if len(m.unscheduled) > 0 {
			m.pickIndex = (m.pickIndex + 1) % len(m.unscheduled)
		}
		return m, nil

	case "enter", " ":
		s := m.sessionAtCursor()
		if s == nil {
			return m, nil
		}
		handle, err := m.drag.BeginDrag(s.ID)
		if err != nil {
			LogError(err)
			return m, nil
		}
		m.handle = handle
		m.mode = ModeMove
		m.updatePreviewAtCursor()
		LogModeChange(modeString(ModeNormal), modeString(ModeMove))
		return m, nil

	case "p":
		if len(m.unscheduled) == 0 {
			return m, m.setStatus("Nothing left to schedule", 3*time.Second)
		}
		enr := m.unscheduled[m.pickIndex]
		handle, err := m.drag.BeginParticipantDrag(enr.ID, defaultPickupSlots)
		if err != nil {
			LogError(err)
			return m, nil
		}
		m.handle = handle
		m.mode = ModeMove
		m.updatePreviewAtCursor()
		LogModeChange(modeString(ModeNormal), modeString(ModeMove))
		return m, nil

	case "o":
		day, startsAt, lane, ok := grid.FindOpenSlot(m.gridCfg, m.sessions, defaultPickupSlots)
		if !ok {
			return m, m.setStatus("No open slot this week", 3*time.Second)
		}
		slot, err := m.gridCfg.SlotIndex(startsAt)
		if err != nil {
			LogError(err)
			return m, nil
		}
		m.cursor = Position{Day: day, Slot: slot, Lane: lane}
		m.clampCursor()
		m.ensureCursorVisible()
		return m, nil

	case "d":
		s := m.sessionAtCursor()
		if s == nil {
			return m, nil
		}
		m.mode = ModeModal
		m.modalType = ModalConfirmDelete
		m.confirmID = s.ID
		return m, nil

	case "s":
		return m, commands.WeekSummary(m.repo, m.roster)

	case "r":
		m.loading = true
		return m, tea.Batch(
			commands.LoadSessions(m.repo),
			commands.LoadRoster(m.roster))
	}

	return m, nil
}

func (m Model) handleMoveKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		m.drag.CancelDrag(m.handle)
		m.mode = ModeNormal
		m.preview = grid.PreviewState{}
		LogModeChange(modeString(ModeMove), modeString(ModeNormal))
		return m, nil

	case "h", "left":
		m.cursor.Slot--
		m.clampCursor()
		m.ensureCursorVisible()
		m.updatePreviewAtCursor()
		return m, nil

	case "l", "right":
		m.cursor.Slot++
		m.clampCursor()
		m.ensureCursorVisible()
		m.updatePreviewAtCursor()
		return m, nil

	case "j", "down":
		m.cursor.Lane++
		m.clampCursor()
		m.updatePreviewAtCursor()
		return m, nil

	case "k", "up":
		m.cursor.Lane--
		m.clampCursor()
		m.updatePreviewAtCursor()
		return m, nil

	case "J", "shift+down":
		m.cursor.Day++
		m.clampCursor()
		m.updatePreviewAtCursor()
		return m, nil

	case "K", "shift+up":
		m.cursor.Day--
		m.clampCursor()
		m.updatePreviewAtCursor()
		return m, nil

	case "enter", " ":
		model, cmd := m.commitDrag()
		LogModeChange(modeString(ModeMove), modeString(ModeNormal))
		return model, cmd
	}

	return m, nil
}

func (m Model) handleModalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.modalType {
	case ModalConfirmDelete:
		switch msg.String() {
		case "y", "Y":
			id := m.confirmID
			m.closeModal()
			return m, commands.DeleteSession(m.repo, id)
		case "n", "N", "esc", "q":
			m.closeModal()
			return m, nil
		}

	case ModalSummary:
		switch msg.String() {
		case "y":
			if err := clipboard.WriteAll(m.summaryCopyText); err != nil {
				return m, m.setStatus("Clipboard unavailable", 3*time.Second)
			}
			return m, m.setStatus("Summary copied to clipboard", 3*time.Second)
		case "esc", "q", "s", "enter":
			m.closeModal()
			return m, nil
		}
	}

	return m, nil
}

func (m *Model) closeModal() {
	m.mode = ModeNormal
	m.modalType = ModalNone
	m.confirmID = ""
}

// updatePreviewAtCursor refreshes the drop preview from the cursor cell.
func (m *Model) updatePreviewAtCursor() {
	if !m.drag.Dragging() {
		return
	}
	x := m.cursor.Slot * m.cellsPerSlot
	y := m.cursor.Lane - 1
	preview, err := m.drag.UpdateDragTarget(m.handle, x, y, m.cursor.Day)
	if err != nil {
		LogError(err)
		return
	}
	m.preview = preview
}
