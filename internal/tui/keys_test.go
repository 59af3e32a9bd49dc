// Package tui provides the terminal user interface for lectio.
package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgilabert/lectio/internal/schedule"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func pressKey(t *testing.T, m Model, key string) Model {
	t.Helper()
	updated, _ := m.Update(keyMsg(key))
	return updated.(Model)
}

func TestNormalKeys_Navigation(t *testing.T) {
	m := newTestModel(t)

	m = pressKey(t, m, "l")
	if m.cursor.Slot != 1 {
		t.Errorf("Slot = %d, want 1 after l", m.cursor.Slot)
	}
	m = pressKey(t, m, "h")
	if m.cursor.Slot != 0 {
		t.Errorf("Slot = %d, want 0 after h", m.cursor.Slot)
	}
	m = pressKey(t, m, "j")
	if m.cursor.Lane != 2 {
		t.Errorf("Lane = %d, want 2 after j", m.cursor.Lane)
	}
	m = pressKey(t, m, "k")
	if m.cursor.Lane != 1 {
		t.Errorf("Lane = %d, want 1 after k", m.cursor.Lane)
	}
	m = pressKey(t, m, "J")
	if m.cursor.Day != 1 {
		t.Errorf("Day = %d, want 1 after J", m.cursor.Day)
	}
	m = pressKey(t, m, "K")
	if m.cursor.Day != 0 {
		t.Errorf("Day = %d, want 0 after K", m.cursor.Day)
	}
}

func TestNormalKeys_JumpToEdges(t *testing.T) {
	m := newTestModel(t)
	m.cursor.Slot = 10

	m = pressKey(t, m, "G")
	if want := m.gridCfg.Slots() - 1; m.cursor.Slot != want {
		t.Errorf("Slot = %d, want %d after G", m.cursor.Slot, want)
	}
	m = pressKey(t, m, "g")
	if m.cursor.Slot != 0 || m.cursor.Lane != 1 {
		t.Errorf("cursor = %+v, want origin after g", m.cursor)
	}
}

func TestNormalKeys_Zoom(t *testing.T) {
	m := newTestModel(t)

	m = pressKey(t, m, "+")
	if m.cellsPerSlot != defaultCellsPerSlot+1 {
		t.Errorf("cellsPerSlot = %d, want %d", m.cellsPerSlot, defaultCellsPerSlot+1)
	}
	m = pressKey(t, m, "-")
	m = pressKey(t, m, "-")
	if m.cellsPerSlot != defaultCellsPerSlot-1 {
		t.Errorf("cellsPerSlot = %d, want %d", m.cellsPerSlot, defaultCellsPerSlot-1)
	}
}

func TestEnterPicksUpSessionUnderCursor(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}

	m = pressKey(t, m, "enter")

	if m.mode != ModeMove {
		t.Fatalf("mode = %d, want ModeMove", m.mode)
	}
	if !m.drag.Dragging() {
		t.Fatal("drag controller should be active")
	}
	if got := m.drag.State().DraggedSessionID; got != "a" {
		t.Errorf("DraggedSessionID = %q, want a", got)
	}
	if !m.preview.Valid || m.preview.Weekday != 0 || m.preview.Time != "09:00" {
		t.Errorf("preview = %+v, want valid Monday 09:00", m.preview)
	}
}

func TestEnterOnEmptyCellDoesNothing(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 1, Slot: 0, Lane: 1}

	m = pressKey(t, m, "enter")

	if m.mode != ModeNormal || m.drag.Dragging() {
		t.Errorf("empty-cell enter should stay in normal mode, got mode %d", m.mode)
	}
}

func TestMoveKeys_TargetFollowsCursor(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}
	m = pressKey(t, m, "enter")

	m = pressKey(t, m, "J") // Tuesday
	m = pressKey(t, m, "l") // 09:30

	if m.preview.Weekday != 1 {
		t.Errorf("preview.Weekday = %d, want 1", m.preview.Weekday)
	}
	if m.preview.Time != "09:30" {
		t.Errorf("preview.Time = %q, want 09:30", m.preview.Time)
	}
}

func TestMoveCommitReturnsPlacementCommand(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}
	m = pressKey(t, m, "enter")
	m = pressKey(t, m, "J")

	updated, cmd := m.Update(keyMsg("enter"))
	m = updated.(Model)

	if m.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal after commit", m.mode)
	}
	if m.drag.Dragging() {
		t.Error("gesture should be finished after commit")
	}
	if cmd == nil {
		t.Error("commit should produce a placement command")
	}
}

func TestEscCancelsMove(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}
	m = pressKey(t, m, "enter")

	updated, cmd := m.Update(keyMsg("esc"))
	m = updated.(Model)

	if m.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal after cancel", m.mode)
	}
	if m.drag.Dragging() {
		t.Error("gesture should be finished after cancel")
	}
	if cmd != nil {
		t.Error("cancel must not produce a command")
	}
}

func TestTabCyclesUnscheduled(t *testing.T) {
	m := newTestModel(t)
	m.unscheduled = []*schedule.Enrollment{
		{ID: "enr-a"}, {ID: "enr-b"},
	}

	m = pressKey(t, m, "tab")
	if m.pickIndex != 1 {
		t.Errorf("pickIndex = %d, want 1", m.pickIndex)
	}
	m = pressKey(t, m, "tab")
	if m.pickIndex != 0 {
		t.Errorf("pickIndex = %d, want 0 after wrap", m.pickIndex)
	}
}

func TestPickUpParticipant(t *testing.T) {
	m := newTestModel(t)
	m.unscheduled = []*schedule.Enrollment{{ID: "enr-c"}}
	m.cursor = Position{Day: 1, Slot: 2, Lane: 1}

	m = pressKey(t, m, "p")

	if m.mode != ModeMove {
		t.Fatalf("mode = %d, want ModeMove", m.mode)
	}
	state := m.drag.State()
	if state.ParticipantRef != "enr-c" {
		t.Errorf("ParticipantRef = %q, want enr-c", state.ParticipantRef)
	}
	if state.Slots != defaultPickupSlots {
		t.Errorf("Slots = %d, want %d", state.Slots, defaultPickupSlots)
	}
	if !m.preview.Valid || m.preview.Time != "10:00" {
		t.Errorf("preview = %+v, want valid 10:00", m.preview)
	}
}

func TestOpenSlotKeyMovesCursor(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 4, Slot: 8, Lane: 1}

	m = pressKey(t, m, "o")

	// Monday 09:00 lane 1 is taken; first free cell on an existing lane
	// follows the occupied block.
	if m.cursor.Day != 0 {
		t.Errorf("Day = %d, want 0", m.cursor.Day)
	}
	if m.cursor.Slot == 8 {
		t.Error("cursor should have moved to an open slot")
	}
}

func TestDeleteKeyOpensConfirmModal(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}

	m = pressKey(t, m, "d")

	if m.mode != ModeModal || m.modalType != ModalConfirmDelete {
		t.Fatalf("mode = %d modal = %d, want delete confirmation", m.mode, m.modalType)
	}
	if m.confirmID != "a" {
		t.Errorf("confirmID = %q, want a", m.confirmID)
	}

	m = pressKey(t, m, "n")
	if m.mode != ModeNormal || m.confirmID != "" {
		t.Errorf("n should close the modal, got mode %d confirmID %q", m.mode, m.confirmID)
	}
}

func TestDeleteConfirmProducesCommand(t *testing.T) {
	m := newTestModel(t)
	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}
	m = pressKey(t, m, "d")

	updated, cmd := m.Update(keyMsg("y"))
	m = updated.(Model)

	if m.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", m.mode)
	}
	if cmd == nil {
		t.Error("confirming delete should produce a command")
	}
}

func TestCtrlCQuitsInAnyMode(t *testing.T) {
	m := newTestModel(t)
	m.mode = ModeMove

	_, cmd := m.Update(keyMsg("ctrl+c"))
	if cmd == nil {
		t.Fatal("ctrl+c should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("ctrl+c command should be tea.Quit")
	}
}
