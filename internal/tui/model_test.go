// Package tui provides the terminal user interface for lectio.
package tui

import (
	"testing"

	"github.com/mgilabert/lectio/internal/config"
	"github.com/mgilabert/lectio/internal/schedule"
)

// newTestModel builds a model with two overlapping Monday sessions and
// one Wednesday session, no storage attached.
func newTestModel(t *testing.T) Model {
	t.Helper()

	cfg := config.Default()
	m := New(nil, nil, cfg)
	m.width = 140
	m.height = 50
	m.loading = false
	m.labels = map[string]*schedule.ParticipantLabel{
		"enr-a": {StudentName: "Ana", SubjectName: "Math", Color: "#8caaee"},
		"enr-b": {StudentName: "Ben", SubjectName: "Physics", Color: "#a6d189"},
		"enr-c": {StudentName: "Carla", SubjectName: "Latin", Color: "#e78284"},
	}
	m.setSessions([]*schedule.Session{
		{ID: "a", Weekday: 0, StartsAt: "09:00", EndsAt: "10:00", Lane: 1, ParticipantRefs: []string{"enr-a"}},
		{ID: "b", Weekday: 0, StartsAt: "09:30", EndsAt: "10:30", Lane: 2, ParticipantRefs: []string{"enr-b"}},
		{ID: "c", Weekday: 2, StartsAt: "16:00", EndsAt: "17:00", Lane: 1, ParticipantRefs: []string{"enr-c"}},
	})
	return *m
}

func TestNewModel_Defaults(t *testing.T) {
	cfg := config.Default()
	m := New(nil, nil, cfg)

	if m.mode != ModeNormal {
		t.Errorf("mode = %d, want ModeNormal", m.mode)
	}
	if m.cellsPerSlot != defaultCellsPerSlot {
		t.Errorf("cellsPerSlot = %d, want %d", m.cellsPerSlot, defaultCellsPerSlot)
	}
	if m.cursor.Lane != 1 {
		t.Errorf("cursor.Lane = %d, want 1", m.cursor.Lane)
	}
	if !m.loading {
		t.Error("new model should start in loading state")
	}
	if m.gridCfg.DayStartMinutes != 540 || m.gridCfg.DayEndMinutes != 1440 {
		t.Errorf("day window = %d..%d, want 540..1440",
			m.gridCfg.DayStartMinutes, m.gridCfg.DayEndMinutes)
	}
}

func TestSetSessions_ComputesLayouts(t *testing.T) {
	m := newTestModel(t)

	if got := m.layouts[0].MaxLane; got != 2 {
		t.Errorf("Monday MaxLane = %d, want 2", got)
	}
	if got := m.layouts[2].MaxLane; got != 1 {
		t.Errorf("Wednesday MaxLane = %d, want 1", got)
	}
	if got := m.layouts[1].MaxLane; got != 0 {
		t.Errorf("Tuesday MaxLane = %d, want 0", got)
	}
	if _, ok := m.layouts[0].Rects["a"]; !ok {
		t.Error("session a missing from Monday layout")
	}
}

func TestSessionAtCursor(t *testing.T) {
	m := newTestModel(t)

	m.cursor = Position{Day: 0, Slot: 0, Lane: 1}
	if s := m.sessionAtCursor(); s == nil || s.ID != "a" {
		t.Errorf("sessionAtCursor = %v, want a", s)
	}

	// 09:30 on lane 2 is session b.
	m.cursor = Position{Day: 0, Slot: 1, Lane: 2}
	if s := m.sessionAtCursor(); s == nil || s.ID != "b" {
		t.Errorf("sessionAtCursor = %v, want b", s)
	}

	// 11:00 is free.
	m.cursor = Position{Day: 0, Slot: 4, Lane: 1}
	if s := m.sessionAtCursor(); s != nil {
		t.Errorf("sessionAtCursor = %v, want nil", s)
	}
}

func TestSetCellsPerSlot_Clamps(t *testing.T) {
	m := newTestModel(t)

	m.setCellsPerSlot(1)
	if m.cellsPerSlot != minCellsPerSlot {
		t.Errorf("cellsPerSlot = %d, want %d", m.cellsPerSlot, minCellsPerSlot)
	}
	m.setCellsPerSlot(99)
	if m.cellsPerSlot != maxCellsPerSlot {
		t.Errorf("cellsPerSlot = %d, want %d", m.cellsPerSlot, maxCellsPerSlot)
	}
	if m.gridCfg.SlotWidthPX != maxCellsPerSlot {
		t.Errorf("gridCfg.SlotWidthPX = %d, want %d", m.gridCfg.SlotWidthPX, maxCellsPerSlot)
	}
}

func TestClampCursor(t *testing.T) {
	m := newTestModel(t)

	m.cursor = Position{Day: 9, Slot: 999, Lane: 17}
	m.clampCursor()
	if m.cursor.Day != 6 {
		t.Errorf("Day = %d, want 6", m.cursor.Day)
	}
	if max := m.gridCfg.Slots() - 1; m.cursor.Slot != max {
		t.Errorf("Slot = %d, want %d", m.cursor.Slot, max)
	}
	if m.cursor.Lane != 1 {
		t.Errorf("Lane = %d, want 1 on an empty day", m.cursor.Lane)
	}

	m.cursor = Position{Day: -2, Slot: -5, Lane: 0}
	m.clampCursor()
	if m.cursor != (Position{Day: 0, Slot: 0, Lane: 1}) {
		t.Errorf("cursor = %+v, want origin", m.cursor)
	}
}

func TestRenderLanes_ReservesDuringDrag(t *testing.T) {
	m := newTestModel(t)

	if got := m.renderLanes(0); got != 2 {
		t.Errorf("renderLanes = %d, want 2 when idle", got)
	}

	handle, err := m.drag.BeginDrag("a")
	if err != nil {
		t.Fatalf("BeginDrag: %v", err)
	}
	defer m.drag.CancelDrag(handle)

	if got := m.renderLanes(0); got != m.gridCfg.ReserveLanes {
		t.Errorf("renderLanes = %d, want %d during drag", got, m.gridCfg.ReserveLanes)
	}
}
