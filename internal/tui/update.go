package tui

import (
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgilabert/lectio/internal/grid"
	"github.com/mgilabert/lectio/internal/tui/commands"
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case tea.MouseMsg:
		return m.handleMouseMsg(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ensureCursorVisible()
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case commands.SessionsLoadedMsg:
		m.setSessions(msg.Sessions)
		m.loading = false
		return m, nil

	case commands.RosterLoadedMsg:
		m.labels = msg.Labels
		m.unscheduled = msg.Unscheduled
		if m.pickIndex >= len(m.unscheduled) {
			m.pickIndex = 0
		}
		return m, nil

	case commands.PlacementsAppliedMsg:
		cmd := m.setStatus(fmt.Sprintf("Placed %d session(s)", msg.Count), 3*time.Second)
		return m, tea.Batch(cmd,
			commands.LoadSessions(m.repo),
			commands.LoadRoster(m.roster))

	case commands.SessionDeletedMsg:
		cmd := m.setStatus("Session removed", 3*time.Second)
		return m, tea.Batch(cmd,
			commands.LoadSessions(m.repo),
			commands.LoadRoster(m.roster))

	case commands.SummaryMsg:
		m.weekSummary = msg.Summary
		m.summaryCopyText = buildSummaryCopyText(msg.Summary)
		m.mode = ModeModal
		m.modalType = ModalSummary
		m.statusMsg = ""
		return m, nil

	case commands.ErrMsg:
		m.err = msg.Err
		LogError(msg.Err)
		return m, m.setStatus(fmt.Sprintf("Error: %v", msg.Err), 5*time.Second)

	case commands.StatusMsgCmd:
		return m, m.setStatus(msg.Msg, 3*time.Second)

	case commands.ClearStatusMsg:
		if time.Now().After(m.statusTime) {
			m.statusMsg = ""
		}
		return m, nil
	}

	return m, nil
}

// handleMouseMsg drives the drag controller from mouse events. Press
// picks up the session under the pointer, motion updates the drop
// preview, release commits.
func (m Model) handleMouseMsg(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	day, x, y, ok := m.cellToGrid(msg.X, msg.Y)

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft || !ok || m.drag.Dragging() {
			return m, nil
		}
		if s := m.sessionAtCell(day, x, y); s != nil {
			handle, err := m.drag.BeginDrag(s.ID)
			if err != nil {
				return m, nil
			}
			m.handle = handle
			m.mode = ModeMove
			m.preview, _ = m.drag.UpdateDragTarget(m.handle, x, y, day)
			LogDrag("begin", s.ID)
		}
		return m, nil

	case tea.MouseActionMotion:
		if !m.drag.Dragging() {
			return m, nil
		}
		if !ok {
			m.preview, _ = m.drag.UpdateDragTarget(m.handle, -1, -1, 0)
			return m, nil
		}
		m.preview, _ = m.drag.UpdateDragTarget(m.handle, x, y, day)
		return m, nil

	case tea.MouseActionRelease:
		if !m.drag.Dragging() {
			return m, nil
		}
		return m.commitDrag()
	}

	return m, nil
}

// commitDrag finishes the active gesture and persists its mutations.
func (m Model) commitDrag() (tea.Model, tea.Cmd) {
	mutations, err := m.drag.CommitDrag(m.handle)
	m.mode = ModeNormal
	m.preview = grid.PreviewState{}
	if err != nil {
		LogError(err)
		return m, m.setStatus(fmt.Sprintf("Error: %v", err), 5*time.Second)
	}
	if len(mutations) == 0 {
		return m, nil
	}
	LogDrag("commit", mutations[0].SessionID)
	return m, commands.ApplyPlacements(m.repo, placementsFromMutations(mutations))
}
