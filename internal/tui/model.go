// Package tui provides the terminal user interface for lectio.
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mgilabert/lectio/internal/config"
	"github.com/mgilabert/lectio/internal/grid"
	"github.com/mgilabert/lectio/internal/schedule"
	"github.com/mgilabert/lectio/internal/summary"
	"github.com/mgilabert/lectio/internal/tui/commands"
	"github.com/mgilabert/lectio/internal/tui/theme"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeMove        // Carrying a session or an unscheduled participant
	ModeModal
)

// ModalType identifies the type of modal.
type ModalType int

const (
	ModalNone ModalType = iota
	ModalConfirmDelete
	ModalSummary
)

// Position is the cursor position on the weekly grid.
type Position struct {
	Day  int // 0=Monday .. 6=Sunday
	Slot int // slot index within the day window
	Lane int // lane >= 1
}

// Cell geometry defaults. Slots map to terminal columns and lanes to
// terminal rows; +/- adjusts the slot width at runtime.
const (
	defaultCellsPerSlot = 4
	minCellsPerSlot     = 2
	maxCellsPerSlot     = 10
)

// Model is the main TUI model.
type Model struct {
	// Dependencies
	repo   schedule.Repository
	roster schedule.Roster
	config *config.Config

	// Theme and styles
	theme  *theme.Theme
	styles *Styles

	// Engine state
	gridCfg  grid.Config
	drag     *grid.Controller
	handle   grid.Handle
	preview  grid.PreviewState
	sessions []*schedule.Session
	layouts  [7]grid.LayoutResult

	// Roster display data
	labels      map[string]*schedule.ParticipantLabel
	unscheduled []*schedule.Enrollment
	pickIndex   int // selected entry in the unscheduled strip

	// Interaction state
	cursor  Position
	mode    Mode
	loading bool
	spinner spinner.Model

	// Modal state
	modalType       ModalType
	confirmID       string // session pending delete confirmation
	weekSummary     *summary.WeekSummary
	summaryCopyText string

	// Terminal dimensions and layout
	width        int
	height       int
	cellsPerSlot int
	scrollOffset int // horizontal scroll, in slots

	// Messages
	statusMsg  string
	statusTime time.Time

	// Error state
	err error
}

// New creates a new TUI model.
func New(repo schedule.Repository, roster schedule.Roster, cfg *config.Config) *Model {
	t, err := theme.Load(cfg.UI.Theme)
	if err != nil {
		t, _ = theme.Load("frappe")
	}

	dayStart, dayEnd := cfg.DayWindow()
	gridCfg := grid.Config{
		DayStartMinutes: dayStart,
		DayEndMinutes:   dayEnd,
		SlotWidthPX:     defaultCellsPerSlot,
		LaneHeightPX:    1,
		MinBlockWidthPX: minCellsPerSlot,
		ReserveLanes:    cfg.Grid.ReserveLanes,
	}

	styles := NewStyles(t)
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Status

	return &Model{
		repo:         repo,
		roster:       roster,
		config:       cfg,
		theme:        t,
		styles:       styles,
		spinner:      sp,
		gridCfg:      gridCfg,
		drag:         grid.NewController(gridCfg),
		labels:       map[string]*schedule.ParticipantLabel{},
		cursor:       Position{Lane: 1},
		mode:         ModeNormal,
		loading:      true,
		cellsPerSlot: defaultCellsPerSlot,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		commands.LoadSessions(m.repo),
		commands.LoadRoster(m.roster),
		m.spinner.Tick,
	)
}

// setSessions replaces the session snapshot and recomputes every
// weekday's layout. Layout is cheap and idempotent; it runs on every
// session-list change instead of diffing.
func (m *Model) setSessions(sessions []*schedule.Session) {
	m.sessions = sessions
	m.drag.SetSessions(sessions)
	for day := 0; day <= 6; day++ {
		layout, err := grid.ComputeLayout(m.gridCfg, sessions, day)
		if err != nil {
			m.err = err
			continue
		}
		m.layouts[day] = layout
	}
	m.clampCursor()
}

// setCellsPerSlot rebuilds the cell geometry after a zoom change.
func (m *Model) setCellsPerSlot(cells int) {
	if cells < minCellsPerSlot {
		cells = minCellsPerSlot
	}
	if cells > maxCellsPerSlot {
		cells = maxCellsPerSlot
	}
	m.cellsPerSlot = cells
	m.gridCfg.SlotWidthPX = cells
	m.drag = grid.NewController(m.gridCfg)
	m.setSessions(m.sessions)
	if m.mode == ModeMove {
		// Zooming aborts a key-driven move; the gesture's geometry is stale.
		m.mode = ModeNormal
	}
}

// clampCursor keeps the cursor inside the day window and lane band.
func (m *Model) clampCursor() {
	if m.cursor.Day < 0 {
		m.cursor.Day = 0
	}
	if m.cursor.Day > 6 {
		m.cursor.Day = 6
	}
	if m.cursor.Slot < 0 {
		m.cursor.Slot = 0
	}
	if max := m.gridCfg.Slots() - 1; m.cursor.Slot > max {
		m.cursor.Slot = max
	}
	if m.cursor.Lane < 1 {
		m.cursor.Lane = 1
	}
	if lanes := m.renderLanes(m.cursor.Day); m.cursor.Lane > lanes {
		m.cursor.Lane = lanes
	}
}

// renderLanes returns how many lanes to draw for a weekday.
func (m Model) renderLanes(day int) int {
	return m.gridCfg.RenderLanes(m.layouts[day].MaxLane, m.drag.Dragging())
}

// sessionAtCursor returns the session under the cursor, or nil.
func (m Model) sessionAtCursor() *schedule.Session {
	return m.sessionAtCell(m.cursor.Day, m.cursor.Slot*m.cellsPerSlot, m.cursor.Lane-1)
}

// setStatus shows a transient status line message.
func (m *Model) setStatus(msg string, d time.Duration) tea.Cmd {
	m.statusMsg = msg
	m.statusTime = time.Now().Add(d)
	return tea.Tick(d, func(time.Time) tea.Msg {
		return commands.ClearStatusMsg{}
	})
}

// Run starts the TUI.
func Run(repo schedule.Repository, roster schedule.Roster, cfg *config.Config) error {
	return RunWithDebug(repo, roster, cfg, false)
}

// RunWithDebug starts the TUI with optional debug logging.
func RunWithDebug(repo schedule.Repository, roster schedule.Roster, cfg *config.Config, debug bool) error {
	if err := InitDebugLogger(debug); err != nil {
		return err
	}
	defer CloseDebugLogger()

	model := New(repo, roster, cfg)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
	_, err := p.Run()
	return err
}
