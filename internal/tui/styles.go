package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/mgilabert/lectio/internal/tui/theme"
)

// Styles holds the lipgloss styles derived from the active theme.
type Styles struct {
	palette *theme.Palette

	App       lipgloss.Style
	Title     lipgloss.Style
	DayHeader lipgloss.Style
	DayNow    lipgloss.Style
	TimeRuler lipgloss.Style
	EmptyCell lipgloss.Style

	Block       lipgloss.Style
	BlockDim    lipgloss.Style
	BlockPinned lipgloss.Style
	BlockCursor lipgloss.Style
	Preview     lipgloss.Style

	Footer     lipgloss.Style
	Status     lipgloss.Style
	StatusErr  lipgloss.Style
	Help       lipgloss.Style
	MoveBanner lipgloss.Style

	ModalBox   lipgloss.Style
	ModalTitle lipgloss.Style
	ModalText  lipgloss.Style
	ModalMuted lipgloss.Style
}

// NewStyles creates styles from a theme.
func NewStyles(t *theme.Theme) *Styles {
	p := theme.NewPalette(t)

	return &Styles{
		palette: p,

		App:       lipgloss.NewStyle().Background(p.Bg),
		Title:     lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg).Bold(true),
		DayHeader: lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg).Bold(true),
		DayNow:    lipgloss.NewStyle().Foreground(p.TextOnAccent).Background(p.Accent).Bold(true),
		TimeRuler: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		EmptyCell: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),

		Block:       lipgloss.NewStyle().Foreground(p.TextOnBlock).Background(p.BlockBg),
		BlockDim:    lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BlockDimBg),
		BlockPinned: lipgloss.NewStyle().Foreground(p.TextOnBlock).Background(p.BlockBg).Underline(true),
		BlockCursor: lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgSelection).Bold(true),
		Preview:     lipgloss.NewStyle().Foreground(p.TextOnWarning).Background(p.Warning),

		Footer:     lipgloss.NewStyle().Foreground(p.Fg).Background(p.Bg),
		Status:     lipgloss.NewStyle().Foreground(p.Accent).Background(p.Bg),
		StatusErr:  lipgloss.NewStyle().Foreground(p.Warning).Background(p.Bg).Bold(true),
		Help:       lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.Bg),
		MoveBanner: lipgloss.NewStyle().Foreground(p.TextOnWarning).Background(p.Warning).Bold(true),

		ModalBox: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.Accent).
			Background(p.BgHighlight).
			Padding(1, 2),
		ModalTitle: lipgloss.NewStyle().Foreground(p.Accent).Background(p.BgHighlight).Bold(true),
		ModalText:  lipgloss.NewStyle().Foreground(p.Fg).Background(p.BgHighlight),
		ModalMuted: lipgloss.NewStyle().Foreground(p.FgMuted).Background(p.BgHighlight),
	}
}

// BlockStyle picks the style for a session block, shaded by subject color.
func (s *Styles) BlockStyle(subjectColor string, pinned, dimmed bool) lipgloss.Style {
	if dimmed {
		return s.BlockDim.Background(s.palette.SubjectDimBg(subjectColor))
	}
	bg := s.palette.SubjectBg(subjectColor)
	st := s.Block.Background(bg).Foreground(s.palette.TextOn(bg))
	if pinned {
		st = st.Underline(true)
	}
	return st
}
