package tui

import "github.com/charmbracelet/lipgloss"

var (
	red    = lipgloss.Color("#e3350d")
	ink    = lipgloss.Color("#1f2937")
	muted  = lipgloss.Color("#6b7280")
	border = lipgloss.Color("#d1d5db")
	gold   = lipgloss.Color("#f59e0b")
	teal   = lipgloss.Color("#0d9488")
)

// Styles holds every style the browser draws with.
type Styles struct {
	Title     lipgloss.Style
	Header    lipgloss.Style
	Pane      lipgloss.Style
	Focused   lipgloss.Style
	Item      lipgloss.Style
	Selected  lipgloss.Style
	Cursor    lipgloss.Style
	Muted     lipgloss.Style
	Tier      lipgloss.Style
	Tab       lipgloss.Style
	ActiveTab lipgloss.Style
	Error     lipgloss.Style
	Help      lipgloss.Style
	Spinner   lipgloss.Style
}

// DefaultStyles returns the browser palette.
func DefaultStyles() Styles {
	pane := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(border).
		Padding(0, 1)

	return Styles{
		Title:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(red).Padding(0, 1),
		Header:    lipgloss.NewStyle().Bold(true).Foreground(ink).MarginBottom(1),
		Pane:      pane,
		Focused:   pane.BorderForeground(red),
		Item:      lipgloss.NewStyle().Foreground(ink),
		Selected:  lipgloss.NewStyle().Bold(true).Foreground(red),
		Cursor:    lipgloss.NewStyle().Foreground(teal),
		Muted:     lipgloss.NewStyle().Foreground(muted),
		Tier:      lipgloss.NewStyle().Bold(true).Foreground(gold),
		Tab:       lipgloss.NewStyle().Foreground(muted).Padding(0, 1),
		ActiveTab: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#ffffff")).Background(teal).Padding(0, 1),
		Error:     lipgloss.NewStyle().Foreground(red),
		Help:      lipgloss.NewStyle().Foreground(muted).MarginTop(1),
		Spinner:   lipgloss.NewStyle().Foreground(red),
	}
}
