package tui

import "github.com/charmbracelet/lipgloss"

// Palette.
//
//nolint:gochecknoglobals // Shared lipgloss palette.
var (
	ColorHeader    = lipgloss.Color("12")
	ColorLabel     = lipgloss.Color("245")
	ColorMuted     = lipgloss.Color("241")
	ColorHighlight = lipgloss.Color("229")
	ColorLink      = lipgloss.Color("39")
	ColorWarning   = lipgloss.Color("214")
	ColorCritical  = lipgloss.Color("196")
	ColorUpcoming  = lipgloss.Color("33")
	ColorSuccess   = lipgloss.Color("28")
	ColorFailed    = lipgloss.Color("160")
	ColorBadgeText = lipgloss.Color("231")
)

// Shared styles.
//
//nolint:gochecknoglobals // Shared lipgloss styles.
var (
	HeaderStyle = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)

	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorMuted).
			Padding(0, 1)

	LabelStyle   = lipgloss.NewStyle().Foreground(ColorLabel)
	MutedStyle   = lipgloss.NewStyle().Foreground(ColorMuted)
	LinkStyle    = lipgloss.NewStyle().Foreground(ColorLink).Underline(true)
	DetailsStyle = lipgloss.NewStyle().Foreground(ColorLabel).PaddingLeft(detailsIndent)
	StatusStyle  = lipgloss.NewStyle().Foreground(ColorWarning)
	ErrorStyle   = lipgloss.NewStyle().Foreground(ColorCritical)
	FooterStyle  = lipgloss.NewStyle().Foreground(ColorMuted).Italic(true)

	SelectedStyle = lipgloss.NewStyle().
			Foreground(ColorHighlight).
			Bold(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(ColorBadgeText).
			Padding(0, 1).
			Bold(true)
)
