package tui

import "github.com/charmbracelet/lipgloss"

// Studio palette
const (
	colorAccent    = "#E0529C"
	colorAccentAlt = "#6A5AE0"
	colorReady     = "#2EC27E"
	colorFailure   = "#E5484D"
	colorMuted     = "#8A8F98"
	colorInk       = "#FFFFFF"
)

// Gradient ends of the video progress bar
const (
	barFrom = colorAccentAlt
	barTo   = colorAccent
)

var (
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorAccent)).
			MarginBottom(1)

	StatusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorReady))

	ErrorStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorFailure))

	InfoStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorMuted))

	// BoxStyle frames results and the publish form
	BoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colorAccentAlt)).
			Padding(0, 2)

	// HighlightStyle renders button-like labels
	HighlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(colorInk)).
			Background(lipgloss.Color(colorAccentAlt)).
			Padding(0, 2)

	TabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color(colorMuted)).
			Padding(0, 2)

	ActiveTabStyle = TabStyle.
			Bold(true).
			Foreground(lipgloss.Color(colorInk)).
			Background(lipgloss.Color(colorAccent))
)
