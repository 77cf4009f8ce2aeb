package bubbletea

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	muted   = lipgloss.Color("#6B7280")
	white   = lipgloss.Color("#FFFFFF")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primary)

	matchStyle = lipgloss.NewStyle().
			Bold(true).
			Underline(true)

	kindStyle = lipgloss.NewStyle().
			Foreground(muted).
			Italic(true)

	activeStyle = lipgloss.NewStyle().
			Background(primary).
			Foreground(white)

	mutedStyle = lipgloss.NewStyle().
			Foreground(muted)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(primary).
			Bold(true)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444"))
)
