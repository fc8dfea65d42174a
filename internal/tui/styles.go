package tui

import "github.com/charmbracelet/lipgloss"

var (
	accentColor = lipgloss.Color("#3B82F6")
	busyColor   = lipgloss.Color("#F59E0B")
	mutedColor  = lipgloss.Color("#6B7280")

	titleStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	breadcrumbStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	cursorStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	focusedStyle = lipgloss.NewStyle().
			Bold(true)

	disabledStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	spinnerStyle = lipgloss.NewStyle().
			Foreground(busyColor)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)
)
