package tui

import "github.com/charmbracelet/lipgloss"

var (
	ColorPrimary = lipgloss.Color("12")
	ColorDanger  = lipgloss.Color("9")
	ColorMuted   = lipgloss.Color("8")

	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Padding(0, 1)

	StatusBarStyle = lipgloss.NewStyle().
			Foreground(ColorMuted).
			Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorDanger).
			Padding(1, 1)

	TableBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(ColorMuted)
)
