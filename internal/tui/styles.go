package tui

import "github.com/charmbracelet/lipgloss"

var (
	successColor = lipgloss.Color("#28a745")
	dangerColor  = lipgloss.Color("#dc3545")
	accentColor  = lipgloss.Color("#d4a017")
	subtleColor  = lipgloss.Color("#666666")

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accentColor).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(subtleColor)

	genuineStyle = lipgloss.NewStyle().
			Foreground(successColor)

	fakeStyle = lipgloss.NewStyle().
			Foreground(dangerColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(dangerColor).
			Bold(true)

	genuineCardStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder(), false, false, false, true).
				BorderForeground(successColor).
				PaddingLeft(1)

	fakeCardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder(), false, false, false, true).
			BorderForeground(dangerColor).
			PaddingLeft(1)

	helpStyle = lipgloss.NewStyle().
			Foreground(subtleColor).
			MarginTop(1)

	statBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 2).
			Align(lipgloss.Center)
)
