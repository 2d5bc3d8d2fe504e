// Package cli provides styled terminal output using lipgloss.
package cli

import "github.com/charmbracelet/lipgloss"

var (
	// SuccessColor marks genuine notes and successful operations.
	SuccessColor = lipgloss.Color("#28a745")
	// ErrorColor marks counterfeit notes and failures.
	ErrorColor = lipgloss.Color("#dc3545")
	// AccentColor is the main theme color.
	AccentColor = lipgloss.Color("#d4a017")
	// SubtleColor marks less prominent output.
	SubtleColor = lipgloss.Color("#666666")

	// TitleStyle is used for section titles.
	TitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(AccentColor)

	// GenuineStyle formats genuine verdicts.
	GenuineStyle = lipgloss.NewStyle().
			Foreground(SuccessColor)

	// FakeStyle formats counterfeit verdicts.
	FakeStyle = lipgloss.NewStyle().
			Foreground(ErrorColor)

	// ErrorStyle formats error messages.
	ErrorStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// SubtleStyle formats secondary text.
	SubtleStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// BoldStyle makes text bold.
	BoldStyle = lipgloss.NewStyle().
			Bold(true)
)
