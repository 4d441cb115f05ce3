// Package styles holds the Lip Gloss styles shared across the portal UI.
// Colors come from the theme section of the config; Apply installs them once
// at startup before the program runs.
package styles

import (
	"github.com/charmbracelet/lipgloss"

	"careport/internal/config"
)

// Mutable package state, written once by Apply before the event loop starts.
var (
	HighlightColor lipgloss.Color = "#AD58B4"
	SubtleColor    lipgloss.Color = "#5C5C5C"
	ErrorColor     lipgloss.Color = "#E95678"
	SuccessColor   lipgloss.Color = "#73F59F"
	InfoColor      lipgloss.Color = "#26BBD9"
	WarnColor      lipgloss.Color = "#FAB795"

	Title     lipgloss.Style
	StepLabel lipgloss.Style
	Focused   lipgloss.Style
	Blurred   lipgloss.Style
	Hint      lipgloss.Style
	GroupName lipgloss.Style
	Required  lipgloss.Style
	FieldErr  lipgloss.Style
	Cursor    lipgloss.Style
	Spinner   lipgloss.Style
	Box       lipgloss.Style
	BoxFocus  lipgloss.Style
)

func init() {
	rebuild()
}

// Apply installs the configured theme colors.
func Apply(theme config.ThemeConfig) {
	if theme.Highlight != "" {
		HighlightColor = lipgloss.Color(theme.Highlight)
	}
	if theme.Subtle != "" {
		SubtleColor = lipgloss.Color(theme.Subtle)
	}
	if theme.Error != "" {
		ErrorColor = lipgloss.Color(theme.Error)
	}
	if theme.Success != "" {
		SuccessColor = lipgloss.Color(theme.Success)
	}
	rebuild()
}

func rebuild() {
	Title = lipgloss.NewStyle().Bold(true).Foreground(HighlightColor)
	StepLabel = lipgloss.NewStyle().Bold(true)
	Focused = lipgloss.NewStyle().Foreground(HighlightColor)
	Blurred = lipgloss.NewStyle().Foreground(SubtleColor)
	Hint = lipgloss.NewStyle().Foreground(SubtleColor).Italic(true)
	GroupName = lipgloss.NewStyle().Bold(true).Underline(true)
	Required = lipgloss.NewStyle().Foreground(ErrorColor)
	FieldErr = lipgloss.NewStyle().Foreground(ErrorColor)
	Cursor = lipgloss.NewStyle().Foreground(HighlightColor)
	Spinner = lipgloss.NewStyle().Foreground(HighlightColor)
	Box = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(SubtleColor).Padding(0, 1)
	BoxFocus = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(HighlightColor).Padding(0, 1)
}
