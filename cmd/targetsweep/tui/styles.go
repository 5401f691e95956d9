// Package tui is the interactive list of artifact directories: the operator
// moves a selection over the scan results and sends directories to the trash.
// It is built on Bubble Tea, Lip Gloss and Bubbles.
package tui

import "github.com/charmbracelet/lipgloss"

// Color palette.
var (
	primaryColor = lipgloss.Color("#7D56F4")
	accentColor  = lipgloss.Color("#00D9FF")

	successColor = lipgloss.Color("#28A745")
	warningColor = lipgloss.Color("#FFC107")
	dangerColor  = lipgloss.Color("#DC3545")

	mutedColor     = lipgloss.Color("#666666")
	highlightColor = lipgloss.Color("#1A1A2E")
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(primaryColor)

	countStyle = lipgloss.NewStyle().
			Foreground(accentColor)

	mutedTextStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	// listBoxStyle frames the result list.
	listBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primaryColor).
			Padding(0, 1)

	selectedItemStyle = lipgloss.NewStyle().
				Background(highlightColor).
				Foreground(lipgloss.Color("#FFFFFF")).
				Bold(true)

	normalItemStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#CCCCCC"))

	markerStyle = lipgloss.NewStyle().
			Foreground(primaryColor).
			Bold(true)

	successTextStyle = lipgloss.NewStyle().
				Foreground(successColor)

	warningTextStyle = lipgloss.NewStyle().
				Foreground(warningColor)

	errorTextStyle = lipgloss.NewStyle().
			Foreground(dangerColor)
)

// statusKind selects the status line color.
type statusKind int

const (
	statusInfo statusKind = iota
	statusSuccess
	statusWarning
	statusError
)

func (k statusKind) style() lipgloss.Style {
	switch k {
	case statusSuccess:
		return successTextStyle
	case statusWarning:
		return warningTextStyle
	case statusError:
		return errorTextStyle
	default:
		return mutedTextStyle
	}
}
