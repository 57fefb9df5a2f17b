package tui

import (
	"github.com/charmbracelet/lipgloss"
)

// Layout constants for responsive terminal width
const (
	MinTerminalWidth = 60  // Minimum supported terminal width
	MaxContentWidth  = 120 // Maximum content width before capping
)

// Color palette
var (
	PrimaryColor   = lipgloss.Color("#7D56F4") // Purple
	SecondaryColor = lipgloss.Color("#43BF6D") // Green
	WarningColor   = lipgloss.Color("#FFA500") // Orange
	ErrorColor     = lipgloss.Color("#FF0000") // Red
	TextColor      = lipgloss.Color("#FFFFFF") // White
	SubtleColor    = lipgloss.Color("#626262") // Gray
)

// Common styles
var (
	// Title style for section headings
	TitleStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor).
			Bold(true).
			MarginBottom(1)

	// Table header row
	TableHeaderStyle = lipgloss.NewStyle().
				Foreground(PrimaryColor).
				Bold(true)

	// Unselected table row
	RowStyle = lipgloss.NewStyle().
			Foreground(TextColor)

	// Row under the cursor
	SelectedRowStyle = lipgloss.NewStyle().
				Foreground(SecondaryColor).
				Bold(true)

	// Row currently in edit mode
	EditingRowStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// Per-row save-failure indicator
	SaveFailedStyle = lipgloss.NewStyle().
			Foreground(ErrorColor).
			Bold(true)

	// Empty-state message (no devices, or fetch failure text)
	EmptyStateStyle = lipgloss.NewStyle().
			Foreground(SubtleColor).
			Italic(true).
			Padding(1, 2)

	// Status line at the bottom of the panel
	StatusStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)

	// Note shown under the map when locations are missing
	MapNoteStyle = lipgloss.NewStyle().
			Foreground(WarningColor)

	// Confirmation modal box
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(WarningColor).
			Padding(1, 3)

	// Modal buttons
	ModalButtonStyle = lipgloss.NewStyle().
				Foreground(TextColor).
				Padding(0, 2)
	ModalButtonActiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#1A1A1A")).
				Background(WarningColor).
				Bold(true).
				Padding(0, 2)

	// Spinner style for the initial load
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(PrimaryColor)

	// Help text style
	HelpStyle = lipgloss.NewStyle().
			Foreground(SubtleColor)
)

// contentWidth clamps the usable width for rendering.
func contentWidth(width int) int {
	if width < MinTerminalWidth {
		return MinTerminalWidth
	}
	if width > MaxContentWidth {
		return MaxContentWidth
	}
	return width
}
