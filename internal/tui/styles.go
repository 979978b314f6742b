// package tui provides the terminal user interface for Licmaster.
// This file collects the lipgloss styles shared by the views so the
// dashboard, forms and dialogs keep one visual language.
package tui // import "github.com/toeirei/licmaster/internal/tui"

import "github.com/charmbracelet/lipgloss"

// Core palette. Everything below derives from these.
const (
	colorSubtle    = lipgloss.Color("240") // muted gray for help lines
	colorHighlight = lipgloss.Color("105") // violet accent
	colorSpecial   = lipgloss.Color("208") // orange for destructive hints
	colorError     = lipgloss.Color("196")
	colorSuccess   = lipgloss.Color("40")
	colorWhite     = lipgloss.Color("231")
)

var (
	helpStyle    = lipgloss.NewStyle().Foreground(colorSubtle)
	errorStyle   = lipgloss.NewStyle().Foreground(colorError)
	successStyle = lipgloss.NewStyle().Foreground(colorSuccess)
	specialStyle = lipgloss.NewStyle().Foreground(colorSpecial)

	// Dashboard banner title.
	mainTitleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 3)

	// Section titles inside panes.
	titleStyle = lipgloss.NewStyle().
			Foreground(colorHighlight).
			Bold(true).
			Padding(1, 2)

	// List rows.
	itemStyle         = lipgloss.NewStyle()
	selectedItemStyle = lipgloss.NewStyle().Foreground(colorHighlight)

	// Footer/help bar at the bottom of full-screen views.
	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Background(lipgloss.Color("236")).
			Padding(0, 1).
			Italic(true)

	// Modal dialogs (save destination, overwrite and discard prompts).
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(colorHighlight).
			Padding(1, 2).
			Width(60)

	// Dialog buttons. lipgloss styles are values, so chaining off the base
	// style yields an independent derived style.
	buttonStyle = lipgloss.NewStyle().
			Foreground(colorWhite).
			Background(lipgloss.Color("237")).
			Padding(0, 3).
			MarginTop(1)

	activeButtonStyle = buttonStyle.
				Background(colorHighlight).
				Underline(true)

	// Inline status pill shown after an action completes.
	statusMessageStyle = lipgloss.NewStyle().
				Padding(0, 1).
				Foreground(colorWhite).
				Background(colorHighlight)
)
