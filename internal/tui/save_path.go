package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/i18n"
)

// savePathModel asks for a save destination on behalf of a blocked
// controller goroutine. Enter answers the request with a confirmed path,
// esc answers it untouched; either way the goroutine resumes immediately.
type savePathModel struct {
	req   dialogRequest
	input textinput.Model
	// For the overwrite confirmation modal
	isConfirmingOverwrite bool
	confirmCursor         int
	pendingPath           string
	errText               string
	width, height         int
}

func newSavePathModel(req dialogRequest, suggested string) savePathModel {
	t := textinput.New()
	t.Cursor.Style = focusedStyle
	t.CharLimit = 250
	t.Width = 50
	t.Prompt = i18n.T("dialog.prompt.path") + " "

	if req.save.FileName != "" {
		t.SetValue(req.save.FileName)
	} else {
		t.SetValue(suggested)
	}
	t.CursorEnd()
	t.Focus()
	t.TextStyle = focusedStyle

	return savePathModel{req: req, input: t, confirmCursor: 0} // Default to No
}

func (m savePathModel) Init() tea.Cmd {
	return textinput.Blink
}

// accept fills the request model and unblocks the controller.
func (m *savePathModel) accept(path string) tea.Cmd {
	m.req.save.FileName = path
	m.req.save.Confirmed = true
	m.req.answer(nil)
	return func() tea.Msg { return dialogAnsweredMsg{} }
}

// cancel answers the request without touching the model, so the controller
// treats it as a user cancel.
func (m *savePathModel) cancel() tea.Cmd {
	m.req.answer(nil)
	return func() tea.Msg { return dialogAnsweredMsg{} }
}

func (m savePathModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sizeMsg.Width
		m.height = sizeMsg.Height
		return m, nil
	}

	if m.isConfirmingOverwrite {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.isConfirmingOverwrite = false
				return m, nil
			case "right", "tab", "l":
				m.confirmCursor = 1 // Yes
				return m, nil
			case "left", "shift+tab", "h":
				m.confirmCursor = 0 // No
				return m, nil
			case "enter":
				if m.confirmCursor == 1 {
					return m, m.accept(m.pendingPath)
				}
				// Back to the path input to pick another destination.
				m.isConfirmingOverwrite = false
				return m, nil
			}
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "esc":
			return m, m.cancel()
		case "enter":
			path := strings.TrimSpace(m.input.Value())
			if path == "" {
				m.errText = i18n.T("dialog.err.empty_path")
				return m, nil
			}
			path = dialog.EnsureExtension(path, dialog.FileExtension)
			if m.req.save.OverwritePrompt && fileExists(path) {
				m.pendingPath = path
				m.isConfirmingOverwrite = true
				m.confirmCursor = 0
				return m, nil
			}
			return m, m.accept(path)
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m savePathModel) viewOverwriteConfirmation() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("dialog.overwrite.title")))
	b.WriteString("\n\n")
	b.WriteString(specialStyle.Render(i18n.T("dialog.prompt.overwrite", m.pendingPath)))
	b.WriteString("\n\n")

	var yesButton, noButton string
	if m.confirmCursor == 1 { // Yes
		yesButton = activeButtonStyle.Render(i18n.T("dialog.overwrite.yes"))
		noButton = buttonStyle.Render(i18n.T("dialog.overwrite.no"))
	} else { // No
		yesButton = buttonStyle.Render(i18n.T("dialog.overwrite.yes"))
		noButton = activeButtonStyle.Render(i18n.T("dialog.overwrite.no"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton))
	b.WriteString("\n" + helpStyle.Render(i18n.T("keys.help_modal")))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Left, lipgloss.Center,
		dialogBoxStyle.Render(b.String()),
	)
}

func (m savePathModel) View() string {
	if m.isConfirmingOverwrite {
		return m.viewOverwriteConfirmation()
	}

	var viewItems []string
	viewItems = append(viewItems, titleStyle.Render("💾 "+m.req.save.Title))
	viewItems = append(viewItems, "")
	viewItems = append(viewItems, m.input.View())
	viewItems = append(viewItems, "", helpStyle.Render(i18n.T("dialog.filter_note", m.req.save.Filter)))

	if m.errText != "" {
		viewItems = append(viewItems, "", errorStyle.Render(m.errText))
	}

	viewItems = append(viewItems, "", helpStyle.Render(i18n.T("dialog.save.help")))

	return lipgloss.JoinVertical(lipgloss.Left, viewItems...)
}
