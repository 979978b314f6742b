package tui

import (
	"os"

	"github.com/charmbracelet/bubbles/filepicker"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/i18n"
)

// openFileModel picks an existing project file on behalf of a blocked
// controller goroutine, using the bubbles filepicker restricted to project
// files.
type openFileModel struct {
	req     dialogRequest
	picker  filepicker.Model
	errText string
	width   int
	height  int
}

func newOpenFileModel(req dialogRequest) openFileModel {
	fp := filepicker.New()
	fp.AllowedTypes = []string{dialog.FileExtension}
	if wd, err := os.Getwd(); err == nil {
		fp.CurrentDirectory = wd
	}
	fp.ShowHidden = false
	fp.DirAllowed = false
	fp.FileAllowed = true
	fp.AutoHeight = false
	fp.Height = 12

	return openFileModel{req: req, picker: fp}
}

func (m openFileModel) Init() tea.Cmd {
	return m.picker.Init()
}

func (m openFileModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if msg.Height > 10 {
			m.picker.Height = msg.Height - 8
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			// Leave the request model untouched; the controller reads it
			// as a cancel.
			m.req.answer(nil)
			return m, func() tea.Msg { return dialogAnsweredMsg{} }
		}
	}

	var cmd tea.Cmd
	m.picker, cmd = m.picker.Update(msg)

	if didSelect, path := m.picker.DidSelectFile(msg); didSelect {
		m.req.open.FileName = path
		m.req.open.Confirmed = true
		m.req.answer(nil)
		return m, func() tea.Msg { return dialogAnsweredMsg{} }
	}
	if didSelect, path := m.picker.DidSelectDisabledFile(msg); didSelect {
		m.errText = i18n.T("dialog.err.not_project_file", path)
	}

	return m, cmd
}

func (m openFileModel) View() string {
	var viewItems []string
	viewItems = append(viewItems, titleStyle.Render("📂 "+m.req.open.Title))
	viewItems = append(viewItems, "")
	viewItems = append(viewItems, m.picker.View())

	if m.errText != "" {
		viewItems = append(viewItems, errorStyle.Render(m.errText))
	}

	viewItems = append(viewItems, helpStyle.Render(i18n.T("dialog.open.help")))

	return lipgloss.JoinVertical(lipgloss.Left, viewItems...)
}
