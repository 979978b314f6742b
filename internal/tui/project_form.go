package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/project"
)

// A simple style for focused text inputs.
var focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("170"))

// projectFormModel edits the name of the product under edit. A project holds
// exactly one product, so this is the whole project form.
type projectFormModel struct {
	ctrl  *project.Controller
	input textinput.Model
	err   error
}

func newProjectFormModel(ctrl *project.Controller) projectFormModel {
	t := textinput.New()
	t.Cursor.Style = focusedStyle
	t.CharLimit = 128
	t.Width = 40
	t.Prompt = i18n.T("project_form.prompt") + " "
	t.Placeholder = i18n.T("project_form.placeholder")

	if p := ctrl.Current(); p != nil && p.Product() != nil {
		t.SetValue(p.Product().Name())
	}
	t.Focus()
	t.TextStyle = focusedStyle

	return projectFormModel{ctrl: ctrl, input: t}
}

func (m projectFormModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m projectFormModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }

		case "enter":
			p := m.ctrl.Current()
			if p == nil || p.Product() == nil {
				m.err = fmt.Errorf("%s", i18n.T("project_form.err_no_project"))
				return m, nil
			}
			name := strings.TrimSpace(m.input.Value())
			if name == "" {
				m.err = fmt.Errorf("%s", i18n.T("project_form.err_empty"))
				return m, nil
			}
			if name != p.Product().Name() {
				p.Product().SetName(name)
				_ = logAction("PRODUCT_RENAMED", "product: "+name)
			}
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m projectFormModel) View() string {
	var viewItems []string

	viewItems = append(viewItems, titleStyle.Render("📦 "+i18n.T("project_form.title")))
	viewItems = append(viewItems, "")
	viewItems = append(viewItems, m.input.View())

	if m.err != nil {
		viewItems = append(viewItems, "", helpStyle.Render(fmt.Sprintf("Error: %v", m.err)))
	}

	viewItems = append(viewItems, "", helpStyle.Render(i18n.T("project_form.help")))

	return lipgloss.JoinVertical(lipgloss.Left, viewItems...)
}
