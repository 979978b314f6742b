package tui

import (
	"errors"
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/model"
	"github.com/toeirei/licmaster/internal/project"
)

// recentsModel lists previously opened project files, most recent first.
// Enter reopens one; the list itself can be pruned without touching the
// files on disk.
type recentsModel struct {
	ctrl    *project.Controller
	recents []model.RecentProject
	cursor  int
	status  string
	err     error
	// For the clear-all confirmation modal
	isConfirmingClear bool
	confirmCursor     int
	opening           bool
	width, height     int
}

func newRecentsModel(ctrl *project.Controller) *recentsModel {
	m := &recentsModel{ctrl: ctrl, confirmCursor: 0} // Default to No
	m.reload()
	return m
}

func (m *recentsModel) reload() {
	recents, err := db.GetRecentProjects(0)
	if err != nil && !errors.Is(err, db.ErrNotInitialized) {
		m.err = err
		return
	}
	m.recents = recents
	if m.cursor >= len(m.recents) {
		if len(m.recents) > 0 {
			m.cursor = len(m.recents) - 1
		} else {
			m.cursor = 0
		}
	}
}

func (m *recentsModel) Init() tea.Cmd {
	return nil
}

func (m *recentsModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if sizeMsg, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = sizeMsg.Width
		m.height = sizeMsg.Height
		return m, nil
	}

	if m.isConfirmingClear {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.isConfirmingClear = false
				return m, nil
			case "right", "tab", "l":
				m.confirmCursor = 1 // Yes
				return m, nil
			case "left", "shift+tab", "h":
				m.confirmCursor = 0 // No
				return m, nil
			case "enter":
				m.isConfirmingClear = false
				if m.confirmCursor == 1 {
					if err := db.ClearRecentProjects(); err != nil {
						m.err = err
						return m, nil
					}
					m.reload()
					m.status = i18n.T("recents.status.cleared")
				}
				return m, nil
			}
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc":
			return m, func() tea.Msg { return backToMenuMsg{} }
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.recents)-1 {
				m.cursor++
			}
		case "enter":
			if m.opening || len(m.recents) == 0 {
				return m, nil
			}
			m.opening = true
			m.status = i18n.T("recents.status.opening")
			return m, openPathCmd(m.ctrl, m.recents[m.cursor].Path)
		case "d":
			if len(m.recents) == 0 {
				return m, nil
			}
			path := m.recents[m.cursor].Path
			if err := db.RemoveRecentProject(path); err != nil {
				m.err = err
				return m, nil
			}
			m.reload()
			m.status = i18n.T("recents.status.removed")
			return m, nil
		case "C":
			if len(m.recents) == 0 {
				return m, nil
			}
			m.isConfirmingClear = true
			m.confirmCursor = 0
			return m, nil
		}
	}

	return m, nil
}

func (m *recentsModel) viewConfirmation() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(i18n.T("recents.confirm_clear.title")))
	b.WriteString("\n\n")
	b.WriteString(specialStyle.Render(i18n.T("recents.confirm_clear.question", len(m.recents))))
	b.WriteString("\n\n")

	var yesButton, noButton string
	if m.confirmCursor == 1 { // Yes
		yesButton = activeButtonStyle.Render(i18n.T("recents.confirm_clear.yes"))
		noButton = buttonStyle.Render(i18n.T("keys.no_cancel"))
	} else { // No
		yesButton = buttonStyle.Render(i18n.T("recents.confirm_clear.yes"))
		noButton = activeButtonStyle.Render(i18n.T("keys.no_cancel"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton))
	b.WriteString("\n" + helpStyle.Render(i18n.T("keys.help_modal")))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Left, lipgloss.Center,
		dialogBoxStyle.Render(b.String()),
	)
}

func (m *recentsModel) View() string {
	if m.isConfirmingClear {
		return m.viewConfirmation()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🗂  " + i18n.T("recents.title")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	if len(m.recents) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("recents.empty")))
	} else {
		for i, r := range m.recents {
			line := "  " + r.String()
			if m.cursor == i {
				line = "▸ " + r.String()
				b.WriteString(selectedItemStyle.Render(line))
			} else {
				b.WriteString(itemStyle.Render(line))
			}
			b.WriteString("\n")
			b.WriteString(helpStyle.Render("    " + i18n.T("recents.last_opened", r.LastOpenedAt.Format("2006-01-02 15:04"))))
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + statusMessageStyle.Render(m.status))
	}
	b.WriteString("\n" + helpStyle.Render(i18n.T("recents.footer")))
	return b.String()
}
