package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/model"
)

type auditLogModel struct {
	table       table.Model
	allEntries  []model.AuditLogEntry // Master list of all log entries
	filter      string
	filterCol   int // 0=all, 1=timestamp, 2=user, 3=action, 4=details
	isFiltering bool
	err         error
}

// auditActionStyle color-codes an audit action by what it did: key material
// leaving the app gets attention, project lifecycle reads as routine.
func auditActionStyle(action string) lipgloss.Style {
	switch {
	case strings.HasPrefix(action, "PROJECT_"),
		strings.HasPrefix(action, "KEYPAIR_"):
		return successStyle
	case strings.HasPrefix(action, "KEY_COPIED"),
		strings.HasPrefix(action, "KEY_EXPORTED"):
		return specialStyle
	case strings.HasPrefix(action, "PRODUCT_"),
		strings.HasPrefix(action, "DB_"):
		return helpStyle
	default:
		return itemStyle
	}
}

func newAuditLogModel() *auditLogModel {
	m := &auditLogModel{}
	entries, err := db.GetAllAuditLogEntries()
	if err != nil {
		m.err = err
		return m
	}
	m.allEntries = entries

	columns := []table.Column{
		{Title: i18n.T("audit_log.header.timestamp"), Width: 20},
		{Title: i18n.T("audit_log.header.user"), Width: 15},
		{Title: i18n.T("audit_log.header.action"), Width: 20},
		{Title: i18n.T("audit_log.header.details"), Width: 55},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(15), // Placeholder height
	)

	// --- Styles ---
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(colorSubtle).
		BorderBottom(true).
		Bold(true)
	s.Selected = s.Selected.
		Foreground(colorWhite).
		Background(colorHighlight).
		Bold(false)
	t.SetStyles(s)

	m.table = t
	m.rebuildTableRows()
	return m
}

// filterableColumns is "all" plus the four table columns.
const filterableColumns = 5

// matchesColumn reports whether needle occurs in the chosen column, or in any
// column when col is 0 ("all"). The needle must already be lower-cased.
func matchesColumn(cols [4]string, col int, needle string) bool {
	if col >= 1 && col <= len(cols) {
		return strings.Contains(strings.ToLower(cols[col-1]), needle)
	}
	for _, c := range cols {
		if strings.Contains(strings.ToLower(c), needle) {
			return true
		}
	}
	return false
}

// rebuildTableRows filters the master list of entries and populates the table.
func (m *auditLogModel) rebuildTableRows() {
	var rows []table.Row
	needle := strings.ToLower(m.filter)

	for _, entry := range m.allEntries {
		cols := [4]string{entry.Timestamp, entry.Username, entry.Action, entry.Details}
		if needle != "" && !matchesColumn(cols, m.filterCol, needle) {
			continue
		}

		// RFC3339 reads better without the T, and fractional seconds are
		// noise at this width.
		ts := entry.Timestamp
		if len(ts) > 19 {
			ts = ts[:19]
		}
		ts = strings.Replace(ts, "T", " ", 1)

		actionCell := auditActionStyle(entry.Action).Render(entry.Action)

		rows = append(rows, table.Row{ts, entry.Username, actionCell, entry.Details})
	}
	m.table.SetRows(rows)

	// Go to the top of the table after filtering
	if m.isFiltering {
		m.table.GotoTop()
	}
}

func (m *auditLogModel) Init() tea.Cmd {
	return nil
}

func (m *auditLogModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		cmd  tea.Cmd
		cmds []tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		// Adjust table height based on window size.
		// header(3) + filter/help(3)
		m.table.SetHeight(msg.Height - 6)
		m.table.SetWidth(msg.Width - 4)

	case tea.KeyMsg:
		// If filtering, handle input.
		if m.isFiltering {
			switch msg.Type {
			case tea.KeyEsc:
				m.isFiltering = false
				m.filter = ""
				m.rebuildTableRows()
			case tea.KeyEnter:
				m.isFiltering = false
			case tea.KeyBackspace:
				if len(m.filter) > 0 {
					m.filter = m.filter[:len(m.filter)-1]
					m.rebuildTableRows()
				}
			case tea.KeyRunes:
				m.filter += string(msg.Runes)
				m.rebuildTableRows()
			case tea.KeyTab:
				m.filterCol = (m.filterCol + 1) % filterableColumns
				m.rebuildTableRows()
			case tea.KeyShiftTab:
				m.filterCol = (m.filterCol + filterableColumns - 1) % filterableColumns
				m.rebuildTableRows()
			}
			return m, nil
		}

		// Not filtering, handle commands.
		switch msg.String() {
		case "/":
			m.isFiltering = true
			m.filter = ""
			m.rebuildTableRows()
			return m, nil
		case "q", "esc":
			if m.filter != "" {
				m.filter = ""
				m.isFiltering = false
				m.rebuildTableRows()
				return m, nil
			}
			return m, func() tea.Msg { return backToMenuMsg{} }
		}
	}

	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

func (m *auditLogModel) View() string {
	if m.err != nil {
		return errorStyle.Render(i18n.T("audit_log.error", m.err))
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("📜 "+i18n.T("audit_log.title")) + "\n\n")

	if len(m.table.Rows()) == 0 {
		b.WriteString(helpStyle.Render(i18n.T("audit_log.empty")))
		b.WriteString(m.footerView())
		return b.String()
	}

	// Render the table with headers
	b.WriteString(m.table.View())
	b.WriteString(m.footerView())
	return b.String()
}

func (m *auditLogModel) footerView() string {
	colNames := []string{
		i18n.T("all"),
		i18n.T("audit_log.header.timestamp"),
		i18n.T("audit_log.header.user"),
		i18n.T("audit_log.header.action"),
		i18n.T("audit_log.header.details"),
	}
	var filterStatus string
	switch {
	case m.isFiltering:
		filterStatus = i18n.T("audit_log.filter.editing", colNames[m.filterCol], m.filter)
	case m.filter != "":
		filterStatus = i18n.T("audit_log.filter.applied", colNames[m.filterCol], m.filter)
	default:
		filterStatus = i18n.T("audit_log.filter.prompt")
	}
	return helpStyle.Render("\n" + i18n.T("audit_log.footer.hint") + "  " + filterStatus)
}
