// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/viper"

	"github.com/toeirei/licmaster/buildvars"
	"github.com/toeirei/licmaster/internal/clipboard"
	"github.com/toeirei/licmaster/internal/crypto/rsakey"
	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/dialog"
	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/keytext"
	"github.com/toeirei/licmaster/internal/logging"
	"github.com/toeirei/licmaster/internal/model"
	"github.com/toeirei/licmaster/internal/project"
	"github.com/toeirei/licmaster/internal/store"
)

type viewState int

const (
	// menuView is the main dashboard and navigation menu.
	menuView viewState = iota
	projectFormView
	keysView
	savePathView
	openFileView
	recentsView
	auditLogView
	languageView
)

// A message to signal that we should go back to the main menu.
type backToMenuMsg struct{}

// projectDataMsg is a message containing the data for the main menu dashboard.
type projectDataMsg struct {
	data projectData
}

// languageChangedMsg is a message to signal that the language has changed and the UI should be re-initialized.
type languageChangedMsg struct{}

// projectSavedMsg reports the outcome of a save run. saved is false both on
// cancel and on error; err tells the two apart.
type projectSavedMsg struct {
	saved bool
	err   error
}

// projectOpenedMsg reports the outcome of an open run, whether it came from
// the picker or from the recent-projects list.
type projectOpenedMsg struct {
	opened bool
	path   string
	err    error
}

// projectData holds the summary information for the main menu view.
type projectData struct {
	hasProject     bool
	productName    string
	associatedFile string
	dirty          bool
	canSave        bool
	hasKeyPair     bool
	keyInfo        string
	recents        []model.RecentProject
	recentLogs     []model.AuditLogEntry
	err            error
}

// mainModel is the top-level model for the TUI. It acts as a state machine
// and router, delegating updates and view rendering to the currently active sub-model.
type mainModel struct {
	state    viewState
	ctrl     *project.Controller
	bridge   *dialogBridge
	menu     menuModel
	form     projectFormModel
	keys     *keysModel
	auditLog *auditLogModel
	recents  *recentsModel
	savePath savePathModel
	openFile openFileModel
	language languageModel
	project  projectData
	status   string
	// busy is set while a save or open runs on a controller goroutine.
	// Menu actions that would take the controller lock are held off until
	// the outcome message lands, so the event loop can never block behind
	// a pending picker request.
	busy   bool
	width  int
	height int
	err    error
}

// menuModel holds the state for the main menu.
type menuModel struct {
	choices []string // The menu items to show.
	cursor  int      // Which menu item our cursor is pointing at.
}

// languageModel holds the state for the language selection menu.
type languageModel struct {
	choices     map[string]string // map of lang code to display name
	orderedKeys []string          // for stable iteration
	cursor      int
}

// initialModel creates the starting state of the TUI, beginning at the main
// menu. The controller and bridge are injected so tests can drive the model
// with fakes.
func initialModel(ctrl *project.Controller, bridge *dialogBridge) mainModel {
	return mainModel{
		state:  menuView,
		ctrl:   ctrl,
		bridge: bridge,
		menu: menuModel{
			choices: []string{
				i18n.T("menu.new_project"),
				i18n.T("menu.rename_product"),
				i18n.T("menu.view_keys"),
				i18n.T("menu.save_project"),
				i18n.T("menu.open_project"),
				i18n.T("menu.recent_projects"),
				i18n.T("menu.view_audit_log"),
				i18n.T("menu.language"),
			},
		},
	}
}

// Init is the first function that will be called by the Bubble Tea runtime.
// It kicks off the dashboard load and parks the dialog-bridge listener.
func (m mainModel) Init() tea.Cmd {
	return tea.Batch(refreshProjectCmd(m.ctrl), waitForDialogCmd(m.bridge))
}

// Update is the main message loop. It handles all events (like key presses and
// window size changes) and delegates them to the active sub-model.
func (m mainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Global keybindings that work everywhere.
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
	case projectDataMsg:
		m.project = msg.data
		if msg.data.err != nil {
			m.err = msg.data.err
		}
		return m, nil

	case languageChangedMsg:
		// The language has changed. Re-initialize the entire model to apply new translations everywhere.
		// The bridge listener stays parked across the swap, so it is not re-armed here.
		newModel := initialModel(m.ctrl, m.bridge)
		newModel.width = m.width
		newModel.height = m.height
		return newModel, refreshProjectCmd(newModel.ctrl)

	case dialogRequestMsg:
		// A controller goroutine wants a file picked. Route to the matching
		// view; the request travels inside the view model.
		if msg.req.save != nil {
			m.state = savePathView
			m.savePath = newSavePathModel(msg.req, suggestedProjectFileName(m.project.productName))
			var updated tea.Model
			updated, cmd = m.savePath.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
			m.savePath = updated.(savePathModel)
			return m, cmd
		}
		m.state = openFileView
		m.openFile = newOpenFileModel(msg.req)
		var updated tea.Model
		updated, cmd = m.openFile.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.openFile = updated.(openFileModel)
		return m, tea.Batch(m.openFile.picker.Init(), cmd)

	case dialogAnsweredMsg:
		// The picker replied; the controller goroutine is running again.
		// Park a fresh listener for the next request.
		m.state = menuView
		return m, waitForDialogCmd(m.bridge)

	case projectSavedMsg:
		m.busy = false
		switch {
		case msg.err != nil:
			m.status = errorStyle.Render(i18n.T("menu.status.save_failed", msg.err))
		case msg.saved:
			m.status = statusMessageStyle.Render(i18n.T("menu.status.saved"))
		default:
			m.status = helpStyle.Render(i18n.T("menu.status.save_cancelled"))
		}
		return m, refreshProjectCmd(m.ctrl)

	case projectOpenedMsg:
		m.busy = false
		m.state = menuView
		switch {
		case msg.err != nil:
			m.status = errorStyle.Render(i18n.T("menu.status.open_failed", msg.err))
		case msg.opened:
			m.status = statusMessageStyle.Render(i18n.T("menu.status.opened"))
		default:
			m.status = helpStyle.Render(i18n.T("menu.status.open_cancelled"))
		}
		return m, refreshProjectCmd(m.ctrl)
	}

	// Delegate updates to the currently active view.
	switch m.state {
	case projectFormView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshProjectCmd(m.ctrl)
		}
		var newFormModel tea.Model
		newFormModel, cmd = m.form.Update(msg)
		m.form = newFormModel.(projectFormModel)

	case keysView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshProjectCmd(m.ctrl)
		}
		var newKeysModel tea.Model
		newKeysModel, cmd = m.keys.Update(msg)
		m.keys = newKeysModel.(*keysModel)

	case savePathView:
		var newSaveModel tea.Model
		newSaveModel, cmd = m.savePath.Update(msg)
		m.savePath = newSaveModel.(savePathModel)

	case openFileView:
		var newOpenModel tea.Model
		newOpenModel, cmd = m.openFile.Update(msg)
		m.openFile = newOpenModel.(openFileModel)

	case recentsView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshProjectCmd(m.ctrl)
		}
		var newRecentsModel tea.Model
		newRecentsModel, cmd = m.recents.Update(msg)
		m.recents = newRecentsModel.(*recentsModel)

	case auditLogView:
		if _, ok := msg.(backToMenuMsg); ok {
			m.state = menuView
			return m, refreshProjectCmd(m.ctrl)
		}
		var newAuditLogModel tea.Model
		newAuditLogModel, cmd = m.auditLog.Update(msg)
		m.auditLog = newAuditLogModel.(*auditLogModel)

	case languageView:
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.state = menuView
				return m, refreshProjectCmd(m.ctrl)
			case "up", "k":
				if m.language.cursor > 0 {
					m.language.cursor--
				}
			case "down", "j":
				if m.language.cursor < len(m.language.orderedKeys)-1 {
					m.language.cursor++
				}
			case "enter":
				langCode := m.language.orderedKeys[m.language.cursor]
				i18n.SetLang(langCode)
				viper.Set("language", langCode)
				if err := configSaver.Save(); err != nil {
					m.err = fmt.Errorf("failed to save config: %w", err)
				}

				// Signal that the language has changed so the entire UI can be re-initialized.
				return m, func() tea.Msg { return languageChangedMsg{} }
			}
		}
		var newLangModel tea.Model
		newLangModel, cmd = m.language.Update(msg)
		m.language = newLangModel.(languageModel)

	default: // menuView
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q":
				return m, tea.Quit
			case "up", "k":
				if m.menu.cursor > 0 {
					m.menu.cursor--
				}
			case "down", "j":
				if m.menu.cursor < len(m.menu.choices)-1 {
					m.menu.cursor++
				}
			case "enter":
				return m.runMenuAction(m.menu.cursor)
			case "L":
				// "L" opens the language menu from anywhere on the dashboard.
				m.state = languageView
				m.language = newLanguageModel()
				return m, nil
			}
		}
	}

	return m, cmd
}

// runMenuAction dispatches the selected main-menu entry.
func (m mainModel) runMenuAction(index int) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	if m.busy {
		m.status = helpStyle.Render(i18n.T("menu.status.busy"))
		return m, nil
	}

	switch index {
	case 0: // New Project
		m.ctrl.NewProject()
		m.status = ""
		m.state = projectFormView
		m.form = newProjectFormModel(m.ctrl)
		return m, tea.Batch(m.form.Init(), refreshProjectCmd(m.ctrl))
	case 1: // Rename Product
		if !m.project.hasProject {
			m.status = helpStyle.Render(i18n.T("menu.status.no_project"))
			return m, nil
		}
		m.state = projectFormView
		m.form = newProjectFormModel(m.ctrl)
		return m, m.form.Init()
	case 2: // View Keys
		if !m.project.hasProject {
			m.status = helpStyle.Render(i18n.T("menu.status.no_project"))
			return m, nil
		}
		m.state = keysView
		m.keys = newKeysModel(m.ctrl)
		var updated tea.Model
		updated, cmd = m.keys.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.keys = updated.(*keysModel)
		return m, cmd
	case 3: // Save Project
		if !m.project.canSave {
			m.status = helpStyle.Render(i18n.T("menu.status.nothing_to_save"))
			return m, nil
		}
		m.busy = true
		m.status = helpStyle.Render(i18n.T("menu.status.saving"))
		return m, saveProjectCmd(m.ctrl)
	case 4: // Open Project
		m.busy = true
		m.status = helpStyle.Render(i18n.T("menu.status.opening"))
		return m, openProjectCmd(m.ctrl)
	case 5: // Recent Projects
		m.state = recentsView
		m.recents = newRecentsModel(m.ctrl)
		var updated tea.Model
		updated, cmd = m.recents.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.recents = updated.(*recentsModel)
		return m, cmd
	case 6: // View Audit Log
		m.state = auditLogView
		m.auditLog = newAuditLogModel()
		var updated tea.Model
		updated, cmd = m.auditLog.Update(tea.WindowSizeMsg{Width: m.width, Height: m.height})
		m.auditLog = updated.(*auditLogModel)
		return m, cmd
	case 7: // Language
		m.state = languageView
		m.language = newLanguageModel()
		return m, nil
	}
	return m, nil
}

// View renders the TUI. It's called after every Update and delegates rendering
// to the currently active sub-model.
func (m mainModel) View() string {
	if m.err != nil {
		// A simple error view
		errView := lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Padding(1, 2)
		return errView.Render(fmt.Sprintf("An error occurred: %v", m.err))
	}

	// Delegate rendering to the currently active view.
	switch m.state {
	case projectFormView:
		return m.form.View()
	case keysView:
		return m.keys.View()
	case savePathView:
		return m.savePath.View()
	case openFileView:
		return m.openFile.View()
	case recentsView:
		return m.recents.View()
	case auditLogView:
		return m.auditLog.View()
	case languageView:
		return m.language.View()
	default: // menuView
		return m.menu.View(m.project, m.status, m.width, m.height)
	}
}

// formatLabelPadding aligns a label/value pair on the label column.
func formatLabelPadding(label, value string, labelWidth int) string {
	if labelWidth <= 0 || len(label) >= labelWidth {
		return label + " " + value
	}
	return label + strings.Repeat(" ", labelWidth-len(label)) + " " + value
}

// View renders the main menu and the project dashboard.
func (m menuModel) View(data projectData, status string, width, height int) string {
	// Title (i18n)
	title := mainTitleStyle.Render("🔏 " + i18n.T("dashboard.title"))
	subTitle := helpStyle.Render(i18n.T("dashboard.subtitle"))
	header := lipgloss.JoinVertical(lipgloss.Left, title, subTitle)

	// --- Panes ---
	paneTitleStyle := lipgloss.NewStyle().Bold(true)

	// Menu List (Left Pane)
	var menuItems []string
	menuItems = append(menuItems, paneTitleStyle.Render(i18n.T("menu.navigation")), "")
	for i, choice := range m.choices {
		if m.cursor == i {
			menuItems = append(menuItems, selectedItemStyle.Render("▸ "+choice))
		} else {
			menuItems = append(menuItems, itemStyle.Render("  "+choice))
		}
	}
	menuContent := lipgloss.JoinVertical(lipgloss.Left, menuItems...)

	// Project Dashboard (Right Pane)
	var dashboardItems []string
	dashboardItems = append(dashboardItems, paneTitleStyle.Render(i18n.T("dashboard.project")), "")

	productName := data.productName
	if strings.TrimSpace(productName) == "" {
		productName = helpStyle.Render(i18n.T("dashboard.product.unnamed"))
	}
	keypairStatus := errorStyle.Render(i18n.T("dashboard.keypair.none"))
	if data.hasKeyPair {
		keypairStatus = successStyle.Render(data.keyInfo)
	}
	fileStatus := helpStyle.Render(i18n.T("dashboard.file.none"))
	if data.associatedFile != "" {
		fileStatus = data.associatedFile
	}
	changesStatus := successStyle.Render(i18n.T("dashboard.changes.clean"))
	if data.dirty {
		changesStatus = specialStyle.Render(i18n.T("dashboard.changes.dirty"))
	}

	statusItems := []struct {
		label string
		value string
	}{
		{i18n.T("dashboard.product"), productName},
		{i18n.T("dashboard.keypair"), keypairStatus},
		{i18n.T("dashboard.file"), fileStatus},
		{i18n.T("dashboard.changes"), changesStatus},
	}

	maxLabelLen := 0
	for _, item := range statusItems {
		if len(item.label) > maxLabelLen {
			maxLabelLen = len(item.label)
		}
	}
	for _, item := range statusItems {
		dashboardItems = append(dashboardItems, formatLabelPadding(item.label, item.value, maxLabelLen))
	}

	// --- Layout ---
	paneStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(colorSubtle).
		Padding(1, 2)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footerStyle.Render(""))
	paneHeight := height - headerHeight - footerHeight - 2 // -2 for newlines around mainArea

	menuWidth := 38
	dashboardWidth := width - 4 - menuWidth - 2
	innerDashboardWidth := dashboardWidth - 4 - 2

	// Recent Projects
	dashboardItems = append(dashboardItems, "", "", paneTitleStyle.Render(i18n.T("dashboard.recent_projects")), "")
	if len(data.recents) == 0 {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.no_recent_projects")))
	} else {
		for _, r := range data.recents {
			line := r.String()
			if len(line) > innerDashboardWidth && innerDashboardWidth > 3 {
				line = line[:innerDashboardWidth-3] + "..."
			}
			dashboardItems = append(dashboardItems, itemStyle.Render(line))
		}
	}

	// Recent Activity
	dashboardItems = append(dashboardItems, "", "", paneTitleStyle.Render(i18n.T("dashboard.recent_activity")), "")
	if len(data.recentLogs) == 0 {
		dashboardItems = append(dashboardItems, helpStyle.Render(i18n.T("dashboard.no_recent_activity")))
	} else {
		for _, log := range data.recentLogs {
			dashboardItems = append(dashboardItems, renderActivityLine(log, innerDashboardWidth))
		}
	}

	if status != "" {
		dashboardItems = append(dashboardItems, "", status)
	}
	dashboardContent := lipgloss.JoinVertical(lipgloss.Left, dashboardItems...)

	leftPane := paneStyle.Width(menuWidth).Height(paneHeight).Render(menuContent)
	rightPane := paneStyle.Width(dashboardWidth).Height(paneHeight).MarginLeft(2).Render(dashboardContent)

	mainArea := lipgloss.JoinHorizontal(lipgloss.Top, leftPane, rightPane)

	// Footer/help line with the build version pinned to the right. The
	// footer style pads one cell per side, so the inner line is width-2.
	verTag := "Licmaster " + buildvars.VersionOrDefault("dev")
	footer := footerStyle.Render(AlignFooter(i18n.T("dashboard.footer"), verTag, width-2))

	return lipgloss.JoinVertical(lipgloss.Top, header, mainArea, footer)
}

// renderActivityLine renders one audit entry for the dashboard, truncating
// the details to the available width.
func renderActivityLine(log model.AuditLogEntry, availableWidth int) string {
	// RFC3339 to "MM-DD HH:MM" for compact display.
	ts := log.Timestamp
	if len(ts) >= 16 {
		ts = strings.Replace(ts[5:16], "T", " ", 1)
	}

	styledAction := auditActionStyle(log.Action).Render(log.Action)

	detailsWidth := availableWidth - len(ts) - len(log.Action) - 2
	if detailsWidth < 10 {
		detailsWidth = 10
	}
	details := log.Details
	if len(details) > detailsWidth {
		details = details[:detailsWidth-3] + "..."
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		helpStyle.Render(ts), " ", styledAction, " ", helpStyle.Render(details))
}

// newLanguageModel creates a new model for the language selection view.
func newLanguageModel() languageModel {
	// Get the dynamically discovered locales from the i18n package.
	choices := i18n.GetAvailableLocales()

	// Create a sorted list of keys for stable iteration and display order.
	keys := make([]string, 0, len(choices))
	for k := range choices {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return languageModel{
		choices:     choices,
		orderedKeys: keys,
		cursor:      0,
	}
}

// Init for languageModel.
func (m languageModel) Init() tea.Cmd { return nil }

// Update for languageModel.
func (m languageModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) { return m, nil }

// View for languageModel.
func (m languageModel) View() string {
	title := mainTitleStyle.Render("🌐 " + i18n.T("menu.language"))

	var listItems []string
	listItems = append(listItems, titleStyle.Render(i18n.T("language.select")), "")

	for i, langCode := range m.orderedKeys {
		displayName := m.choices[langCode]
		line := "  " + displayName
		if m.cursor == i {
			line = "▸ " + displayName
			listItems = append(listItems, selectedItemStyle.Render(line))
		} else {
			listItems = append(listItems, itemStyle.Render(line))
		}
	}

	paneStyle := lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(colorSubtle).Padding(1, 2)
	listPane := paneStyle.Width(60).Render(lipgloss.JoinVertical(lipgloss.Left, listItems...))

	helpLine := footerStyle.Render(AlignFooter(i18n.T("language.help"), "", 60))

	return lipgloss.JoinVertical(lipgloss.Left, title, "", listPane, "", helpLine)
}

// Options configures the interactive session.
type Options struct {
	// OpenPath is a project file to load before the first frame. When empty
	// the session starts on a fresh project.
	OpenPath string
	// KeyBits sizes generated keypairs. Zero falls back to the rsakey
	// package default.
	KeyBits int
	// KeepBackups snapshots an existing destination file to .bak before a
	// save overwrites it.
	KeepBackups bool
}

// Run is the main entrypoint for the TUI. It assembles the controller stack
// around the in-terminal dialog gateway, then initializes and runs the
// Bubble Tea program.
func Run(opts Options) error {
	bridge := newDialogBridge()
	fileStore := store.NewFileStore()
	fileStore.KeepBackups = opts.KeepBackups
	ctrl := project.NewController(rsakey.Generator{Bits: opts.KeyBits}, fileStore, bridge, clipboard.System{})

	if opts.OpenPath != "" {
		if err := ctrl.OpenPath(opts.OpenPath); err != nil {
			return fmt.Errorf("cannot open %s: %w", opts.OpenPath, err)
		}
	} else {
		ctrl.NewProject()
	}

	if _, err := tea.NewProgram(initialModel(ctrl, bridge)).Run(); err != nil {
		logging.Errorf("TUI run error: %v", err)
		return err
	}
	return nil
}

// refreshProjectCmd is a tea.Cmd that snapshots the controller state and the
// dashboard extras for the main menu. A database that is not configured is
// tolerated; the dashboard just shows empty lists then.
func refreshProjectCmd(ctrl *project.Controller) tea.Cmd {
	return func() tea.Msg {
		data := projectData{}
		if p := ctrl.Current(); p != nil {
			data.hasProject = true
			data.associatedFile = p.AssociatedFile()
			if prod := p.Product(); prod != nil {
				data.productName = prod.Name()
				data.hasKeyPair = prod.HasKeyPair()
				if data.hasKeyPair {
					if desc, err := keytext.Describe(prod.PublicKey()); err == nil {
						data.keyInfo = desc
					}
				}
			}
		}
		data.dirty = ctrl.Dirty()
		data.canSave = ctrl.CanSave()

		recents, err := db.GetRecentProjects(5)
		if err != nil && !errors.Is(err, db.ErrNotInitialized) {
			data.err = err
		}
		data.recents = recents

		logs, err := db.GetAllAuditLogEntries()
		if err != nil && !errors.Is(err, db.ErrNotInitialized) {
			data.err = err
		}
		if len(logs) > 5 {
			logs = logs[:5]
		}
		data.recentLogs = logs

		return projectDataMsg{data: data}
	}
}

// saveProjectCmd runs the save workflow on its own goroutine. The first save
// of a project prompts through the dialog bridge; later saves write straight
// to the associated file.
func saveProjectCmd(ctrl *project.Controller) tea.Cmd {
	return func() tea.Msg {
		saved, err := ctrl.Save()
		return projectSavedMsg{saved: saved, err: err}
	}
}

// openProjectCmd runs the open workflow on its own goroutine, prompting
// through the dialog bridge.
func openProjectCmd(ctrl *project.Controller) tea.Cmd {
	return func() tea.Msg {
		opened, err := ctrl.Open()
		return projectOpenedMsg{opened: opened, err: err}
	}
}

// openPathCmd opens a known path without a picker, used by the
// recent-projects list.
func openPathCmd(ctrl *project.Controller, path string) tea.Cmd {
	return func() tea.Msg {
		err := ctrl.OpenPath(path)
		return projectOpenedMsg{opened: err == nil, path: path, err: err}
	}
}

// suggestedProjectFileName proposes a destination for a first save based on
// the product name.
func suggestedProjectFileName(productName string) string {
	name := sanitizeFileName(productName)
	if name == "" {
		name = "project"
	}
	return name + dialog.FileExtension
}
