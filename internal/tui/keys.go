package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/toeirei/licmaster/internal/i18n"
	"github.com/toeirei/licmaster/internal/keytext"
	"github.com/toeirei/licmaster/internal/project"
)

// keyGeneratedMsg is sent by generateKeyCmd when keypair generation finished.
type keyGeneratedMsg struct {
	err error
}

// keysModel shows the keypair of the product under edit and runs the key
// operations: copy to clipboard, export to file, generate. The private key
// is never rendered; it can only be copied, and only past a confirmation.
type keysModel struct {
	ctrl        *project.Controller
	viewport    viewport.Model
	productName string
	publicKey   string
	privateKey  string
	keyInfo     string
	fingerprint string
	hasPair     bool
	status      string
	err         error
	// For confirmation modals
	isConfirmingCopyPrivate bool
	isConfirmingRegenerate  bool
	confirmCursor           int
	generating              bool
	width, height           int
}

func newKeysModel(ctrl *project.Controller) *keysModel {
	m := &keysModel{ctrl: ctrl, viewport: viewport.New(0, 0), confirmCursor: 0} // Default to No
	m.reload()
	return m
}

// reload snapshots the current product into the view. Called at construction
// and after a generation run.
func (m *keysModel) reload() {
	m.productName, m.publicKey, m.privateKey, m.keyInfo, m.fingerprint = "", "", "", "", ""
	m.hasPair = false

	p := m.ctrl.Current()
	if p == nil || p.Product() == nil {
		m.err = fmt.Errorf("%s", i18n.T("menu.status.no_project"))
		return
	}
	prod := p.Product()
	m.productName = prod.Name()
	if !prod.HasKeyPair() {
		m.viewport.SetContent(m.contentView())
		return
	}
	m.hasPair = true
	m.publicKey = prod.PublicKey()
	m.privateKey = prod.PrivateKey()
	if info, err := keytext.Inspect(m.publicKey); err == nil {
		m.keyInfo = fmt.Sprintf("RSA-%d", info.Bits)
		m.fingerprint = info.Fingerprint
	}
	m.viewport.SetContent(m.contentView())
}

// contentView builds the scrollable body: labels up top, then the public key
// wrapped to the viewport width.
func (m *keysModel) contentView() string {
	wrapWidth := m.viewport.Width
	if wrapWidth < 20 {
		wrapWidth = 76
	}

	name := m.productName
	if strings.TrimSpace(name) == "" {
		name = i18n.T("dashboard.product.unnamed")
	}

	var items []string
	items = append(items, formatLabelPadding(i18n.T("keys.label.product"), name, 13))
	if !m.hasPair {
		items = append(items, formatLabelPadding(i18n.T("keys.label.key"), errorStyle.Render(i18n.T("dashboard.keypair.none")), 13))
		items = append(items, "", helpStyle.Render(i18n.T("keys.status.no_keypair")))
		return lipgloss.JoinVertical(lipgloss.Left, items...)
	}

	items = append(items, formatLabelPadding(i18n.T("keys.label.key"), successStyle.Render(m.keyInfo), 13))
	items = append(items, formatLabelPadding(i18n.T("keys.label.fingerprint"), m.fingerprint, 13))
	items = append(items, "", lipgloss.NewStyle().Bold(true).Render(i18n.T("keys.public_key_header")))
	items = append(items, lipgloss.NewStyle().Background(lipgloss.Color("235")).Width(wrapWidth).Render(m.publicKey))
	items = append(items, "", helpStyle.Render(i18n.T("keys.private_note")))

	return lipgloss.JoinVertical(lipgloss.Left, items...)
}

func (m *keysModel) Init() tea.Cmd {
	return nil
}

func (m *keysModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.viewport.Width = msg.Width - 6
		m.viewport.Height = msg.Height - 10
		if m.viewport.Height < 3 {
			m.viewport.Height = 3
		}
		m.viewport.SetContent(m.contentView())
		return m, nil

	case keyGeneratedMsg:
		m.generating = false
		if msg.err != nil {
			m.status = errorStyle.Render(i18n.T("keys.status.generate_failed", msg.err))
			return m, nil
		}
		m.reload()
		m.status = statusMessageStyle.Render(i18n.T("keys.status.generated"))
		return m, nil
	}

	// Handle confirmation modals first.
	if m.isConfirmingCopyPrivate || m.isConfirmingRegenerate {
		if keyMsg, ok := msg.(tea.KeyMsg); ok {
			switch keyMsg.String() {
			case "q", "esc":
				m.isConfirmingCopyPrivate = false
				m.isConfirmingRegenerate = false
				return m, nil
			case "right", "tab", "l":
				m.confirmCursor = 1 // Yes
				return m, nil
			case "left", "shift+tab", "h":
				m.confirmCursor = 0 // No
				return m, nil
			case "enter":
				confirmed := m.confirmCursor == 1
				if m.isConfirmingCopyPrivate {
					m.isConfirmingCopyPrivate = false
					if confirmed {
						m.copyKey(m.privateKey, true)
					}
					return m, nil
				}
				m.isConfirmingRegenerate = false
				if confirmed {
					m.generating = true
					m.status = specialStyle.Render(i18n.T("keys.generating"))
					return m, generateKeyCmd(m.ctrl)
				}
				return m, nil
			}
		}
		return m, nil
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "q", "esc":
			if !m.generating {
				return m, func() tea.Msg { return backToMenuMsg{} }
			}
			return m, nil
		case "c":
			if !m.hasPair {
				m.status = helpStyle.Render(i18n.T("keys.status.no_keypair"))
				return m, nil
			}
			m.copyKey(m.publicKey, false)
			return m, nil
		case "P":
			if !m.hasPair {
				m.status = helpStyle.Render(i18n.T("keys.status.no_keypair"))
				return m, nil
			}
			m.isConfirmingCopyPrivate = true
			m.confirmCursor = 0
			return m, nil
		case "e":
			if !m.hasPair {
				m.status = helpStyle.Render(i18n.T("keys.status.no_keypair"))
				return m, nil
			}
			m.exportPublicKey()
			return m, nil
		case "g":
			if m.generating {
				return m, nil
			}
			if m.hasPair {
				// Replacing a pair invalidates everything signed with it,
				// so it needs an explicit yes.
				m.isConfirmingRegenerate = true
				m.confirmCursor = 0
				return m, nil
			}
			m.generating = true
			m.status = specialStyle.Render(i18n.T("keys.generating"))
			return m, generateKeyCmd(m.ctrl)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// copyKey hands one half of the pair to the clipboard and records the
// action.
func (m *keysModel) copyKey(keyText string, private bool) {
	if err := m.ctrl.CopyToClipboard(keyText); err != nil {
		m.status = errorStyle.Render(i18n.T("keys.status.copy_failed", err))
		return
	}
	if private {
		_ = logAction("KEY_COPIED", "private key, product: "+m.productName)
		m.status = specialStyle.Render(i18n.T("keys.status.copied_private"))
		return
	}
	_ = logAction("KEY_COPIED", "public key, product: "+m.productName)
	m.status = statusMessageStyle.Render(i18n.T("keys.status.copied_public"))
}

// exportPublicKey writes the public half next to the working directory using
// a name derived from the product.
func (m *keysModel) exportPublicKey() {
	filename := exportFileName(m.productName)
	if err := WriteKeyFile(filename, []byte(m.publicKey)); err != nil {
		m.status = errorStyle.Render(i18n.T("keys.status.export_failed", err))
		return
	}
	_ = logAction("KEY_EXPORTED", "file: "+filename)
	m.status = statusMessageStyle.Render(i18n.T("keys.status.exported", filename))
}

func (m *keysModel) viewConfirmation() string {
	var title, question, yesLabel string
	if m.isConfirmingCopyPrivate {
		title = i18n.T("keys.confirm_private.title")
		question = i18n.T("keys.confirm_private.question", m.productName)
		yesLabel = i18n.T("keys.yes_copy")
	} else {
		title = i18n.T("keys.confirm_regenerate.title")
		question = i18n.T("keys.confirm_regenerate.question", m.productName)
		yesLabel = i18n.T("keys.yes_generate")
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n\n")
	b.WriteString(specialStyle.Render(question))
	b.WriteString("\n\n")

	var yesButton, noButton string
	if m.confirmCursor == 1 { // Yes
		yesButton = activeButtonStyle.Render(yesLabel)
		noButton = buttonStyle.Render(i18n.T("keys.no_cancel"))
	} else { // No
		yesButton = buttonStyle.Render(yesLabel)
		noButton = activeButtonStyle.Render(i18n.T("keys.no_cancel"))
	}
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, noButton, "  ", yesButton))
	b.WriteString("\n" + helpStyle.Render(i18n.T("keys.help_modal")))

	return lipgloss.Place(m.width, m.height,
		lipgloss.Left, lipgloss.Center,
		dialogBoxStyle.Render(b.String()),
	)
}

func (m *keysModel) View() string {
	if m.isConfirmingCopyPrivate || m.isConfirmingRegenerate {
		return m.viewConfirmation()
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("🔑 " + i18n.T("keys.title")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}

	b.WriteString(m.viewport.View())
	b.WriteString("\n")
	if m.status != "" {
		b.WriteString("\n" + m.status)
	}
	b.WriteString("\n" + helpStyle.Render(i18n.T("keys.footer")))
	return b.String()
}

// generateKeyCmd runs keypair generation off the event loop; RSA generation
// takes long enough to stutter the UI otherwise.
func generateKeyCmd(ctrl *project.Controller) tea.Cmd {
	return func() tea.Msg {
		return keyGeneratedMsg{err: ctrl.GenerateKey()}
	}
}

// exportFileName derives the export destination from the product name.
func exportFileName(productName string) string {
	base := sanitizeFileName(productName)
	if base == "" {
		base = "product"
	}
	return base + "_public.xml"
}
