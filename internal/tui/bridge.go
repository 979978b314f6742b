// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/toeirei/licmaster/internal/dialog"
)

// dialogRequest carries one picker request from a controller goroutine to
// the TUI event loop. Exactly one of save/open is set; the requesting
// goroutine blocks on done until a view has filled in the model.
type dialogRequest struct {
	save *dialog.SaveModel
	open *dialog.OpenModel
	done chan error
}

// answer unblocks the requesting goroutine. The result fields of the dialog
// model must be final before calling this.
func (r dialogRequest) answer(err error) {
	r.done <- err
}

// dialogBridge implements dialog.Gateway on top of the bubbletea event loop.
// The project controller calls ShowSaveDialog/ShowOpenDialog from a tea.Cmd
// goroutine; the bridge parks the request on a channel that the main model
// drains via waitForDialogCmd, switches to the matching picker view, and
// answers once the user confirmed or cancelled.
type dialogBridge struct {
	requests chan dialogRequest
}

func newDialogBridge() *dialogBridge {
	return &dialogBridge{requests: make(chan dialogRequest)}
}

// ShowSaveDialog blocks until the save-path view answered the request.
func (b *dialogBridge) ShowSaveDialog(m *dialog.SaveModel) error {
	req := dialogRequest{save: m, done: make(chan error, 1)}
	b.requests <- req
	return <-req.done
}

// ShowOpenDialog blocks until the file-picker view answered the request.
func (b *dialogBridge) ShowOpenDialog(m *dialog.OpenModel) error {
	req := dialogRequest{open: m, done: make(chan error, 1)}
	b.requests <- req
	return <-req.done
}

// dialogRequestMsg delivers a parked picker request to the main model.
type dialogRequestMsg struct {
	req dialogRequest
}

// dialogAnsweredMsg signals that the active picker view replied to its
// request and the main model should return to the menu and re-arm the wait.
type dialogAnsweredMsg struct{}

// waitForDialogCmd parks on the bridge until a controller operation asks for
// a picker. The main model re-issues it after every answered request so the
// next Save/Open can prompt again.
func waitForDialogCmd(b *dialogBridge) tea.Cmd {
	return func() tea.Msg {
		return dialogRequestMsg{req: <-b.requests}
	}
}
