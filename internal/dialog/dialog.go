// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package dialog describes file-picker requests and responses as plain data,
// decoupled from how they are presented. The project controller builds a
// model, hands it to a Gateway, and reads the outcome back off the model;
// whether a terminal prompt, a TUI view or a test double fills it in is
// invisible to the caller.
package dialog // import "github.com/toeirei/licmaster/internal/dialog"

import (
	"strings"

	"github.com/toeirei/licmaster/internal/i18n"
)

// LicenseFileFilter is the file filter for project files, in the classic
// "<label>|<pattern>" notation.
const LicenseFileFilter = "Rhino License|*.rlic"

// FileExtension is the extension gateways append to bare file names.
const FileExtension = ".rlic"

// SaveModel describes one save-picker request. Confirmed and FileName are
// the response: a gateway sets Confirmed only when the user accepted a
// destination, and leaves the model untouched on cancel.
type SaveModel struct {
	Title           string
	Filter          string
	OverwritePrompt bool
	FileName        string
	Confirmed       bool
}

// OpenModel describes one open-picker request. There is no overwrite
// semantics; a confirmed result names an existing file.
type OpenModel struct {
	Title     string
	Filter    string
	FileName  string
	Confirmed bool
}

// Gateway presents dialog models to a user. Implementations fill in the
// model's result fields. A cancelled dialog is not an error; errors signal
// that the dialog could not be presented or answered at all.
type Gateway interface {
	ShowSaveDialog(m *SaveModel) error
	ShowOpenDialog(m *OpenModel) error
}

// NewSaveModel builds the default save-picker request: license-file filter,
// overwrite prompting on.
func NewSaveModel() SaveModel {
	return SaveModel{
		Title:           i18n.T("dialog.save.title"),
		Filter:          LicenseFileFilter,
		OverwritePrompt: true,
	}
}

// NewOpenModel builds the default open-picker request.
func NewOpenModel() OpenModel {
	return OpenModel{
		Title:  i18n.T("dialog.open.title"),
		Filter: LicenseFileFilter,
	}
}

// FilterPattern extracts the glob part of a "<label>|<pattern>" filter.
// Filters without the separator are returned as-is.
func FilterPattern(filter string) string {
	if i := strings.LastIndex(filter, "|"); i >= 0 {
		return strings.TrimSpace(filter[i+1:])
	}
	return strings.TrimSpace(filter)
}

// EnsureExtension appends ext to path unless it already ends with it.
// Comparison is case-insensitive so "FILE.RLIC" is left alone.
func EnsureExtension(path, ext string) string {
	if path == "" || ext == "" {
		return path
	}
	if strings.HasSuffix(strings.ToLower(path), strings.ToLower(ext)) {
		return path
	}
	return path + ext
}
