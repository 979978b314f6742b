// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"sync"

	"github.com/toeirei/licmaster/internal/db"
)

// auditWriter overrides the audit sink for this package. Tests inject a
// recorder here so view actions can be asserted without a database.
var (
	auditMu     sync.RWMutex
	auditWriter db.AuditWriter
)

// SetAuditWriter routes this package's audit entries to w.
func SetAuditWriter(w db.AuditWriter) {
	auditMu.Lock()
	auditWriter = w
	auditMu.Unlock()
}

// ClearAuditWriter restores the default audit sink.
func ClearAuditWriter() {
	auditMu.Lock()
	auditWriter = nil
	auditMu.Unlock()
}

// logAction writes one audit entry through the override when set, otherwise
// through db.DefaultAuditWriter. With no sink at all the entry is dropped;
// audit is best-effort bookkeeping around the project workflow.
func logAction(action, details string) error {
	auditMu.RLock()
	w := auditWriter
	auditMu.RUnlock()
	if w == nil {
		w = db.DefaultAuditWriter()
	}
	if w == nil {
		return nil
	}
	return w.LogAction(action, details)
}
