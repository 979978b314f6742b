// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import "github.com/toeirei/licmaster/internal/db"

// auditWriter lets command tests capture audit entries. Commands run
// sequentially, so a bare package var is enough here.
var auditWriter db.AuditWriter

// logAction writes one audit entry through the test override when set,
// otherwise through db.DefaultAuditWriter. With no sink at all the entry
// is dropped.
func logAction(action, details string) error {
	w := auditWriter
	if w == nil {
		w = db.DefaultAuditWriter()
	}
	if w == nil {
		return nil
	}
	return w.LogAction(action, details)
}
