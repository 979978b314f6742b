// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"github.com/toeirei/licmaster/internal/model"
	"github.com/uptrace/bun"
)

// Store defines the interface for all database operations in Licmaster.
// This allows for multiple database backends to be implemented.
type Store interface {
	// Audit log methods
	LogAction(action string, details string) error
	GetAllAuditLogEntries() ([]model.AuditLogEntry, error)
	SearchAuditLogEntries(term string) ([]model.AuditLogEntry, error)

	// Recent project methods
	TouchRecentProject(path, productName string) error
	GetRecentProjects(limit int) ([]model.RecentProject, error)
	RemoveRecentProject(path string) error
	ClearRecentProjects() error

	// Backup methods
	ExportDataForBackup() (*model.BackupData, error)
	ImportDataFromBackup(backup *model.BackupData) error
	IntegrateDataFromBackup(backup *model.BackupData) error

	// BunDB exposes the underlying Bun handle for adapter helpers.
	BunDB() *bun.DB
}
