// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// package db provides the data access layer for Licmaster.
// This file contains the SQLite implementation of the database store.
package db // import "github.com/toeirei/licmaster/internal/db"

import (
	"github.com/uptrace/bun"
	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/toeirei/licmaster/internal/model"
)

// SqliteStore is the SQLite implementation of the Store interface.
type SqliteStore struct {
	bun *bun.DB
}

// BunDB exposes the underlying Bun handle.
func (s *SqliteStore) BunDB() *bun.DB { return s.bun }

// LogAction records an entry in the audit log.
func (s *SqliteStore) LogAction(action string, details string) error {
	return LogActionBun(s.bun, action, details)
}

// GetAllAuditLogEntries retrieves all audit log entries, most recent first.
func (s *SqliteStore) GetAllAuditLogEntries() ([]model.AuditLogEntry, error) {
	return GetAllAuditLogEntriesBun(s.bun)
}

// SearchAuditLogEntries retrieves audit log entries matching the query.
func (s *SqliteStore) SearchAuditLogEntries(term string) ([]model.AuditLogEntry, error) {
	return SearchAuditLogEntriesBun(s.bun, term)
}

// TouchRecentProject records path as the most recently used project file.
func (s *SqliteStore) TouchRecentProject(path, productName string) error {
	return TouchRecentProjectBun(s.bun, path, productName)
}

// GetRecentProjects retrieves the most recently used project files.
func (s *SqliteStore) GetRecentProjects(limit int) ([]model.RecentProject, error) {
	return GetRecentProjectsBun(s.bun, limit)
}

// RemoveRecentProject drops one path from the recent-project list.
func (s *SqliteStore) RemoveRecentProject(path string) error {
	return RemoveRecentProjectBun(s.bun, path)
}

// ClearRecentProjects empties the recent-project list.
func (s *SqliteStore) ClearRecentProjects() error {
	return ClearRecentProjectsBun(s.bun)
}

// ExportDataForBackup retrieves all data from the database for a backup.
func (s *SqliteStore) ExportDataForBackup() (*model.BackupData, error) {
	return ExportDataForBackupBun(s.bun)
}

// ImportDataFromBackup restores the database from a backup data structure.
func (s *SqliteStore) ImportDataFromBackup(backup *model.BackupData) error {
	return ImportDataFromBackupBun(s.bun, backup)
}

// IntegrateDataFromBackup merges a backup into the database non-destructively.
func (s *SqliteStore) IntegrateDataFromBackup(backup *model.BackupData) error {
	return IntegrateDataFromBackupBun(s.bun, backup)
}
