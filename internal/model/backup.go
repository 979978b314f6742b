// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.
package model

// BackupData is a container for all data to be exported for a backup.
// It holds slices of the records kept in the workbench database.
type BackupData struct {
	// SchemaVersion helps in handling migrations during restore.
	SchemaVersion int `json:"schema_version"`

	// Data from each table.
	AuditLogEntries []AuditLogEntry `json:"audit_log_entries"`
	RecentProjects  []RecentProject `json:"recent_projects"`
}
