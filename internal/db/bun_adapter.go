// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"context"
	"database/sql"
	"errors"
	"os/user"
	"strings"
	"time"

	"github.com/uptrace/bun"

	"github.com/toeirei/licmaster/internal/model"
)

// AuditLogModel is the Bun model for rows in audit_log. Timestamps are
// stored as RFC3339 UTC strings so they order correctly as text on every
// supported engine.
type AuditLogModel struct {
	bun.BaseModel `bun:"table:audit_log"`
	ID            int    `bun:"id,pk,autoincrement"`
	Timestamp     string `bun:"timestamp"`
	Username      string `bun:"username"`
	Action        string `bun:"action"`
	Details       string `bun:"details"`
}

// RecentProjectModel is the Bun model for rows in recent_projects. Paths are
// unique; touching an existing path only refreshes last_opened_at.
type RecentProjectModel struct {
	bun.BaseModel `bun:"table:recent_projects"`
	ID            int       `bun:"id,pk,autoincrement"`
	Path          string    `bun:"path"`
	ProductName   string    `bun:"product_name"`
	LastOpenedAt  time.Time `bun:"last_opened_at"`
}

func auditLogModelToEntry(a AuditLogModel) model.AuditLogEntry {
	return model.AuditLogEntry{ID: a.ID, Timestamp: a.Timestamp, Username: a.Username, Action: a.Action, Details: a.Details}
}

func recentProjectModelToModel(r RecentProjectModel) model.RecentProject {
	return model.RecentProject{ID: r.ID, Path: r.Path, ProductName: r.ProductName, LastOpenedAt: r.LastOpenedAt}
}

// LogActionBun inserts an audit log entry attributed to the current OS user.
func LogActionBun(bdb *bun.DB, action string, details string) error {
	ctx := context.Background()
	curUser, err := user.Current()
	username := "unknown"
	if err == nil {
		if parts := strings.Split(curUser.Username, `\`); len(parts) > 1 {
			username = parts[1]
		} else {
			username = curUser.Username
		}
	}
	ts := time.Now().UTC().Format(time.RFC3339)
	_, err = ExecRaw(ctx, bdb, "INSERT INTO audit_log (timestamp, username, action, details) VALUES (?, ?, ?, ?)", ts, username, action, details)
	return MapDBError(err)
}

// GetAllAuditLogEntriesBun retrieves audit log entries ordered by timestamp desc.
func GetAllAuditLogEntriesBun(bdb *bun.DB) ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	var am []AuditLogModel
	if err := bdb.NewSelect().Model(&am).OrderExpr("timestamp DESC, id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(am))
	for _, a := range am {
		out = append(out, auditLogModelToEntry(a))
	}
	return out, nil
}

// SearchAuditLogEntriesBun retrieves audit log entries matching all tokens of
// the query across action, details and username, ordered by timestamp desc.
func SearchAuditLogEntriesBun(bdb *bun.DB, q string) ([]model.AuditLogEntry, error) {
	ctx := context.Background()
	tokens := TokenizeSearchQuery(q)
	var am []AuditLogModel
	qb := bdb.NewSelect().Model(&am)
	if len(tokens) > 0 {
		// AND of ORs: every token must match at least one column.
		for _, tok := range tokens {
			like := "%" + tok + "%"
			// LOWER(...) keeps matching case-insensitive across engines.
			qb = qb.Where("(LOWER(action) LIKE ? OR LOWER(details) LIKE ? OR LOWER(username) LIKE ?)", like, like, like)
		}
	}
	if err := qb.OrderExpr("timestamp DESC, id DESC").Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.AuditLogEntry, 0, len(am))
	for _, a := range am {
		out = append(out, auditLogModelToEntry(a))
	}
	return out, nil
}

// TouchRecentProjectBun records path as the most recently used project file.
// Implemented as UPDATE-then-INSERT inside a transaction because the
// supported engines have no shared upsert syntax.
func TouchRecentProjectBun(bdb *bun.DB, path, productName string) error {
	ctx := context.Background()
	now := time.Now().UTC()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		res, err := ExecRaw(ctx, tx, "UPDATE recent_projects SET product_name = ?, last_opened_at = ? WHERE path = ?", productName, now, path)
		if err != nil {
			return MapDBError(err)
		}
		if n, err := res.RowsAffected(); err == nil && n > 0 {
			return nil
		}
		_, err = ExecRaw(ctx, tx, "INSERT INTO recent_projects (path, product_name, last_opened_at) VALUES (?, ?, ?)", path, productName, now)
		return MapDBError(err)
	})
}

// GetRecentProjectsBun retrieves recently used project files, newest first.
// A limit <= 0 returns all of them.
func GetRecentProjectsBun(bdb *bun.DB, limit int) ([]model.RecentProject, error) {
	ctx := context.Background()
	var rm []RecentProjectModel
	qb := bdb.NewSelect().Model(&rm).OrderExpr("last_opened_at DESC, id DESC")
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	if err := qb.Scan(ctx); err != nil {
		return nil, err
	}
	out := make([]model.RecentProject, 0, len(rm))
	for _, r := range rm {
		out = append(out, recentProjectModelToModel(r))
	}
	return out, nil
}

// RemoveRecentProjectBun drops one path from the recent-project list.
func RemoveRecentProjectBun(bdb *bun.DB, path string) error {
	ctx := context.Background()
	_, err := ExecRaw(ctx, bdb, "DELETE FROM recent_projects WHERE path = ?", path)
	return MapDBError(err)
}

// ClearRecentProjectsBun empties the recent-project list.
func ClearRecentProjectsBun(bdb *bun.DB) error {
	ctx := context.Background()
	_, err := ExecRaw(ctx, bdb, "DELETE FROM recent_projects")
	return MapDBError(err)
}

// ExportDataForBackupBun exports all tables' data into a model.BackupData using a Bun transaction.
func ExportDataForBackupBun(bdb *bun.DB) (*model.BackupData, error) {
	ctx := context.Background()
	var backup *model.BackupData
	err := WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		backup = &model.BackupData{SchemaVersion: 1}

		// Audit log
		var als []AuditLogModel
		if err := tx.NewSelect().Model(&als).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, a := range als {
			backup.AuditLogEntries = append(backup.AuditLogEntries, auditLogModelToEntry(a))
		}

		// Recent projects
		var rps []RecentProjectModel
		if err := tx.NewSelect().Model(&rps).OrderExpr("id").Scan(ctx); err != nil {
			return err
		}
		for _, r := range rps {
			backup.RecentProjects = append(backup.RecentProjects, recentProjectModelToModel(r))
		}

		return nil
	})
	return backup, err
}

// ImportDataFromBackupBun performs a full wipe-and-replace using a Bun transaction.
func ImportDataFromBackupBun(bdb *bun.DB, backup *model.BackupData) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		// Wipe tables
		tables := []string{"audit_log", "recent_projects"}
		for _, t := range tables {
			if _, err := ExecRaw(ctx, tx, "DELETE FROM "+t); err != nil {
				return err
			}
		}

		// Audit log entries keep their original ids.
		for _, ale := range backup.AuditLogEntries {
			if _, err := ExecRaw(ctx, tx, "INSERT INTO audit_log (id, timestamp, username, action, details) VALUES (?, ?, ?, ?, ?)", ale.ID, ale.Timestamp, ale.Username, ale.Action, ale.Details); err != nil {
				return MapDBError(err)
			}
		}
		for _, rp := range backup.RecentProjects {
			if _, err := ExecRaw(ctx, tx, "INSERT INTO recent_projects (id, path, product_name, last_opened_at) VALUES (?, ?, ?, ?)", rp.ID, rp.Path, rp.ProductName, rp.LastOpenedAt); err != nil {
				return MapDBError(err)
			}
		}
		return nil
	})
}

// IntegrateDataFromBackupBun performs a non-destructive restore. Rows merge
// by content rather than id, so autoincrement histories from two databases
// can coexist: audit entries insert unless an identical row already exists,
// recent projects keep whichever last_opened_at is newer per path.
func IntegrateDataFromBackupBun(bdb *bun.DB, backup *model.BackupData) error {
	ctx := context.Background()
	return WithTx(ctx, bdb, func(ctx context.Context, tx bun.Tx) error {
		for _, ale := range backup.AuditLogEntries {
			var one int
			err := QueryRawInto(ctx, tx, &one, "SELECT 1 FROM audit_log WHERE timestamp = ? AND username = ? AND action = ? AND details = ? LIMIT 1", ale.Timestamp, ale.Username, ale.Action, ale.Details)
			if err == nil {
				continue
			}
			if !errors.Is(err, sql.ErrNoRows) {
				return err
			}
			if _, err := ExecRaw(ctx, tx, "INSERT INTO audit_log (timestamp, username, action, details) VALUES (?, ?, ?, ?)", ale.Timestamp, ale.Username, ale.Action, ale.Details); err != nil {
				return MapDBError(err)
			}
		}

		for _, rp := range backup.RecentProjects {
			var existing RecentProjectModel
			err := tx.NewSelect().Model(&existing).Where("path = ?", rp.Path).Limit(1).Scan(ctx)
			if err != nil {
				if !errors.Is(err, sql.ErrNoRows) {
					return err
				}
				if _, err := ExecRaw(ctx, tx, "INSERT INTO recent_projects (path, product_name, last_opened_at) VALUES (?, ?, ?)", rp.Path, rp.ProductName, rp.LastOpenedAt); err != nil {
					return MapDBError(err)
				}
				continue
			}
			if rp.LastOpenedAt.After(existing.LastOpenedAt) {
				if _, err := ExecRaw(ctx, tx, "UPDATE recent_projects SET product_name = ?, last_opened_at = ? WHERE path = ?", rp.ProductName, rp.LastOpenedAt, rp.Path); err != nil {
					return MapDBError(err)
				}
			}
		}
		return nil
	})
}
