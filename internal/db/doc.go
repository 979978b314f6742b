// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package db contains the data-access layer for the Licmaster workbench
// database: the audit trail and the recent-project list. It abstracts the
// underlying engine (SQLite, PostgreSQL, MySQL) behind one Store interface
// so the rest of the application never sees driver details.
//
// DI helpers
//   - `DefaultAuditWriter` returns an audit writer backed by the
//     package-level store once `InitDB` has run, or a test override set via
//     `SetDefaultAuditWriter`. UI and controller code log through it without
//     binding to a store type.
//   - Package-level wrappers (`LogAction`, `TouchRecentProject`, ...) follow
//     the same rule: they delegate to the initialized store and degrade to
//     no-ops before initialization, since audit and recents are best-effort
//     bookkeeping around the project workflow, never part of it.
//
// Testing notes
//   - Prefer `db.InitDB("sqlite", ":memory:")` in tests that need real DB
//     semantics and migrations.
//   - For unit tests that only need to observe audit calls, inject a
//     `FakeAuditWriter` via `SetDefaultAuditWriter`.
package db
