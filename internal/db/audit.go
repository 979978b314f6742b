// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import (
	"sync"

	"github.com/uptrace/bun"
)

// AuditWriter defines a minimal interface for recording audit log events.
type AuditWriter interface {
	LogAction(action string, details string) error
}

// BunAuditWriter is a Bun-based implementation of AuditWriter.
type BunAuditWriter struct {
	bdb *bun.DB
}

// NewBunAuditWriter creates a new BunAuditWriter.
func NewBunAuditWriter(bdb *bun.DB) AuditWriter {
	return &BunAuditWriter{bdb: bdb}
}

// NewAuditWriterFromStore creates an AuditWriter from any Store by using
// its underlying Bun handle.
func NewAuditWriterFromStore(s Store) AuditWriter {
	return NewBunAuditWriter(s.BunDB())
}

// LogAction writes one audit entry through the Bun handle.
func (s *BunAuditWriter) LogAction(action string, details string) error {
	return LogActionBun(s.bdb, action, details)
}

// defaultAuditWriter is an optional package-level override (used by tests).
var defaultAuditWriter AuditWriter

// DefaultAuditWriter returns an AuditWriter backed by the package-level
// store when initialized, or a test-injected override. Returns nil when
// neither is available; callers treat that as "nothing to log to".
func DefaultAuditWriter() AuditWriter {
	if defaultAuditWriter != nil {
		return defaultAuditWriter
	}
	if store == nil {
		return nil
	}
	return NewAuditWriterFromStore(store)
}

// SetDefaultAuditWriter sets a package-level AuditWriter that will be
// returned by DefaultAuditWriter(). Useful for tests to inject a fake.
func SetDefaultAuditWriter(w AuditWriter) {
	defaultAuditWriter = w
}

// ClearDefaultAuditWriter removes the package-level override.
func ClearDefaultAuditWriter() {
	defaultAuditWriter = nil
}

// FakeAuditWriter records audit calls in memory. Tests inject it via
// SetDefaultAuditWriter to observe what the workflow logs.
type FakeAuditWriter struct {
	mu    sync.Mutex
	Calls [][2]string
}

// LogAction appends the action/details pair to Calls.
func (f *FakeAuditWriter) LogAction(action string, details string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.Calls = append(f.Calls, [2]string{action, details})
	return nil
}

// Actions returns just the action names, in call order.
func (f *FakeAuditWriter) Actions() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.Calls))
	for _, c := range f.Calls {
		out = append(out, c[0])
	}
	return out
}
