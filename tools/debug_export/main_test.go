// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package main

import (
	"bytes"
	"io"
	"os"
	"strings"
	"testing"
	"time"
)

// captureOutput runs fn with stdout and stderr redirected into a buffer and
// returns everything written. Both streams matter here: fmt prints to
// stdout while the charm logger writes to stderr.
func captureOutput(t *testing.T, fn func()) string {
	t.Helper()

	oldOut, oldErr := os.Stdout, os.Stderr
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("pipe failed: %v", err)
	}
	os.Stdout = w
	os.Stderr = w

	var buf bytes.Buffer
	done := make(chan struct{})
	go func() {
		_, _ = io.Copy(&buf, r)
		close(done)
	}()

	fn()

	// Close the writer so the copier sees EOF, then restore the streams.
	_ = w.Close()
	os.Stdout = oldOut
	os.Stderr = oldErr

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		t.Fatalf("timeout draining captured output")
	}
	return buf.String()
}

// TestMainRuns seeds the in-memory database and checks the dump summaries.
// main must not call os.Exit on the happy path for this to work.
func TestMainRuns(t *testing.T) {
	out := captureOutput(t, main)

	if out == "" {
		t.Fatal("expected main to print output, got empty string")
	}
	if !strings.Contains(out, "audit entries: 3") {
		t.Fatalf("expected output to contain 'audit entries: 3', got %q", out)
	}
	if !strings.Contains(out, "recent projects: 2") {
		t.Fatalf("expected output to contain 'recent projects: 2', got %q", out)
	}
}
