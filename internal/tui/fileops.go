// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"os"
	"runtime"
	"strings"
)

// WriteKeyFile writes `content` to `filename` using a secure default file mode.
// On Unix-like systems this uses 0600. On Windows, where POSIX permissions are
// not meaningful, it falls back to 0644 for compatibility.
func WriteKeyFile(filename string, content []byte) error {
	perm := os.FileMode(0600)
	if runtime.GOOS == "windows" {
		perm = 0644
	}
	return os.WriteFile(filename, content, perm)
}

// fileExists reports whether path names an existing file.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// sanitizeFileName reduces a display name to something safe to use as a file
// name: letters, digits, dot, dash and underscore survive, runs of anything
// else collapse to one underscore.
func sanitizeFileName(name string) string {
	var b strings.Builder
	lastUnderscore := false
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '.', r == '-', r == '_':
			b.WriteRune(r)
			lastUnderscore = false
		default:
			if !lastUnderscore {
				b.WriteRune('_')
				lastUnderscore = true
			}
		}
	}
	return strings.Trim(b.String(), "_")
}
