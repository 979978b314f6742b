// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package db

import "strings"

// TokenizeSearchQuery splits a free-text query into lower-cased tokens.
// All-whitespace input yields nil so callers can skip the WHERE clause.
func TokenizeSearchQuery(q string) []string {
	fields := strings.Fields(strings.ToLower(q))
	if len(fields) == 0 {
		return nil
	}
	return fields
}
