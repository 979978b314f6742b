// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package db

// New opens a bun-backed Store for the given dbType and dsn, runs
// migrations, and installs it as the package-level store used by the
// db helpers. Callers that need direct Store access keep the return value.
func New(dbType, dsn string) (Store, error) {
	s, err := NewStoreFromDSN(dbType, dsn)
	if err != nil {
		return nil, err
	}
	store = s
	return s, nil
}
