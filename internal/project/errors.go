// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package project

import "errors"

var (
	// ErrNoProject is returned by operations that need a current project
	// before one was created or opened. Callers asked for an impossible
	// operation; this is never a silent no-op.
	ErrNoProject = errors.New("no current project")

	// ErrNoProduct is returned when the current project carries no product.
	ErrNoProduct = errors.New("project has no product")

	// ErrNotSaveable is returned by Save while the product name is blank.
	ErrNotSaveable = errors.New("project is not saveable: product name required")
)
