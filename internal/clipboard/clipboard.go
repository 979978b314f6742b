// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package clipboard abstracts where exported key text lands. Production code
// uses the OS clipboard; tests and headless environments use Memory.
package clipboard // import "github.com/toeirei/licmaster/internal/clipboard"

import (
	atotto "github.com/atotto/clipboard"
)

// Sink receives and hands back exported text. Implementations must treat
// SetText as replace-all; there is no append semantics.
type Sink interface {
	SetText(text string) error
	GetText() (string, error)
}

// System is the OS clipboard.
type System struct{}

func (System) SetText(text string) error {
	return atotto.WriteAll(text)
}

func (System) GetText() (string, error) {
	return atotto.ReadAll()
}
