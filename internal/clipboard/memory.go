// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package clipboard

import "sync"

// Memory is an in-process clipboard. It backs tests and environments where
// no display server is available (CI, ssh sessions without X forwarding).
type Memory struct {
	mu   sync.RWMutex
	text string
}

func (m *Memory) SetText(text string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.text = text
	return nil
}

func (m *Memory) GetText() (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.text, nil
}
