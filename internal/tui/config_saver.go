// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

// ConfigSaver persists the running configuration back to disk. The language
// picker calls it after changing the language so the choice survives a
// restart. The CLI wires a real saver in at startup; the default swallows
// the save so the TUI stays usable without one.
type ConfigSaver interface {
	Save() error
}

type noopConfigSaver struct{}

func (noopConfigSaver) Save() error { return nil }

var configSaver ConfigSaver = noopConfigSaver{}

// SetConfigSaver installs the saver the language picker uses. Passing nil
// restores the no-op default.
func SetConfigSaver(s ConfigSaver) {
	if s == nil {
		configSaver = noopConfigSaver{}
		return
	}
	configSaver = s
}
