// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package dialog

// Static answers dialogs from pre-seeded paths without any user interaction.
// The CLI uses it when --output/--input flags already name the file, and
// tests use it to script dialog outcomes. An empty path means "cancel".
// Call counters record how often each dialog was presented.
type Static struct {
	SavePath string
	OpenPath string

	// Err, when set, makes every presentation fail. Simulates gateways
	// that cannot run at all (no display, closed terminal).
	Err error

	SaveCalls int
	OpenCalls int
}

func (s *Static) ShowSaveDialog(m *SaveModel) error {
	s.SaveCalls++
	if s.Err != nil {
		return s.Err
	}
	if s.SavePath == "" {
		return nil
	}
	m.FileName = EnsureExtension(s.SavePath, FileExtension)
	m.Confirmed = true
	return nil
}

func (s *Static) ShowOpenDialog(m *OpenModel) error {
	s.OpenCalls++
	if s.Err != nil {
		return s.Err
	}
	if s.OpenPath == "" {
		return nil
	}
	m.FileName = s.OpenPath
	m.Confirmed = true
	return nil
}
