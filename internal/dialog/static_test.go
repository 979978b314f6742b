// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package dialog

import (
	"errors"
	"testing"
)

var (
	_ Gateway = (*Static)(nil)
	_ Gateway = (*Terminal)(nil)
)

func TestStatic_ConfirmsSeededPaths(t *testing.T) {
	s := &Static{SavePath: "project", OpenPath: "existing.rlic"}

	save := NewSaveModel()
	if err := s.ShowSaveDialog(&save); err != nil {
		t.Fatalf("ShowSaveDialog failed: %v", err)
	}
	if !save.Confirmed || save.FileName != "project.rlic" {
		t.Errorf("save: confirmed=%v FileName=%q, want confirmed with project.rlic",
			save.Confirmed, save.FileName)
	}

	open := NewOpenModel()
	if err := s.ShowOpenDialog(&open); err != nil {
		t.Fatalf("ShowOpenDialog failed: %v", err)
	}
	if !open.Confirmed || open.FileName != "existing.rlic" {
		t.Errorf("open: confirmed=%v FileName=%q", open.Confirmed, open.FileName)
	}

	if s.SaveCalls != 1 || s.OpenCalls != 1 {
		t.Errorf("call counters = %d/%d, want 1/1", s.SaveCalls, s.OpenCalls)
	}
}

func TestStatic_EmptyPathCancels(t *testing.T) {
	s := &Static{}

	save := NewSaveModel()
	if err := s.ShowSaveDialog(&save); err != nil {
		t.Fatalf("ShowSaveDialog failed: %v", err)
	}
	if save.Confirmed {
		t.Error("empty SavePath must cancel")
	}
	if s.SaveCalls != 1 {
		t.Errorf("SaveCalls = %d, want 1 (cancel still counts as a presentation)", s.SaveCalls)
	}
}

func TestStatic_ErrPropagates(t *testing.T) {
	boom := errors.New("display unavailable")
	s := &Static{SavePath: "x", Err: boom}

	save := NewSaveModel()
	if err := s.ShowSaveDialog(&save); !errors.Is(err, boom) {
		t.Errorf("ShowSaveDialog error = %v, want %v", err, boom)
	}
	if save.Confirmed {
		t.Error("failed dialog must not confirm")
	}
}
