// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package tui

import (
	"os"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/toeirei/licmaster/internal/clipboard"
	"github.com/toeirei/licmaster/internal/db"
	"github.com/toeirei/licmaster/internal/keytext"
)

// keysFixture builds a controller with a named product and, optionally, a
// generated keypair.
func keysFixture(t *testing.T, withPair bool) (*keysModel, *clipboard.Memory) {
	t.Helper()
	clip := &clipboard.Memory{}
	ctrl := newTestController(t, nil, clip)
	ctrl.NewProject()
	ctrl.Current().Product().SetName("Rhino")
	if withPair {
		if err := ctrl.GenerateKey(); err != nil {
			t.Fatalf("GenerateKey: %v", err)
		}
	}
	return newKeysModel(ctrl), clip
}

func TestKeysModelWithoutPairRefusesCopy(t *testing.T) {
	m, clip := keysFixture(t, false)
	if m.hasPair {
		t.Fatal("fresh product should have no keypair")
	}

	updated, _ := m.Update(keyRunes('c'))
	km := updated.(*keysModel)
	if km.status == "" {
		t.Fatal("copy without a keypair should explain itself")
	}
	if text, _ := clip.GetText(); text != "" {
		t.Fatalf("clipboard written without a keypair: %q", text)
	}
}

func TestKeysModelCopyPublicKey(t *testing.T) {
	m, clip := keysFixture(t, true)

	fake := &db.FakeAuditWriter{}
	SetAuditWriter(fake)
	defer ClearAuditWriter()

	updated, _ := m.Update(keyRunes('c'))
	km := updated.(*keysModel)

	text, _ := clip.GetText()
	if keytext.Classify(text) != keytext.Public {
		t.Fatalf("clipboard does not hold the public half: %q", text)
	}
	if text != km.publicKey {
		t.Fatal("clipboard content must be the key text verbatim")
	}
	actions := fake.Actions()
	if len(actions) != 1 || actions[0] != "KEY_COPIED" {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
	if !strings.Contains(fake.Calls[0][1], "public key") {
		t.Fatalf("audit details should say which half left: %q", fake.Calls[0][1])
	}
}

func TestKeysModelCopyPrivateNeedsConfirmation(t *testing.T) {
	m, clip := keysFixture(t, true)

	updated, _ := m.Update(keyRunes('P'))
	km := updated.(*keysModel)
	if !km.isConfirmingCopyPrivate {
		t.Fatal("P should raise the confirmation modal")
	}

	// Enter on the default (No) leaves the clipboard alone.
	updated, _ = km.Update(keyEnter())
	km = updated.(*keysModel)
	if km.isConfirmingCopyPrivate {
		t.Fatal("modal should close after the answer")
	}
	if text, _ := clip.GetText(); text != "" {
		t.Fatalf("declined confirmation still copied: %q", text)
	}

	// Ask again and walk to Yes.
	updated, _ = km.Update(keyRunes('P'))
	km = updated.(*keysModel)
	updated, _ = km.Update(tea.KeyMsg{Type: tea.KeyRight})
	km = updated.(*keysModel)
	updated, _ = km.Update(keyEnter())
	km = updated.(*keysModel)

	text, _ := clip.GetText()
	if keytext.Classify(text) != keytext.Private {
		t.Fatalf("clipboard does not hold the private half: %q", text)
	}
	if text != km.privateKey {
		t.Fatal("clipboard content must be the key text verbatim")
	}
}

func TestKeysModelGenerateWithoutPairRunsImmediately(t *testing.T) {
	m, _ := keysFixture(t, false)

	updated, cmd := m.Update(keyRunes('g'))
	km := updated.(*keysModel)
	if !km.generating || cmd == nil {
		t.Fatal("first generation should start without a confirmation")
	}

	updated, _ = km.Update(cmd())
	km = updated.(*keysModel)
	if km.generating {
		t.Fatal("generating flag not cleared")
	}
	if !km.hasPair || km.publicKey == "" {
		t.Fatal("generation did not produce a pair")
	}
	if km.keyInfo != "RSA-512" {
		t.Fatalf("unexpected key info: %q", km.keyInfo)
	}
	if !strings.HasPrefix(km.fingerprint, "SHA256:") {
		t.Fatalf("unexpected fingerprint: %q", km.fingerprint)
	}
	if !km.ctrl.Dirty() {
		t.Fatal("a fresh pair should mark the project dirty")
	}
}

func TestKeysModelRegenerateNeedsConfirmation(t *testing.T) {
	m, _ := keysFixture(t, true)
	oldPublic := m.publicKey

	updated, cmd := m.Update(keyRunes('g'))
	km := updated.(*keysModel)
	if !km.isConfirmingRegenerate || cmd != nil {
		t.Fatal("regenerating over a pair needs a confirmation first")
	}

	// Backing out keeps the old pair.
	updated, _ = km.Update(keyEsc())
	km = updated.(*keysModel)
	if km.isConfirmingRegenerate || km.publicKey != oldPublic {
		t.Fatal("declined regeneration must keep the pair")
	}

	updated, _ = km.Update(keyRunes('g'))
	km = updated.(*keysModel)
	updated, _ = km.Update(tea.KeyMsg{Type: tea.KeyRight})
	km = updated.(*keysModel)
	updated, cmd = km.Update(keyEnter())
	km = updated.(*keysModel)
	if cmd == nil || !km.generating {
		t.Fatal("confirmed regeneration should start a generation run")
	}

	updated, _ = km.Update(cmd())
	km = updated.(*keysModel)
	if km.publicKey == oldPublic {
		t.Fatal("regeneration kept the old public key")
	}
}

func TestKeysModelBlocksLeaveWhileGenerating(t *testing.T) {
	m, _ := keysFixture(t, false)
	m.generating = true

	_, cmd := m.Update(keyEsc())
	if cmd != nil {
		t.Fatal("leaving mid-generation would drop the result")
	}
}

func TestKeysModelExportWritesPublicKeyFile(t *testing.T) {
	t.Chdir(t.TempDir())

	m, _ := keysFixture(t, true)

	fake := &db.FakeAuditWriter{}
	SetAuditWriter(fake)
	defer ClearAuditWriter()

	updated, _ := m.Update(keyRunes('e'))
	km := updated.(*keysModel)

	data, err := os.ReadFile("Rhino_public.xml")
	if err != nil {
		t.Fatalf("export file missing: %v", err)
	}
	if string(data) != km.publicKey {
		t.Fatal("exported file differs from the public key text")
	}
	if keytext.Classify(string(data)) != keytext.Public {
		t.Fatal("export must never contain the private half")
	}
	actions := fake.Actions()
	if len(actions) != 1 || actions[0] != "KEY_EXPORTED" {
		t.Fatalf("unexpected audit actions: %v", actions)
	}
}

func TestExportFileName(t *testing.T) {
	cases := []struct {
		name string
		want string
	}{
		{"Rhino", "Rhino_public.xml"},
		{"Rhino 3D", "Rhino_3D_public.xml"},
		{"", "product_public.xml"},
		{"///", "product_public.xml"},
	}
	for _, c := range cases {
		if got := exportFileName(c.name); got != c.want {
			t.Errorf("exportFileName(%q) = %q, want %q", c.name, got, c.want)
		}
	}
}
