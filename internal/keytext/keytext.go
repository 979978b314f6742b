// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

// Package keytext inspects serialized key material without mutating it.
// It answers the questions the UI and CLI keep asking: which half is this,
// how big is the key, and what fingerprint identifies the pair.
package keytext // import "github.com/toeirei/licmaster/internal/keytext"

import (
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"github.com/toeirei/licmaster/internal/crypto/rsakey"
)

// Kind classifies a piece of key-exchange text.
type Kind int

const (
	Invalid Kind = iota
	Public
	Private
)

func (k Kind) String() string {
	switch k {
	case Public:
		return "public"
	case Private:
		return "private"
	default:
		return "invalid"
	}
}

// Classify reports which half of a keypair the text represents, going by the
// structural markers alone: every export carries <Modulus>, only private
// ones carry <P> and <D>. Cheap enough for per-keystroke UI checks; use
// Inspect when the material has to actually parse.
func Classify(keyText string) Kind {
	t := strings.TrimSpace(keyText)
	if !strings.Contains(t, "<RSAKeyValue>") || !strings.Contains(t, "<Modulus>") {
		return Invalid
	}
	if strings.Contains(t, "<P>") && strings.Contains(t, "<D>") {
		return Private
	}
	return Public
}

// Info is what display surfaces need to know about a key export.
type Info struct {
	Kind        Kind
	Bits        int
	Fingerprint string
}

// String renders the one-line summary used by list views and inspect
// output, e.g. "RSA-2048 public key, SHA256:...".
func (i Info) String() string {
	return fmt.Sprintf("RSA-%d %s key, %s", i.Bits, i.Kind, i.Fingerprint)
}

// Inspect fully parses the key text and reports kind, modulus size and
// fingerprint. Unlike Classify it rejects text that merely looks like a key.
func Inspect(keyText string) (Info, error) {
	keyText = strings.TrimSpace(keyText)
	kind := Classify(keyText)
	if kind == Invalid {
		return Info{}, errors.New("key text is not a valid key export")
	}
	if kind == Private {
		if _, err := rsakey.ParsePrivateKey(keyText); err != nil {
			return Info{}, fmt.Errorf("invalid private key text: %w", err)
		}
	}
	pub, err := rsakey.ParsePublicKey(keyText)
	if err != nil {
		return Info{}, fmt.Errorf("invalid key text: %w", err)
	}
	fp, err := Fingerprint(keyText)
	if err != nil {
		return Info{}, err
	}
	return Info{Kind: kind, Bits: pub.N.BitLen(), Fingerprint: fp}, nil
}

// Fingerprint returns a stable identifier for the keypair the text belongs
// to: a SHA256 digest of the public modulus, rendered the way SSH tooling
// renders fingerprints. Both halves of one pair share the same fingerprint.
func Fingerprint(keyText string) (string, error) {
	pub, err := rsakey.ParsePublicKey(strings.TrimSpace(keyText))
	if err != nil {
		return "", fmt.Errorf("cannot fingerprint key text: %w", err)
	}
	sum := sha256.Sum256(pub.N.Bytes())
	return "SHA256:" + base64.RawStdEncoding.EncodeToString(sum[:]), nil
}

// Describe is Inspect flattened to the display string.
func Describe(keyText string) (string, error) {
	info, err := Inspect(keyText)
	if err != nil {
		return "", err
	}
	return info.String(), nil
}
