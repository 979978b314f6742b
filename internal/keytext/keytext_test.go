// Copyright (c) 2026 Licmaster Team
// Licmaster - software license administration
// This source code is licensed under the MIT license found in the LICENSE file.

package keytext

import (
	"strings"
	"testing"

	"github.com/toeirei/licmaster/internal/crypto/rsakey"
)

func generatePair(t *testing.T) (string, string) {
	t.Helper()
	pub, priv, err := rsakey.GenerateBits(1024)
	if err != nil {
		t.Fatalf("key generation failed: %v", err)
	}
	return pub, priv
}

func TestClassify(t *testing.T) {
	pub, priv := generatePair(t)

	if got := Classify(pub); got != Public {
		t.Errorf("Classify(public export) = %v, want Public", got)
	}
	if got := Classify(priv); got != Private {
		t.Errorf("Classify(private export) = %v, want Private", got)
	}
	if got := Classify("  " + pub + "\n"); got != Public {
		t.Errorf("Classify should tolerate surrounding whitespace, got %v", got)
	}
	if got := Classify("not a key"); got != Invalid {
		t.Errorf("Classify(garbage) = %v, want Invalid", got)
	}
	if got := Classify(""); got != Invalid {
		t.Errorf("Classify(empty) = %v, want Invalid", got)
	}
}

func TestInspect_RejectsStructurallyPlausibleGarbage(t *testing.T) {
	// Classify waves this through on markers; Inspect must not.
	fake := "<RSAKeyValue><Modulus>!!notbase64!!</Modulus><Exponent>AQAB</Exponent></RSAKeyValue>"
	if got := Classify(fake); got != Public {
		t.Fatalf("Classify(fake) = %v, want Public (markers only)", got)
	}
	if _, err := Inspect(fake); err == nil {
		t.Error("Inspect must reject key text that does not parse")
	}
}

func TestInspect_ReportsKindAndBits(t *testing.T) {
	pub, priv := generatePair(t)

	info, err := Inspect(pub)
	if err != nil {
		t.Fatalf("Inspect(public) failed: %v", err)
	}
	if info.Kind != Public || info.Bits != 1024 {
		t.Errorf("Inspect(public) = %+v, want Public/1024", info)
	}

	info, err = Inspect(priv)
	if err != nil {
		t.Fatalf("Inspect(private) failed: %v", err)
	}
	if info.Kind != Private || info.Bits != 1024 {
		t.Errorf("Inspect(private) = %+v, want Private/1024", info)
	}
	if !strings.HasPrefix(info.Fingerprint, "SHA256:") {
		t.Errorf("fingerprint %q missing SHA256: prefix", info.Fingerprint)
	}
}

func TestFingerprint_SharedAcrossHalves(t *testing.T) {
	pub, priv := generatePair(t)

	fpPub, err := Fingerprint(pub)
	if err != nil {
		t.Fatalf("Fingerprint(public) failed: %v", err)
	}
	fpPriv, err := Fingerprint(priv)
	if err != nil {
		t.Fatalf("Fingerprint(private) failed: %v", err)
	}
	if fpPub != fpPriv {
		t.Errorf("halves of one pair disagree on fingerprint: %q vs %q", fpPub, fpPriv)
	}
	if !strings.HasPrefix(fpPub, "SHA256:") {
		t.Errorf("fingerprint %q missing SHA256: prefix", fpPub)
	}
}

func TestFingerprint_DistinguishesPairs(t *testing.T) {
	pub1, _ := generatePair(t)
	pub2, _ := generatePair(t)

	fp1, _ := Fingerprint(pub1)
	fp2, _ := Fingerprint(pub2)
	if fp1 == fp2 {
		t.Error("distinct keypairs produced the same fingerprint")
	}
}

func TestDescribe(t *testing.T) {
	pub, priv := generatePair(t)

	got, err := Describe(pub)
	if err != nil {
		t.Fatalf("Describe(public) failed: %v", err)
	}
	if !strings.HasPrefix(got, "RSA-1024 public key, SHA256:") {
		t.Errorf("Describe(public) = %q", got)
	}

	got, err = Describe(priv)
	if err != nil {
		t.Fatalf("Describe(private) failed: %v", err)
	}
	if !strings.HasPrefix(got, "RSA-1024 private key, SHA256:") {
		t.Errorf("Describe(private) = %q", got)
	}

	if _, err := Describe("garbage"); err == nil {
		t.Error("Describe(garbage) should fail")
	}
}
