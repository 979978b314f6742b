package tui

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

func TestWriteKeyFilePermissions(t *testing.T) {
	dir := t.TempDir()
	fname := filepath.Join(dir, "rhino_public_test.xml")
	content := []byte("<RSAKeyValue><Modulus>dGVzdA==</Modulus><Exponent>AQAB</Exponent></RSAKeyValue>")

	if err := WriteKeyFile(fname, content); err != nil {
		t.Fatalf("WriteKeyFile failed: %v", err)
	}

	// Verify content
	b, err := os.ReadFile(fname)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(b) != string(content) {
		t.Fatalf("content mismatch")
	}

	// On non-Windows, ensure file perms are 0600
	if runtime.GOOS != "windows" {
		fi, err := os.Stat(fname)
		if err != nil {
			t.Fatalf("stat failed: %v", err)
		}
		perm := fi.Mode().Perm()
		if perm != 0600 {
			t.Fatalf("unexpected file mode: %v (want 0600)", perm)
		}
	} else {
		t.Log("Windows: skipping file mode assertions")
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Rhino", "Rhino"},
		{"Rhino 3D", "Rhino_3D"},
		{"a/b\\c:d", "a_b_c_d"},
		{"  spaced  out  ", "spaced_out"},
		{"dots.are-fine_too", "dots.are-fine_too"},
		{"///", ""},
		{"", ""},
	}
	for _, c := range cases {
		if got := sanitizeFileName(c.in); got != c.want {
			t.Errorf("sanitizeFileName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestFileExists(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "present.rlic")

	if fileExists(path) {
		t.Fatal("missing file reported as existing")
	}
	if err := os.WriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatal(err)
	}
	if !fileExists(path) {
		t.Fatal("existing file reported as missing")
	}
}
