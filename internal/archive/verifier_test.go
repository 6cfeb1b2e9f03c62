package archive_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/idelchi/seczip/internal/archive"
)

func TestVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	root := filepath.Join(t.TempDir(), "tree")
	writeFile(t, filepath.Join(root, "a.txt"), "alpha")
	writeFile(t, filepath.Join(root, "sub", "b.txt"), "beta")

	out, _, _ := build(t, root, nil)

	v := archive.NewVerifier(4, nil)

	report, err := v.VerifyIntegrity(out, testPassword)
	if err != nil {
		t.Fatalf("VerifyIntegrity error: %v", err)
	}

	if report.Entries != 2 {
		t.Errorf("integrity entries = %d, want 2", report.Entries)
	}

	report, err = v.TestExtraction(out, testPassword)
	if err != nil {
		t.Fatalf("TestExtraction error: %v", err)
	}

	if report.Entries != 2 {
		t.Errorf("extracted files = %d, want 2", report.Entries)
	}
}

func TestVerifyWrongPassword(t *testing.T) {
	t.Parallel()

	source := filepath.Join(t.TempDir(), "secret.txt")
	writeFile(t, source, "classified")

	out, _, _ := build(t, source, nil)

	_, err := archive.NewVerifier(1, nil).VerifyIntegrity(out, "not-the-password")
	if !errors.Is(err, archive.ErrBadPassword) {
		t.Errorf("VerifyIntegrity error = %v, want ErrBadPassword", err)
	}

	if errors.Is(err, archive.ErrCorruptData) {
		t.Error("wrong password misclassified as corrupt data")
	}
}

func TestVerifyEmptyArchiveIsInvalid(t *testing.T) {
	t.Parallel()

	empty := filepath.Join(t.TempDir(), "empty")
	if err := os.MkdirAll(empty, 0o750); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	out, entries, _ := build(t, empty, nil)

	if entries != 0 {
		t.Fatalf("entries = %d, want 0", entries)
	}

	_, err := archive.NewVerifier(1, nil).VerifyIntegrity(out, testPassword)
	if !errors.Is(err, archive.ErrEmptyArchive) {
		t.Errorf("VerifyIntegrity error = %v, want ErrEmptyArchive", err)
	}
}

func TestVerifyDetectsCorruption(t *testing.T) {
	t.Parallel()

	source := filepath.Join(t.TempDir(), "payload.txt")
	writeFile(t, source, strings.Repeat("compressible payload line\n", 4096))

	out, _, _ := build(t, source, nil)

	// Flip one byte in the middle of the artifact. That lands inside the
	// entry's ciphertext, so the authentication tag no longer matches.
	data, err := os.ReadFile(out) //nolint:gosec // test reads its own artifact
	if err != nil {
		t.Fatalf("reading artifact: %v", err)
	}

	data[len(data)/2] ^= 0xff

	if err := os.WriteFile(out, data, 0o600); err != nil {
		t.Fatalf("writing tampered artifact: %v", err)
	}

	_, err = archive.NewVerifier(1, nil).VerifyIntegrity(out, testPassword)
	if !errors.Is(err, archive.ErrCorruptData) {
		t.Errorf("VerifyIntegrity error = %v, want ErrCorruptData", err)
	}

	if errors.Is(err, archive.ErrBadPassword) {
		t.Error("corruption misclassified as bad password")
	}
}

// Not parallel: it asserts on the shared system temp directory.
func TestExtractionCleansUpScratch(t *testing.T) {
	source := filepath.Join(t.TempDir(), "file.txt")
	writeFile(t, source, "data")

	out, _, _ := build(t, source, nil)

	if _, err := archive.NewVerifier(1, nil).TestExtraction(out, testPassword); err != nil {
		t.Fatalf("TestExtraction error: %v", err)
	}

	matches, err := filepath.Glob(filepath.Join(os.TempDir(), "seczip-verify-*"))
	if err != nil {
		t.Fatalf("globbing temp dir: %v", err)
	}

	if len(matches) != 0 {
		t.Errorf("scratch directories left behind: %v", matches)
	}
}
