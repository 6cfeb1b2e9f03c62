// Package fileutil provides shared file operation helpers.
package fileutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// TempPath reserves a unique temporary file next to finalPath and returns its
// name. Creating the staging file in the final path's directory guarantees the
// later rename cannot cross filesystem volumes.
func TempPath(finalPath string) (string, error) {
	f, err := os.CreateTemp(filepath.Dir(finalPath), ".seczip-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating staging file: %w", err)
	}

	name := f.Name()

	if err := f.Close(); err != nil {
		_ = os.Remove(name)

		return "", fmt.Errorf("closing staging file: %w", err)
	}

	return name, nil
}

// Discard removes a staging file, best effort. A missing file is not an
// error; any other removal failure is returned so the caller can log it, but
// cleanup must never mask the failure that triggered it.
func Discard(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("removing staging file %q: %w", path, err)
	}

	return nil
}

// Size returns the size in bytes of the file at path.
func Size(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, fmt.Errorf("stat %q: %w", path, err)
	}

	return info.Size(), nil
}
