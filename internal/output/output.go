// Package output writes generated files to disk. Writes are atomic so a
// failed generation never leaves a truncated file behind.
package output

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/renameio/v2"
)

// WriteFile atomically writes data to path, creating parent directories as
// needed.
func WriteFile(path string, data []byte) error {
	if path == "" {
		return fmt.Errorf("output: path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("output: ensure dir for %s: %w", path, err)
	}
	if err := renameio.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("output: write %s: %w", path, err)
	}
	return nil
}

// EnsureDir creates a directory (and parents) if it does not exist.
func EnsureDir(path string) error {
	if path == "" {
		return fmt.Errorf("output: dir path is required")
	}
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("output: ensure dir %s: %w", path, err)
	}
	return nil
}
