package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes rendered content to path, creating parent directories as
// needed. Unlike generated-once artifacts, rendered targets regenerate on
// every build, so an existing file is overwritten.
func WriteFile(path string, content []byte) error {
	if path == "" {
		return fmt.Errorf("target path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o750); err != nil {
		return fmt.Errorf("create target directory: %w", err)
	}
	if err := os.WriteFile(path, content, 0o600); err != nil {
		return fmt.Errorf("write target file: %w", err)
	}
	return nil
}
