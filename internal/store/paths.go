package store

import (
	"fmt"
	"os"
	"path/filepath"
)

// GlobalHiveumPath returns the path to the global .hiveum directory.
// On Unix: ~/.hiveum
// On Windows: %USERPROFILE%\.hiveum
func GlobalHiveumPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user home directory: %w", err)
	}
	return filepath.Join(homeDir, ".hiveum"), nil
}

// DefaultDBPath returns ~/.hiveum/runs.db.
func DefaultDBPath() (string, error) {
	dir, err := GlobalHiveumPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "runs.db"), nil
}
