package store

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestGlobalHiveumPath(t *testing.T) {
	got, err := GlobalHiveumPath()
	if err != nil {
		t.Fatalf("GlobalHiveumPath() error = %v", err)
	}
	if !strings.HasSuffix(got, ".hiveum") {
		t.Errorf("GlobalHiveumPath() = %v, should end with .hiveum", got)
	}
	if !filepath.IsAbs(got) {
		t.Errorf("GlobalHiveumPath() = %v, should be absolute path", got)
	}
	homeDir, _ := os.UserHomeDir()
	if !strings.HasPrefix(got, homeDir) {
		t.Errorf("GlobalHiveumPath() = %v, should start with home directory %v", got, homeDir)
	}
}

func TestDefaultDBPath(t *testing.T) {
	got, err := DefaultDBPath()
	if err != nil {
		t.Fatalf("DefaultDBPath() error = %v", err)
	}
	if filepath.Base(got) != "runs.db" {
		t.Errorf("DefaultDBPath() = %v, want runs.db file", got)
	}
	if filepath.Base(filepath.Dir(got)) != ".hiveum" {
		t.Errorf("DefaultDBPath() = %v, want it inside .hiveum", got)
	}
}
