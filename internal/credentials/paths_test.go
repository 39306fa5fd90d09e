package credentials

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultCredsPath(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}

	result := DefaultCredsPath()
	expected := filepath.Join(homeDir, ".hax-linkedin-config.json")

	if result != expected {
		t.Errorf("Expected %s, got %s", expected, result)
	}
}

func TestExpandHome(t *testing.T) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		t.Fatalf("Failed to get home directory: %v", err)
	}

	t.Run("tilde prefix", func(t *testing.T) {
		got := ExpandHome("~/creds/linkedin.json")
		expected := filepath.Join(homeDir, "creds", "linkedin.json")
		if got != expected {
			t.Errorf("Expected %s, got %s", expected, got)
		}
	})

	t.Run("absolute path untouched", func(t *testing.T) {
		if got := ExpandHome("/etc/hax.json"); got != "/etc/hax.json" {
			t.Errorf("Expected path to be unchanged, got %s", got)
		}
	})

	t.Run("tilde inside name untouched", func(t *testing.T) {
		if got := ExpandHome("backup~/x.json"); got != "backup~/x.json" {
			t.Errorf("Expected path to be unchanged, got %s", got)
		}
	})
}

func TestEnsureParentDir(t *testing.T) {
	tmpDir := t.TempDir()
	testPath := filepath.Join(tmpDir, "nested", "dir", "creds.json")

	err := EnsureParentDir(testPath)
	if err != nil {
		t.Fatalf("EnsureParentDir failed: %v", err)
	}

	parentDir := filepath.Dir(testPath)
	info, err := os.Stat(parentDir)
	if err != nil {
		t.Fatalf("Parent directory was not created: %v", err)
	}

	if !info.IsDir() {
		t.Error("Expected parent to be a directory")
	}

	expectedPerm := os.FileMode(0700)
	if info.Mode().Perm() != expectedPerm {
		t.Errorf("Expected permissions %v, got %v", expectedPerm, info.Mode().Perm())
	}
}

func TestFileExists(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("file exists", func(t *testing.T) {
		existingFile := filepath.Join(tmpDir, "exists.json")
		if err := os.WriteFile(existingFile, []byte("{}"), 0600); err != nil {
			t.Fatalf("Failed to create test file: %v", err)
		}

		if !FileExists(existingFile) {
			t.Error("Expected FileExists to return true for existing file")
		}
	})

	t.Run("file does not exist", func(t *testing.T) {
		nonExistentFile := filepath.Join(tmpDir, "does-not-exist.json")

		if FileExists(nonExistentFile) {
			t.Error("Expected FileExists to return false for non-existent file")
		}
	})
}
