package credentials

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultFileName is the credentials file created in the user's home directory.
const DefaultFileName = ".hax-linkedin-config.json"

func DefaultCredsPath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return DefaultFileName
	}
	return filepath.Join(homeDir, DefaultFileName)
}

// ExpandHome resolves a leading "~/" against the user's home directory.
func ExpandHome(path string) string {
	if path != "~" && !strings.HasPrefix(path, "~/") {
		return path
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(homeDir, strings.TrimPrefix(path, "~"))
}

func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}
	return nil
}

func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
