package issues

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// DefaultFilePath is where the fetch script leaves its export.
const DefaultFilePath = "issues_data/latest_issues.json"

// ErrNoData means the issue export has not been produced yet.
var ErrNoData = errors.New("issues data not found")

// FileSource reads a JSON array exported with `gh issue list --json`.
type FileSource struct {
	Path string
}

func NewFileSource(path string) *FileSource {
	if path == "" {
		path = DefaultFilePath
	}
	return &FileSource{Path: path}
}

func (f *FileSource) List(ctx context.Context) ([]Issue, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w at %s", ErrNoData, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read issues data: %w", err)
	}

	var all []Issue
	if err := json.Unmarshal(b, &all); err != nil {
		return nil, fmt.Errorf("failed to parse issues data %s: %w", f.Path, err)
	}
	return all, nil
}
