package credentials

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"
)

// FSStore keeps the credential record as a JSON document on local disk.
type FSStore struct {
	Path string
}

func NewFSStore(path string) *FSStore {
	return &FSStore{Path: path}
}

func (f *FSStore) Load() (*Record, error) {
	b, err := os.ReadFile(f.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNotConfigured, f.Path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read credentials file: %w", err)
	}
	return decodeRecord(b)
}

// Save replaces the credentials file through a temp file and rename, so a
// reader sees either the previous record or the new one, never a mix.
func (f *FSStore) Save(rec *Record) error {
	data, err := encodeRecord(rec)
	if err != nil {
		return err
	}

	if err := EnsureParentDir(f.Path); err != nil {
		return err
	}

	if err := atomic.WriteFile(f.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write credentials file: %w", err)
	}

	if err := os.Chmod(f.Path, 0600); err != nil {
		return fmt.Errorf("failed to restrict credentials file permissions: %w", err)
	}

	return nil
}
