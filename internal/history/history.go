// Package history keeps the append-only log of posts the operator confirmed.
package history

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/natefinch/atomic"

	"github.com/dvcrn/hax-poster/internal/compose"
	"github.com/dvcrn/hax-poster/internal/issues"
)

// DefaultPath is the log file in the working directory.
const DefaultPath = "post-history.json"

const logFileMode = 0644

type Method string

const (
	MethodAPI    Method = "api"
	MethodManual Method = "manual"
)

// Posted is stored as true for API posts and as the string "manual" when the
// operator was handed the content to post themselves.
type Posted int

const (
	NotPosted Posted = iota
	PostedViaAPI
	PostedManually
)

// PostedFor maps the method actually used to its log value.
func PostedFor(m Method) Posted {
	if m == MethodAPI {
		return PostedViaAPI
	}
	return PostedManually
}

func (p Posted) MarshalJSON() ([]byte, error) {
	switch p {
	case PostedViaAPI:
		return []byte("true"), nil
	case PostedManually:
		return []byte(`"manual"`), nil
	default:
		return []byte("false"), nil
	}
}

func (p *Posted) UnmarshalJSON(b []byte) error {
	switch string(bytes.TrimSpace(b)) {
	case "true":
		*p = PostedViaAPI
	case `"manual"`:
		*p = PostedManually
	case "false", "null":
		*p = NotPosted
	default:
		return fmt.Errorf("invalid posted value %s", b)
	}
	return nil
}

// Entry is one confirmed post.
type Entry struct {
	ID           string           `json:"id,omitempty"`
	Date         string           `json:"date"`
	Type         compose.PostType `json:"type"`
	Stats        *issues.Stats    `json:"stats"`
	LinkedInPost string           `json:"linkedinPost"`
	TwitterPost  string           `json:"twitterPost"`
	Posted       Posted           `json:"posted"`
	Method       Method           `json:"method"`
}

// NewEntry records draft as posted through method on day now.
func NewEntry(draft compose.Draft, method Method, now time.Time) Entry {
	return Entry{
		ID:           uuid.NewString(),
		Date:         now.Format(time.DateOnly),
		Type:         draft.Type,
		Stats:        draft.Stats,
		LinkedInPost: draft.LinkedIn,
		TwitterPost:  draft.Twitter,
		Posted:       PostedFor(method),
		Method:       method,
	}
}

// Log is a JSON array on disk, rewritten whole on each append.
type Log struct {
	Path string
}

func NewLog(path string) *Log {
	if path == "" {
		path = DefaultPath
	}
	return &Log{Path: path}
}

// Entries returns the logged posts, oldest first. A missing file is an empty log.
func (l *Log) Entries() ([]Entry, error) {
	b, err := os.ReadFile(l.Path)
	if errors.Is(err, fs.ErrNotExist) {
		return []Entry{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read post history: %w", err)
	}
	if len(bytes.TrimSpace(b)) == 0 {
		return []Entry{}, nil
	}

	var entries []Entry
	if err := json.Unmarshal(b, &entries); err != nil {
		return nil, fmt.Errorf("failed to parse post history %s: %w", l.Path, err)
	}
	return entries, nil
}

// Append adds e after every existing entry. Existing entries are written back
// unchanged.
func (l *Log) Append(e Entry) error {
	entries, err := l.Entries()
	if err != nil {
		return err
	}
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal post history: %w", err)
	}

	if dir := filepath.Dir(l.Path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	if err := atomic.WriteFile(l.Path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write post history: %w", err)
	}
	// the temp file behind the rename is created 0600
	if err := os.Chmod(l.Path, logFileMode); err != nil {
		return fmt.Errorf("failed to set post history permissions: %w", err)
	}
	return nil
}
