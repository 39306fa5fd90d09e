package credentials

import "errors"

var (
	// ErrNotConfigured means no credential record exists yet; setup has never run.
	ErrNotConfigured = errors.New("linkedin credentials not configured")
	// ErrCorrupt means a credential record exists but cannot be used as-is.
	ErrCorrupt = errors.New("linkedin credentials are invalid")
	// ErrExpired means the stored access token is past its usable lifetime.
	ErrExpired = errors.New("linkedin access token expired")
)

// Store defines the interface for persisting the single credential record
type Store interface {
	// Load returns the stored record, ErrNotConfigured when there is none,
	// or an error wrapping ErrCorrupt when it cannot be decoded.
	Load() (*Record, error)
	// Save replaces the stored record as a whole.
	Save(rec *Record) error
}
