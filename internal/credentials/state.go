package credentials

import (
	"errors"
	"time"

	"github.com/rs/zerolog"
)

// State is the credential classification for one program run.
type State int

const (
	NoCredential State = iota
	ExpiredCredential
	ValidCredential
)

func (s State) String() string {
	switch s {
	case ValidCredential:
		return "valid"
	case ExpiredCredential:
		return "expired"
	default:
		return "none"
	}
}

// Automated reports whether posting may go through the API.
func (s State) Automated() bool {
	return s == ValidCredential
}

// Status is computed once at startup and passed explicitly to everything that
// needs to choose between the API and the manual path.
type Status struct {
	State State
	// Record is set for valid and expired credentials.
	Record *Record
	// Reason explains why State is not ValidCredential.
	Reason error
}

// MinutesUntilExpiry is negative once the token has expired. It is zero when
// there is no record.
func (s Status) MinutesUntilExpiry(now time.Time) int64 {
	if s.Record == nil {
		return 0
	}
	return int64(s.Record.ExpiresAt().Sub(now) / time.Minute)
}

// Classify loads the record from store and decides the run's State. It never
// fails: every problem degrades to manual mode with an operator diagnostic.
func Classify(store Store, now time.Time, logger zerolog.Logger) Status {
	rec, err := store.Load()
	switch {
	case errors.Is(err, ErrNotConfigured):
		logger.Warn().Msg("⚠️  LinkedIn API not configured - using manual mode")
		logger.Info().Msg("💡 Run: hax-poster setup to configure API access")
		return Status{State: NoCredential, Reason: err}
	case errors.Is(err, ErrCorrupt):
		logger.Warn().Err(err).Msg("⚠️  Invalid LinkedIn config - using manual mode")
		logger.Info().Msg("💡 Run: hax-poster setup to reconfigure")
		return Status{State: NoCredential, Reason: err}
	case err != nil:
		logger.Error().Err(err).Msg("⚠️  Could not read LinkedIn config - using manual mode")
		return Status{State: NoCredential, Reason: err}
	}

	if !IsValid(rec, now) {
		logger.Warn().
			Time("expires_at", rec.ExpiresAt()).
			Msg("⚠️  Access token expired - using manual mode")
		logger.Info().Msg("💡 Run: hax-poster setup to get a new token")
		return Status{State: ExpiredCredential, Record: rec, Reason: ErrExpired}
	}

	logger.Info().
		Str("name", rec.DisplayName).
		Int64("minutes_until_expiry", int64(rec.ExpiresAt().Sub(now)/time.Minute)).
		Msg("✅ LinkedIn API configured")
	return Status{State: ValidCredential, Record: rec}
}
