package credentials

import (
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStore struct {
	rec *Record
	err error
}

func (m *memoryStore) Load() (*Record, error) { return m.rec, m.err }
func (m *memoryStore) Save(rec *Record) error { m.rec = rec; return nil }

func TestIsValidBoundary(t *testing.T) {
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rec := &Record{AccessToken: "t", PersonID: "p", ExpiresIn: 3600, CreatedAt: created}
	cutoff := rec.ExpiresAt().Add(-ExpiryBuffer)

	assert.True(t, IsValid(rec, created))
	assert.True(t, IsValid(rec, cutoff.Add(-time.Second)))
	assert.False(t, IsValid(rec, cutoff))
	assert.False(t, IsValid(rec, cutoff.Add(time.Second)))
	assert.False(t, IsValid(rec, rec.ExpiresAt()))
	assert.False(t, IsValid(nil, created))
}

func TestIsValidOneMinutePastExpiry(t *testing.T) {
	created := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)
	rec := &Record{AccessToken: "still-here", PersonID: "p", ExpiresIn: 3600, CreatedAt: created}

	assert.False(t, IsValid(rec, created.Add(3660*time.Second)))
}

func TestRecordHelpers(t *testing.T) {
	rec := testRecord()
	assert.Equal(t, "urn:li:person:abc123", rec.AuthorURN())
	assert.Equal(t, rec.CreatedAt.Add(60*24*time.Hour), rec.ExpiresAt())
}

func TestClassify(t *testing.T) {
	now := time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

	t.Run("not configured", func(t *testing.T) {
		st := Classify(&memoryStore{err: ErrNotConfigured}, now, zerolog.Nop())
		assert.Equal(t, NoCredential, st.State)
		assert.Nil(t, st.Record)
		assert.True(t, errors.Is(st.Reason, ErrNotConfigured))
	})

	t.Run("corrupt", func(t *testing.T) {
		st := Classify(&memoryStore{err: ErrCorrupt}, now, zerolog.Nop())
		assert.Equal(t, NoCredential, st.State)
		assert.True(t, errors.Is(st.Reason, ErrCorrupt))
	})

	t.Run("unreadable", func(t *testing.T) {
		st := Classify(&memoryStore{err: errors.New("permission denied")}, now, zerolog.Nop())
		assert.Equal(t, NoCredential, st.State)
		require.Error(t, st.Reason)
	})

	t.Run("expired keeps record for diagnostics", func(t *testing.T) {
		rec := &Record{AccessToken: "t", PersonID: "p", ExpiresIn: 3600, CreatedAt: now.Add(-61 * time.Minute)}
		st := Classify(&memoryStore{rec: rec}, now, zerolog.Nop())
		assert.Equal(t, ExpiredCredential, st.State)
		assert.False(t, st.State.Automated())
		assert.Same(t, rec, st.Record)
		assert.True(t, errors.Is(st.Reason, ErrExpired))
		assert.Equal(t, int64(-1), st.MinutesUntilExpiry(now))
	})

	t.Run("valid", func(t *testing.T) {
		rec := &Record{AccessToken: "t", PersonID: "p", ExpiresIn: 3600, CreatedAt: now}
		st := Classify(&memoryStore{rec: rec}, now, zerolog.Nop())
		assert.Equal(t, ValidCredential, st.State)
		assert.True(t, st.State.Automated())
		assert.NoError(t, st.Reason)
		assert.Equal(t, int64(60), st.MinutesUntilExpiry(now))
	})
}

func TestStateString(t *testing.T) {
	assert.Equal(t, "none", NoCredential.String())
	assert.Equal(t, "expired", ExpiredCredential.String())
	assert.Equal(t, "valid", ValidCredential.String())
}
