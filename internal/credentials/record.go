package credentials

import (
	"encoding/json"
	"fmt"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// ExpiryBuffer is subtracted from the token lifetime so a request started just
// before expiry does not race the provider's clock.
const ExpiryBuffer = 5 * time.Minute

// Record is the locally persisted LinkedIn credential. It is written once by
// the setup flow and never updated in place.
type Record struct {
	ClientID     string    `json:"clientId"`
	ClientSecret string    `json:"clientSecret"`
	AccessToken  string    `json:"accessToken"`
	RefreshToken string    `json:"refreshToken,omitempty"`
	PersonID     string    `json:"personId"`
	DisplayName  string    `json:"name"`
	ExpiresIn    int64     `json:"expiresIn"`
	CreatedAt    time.Time `json:"createdAt"`
}

// Validate reports whether the record carries everything needed to post.
func (r *Record) Validate() error {
	return validation.ValidateStruct(r,
		validation.Field(&r.AccessToken, validation.Required),
		validation.Field(&r.PersonID, validation.Required),
		validation.Field(&r.ExpiresIn, validation.Required, validation.Min(int64(1))),
		validation.Field(&r.CreatedAt, validation.Required),
	)
}

// ExpiresAt is the instant the provider stops honouring the access token.
func (r *Record) ExpiresAt() time.Time {
	return r.CreatedAt.Add(time.Duration(r.ExpiresIn) * time.Second)
}

// AuthorURN is the post author reference for the authenticated member.
func (r *Record) AuthorURN() string {
	return "urn:li:person:" + r.PersonID
}

// IsValid reports whether rec can still be used at now, honouring ExpiryBuffer.
func IsValid(rec *Record, now time.Time) bool {
	if rec == nil {
		return false
	}
	return now.Before(rec.ExpiresAt().Add(-ExpiryBuffer))
}

func decodeRecord(data []byte) (*Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &rec, nil
}

func encodeRecord(rec *Record) ([]byte, error) {
	if rec == nil {
		return nil, fmt.Errorf("cannot save empty credential record")
	}
	if err := rec.Validate(); err != nil {
		return nil, fmt.Errorf("refusing to save incomplete credential record: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal credentials: %w", err)
	}
	return data, nil
}
