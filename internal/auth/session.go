package auth

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
	"net/url"
)

// Session is the ephemeral state of one authorization attempt. It lives only
// for the duration of a setup run.
type Session struct {
	ClientID     string
	ClientSecret string
	State        string
	RedirectURI  string
}

// NewSession starts an authorization attempt with a fresh CSRF state.
func NewSession(clientID, clientSecret, redirectURI string) (*Session, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("client ID and client secret are required")
	}
	state, err := GenerateState()
	if err != nil {
		return nil, err
	}
	return &Session{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		State:        state,
		RedirectURI:  redirectURI,
	}, nil
}

// GenerateState returns 32 random bytes, base64url encoded.
func GenerateState() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate state: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// RedirectURI is the loopback callback URL for port.
func RedirectURI(port int) string {
	return fmt.Sprintf("http://localhost:%d%s", port, CallbackPath)
}

// AuthorizationURL builds the consent URL the operator opens in a browser.
func (s *Session) AuthorizationURL(endpoint, scopes string) (string, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return "", fmt.Errorf("invalid authorization endpoint: %w", err)
	}
	q := u.Query()
	q.Set("response_type", "code")
	q.Set("client_id", s.ClientID)
	q.Set("redirect_uri", s.RedirectURI)
	q.Set("state", s.State)
	q.Set("scope", scopes)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
