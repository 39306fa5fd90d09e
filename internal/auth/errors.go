package auth

import (
	"errors"
	"fmt"
)

var (
	ErrAuthorizationDenied = errors.New("authorization denied by provider")
	ErrCSRFMismatch        = errors.New("invalid state parameter")
	ErrPortInUse           = errors.New("callback port already in use")
	ErrMissingCode         = errors.New("callback did not include an authorization code")
)

// TokenExchangeError is returned when the token endpoint rejects the code or
// cannot be reached.
type TokenExchangeError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *TokenExchangeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("token exchange failed: %v", e.Err)
	}
	return fmt.Sprintf("token exchange failed: %d %s", e.StatusCode, e.Body)
}

func (e *TokenExchangeError) Unwrap() error { return e.Err }

// ProfileFetchError is returned when the userinfo endpoint fails after a
// successful token exchange.
type ProfileFetchError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *ProfileFetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("profile fetch failed: %v", e.Err)
	}
	return fmt.Sprintf("profile fetch failed: %d %s", e.StatusCode, e.Body)
}

func (e *ProfileFetchError) Unwrap() error { return e.Err }
