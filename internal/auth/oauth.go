package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// HTTPClient is an interface for making HTTP requests
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Client talks to the provider's token and userinfo endpoints.
type Client struct {
	endpoints  Endpoints
	httpClient HTTPClient
}

// NewClient creates a provider client. A nil httpClient gets a 60 second timeout.
func NewClient(endpoints Endpoints, httpClient HTTPClient) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 60 * time.Second}
	}
	return &Client{endpoints: endpoints, httpClient: httpClient}
}

// ExchangeCode trades an authorization code for tokens.
func (c *Client) ExchangeCode(ctx context.Context, sess *Session, code string) (*TokenResponse, error) {
	form := url.Values{
		"grant_type":    {"authorization_code"},
		"code":          {code},
		"client_id":     {sess.ClientID},
		"client_secret": {sess.ClientSecret},
		"redirect_uri":  {sess.RedirectURI},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoints.Token, strings.NewReader(form.Encode()))
	if err != nil {
		return nil, &TokenExchangeError{Err: err}
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &TokenExchangeError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &TokenExchangeError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var tokenResp TokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&tokenResp); err != nil {
		return nil, &TokenExchangeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode token response: %w", err)}
	}
	if tokenResp.AccessToken == "" {
		return nil, &TokenExchangeError{StatusCode: resp.StatusCode, Err: fmt.Errorf("token response has no access_token")}
	}

	return &tokenResp, nil
}

// FetchProfile reads the authenticated member's identity.
func (c *Client) FetchProfile(ctx context.Context, accessToken string) (*Profile, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoints.UserInfo, nil)
	if err != nil {
		return nil, &ProfileFetchError{Err: err}
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &ProfileFetchError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	var profile Profile
	if err := json.NewDecoder(resp.Body).Decode(&profile); err != nil {
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("failed to decode profile: %w", err)}
	}
	if profile.Sub == "" {
		return nil, &ProfileFetchError{StatusCode: resp.StatusCode, Err: fmt.Errorf("profile has no sub")}
	}

	return &profile, nil
}
