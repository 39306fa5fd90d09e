package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	return &Session{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		State:        "expected-state",
		RedirectURI:  "http://localhost:3000/callback",
	}
}

func TestExchangeCode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "application/x-www-form-urlencoded", r.Header.Get("Content-Type"))
		require.NoError(t, r.ParseForm())
		assert.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
		assert.Equal(t, "the-code", r.PostForm.Get("code"))
		assert.Equal(t, "client-id", r.PostForm.Get("client_id"))
		assert.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
		assert.Equal(t, "http://localhost:3000/callback", r.PostForm.Get("redirect_uri"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"access_token":"tok","refresh_token":"ref","expires_in":5184000,"scope":"openid,profile,w_member_social"}`))
	}))
	defer srv.Close()

	c := NewClient(Endpoints{Token: srv.URL}, srv.Client())
	tok, err := c.ExchangeCode(context.Background(), testSession(), "the-code")
	require.NoError(t, err)
	assert.Equal(t, "tok", tok.AccessToken)
	assert.Equal(t, "ref", tok.RefreshToken)
	assert.Equal(t, int64(5184000), tok.ExpiresIn)
}

func TestExchangeCodeRejected(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid_client"}`))
	}))
	defer srv.Close()

	c := NewClient(Endpoints{Token: srv.URL}, srv.Client())
	_, err := c.ExchangeCode(context.Background(), testSession(), "the-code")

	var exErr *TokenExchangeError
	require.True(t, errors.As(err, &exErr))
	assert.Equal(t, http.StatusUnauthorized, exErr.StatusCode)
	assert.Contains(t, exErr.Body, "invalid_client")
}

func TestFetchProfile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		w.Write([]byte(`{"sub":"abc123","given_name":"Ada","family_name":"Lovelace"}`))
	}))
	defer srv.Close()

	c := NewClient(Endpoints{UserInfo: srv.URL}, srv.Client())
	p, err := c.FetchProfile(context.Background(), "tok")
	require.NoError(t, err)
	assert.Equal(t, "abc123", p.Sub)
	assert.Equal(t, "Ada Lovelace", p.DisplayName())
}

func TestFetchProfileFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	c := NewClient(Endpoints{UserInfo: srv.URL}, srv.Client())
	_, err := c.FetchProfile(context.Background(), "tok")

	var pErr *ProfileFetchError
	require.True(t, errors.As(err, &pErr))
	assert.Equal(t, http.StatusForbidden, pErr.StatusCode)
}
