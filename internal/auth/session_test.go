package auth

import (
	"encoding/base64"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateState(t *testing.T) {
	a, err := GenerateState()
	require.NoError(t, err)
	b, err := GenerateState()
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	raw, err := base64.RawURLEncoding.DecodeString(a)
	require.NoError(t, err)
	assert.Len(t, raw, 32)
}

func TestNewSessionRequiresClientCredentials(t *testing.T) {
	_, err := NewSession("", "secret", RedirectURI(3000))
	assert.Error(t, err)

	_, err = NewSession("id", "", RedirectURI(3000))
	assert.Error(t, err)
}

func TestAuthorizationURL(t *testing.T) {
	sess, err := NewSession("my-client", "my-secret", RedirectURI(DefaultCallbackPort))
	require.NoError(t, err)

	raw, err := sess.AuthorizationURL(AuthorizationURL, DefaultScopes)
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "www.linkedin.com", u.Host)
	assert.Equal(t, "/oauth/v2/authorization", u.Path)

	q := u.Query()
	assert.Equal(t, "code", q.Get("response_type"))
	assert.Equal(t, "my-client", q.Get("client_id"))
	assert.Equal(t, "http://localhost:3000/callback", q.Get("redirect_uri"))
	assert.Equal(t, sess.State, q.Get("state"))
	assert.Equal(t, "openid profile w_member_social", q.Get("scope"))
	assert.Empty(t, q.Get("client_secret"))
}

func TestProfileDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		profile Profile
		want    string
	}{
		{"full name", Profile{Name: "Ada Lovelace", GivenName: "Ada", FamilyName: "L"}, "Ada Lovelace"},
		{"given and family", Profile{GivenName: "Ada", FamilyName: "Lovelace"}, "Ada Lovelace"},
		{"given only", Profile{GivenName: "Ada"}, "Ada"},
		{"nothing", Profile{Sub: "x"}, "LinkedIn User"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.profile.DisplayName())
		})
	}
}
