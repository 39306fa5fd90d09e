package auth

import "strings"

const (
	// AuthorizationURL is the LinkedIn consent page
	AuthorizationURL = "https://www.linkedin.com/oauth/v2/authorization"
	// TokenURL exchanges an authorization code for an access token
	TokenURL = "https://www.linkedin.com/oauth/v2/accessToken"
	// UserInfoURL is the OpenID Connect userinfo endpoint
	UserInfoURL = "https://api.linkedin.com/v2/userinfo"
	// DefaultScopes are requested during setup
	DefaultScopes = "openid profile w_member_social"
	// CallbackPath is the only path the callback listener answers
	CallbackPath = "/callback"
	// DefaultCallbackPort is the port registered as the app's redirect URL
	DefaultCallbackPort = 3000
)

// Endpoints groups the provider URLs used during authorization.
type Endpoints struct {
	Authorization string
	Token         string
	UserInfo      string
}

// LinkedInEndpoints returns the production LinkedIn endpoints.
func LinkedInEndpoints() Endpoints {
	return Endpoints{
		Authorization: AuthorizationURL,
		Token:         TokenURL,
		UserInfo:      UserInfoURL,
	}
}

// TokenResponse represents the OAuth token exchange API response
type TokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token,omitempty"`
	ExpiresIn    int64  `json:"expires_in"`
	Scope        string `json:"scope,omitempty"`
}

// Profile is the subset of the OpenID Connect userinfo document we use
type Profile struct {
	Sub        string `json:"sub"`
	Name       string `json:"name,omitempty"`
	GivenName  string `json:"given_name,omitempty"`
	FamilyName string `json:"family_name,omitempty"`
	Email      string `json:"email,omitempty"`
}

// DisplayName prefers the full name, then given and family names.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if full := strings.TrimSpace(p.GivenName + " " + p.FamilyName); full != "" {
		return full
	}
	return "LinkedIn User"
}
