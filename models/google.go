package models

import "time"

// GoogleTokens is the outcome of an OAuth token-endpoint call. RefreshToken
// is only present on the initial consent; ExpiresAt is computed from the
// endpoint's relative expires_in.
type GoogleTokens struct {
	AccessToken  string
	RefreshToken *string
	ExpiresAt    *time.Time
}

// GoogleUserInfo is the profile reported by the OpenID userinfo endpoint.
type GoogleUserInfo struct {
	Sub     string  `json:"sub"`
	Email   string  `json:"email"`
	Name    string  `json:"name"`
	Picture *string `json:"picture,omitempty"`
}
