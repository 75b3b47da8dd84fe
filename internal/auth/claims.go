package auth

import (
	"time"
)

// AccessClaims represents the claims stored in a PASETO access token.
// These are encrypted in v4.local tokens, so they're not readable without the key.
type AccessClaims struct {
	UserID int64  `json:"user_id"`
	Email  string `json:"email"`

	// Standard PASETO claims
	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// FederatedIdentity is the profile handed back by an external identity
// provider after a successful sign-in exchange.
type FederatedIdentity struct {
	Provider   string `json:"provider"`
	ExternalID string `json:"external_id"`
	Email      string `json:"email"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	AvatarURL  string `json:"avatar_url"`
}

// IsValid performs basic validation on the identity.
func (f FederatedIdentity) IsValid() bool {
	// At minimum, we need a stable subject and an email to key the account.
	return f.ExternalID != "" && f.Email != ""
}
