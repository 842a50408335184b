package models

import "github.com/golang-jwt/jwt/v5"

// TokenClaims is the verified JWT payload. Only the registered claims
// matter here: sub identifies the owner, exp/iss are validated during
// parsing. Claims are produced per request and never persisted.
type TokenClaims struct {
	jwt.RegisteredClaims
}

// UserID returns the authenticated user's identifier (the subject claim).
func (c *TokenClaims) UserID() string {
	return c.Subject
}
