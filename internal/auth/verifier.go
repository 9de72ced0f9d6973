// Package auth verifies bearer tokens issued by the external auth
// provider. Tokens are HS256 JWTs signed with a shared project secret;
// the subject claim carries the provider user ID.
package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
)

// TokenClaims are the claims we read from a verified access token.
type TokenClaims struct {
	jwt.RegisteredClaims
	Email        string         `json:"email,omitempty"`
	UserMetadata map[string]any `json:"user_metadata,omitempty"`
}

// FullName returns the user's display name from token metadata, if set.
func (c *TokenClaims) FullName() string {
	if c.UserMetadata == nil {
		return ""
	}
	if name, ok := c.UserMetadata["full_name"].(string); ok {
		return name
	}
	return ""
}

// Verifier validates access tokens against the shared signing secret.
type Verifier struct {
	secret []byte
}

// NewVerifier creates a token verifier. The secret must match the auth
// provider's JWT signing secret.
func NewVerifier(secret string) (*Verifier, error) {
	if secret == "" {
		return nil, errors.New("JWT secret is required")
	}
	return &Verifier{secret: []byte(secret)}, nil
}

// Verify parses and validates a bearer token, returning its claims.
// Expiry and not-before are enforced; only HS256 is accepted.
func (v *Verifier) Verify(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims,
		func(t *jwt.Token) (any, error) {
			return v.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if !token.Valid {
		return nil, errors.New("invalid token")
	}
	if claims.Subject == "" {
		return nil, errors.New("token has no subject")
	}
	return claims, nil
}
