package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims defines the verified claims carried by an issued token.
type Claims struct {
	AccountID string `json:"-"` // The account identifier the token asserts, copied from the "sub" claim.
	jwt.RegisteredClaims
}

// TokenService defines the interface for issuing and verifying signed,
// time-bounded identity tokens. Tokens are stateless: validity is fully
// determined by the signature and the embedded expiry, never by storage.
type TokenService interface {
	// Issue creates a signed token asserting the account's identity,
	// valid from now until now plus the configured validity window.
	Issue(accountID string) (string, error)

	// Verify checks the token's signature and expiry and returns its claims.
	// Claims from a token that fails verification are never returned.
	Verify(tokenString string) (*Claims, error)

	// TokenTTL returns the configured validity window for issued tokens.
	TokenTTL() time.Duration
}
