package auth

import (
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"

	"passport/config"
	"passport/internal/domain/service"
)

// jwtService is a concrete implementation of the TokenService interface using the JWT standard.
type jwtService struct {
	secret string        // Shared key for signing and verifying tokens, fixed at process start.
	ttl    time.Duration // Validity window measured from issuance.
}

// NewJWTService is the constructor for jwtService. The signing secret and the
// validity window come from configuration; running on the insecure default
// secret is allowed but loudly flagged for deployment.
func NewJWTService(cfg *config.Config, logger *slog.Logger) (service.TokenService, error) {
	if cfg.SecretKey.Signing == "" {
		return nil, errors.New("jwt signing secret must be provided")
	}
	if cfg.SecretKey.Signing == config.DefaultSigningSecret {
		logger.Warn("Using the insecure default signing secret; set SECRETKEY_SIGNING before deploying")
	}

	ttl := 7 * 24 * time.Hour
	if cfg.Auth != nil && cfg.Auth.TokenTTL > 0 {
		ttl = cfg.Auth.TokenTTL
	}

	return &jwtService{
		secret: cfg.SecretKey.Signing,
		ttl:    ttl,
	}, nil
}

// Issue creates a signed HS256 token asserting the account's identity.
func (s *jwtService) Issue(accountID string) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   accountID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.secret))
	if err != nil {
		return "", errors.Wrap(err, "failed to sign token")
	}

	return signed, nil
}

// Verify checks the token's signature and expiry against the shared secret.
// The signature covers the whole payload, so any tampering with either part
// fails parsing; jwt/v5 also rejects expired tokens during Parse.
func (s *jwtService) Verify(tokenString string) (*service.Claims, error) {
	claims := &service.Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (any, error) {
		// Ensure the signing method is what we expect.
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}

		return []byte(s.secret), nil
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse token")
	}
	if !token.Valid {
		return nil, errors.New("token is not valid")
	}

	claims.AccountID = claims.Subject
	if claims.AccountID == "" {
		return nil, errors.New("token has no subject")
	}

	return claims, nil
}

// TokenTTL returns the configured validity window for issued tokens.
func (s *jwtService) TokenTTL() time.Duration {
	return s.ttl
}
