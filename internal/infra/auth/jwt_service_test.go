package auth

import (
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"passport/config"
)

func testTokenConfig(secret string) *config.Config {
	cfg := &config.Config{}
	cfg.SecretKey.Signing = secret
	cfg.Auth = &config.AuthConfig{TokenTTL: 7 * 24 * time.Hour}

	return cfg
}

func TestJWTService_IssueAndVerify(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_signing_secret_very_long_for_testing"), slog.Default())
	require.NoError(t, err)

	token, err := svc.Issue("alice@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice@x.com", claims.AccountID)
	assert.WithinDuration(t, time.Now(), claims.IssuedAt.Time, time.Minute)
	assert.WithinDuration(t, time.Now().Add(7*24*time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestJWTService_ExpiredToken(t *testing.T) {
	// A negative TTL issues a token that is already past its expiry.
	svc := &jwtService{secret: "test_signing_secret", ttl: -time.Minute}

	token, err := svc.Issue("alice@x.com")
	require.NoError(t, err)

	claims, err := svc.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
	assert.Contains(t, err.Error(), "expired")
}

func TestJWTService_TamperedToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_signing_secret_very_long_for_testing"), slog.Default())
	require.NoError(t, err)

	token, err := svc.Issue("alice@x.com")
	require.NoError(t, err)

	// Flip one byte at a time across the token; every mutation must fail
	// verification. The last character of each base64 segment is skipped:
	// its trailing bits are padding, so a flip there may not change the
	// decoded bytes at all.
	for i := 0; i < len(token); i++ {
		if i == len(token)-1 || token[i+1] == '.' {
			continue
		}
		mutated := []byte(token)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		if string(mutated) == token {
			continue
		}

		claims, err := svc.Verify(string(mutated))
		assert.Error(t, err, "tampered token verified at byte %d", i)
		assert.Nil(t, claims)
	}
}

func TestJWTService_WrongSecret(t *testing.T) {
	issuer, err := NewJWTService(testTokenConfig("issuer_secret_very_long_for_testing"), slog.Default())
	require.NoError(t, err)
	verifier, err := NewJWTService(testTokenConfig("verifier_secret_very_long_for_testing"), slog.Default())
	require.NoError(t, err)

	token, err := issuer.Issue("alice@x.com")
	require.NoError(t, err)

	claims, err := verifier.Verify(token)
	assert.Error(t, err)
	assert.Nil(t, claims)
}

func TestJWTService_MalformedToken(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_signing_secret_very_long_for_testing"), slog.Default())
	require.NoError(t, err)

	for _, malformed := range []string{
		"clearly-not-a-jwt",
		"a.b",
		strings.Repeat("x", 512),
	} {
		claims, err := svc.Verify(malformed)
		assert.Error(t, err, "malformed token accepted: %q", malformed)
		assert.Nil(t, claims)
	}
}

func TestJWTService_EmptySecret(t *testing.T) {
	cfg := &config.Config{}
	cfg.Auth = &config.AuthConfig{}

	svc, err := NewJWTService(cfg, slog.Default())
	assert.Error(t, err)
	assert.Nil(t, svc)
	assert.Contains(t, err.Error(), "signing secret must be provided")
}

func TestJWTService_TokenTTL(t *testing.T) {
	svc, err := NewJWTService(testTokenConfig("test_signing_secret_very_long_for_testing"), slog.Default())
	require.NoError(t, err)

	assert.Equal(t, 7*24*time.Hour, svc.TokenTTL())
}
