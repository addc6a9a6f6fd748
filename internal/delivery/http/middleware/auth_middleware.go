package middleware

import (
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	domainerrors "passport/internal/domain/errors"
)

// bearerTokenKey is the echo.Context key under which the raw bearer token is stored.
const bearerTokenKey = "bearerToken"

// AuthMiddleware extracts the bearer token from protected routes. It does not
// verify the token itself; verification (and the account-existence check)
// belongs to the session-check flow so every failure mode is normalized in
// one place.
type AuthMiddleware struct{}

// NewAuthMiddleware is the constructor for AuthMiddleware.
func NewAuthMiddleware() *AuthMiddleware {
	return &AuthMiddleware{}
}

// RequireToken rejects requests without an Authorization header and stashes
// the presented token on the context for handlers.
func (m *AuthMiddleware) RequireToken(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		authHeader := c.Request().Header.Get("Authorization")
		if authHeader == "" {
			return errors.Wrap(domainerrors.ErrNoToken, "authorization header missing")
		}

		// A header without the Bearer prefix is passed through as-is; token
		// verification rejects it downstream.
		token := strings.TrimPrefix(authHeader, "Bearer ")
		c.Set(bearerTokenKey, token)

		return next(c)
	}
}

// BearerToken returns the token stashed by RequireToken, or "" when absent.
func BearerToken(c echo.Context) string {
	token, _ := c.Get(bearerTokenKey).(string)

	return token
}
