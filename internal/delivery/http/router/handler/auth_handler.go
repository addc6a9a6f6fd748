// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/response"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/usecase"
)

// signupRequest is the wire shape of a registration request.
type signupRequest struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// loginRequest is the wire shape of an authentication request.
type loginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// authResponse is shared by signup and login.
type authResponse struct {
	Token    string `json:"token"`
	Username string `json:"username"`
}

// sessionResponse confirms a valid session.
type sessionResponse struct {
	OK       bool   `json:"ok"`
	Username string `json:"username"`
}

// AuthHandler holds dependencies for the credential-issuance handlers.
type AuthHandler struct {
	uc     usecase.AuthUsecase
	logger *slog.Logger
}

// NewAuthHandler is the constructor for AuthHandler, injected by Fx.
func NewAuthHandler(uc usecase.AuthUsecase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		uc:     uc,
		logger: logger,
	}
}

// Signup handles the registration request.
func (h *AuthHandler) Signup(c echo.Context) error {
	var input signupRequest
	if err := c.Bind(&input); err != nil {
		return errors.Wrap(domainerrors.ErrMissingFields, "failed to bind signup input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.Wrap(domainerrors.ErrMissingFields, "signup input incomplete")
	}

	output, err := h.uc.Register(c.Request().Context(), &usecase.RegisterInput{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, authResponse{Token: output.Token, Username: output.Username})
}

// Login handles the authentication request.
func (h *AuthHandler) Login(c echo.Context) error {
	var input loginRequest
	if err := c.Bind(&input); err != nil {
		return errors.Wrap(domainerrors.ErrMissingFields, "failed to bind login input")
	}
	if err := c.Validate(&input); err != nil {
		return errors.Wrap(domainerrors.ErrMissingFields, "login input incomplete")
	}

	output, err := h.uc.Login(c.Request().Context(), &usecase.LoginInput{
		Email:    input.Email,
		Password: input.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, authResponse{Token: output.Token, Username: output.Username})
}

// Check handles the session-check request. The bearer token was extracted by
// the auth middleware; verification happens in the usecase.
func (h *AuthHandler) Check(c echo.Context) error {
	output, err := h.uc.CheckSession(c.Request().Context(), middleware.BearerToken(c))
	if err != nil {
		return errors.WithStack(err)
	}

	return response.JSON(c, http.StatusOK, sessionResponse{OK: output.OK, Username: output.Username})
}

// HealthCheck is a simple handler to check if the service is up.
func HealthCheck(c echo.Context) error {
	return response.JSON(c, http.StatusOK, map[string]string{"status": "ok"})
}
