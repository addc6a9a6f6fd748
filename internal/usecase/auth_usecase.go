// Package usecase contains the application-specific business rules.
// It orchestrates the domain layer to perform tasks.
package usecase

import "context"

// --- Input DTOs ---

// RegisterInput defines the data required to register a new account.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput defines the data required to authenticate an account.
type LoginInput struct {
	Email    string
	Password string
}

// --- Output DTOs ---

// AuthOutput returns the issued token and the account's display name.
// Register and Login share this shape.
type AuthOutput struct {
	Token    string
	Username string
}

// SessionOutput confirms a verified session.
type SessionOutput struct {
	OK       bool
	Username string
}

// AuthUsecase defines the interface for the credential-issuance flows.
// This is the contract that the delivery layer (e.g., API handlers) will depend on.
type AuthUsecase interface {
	// Register creates a credential record and issues a token for it.
	Register(ctx context.Context, input *RegisterInput) (*AuthOutput, error)

	// Login authenticates an existing credential and issues a fresh token.
	Login(ctx context.Context, input *LoginInput) (*AuthOutput, error)

	// CheckSession verifies a presented token and confirms the account
	// behind it still exists.
	CheckSession(ctx context.Context, token string) (*SessionOutput, error)
}
