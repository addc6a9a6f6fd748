// Package impl contains the implementation of the application's business logic.
package impl

import (
	"context"
	"log/slog"
	"time"

	"github.com/pkg/errors"
	"go.uber.org/fx"

	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"
	"passport/internal/usecase"
)

// authService implements the AuthUsecase interface.
type authService struct {
	store        repository.CredentialStore
	hasher       service.PasswordHasher
	tokenService service.TokenService
	logger       *slog.Logger
}

// AuthServiceParams holds dependencies for authService, injected by Fx.
type AuthServiceParams struct {
	fx.In

	Store        repository.CredentialStore
	Hasher       service.PasswordHasher
	TokenService service.TokenService
	Logger       *slog.Logger
}

// NewAuthService is the constructor for authService. It receives all dependencies as interfaces.
func NewAuthService(params AuthServiceParams) usecase.AuthUsecase {
	return &authService{
		store:        params.Store,
		hasher:       params.Hasher,
		tokenService: params.TokenService,
		logger:       params.Logger,
	}
}

// log returns a request-scoped logger if available, otherwise falls back to the service's logger.
func (srv *authService) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, srv.logger)
}

// Register creates a new credential record and issues a token for it.
func (srv *authService) Register(ctx context.Context, input *usecase.RegisterInput) (*usecase.AuthOutput, error) {
	if input == nil || input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "registration input incomplete")
	}

	srv.log(ctx).Info("Starting registration", slog.String("email", input.Email))

	// Hash before touching the store: bcrypt is deliberately slow and must
	// never run inside the store's critical section.
	passwordHash, err := srv.hasher.Hash(input.Password)
	if err != nil {
		srv.log(ctx).Error("Failed to hash password during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to hash password during registration")
	}

	cred := &entity.Credential{
		AccountID:    input.Email,
		Username:     input.Username,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if err := srv.store.Put(ctx, cred); err != nil {
		if errors.Is(err, repository.ErrCredentialExists) {
			srv.log(ctx).Warn("Registration rejected, account already exists", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrUserExists, "registration rejected")
		}

		srv.log(ctx).Error("Failed to store credential during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to store credential during registration")
	}

	token, err := srv.tokenService.Issue(cred.AccountID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during registration", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during registration")
	}

	srv.log(ctx).Debug("Registration completed", slog.String("email", input.Email))

	return &usecase.AuthOutput{Token: token, Username: cred.Username}, nil
}

// Login authenticates an account and issues a fresh token. An unknown
// account, a wrong password, and a corrupted stored digest all surface as the
// same ErrInvalidLogin so callers cannot probe which accounts exist.
func (srv *authService) Login(ctx context.Context, input *usecase.LoginInput) (*usecase.AuthOutput, error) {
	if input == nil || input.Email == "" || input.Password == "" {
		return nil, errors.Wrap(domainerrors.ErrMissingFields, "login input incomplete")
	}

	srv.log(ctx).Debug("Starting login", slog.String("email", input.Email))

	cred, err := srv.store.Get(ctx, input.Email)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

			return nil, errors.Wrap(domainerrors.ErrInvalidLogin, "login failed")
		}

		srv.log(ctx).Error("Failed to load credential during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load credential during login")
	}

	// Check runs outside any store lock (bcrypt is CPU-bound).
	if !srv.hasher.Check(input.Password, cred.PasswordHash) {
		srv.log(ctx).Warn("Login failed", slog.String("email", input.Email))

		return nil, errors.Wrap(domainerrors.ErrInvalidLogin, "login failed")
	}

	token, err := srv.tokenService.Issue(cred.AccountID)
	if err != nil {
		srv.log(ctx).Error("Failed to issue token during login", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to issue token during login")
	}

	srv.log(ctx).Debug("Login completed", slog.String("email", input.Email))

	return &usecase.AuthOutput{Token: token, Username: cred.Username}, nil
}

// CheckSession verifies a presented token and confirms the asserted account
// still has a credential record. Token validity itself is stateless; the
// store is consulted only for the account's continued existence.
func (srv *authService) CheckSession(ctx context.Context, token string) (*usecase.SessionOutput, error) {
	if token == "" {
		return nil, errors.Wrap(domainerrors.ErrNoToken, "no token presented")
	}

	claims, err := srv.tokenService.Verify(token)
	if err != nil {
		srv.log(ctx).Warn("Session check failed, token rejected", slog.Any("error", err))

		return nil, errors.Wrap(domainerrors.ErrInvalidToken, "token verification failed")
	}

	cred, err := srv.store.Get(ctx, claims.AccountID)
	if err != nil {
		if errors.Is(err, repository.ErrCredentialNotFound) {
			srv.log(ctx).Warn("Session check failed, account gone", slog.String("email", claims.AccountID))

			return nil, errors.Wrap(domainerrors.ErrInvalidToken, "account no longer exists")
		}

		srv.log(ctx).Error("Failed to load credential during session check", slog.Any("error", err))

		return nil, errors.Wrap(err, "failed to load credential during session check")
	}

	return &usecase.SessionOutput{OK: true, Username: cred.Username}, nil
}
