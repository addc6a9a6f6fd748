package main

import (
	"context"
	"log/slog"
	"os"

	"passport/config"
	"passport/internal/delivery"
	"passport/internal/delivery/http"
	"passport/internal/delivery/http/middleware"
	"passport/internal/delivery/http/router/handler"
	"passport/internal/domain/repository"
	"passport/internal/infra/auth"
	logs "passport/internal/infra/log"
	filestore "passport/internal/infra/persistence/file"
	pgstore "passport/internal/infra/persistence/postgres"
	"passport/internal/usecase/impl"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

type startServerParams struct {
	fx.In
	fx.Lifecycle

	Deliveries []delivery.Delivery `group:"deliveries"`
}

func main() {
	fx.New(
		injectInfra(),
		injectRepo(),
		injectService(),
		injectUsecase(),
		injectDelivery(),
		injectMiddleware(),
		injectHandler(),
		fx.Invoke(
			startServer,
		),
	).Run()
}

func injectInfra() fx.Option {
	return fx.Provide(
		config.New,
		logs.New,
		context.Background,
	)
}

func injectRepo() fx.Option {
	return fx.Provide(
		newCredentialStore,
	)
}

// newCredentialStore selects the store driver. The protocol logic only sees
// the repository.CredentialStore interface, so swapping the file store for a
// transactional database is a configuration change.
func newCredentialStore(cfg *config.Config, logger *slog.Logger) (repository.CredentialStore, error) {
	switch cfg.Store.Driver {
	case "file":
		logger.Info("Using file credential store", slog.String("path", cfg.Store.Path))

		return filestore.NewCredentialStore(cfg.Store.Path), nil
	case "postgres":
		db, err := pgstore.New(cfg)
		if err != nil {
			return nil, errors.Wrap(err, "failed to initialize postgres store")
		}

		return pgstore.NewCredentialStore(db), nil
	default:
		return nil, errors.Errorf("unknown store driver: %s", cfg.Store.Driver)
	}
}

func injectService() fx.Option {
	return fx.Provide(
		auth.NewBcryptHasher,
		auth.NewJWTService,
	)
}

func injectUsecase() fx.Option {
	return fx.Provide(
		impl.NewAuthService,
	)
}

func injectMiddleware() fx.Option {
	return fx.Provide(
		middleware.NewAuthMiddleware,
		middleware.NewErrorMiddleware,
	)
}

func injectHandler() fx.Option {
	return fx.Provide(
		handler.NewAuthHandler,
	)
}

func injectDelivery() fx.Option {
	return fx.Provide(
		fx.Annotate(
			http.NewServer,
			fx.ResultTags(`group:"deliveries"`),
		),
	)
}

func startServer(ctx context.Context, params startServerParams) {
	for _, delivery := range params.Deliveries {
		go func() {
			if err := delivery.Serve(ctx); err != nil {
				slog.Error("Failed to start server", slog.Any("error", err))
				os.Exit(1)
			}
		}()
	}
}
