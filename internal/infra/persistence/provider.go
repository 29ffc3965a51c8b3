// Package persistence selects the user store backing the service.
package persistence

import (
	"log/slog"

	"authapp/config"
	"authapp/internal/domain/repository"
	"authapp/internal/infra/persistence/memory"
	"authapp/internal/infra/persistence/postgres"

	"github.com/pkg/errors"
	"go.uber.org/fx"
)

// Params holds dependencies for the user store, injected by Fx
type Params struct {
	fx.In

	Lc     fx.Lifecycle
	Config *config.Config
	Logger *slog.Logger
}

// NewUserRepository builds the store named by storage.driver.
func NewUserRepository(params Params) (repository.UserRepository, error) {
	switch driver := params.Config.Storage.Driver; driver {
	case config.StorageDriverMemory:
		params.Logger.Warn("Using in-memory user store, accounts are lost on restart")

		return memory.NewUserRepository(), nil

	case config.StorageDriverPostgres:
		db, err := postgres.New(postgres.Params{
			Lifecycle: params.Lc,
			Config:    params.Config,
			Logger:    params.Logger,
		})
		if err != nil {
			return nil, err
		}
		params.Logger.Info("Using PostgreSQL user store",
			slog.String("host", params.Config.Postgres.Host),
			slog.String("database", params.Config.Postgres.Database),
			slog.Int("replicas", len(params.Config.Postgres.Replicas)),
		)

		return postgres.NewUserRepository(db), nil

	default:
		return nil, errors.Errorf("unknown storage driver: %s", driver)
	}
}

// Module provides the persistence FX module
//
//nolint:gochecknoglobals
var Module = fx.Options(
	fx.Provide(NewUserRepository),
)
