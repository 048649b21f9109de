// Package bootstrap wires configuration into a record store and the services
// that sit on top of it.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/andresuchdata/agarbatti/backend-go/internal/api"
	"github.com/andresuchdata/agarbatti/backend-go/internal/blob"
	"github.com/andresuchdata/agarbatti/backend-go/internal/client"
	"github.com/andresuchdata/agarbatti/backend-go/internal/config"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/local"
	"github.com/andresuchdata/agarbatti/backend-go/internal/repository/sqlstore"
	"github.com/andresuchdata/agarbatti/backend-go/internal/service"
	"github.com/andresuchdata/agarbatti/backend-go/internal/storage"
	"github.com/rs/zerolog/log"
)

// OpenStore opens the backend named by cfg.Store.Backend. The caller owns the
// returned store and must Close it.
func OpenStore(ctx context.Context, cfg *config.Config) (repository.Store, error) {
	switch cfg.Store.Backend {
	case config.BackendSQL:
		db, err := sqlstore.NewDB(&cfg.Database)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(ctx); err != nil {
			db.Close()
			return nil, err
		}
		log.Info().Str("driver", db.Dialect()).Msg("row store ready")
		return sqlstore.New(db), nil

	case config.BackendLocal:
		backend, err := openBackend(cfg)
		if err != nil {
			return nil, err
		}
		store, err := local.Open(ctx, backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		log.Info().Str("driver", cfg.Store.LocalDriver).Msg("blob store ready")
		return store, nil

	case config.BackendRemote:
		if cfg.Store.RemoteURL == "" {
			return nil, fmt.Errorf("remote store needs STORE_REMOTE_URL")
		}
		log.Info().Str("url", cfg.Store.RemoteURL).Msg("remote store ready")
		return client.New(cfg.Store.RemoteURL, cfg.Store.RemoteToken, nil), nil
	}
	return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
}

func openBackend(cfg *config.Config) (blob.Backend, error) {
	switch cfg.Store.LocalDriver {
	case config.LocalDriverFile, "":
		return blob.NewFile(cfg.Store.LocalPath), nil
	case config.LocalDriverRedis:
		return blob.NewRedis(cfg.Cache, cfg.Store.LocalKey)
	case config.LocalDriverMemory:
		return blob.NewMemory(), nil
	}
	return nil, fmt.Errorf("unknown local driver %q", cfg.Store.LocalDriver)
}

// OpenObjects returns nil when object storage is disabled.
func OpenObjects(ctx context.Context, cfg *config.Config) (storage.ObjectStorage, error) {
	if !cfg.Objects.Enabled {
		return nil, nil
	}
	objects, err := storage.NewMinioClient(ctx, cfg.Objects)
	if err != nil {
		return nil, err
	}
	return objects, nil
}

// NewServices builds every service over one store. objects may be nil.
func NewServices(store repository.Store, objects storage.ObjectStorage, cfg *config.Config) *api.Services {
	validate := service.NewValidator(cfg.Locale.PhoneRegion)
	return &api.Services{
		Catalog:   service.NewCatalogService(store, validate),
		Orders:    service.NewOrderService(store, validate),
		Ledger:    service.NewLedgerService(store, validate),
		Insights:  service.NewInsightService(store, cfg.Analytics),
		Snapshots: service.NewSnapshotService(store, objects),
	}
}
