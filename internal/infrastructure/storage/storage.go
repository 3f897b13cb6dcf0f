// Package storage elige el backend de snapshots según la configuración.
package storage

import (
	"context"
	"fmt"

	"github.com/jhoicas/pos-supermercado/internal/domain/repository"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/filestore"
	"github.com/jhoicas/pos-supermercado/internal/infrastructure/postgres"
	"github.com/jhoicas/pos-supermercado/pkg/config"
	"github.com/jhoicas/pos-supermercado/pkg/logger"
)

// Open devuelve el SnapshotStore configurado y una función para liberar sus recursos.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (repository.SnapshotStore, func(), error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverFile:
		log.Info().Str("driver", cfg.Storage.Driver).Str("dir", cfg.Storage.Dir).Msg("almacenamiento en archivos")
		return filestore.NewOS(cfg.Storage.Dir), func() {}, nil
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		store := postgres.NewSnapshotStore(pool)
		if err := store.EnsureSchema(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("crear esquema de snapshots: %w", err)
		}
		log.Info().Str("driver", cfg.Storage.Driver).Str("host", cfg.DB.Host).Msg("almacenamiento en PostgreSQL")
		return store, pool.Close, nil
	}
	return nil, nil, fmt.Errorf("STORAGE_DRIVER desconocido: %q", cfg.Storage.Driver)
}
