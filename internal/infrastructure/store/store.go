// Package store abre el adaptador de persistencia configurado (PostgreSQL o SQLite)
// y expone los repositorios del catálogo.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/sqlite"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

// Store repositorios listos para inyectar en los casos de uso.
type Store struct {
	Categories repository.CategoryRepository
	Products   repository.ProductRepository
	close      func()
}

// Close libera la conexión o el pool subyacente.
func (s *Store) Close() {
	if s.close != nil {
		s.close()
	}
}

// Open abre el driver de STORE_DRIVER y aplica el esquema si DB_AUTO_MIGRATE.
func Open(ctx context.Context, cfg *config.Config) (*Store, error) {
	switch cfg.Store.Driver {
	case config.StoreSQLite:
		db, err := sqlite.Open(ctx, cfg.Store.SQLiteDSN)
		if err != nil {
			return nil, err
		}
		if cfg.Store.AutoMigrate {
			if err := sqlite.Migrate(ctx, db); err != nil {
				_ = db.Close()
				return nil, err
			}
		}
		return &Store{
			Categories: sqlite.NewCategoryRepository(db),
			Products:   sqlite.NewProductRepository(db),
			close:      func() { _ = db.Close() },
		}, nil
	case config.StorePostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, err
		}
		if cfg.Store.AutoMigrate {
			if err := postgres.Migrate(ctx, pool); err != nil {
				pool.Close()
				return nil, err
			}
		}
		return &Store{
			Categories: postgres.NewCategoryRepository(pool),
			Products:   postgres.NewProductRepository(pool),
			close:      pool.Close,
		}, nil
	default:
		return nil, fmt.Errorf("driver de almacenamiento no soportado: %s", cfg.Store.Driver)
	}
}
