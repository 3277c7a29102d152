package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// CategoryRepository define el puerto de persistencia para Category (DIP).
// Las lecturas devuelven nil, nil cuando el registro no existe.
// ProductCount y ChildrenCount se calculan en la consulta.
// El orden por name compara bytes (collation "C" en PostgreSQL, BINARY en SQLite).
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	// FindAll incluye Parent, Children y contadores, ordenado por parent_id (raíces primero) y name.
	FindAll(ctx context.Context) ([]*entity.Category, error)
	// FindByID y FindBySlug incluyen Parent, Children y contadores.
	FindByID(ctx context.Context, id string) (*entity.Category, error)
	FindBySlug(ctx context.Context, slug string) (*entity.Category, error)
	// FindChildren devuelve los hijos directos ordenados por name, con contadores.
	FindChildren(ctx context.Context, parentID string) ([]*entity.Category, error)
	Update(ctx context.Context, category *entity.Category) error
	Delete(ctx context.Context, id string) error
}
