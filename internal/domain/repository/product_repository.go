package repository

import (
	"context"

	"github.com/jhoicas/catalogo-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	// FindAll devuelve los productos con su categoría, en orden de creación.
	FindAll(ctx context.Context) ([]*entity.Product, error)
	// FindBySKU devuelve nil, nil si no existe.
	FindBySKU(ctx context.Context, sku string) (*entity.Product, error)
	// Update persiste el producto por ID (el SKU puede cambiar).
	Update(ctx context.Context, product *entity.Product) error
	// FindByParentCategorySlug devuelve los productos cuya categoría cuelga de la categoría
	// padre con ese slug. Category viene completada (id, name, slug, parent_id).
	FindByParentCategorySlug(ctx context.Context, parentSlug string) ([]*entity.Product, error)
	Delete(ctx context.Context, sku string) error
}
