package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
		SELECT p.id, p.sku, p.name, p.description, p.price, p.stock, p.brand, p.category_id, p.img_url,
			p.created_at, p.updated_at,
			c.id, c.name, c.slug, c.parent_id
		FROM products p
		JOIN categories c ON c.id = p.category_id`

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL (usable con pool o tx).
type ProductRepo struct {
	q Querier
}

// NewProductRepository construye el adaptador de persistencia para productos. Pasar pool o tx (Querier).
func NewProductRepository(q Querier) *ProductRepo {
	return &ProductRepo{q: q}
}

// Create persiste un nuevo producto.
func (r *ProductRepo) Create(ctx context.Context, product *entity.Product) error {
	query := `
		INSERT INTO products (id, sku, name, description, price, stock, brand, category_id, img_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Description, product.Price, product.Stock,
		product.Brand, product.CategoryID, product.ImgURL, product.CreatedAt, product.UpdatedAt,
	)
	if err != nil {
		return translateProductError(err, "insert product")
	}
	return nil
}

// FindAll lista todos los productos con su categoría, en orden de creación.
func (r *ProductRepo) FindAll(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.queryProducts(ctx, productSelect+` ORDER BY p.created_at ASC, p.id ASC`)
	if err != nil {
		return nil, domain.Internal("list products", err)
	}
	return list, nil
}

// FindBySKU obtiene un producto por SKU.
func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	p, err := scanProduct(r.q.QueryRow(ctx, productSelect+` WHERE p.sku = $1`, sku))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Internal("get product by sku", err)
	}
	return p, nil
}

// Update actualiza todos los campos editables del producto, incluido el SKU.
func (r *ProductRepo) Update(ctx context.Context, product *entity.Product) error {
	query := `
		UPDATE products SET sku = $2, name = $3, description = $4, price = $5, stock = $6,
			brand = $7, category_id = $8, img_url = $9, updated_at = $10
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query,
		product.ID, product.SKU, product.Name, product.Description, product.Price, product.Stock,
		product.Brand, product.CategoryID, product.ImgURL, product.UpdatedAt,
	)
	if err != nil {
		return translateProductError(err, "update product")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Product not found")
	}
	return nil
}

// FindByParentCategorySlug productos de las subcategorías directas de la categoría con ese slug.
func (r *ProductRepo) FindByParentCategorySlug(ctx context.Context, parentSlug string) ([]*entity.Product, error) {
	query := productSelect + `
		JOIN categories parent ON parent.id = c.parent_id
		WHERE parent.slug = $1
		ORDER BY c.name COLLATE "C" ASC, p.created_at ASC, p.id ASC`
	list, err := r.queryProducts(ctx, query, parentSlug)
	if err != nil {
		return nil, domain.Internal("list products by parent category", err)
	}
	return list, nil
}

// Delete elimina un producto por SKU.
func (r *ProductRepo) Delete(ctx context.Context, sku string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM products WHERE sku = $1`, sku)
	if err != nil {
		return domain.Internal("delete product", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Product not found")
	}
	return nil
}

func (r *ProductRepo) queryProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*entity.Product, 0)
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func scanProduct(row pgx.Row) (*entity.Product, error) {
	var p entity.Product
	var c entity.Category
	err := row.Scan(
		&p.ID, &p.SKU, &p.Name, &p.Description, &p.Price, &p.Stock, &p.Brand, &p.CategoryID, &p.ImgURL,
		&p.CreatedAt, &p.UpdatedAt,
		&c.ID, &c.Name, &c.Slug, &c.ParentID,
	)
	if err != nil {
		return nil, err
	}
	p.Category = &c
	return &p, nil
}

func translateProductError(err error, op string) error {
	switch {
	case isUniqueViolation(err):
		return domain.Conflict("Product already exists")
	case isForeignKeyViolation(err):
		return domain.BadRequest("Invalid reference to related record")
	default:
		return domain.Internal(op, err)
	}
}
