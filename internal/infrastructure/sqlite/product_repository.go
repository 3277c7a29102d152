package sqlite

import (
	"context"
	"database/sql"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

const productSelect = `
  SELECT
    p.id, p.sku, p.name, p.description, p.price, p.stock, p.brand, p.category_id, p.img_url,
    p.created_at, p.updated_at,
    c.name AS category_name, c.slug AS category_slug, c.parent_id AS category_parent_id
  FROM products p
  JOIN categories c ON c.id = p.category_id`

type productRow struct {
	ID               string         `db:"id"`
	SKU              string         `db:"sku"`
	Name             string         `db:"name"`
	Description      string         `db:"description"`
	Price            int64          `db:"price"`
	Stock            int64          `db:"stock"`
	Brand            sql.NullString `db:"brand"`
	CategoryID       string         `db:"category_id"`
	ImgURL           sql.NullString `db:"img_url"`
	CreatedAt        string         `db:"created_at"`
	UpdatedAt        string         `db:"updated_at"`
	CategoryName     string         `db:"category_name"`
	CategorySlug     string         `db:"category_slug"`
	CategoryParentID sql.NullString `db:"category_parent_id"`
}

func (r productRow) toEntity() (*entity.Product, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          r.ID,
		SKU:         r.SKU,
		Name:        r.Name,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Brand:       stringPtr(r.Brand),
		CategoryID:  r.CategoryID,
		ImgURL:      stringPtr(r.ImgURL),
		CreatedAt:   created,
		UpdatedAt:   updated,
		Category: &entity.Category{
			ID:       r.CategoryID,
			Name:     r.CategoryName,
			Slug:     r.CategorySlug,
			ParentID: stringPtr(r.CategoryParentID),
		},
	}, nil
}

// ProductRepo implementación de ProductRepository sobre SQLite (sqlx).
type ProductRepo struct {
	db sqlx.ExtContext
}

// NewProductRepository acepta *sqlx.DB o *sqlx.Tx.
func NewProductRepository(db sqlx.ExtContext) *ProductRepo {
	return &ProductRepo{db: db}
}

func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	_, err := r.db.ExecContext(ctx, `
  INSERT INTO products (id, sku, name, description, price, stock, brand, category_id, img_url, created_at, updated_at)
  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.SKU, p.Name, p.Description, p.Price, p.Stock, nullString(p.Brand), p.CategoryID,
		nullString(p.ImgURL), formatTime(p.CreatedAt), formatTime(p.UpdatedAt))
	if err != nil {
		return translateProductError(err, "insert product")
	}
	return nil
}

// FindAll en orden de inserción; rowid desempata productos creados en el mismo microsegundo.
func (r *ProductRepo) FindAll(ctx context.Context) ([]*entity.Product, error) {
	list, err := r.selectProducts(ctx, productSelect+`
  ORDER BY p.created_at ASC, p.rowid ASC`)
	if err != nil {
		return nil, domain.Internal("list products", err)
	}
	return list, nil
}

func (r *ProductRepo) FindBySKU(ctx context.Context, sku string) (*entity.Product, error) {
	var row productRow
	if err := sqlx.GetContext(ctx, r.db, &row, productSelect+` WHERE p.sku = ?`, sku); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Internal("get product by sku", err)
	}
	return row.toEntity()
}

func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	res, err := r.db.ExecContext(ctx, `
  UPDATE products SET sku = ?, name = ?, description = ?, price = ?, stock = ?,
    brand = ?, category_id = ?, img_url = ?, updated_at = ?
  WHERE id = ?`,
		p.SKU, p.Name, p.Description, p.Price, p.Stock, nullString(p.Brand), p.CategoryID,
		nullString(p.ImgURL), formatTime(p.UpdatedAt), p.ID)
	if err != nil {
		return translateProductError(err, "update product")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Product not found")
	}
	return nil
}

func (r *ProductRepo) FindByParentCategorySlug(ctx context.Context, parentSlug string) ([]*entity.Product, error) {
	list, err := r.selectProducts(ctx, productSelect+`
  JOIN categories parent ON parent.id = c.parent_id
  WHERE parent.slug = ?
  ORDER BY c.name COLLATE BINARY ASC, p.created_at ASC, p.rowid ASC`, parentSlug)
	if err != nil {
		return nil, domain.Internal("list products by parent category", err)
	}
	return list, nil
}

func (r *ProductRepo) Delete(ctx context.Context, sku string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM products WHERE sku = ?`, sku)
	if err != nil {
		return domain.Internal("delete product", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Product not found")
	}
	return nil
}

func (r *ProductRepo) selectProducts(ctx context.Context, query string, args ...any) ([]*entity.Product, error) {
	var rows []productRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}
	list := make([]*entity.Product, 0, len(rows))
	for _, row := range rows {
		p, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, nil
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
