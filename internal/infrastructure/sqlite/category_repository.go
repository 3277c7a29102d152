package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jmoiron/sqlx"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

const categorySelect = `
  SELECT
    c.id, c.name, c.slug, c.parent_id, c.created_at, c.updated_at,
    (SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count,
    (SELECT COUNT(*) FROM categories ch WHERE ch.parent_id = c.id) AS children_count
  FROM categories c`

type categoryRow struct {
	ID            string         `db:"id"`
	Name          string         `db:"name"`
	Slug          string         `db:"slug"`
	ParentID      sql.NullString `db:"parent_id"`
	CreatedAt     string         `db:"created_at"`
	UpdatedAt     string         `db:"updated_at"`
	ProductCount  int            `db:"product_count"`
	ChildrenCount int            `db:"children_count"`
}

func (r categoryRow) toEntity() (*entity.Category, error) {
	created, err := parseTime(r.CreatedAt)
	if err != nil {
		return nil, err
	}
	updated, err := parseTime(r.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &entity.Category{
		ID:            r.ID,
		Name:          r.Name,
		Slug:          r.Slug,
		ParentID:      stringPtr(r.ParentID),
		CreatedAt:     created,
		UpdatedAt:     updated,
		ProductCount:  r.ProductCount,
		ChildrenCount: r.ChildrenCount,
	}, nil
}

// CategoryRepo implementación de CategoryRepository sobre SQLite (sqlx).
type CategoryRepo struct {
	db sqlx.ExtContext
}

// NewCategoryRepository acepta *sqlx.DB o *sqlx.Tx.
func NewCategoryRepository(db sqlx.ExtContext) *CategoryRepo {
	return &CategoryRepo{db: db}
}

func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	_, err := r.db.ExecContext(ctx, `
  INSERT INTO categories (id, name, slug, parent_id, created_at, updated_at)
  VALUES (?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Slug, nullString(c.ParentID), formatTime(c.CreatedAt), formatTime(c.UpdatedAt))
	if err != nil {
		return translateCategoryError(err, c.Slug, "insert category")
	}
	return nil
}

func (r *CategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	list, err := r.selectCategories(ctx, categorySelect+`
  ORDER BY c.parent_id ASC NULLS FIRST, c.name COLLATE BINARY ASC`)
	if err != nil {
		return nil, domain.Internal("list categories", err)
	}
	entity.LinkHierarchy(list)
	return list, nil
}

func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	return r.findOne(ctx, `c.id = ?`, id)
}

func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	return r.findOne(ctx, `c.slug = ?`, slug)
}

func (r *CategoryRepo) FindChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	list, err := r.selectCategories(ctx, categorySelect+`
  WHERE c.parent_id = ?
  ORDER BY c.name COLLATE BINARY ASC`, parentID)
	if err != nil {
		return nil, domain.Internal("list children", err)
	}
	return list, nil
}

func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	res, err := r.db.ExecContext(ctx, `
  UPDATE categories SET name = ?, slug = ?, parent_id = ?, updated_at = ?
  WHERE id = ?`,
		c.Name, c.Slug, nullString(c.ParentID), formatTime(c.UpdatedAt), c.ID)
	if err != nil {
		return translateCategoryError(err, c.Slug, "update category")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Category with id '%s' not found", c.ID)
	}
	return nil
}

func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM categories WHERE id = ?`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.BadRequest("Cannot delete category with associated products or subcategories")
		}
		return domain.Internal("delete category", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFound("Category with id '%s' not found", id)
	}
	return nil
}

// findOne carga la categoría con su padre y sus hijos directos. Las consultas van en
// secuencia: con una sola conexión no se puede abrir otra mientras haya filas abiertas.
func (r *CategoryRepo) findOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	c, err := r.getCategory(ctx, where, arg)
	if err != nil || c == nil {
		return c, err
	}
	if c.ParentID != nil {
		parent, err := r.getCategory(ctx, `c.id = ?`, *c.ParentID)
		if err != nil {
			return nil, fmt.Errorf("get parent category: %w", err)
		}
		c.Parent = parent
	}
	children, err := r.FindChildren(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	c.Children = children
	return c, nil
}

func (r *CategoryRepo) getCategory(ctx context.Context, where string, arg any) (*entity.Category, error) {
	var row categoryRow
	if err := sqlx.GetContext(ctx, r.db, &row, categorySelect+` WHERE `+where, arg); err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, domain.Internal("get category", err)
	}
	return row.toEntity()
}

func (r *CategoryRepo) selectCategories(ctx context.Context, query string, args ...any) ([]*entity.Category, error) {
	var rows []categoryRow
	if err := sqlx.SelectContext(ctx, r.db, &rows, query, args...); err != nil {
		return nil, err
	}
	list := make([]*entity.Category, 0, len(rows))
	for _, row := range rows {
		c, err := row.toEntity()
		if err != nil {
			return nil, err
		}
		list = append(list, c)
	}
	return list, nil
}

func translateCategoryError(err error, slug, op string) error {
	switch {
	case isUniqueViolation(err):
		return domain.Conflict("Category with slug '%s' already exists", slug)
	case isForeignKeyViolation(err):
		return domain.BadRequest("Invalid reference to related record")
	default:
		return domain.Internal(op, err)
	}
}
