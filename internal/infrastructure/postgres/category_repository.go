package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
)

var _ repository.CategoryRepository = (*CategoryRepo)(nil)

// Columnas de categoría con contadores calculados en la consulta (no se almacenan).
const categorySelect = `
		SELECT c.id, c.name, c.slug, c.parent_id, c.created_at, c.updated_at,
			(SELECT COUNT(*) FROM products p WHERE p.category_id = c.id) AS product_count,
			(SELECT COUNT(*) FROM categories ch WHERE ch.parent_id = c.id) AS children_count
		FROM categories c`

// CategoryRepo implementación del puerto CategoryRepository sobre PostgreSQL (usable con pool o tx).
type CategoryRepo struct {
	q Querier
}

// NewCategoryRepository construye el adaptador de persistencia para categorías.
func NewCategoryRepository(q Querier) *CategoryRepo {
	return &CategoryRepo{q: q}
}

// Create persiste una nueva categoría. El UNIQUE de slug respalda el chequeo del caso de uso.
func (r *CategoryRepo) Create(ctx context.Context, c *entity.Category) error {
	query := `
		INSERT INTO categories (id, name, slug, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Slug, c.ParentID, c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return translateCategoryError(err, c.Slug, "insert category")
	}
	return nil
}

// FindAll lista todas las categorías con padre, hijos y contadores.
// Orden: parent_id ascendente con las raíces primero, luego name.
func (r *CategoryRepo) FindAll(ctx context.Context) ([]*entity.Category, error) {
	list, err := r.queryCategories(ctx, categorySelect+` ORDER BY c.parent_id ASC NULLS FIRST, c.name COLLATE "C" ASC`)
	if err != nil {
		return nil, domain.Internal("list categories", err)
	}
	entity.LinkHierarchy(list)
	return list, nil
}

// FindByID obtiene una categoría con relaciones y contadores; nil si no existe.
func (r *CategoryRepo) FindByID(ctx context.Context, id string) (*entity.Category, error) {
	c, err := r.findOne(ctx, `c.id = $1`, id)
	if err != nil {
		return nil, domain.Internal("get category", err)
	}
	if c == nil {
		return nil, nil
	}
	if err := r.loadRelations(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindBySlug obtiene una categoría por slug con relaciones y contadores; nil si no existe.
func (r *CategoryRepo) FindBySlug(ctx context.Context, slug string) (*entity.Category, error) {
	c, err := r.findOne(ctx, `c.slug = $1`, slug)
	if err != nil {
		return nil, domain.Internal("get category by slug", err)
	}
	if c == nil {
		return nil, nil
	}
	if err := r.loadRelations(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// FindChildren lista los hijos directos ordenados por nombre, con contadores.
func (r *CategoryRepo) FindChildren(ctx context.Context, parentID string) ([]*entity.Category, error) {
	list, err := r.queryCategories(ctx, categorySelect+` WHERE c.parent_id = $1 ORDER BY c.name COLLATE "C" ASC`, parentID)
	if err != nil {
		return nil, domain.Internal("list children", err)
	}
	return list, nil
}

// Update persiste name, slug y parent_id de la categoría.
func (r *CategoryRepo) Update(ctx context.Context, c *entity.Category) error {
	query := `
		UPDATE categories SET name = $2, slug = $3, parent_id = $4, updated_at = $5
		WHERE id = $1`
	cmd, err := r.q.Exec(ctx, query, c.ID, c.Name, c.Slug, c.ParentID, c.UpdatedAt)
	if err != nil {
		return translateCategoryError(err, c.Slug, "update category")
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Category with id '%s' not found", c.ID)
	}
	return nil
}

// Delete elimina una categoría. Las FK con RESTRICT respaldan la regla de no borrar con dependientes.
func (r *CategoryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isForeignKeyViolation(err) {
			return domain.BadRequest("Cannot delete category with associated products or subcategories")
		}
		return domain.Internal("delete category", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.NotFound("Category with id '%s' not found", id)
	}
	return nil
}

func (r *CategoryRepo) findOne(ctx context.Context, where string, arg any) (*entity.Category, error) {
	c, err := scanCategory(r.q.QueryRow(ctx, categorySelect+` WHERE `+where, arg))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *CategoryRepo) loadRelations(ctx context.Context, c *entity.Category) error {
	if c.ParentID != nil {
		parent, err := r.findOne(ctx, `c.id = $1`, *c.ParentID)
		if err != nil {
			return fmt.Errorf("get parent category: %w", err)
		}
		c.Parent = parent
	}
	children, err := r.FindChildren(ctx, c.ID)
	if err != nil {
		return err
	}
	c.Children = children
	return nil
}

func (r *CategoryRepo) queryCategories(ctx context.Context, query string, args ...any) ([]*entity.Category, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	list := make([]*entity.Category, 0)
	for rows.Next() {
		c, err := scanCategory(rows)
		if err != nil {
			return nil, fmt.Errorf("scan category: %w", err)
		}
		list = append(list, c)
	}
	return list, rows.Err()
}

func scanCategory(row pgx.Row) (*entity.Category, error) {
	var c entity.Category
	err := row.Scan(&c.ID, &c.Name, &c.Slug, &c.ParentID, &c.CreatedAt, &c.UpdatedAt,
		&c.ProductCount, &c.ChildrenCount)
	if err != nil {
		return nil, err
	}
	return &c, nil
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
