package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/domain/repository"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// CategoryOptions reglas opcionales de la jerarquía.
type CategoryOptions struct {
	// StrictCycleCheck recorre toda la cadena de ancestros del nuevo padre. En false solo
	// se rechaza el caso en que el nuevo padre es hijo directo de la categoría.
	StrictCycleCheck bool
}

// CategoryUseCase casos de uso de la jerarquía de categorías: slug único, padre existente
// y enlaces sin ciclos.
type CategoryUseCase struct {
	repo repository.CategoryRepository
	opts CategoryOptions
	now  func() time.Time
}

// NewCategoryUseCase construye el caso de uso.
func NewCategoryUseCase(repo repository.CategoryRepository, opts CategoryOptions) *CategoryUseCase {
	return &CategoryUseCase{repo: repo, opts: opts, now: now}
}

func now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

// Create crea una categoría raíz o hija. Los contadores de la nueva categoría son 0.
func (uc *CategoryUseCase) Create(ctx context.Context, in dto.CreateCategoryRequest) (*dto.CategoryResponse, error) {
	existing, err := uc.repo.FindBySlug(ctx, in.Slug)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Category with slug '%s' already exists", in.Slug)
	}

	var parent *entity.Category
	if in.ParentID != nil {
		parent, err = uc.repo.FindByID(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		if parent == nil {
			return nil, domain.NotFound("Parent category with id '%s' not found", *in.ParentID)
		}
	}

	ts := uc.now()
	category := &entity.Category{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Slug:      in.Slug,
		ParentID:  in.ParentID,
		CreatedAt: ts,
		UpdatedAt: ts,
		Parent:    parent,
	}
	if err := uc.repo.Create(ctx, category); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Str("category_id", category.ID).Str("slug", category.Slug).Msg("categoría creada")
	return toCategoryResponse(category), nil
}

// FindAll lista todas las categorías: raíces primero y luego por nombre.
func (uc *CategoryUseCase) FindAll(ctx context.Context) ([]dto.CategoryResponse, error) {
	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

// FindOne obtiene una categoría por ID con padre, hijos y contadores.
func (uc *CategoryUseCase) FindOne(ctx context.Context, id string) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(category), nil
}

// FindBySlug obtiene una categoría por slug.
func (uc *CategoryUseCase) FindBySlug(ctx context.Context, slug string) (*dto.CategoryResponse, error) {
	category, err := uc.repo.FindBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("Category with slug '%s' not found", slug)
	}
	return toCategoryResponse(category), nil
}

// FindChildren lista los hijos directos de parentID ordenados por nombre.
func (uc *CategoryUseCase) FindChildren(ctx context.Context, parentID string) ([]dto.CategoryResponse, error) {
	if _, err := uc.get(ctx, parentID); err != nil {
		return nil, err
	}
	list, err := uc.repo.FindChildren(ctx, parentID)
	if err != nil {
		return nil, err
	}
	return toCategoryResponses(list), nil
}

// Update aplica una actualización parcial. parentId presente (incluido null) revalida la jerarquía.
func (uc *CategoryUseCase) Update(ctx context.Context, id string, in dto.UpdateCategoryRequest) (*dto.CategoryResponse, error) {
	category, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Slug.HasValue() && in.Slug.Value != category.Slug {
		existing, err := uc.repo.FindBySlug(ctx, in.Slug.Value)
		if err != nil {
			return nil, err
		}
		if existing != nil {
			return nil, domain.Conflict("Category with slug '%s' already exists", in.Slug.Value)
		}
	}
	if in.ParentID.HasValue() {
		if err := uc.checkParent(ctx, id, in.ParentID.Value); err != nil {
			return nil, err
		}
	}

	category.Apply(entity.CategoryPatch{Name: in.Name, Slug: in.Slug, ParentID: in.ParentID}, uc.now())
	if err := uc.repo.Update(ctx, category); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Str("category_id", id).Msg("categoría actualizada")

	updated, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCategoryResponse(updated), nil
}

// checkParent valida que parentID pueda ser padre de id.
func (uc *CategoryUseCase) checkParent(ctx context.Context, id, parentID string) error {
	if parentID == id {
		return domain.BadRequest("A category cannot be its own parent")
	}
	parent, err := uc.repo.FindByID(ctx, parentID)
	if err != nil {
		return err
	}
	if parent == nil {
		return domain.NotFound("Parent category with id '%s' not found", parentID)
	}
	if parent.HasParent(id) {
		return domain.BadRequest("Cannot set a child category as parent (circular reference)")
	}
	if !uc.opts.StrictCycleCheck {
		return nil
	}

	seen := map[string]bool{parent.ID: true}
	for cur := parent; cur.ParentID != nil; {
		ancestorID := *cur.ParentID
		if ancestorID == id {
			return domain.BadRequest("Cannot set a descendant category as parent (circular reference)")
		}
		if seen[ancestorID] {
			// Ciclo previo en los datos que no involucra a id.
			return nil
		}
		seen[ancestorID] = true
		next, err := uc.repo.FindByID(ctx, ancestorID)
		if err != nil {
			return err
		}
		if next == nil {
			return nil
		}
		cur = next
	}
	return nil
}

// Remove elimina una categoría sin productos ni subcategorías.
func (uc *CategoryUseCase) Remove(ctx context.Context, id string) error {
	category, err := uc.get(ctx, id)
	if err != nil {
		return err
	}
	if category.ProductCount > 0 {
		return domain.BadRequest("Cannot delete category with %d associated products", category.ProductCount)
	}
	if category.ChildrenCount > 0 {
		return domain.BadRequest("Cannot delete category with %d subcategories", category.ChildrenCount)
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("category_id", id).Msg("categoría eliminada")
	return nil
}

func (uc *CategoryUseCase) get(ctx context.Context, id string) (*entity.Category, error) {
	category, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if category == nil {
		return nil, domain.NotFound("Category with id '%s' not found", id)
	}
	return category, nil
}

func toCategorySummary(c *entity.Category) *dto.CategorySummary {
	if c == nil {
		return nil
	}
	return &dto.CategorySummary{ID: c.ID, Name: c.Name, Slug: c.Slug}
}

func toCategoryResponse(c *entity.Category) *dto.CategoryResponse {
	if c == nil {
		return nil
	}
	children := make([]dto.CategorySummary, 0, len(c.Children))
	for _, ch := range c.Children {
		children = append(children, *toCategorySummary(ch))
	}
	return &dto.CategoryResponse{
		ID:            c.ID,
		Name:          c.Name,
		Slug:          c.Slug,
		ParentID:      c.ParentID,
		Parent:        toCategorySummary(c.Parent),
		Children:      children,
		ProductCount:  c.ProductCount,
		ChildrenCount: c.ChildrenCount,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

func toCategoryResponses(list []*entity.Category) []dto.CategoryResponse {
	items := make([]dto.CategoryResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCategoryResponse(c))
	}
	return items
}
