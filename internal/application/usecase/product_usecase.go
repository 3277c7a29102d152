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

// CategoryFinder lo que el caso de uso de productos necesita de la jerarquía:
// FindOne devuelve ErrNotFound si la categoría no existe.
type CategoryFinder interface {
	FindOne(ctx context.Context, id string) (*dto.CategoryResponse, error)
}

// ProductUseCase casos de uso CRUD para productos. Toda referencia a categoría se valida
// contra la jerarquía antes de escribir.
type ProductUseCase struct {
	repo       repository.ProductRepository
	categories CategoryFinder
	now        func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, categories CategoryFinder) *ProductUseCase {
	return &ProductUseCase{repo: repo, categories: categories, now: now}
}

// Create crea un nuevo producto. Stock inicia en 0 si no viene.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, err := uc.repo.FindBySKU(ctx, in.SKU)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Conflict("Product already exists")
	}
	category, err := uc.categories.FindOne(ctx, in.CategoryID)
	if err != nil {
		return nil, err
	}

	ts := uc.now()
	product := &entity.Product{
		ID:          uuid.New().String(),
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Brand:       in.Brand,
		CategoryID:  in.CategoryID,
		ImgURL:      in.ImgURL,
		CreatedAt:   ts,
		UpdatedAt:   ts,
		Category:    &entity.Category{ID: category.ID, Name: category.Name, Slug: category.Slug},
	}
	if in.Price != nil {
		product.Price = *in.Price
	}
	if in.Stock != nil {
		product.Stock = *in.Stock
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Str("sku", product.SKU).Str("category_id", product.CategoryID).Msg("producto creado")
	return toProductResponse(product), nil
}

// FindAll lista todos los productos con su categoría.
func (uc *ProductUseCase) FindAll(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// FindOne obtiene un producto por SKU.
func (uc *ProductUseCase) FindOne(ctx context.Context, sku string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, sku)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update aplica una actualización parcial. La categoría y el SKU nuevos se validan antes
// de escribir, así un fallo no deja cambios.
func (uc *ProductUseCase) Update(ctx context.Context, sku string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, sku)
	if err != nil {
		return nil, err
	}
	if in.CategoryID.HasValue() {
		if _, err := uc.categories.FindOne(ctx, in.CategoryID.Value); err != nil {
			return nil, err
		}
	}
	if in.SKU.HasValue() && in.SKU.Value != product.SKU {
		taken, err := uc.repo.FindBySKU(ctx, in.SKU.Value)
		if err != nil {
			return nil, err
		}
		if taken != nil {
			return nil, domain.Conflict("Product already exists")
		}
	}

	product.Apply(entity.ProductPatch{
		SKU:         in.SKU,
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Stock:       in.Stock,
		Brand:       in.Brand,
		CategoryID:  in.CategoryID,
		ImgURL:      in.ImgURL,
	}, uc.now())
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	logger.FromContext(ctx).Info().Str("sku", sku).Str("new_sku", product.SKU).Msg("producto actualizado")

	updated, err := uc.get(ctx, product.SKU)
	if err != nil {
		return nil, err
	}
	return toProductResponse(updated), nil
}

// Remove elimina un producto por SKU.
func (uc *ProductUseCase) Remove(ctx context.Context, sku string) error {
	if err := uc.repo.Delete(ctx, sku); err != nil {
		return err
	}
	logger.FromContext(ctx).Info().Str("sku", sku).Msg("producto eliminado")
	return nil
}

// FindByParentCategory productos de las subcategorías de la categoría padre con ese slug,
// más las categorías distintas involucradas en el orden en que aparecen.
func (uc *ProductUseCase) FindByParentCategory(ctx context.Context, parentSlug string) (*dto.ProductsByParentCategoryResponse, error) {
	list, err := uc.repo.FindByParentCategorySlug(ctx, parentSlug)
	if err != nil {
		return nil, err
	}
	out := &dto.ProductsByParentCategoryResponse{
		Products:   make([]dto.ProductSummary, 0, len(list)),
		Categories: make([]dto.CategorySummary, 0),
	}
	seen := make(map[string]bool)
	for _, p := range list {
		out.Products = append(out.Products, dto.ProductSummary{
			ID:          p.ID,
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Stock:       p.Stock,
			ImgURL:      p.ImgURL,
			Brand:       p.Brand,
			CategoryID:  p.CategoryID,
		})
		if p.Category != nil && !seen[p.Category.ID] {
			seen[p.Category.ID] = true
			out.Categories = append(out.Categories, *toCategorySummary(p.Category))
		}
	}
	return out, nil
}

func (uc *ProductUseCase) get(ctx context.Context, sku string) (*entity.Product, error) {
	product, err := uc.repo.FindBySKU(ctx, sku)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.NotFound("Product not found")
	}
	return product, nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:          p.ID,
		SKU:         p.SKU,
		Name:        p.Name,
		Description: p.Description,
		Price:       p.Price,
		Stock:       p.Stock,
		Brand:       p.Brand,
		CategoryID:  p.CategoryID,
		ImgURL:      p.ImgURL,
		Category:    toCategorySummary(p.Category),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}
