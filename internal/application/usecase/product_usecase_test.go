package usecase_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/internal/domain/patch"
)

func TestProductUseCase_EscenarioSKU(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, usecase.CategoryOptions{})

	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Pizzas", Slug: "pizzas"})
	require.NoError(t, err)

	in := dto.CreateProductRequest{SKU: "SKU-1", Name: "X", Description: "desc", Price: int64Ptr(1000), CategoryID: cat.ID}
	p, err := f.products.Create(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, int64(0), p.Stock, "stock por defecto")
	require.NotNil(t, p.Category)
	assert.Equal(t, "pizzas", p.Category.Slug)

	_, err = f.products.Create(ctx, in)
	assert.ErrorIs(t, err, domain.ErrConflict)
	assert.Equal(t, "Product already exists", domain.Message(err))

	missing := uuid.New().String()
	_, err = f.products.Update(ctx, "SKU-1", dto.UpdateProductRequest{CategoryID: patch.Of(missing)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Category with id '"+missing+"' not found", domain.Message(err))

	got, err := f.products.FindOne(ctx, "SKU-1")
	require.NoError(t, err)
	assert.Equal(t, cat.ID, got.CategoryID, "un update rechazado no escribe nada")
}

func TestProductUseCase_CreateConCategoriaInexistente(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, usecase.CategoryOptions{})

	_, err := f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "SKU-9", Name: "Huérfano", Description: "sin categoría", Price: int64Ptr(10), CategoryID: uuid.New().String(),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	all, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestProductUseCase_UpdateParcial(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, usecase.CategoryOptions{})

	a, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Vinos", Slug: "vinos"})
	require.NoError(t, err)
	b, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Cervezas", Slug: "cervezas"})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "VN-1", Name: "Carmenere", Description: "reserva", Price: int64Ptr(9900), Stock: int64Ptr(4),
		Brand: strPtr("Viña"), CategoryID: a.ID, ImgURL: strPtr("https://img.example.com/vn-1.png"),
	})
	require.NoError(t, err)
	_, err = f.products.Create(ctx, dto.CreateProductRequest{
		SKU: "CV-1", Name: "Lager", Description: "nacional", Price: int64Ptr(2500), CategoryID: b.ID,
	})
	require.NoError(t, err)

	updated, err := f.products.Update(ctx, "VN-1", dto.UpdateProductRequest{Price: patch.Of[int64](10900)})
	require.NoError(t, err)
	assert.Equal(t, int64(10900), updated.Price)
	assert.Equal(t, "Carmenere", updated.Name)
	assert.Equal(t, int64(4), updated.Stock)
	require.NotNil(t, updated.Brand)
	assert.Equal(t, "Viña", *updated.Brand)

	updated, err = f.products.Update(ctx, "VN-1", dto.UpdateProductRequest{Brand: patch.Null[string](), CategoryID: patch.Of(b.ID)})
	require.NoError(t, err)
	assert.Nil(t, updated.Brand, "null limpia un campo opcional")
	require.NotNil(t, updated.ImgURL)
	assert.Equal(t, b.ID, updated.CategoryID)
	assert.Equal(t, "cervezas", updated.Category.Slug)

	_, err = f.products.Update(ctx, "VN-1", dto.UpdateProductRequest{SKU: patch.Of("CV-1")})
	assert.ErrorIs(t, err, domain.ErrConflict)

	renamed, err := f.products.Update(ctx, "VN-1", dto.UpdateProductRequest{SKU: patch.Of("VN-2")})
	require.NoError(t, err)
	assert.Equal(t, "VN-2", renamed.SKU)
	_, err = f.products.FindOne(ctx, "VN-1")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = f.products.Update(ctx, "NO-EXISTE", dto.UpdateProductRequest{Name: patch.Of("Nada")})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProductUseCase_RemoveYFindAll(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, usecase.CategoryOptions{})

	cat, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Snack", Slug: "snack"})
	require.NoError(t, err)
	for _, sku := range []string{"SN-1", "SN-2", "SN-3"} {
		_, err := f.products.Create(ctx, dto.CreateProductRequest{
			SKU: sku, Name: "Papas " + sku, Description: "fritas", Price: int64Ptr(1500), CategoryID: cat.ID,
		})
		require.NoError(t, err)
	}

	all, err := f.products.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"SN-1", "SN-2", "SN-3"}, []string{all[0].SKU, all[1].SKU, all[2].SKU})

	require.NoError(t, f.products.Remove(ctx, "SN-2"))
	err = f.products.Remove(ctx, "SN-2")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Equal(t, "Product not found", domain.Message(err))
}

func TestProductUseCase_FindByParentCategory(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, usecase.CategoryOptions{})

	root, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Resto-Bar", Slug: "resto-bar"})
	require.NoError(t, err)
	vinos, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Vinos", Slug: "vinos", ParentID: &root.ID})
	require.NoError(t, err)
	cervezas, err := f.categories.Create(ctx, dto.CreateCategoryRequest{Name: "Cervezas", Slug: "cervezas", ParentID: &root.ID})
	require.NoError(t, err)

	create := func(sku, categoryID string) {
		_, err := f.products.Create(ctx, dto.CreateProductRequest{
			SKU: sku, Name: "Producto " + sku, Description: "bebida", Price: int64Ptr(3000), CategoryID: categoryID,
		})
		require.NoError(t, err)
	}
	create("V-1", vinos.ID)
	create("V-2", vinos.ID)
	create("C-1", cervezas.ID)
	create("R-1", root.ID)

	out, err := f.products.FindByParentCategory(ctx, "resto-bar")
	require.NoError(t, err)
	assert.Len(t, out.Products, 3, "solo productos de subcategorías")
	require.Len(t, out.Categories, 2, "categorías sin repetir")
	slugs := []string{out.Categories[0].Slug, out.Categories[1].Slug}
	assert.ElementsMatch(t, []string{"vinos", "cervezas"}, slugs)
	for _, p := range out.Products {
		assert.NotEqual(t, root.ID, p.CategoryID)
	}

	empty, err := f.products.FindByParentCategory(ctx, "no-existe")
	require.NoError(t, err)
	assert.Empty(t, empty.Products)
	assert.Empty(t, empty.Categories)
}
