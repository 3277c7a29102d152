package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/sqlite"
)

type fixture struct {
	categories *usecase.CategoryUseCase
	products   *usecase.ProductUseCase
}

// newFixture arma los casos de uso sobre una base SQLite en memoria.
func newFixture(t *testing.T, opts usecase.CategoryOptions) fixture {
	t.Helper()
	ctx := context.Background()
	db, err := sqlite.Open(ctx, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, sqlite.Migrate(ctx, db))

	categories := usecase.NewCategoryUseCase(sqlite.NewCategoryRepository(db), opts)
	products := usecase.NewProductUseCase(sqlite.NewProductRepository(db), categories)
	return fixture{categories: categories, products: products}
}

func strPtr(s string) *string { return &s }

func int64Ptr(n int64) *int64 { return &n }
