package main

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/store"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

func TestSeed_Idempotente(t *testing.T) {
	ctx := context.Background()
	st, err := store.Open(ctx, &config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLiteDSN: ":memory:", AutoMigrate: true}})
	require.NoError(t, err)
	defer st.Close()

	uc := usecase.NewCategoryUseCase(st.Categories, usecase.CategoryOptions{})
	v := validation.New(validation.Options{})

	created, err := seed(ctx, uc, v, catalog)
	require.NoError(t, err)
	assert.Equal(t, 26, created)

	again, err := seed(ctx, uc, v, catalog)
	require.NoError(t, err)
	assert.Zero(t, again, "la segunda corrida no crea nada")

	restoBar, err := uc.FindBySlug(ctx, "resto-bar")
	require.NoError(t, err)
	assert.Equal(t, 14, restoBar.ChildrenCount)

	lenceria, err := uc.FindBySlug(ctx, "lenceria-femenina")
	require.NoError(t, err)
	require.NotNil(t, lenceria.Parent)
	assert.Equal(t, "sex-shop", lenceria.Parent.Slug)
}
