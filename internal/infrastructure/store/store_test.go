package store_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/internal/infrastructure/store"
	"github.com/jhoicas/catalogo-api/pkg/config"
)

func TestOpen_SQLiteEnMemoria(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: config.StoreSQLite, SQLiteDSN: ":memory:", AutoMigrate: true}}

	s, err := store.Open(context.Background(), cfg)
	require.NoError(t, err)
	defer s.Close()

	all, err := s.Categories.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := &config.Config{Store: config.StoreConfig{Driver: "mongo"}}
	_, err := store.Open(context.Background(), cfg)
	assert.Error(t, err)
}
