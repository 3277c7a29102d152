package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/catalogo-api/pkg/config"
)

func TestLoad_ValoresPorDefecto(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 3333, cfg.HTTP.Port)
	assert.Equal(t, config.StorePostgres, cfg.Store.Driver)
	assert.True(t, cfg.Validation.StripUnknown, "por defecto se ignoran campos desconocidos")
	assert.False(t, cfg.Catalog.StrictCycleCheck, "por defecto solo el chequeo de un nivel")
	assert.Equal(t, "0.0.0.0:3333", cfg.HTTP.Addr())
}

func TestLoad_EnvSobrescribe(t *testing.T) {
	t.Setenv("APP_ENV", "production")
	t.Setenv("HTTP_PORT", "8081")
	t.Setenv("STORE_DRIVER", "SQLite")
	t.Setenv("SQLITE_DSN", "file::memory:")
	t.Setenv("VALIDATION_STRIP_UNKNOWN", "false")
	t.Setenv("CATEGORY_STRICT_CYCLE_CHECK", "true")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, 8081, cfg.HTTP.Port)
	assert.Equal(t, config.StoreSQLite, cfg.Store.Driver)
	assert.Equal(t, "file::memory:", cfg.Store.SQLiteDSN)
	assert.False(t, cfg.Validation.StripUnknown)
	assert.True(t, cfg.Catalog.StrictCycleCheck)
}

func TestLoad_ReportaTodasLasVariablesInvalidas(t *testing.T) {
	t.Setenv("APP_ENV", "staging")
	t.Setenv("HTTP_PORT", "70000")
	t.Setenv("STORE_DRIVER", "mongo")

	_, err := config.Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "APP_ENV")
	assert.Contains(t, err.Error(), "HTTP_PORT")
	assert.Contains(t, err.Error(), "STORE_DRIVER")
}

func TestDBConfig_DSNEscapaPassword(t *testing.T) {
	c := config.DBConfig{Host: "db", Port: 5432, User: "app", Password: "p@ss:word", DBName: "catalogo", SSLMode: "disable"}
	assert.Equal(t, "postgres://app:p%40ss%3Aword@db:5432/catalogo?sslmode=disable", c.DSN())
	assert.Equal(t, c.DSN(), c.ConnectionString())

	c.DatabaseURL = "postgres://otro@host/db"
	assert.Equal(t, "postgres://otro@host/db", c.ConnectionString())
}
