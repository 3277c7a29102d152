// Package sqlite es el adaptador de persistencia embebido (modernc, sin cgo) usado en
// desarrollo local y en los tests. Implementa los mismos puertos que el adaptador PostgreSQL.
package sqlite

import (
	"context"
	_ "embed"
	"fmt"
	"strings"

	"github.com/jhoicas/catalogo-api/pkg/logger"
	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

//go:embed schema.sql
var schemaSQL string

// Open abre la base SQLite con llaves foráneas activas. dsn puede ser un archivo o ":memory:".
// Se usa una sola conexión: la base en memoria vive en ella y SQLite serializa las escrituras.
func Open(ctx context.Context, dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", withForeignKeys(dsn))
	if err != nil {
		return nil, fmt.Errorf("abrir sqlite: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping sqlite: %w", err)
	}
	logger.FromContext(ctx).Info().Str("dsn", dsn).Msg("base SQLite lista")
	return db, nil
}

// Migrate crea las tablas del catálogo si no existen. Es idempotente.
func Migrate(ctx context.Context, db sqlx.ExecerContext) error {
	if _, err := db.ExecContext(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}
	return nil
}

func withForeignKeys(dsn string) string {
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}
