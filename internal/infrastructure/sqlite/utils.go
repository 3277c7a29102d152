package sqlite

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Las fechas se guardan como TEXT UTC de ancho fijo para que el orden lexicográfico
// coincida con el cronológico.
const timeLayout = "2006-01-02T15:04:05.000000Z"

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parse time %q: %w", s, err)
	}
	return t, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func isUniqueViolation(err error) bool {
	return isConstraint(err, "UNIQUE constraint failed",
		sqlite3.SQLITE_CONSTRAINT_UNIQUE, sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY)
}

// isForeignKeyViolation cubre también ON DELETE RESTRICT, que SQLite reporta como
// SQLITE_CONSTRAINT_TRIGGER con el mensaje de llave foránea.
func isForeignKeyViolation(err error) bool {
	return isConstraint(err, "FOREIGN KEY constraint failed", sqlite3.SQLITE_CONSTRAINT_FOREIGNKEY)
}

// isConstraint compara el código extendido y, para el resto de variantes de
// SQLITE_CONSTRAINT, el texto del mensaje.
func isConstraint(err error, text string, codes ...int) bool {
	var se *sqlite.Error
	if errors.As(err, &se) {
		for _, code := range codes {
			if se.Code() == code {
				return true
			}
		}
		if se.Code()&0xff != sqlite3.SQLITE_CONSTRAINT {
			return false
		}
	}
	return strings.Contains(err.Error(), text)
}

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
