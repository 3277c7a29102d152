package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas). Son los "tipos" de error que la capa
// HTTP traduce a códigos de estado; el mensaje visible lo lleva *Error.
var (
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("conflict with current state")
	ErrBadRequest   = errors.New("bad request")
	ErrInvalidInput = errors.New("validation error")
	ErrInternal     = errors.New("internal error")
)

// Error es un error de negocio con un tipo (uno de los sentinels) y un mensaje legible.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" && e.Kind != nil {
		return e.Kind.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Kind }

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound construye un error ErrNotFound con mensaje.
func NotFound(format string, args ...any) error { return newError(ErrNotFound, format, args...) }

// Conflict construye un error ErrConflict con mensaje.
func Conflict(format string, args ...any) error { return newError(ErrConflict, format, args...) }

// BadRequest construye un error ErrBadRequest con mensaje.
func BadRequest(format string, args ...any) error { return newError(ErrBadRequest, format, args...) }

// Internal envuelve un fallo inesperado de infraestructura con la operación que falló.
// El error original sigue en la cadena para el log.
func Internal(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, ErrInternal, err)
}

// FieldError describe un campo inválido: ruta (nombre JSON) y mensaje.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ValidationError agrupa todos los campos inválidos de una entrada.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Path+": "+f.Message)
	}
	return "validation error: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Add agrega un campo inválido.
func (e *ValidationError) Add(path, message string) {
	e.Fields = append(e.Fields, FieldError{Path: path, Message: message})
}

// Has indica si ya hay un error registrado para la ruta.
func (e *ValidationError) Has(path string) bool {
	for _, f := range e.Fields {
		if f.Path == path {
			return true
		}
	}
	return false
}

// OrNil devuelve nil si no hay campos inválidos (evita el nil tipado en interfaces).
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

// Message devuelve el mensaje visible de un error de dominio, o "" si err no lo es.
func Message(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return ""
}
