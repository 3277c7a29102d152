// Package patch modela campos de actualización parcial con tres estados:
// ausente, presente con null y presente con valor.
package patch

import (
	"bytes"
	"encoding/json"
)

// Field es un campo opcional de un PATCH. El valor cero es "ausente".
type Field[T any] struct {
	Set   bool // el campo vino en el cuerpo
	Null  bool // vino explícitamente como null
	Value T
}

// Of crea un campo presente con valor.
func Of[T any](v T) Field[T] { return Field[T]{Set: true, Value: v} }

// Null crea un campo presente con null.
func Null[T any]() Field[T] { return Field[T]{Set: true, Null: true} }

// HasValue indica que el campo vino con un valor no nulo.
func (f Field[T]) HasValue() bool { return f.Set && !f.Null }

// Ptr devuelve nil si el campo es null, o un puntero al valor. Solo tiene sentido con Set.
func (f Field[T]) Ptr() *T {
	if !f.HasValue() {
		return nil
	}
	v := f.Value
	return &v
}

// UnmarshalJSON se invoca solo cuando la clave existe en el objeto, incluido null.
func (f *Field[T]) UnmarshalJSON(data []byte) error {
	f.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		f.Null = true
		var zero T
		f.Value = zero
		return nil
	}
	f.Null = false
	return json.Unmarshal(data, &f.Value)
}

// MarshalJSON serializa null o el valor. Los campos ausentes deben omitirse en el llamador.
func (f Field[T]) MarshalJSON() ([]byte, error) {
	if !f.HasValue() {
		return []byte("null"), nil
	}
	return json.Marshal(f.Value)
}
