package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain"
)

// ErrorResponse cuerpo de error HTTP. Details solo se envía en errores de validación.
type ErrorResponse struct {
	StatusCode int                 `json:"statusCode"`
	Timestamp  time.Time           `json:"timestamp"`
	Path       string              `json:"path"`
	Method     string              `json:"method"`
	Code       string              `json:"code"`
	Message    string              `json:"message"`
	Details    []domain.FieldError `json:"details,omitempty"`
}

// HealthResponse salida de /health.
type HealthResponse struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
}
