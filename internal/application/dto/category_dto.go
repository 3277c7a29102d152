package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/patch"
)

// CreateCategoryRequest entrada para crear una categoría. ParentID nil o ausente => raíz.
type CreateCategoryRequest struct {
	Name     string  `json:"name" validate:"required,min=3,max=120"`
	Slug     string  `json:"slug" validate:"required,min=3,max=120,slug"`
	ParentID *string `json:"parentId" validate:"omitempty,uuid"`
}

// UpdateCategoryRequest entrada para actualización parcial. parentId: null convierte en raíz.
type UpdateCategoryRequest struct {
	Name     patch.Field[string] `json:"name" validate:"omitempty,min=3,max=120" swaggertype:"string"`
	Slug     patch.Field[string] `json:"slug" validate:"omitempty,min=3,max=120,slug" swaggertype:"string"`
	ParentID patch.Field[string] `json:"parentId" validate:"omitempty,uuid" swaggertype:"string"`
}

// CategorySummary proyección reducida de una categoría.
type CategorySummary struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Slug string `json:"slug"`
}

// CategoryResponse salida de una categoría con relaciones y contadores.
type CategoryResponse struct {
	ID            string            `json:"id"`
	Name          string            `json:"name"`
	Slug          string            `json:"slug"`
	ParentID      *string           `json:"parentId"`
	Parent        *CategorySummary  `json:"parent,omitempty"`
	Children      []CategorySummary `json:"children"`
	ProductCount  int               `json:"productCount"`
	ChildrenCount int               `json:"childrenCount"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
