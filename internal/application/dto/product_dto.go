package dto

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/patch"
)

// CreateProductRequest entrada para crear un producto. Stock por defecto 0.
type CreateProductRequest struct {
	SKU         string  `json:"sku" validate:"required,min=1,max=120"`
	Name        string  `json:"name" validate:"required,min=3,max=120"`
	Description string  `json:"description" validate:"required,min=3"`
	Price       *int64  `json:"price" validate:"required,gt=0"`
	Stock       *int64  `json:"stock" validate:"omitempty,gte=0"`
	Brand       *string `json:"brand" validate:"omitempty,max=120"`
	CategoryID  string  `json:"categoryId" validate:"required,uuid"`
	ImgURL      *string `json:"imgUrl" validate:"omitempty,url"`
}

// UpdateProductRequest entrada para actualización parcial (brand e imgUrl aceptan null).
type UpdateProductRequest struct {
	SKU         patch.Field[string] `json:"sku" validate:"omitempty,min=1,max=120" swaggertype:"string"`
	Name        patch.Field[string] `json:"name" validate:"omitempty,min=3,max=120" swaggertype:"string"`
	Description patch.Field[string] `json:"description" validate:"omitempty,min=3" swaggertype:"string"`
	Price       patch.Field[int64]  `json:"price" validate:"omitempty,gt=0" swaggertype:"integer"`
	Stock       patch.Field[int64]  `json:"stock" validate:"omitempty,gte=0" swaggertype:"integer"`
	Brand       patch.Field[string] `json:"brand" validate:"omitempty,max=120" swaggertype:"string"`
	CategoryID  patch.Field[string] `json:"categoryId" validate:"omitempty,uuid" swaggertype:"string"`
	ImgURL      patch.Field[string] `json:"imgUrl" validate:"omitempty,url" swaggertype:"string"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string           `json:"id"`
	SKU         string           `json:"sku"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Price       int64            `json:"price"`
	Stock       int64            `json:"stock"`
	Brand       *string          `json:"brand"`
	CategoryID  string           `json:"categoryId"`
	ImgURL      *string          `json:"imgUrl"`
	Category    *CategorySummary `json:"category,omitempty"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// ProductSummary proyección simplificada usada en el listado por categoría padre.
type ProductSummary struct {
	ID          string  `json:"id"`
	SKU         string  `json:"sku"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       int64   `json:"price"`
	Stock       int64   `json:"stock"`
	ImgURL      *string `json:"imgUrl"`
	Brand       *string `json:"brand"`
	CategoryID  string  `json:"categoryId"`
}

// ProductsByParentCategoryResponse productos bajo una categoría padre y las categorías involucradas.
type ProductsByParentCategoryResponse struct {
	Products   []ProductSummary  `json:"products"`
	Categories []CategorySummary `json:"categories"`
}
