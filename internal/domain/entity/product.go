package entity

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/patch"
)

// Product representa un producto del catálogo. SKU es la clave de negocio usada en la API.
// Price va en unidades enteras de moneda (sin decimales).
type Product struct {
	ID          string
	SKU         string
	Name        string
	Description string
	Price       int64
	Stock       int64
	Brand       *string
	CategoryID  string
	ImgURL      *string
	CreatedAt   time.Time
	UpdatedAt   time.Time

	// Category se completa en lecturas que hacen join con categories.
	Category *Category
}

// ProductPatch actualización parcial de un producto.
type ProductPatch struct {
	SKU         patch.Field[string]
	Name        patch.Field[string]
	Description patch.Field[string]
	Price       patch.Field[int64]
	Stock       patch.Field[int64]
	Brand       patch.Field[string]
	CategoryID  patch.Field[string]
	ImgURL      patch.Field[string]
}

// Apply aplica los campos presentes sobre el producto.
func (p *Product) Apply(in ProductPatch, now time.Time) {
	if in.SKU.HasValue() {
		p.SKU = in.SKU.Value
	}
	if in.Name.HasValue() {
		p.Name = in.Name.Value
	}
	if in.Description.HasValue() {
		p.Description = in.Description.Value
	}
	if in.Price.HasValue() {
		p.Price = in.Price.Value
	}
	if in.Stock.HasValue() {
		p.Stock = in.Stock.Value
	}
	if in.Brand.Set {
		p.Brand = in.Brand.Ptr()
	}
	if in.CategoryID.HasValue() {
		p.CategoryID = in.CategoryID.Value
	}
	if in.ImgURL.Set {
		p.ImgURL = in.ImgURL.Ptr()
	}
	p.UpdatedAt = now
}
