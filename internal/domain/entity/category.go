package entity

import (
	"time"

	"github.com/jhoicas/catalogo-api/internal/domain/patch"
)

// Category representa una categoría de productos. La jerarquía es auto-referenciada:
// ParentID nil indica una categoría raíz.
type Category struct {
	ID        string
	Name      string
	Slug      string // único en todo el catálogo
	ParentID  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	// Derivados en lectura (no se almacenan).
	Parent        *Category
	Children      []*Category
	ProductCount  int
	ChildrenCount int
}

// IsRoot indica si la categoría no tiene padre.
func (c *Category) IsRoot() bool { return c.ParentID == nil }

// HasParent indica si la categoría cuelga de parentID.
func (c *Category) HasParent(parentID string) bool {
	return c.ParentID != nil && *c.ParentID == parentID
}

// CategoryPatch actualización parcial de una categoría. Solo se aplican los campos presentes.
type CategoryPatch struct {
	Name     patch.Field[string]
	Slug     patch.Field[string]
	ParentID patch.Field[string] // null => pasa a ser raíz
}

// Apply aplica los campos presentes sobre la categoría.
func (c *Category) Apply(p CategoryPatch, now time.Time) {
	if p.Name.HasValue() {
		c.Name = p.Name.Value
	}
	if p.Slug.HasValue() {
		c.Slug = p.Slug.Value
	}
	if p.ParentID.Set {
		c.ParentID = p.ParentID.Ptr()
	}
	c.UpdatedAt = now
}

// LinkHierarchy completa Parent y Children a partir de la lista completa de categorías.
// Los hijos conservan el orden en que aparecen en list.
func LinkHierarchy(list []*Category) {
	byID := make(map[string]*Category, len(list))
	for _, c := range list {
		byID[c.ID] = c
	}
	for _, c := range list {
		if c.ParentID == nil {
			continue
		}
		if parent, ok := byID[*c.ParentID]; ok {
			c.Parent = parent
			parent.Children = append(parent.Children, c)
		}
	}
}
