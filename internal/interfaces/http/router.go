package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CategoryUC *usecase.CategoryUseCase
	ProductUC  *usecase.ProductUseCase
	Validator  *validation.Validator
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Categories
	categories := api.Group("/categories")
	categoryHandler := NewCategoryHandler(deps.CategoryUC, deps.Validator)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/", categoryHandler.FindAll)
	categories.Get("/slug/:slug", categoryHandler.FindBySlug)
	categories.Get("/:id/children", categoryHandler.FindChildren)
	categories.Get("/:id", categoryHandler.FindOne)
	categories.Patch("/:id", categoryHandler.Update)
	categories.Delete("/:id", categoryHandler.Remove)

	// Products (la clave en la ruta es el SKU)
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.Validator)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.FindAll)
	products.Get("/parent-category/:slug", productHandler.FindByParentCategory)
	products.Get("/:sku", productHandler.FindOne)
	products.Patch("/:sku", productHandler.Update)
	products.Delete("/:sku", productHandler.Remove)
}
