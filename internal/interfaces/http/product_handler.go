package http

import (
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
)

// ProductHandler maneja las peticiones HTTP para Product. Los productos se direccionan por SKU.
type ProductHandler struct {
	uc *usecase.ProductUseCase
	v  *validation.Validator
}

// NewProductHandler construye el handler.
func NewProductHandler(uc *usecase.ProductUseCase, v *validation.Validator) *ProductHandler {
	return &ProductHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear producto
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateProductRequest  true  "Datos del producto"
// @Success      201   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := h.v.Decode(c.Body(), &in); err != nil {
		return err
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// FindAll godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Success      200  {array}  dto.ProductResponse
// @Router       /api/products [get]
func (h *ProductHandler) FindAll(c *fiber.Ctx) error {
	out, err := h.uc.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FindOne godoc
// @Summary      Obtener producto por SKU
// @Tags         products
// @Produce      json
// @Param        sku  path      string  true  "SKU del producto"
// @Success      200  {object}  dto.ProductResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [get]
func (h *ProductHandler) FindOne(c *fiber.Ctx) error {
	sku, err := h.sku(c)
	if err != nil {
		return err
	}
	out, err := h.uc.FindOne(c.UserContext(), sku)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar producto
// @Description  Actualización parcial. brand e imgUrl aceptan null.
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        sku   path      string                    true  "SKU del producto"
// @Param        body  body      dto.UpdateProductRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.ProductResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [patch]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	sku, err := h.sku(c)
	if err != nil {
		return err
	}
	var in dto.UpdateProductRequest
	if err := h.v.Decode(c.Body(), &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), sku, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar producto
// @Tags         products
// @Param        sku  path  string  true  "SKU del producto"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/products/{sku} [delete]
func (h *ProductHandler) Remove(c *fiber.Ctx) error {
	sku, err := h.sku(c)
	if err != nil {
		return err
	}
	if err := h.uc.Remove(c.UserContext(), sku); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// FindByParentCategory godoc
// @Summary      Productos por categoría padre
// @Description  Productos de las subcategorías de la categoría con ese slug, con las categorías involucradas.
// @Tags         products
// @Produce      json
// @Param        slug  path      string  true  "Slug de la categoría padre"
// @Success      200   {object}  dto.ProductsByParentCategoryResponse
// @Router       /api/products/parent-category/{slug} [get]
func (h *ProductHandler) FindByParentCategory(c *fiber.Ctx) error {
	slug, err := url.PathUnescape(c.Params("slug"))
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid slug escape in path")
	}
	out, err := h.uc.FindByParentCategory(c.UserContext(), slug)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// sku devuelve el SKU de la ruta ya decodificado ("SKU%201" => "SKU 1").
func (h *ProductHandler) sku(c *fiber.Ctx) (string, error) {
	sku, err := url.PathUnescape(c.Params("sku"))
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid SKU escape in path")
	}
	return sku, nil
}
