package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/application/usecase"
	"github.com/jhoicas/catalogo-api/internal/application/validation"
)

// CategoryHandler maneja las peticiones HTTP para Category.
type CategoryHandler struct {
	uc *usecase.CategoryUseCase
	v  *validation.Validator
}

// NewCategoryHandler construye el handler.
func NewCategoryHandler(uc *usecase.CategoryUseCase, v *validation.Validator) *CategoryHandler {
	return &CategoryHandler{uc: uc, v: v}
}

// Create godoc
// @Summary      Crear categoría
// @Description  Crea una categoría raíz (sin parentId) o hija de una existente.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body      dto.CreateCategoryRequest  true  "Datos de la categoría"
// @Success      201   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
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
// @Summary      Listar categorías
// @Description  Raíces primero y luego por nombre, con padre, hijos y contadores.
// @Tags         categories
// @Produce      json
// @Success      200  {array}   dto.CategoryResponse
// @Router       /api/categories [get]
func (h *CategoryHandler) FindAll(c *fiber.Ctx) error {
	out, err := h.uc.FindAll(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FindOne godoc
// @Summary      Obtener categoría por ID
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría (UUID)"
// @Success      200  {object}  dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) FindOne(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.v.UUID("id", id); err != nil {
		return err
	}
	out, err := h.uc.FindOne(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FindBySlug godoc
// @Summary      Obtener categoría por slug
// @Tags         categories
// @Produce      json
// @Param        slug  path      string  true  "Slug de la categoría"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/categories/slug/{slug} [get]
func (h *CategoryHandler) FindBySlug(c *fiber.Ctx) error {
	out, err := h.uc.FindBySlug(c.UserContext(), c.Params("slug"))
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// FindChildren godoc
// @Summary      Listar subcategorías
// @Description  Hijos directos ordenados por nombre.
// @Tags         categories
// @Produce      json
// @Param        id   path      string  true  "ID de la categoría padre (UUID)"
// @Success      200  {array}   dto.CategoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id}/children [get]
func (h *CategoryHandler) FindChildren(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.v.UUID("id", id); err != nil {
		return err
	}
	out, err := h.uc.FindChildren(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar categoría
// @Description  Actualización parcial. parentId: null convierte la categoría en raíz.
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path      string                     true  "ID de la categoría (UUID)"
// @Param        body  body      dto.UpdateCategoryRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.CategoryResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [patch]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.v.UUID("id", id); err != nil {
		return err
	}
	var in dto.UpdateCategoryRequest
	if err := h.v.Decode(c.Body(), &in); err != nil {
		return err
	}
	out, err := h.uc.Update(c.UserContext(), id, in)
	if err != nil {
		return err
	}
	return c.JSON(out)
}

// Remove godoc
// @Summary      Eliminar categoría
// @Description  Solo se eliminan categorías sin productos ni subcategorías.
// @Tags         categories
// @Param        id   path  string  true  "ID de la categoría (UUID)"
// @Success      204
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Remove(c *fiber.Ctx) error {
	id := c.Params("id")
	if err := h.v.UUID("id", id); err != nil {
		return err
	}
	if err := h.uc.Remove(c.UserContext(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
