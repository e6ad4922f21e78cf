package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/catalog"
	"github.com/jhoicas/mercado-api/internal/application/dto"
)

// CategoryHandler CRUD de categorías (escrituras solo admin).
type CategoryHandler struct {
	uc *catalog.CategoryUseCase
}

// NewCategoryHandler construye el handler de categorías.
func NewCategoryHandler(uc *catalog.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{uc: uc}
}

// Create godoc
// @Summary      Crear categoría (admin)
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCategoryRequest  true  "name"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/categories [post]
func (h *CategoryHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	category, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, category)
}

// List godoc
// @Summary      Listar categorías activas ordenadas por nombre
// @Tags         categories
// @Produce      json
// @Param        page   query  int  false  "página (1-indexada)"
// @Param        limit  query  int  false  "tamaño de página (default 50)"
// @Success      200   {object}  dto.Envelope
// @Router       /api/categories [get]
func (h *CategoryHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Parámetros inválidos")
	}
	page.Normalize(50)
	items, pagination, err := h.uc.ListActive(c.Context(), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, items, pagination)
}

// GetByID godoc
// @Summary      Obtener una categoría
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "category id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/categories/{id} [get]
func (h *CategoryHandler) GetByID(c *fiber.Ctx) error {
	category, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if category == nil {
		return respondError(c, fiber.StatusNotFound, "La categoría no existe")
	}
	return respondOK(c, category)
}

// Update godoc
// @Summary      Actualizar categoría (admin)
// @Tags         categories
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "category id"
// @Param        body  body  dto.UpdateCategoryRequest  true  "name, isActive"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/categories/{id} [put]
func (h *CategoryHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateCategoryRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	category, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if category == nil {
		return respondError(c, fiber.StatusNotFound, "La categoría no existe")
	}
	return respondOK(c, category)
}

// Delete godoc
// @Summary      Eliminar categoría (admin)
// @Tags         categories
// @Produce      json
// @Param        id  path  string  true  "category id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/categories/{id} [delete]
func (h *CategoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "Categoría eliminada")
}
