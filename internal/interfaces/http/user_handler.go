package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/application/users"
)

// UserHandler administración de cuentas (solo admin).
type UserHandler struct {
	uc *users.UserAdminUseCase
}

// NewUserHandler construye el handler de usuarios.
func NewUserHandler(uc *users.UserAdminUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// List godoc
// @Summary      Listar usuarios (admin)
// @Tags         users
// @Produce      json
// @Param        page   query  int  false  "página (1-indexada)"
// @Param        limit  query  int  false  "tamaño de página (default 20)"
// @Success      200   {object}  dto.Envelope
// @Router       /api/users [get]
func (h *UserHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Parámetros inválidos")
	}
	page.Normalize(20)
	items, pagination, err := h.uc.List(c.Context(), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, items, pagination)
}

// GetByID godoc
// @Summary      Obtener un usuario (admin)
// @Tags         users
// @Produce      json
// @Param        id  path  string  true  "user id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/users/{id} [get]
func (h *UserHandler) GetByID(c *fiber.Ctx) error {
	user, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if user == nil {
		return respondError(c, fiber.StatusNotFound, "El usuario no existe")
	}
	return respondOK(c, user)
}

// Update godoc
// @Summary      Actualizar roles o actividad de un usuario (admin)
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path  string                 true  "user id"
// @Param        body  body  dto.UpdateUserRequest  true  "name, roles, active"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/users/{id} [put]
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	user, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if user == nil {
		return respondError(c, fiber.StatusNotFound, "El usuario no existe")
	}
	return respondOK(c, user)
}
