package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/application/vendors"
	"github.com/jhoicas/mercado-api/internal/domain/entity"
)

// VendorHandler ciclo de vida y CRUD de perfiles de tienda.
type VendorHandler struct {
	uc *vendors.VendorUseCase
}

// NewVendorHandler construye el handler de vendedores.
func NewVendorHandler(uc *vendors.VendorUseCase) *VendorHandler {
	return &VendorHandler{uc: uc}
}

// Apply godoc
// @Summary      Solicitar tienda (usuario autenticado; alias become-a-vendor)
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VendorApplyRequest  true  "storeName y políticas"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/vendors/apply [post]
func (h *VendorHandler) Apply(c *fiber.Ctx) error {
	var in dto.VendorApplyRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	vendor, err := h.uc.Apply(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, vendor)
}

// CheckEmail godoc
// @Summary      Verificar disponibilidad de un email
// @Tags         vendors
// @Produce      json
// @Param        email  query  string  true  "email a verificar"
// @Success      200   {object}  dto.Envelope
// @Router       /api/vendors/check-email [get]
func (h *VendorHandler) CheckEmail(c *fiber.Ctx) error {
	email := strings.TrimSpace(strings.ToLower(c.Query("email")))
	out, err := h.uc.CheckEmail(c.Context(), email)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, out)
}

// List godoc
// @Summary      Listar tiendas (filtro opcional por etapa)
// @Tags         vendors
// @Produce      json
// @Param        stage  query  string  false  "applied|under_review|approved|rejected|suspended"
// @Param        page   query  int     false  "página (1-indexada)"
// @Param        limit  query  int     false  "tamaño de página (default 20)"
// @Success      200   {object}  dto.Envelope
// @Router       /api/vendors [get]
func (h *VendorHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Parámetros inválidos")
	}
	page.Normalize(20)
	stage := c.Query("stage")
	// Solo un admin puede ver tiendas fuera de approved.
	if !IsAdmin(c) {
		stage = entity.StageApproved
	}
	items, pagination, err := h.uc.List(c.Context(), stage, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, items, pagination)
}

// GetByID godoc
// @Summary      Obtener una tienda
// @Tags         vendors
// @Produce      json
// @Param        id  path  string  true  "vendor id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/vendors/{id} [get]
func (h *VendorHandler) GetByID(c *fiber.Ctx) error {
	vendor, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if vendor == nil {
		return respondError(c, fiber.StatusNotFound, "La tienda no existe")
	}
	return respondOK(c, vendor)
}

// Update godoc
// @Summary      Actualizar tienda (perfil: dueño o admin; etapa: solo admin)
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "vendor id"
// @Param        body  body  dto.UpdateVendorRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/vendors/{id} [put]
func (h *VendorHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateVendorRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	id := c.Params("id")
	if !IsAdmin(c) {
		// El dueño solo edita su propia tienda y nunca la etapa.
		if GetVendorID(c) != id {
			return respondError(c, fiber.StatusForbidden, "No tienes permiso para esta operación")
		}
		in.LifecycleStage = nil
	}
	vendor, err := h.uc.Update(c.Context(), id, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if vendor == nil {
		return respondError(c, fiber.StatusNotFound, "La tienda no existe")
	}
	return respondOK(c, vendor)
}

// Delete godoc
// @Summary      Eliminar tienda (solo admin)
// @Tags         vendors
// @Produce      json
// @Param        id  path  string  true  "vendor id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/vendors/{id} [delete]
func (h *VendorHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "Tienda eliminada")
}
