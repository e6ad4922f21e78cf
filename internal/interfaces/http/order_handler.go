package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/application/orders"
)

// OrderHandler checkout y gestión de órdenes.
type OrderHandler struct {
	checkout *orders.CheckoutUseCase
	uc       *orders.OrderUseCase
}

// NewOrderHandler construye el handler de órdenes.
func NewOrderHandler(checkout *orders.CheckoutUseCase, uc *orders.OrderUseCase) *OrderHandler {
	return &OrderHandler{checkout: checkout, uc: uc}
}

func caller(c *fiber.Ctx) orders.Caller {
	return orders.Caller{
		UserID:   GetUserID(c),
		VendorID: GetVendorID(c),
		IsAdmin:  IsAdmin(c),
	}
}

// Create godoc
// @Summary      Checkout: crear orden descontando stock atómicamente
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateOrderRequest  true  "vendorId, items"
// @Success      201   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope  "stock insuficiente"
// @Router       /api/orders [post]
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	order, err := h.checkout.Checkout(c.Context(), GetUserID(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, order)
}

// List godoc
// @Summary      Listar órdenes según el rol (cliente: propias; vendedor: de su tienda; admin: todas)
// @Tags         orders
// @Produce      json
// @Param        status  query  string  false  "pending|processing|shipped|delivered|cancelled"
// @Param        page    query  int     false  "página (1-indexada)"
// @Param        limit   query  int     false  "tamaño de página (default 10)"
// @Success      200   {object}  dto.Envelope
// @Router       /api/orders [get]
func (h *OrderHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Parámetros inválidos")
	}
	page.Normalize(10)
	items, pagination, err := h.uc.List(c.Context(), caller(c), c.Query("status"), page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, items, pagination)
}

// GetByID godoc
// @Summary      Obtener una orden (con control de acceso)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "order id"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/orders/{id} [get]
func (h *OrderHandler) GetByID(c *fiber.Ctx) error {
	order, err := h.uc.GetByID(c.Context(), c.Params("id"), caller(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	if order == nil {
		return respondError(c, fiber.StatusNotFound, "La orden no existe")
	}
	return respondOK(c, order)
}

// UpdateStatus godoc
// @Summary      Cambiar estado de la orden (vendedor de la tienda o admin)
// @Tags         orders
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "order id"
// @Param        body  body  dto.UpdateOrderRequest  true  "status"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/orders/{id} [put]
func (h *OrderHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateOrderRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	order, err := h.uc.UpdateStatus(c.Context(), c.Params("id"), caller(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if order == nil {
		return respondError(c, fiber.StatusNotFound, "La orden no existe")
	}
	return respondOK(c, order)
}

// Delete godoc
// @Summary      Eliminar orden (solo admin, borrado duro)
// @Tags         orders
// @Produce      json
// @Param        id  path  string  true  "order id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/orders/{id} [delete]
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "Orden eliminada")
}

// Receipt godoc
// @Summary      Comprobante PDF de la orden
// @Tags         orders
// @Produce      application/pdf
// @Param        id  path  string  true  "order id"
// @Success      200   {file}    binary
// @Failure      404   {object}  dto.Envelope
// @Router       /api/orders/{id}/receipt [get]
func (h *OrderHandler) Receipt(c *fiber.Ctx) error {
	pdfBytes, err := h.uc.Receipt(c.Context(), c.Params("id"), caller(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="comprobante-`+c.Params("id")+`.pdf"`)
	return c.Send(pdfBytes)
}
