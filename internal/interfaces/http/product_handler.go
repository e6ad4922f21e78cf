package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/catalog"
	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain/repository"
)

// ProductHandler CRUD del catálogo de productos.
type ProductHandler struct {
	uc *catalog.ProductUseCase
}

// NewProductHandler construye el handler de productos.
func NewProductHandler(uc *catalog.ProductUseCase) *ProductHandler {
	return &ProductHandler{uc: uc}
}

// Create godoc
// @Summary      Publicar producto (vendedor aprobado)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProductRequest  true  "title, price, stock"
// @Success      201   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/products [post]
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	vendorID := GetVendorID(c)
	if vendorID == "" {
		return respondError(c, fiber.StatusForbidden, "Se requiere un token de vendedor")
	}
	product, err := h.uc.Create(c.Context(), vendorID, in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, product)
}

// List godoc
// @Summary      Listar productos
// @Tags         products
// @Produce      json
// @Param        vendor    query  string  false  "filtrar por tienda"
// @Param        category  query  string  false  "filtrar por categoría"
// @Param        q         query  string  false  "substring del título"
// @Param        page      query  int     false  "página (1-indexada)"
// @Param        limit     query  int     false  "tamaño de página (default 20)"
// @Success      200   {object}  dto.Envelope
// @Router       /api/products [get]
func (h *ProductHandler) List(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Parámetros inválidos")
	}
	page.Normalize(20)
	filter := repository.ProductFilter{
		VendorID:   c.Query("vendor"),
		CategoryID: c.Query("category"),
		Query:      c.Query("q"),
	}
	items, pagination, err := h.uc.List(c.Context(), filter, page)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondPage(c, items, pagination)
}

// GetByID godoc
// @Summary      Obtener un producto
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "product id"
// @Success      200   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/products/{id} [get]
func (h *ProductHandler) GetByID(c *fiber.Ctx) error {
	product, err := h.uc.GetByID(c.Context(), c.Params("id"))
	if err != nil {
		return respondDomainError(c, err)
	}
	if product == nil {
		return respondError(c, fiber.StatusNotFound, "El producto no existe")
	}
	return respondOK(c, product)
}

// Update godoc
// @Summary      Actualizar producto (vendedor dueño o admin)
// @Tags         products
// @Accept       json
// @Produce      json
// @Param        id    path  string                    true  "product id"
// @Param        body  body  dto.UpdateProductRequest  true  "campos a cambiar"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/products/{id} [put]
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProductRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	product, err := h.uc.Update(c.Context(), c.Params("id"), GetVendorID(c), IsAdmin(c), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	if product == nil {
		return respondError(c, fiber.StatusNotFound, "El producto no existe")
	}
	return respondOK(c, product)
}

// Delete godoc
// @Summary      Eliminar producto (vendedor dueño o admin)
// @Tags         products
// @Produce      json
// @Param        id  path  string  true  "product id"
// @Success      200   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/products/{id} [delete]
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id"), GetVendorID(c), IsAdmin(c)); err != nil {
		return respondDomainError(c, err)
	}
	return respondMessage(c, "Producto eliminado")
}
