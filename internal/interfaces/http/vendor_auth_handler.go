package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/dto"
)

// VendorAuthHandler sesiones de vendedores (familia vendor, cookies propias).
type VendorAuthHandler struct {
	uc      *auth.VendorAuthUseCase
	cookies CookieWriter
}

// NewVendorAuthHandler construye el handler de auth de vendedores.
func NewVendorAuthHandler(uc *auth.VendorAuthUseCase, cookies CookieWriter) *VendorAuthHandler {
	return &VendorAuthHandler{uc: uc, cookies: cookies}
}

// Register godoc
// @Summary      Registrar vendedor (User dueño + tienda en etapa applied)
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.VendorRegisterRequest  true  "email, password, storeName"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/vendors/register [post]
func (h *VendorAuthHandler) Register(c *fiber.Ctx) error {
	var in dto.VendorRegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" || in.StoreName == "" {
		return respondError(c, fiber.StatusBadRequest, "email, password y storeName son requeridos")
	}
	if len(in.Password) < 8 {
		return respondError(c, fiber.StatusBadRequest, "password debe tener al menos 8 caracteres")
	}
	vendor, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, vendor)
}

// Login godoc
// @Summary      Iniciar sesión de vendedor (requiere tienda aprobada)
// @Tags         vendors
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Failure      403   {object}  dto.Envelope
// @Router       /api/vendors/login [post]
func (h *VendorAuthHandler) Login(c *fiber.Ctx) error {
	var in dto.SignInRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "email y password son requeridos")
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	h.cookies.SetSession(c, out.AccessToken, out.RefreshToken)
	return respondOK(c, out)
}

// Refresh godoc
// @Summary      Canjear refresh token vendor por un access token nuevo
// @Tags         vendors
// @Produce      json
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/vendors/refresh [post]
func (h *VendorAuthHandler) Refresh(c *fiber.Ctx) error {
	refreshToken := c.Cookies(h.cookies.RefreshName)
	if refreshToken == "" {
		return respondError(c, fiber.StatusUnauthorized, "No hay sesión activa")
	}
	access, err := h.uc.Refresh(c.Context(), refreshToken)
	if err != nil {
		return respondDomainError(c, err)
	}
	h.cookies.SetAccess(c, access)
	return respondOK(c, dto.AuthResponse{AccessToken: access})
}

// Logout godoc
// @Summary      Cerrar sesión de vendedor
// @Tags         vendors
// @Produce      json
// @Success      200   {object}  dto.Envelope
// @Router       /api/vendors/logout [post]
func (h *VendorAuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), c.Cookies(h.cookies.RefreshName)); err != nil {
		return respondServerError(c, err)
	}
	h.cookies.Clear(c)
	return respondMessage(c, "Sesión cerrada")
}

// Me godoc
// @Summary      Perfil de la tienda del vendedor autenticado
// @Tags         vendors
// @Produce      json
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/vendors/me [get]
func (h *VendorAuthHandler) Me(c *fiber.Ctx) error {
	vendorID := GetVendorID(c)
	if vendorID == "" {
		return respondError(c, fiber.StatusUnauthorized, "El token no pertenece a un vendedor")
	}
	vendor, err := h.uc.Me(c.Context(), vendorID)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, vendor)
}
