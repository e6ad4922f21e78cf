package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/application/auth"
	"github.com/jhoicas/mercado-api/internal/application/dto"
)

// AuthHandler sesiones de usuarios finales (familia user).
type AuthHandler struct {
	uc      *auth.UserAuthUseCase
	cookies CookieWriter
}

// NewAuthHandler construye el handler de auth de usuarios.
func NewAuthHandler(uc *auth.UserAuthUseCase, cookies CookieWriter) *AuthHandler {
	return &AuthHandler{uc: uc, cookies: cookies}
}

// SignUp godoc
// @Summary      Registrar usuario
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignUpRequest  true  "email, password, name"
// @Success      201   {object}  dto.Envelope
// @Failure      400   {object}  dto.Envelope
// @Failure      409   {object}  dto.Envelope
// @Router       /api/auth/sign-up [post]
func (h *AuthHandler) SignUp(c *fiber.Ctx) error {
	var in dto.SignUpRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	in.Email = strings.TrimSpace(strings.ToLower(in.Email))
	if in.Email == "" || in.Password == "" {
		return respondError(c, fiber.StatusBadRequest, "email y password son requeridos")
	}
	if len(in.Password) < 8 {
		return respondError(c, fiber.StatusBadRequest, "password debe tener al menos 8 caracteres")
	}
	user, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondCreated(c, user)
}

// SignIn godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignInRequest  true  "email, password"
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/sign-in [post]
func (h *AuthHandler) SignIn(c *fiber.Ctx) error {
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
// @Summary      Canjear refresh token por un access token nuevo
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/refresh [post]
func (h *AuthHandler) Refresh(c *fiber.Ctx) error {
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
// @Summary      Cerrar sesión (revoca el refresh token y limpia cookies)
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.Envelope
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.uc.Logout(c.Context(), c.Cookies(h.cookies.RefreshName)); err != nil {
		return respondServerError(c, err)
	}
	h.cookies.Clear(c)
	return respondMessage(c, "Sesión cerrada")
}

// Me godoc
// @Summary      Perfil del usuario autenticado
// @Tags         auth
// @Produce      json
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := h.uc.Me(c.Context(), GetUserID(c))
	if err != nil {
		return respondDomainError(c, err)
	}
	return respondOK(c, user)
}

// ChangePassword godoc
// @Summary      Cambiar contraseña (revoca los refresh tokens vigentes)
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChangePasswordRequest  true  "oldPassword, newPassword"
// @Success      200   {object}  dto.Envelope
// @Failure      401   {object}  dto.Envelope
// @Router       /api/auth/change-password [post]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	var in dto.ChangePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return respondError(c, fiber.StatusBadRequest, "Cuerpo inválido")
	}
	if len(in.NewPassword) < 8 {
		return respondError(c, fiber.StatusBadRequest, "la nueva contraseña debe tener al menos 8 caracteres")
	}
	if err := h.uc.ChangePassword(c.Context(), GetUserID(c), in); err != nil {
		return respondDomainError(c, err)
	}
	h.cookies.Clear(c)
	return respondMessage(c, "Contraseña actualizada, inicia sesión de nuevo")
}
