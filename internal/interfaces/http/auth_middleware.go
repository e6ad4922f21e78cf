package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/internal/domain/entity"
	"github.com/jhoicas/mercado-api/pkg/token"
)

// Locals keys para la identidad del caller en Fiber.
const (
	LocalUserID   = "user_id"
	LocalEmail    = "email"
	LocalRoles    = "roles"
	LocalVendorID = "vendor_id"
)

// GuardConfig configura el Route Guard de una familia de tokens.
type GuardConfig struct {
	Tokens  *token.Service
	Cookies CookieWriter
	// SignInURL: si está definido, un fallo de autenticación redirige (302) a
	// la página de login en vez de responder 401 (flujo navegador).
	SignInURL string
}

// AuthGuard valida el access token (Bearer o cookie) y deja la identidad en
// c.Locals. Si el access venció, intenta el refresh silencioso con la cookie
// de refresh: verifica firma y vigencia, reemite el access y sigue sin
// interrumpir la petición. Solo sin refresh válido se fuerza el re-login.
func AuthGuard(cfg GuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := tryAuthenticate(c, cfg)
		if err != nil {
			return respondServerError(c, err)
		}
		if !ok {
			return deny(c, cfg)
		}
		return c.Next()
	}
}

// DualAuthGuard acepta cualquiera de las dos familias de sesión: primero la
// de usuarios (clientes y admins) y luego la de vendedores. Para rutas que
// atienden a ambos (catálogo del vendedor, órdenes).
func DualAuthGuard(user, vendor GuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := tryAuthenticate(c, user)
		if err != nil {
			return respondServerError(c, err)
		}
		if !ok {
			ok, err = tryAuthenticate(c, vendor)
			if err != nil {
				return respondServerError(c, err)
			}
		}
		if !ok {
			return deny(c, user)
		}
		return c.Next()
	}
}

// OptionalAuthGuard autentica si hay credenciales pero nunca rechaza: las
// rutas públicas con comportamiento extra para sesiones (p. ej. filtros de
// admin en listados) lo usan en lugar del guard estricto.
func OptionalAuthGuard(user, vendor GuardConfig) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ok, err := tryAuthenticate(c, user)
		if err != nil {
			return respondServerError(c, err)
		}
		if !ok {
			if _, err := tryAuthenticate(c, vendor); err != nil {
				return respondServerError(c, err)
			}
		}
		return c.Next()
	}
}

// tryAuthenticate intenta autenticar con una familia. Devuelve error solo
// ante fallos internos; un token rechazado es (false, nil).
func tryAuthenticate(c *fiber.Ctx, cfg GuardConfig) (bool, error) {
	accessToken := bearerToken(c)
	if accessToken == "" {
		accessToken = c.Cookies(cfg.Cookies.AccessName)
	}

	if accessToken != "" {
		claims, err := cfg.Tokens.Verify(accessToken)
		if err == nil && claims.TokenType == token.TypeAccess {
			setIdentity(c, claims)
			return true, nil
		}
		if err != nil && err != token.ErrExpired {
			// Manipulado o de otra familia: no intentar refresh aquí.
			return false, nil
		}
	}

	// Access ausente o vencido: refresh silencioso desde la cookie.
	refreshToken := c.Cookies(cfg.Cookies.RefreshName)
	if refreshToken == "" {
		return false, nil
	}
	claims, err := cfg.Tokens.Verify(refreshToken)
	if err != nil || claims.TokenType != token.TypeRefresh {
		return false, nil
	}
	access, err := cfg.Tokens.IssueAccess(token.SubjectFromClaims(claims))
	if err != nil {
		return false, err
	}
	cfg.Cookies.SetAccess(c, access)
	setIdentity(c, claims)
	return true, nil
}

func deny(c *fiber.Ctx, cfg GuardConfig) error {
	if cfg.SignInURL != "" {
		return c.Redirect(cfg.SignInURL, fiber.StatusFound)
	}
	return respondError(c, fiber.StatusUnauthorized, "Sesión expirada o inválida")
}

func bearerToken(c *fiber.Ctx) string {
	authHeader := c.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

func setIdentity(c *fiber.Ctx, claims *token.Claims) {
	c.Locals(LocalUserID, claims.Subject)
	c.Locals(LocalEmail, claims.Email)
	c.Locals(LocalRoles, claims.Roles)
	c.Locals(LocalVendorID, claims.VendorID)
}

// Allows evalúa la política de roles: con matchAll el caller necesita todos
// los roles requeridos; sin él, alcanza con uno. Sin roles requeridos siempre
// permite.
func Allows(required, caller []string, matchAll bool) bool {
	if len(required) == 0 {
		return true
	}
	has := func(role string) bool {
		for _, r := range caller {
			if r == role {
				return true
			}
		}
		return false
	}
	if matchAll {
		for _, role := range required {
			if !has(role) {
				return false
			}
		}
		return true
	}
	for _, role := range required {
		if has(role) {
			return true
		}
	}
	return false
}

// RequireRole exige al menos uno de los roles (correr después de AuthGuard).
func RequireRole(roles ...string) fiber.Handler {
	return requireRoles(roles, false)
}

// RequireAllRoles exige todos los roles (correr después de AuthGuard).
func RequireAllRoles(roles ...string) fiber.Handler {
	return requireRoles(roles, true)
}

func requireRoles(roles []string, matchAll bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !Allows(roles, GetRoles(c), matchAll) {
			return respondError(c, fiber.StatusForbidden, "No tienes permiso para esta operación")
		}
		return c.Next()
	}
}

// GetUserID devuelve el ID del usuario autenticado.
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetEmail devuelve el email del usuario autenticado.
func GetEmail(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalEmail).(string)
	return s
}

// GetRoles devuelve los roles del usuario autenticado.
func GetRoles(c *fiber.Ctx) []string {
	roles, _ := c.Locals(LocalRoles).([]string)
	return roles
}

// GetVendorID devuelve el vendor_id del token (vacío en la familia user).
func GetVendorID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalVendorID).(string)
	return s
}

// IsAdmin indica si el caller tiene rol admin.
func IsAdmin(c *fiber.Ctx) bool {
	return Allows([]string{entity.RoleAdmin}, GetRoles(c), false)
}
