package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/mercado-api/pkg/token"
)

// Nombres de cookie del contrato de sesión. Los access tokens son legibles por
// el cliente (el frontend decodifica roles sin pegarle a la API); los refresh
// son HttpOnly y solo los ve el servidor.
const (
	CookieAccessToken        = "accessToken"
	CookieRefreshToken       = "refreshToken"
	CookieVendorAccessToken  = "vendorAccessToken"
	CookieVendorRefreshToken = "vendorRefreshToken"
)

// CookieWriter fija las cookies de una familia de sesión.
type CookieWriter struct {
	AccessName     string
	RefreshName    string
	AccessSameSite string // Strict para user, Lax para vendor (panel en subdominio)
	Secure         bool
	tokens         *token.Service
}

// UserCookies contrato de cookies de la familia user.
func UserCookies(tokens *token.Service, secure bool) CookieWriter {
	return CookieWriter{
		AccessName:     CookieAccessToken,
		RefreshName:    CookieRefreshToken,
		AccessSameSite: fiber.CookieSameSiteStrictMode,
		Secure:         secure,
		tokens:         tokens,
	}
}

// VendorCookies contrato de cookies de la familia vendor.
func VendorCookies(tokens *token.Service, secure bool) CookieWriter {
	return CookieWriter{
		AccessName:     CookieVendorAccessToken,
		RefreshName:    CookieVendorRefreshToken,
		AccessSameSite: fiber.CookieSameSiteLaxMode,
		Secure:         secure,
		tokens:         tokens,
	}
}

// SetSession fija ambas cookies tras login/refresh.
func (w CookieWriter) SetSession(c *fiber.Ctx, access, refresh string) {
	w.SetAccess(c, access)
	if refresh != "" {
		c.Cookie(&fiber.Cookie{
			Name:     w.RefreshName,
			Value:    refresh,
			Path:     "/",
			Expires:  time.Now().Add(w.tokens.RefreshTTL()),
			HTTPOnly: true,
			Secure:   w.Secure,
			SameSite: fiber.CookieSameSiteStrictMode,
		})
	}
}

// SetAccess fija solo la cookie de access (refresh silencioso).
func (w CookieWriter) SetAccess(c *fiber.Ctx, access string) {
	c.Cookie(&fiber.Cookie{
		Name:     w.AccessName,
		Value:    access,
		Path:     "/",
		Expires:  time.Now().Add(w.tokens.AccessTTL()),
		HTTPOnly: false,
		Secure:   w.Secure,
		SameSite: w.AccessSameSite,
	})
}

// Clear expira ambas cookies (logout).
func (w CookieWriter) Clear(c *fiber.Ctx) {
	expired := time.Now().Add(-time.Hour)
	c.Cookie(&fiber.Cookie{
		Name: w.AccessName, Value: "", Path: "/", Expires: expired,
		Secure: w.Secure, SameSite: w.AccessSameSite,
	})
	c.Cookie(&fiber.Cookie{
		Name: w.RefreshName, Value: "", Path: "/", Expires: expired,
		HTTPOnly: true, Secure: w.Secure, SameSite: fiber.CookieSameSiteStrictMode,
	})
}
