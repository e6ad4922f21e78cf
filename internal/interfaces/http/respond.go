// Package http expone la API REST sobre Fiber: handlers, middleware de auth
// (Route Guard con refresh silencioso) y el router.
package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/mercado-api/internal/application/dto"
	"github.com/jhoicas/mercado-api/internal/domain"
)

// respondOK responde 200 con el sobre de éxito.
func respondOK(c *fiber.Ctx, data interface{}) error {
	return c.JSON(dto.Envelope{Success: true, Data: data})
}

// respondMessage responde 200 con mensaje y sin datos.
func respondMessage(c *fiber.Ctx, message string) error {
	return c.JSON(dto.Envelope{Success: true, Message: message})
}

// respondCreated responde 201 con el sobre de éxito.
func respondCreated(c *fiber.Ctx, data interface{}) error {
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Data: data})
}

// respondPage responde 200 con datos paginados.
func respondPage(c *fiber.Ctx, data interface{}, pagination *dto.Pagination) error {
	return c.JSON(dto.Envelope{Success: true, Data: data, Pagination: pagination})
}

// respondError responde el sobre de fallo con el status dado.
func respondError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(dto.Envelope{Success: false, Error: message})
}

// respondServerError registra el error real y responde el mensaje genérico:
// el detalle interno nunca viaja al cliente.
func respondServerError(c *fiber.Ctx, err error) error {
	log.Error().Err(err).Str("path", c.Path()).Str("method", c.Method()).Msg("error interno")
	return respondError(c, fiber.StatusInternalServerError, "Server error")
}

// respondDomainError mapea errores de dominio a status HTTP; cualquier error
// no reconocido cae a 500.
func respondDomainError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respondError(c, fiber.StatusBadRequest, "Datos inválidos")
	case errors.Is(err, domain.ErrUserNotFound), errors.Is(err, domain.ErrUnauthorized):
		return respondError(c, fiber.StatusUnauthorized, "Credenciales inválidas")
	case errors.Is(err, domain.ErrTokenRevoked):
		return respondError(c, fiber.StatusUnauthorized, "Sesión revocada, inicia sesión de nuevo")
	case errors.Is(err, domain.ErrForbidden):
		return respondError(c, fiber.StatusForbidden, "No tienes permiso para esta operación")
	case errors.Is(err, domain.ErrVendorNotApproved):
		return respondError(c, fiber.StatusForbidden, "La tienda no está aprobada")
	case errors.Is(err, domain.ErrVendorNotFound):
		return respondError(c, fiber.StatusNotFound, "La tienda no existe")
	case errors.Is(err, domain.ErrNotFound):
		return respondError(c, fiber.StatusNotFound, "Recurso no encontrado")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respondError(c, fiber.StatusConflict, "El email ya está registrado")
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		return respondError(c, fiber.StatusConflict, "El recurso ya existe o la operación entra en conflicto")
	case errors.Is(err, domain.ErrInsufficientStock):
		return respondError(c, fiber.StatusConflict, "Stock insuficiente para completar la compra")
	default:
		return respondServerError(c, err)
	}
}
