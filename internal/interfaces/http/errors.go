package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"

	"github.com/jhoicas/farmasync-api/internal/application/dto"
	"github.com/jhoicas/farmasync-api/internal/domain"
)

// writeError responde con dto.ErrorResponse según el error de dominio (rutas del inventario).
func writeError(c *fiber.Ctx, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Message})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "Stock insuficiente"})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: "ya existe un producto con ese nombre"})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
}

// writeFailure responde con el sobre {ok:false, error} (rutas de administración y del agente).
func writeFailure(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := err.Error()
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		status, msg = fiber.StatusBadRequest, ve.Message
	case errors.Is(err, domain.ErrNotFound):
		status, msg = fiber.StatusNotFound, "Sesión no encontrada"
	case errors.Is(err, domain.ErrSessionCompleted):
		status, msg = fiber.StatusBadRequest, "Sesión ya completada"
	case errors.Is(err, domain.ErrInvalidStep), errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
	default:
		log.Error().Err(err).Str("path", c.Path()).Msg("petición fallida")
	}
	return c.Status(status).JSON(dto.FailureResponse{OK: false, Error: msg})
}
