package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// ErrorHandler traduce los errores de handlers y casos de uso al sobre JSON común.
// Los errores que no son de dominio responden 500 sin exponer el detalle, que solo se registra.
func ErrorHandler(c *fiber.Ctx, err error) error {
	body := dto.ErrorResponse{
		Timestamp: time.Now().UTC(),
		Path:      c.Path(),
		Method:    c.Method(),
	}

	var verr *domain.ValidationError
	var fe *fiber.Error
	switch {
	case errors.As(err, &verr):
		body.StatusCode = fiber.StatusBadRequest
		body.Code = "VALIDATION_ERROR"
		body.Message = "Validation failed"
		body.Details = verr.Fields
	case errors.Is(err, domain.ErrNotFound):
		body.StatusCode = fiber.StatusNotFound
		body.Code = "NOT_FOUND"
		body.Message = messageOr(err, "Resource not found")
	case errors.Is(err, domain.ErrConflict):
		body.StatusCode = fiber.StatusConflict
		body.Code = "CONFLICT"
		body.Message = messageOr(err, "Conflict with current state")
	case errors.Is(err, domain.ErrBadRequest):
		body.StatusCode = fiber.StatusBadRequest
		body.Code = "BAD_REQUEST"
		body.Message = messageOr(err, "Bad request")
	case errors.Is(err, domain.ErrInternal):
		body.StatusCode = fiber.StatusInternalServerError
		body.Code = "INTERNAL"
		body.Message = "Internal server error"
	case errors.As(err, &fe):
		body.StatusCode = fe.Code
		body.Code = httpCode(fe.Code)
		body.Message = fe.Message
	default:
		body.StatusCode = fiber.StatusInternalServerError
		body.Code = "INTERNAL"
		body.Message = "Internal server error"
	}

	log := logger.FromContext(c.UserContext())
	if body.StatusCode >= fiber.StatusInternalServerError {
		log.Error().Err(err).Str("path", body.Path).Msg("error interno")
	} else {
		log.Debug().Str("code", body.Code).Str("message", body.Message).Msg("petición rechazada")
	}
	return c.Status(body.StatusCode).JSON(body)
}

func messageOr(err error, fallback string) string {
	if msg := domain.Message(err); msg != "" {
		return msg
	}
	return fallback
}

func httpCode(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusUnprocessableEntity, fiber.StatusBadRequest:
		return "BAD_REQUEST"
	default:
		if status >= fiber.StatusInternalServerError {
			return "INTERNAL"
		}
		return "HTTP_ERROR"
	}
}
