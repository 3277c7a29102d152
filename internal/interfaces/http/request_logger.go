package http

import (
	"fmt"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/catalogo-api/pkg/logger"
)

// RequestLogger deriva un logger por petición (request id, método, ruta) y lo deja en el
// contexto de usuario para casos de uso y repositorios. Debe ir después de requestid.
// Si la cadena devuelve error lo resuelve aquí con el ErrorHandler para registrar el status final.
func RequestLogger(base *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		zl := base.With().
			Str("request_id", fmt.Sprint(c.Locals("requestid"))).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Logger()
		c.SetUserContext(zl.WithContext(c.UserContext()))

		if chainErr := c.Next(); chainErr != nil {
			if err := c.App().ErrorHandler(c, chainErr); err != nil {
				_ = c.SendStatus(fiber.StatusInternalServerError)
			}
		}

		status := c.Response().StatusCode()
		ev := zl.Info()
		if status >= fiber.StatusInternalServerError {
			ev = zl.Error()
		} else if status >= fiber.StatusBadRequest {
			ev = zl.Warn()
		}
		ev.Int("status", status).Dur("latency", time.Since(start)).Msg("petición HTTP")
		return nil
	}
}
