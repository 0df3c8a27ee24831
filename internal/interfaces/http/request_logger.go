package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/Alianzas-api/pkg/logger"
)

const localLogger = "logger"

// RequestLogger registra método, ruta, estado, latencia y request id de cada petición.
// Debe ir DESPUÉS del middleware requestid para que el id esté disponible.
func RequestLogger(log *logger.Logger) fiber.Handler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx) error {
		start := time.Now()
		reqID, _ := c.Locals("requestid").(string)

		zl := log.With().Str("request_id", reqID).Logger()
		c.Locals(localLogger, &zl)

		err := c.Next()
		if err != nil {
			// deja que el ErrorHandler de Fiber escriba la respuesta antes de loguear el estado
			if hErr := c.App().ErrorHandler(c, err); hErr != nil {
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
		ev.Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", time.Since(start)).
			Msg("http request")
		return nil
	}
}

// requestLogger logger de la petición; Nop si no pasó por RequestLogger.
func requestLogger(c *fiber.Ctx) *zerolog.Logger {
	if zl, ok := c.Locals(localLogger).(*zerolog.Logger); ok {
		return zl
	}
	nop := zerolog.Nop()
	return &nop
}
