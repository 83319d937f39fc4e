package middleware

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// RouteLogger logs one line per request with status, duration and trace id.
// 5xx log at error level, 4xx at warn.
func RouteLogger() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			status = fiber.StatusInternalServerError
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			}
		}
		var ev *zerolog.Event
		switch {
		case status >= fiber.StatusInternalServerError:
			ev = log.Error().Err(err)
			if msg, ok := c.Locals("error_message").(string); ok {
				ev = ev.Str("error_message", msg)
			}
		case status >= fiber.StatusBadRequest:
			ev = log.Warn()
		default:
			ev = log.Info()
		}
		ev.Str("trace_id", GetTraceID(c)).
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Int64("ms", time.Since(start).Milliseconds()).
			Msg("request")
		return err
	}
}
