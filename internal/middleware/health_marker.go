package middleware

import (
	"errors"
	"strings"
	"time"

	"github.com/b2ygroup/conecta-pro/internal/application/health"

	"github.com/gofiber/fiber/v2"
)

// HealthMarker records request counters and 5xx responses for /health (skips /, /health*, favicon).
// It runs before the error handler, so a returned error is classified by its fiber code.
func HealthMarker(stats *health.Stats) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		if path == "/" || strings.HasPrefix(path, "/health") || strings.HasPrefix(path, "/favicon") {
			return c.Next()
		}

		ctx := c.UserContext()
		start := time.Now()
		stats.RequestStarted(ctx, health.RequestInfo{
			Time:   start.UTC(),
			IP:     c.IP(),
			Path:   c.OriginalURL(),
			Method: c.Method(),
		})

		err := c.Next()

		stats.RequestFinished(ctx, time.Since(start))
		status := c.Response().StatusCode()
		msg, _ := c.Locals("error_message").(string)
		if err != nil {
			status = fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				status = fe.Code
			}
			msg = err.Error()
		}
		if status >= fiber.StatusInternalServerError {
			stats.RequestFailed(ctx, health.ErrorEntry{
				Time:    time.Now().UTC(),
				Method:  c.Method(),
				Path:    c.OriginalURL(),
				Status:  status,
				Message: msg,
				TraceID: GetTraceID(c),
			})
		}
		return err
	}
}
