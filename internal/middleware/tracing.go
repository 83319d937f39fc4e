package middleware

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	traceIDHeader   = "X-Trace-Id"
	requestIDHeader = "X-Request-ID"
	traceIDLocal    = "trace_id"
	maxRequestIDLen = 128
)

// Tracing tags the request with a trace id, reusing the caller's X-Request-ID
// when it is sane. Services that log through zerolog.Ctx(ctx) get the id for free.
func Tracing() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id := c.Get(requestIDHeader)
		if id == "" || len(id) > maxRequestIDLen {
			id = uuid.NewString()
		}
		c.Locals(traceIDLocal, id)
		c.Set(traceIDHeader, id)

		l := log.With().Str("trace_id", id).Logger()
		c.SetUserContext(l.WithContext(c.UserContext()))
		return c.Next()
	}
}

// GetTraceID is "" outside Tracing.
func GetTraceID(c *fiber.Ctx) string {
	id, _ := c.Locals(traceIDLocal).(string)
	return id
}
