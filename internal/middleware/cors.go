package middleware

import (
	"strings"

	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type CORSConfig struct {
	AllowedSuffix  string // e.g. ".conectapro.com.br"
	AllowLocalhost bool
	DevPassword    string // lets a tool with this dev-password header through from any origin
}

func (cfg CORSConfig) allows(origin string) bool {
	o := strings.ToLower(origin)
	if cfg.AllowLocalhost && (strings.HasPrefix(o, "http://localhost:") || strings.HasPrefix(o, "http://127.0.0.1:")) {
		return true
	}
	return cfg.AllowedSuffix != "" && strings.HasSuffix(o, strings.ToLower(cfg.AllowedSuffix))
}

// CORS answers credentialed cross-origin requests from allowed origins and
// rejects the rest with 403. Requests without an Origin pass through.
func CORS(cfg CORSConfig) fiber.Handler {
	inner := cors.New(cors.Config{
		AllowOrigins:     "https://conectapro.com.br",
		AllowOriginsFunc: func(string) bool { return true },
		AllowCredentials: true,
		AllowMethods:     "GET,POST,PUT,PATCH,DELETE,OPTIONS",
		AllowHeaders:     "Content-Type, X-Request-ID, dev-password",
		ExposeHeaders:    traceIDHeader,
	})
	return func(c *fiber.Ctx) error {
		origin := c.Get(fiber.HeaderOrigin)
		if origin == "" {
			return c.Next()
		}
		if cfg.allows(origin) || (cfg.DevPassword != "" && c.Get("dev-password") == cfg.DevPassword) {
			return inner(c)
		}
		return response.Error(c, "Not allowed by CORS", fiber.StatusForbidden, nil)
	}
}
