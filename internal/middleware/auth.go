package middleware

import (
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth rejects requests without a signed-in user.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := CurrentUser(c); !ok {
			return response.Unauthorized(c, "Unauthorized")
		}
		return c.Next()
	}
}

// MustUser is for handlers mounted behind RequireAuth.
func MustUser(c *fiber.Ctx) *SessionUser {
	u, ok := CurrentUser(c)
	if !ok {
		return &SessionUser{}
	}
	return u
}
