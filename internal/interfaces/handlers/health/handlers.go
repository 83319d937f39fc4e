package health

import (
	healthsvc "github.com/b2ygroup/conecta-pro/internal/application/health"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
)

const serviceName = "conecta-pro-api"

// Handlers holds dependencies for health endpoints.
type Handlers struct {
	Rdb            *redis.Client
	DB             healthsvc.DBPinger
	Stats          *healthsvc.Stats
	HealthAdminKey string
}

// JSON GET /health/json
func (h *Handlers) JSON(c *fiber.Ctx) error {
	report := healthsvc.Collect(c.UserContext(), h.Rdb, h.DB)
	return c.JSON(fiber.Map{
		"service":      serviceName,
		"status":       report.Status,
		"runtime":      report.Runtime,
		"traffic":      report.Traffic,
		"dependencies": report.Dependencies,
	})
}

// Errors GET /health/errors returns the recent 5xx log, newest first.
func (h *Handlers) Errors(c *fiber.Ctx) error {
	entries, err := h.Stats.Errors(c.UserContext())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON([]healthsvc.ErrorEntry{})
	}
	return c.JSON(entries)
}

// Reset POST /health/reset?key=HEALTH_ADMIN_KEY
func (h *Handlers) Reset(c *fiber.Ctx) error {
	key := c.Query("key")
	if h.HealthAdminKey == "" || key != h.HealthAdminKey {
		return response.Error(c, "Unauthorized", fiber.StatusForbidden, nil)
	}
	if err := h.Stats.Reset(c.UserContext()); err != nil {
		return response.FromError(c, err, nil)
	}
	return response.Success(c, "Stats reset successfully", fiber.Map{"success": true}, nil)
}
