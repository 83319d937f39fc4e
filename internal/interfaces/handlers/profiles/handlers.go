package profiles

import (
	profilesvc "github.com/b2ygroup/conecta-pro/internal/application/profiles"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"
	"github.com/b2ygroup/conecta-pro/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

var statusMap = response.StatusMap{
	profilesvc.ErrProfileNotFound: fiber.StatusNotFound,
	profilesvc.ErrUserRequired:    fiber.StatusBadRequest,
	validation.ErrInvalidInput:    fiber.StatusBadRequest,
}

type Handlers struct {
	Service *profilesvc.Service
}

// Me GET /api/v1/profiles/me
func (h *Handlers) Me(c *fiber.Ctx) error {
	p, err := h.Service.Get(c.UserContext(), middleware.MustUser(c).UserID)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Profile fetched successfully", p, nil)
}

// UpdateMe PUT /api/v1/profiles/me
func (h *Handlers) UpdateMe(c *fiber.Ctx) error {
	var in profilesvc.ProfileInput
	if err := c.BodyParser(&in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	p, err := h.Service.Upsert(c.UserContext(), middleware.MustUser(c).UserID, in)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Profile updated successfully", p, nil)
}
