package saved

import (
	savedsvc "github.com/b2ygroup/conecta-pro/internal/application/saved"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

var statusMap = response.StatusMap{
	savedsvc.ErrMissingIDs: fiber.StatusBadRequest,
}

type Handlers struct {
	Service *savedsvc.Service
}

type saveRequest struct {
	Title string `json:"title"`
}

// List GET /api/v1/saved
func (h *Handlers) List(c *fiber.Ctx) error {
	items, err := h.Service.ListSaved(c.UserContext(), middleware.MustUser(c).UserID)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Saved listings fetched successfully", items, fiber.Map{"count": len(items)})
}

// Status GET /api/v1/saved/:listing_id
func (h *Handlers) Status(c *fiber.Ctx) error {
	ok, err := h.Service.IsSaved(c.UserContext(), middleware.MustUser(c).UserID, c.Params("listing_id"))
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Saved status fetched", fiber.Map{"saved": ok}, nil)
}

// Save PUT /api/v1/saved/:listing_id
func (h *Handlers) Save(c *fiber.Ctx) error {
	var req saveRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
		}
	}
	rec, err := h.Service.Save(c.UserContext(), middleware.MustUser(c).UserID, c.Params("listing_id"), req.Title)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listing saved", rec, nil)
}

// Remove DELETE /api/v1/saved/:listing_id
func (h *Handlers) Remove(c *fiber.Ctx) error {
	if err := h.Service.Remove(c.UserContext(), middleware.MustUser(c).UserID, c.Params("listing_id")); err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listing removed from saved", nil, nil)
}
