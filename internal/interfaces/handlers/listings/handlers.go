package listings

import (
	"encoding/json"

	"github.com/b2ygroup/conecta-pro/internal/application/listingevents"
	listsvc "github.com/b2ygroup/conecta-pro/internal/application/listings"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"
	"github.com/b2ygroup/conecta-pro/internal/pkg/validation"

	"github.com/gofiber/fiber/v2"
)

var statusMap = response.StatusMap{
	listsvc.ErrListingNotFound:       fiber.StatusNotFound,
	listsvc.ErrForbidden:             fiber.StatusForbidden,
	listsvc.ErrNoChanges:             fiber.StatusBadRequest,
	listsvc.ErrOwnerRequired:         fiber.StatusBadRequest,
	validation.ErrInvalidInput:       fiber.StatusBadRequest,
	listingevents.ErrListingNotFound: fiber.StatusNotFound,
	listingevents.ErrForbidden:       fiber.StatusForbidden,
}

type Handlers struct {
	Service *listsvc.Service
	Events  *listingevents.Service
}

// CreateListing POST /api/v1/listings
func (h *Handlers) CreateListing(c *fiber.Ctx) error {
	var in listsvc.CreateInput
	if err := json.Unmarshal(c.Body(), &in); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.CreateListing(c.UserContext(), middleware.MustUser(c).UserID, in)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.SuccessCreated(c, "Listing created successfully", listing, nil)
}

// GetListing GET /api/v1/listings/:listing_id (public)
func (h *Handlers) GetListing(c *fiber.Ctx) error {
	listing, err := h.Service.GetListing(c.UserContext(), c.Params("listing_id"))
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listing fetched successfully", listing, nil)
}

// MyListings GET /api/v1/listings/mine
func (h *Handlers) MyListings(c *fiber.Ctx) error {
	listings, err := h.Service.ListByOwner(c.UserContext(), middleware.MustUser(c).UserID)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listings fetched successfully", listings, fiber.Map{"count": len(listings)})
}

// UpdateListing PATCH /api/v1/listings/:listing_id
func (h *Handlers) UpdateListing(c *fiber.Ctx) error {
	var updates map[string]interface{}
	if err := json.Unmarshal(c.Body(), &updates); err != nil {
		return response.Error(c, "Invalid request body", fiber.StatusBadRequest, nil)
	}
	listing, err := h.Service.UpdateListing(c.UserContext(), middleware.MustUser(c).UserID, c.Params("listing_id"), updates)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listing updated successfully", listing, nil)
}

// DeleteListing DELETE /api/v1/listings/:listing_id
func (h *Handlers) DeleteListing(c *fiber.Ctx) error {
	if err := h.Service.DeleteListing(c.UserContext(), middleware.MustUser(c).UserID, c.Params("listing_id")); err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listing deleted successfully", nil, nil)
}

// ListingEvents GET /api/v1/listings/:listing_id/events
func (h *Handlers) ListingEvents(c *fiber.Ctx) error {
	events, err := h.Events.ListForListing(c.UserContext(), c.Params("listing_id"), middleware.MustUser(c).UserID)
	if err != nil {
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Listing events fetched successfully", events, nil)
}
