package uploads

import (
	uploadsvc "github.com/b2ygroup/conecta-pro/internal/application/uploads"
	"github.com/b2ygroup/conecta-pro/internal/middleware"
	"github.com/b2ygroup/conecta-pro/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

var statusMap = response.StatusMap{
	uploadsvc.ErrFileNameRequired:       fiber.StatusBadRequest,
	uploadsvc.ErrUnsupportedContentType: fiber.StatusBadRequest,
	uploadsvc.ErrStorageUnavailable:     fiber.StatusServiceUnavailable,
}

// Handlers bundles upload handlers with the service.
type Handlers struct {
	Service *uploadsvc.Service
}

type uploadRequest struct {
	FileName    string `json:"fileName"`
	ContentType string `json:"contentType"`
}

// ListingImage POST /api/v1/uploads/listing-image
func (h *Handlers) ListingImage(c *fiber.Ctx) error {
	var req uploadRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, uploadsvc.ErrFileNameRequired.Error(), fiber.StatusBadRequest, nil)
	}
	user := middleware.MustUser(c)
	res, err := h.Service.PresignListingImage(c.UserContext(), user.UserID, req.FileName, req.ContentType)
	if err != nil {
		if _, known := statusMap[err]; !known {
			log.Error().Err(err).Str("user_id", user.UserID).Msg("upload: failed to presign listing image")
		}
		return response.FromError(c, err, statusMap)
	}
	return response.Success(c, "Upload URL generated", res, nil)
}
