// Package marketplace serves the public catalogue endpoints under /api. They
// answer with bare JSON (no envelope) because the storefront reads them directly.
package marketplace

import (
	"context"
	"errors"

	"github.com/b2ygroup/conecta-pro/internal/application/categories"
	"github.com/b2ygroup/conecta-pro/internal/application/enhance"
	"github.com/b2ygroup/conecta-pro/internal/application/search"
	"github.com/b2ygroup/conecta-pro/internal/domain"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

type Searcher interface {
	Search(ctx context.Context, f search.Filters) ([]domain.Listing, error)
}

type Handlers struct {
	Search Searcher
}

// Anuncios GET /api/anuncios?setores=a,b&valor_max=N&localidades=x,y
func (h *Handlers) Anuncios(c *fiber.Ctx) error {
	filters, err := search.ParseFilters(c.Query("setores"), c.Query("valor_max"), c.Query("localidades"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Parâmetro valor_max inválido."})
	}
	listings, err := h.Search.Search(c.UserContext(), filters)
	if err != nil {
		log.Error().Err(err).Msg("anuncios: search failed")
		c.Locals("error_message", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": search.ErrRetrieval.Error()})
	}
	return c.JSON(listings)
}

// Categorias GET /api/categorias
func (h *Handlers) Categorias(c *fiber.Ctx) error {
	return c.JSON(categories.All())
}

// GenerateDescription POST /api/generate-description
func (h *Handlers) GenerateDescription(c *fiber.Ctx) error {
	var in enhance.Input
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Corpo da requisição inválido."})
	}
	res, err := enhance.Enhance(in)
	if errors.Is(err, enhance.ErrMissingFields) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"message": "Título e descrição são obrigatórios."})
	}
	if err != nil {
		c.Locals("error_message", err.Error())
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": "Erro ao otimizar anúncio."})
	}
	return c.JSON(res)
}
