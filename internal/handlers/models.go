package handlers

import (
	"github.com/gofiber/fiber/v2"

	"relaybot/internal/catalog"
)

// ModelsHandler serves the model catalog
type ModelsHandler struct {
	catalog *catalog.Catalog
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(cat *catalog.Catalog) *ModelsHandler {
	return &ModelsHandler{catalog: cat}
}

// List returns all models grouped by provider
// GET /api/models
func (h *ModelsHandler) List(c *fiber.Ctx) error {
	grouped := make(fiber.Map)
	for _, provider := range h.catalog.Providers() {
		grouped[provider] = h.catalog.ListByProvider(provider)
	}

	return c.JSON(fiber.Map{
		"total":     h.catalog.Len(),
		"providers": grouped,
	})
}

// ListByProvider returns the models of one provider
// GET /api/models/:provider
func (h *ModelsHandler) ListByProvider(c *fiber.Ctx) error {
	provider := c.Params("provider")

	providerModels := h.catalog.ListByProvider(provider)
	if len(providerModels) == 0 {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error":     "Provider not found",
			"providers": h.catalog.Providers(),
		})
	}

	return c.JSON(fiber.Map{
		"provider": provider,
		"models":   providerModels,
	})
}
