package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"relaybot/internal/catalog"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	catalog *catalog.Catalog
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(cat *catalog.Catalog) *HealthHandler {
	return &HealthHandler{catalog: cat}
}

// Handle responds with server health status
func (h *HealthHandler) Handle(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"models":    h.catalog.Len(),
		"timestamp": time.Now().Format(time.RFC3339),
	})
}
