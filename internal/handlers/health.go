package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/sosodev/duration"
	"github.com/stocksight/stocksight/internal/models"
)

// Version is reported by the health endpoint and overridden at link time
var Version = "dev"

// Health reports liveness, build version and where insights are delivered.
// It never touches the broker; a configured publisher is reported as enabled.
func (h *Handler) Health(c *fiber.Ctx) error {
	uptime := time.Since(h.startedAt).Truncate(time.Second)

	return c.JSON(models.HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   Version,
		Uptime:    duration.Format(uptime),
		Insights:  h.analyticsService.InsightDelivery(),
	})
}

// NotFound handles 404 errors
func (h *Handler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    "NOT_FOUND",
			Message: "Route not found",
			Path:    c.Path(),
		},
	})
}
