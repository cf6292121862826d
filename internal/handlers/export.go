package handlers

import (
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/stocksight/stocksight/internal/compression"
)

// Export analyzes the posted observations and returns the export document as a download.
// The compression query parameter overrides the configured default.
// POST /v1/analytics/export?compression=snappy
func (h *Handler) Export(c *fiber.Ctx) error {
	req, errResp := parseAnalyzeRequest(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}

	result, err := h.exportService.Execute(c.UserContext(), req, c.Query("compression"))
	if err != nil {
		return err
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, result.Filename))
	c.Set(fiber.HeaderContentType, result.Compression.ContentType())
	if result.Compression != compression.None {
		c.Set(fiber.HeaderContentEncoding, result.Compression.String())
	}

	return c.Send(result.Data)
}
