package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/analytics/anomaly"
	"github.com/stocksight/stocksight/internal/models"
)

// GetConfig returns the analytics defaults and the accepted values
// GET /v1/analytics/config
func (h *Handler) GetConfig(c *fiber.Ctx) error {
	return c.JSON(models.ConfigResponse{
		Defaults:           h.analyticsService.Defaults(),
		TimeWindows:        analytics.TimeWindows,
		Sensitivities:      analytics.Sensitivities,
		MinForecastPeriods: analytics.MinForecastPeriods,
		MaxForecastPeriods: analytics.MaxForecastPeriods,
		Compression:        []string{"none", "snappy"},
		DefaultCompression: h.defaultCompression,
	})
}

// Analyze runs the analytics pipeline over the posted observations
// POST /v1/analytics/analyze
func (h *Handler) Analyze(c *fiber.Ctx) error {
	req, errResp := parseAnalyzeRequest(c)
	if errResp != nil {
		return c.Status(fiber.StatusBadRequest).JSON(errResp)
	}

	result, err := h.analyticsService.Execute(c.UserContext(), req)
	if err != nil {
		return err
	}

	return c.JSON(models.AnalyzeResponse{
		Result:         result.Result,
		Config:         result.Config,
		AnomalySummary: anomaly.CountBySeverity(result.Result.Anomalies),
		Observations:   len(req.Observations),
		GeneratedAt:    analytics.FormatTimestamp(result.GeneratedAt),
	})
}

func parseAnalyzeRequest(c *fiber.Ctx) (*models.AnalyzeRequest, *models.ErrorResponse) {
	var req models.AnalyzeRequest
	if err := c.BodyParser(&req); err != nil {
		return nil, &models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_JSON",
				Message: "Failed to parse JSON body",
				Details: map[string]interface{}{"error": err.Error()},
			},
		}
	}

	if req.Observations == nil {
		return nil, &models.ErrorResponse{
			Error: models.ErrorDetail{
				Code:    "INVALID_REQUEST",
				Message: "observations is required",
			},
		}
	}

	return &req, nil
}
