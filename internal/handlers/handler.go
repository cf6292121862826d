package handlers

import (
	"time"

	"github.com/stocksight/stocksight/internal/logging"
	"github.com/stocksight/stocksight/internal/services"
)

// Handler contains all HTTP handlers
type Handler struct {
	logger             *logging.Logger
	analyticsService   *services.AnalyticsService
	exportService      *services.ExportService
	defaultCompression string
	startedAt          time.Time
}

// New creates a new handler instance
func New(logger *logging.Logger, analyticsService *services.AnalyticsService, defaultCompression string) *Handler {
	return &Handler{
		logger:             logger,
		analyticsService:   analyticsService,
		exportService:      services.NewExportService(logger, analyticsService, defaultCompression),
		defaultCompression: defaultCompression,
		startedAt:          time.Now(),
	}
}
