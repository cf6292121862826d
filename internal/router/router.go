package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/stocksight/stocksight/internal/config"
	"github.com/stocksight/stocksight/internal/handlers"
	"github.com/stocksight/stocksight/internal/logging"
	"github.com/stocksight/stocksight/internal/middleware"
	"github.com/stocksight/stocksight/internal/services"
	"github.com/stocksight/stocksight/internal/utils"
)

// Setup configures all routes and middlewares
func Setup(app *fiber.App, logger *logging.Logger, analyticsService *services.AnalyticsService, cfg config.Config) *handlers.Handler {
	h := handlers.New(logger, analyticsService, cfg.Export.ExportCompression())

	// Global middlewares
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:  "*",
		AllowMethods:  "GET,POST,OPTIONS",
		AllowHeaders:  "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Request-ID",
		ExposeHeaders: "Content-Disposition,Content-Encoding,X-Request-ID",
	}))
	app.Use(logging.FiberMiddleware(logger, logging.DefaultMiddlewareConfig()))

	// Health check (no auth required)
	app.Get("/health", h.Health)

	// API v1 routes (protected by API key)
	v1 := app.Group("/v1", middleware.APIKeyAuth(logger, cfg.Auth))

	v1.Get("/analytics/config", h.GetConfig)
	v1.Post("/analytics/analyze", h.Analyze)
	v1.Post("/analytics/export", h.Export)

	// 404 handler
	app.Use(h.NotFound)

	return h
}

// New creates a new Fiber app with configuration
func New(logger *logging.Logger, analyticsService *services.AnalyticsService, cfg config.Config) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "Stocksight Analytics",
		DisableStartupMessage: true,
		BodyLimit:             utils.MaxRequestBodySize,
		ReadTimeout:           utils.DefaultRequestTimeout,
		WriteTimeout:          utils.DefaultRequestTimeout,
		ErrorHandler:          middleware.ErrorHandler(logger),
	})

	Setup(app, logger, analyticsService, cfg)

	return app
}
