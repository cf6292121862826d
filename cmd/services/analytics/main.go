package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/stocksight/stocksight/internal/analytics/engine"
	"github.com/stocksight/stocksight/internal/config"
	"github.com/stocksight/stocksight/internal/handlers"
	"github.com/stocksight/stocksight/internal/logging"
	"github.com/stocksight/stocksight/internal/queue"
	"github.com/stocksight/stocksight/internal/router"
	"github.com/stocksight/stocksight/internal/services"
	"github.com/stocksight/stocksight/internal/utils"
)

var (
	Version   = "dev"     // Injected via ldflags during build
	GitCommit = "unknown" // Injected via ldflags during build
	BuildTime = "unknown" // Injected via ldflags during build
)

// insightStream is the JetStream stream that stores published insights
const insightStream = "STOCKSIGHT_INSIGHTS"

func main() {
	configPath := flag.String("config", "", "Path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.NewFromConfig(cfg.Logging)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logging.SetGlobal(logger)
	handlers.Version = Version
	logger.Info("Analytics service starting...",
		"version", Version, "commit", GitCommit, "build time", BuildTime)

	defaults, err := cfg.Analytics.ToEngineConfig()
	if err != nil {
		logger.Fatal("Invalid analytics defaults", "error", err)
	}

	var publisher queue.Publisher
	if cfg.Insights.Publish {
		logger.Info("Connecting to Queue", "type", cfg.Queue.Type, "url", cfg.Queue.URL)
		publisher, err = queue.NewPublisher(cfg.Queue)
		if err != nil {
			logger.Fatal("Failed to connect to Queue", "error", err)
		}
		defer func() { _ = publisher.Close() }()

		if provisioner, ok := publisher.(queue.StreamProvisioner); ok {
			if err := provisioner.EnsureStream(insightStream, []string{cfg.Insights.InsightWildcard()}); err != nil {
				logger.Fatal("Failed to provision insight stream", "error", err, "stream", insightStream)
			}
		}
		logger.Info("Insight publishing enabled", "subjects", cfg.Insights.InsightWildcard())
	} else {
		logger.Info("Insight publishing disabled")
	}

	if cfg.Auth.Enabled {
		logger.Info("API key authentication enabled", "num_keys", len(cfg.Auth.APIKeys))
	} else {
		logger.Warn("API key authentication DISABLED - all requests will be allowed")
	}

	eng := engine.New(engine.WithSeed(cfg.Analytics.ForecastSeed))
	analyticsService := services.NewAnalyticsService(logger, eng, defaults, publisher, cfg.Insights)
	app := router.New(logger, analyticsService, *cfg)

	go func() {
		addr := cfg.GetServerAddress()
		logger.Info("Server listening", "address", addr)
		if err := app.Listen(addr); err != nil {
			logger.Fatal("Failed to start server", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), utils.ShutdownTimeout)
	defer shutdownCancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	logger.Info("Server exited")
}
