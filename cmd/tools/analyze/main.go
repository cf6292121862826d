package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/analytics/engine"
	"github.com/stocksight/stocksight/internal/compression"
	"github.com/stocksight/stocksight/internal/config"
	"github.com/stocksight/stocksight/internal/logging"
	"github.com/stocksight/stocksight/internal/models"
	"github.com/stocksight/stocksight/internal/services"
)

func main() {
	input := flag.String("input", "-", "JSON array of observations (file path, - for stdin)")
	output := flag.String("output", "-", "Export document destination (file path, - for stdout)")
	window := flag.String("window", "30d", "Time window: 7d, 30d, 90d, 1y or P7D, P30D, P90D, P1Y")
	sensitivity := flag.String("sensitivity", "medium", "Anomaly sensitivity: low, medium, high")
	periods := flag.Int("periods", 7, "Forecast periods (1-30)")
	noForecast := flag.Bool("no-forecast", false, "Disable forecasting")
	noAnomalies := flag.Bool("no-anomalies", false, "Disable anomaly detection")
	seed := flag.Uint64("seed", engine.DefaultSeed, "Seed for forecast noise")
	now := flag.String("now", "", "Evaluate as of this ISO-8601 instant (default: current time)")
	compress := flag.String("compress", "none", "Output compression: none, snappy")
	verbose := flag.Bool("v", false, "Log progress to stderr")
	flag.Parse()

	level := "warn"
	if *verbose {
		level = "debug"
	}
	logger, err := logging.NewFromConfig(config.LoggingConfig{Level: level, Format: "console", OutputPath: "stderr"})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}

	observations, err := readObservations(*input)
	if err != nil {
		logger.Fatal("Failed to read observations", "error", err, "input", *input)
	}

	opts := []engine.Option{engine.WithSeed(*seed)}
	if *now != "" {
		at, err := analytics.ParseTimestamp(*now)
		if err != nil {
			logger.Fatal("Invalid -now", "error", err)
		}
		opts = append(opts, engine.WithClock(func() time.Time { return at }))
	}

	defaults, err := analytics.NewConfig(*window, *sensitivity, !*noForecast, !*noAnomalies, *periods)
	if err != nil {
		logger.Fatal("Invalid analytics flags", "error", err)
	}

	analyticsService := services.NewAnalyticsService(logger, engine.New(opts...), defaults, nil, config.InsightsConfig{})
	exportService := services.NewExportService(logger, analyticsService, compression.None.String())

	result, err := exportService.Execute(context.Background(), &models.AnalyzeRequest{Observations: observations}, *compress)
	if err != nil {
		logger.Fatal("Analysis failed", "error", err)
	}

	if err := writeOutput(*output, result.Data); err != nil {
		logger.Fatal("Failed to write export", "error", err, "output", *output)
	}

	bundle := result.Document.Bundle
	logger.Info("Export written",
		"output", *output,
		"bytes", len(result.Data),
		"trend", string(bundle.Trend.Direction),
		"anomalies", len(bundle.Anomalies),
		"insights", len(bundle.Insights))
}

func readObservations(path string) ([]analytics.Observation, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer func() { _ = f.Close() }()
		r = f
	}

	var observations []analytics.Observation
	if err := json.NewDecoder(r).Decode(&observations); err != nil {
		return nil, fmt.Errorf("decode observations: %w", err)
	}
	return observations, nil
}

func writeOutput(path string, data []byte) error {
	if path == "-" {
		_, err := os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
