package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/compression"
	"github.com/stocksight/stocksight/internal/logging"
	"github.com/stocksight/stocksight/internal/models"
)

// ExportResult is an encoded export document ready to be written out
type ExportResult struct {
	Document    *models.ExportDocument
	Data        []byte
	Compression compression.Algorithm
	Filename    string
}

// ExportService renders analyses as downloadable documents
type ExportService struct {
	logger             *logging.Logger
	analytics          *AnalyticsService
	defaultCompression string
}

// NewExportService creates a new ExportService
func NewExportService(logger *logging.Logger, analyticsService *AnalyticsService, defaultCompression string) *ExportService {
	return &ExportService{
		logger:             logger,
		analytics:          analyticsService,
		defaultCompression: defaultCompression,
	}
}

// Execute analyzes the request and encodes the export document.
// An empty compressionName selects the configured default.
func (s *ExportService) Execute(ctx context.Context, req *models.AnalyzeRequest, compressionName string) (*ExportResult, error) {
	startTime := time.Now()

	if compressionName == "" {
		compressionName = s.defaultCompression
	}
	compressor, err := compression.ForName(compressionName)
	if err != nil {
		return nil, NewServiceError(CodeInvalidArgument, err.Error())
	}

	analyzed, err := s.analytics.Execute(ctx, req)
	if err != nil {
		return nil, err
	}

	doc := NewExportDocument(analyzed)
	data, err := Encode(doc, compressor)
	if err != nil {
		s.logger.Error("Failed to encode export", "error", err, "compression", compressor.Algorithm().String())
		return nil, NewServiceErrorWithDetails(CodeExportFailed, "Failed to encode export document",
			map[string]interface{}{"error": err.Error()})
	}

	s.logger.Info("Export completed",
		"bytes", len(data),
		"compression", compressor.Algorithm().String(),
		"latency_ms", time.Since(startTime).Milliseconds())

	return &ExportResult{
		Document:    doc,
		Data:        data,
		Compression: compressor.Algorithm(),
		Filename:    ExportFilename(analyzed.GeneratedAt, compressor.Algorithm()),
	}, nil
}

// NewExportDocument wraps an analysis in the flat export layout
func NewExportDocument(analyzed *AnalyzeResult) *models.ExportDocument {
	return &models.ExportDocument{
		ExportedAt: analytics.FormatTimestamp(analyzed.GeneratedAt),
		Config:     analyzed.Config,
		Bundle:     analyzed.Result,
	}
}

// Encode renders doc as indented JSON and compresses it
func Encode(doc *models.ExportDocument, compressor compression.Compressor) ([]byte, error) {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return compressor.Compress(data)
}

// ExportFilename names the download after the generation time
func ExportFilename(generatedAt time.Time, algo compression.Algorithm) string {
	return "stocksight-analytics-" + generatedAt.UTC().Format("20060102-150405") + ".json" + algo.Extension()
}
