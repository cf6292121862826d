package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/analytics/engine"
	"github.com/stocksight/stocksight/internal/analytics/insight"
	"github.com/stocksight/stocksight/internal/config"
	"github.com/stocksight/stocksight/internal/logging"
	"github.com/stocksight/stocksight/internal/models"
	"github.com/stocksight/stocksight/internal/queue"
	"github.com/stocksight/stocksight/internal/utils"
)

// AnalyzeResult is the outcome of one analysis together with the config it ran under
type AnalyzeResult struct {
	Result      *engine.Result
	Config      analytics.Config
	GeneratedAt time.Time
}

// AnalyticsService runs analyses and forwards generated insights to the queue
type AnalyticsService struct {
	logger    *logging.Logger
	engine    *engine.Engine
	defaults  analytics.Config
	publisher queue.Publisher
	insights  config.InsightsConfig
}

// NewAnalyticsService creates a new AnalyticsService.
// publisher may be nil, in which case insights are only returned.
func NewAnalyticsService(
	logger *logging.Logger,
	eng *engine.Engine,
	defaults analytics.Config,
	publisher queue.Publisher,
	insights config.InsightsConfig,
) *AnalyticsService {
	return &AnalyticsService{
		logger:    logger,
		engine:    eng,
		defaults:  defaults,
		publisher: publisher,
		insights:  insights,
	}
}

// Defaults returns the config applied when a request carries none
func (s *AnalyticsService) Defaults() analytics.Config {
	return s.defaults
}

// ResolveConfig overlays the request overrides on the defaults and validates the result
func (s *AnalyticsService) ResolveConfig(override *models.AnalyticsConfigRequest) (analytics.Config, error) {
	cfg := s.defaults
	if override == nil {
		return cfg, nil
	}

	if override.TimeWindow != nil {
		w, err := analytics.ParseTimeWindow(*override.TimeWindow)
		if err != nil {
			return analytics.Config{}, fromAnalyticsError(err)
		}
		cfg.TimeWindow = w
	}
	if override.Sensitivity != nil {
		level, err := analytics.ParseSensitivity(*override.Sensitivity)
		if err != nil {
			return analytics.Config{}, fromAnalyticsError(err)
		}
		cfg.Sensitivity = level
	}
	if override.EnableForecasting != nil {
		cfg.EnableForecasting = *override.EnableForecasting
	}
	if override.EnableAnomalyDetection != nil {
		cfg.EnableAnomalyDetection = *override.EnableAnomalyDetection
	}
	if override.ForecastPeriods != nil {
		cfg.ForecastPeriods = *override.ForecastPeriods
	}

	if err := cfg.Validate(); err != nil {
		return analytics.Config{}, fromAnalyticsError(err)
	}
	return cfg, nil
}

// Execute validates the request, runs the engine and publishes the insights
func (s *AnalyticsService) Execute(ctx context.Context, req *models.AnalyzeRequest) (*AnalyzeResult, error) {
	startTime := time.Now()

	if req == nil {
		return nil, NewServiceError(CodeInvalidArgument, "request body is required")
	}
	if len(req.Observations) > utils.MaxObservationsPerRequest {
		return nil, NewServiceErrorWithDetails(CodeInvalidArgument,
			fmt.Sprintf("too many observations (max %d)", utils.MaxObservationsPerRequest),
			map[string]interface{}{"count": len(req.Observations)})
	}

	cfg, err := s.ResolveConfig(req.Config)
	if err != nil {
		return nil, err
	}

	result, err := s.engine.Analyze(req.Observations, cfg, s.insightSink(ctx))
	if err != nil {
		svcErr := fromAnalyticsError(err)
		s.logger.Warn("Analysis rejected",
			"code", svcErr.Code,
			"error", err,
			"observations", len(req.Observations))
		return nil, svcErr
	}

	if s.publishing() && s.insights.Batched() {
		s.publishBatch(ctx, result.Insights)
	}

	s.logger.Info("Analysis completed",
		"observations", len(req.Observations),
		"windowed", result.Metrics.Count,
		"time_window", string(cfg.TimeWindow),
		"sensitivity", string(cfg.Sensitivity),
		"trend", string(result.Trend.Direction),
		"anomalies", len(result.Anomalies),
		"forecast_points", len(result.Forecast),
		"insights", len(result.Insights),
		"latency_ms", time.Since(startTime).Milliseconds())

	return &AnalyzeResult{
		Result:      result,
		Config:      cfg,
		GeneratedAt: s.engine.Now(),
	}, nil
}

// InsightDelivery reports whether insights leave the process and how
func (s *AnalyticsService) InsightDelivery() models.InsightDeliveryStatus {
	if !s.publishing() {
		return models.InsightDeliveryStatus{}
	}

	delivery := config.DeliveryStream
	if s.insights.Batched() {
		delivery = config.DeliveryBatch
	}
	return models.InsightDeliveryStatus{
		Enabled:  true,
		Delivery: delivery,
		Subjects: s.insights.InsightWildcard(),
	}
}

func (s *AnalyticsService) publishing() bool {
	return s.publisher != nil && s.insights.Publish
}

// insightSink returns nil unless insights are streamed to the queue.
// Delivery failures are logged and never surface to the caller.
func (s *AnalyticsService) insightSink(ctx context.Context) engine.InsightSink {
	if !s.publishing() || s.insights.Batched() {
		return nil
	}

	return func(in insight.Insight) {
		subject := s.insights.InsightSubject(string(in.Importance))

		data, err := json.Marshal(in)
		if err != nil {
			s.logger.Error("Failed to encode insight", "error", err, "insight_id", in.ID)
			return
		}

		pubCtx, cancel := context.WithTimeout(ctx, utils.PublishTimeout)
		defer cancel()

		if err := s.publisher.Publish(pubCtx, subject, data); err != nil {
			s.logger.Warn("Failed to publish insight",
				"error", err,
				"subject", subject,
				"insight_id", in.ID)
			return
		}

		s.logger.Debug("Insight published", "subject", subject, "insight_id", in.ID, "type", string(in.Type))
	}
}

// publishBatch sends every insight of one analysis in a single batch.
// A partial batch is logged; the analysis result is returned regardless.
func (s *AnalyticsService) publishBatch(ctx context.Context, insights []insight.Insight) {
	if len(insights) == 0 {
		return
	}

	messages := make([]queue.BatchMessage, 0, len(insights))
	for _, in := range insights {
		data, err := json.Marshal(in)
		if err != nil {
			s.logger.Error("Failed to encode insight", "error", err, "insight_id", in.ID)
			continue
		}
		messages = append(messages, queue.BatchMessage{
			Subject: s.insights.InsightSubject(string(in.Importance)),
			Data:    data,
		})
	}

	pubCtx, cancel := context.WithTimeout(ctx, utils.PublishTimeout)
	defer cancel()

	sent, err := s.publisher.PublishBatch(pubCtx, messages)
	if err != nil || sent < len(messages) {
		s.logger.Warn("Insight batch partially published",
			"error", err,
			"sent", sent,
			"total", len(messages))
		return
	}

	s.logger.Debug("Insight batch published", "count", sent)
}
