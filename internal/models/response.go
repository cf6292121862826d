package models

import (
	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/analytics/anomaly"
	"github.com/stocksight/stocksight/internal/analytics/engine"
)

// HealthResponse represents health check response
type HealthResponse struct {
	Status    string                `json:"status"`
	Timestamp string                `json:"timestamp"`
	Version   string                `json:"version"`
	Uptime    string                `json:"uptime"` // ISO-8601 duration
	Insights  InsightDeliveryStatus `json:"insights"`
}

// InsightDeliveryStatus describes where generated insights go
type InsightDeliveryStatus struct {
	Enabled  bool   `json:"enabled"`
	Delivery string `json:"delivery,omitempty"` // stream or batch
	Subjects string `json:"subjects,omitempty"` // wildcard covering every insight subject
}

// ConfigResponse lists the server defaults and the values a request may use
type ConfigResponse struct {
	Defaults           analytics.Config        `json:"defaults"`
	TimeWindows        []analytics.TimeWindow  `json:"time_windows"`
	Sensitivities      []analytics.Sensitivity `json:"sensitivities"`
	MinForecastPeriods int                     `json:"min_forecast_periods"`
	MaxForecastPeriods int                     `json:"max_forecast_periods"`
	Compression        []string                `json:"compression"`
	DefaultCompression string                  `json:"default_compression"`
}

// AnalyzeResponse represents analyze response
type AnalyzeResponse struct {
	Result         *engine.Result           `json:"result"`
	Config         analytics.Config         `json:"config"`
	AnomalySummary map[anomaly.Severity]int `json:"anomaly_summary"`
	Observations   int                      `json:"observations"`
	GeneratedAt    string                   `json:"generated_at"`
}

// ExportDocument is the flat document offered for download
type ExportDocument struct {
	ExportedAt string           `json:"exportedAt"`
	Config     analytics.Config `json:"config"`
	Bundle     *engine.Result   `json:"bundle"`
}

// ErrorResponse represents error response
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// ErrorDetail represents error details
type ErrorDetail struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Path    string                 `json:"path,omitempty"`
	Details map[string]interface{} `json:"details,omitempty"`
}
