package models

import "github.com/stocksight/stocksight/internal/analytics"

// AnalyticsConfigRequest overrides the server's analytics defaults.
// Omitted fields keep their default value.
type AnalyticsConfigRequest struct {
	TimeWindow             *string `json:"timeWindow,omitempty"`
	Sensitivity            *string `json:"sensitivity,omitempty"`
	EnableForecasting      *bool   `json:"enableForecasting,omitempty"`
	EnableAnomalyDetection *bool   `json:"enableAnomalyDetection,omitempty"`
	ForecastPeriods        *int    `json:"forecastPeriods,omitempty"`
}

// AnalyzeRequest represents the body of analyze and export requests
type AnalyzeRequest struct {
	Observations []analytics.Observation `json:"observations" validate:"required"`
	Config       *AnalyticsConfigRequest `json:"config,omitempty"`
}
