// Package anomaly flags points whose deviation from a rolling expectation
// exceeds a sensitivity-dependent multiple of the window's standard deviation.
package anomaly

import (
	"fmt"
	"math"
	"strconv"

	"github.com/stocksight/stocksight/internal/analytics"
)

// AnomalyType represents the type of anomaly detected
type AnomalyType string

const (
	AnomalyTypeSpike AnomalyType = "spike" // Sudden increase
	AnomalyTypeDrop  AnomalyType = "drop"  // Sudden decrease
)

// Severity grades how far past the threshold a point lies
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

const (
	// MovingAverageWindow is the width of the rolling expectation.
	MovingAverageWindow = 7
	// WarmupPoints is the number of leading points never flagged.
	WarmupPoints = 7
	// MinDataPoints is the shortest window that supports detection.
	MinDataPoints = 10

	maxConfidence = 95.0
)

// Anomaly represents a detected anomaly in time-series data
type Anomaly struct {
	ID            string      `json:"id"`
	Timestamp     string      `json:"timestamp"`
	Value         float64     `json:"value"`
	ExpectedValue float64     `json:"expectedValue"`
	Severity      Severity    `json:"severity"`
	Type          AnomalyType `json:"type"`
	Description   string      `json:"description"`
	Confidence    float64     `json:"confidence"`
	Impact        string      `json:"impact"`
}

// DataPoint is an alias to the shared analytics.TimeSeriesPoint type.
type DataPoint = analytics.TimeSeriesPoint

// Detect finds anomalies in data under the given sensitivity. Windows shorter
// than MinDataPoints yield no anomalies.
func Detect(data []DataPoint, sensitivity analytics.Sensitivity) []Anomaly {
	if len(data) < MinDataPoints {
		return nil
	}

	values := analytics.TimeSeriesData(data).Values()
	movingAvgs, err := analytics.MovingAverage(values, MovingAverageWindow)
	if err != nil {
		return nil
	}
	stdDev, err := analytics.StandardDeviation(values)
	if err != nil {
		return nil
	}

	threshold := sensitivity.Multiplier() * stdDev
	// A flat window has no deviation to speak of.
	if threshold == 0 {
		return nil
	}

	var results []Anomaly
	for i := WarmupPoints; i < len(data); i++ {
		value := values[i]
		expected := movingAvgs[i]
		deviation := math.Abs(value - expected)
		if deviation <= threshold {
			continue
		}

		anomalyType := AnomalyTypeDrop
		if value > expected {
			anomalyType = AnomalyTypeSpike
		}
		severity := classify(deviation, threshold)
		timestamp := analytics.FormatTimestamp(data[i].Time)

		results = append(results, Anomaly{
			ID:            analytics.DeriveID("anomaly", strconv.Itoa(i), timestamp, strconv.FormatFloat(value, 'g', -1, 64)),
			Timestamp:     timestamp,
			Value:         value,
			ExpectedValue: expected,
			Severity:      severity,
			Type:          anomalyType,
			Description:   describe(anomalyType, value, expected),
			Confidence:    math.Min(maxConfidence, deviation/threshold*50),
			Impact:        impact(anomalyType, severity),
		})
	}

	return results
}

// classify maps the deviation/threshold ratio to a severity
func classify(deviation, threshold float64) Severity {
	switch {
	case deviation > 2*threshold:
		return SeverityCritical
	case deviation > 1.5*threshold:
		return SeverityHigh
	case deviation > 1.2*threshold:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

func describe(anomalyType AnomalyType, value, expected float64) string {
	label := "Spike"
	if anomalyType == AnomalyTypeDrop {
		label = "Drop"
	}
	if expected == 0 {
		return fmt.Sprintf("%s detected: value %.2f with undefined deviation (expected value is 0)", label, value)
	}
	pct := (value - expected) / expected * 100
	return fmt.Sprintf("%s detected: value %.2f is %+.1f%% from expected %.2f", label, value, pct, expected)
}

func impact(anomalyType AnomalyType, severity Severity) string {
	if anomalyType == AnomalyTypeDrop {
		switch severity {
		case SeverityCritical, SeverityHigh:
			return "High risk of stock-out; replenishment may be required immediately"
		default:
			return "Lower than expected level; monitor for emerging shortages"
		}
	}
	switch severity {
	case SeverityCritical, SeverityHigh:
		return "Unusual surge; verify demand or check for over-stocking and data entry errors"
	default:
		return "Higher than expected level; may indicate increased demand"
	}
}

// CountBySeverity tallies anomalies per severity.
func CountBySeverity(anomalies []Anomaly) map[Severity]int {
	counts := make(map[Severity]int, 4)
	for _, a := range anomalies {
		counts[a.Severity]++
	}
	return counts
}

// Filter returns the anomalies with the given severity, preserving order.
func Filter(anomalies []Anomaly, severity Severity) []Anomaly {
	var out []Anomaly
	for _, a := range anomalies {
		if a.Severity == severity {
			out = append(out, a)
		}
	}
	return out
}
