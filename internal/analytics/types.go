// Package analytics provides common types and utilities for time-series analytics
// including trend detection, anomaly detection, forecasting and insights.
package analytics

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/relvacode/iso8601"
)

var (
	// ErrInvalidArgument is returned for non-positive window sizes, out of range
	// forecast periods and unrecognized configuration values.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrInsufficientData is returned only where no sensible statistical result exists.
	ErrInsufficientData = errors.New("insufficient data")
)

// CategoryForecast marks observations produced by the forecaster.
const CategoryForecast = "forecast"

// Observation is a single timestamped measurement supplied by an inventory or
// movement data source.
type Observation struct {
	Timestamp string                 `json:"timestamp"`
	Value     float64                `json:"value"`
	Category  string                 `json:"category,omitempty"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
}

// Time parses the ISO-8601 timestamp. Date-only values are read as midnight UTC.
func (o Observation) Time() (time.Time, error) {
	return ParseTimestamp(o.Timestamp)
}

// ParseTimestamp parses an ISO-8601 date or date-time string.
func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("%w: empty timestamp", ErrInvalidArgument)
	}
	if !strings.ContainsAny(s, "tT") {
		s += "T00:00:00Z"
	}
	t, err := iso8601.ParseString(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: timestamp %q: %v", ErrInvalidArgument, s, err)
	}
	return t, nil
}

// FormatTimestamp renders t the way derived entities carry their timestamps.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// TimeSeriesPoint represents a single time-series data point with time and value.
// This is the common type used across all analytics packages.
type TimeSeriesPoint struct {
	Time  time.Time
	Value float64
}

// TimeSeriesData represents a collection of time-series data points
type TimeSeriesData []TimeSeriesPoint

// FromObservations converts observations to a series, failing on the first
// unparseable timestamp.
func FromObservations(observations []Observation) (TimeSeriesData, error) {
	ts := make(TimeSeriesData, len(observations))
	for i, o := range observations {
		t, err := o.Time()
		if err != nil {
			return nil, fmt.Errorf("observation %d: %w", i, err)
		}
		if math.IsNaN(o.Value) || math.IsInf(o.Value, 0) {
			return nil, fmt.Errorf("%w: observation %d has non-finite value", ErrInvalidArgument, i)
		}
		ts[i] = TimeSeriesPoint{Time: t, Value: o.Value}
	}
	return ts, nil
}

// Values extracts just the values from the time series
func (ts TimeSeriesData) Values() []float64 {
	values := make([]float64, len(ts))
	for i, p := range ts {
		values[i] = p.Value
	}
	return values
}

// Between returns the points with from <= Time <= to, preserving order.
func (ts TimeSeriesData) Between(from, to time.Time) TimeSeriesData {
	out := make(TimeSeriesData, 0, len(ts))
	for _, p := range ts {
		if p.Time.Before(from) || p.Time.After(to) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Len returns the number of data points
func (ts TimeSeriesData) Len() int {
	return len(ts)
}
