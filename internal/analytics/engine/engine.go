// Package engine is the single entry point into the analytics pipeline. It
// validates input, restricts observations to the configured window and runs
// trend, anomaly, forecast and insight generation in order.
package engine

import (
	"fmt"
	"time"

	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/analytics/anomaly"
	"github.com/stocksight/stocksight/internal/analytics/forecast"
	"github.com/stocksight/stocksight/internal/analytics/insight"
	"github.com/stocksight/stocksight/internal/analytics/trend"
)

// DefaultSeed seeds the forecast noise when no seed or source is configured.
const DefaultSeed uint64 = 42

var errOverflow = fmt.Errorf("%w: value range overflows float64", analytics.ErrInvalidArgument)

// InsightSink receives each generated insight synchronously, in order.
type InsightSink func(insight.Insight)

// Metrics summarizes the windowed values.
type Metrics struct {
	Count   int     `json:"count"`
	Total   float64 `json:"total"`
	Average float64 `json:"average"`
	Min     float64 `json:"min"`
	Max     float64 `json:"max"`
	// Variance holds the population standard deviation. The key name is kept
	// for consumers that already read it.
	Variance float64 `json:"variance"`
}

// Result is the bundle returned from one analysis.
type Result struct {
	Trend     trend.Analysis          `json:"trend"`
	Anomalies []anomaly.Anomaly       `json:"anomalies"`
	Forecast  []analytics.Observation `json:"forecast"`
	Model     *forecast.ModelInfo     `json:"forecastModel,omitempty"`
	Insights  []insight.Insight       `json:"insights"`
	Metrics   Metrics                 `json:"metrics"`
}

// Engine runs analyses. It holds no per-call state and is safe for concurrent use.
type Engine struct {
	clock    func() time.Time
	newNoise func() forecast.NoiseSource
}

// Option configures an Engine
type Option func(*Engine)

// WithClock sets the clock used for window filtering and insight timestamps.
func WithClock(clock func() time.Time) Option {
	return func(e *Engine) {
		if clock != nil {
			e.clock = clock
		}
	}
}

// WithSeed makes every call draw forecast noise from a PCG source seeded with seed.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.newNoise = func() forecast.NoiseSource { return forecast.NewSeededSource(seed) }
	}
}

// WithNoiseSource sets the factory that builds a noise source for each call.
func WithNoiseSource(factory func() forecast.NoiseSource) Option {
	return func(e *Engine) {
		if factory != nil {
			e.newNoise = factory
		}
	}
}

// New creates an Engine
func New(opts ...Option) *Engine {
	e := &Engine{
		clock: time.Now,
	}
	WithSeed(DefaultSeed)(e)
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Now returns the engine clock's current time.
func (e *Engine) Now() time.Time {
	return e.clock()
}

// Analyze runs the full pipeline over observations. sink may be nil.
func (e *Engine) Analyze(observations []analytics.Observation, cfg analytics.Config, sink InsightSink) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	series, err := analytics.FromObservations(observations)
	if err != nil {
		return nil, err
	}

	now := e.clock()
	windowed := series.Between(cfg.TimeWindow.Start(now), now)
	if windowed.Len() == 0 {
		return emptyResult(), nil
	}

	values := windowed.Values()
	spread, _ := analytics.StandardDeviation(values)
	if !analytics.Finite(analytics.Sum(values), spread) {
		return nil, errOverflow
	}

	result := emptyResult()
	result.Trend = trend.Detect(values)

	if cfg.EnableAnomalyDetection {
		if found := anomaly.Detect(windowed, cfg.Sensitivity); found != nil {
			result.Anomalies = found
		}
	}

	if cfg.EnableForecasting {
		fc, err := forecast.Forecast(windowed, cfg.ForecastPeriods, e.newNoise())
		if err != nil {
			return nil, fmt.Errorf("forecast: %w", err)
		}
		result.Forecast = fc.Points
		result.Model = fc.Model
	}

	result.Insights = insight.Generate(windowed, result.Anomalies, result.Trend, cfg, now)
	result.Metrics = computeMetrics(values)

	if !resultFinite(result) {
		return nil, errOverflow
	}

	if sink != nil {
		for _, in := range result.Insights {
			sink(in)
		}
	}

	return result, nil
}

func emptyResult() *Result {
	return &Result{
		Trend:     trend.Degenerate(),
		Anomalies: []anomaly.Anomaly{},
		Forecast:  []analytics.Observation{},
		Insights:  []insight.Insight{},
	}
}

func computeMetrics(values []float64) Metrics {
	minVal, maxVal := analytics.MinMax(values)
	std, err := analytics.StandardDeviation(values)
	if err != nil {
		std = 0
	}
	return Metrics{
		Count:    len(values),
		Total:    analytics.Sum(values),
		Average:  analytics.Mean(values),
		Min:      minVal,
		Max:      maxVal,
		Variance: std,
	}
}

// resultFinite reports whether every number in r can be rendered as JSON.
func resultFinite(r *Result) bool {
	t := r.Trend
	if !analytics.Finite(t.Confidence, t.ChangePercent) {
		return false
	}
	for _, a := range r.Anomalies {
		if !analytics.Finite(a.Value, a.ExpectedValue, a.Confidence) {
			return false
		}
	}
	for _, p := range r.Forecast {
		if !analytics.Finite(p.Value) {
			return false
		}
	}
	if m := r.Model; m != nil && !analytics.Finite(m.Slope, m.Intercept, m.MAPE, m.MAE, m.RMSE) {
		return false
	}
	for _, in := range r.Insights {
		if p, ok := in.Data.(insight.PatternData); ok && !analytics.Finite(p.RecentAverage, p.OverallAverage, p.ChangePercent) {
			return false
		}
	}
	m := r.Metrics
	return analytics.Finite(m.Total, m.Average, m.Min, m.Max, m.Variance)
}
