package forecast

import (
	"fmt"
	"math"

	"github.com/stocksight/stocksight/internal/analytics"
)

const (
	// MinDataPoints is the shortest window the forecaster will fit.
	MinDataPoints = 5

	// noiseScale bounds noise to ±5% of the window's standard deviation.
	noiseScale = 0.1
)

// Forecast fits y = slope*x + intercept over x = 0..n-1 and projects periods
// daily points past the last observation. A nil noise source adds no noise.
// Windows shorter than MinDataPoints produce an empty result.
func Forecast(data []DataPoint, periods int, noise NoiseSource) (*Result, error) {
	if periods < 0 {
		return nil, fmt.Errorf("%w: forecast periods must not be negative, got %d", analytics.ErrInvalidArgument, periods)
	}
	if len(data) < MinDataPoints || periods == 0 {
		return &Result{Points: []analytics.Observation{}}, nil
	}
	if noise == nil {
		noise = NoNoise{}
	}

	n := float64(len(data))

	// Calculate sums for linear regression
	sumX := 0.0
	sumY := 0.0
	sumXY := 0.0
	sumX2 := 0.0

	for i, p := range data {
		x := float64(i)
		sumX += x
		sumY += p.Value
		sumXY += x * p.Value
		sumX2 += x * x
	}

	// n >= MinDataPoints keeps the denominator positive
	denominator := n*sumX2 - sumX*sumX
	slope := (n*sumXY - sumX*sumY) / denominator
	intercept := (sumY - slope*sumX) / n

	actual := analytics.TimeSeriesData(data).Values()
	fitted := make([]float64, len(data))
	for i := range data {
		fitted[i] = intercept + slope*float64(i)
	}

	stdDev, err := analytics.StandardDeviation(actual)
	if err != nil {
		return nil, err
	}

	points := make([]analytics.Observation, periods)
	lastTime := data[len(data)-1].Time

	for i := 1; i <= periods; i++ {
		predicted := slope*float64(len(data)+i-1) + intercept
		jitter := (noise.Float64() - 0.5) * stdDev * noiseScale

		points[i-1] = analytics.Observation{
			Timestamp: analytics.FormatTimestamp(lastTime.AddDate(0, 0, i)),
			Value:     math.Max(0, predicted+jitter),
			Category:  analytics.CategoryForecast,
			Metadata: map[string]interface{}{
				"step":      i,
				"predicted": predicted,
			},
		}
	}

	return &Result{
		Points: points,
		Model: &ModelInfo{
			Algorithm:  "linear",
			Slope:      slope,
			Intercept:  intercept,
			MAPE:       CalculateMAPE(actual, fitted),
			MAE:        CalculateMAE(actual, fitted),
			RMSE:       CalculateRMSE(actual, fitted),
			DataPoints: len(data),
		},
	}, nil
}
