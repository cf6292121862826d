// Package forecast projects a short horizon beyond the observed window using an
// ordinary least-squares line plus bounded noise from an injected source.
package forecast

import (
	"math"
	"math/rand/v2"

	"github.com/stocksight/stocksight/internal/analytics"
)

// DataPoint is an alias to the shared analytics.TimeSeriesPoint type.
type DataPoint = analytics.TimeSeriesPoint

// NoiseSource supplies uniform values in [0, 1). *rand.Rand satisfies it.
type NoiseSource interface {
	Float64() float64
}

// NewSeededSource returns a deterministic PCG-backed source.
func NewSeededSource(seed uint64) NoiseSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NoNoise returns 0.5 on every draw, which cancels the noise term exactly.
type NoNoise struct{}

// Float64 implements NoiseSource
func (NoNoise) Float64() float64 { return 0.5 }

// ModelInfo contains metadata about the fitted line
type ModelInfo struct {
	Algorithm  string  `json:"algorithm"`
	Slope      float64 `json:"slope"`
	Intercept  float64 `json:"intercept"`
	MAPE       float64 `json:"mape"` // Mean Absolute Percentage Error
	MAE        float64 `json:"mae"`  // Mean Absolute Error
	RMSE       float64 `json:"rmse"` // Root Mean Squared Error
	DataPoints int     `json:"dataPoints"`
}

// Result contains the forecast points and model information
type Result struct {
	Points []analytics.Observation `json:"points"`
	Model  *ModelInfo              `json:"model,omitempty"`
}

// CalculateMAPE calculates Mean Absolute Percentage Error, skipping zero actuals
func CalculateMAPE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	count := 0
	for i := range actual {
		if actual[i] != 0 {
			sum += math.Abs((actual[i] - predicted[i]) / actual[i])
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return (sum / float64(count)) * 100
}

// CalculateMAE calculates Mean Absolute Error
func CalculateMAE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(len(actual))
}

// CalculateRMSE calculates Root Mean Squared Error
func CalculateRMSE(actual, predicted []float64) float64 {
	if len(actual) != len(predicted) || len(actual) == 0 {
		return 0
	}

	sum := 0.0
	for i := range actual {
		diff := actual[i] - predicted[i]
		sum += diff * diff
	}
	return math.Sqrt(sum / float64(len(actual)))
}
