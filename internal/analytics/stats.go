package analytics

import (
	"fmt"
	"math"
)

// MovingAverage returns, for every index i, the mean of
// values[max(0, i-window+1) .. i]. The window narrows near the start.
func MovingAverage(values []float64, window int) ([]float64, error) {
	if window <= 0 {
		return nil, fmt.Errorf("%w: moving average window must be positive, got %d", ErrInvalidArgument, window)
	}

	result := make([]float64, len(values))
	for i := range values {
		start := i - window + 1
		if start < 0 {
			start = 0
		}
		sum := 0.0
		for j := start; j <= i; j++ {
			sum += values[j]
		}
		result[i] = sum / float64(i-start+1)
	}
	return result, nil
}

// StandardDeviation calculates the population standard deviation (divides by N).
func StandardDeviation(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, fmt.Errorf("%w: standard deviation of empty sequence", ErrInsufficientData)
	}

	mean := Mean(values)
	var varianceSum float64
	for _, v := range values {
		diff := v - mean
		varianceSum += diff * diff
	}
	return math.Sqrt(varianceSum / float64(len(values))), nil
}

// Mean returns the arithmetic mean, or 0 for an empty slice.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	return Sum(values) / float64(len(values))
}

// Sum returns the sum of values.
func Sum(values []float64) float64 {
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum
}

// MinMax returns the smallest and largest value, or zeros for an empty slice.
func MinMax(values []float64) (minVal, maxVal float64) {
	if len(values) == 0 {
		return 0, 0
	}
	minVal, maxVal = values[0], values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	return minVal, maxVal
}

// Finite reports whether none of values is NaN or infinite.
func Finite(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
