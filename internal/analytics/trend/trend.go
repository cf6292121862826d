// Package trend classifies directional movement in a window of values by
// comparing the mean of its first half with the mean of its second half.
package trend

import (
	"fmt"
	"math"

	"github.com/stocksight/stocksight/internal/analytics"
)

// Direction of movement across the window
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// Strength of the movement
type Strength string

const (
	StrengthWeak     Strength = "weak"
	StrengthModerate Strength = "moderate"
	StrengthStrong   Strength = "strong"
)

// Classification thresholds, in percent change between halves.
const (
	StableThreshold   = 5.0
	ModerateThreshold = 10.0
	StrongThreshold   = 20.0

	minConfidence = 50.0
	maxConfidence = 95.0
)

// Analysis is the trend classification of a window.
type Analysis struct {
	Direction     Direction `json:"direction"`
	Strength      Strength  `json:"strength"`
	Confidence    float64   `json:"confidence"`
	ChangePercent float64   `json:"changePercent"`
	Description   string    `json:"description"`
}

// Degenerate returns the result used when fewer than two values exist.
func Degenerate() Analysis {
	return Analysis{
		Direction:   DirectionStable,
		Strength:    StrengthWeak,
		Description: "Not enough data to determine a trend",
	}
}

// Detect classifies values, which must already be limited to the analysis window.
func Detect(values []float64) Analysis {
	n := len(values)
	if n < 2 {
		return Degenerate()
	}

	half := n / 2
	firstAvg := analytics.Mean(values[:half])
	secondAvg := analytics.Mean(values[half:])

	// n >= 2 so this cannot fail
	stdDev, _ := analytics.StandardDeviation(values)
	confidence := 100 - (stdDev/math.Max(secondAvg, 1))*10
	if math.IsNaN(confidence) {
		confidence = minConfidence
	}
	confidence = math.Max(minConfidence, math.Min(maxConfidence, confidence))

	result := Analysis{
		Direction:  DirectionStable,
		Strength:   StrengthWeak,
		Confidence: confidence,
	}

	// Percentage change from a zero baseline is undefined.
	if firstAvg == 0 {
		result.Description = describe(result)
		return result
	}

	changePercent := (secondAvg - firstAvg) / firstAvg * 100
	if math.IsNaN(changePercent) || math.IsInf(changePercent, 0) {
		result.Description = describe(result)
		return result
	}
	result.ChangePercent = changePercent

	absChange := math.Abs(changePercent)
	if absChange >= StableThreshold {
		if changePercent > 0 {
			result.Direction = DirectionUp
		} else {
			result.Direction = DirectionDown
		}
		switch {
		case absChange > StrongThreshold:
			result.Strength = StrengthStrong
		case absChange > ModerateThreshold:
			result.Strength = StrengthModerate
		}
	}

	result.Description = describe(result)
	return result
}

func describe(a Analysis) string {
	switch a.Direction {
	case DirectionUp:
		return fmt.Sprintf("%s upward trend: %+.1f%% change between the first and second half of the window", title(a.Strength), a.ChangePercent)
	case DirectionDown:
		return fmt.Sprintf("%s downward trend: %+.1f%% change between the first and second half of the window", title(a.Strength), a.ChangePercent)
	default:
		return fmt.Sprintf("Stable trend (%s): %+.1f%% change between the first and second half of the window", a.Strength, a.ChangePercent)
	}
}

func title(s Strength) string {
	switch s {
	case StrengthStrong:
		return "Strong"
	case StrengthModerate:
		return "Moderate"
	default:
		return "Weak"
	}
}
