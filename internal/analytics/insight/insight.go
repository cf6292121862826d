// Package insight turns trend, anomaly and raw-window results into a short,
// prioritized list of human-readable findings.
package insight

import (
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/stocksight/stocksight/internal/analytics"
	"github.com/stocksight/stocksight/internal/analytics/anomaly"
	"github.com/stocksight/stocksight/internal/analytics/trend"
)

// Type of finding
type Type string

const (
	TypeTrend       Type = "trend"
	TypeAnomaly     Type = "anomaly"
	TypePattern     Type = "pattern"
	TypeCorrelation Type = "correlation"
	TypeForecast    Type = "forecast"
)

// Importance drives rendering priority downstream
type Importance string

const (
	ImportanceLow      Importance = "low"
	ImportanceMedium   Importance = "medium"
	ImportanceHigh     Importance = "high"
	ImportanceCritical Importance = "critical"
)

const (
	// TrendConfidenceThreshold is the confidence a trend needs to be reported.
	TrendConfidenceThreshold = 70.0
	// RecentWindow is the number of trailing points compared with the whole window.
	RecentWindow = 7
	// PatternThreshold is the relative difference that makes the recent window notable.
	PatternThreshold = 0.15
)

// Insight is a synthesized finding with recommended actions.
type Insight struct {
	ID              string      `json:"id"`
	Type            Type        `json:"type"`
	Title           string      `json:"title"`
	Description     string      `json:"description"`
	Importance      Importance  `json:"importance"`
	Actionable      bool        `json:"actionable"`
	Recommendations []string    `json:"recommendations"`
	Data            interface{} `json:"data,omitempty"`
	Timestamp       string      `json:"timestamp"`
}

// PatternData describes the recent-window comparison.
type PatternData struct {
	RecentAverage  float64 `json:"recentAverage"`
	OverallAverage float64 `json:"overallAverage"`
	ChangePercent  float64 `json:"changePercent"`
	RecentPoints   int     `json:"recentPoints"`
}

// Generate returns at most one trend, one critical-anomaly and one
// recent-pattern insight, in that order.
func Generate(data []analytics.TimeSeriesPoint, anomalies []anomaly.Anomaly, t trend.Analysis, cfg analytics.Config, now time.Time) []Insight {
	stamp := analytics.FormatTimestamp(now)
	insights := make([]Insight, 0, 3)

	if in, ok := trendInsight(t, cfg, stamp); ok {
		insights = append(insights, in)
	}
	if in, ok := criticalAnomalyInsight(anomalies, stamp); ok {
		insights = append(insights, in)
	}
	if in, ok := patternInsight(analytics.TimeSeriesData(data).Values(), stamp); ok {
		insights = append(insights, in)
	}

	return insights
}

func trendInsight(t trend.Analysis, cfg analytics.Config, stamp string) (Insight, bool) {
	if t.Confidence <= TrendConfidenceThreshold {
		return Insight{}, false
	}

	var title string
	var recommendations []string
	switch t.Direction {
	case trend.DirectionUp:
		title = "Upward trend in inventory activity"
		recommendations = []string{
			"Increase reorder quantities for affected items to keep pace with demand",
			"Review warehouse capacity and staffing for the higher throughput",
			"Confirm supplier lead times can support the growth",
		}
	case trend.DirectionDown:
		title = "Downward trend in inventory activity"
		recommendations = []string{
			"Reduce reorder quantities to avoid excess stock",
			"Investigate the cause of the decline with sales and procurement",
			"Consider promotions or redistribution for slow-moving items",
		}
	default:
		title = "Inventory activity is stable"
		recommendations = []string{
			"Maintain current replenishment levels",
			"Use the stable period to optimize slotting and cycle counts",
		}
	}

	return Insight{
		ID:   analytics.DeriveID("insight", string(TypeTrend), stamp, string(t.Direction), string(t.Strength)),
		Type: TypeTrend,
		Title: title,
		Description: fmt.Sprintf("%s over the last %s (confidence %.0f%%)",
			t.Description, cfg.TimeWindow, t.Confidence),
		Importance:      importanceFor(t.Strength),
		Actionable:      t.Direction != trend.DirectionStable,
		Recommendations: recommendations,
		Data:            t,
		Timestamp:       stamp,
	}, true
}

func importanceFor(s trend.Strength) Importance {
	switch s {
	case trend.StrengthStrong:
		return ImportanceHigh
	case trend.StrengthModerate:
		return ImportanceMedium
	default:
		return ImportanceLow
	}
}

func criticalAnomalyInsight(anomalies []anomaly.Anomaly, stamp string) (Insight, bool) {
	critical := anomaly.Filter(anomalies, anomaly.SeverityCritical)
	if len(critical) == 0 {
		return Insight{}, false
	}

	ids := make([]string, 0, len(critical)+1)
	ids = append(ids, stamp)
	for _, a := range critical {
		ids = append(ids, a.ID)
	}

	return Insight{
		ID:          analytics.DeriveID("insight", append([]string{string(TypeAnomaly)}, ids...)...),
		Type:        TypeAnomaly,
		Title:       "Critical anomalies detected",
		Description: fmt.Sprintf("%d critical anomal%s found in the analysis window", len(critical), plural(len(critical))),
		Importance:  ImportanceCritical,
		Actionable:  true,
		Recommendations: []string{
			"Investigate the flagged records immediately",
			"Check for data entry errors or unrecorded stock movements",
			"Verify physical stock levels for the affected items",
		},
		Data:      critical,
		Timestamp: stamp,
	}, true
}

func plural(n int) string {
	if n == 1 {
		return "y"
	}
	return "ies"
}

func patternInsight(values []float64, stamp string) (Insight, bool) {
	if len(values) == 0 {
		return Insight{}, false
	}

	recent := values
	if len(values) > RecentWindow {
		recent = values[len(values)-RecentWindow:]
	}
	recentAvg := analytics.Mean(recent)
	overallAvg := analytics.Mean(values)

	// Relative change against a zero baseline is undefined.
	if overallAvg == 0 {
		return Insight{}, false
	}
	relative := (recentAvg - overallAvg) / math.Abs(overallAvg)
	if math.Abs(relative) <= PatternThreshold {
		return Insight{}, false
	}

	direction := "above"
	recommendation := "Check whether recent demand requires earlier replenishment"
	if relative < 0 {
		direction = "below"
		recommendation = "Check whether recent slowdown warrants lower reorder points"
	}

	return Insight{
		ID:    analytics.DeriveID("insight", string(TypePattern), stamp, strconv.FormatFloat(relative, 'g', -1, 64)),
		Type:  TypePattern,
		Title: "Recent activity deviates from the window average",
		Description: fmt.Sprintf("The last %d observations average %.2f, %.1f%% %s the window average of %.2f",
			len(recent), recentAvg, math.Abs(relative)*100, direction, overallAvg),
		Importance: ImportanceMedium,
		Actionable: true,
		Recommendations: []string{
			recommendation,
			"Compare the recent period against planned promotions or seasonal events",
		},
		Data: PatternData{
			RecentAverage:  recentAvg,
			OverallAverage: overallAvg,
			ChangePercent:  relative * 100,
			RecentPoints:   len(recent),
		},
		Timestamp: stamp,
	}, true
}
