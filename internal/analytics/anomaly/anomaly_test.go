package anomaly

import (
	"strings"
	"testing"
	"time"

	"github.com/stocksight/stocksight/internal/analytics"
)

func createTestDataPoints(values []float64) []DataPoint {
	points := make([]DataPoint, len(values))
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, v := range values {
		points[i] = DataPoint{
			Time:  baseTime.AddDate(0, 0, i),
			Value: v,
		}
	}
	return points
}

func stableWithSpike(n, at int, base, spike float64) []float64 {
	values := make([]float64, n)
	for i := range values {
		values[i] = base
	}
	values[at] = spike
	return values
}

func TestDetect_SingleSpike(t *testing.T) {
	data := createTestDataPoints(stableWithSpike(12, 9, 100, 1000))

	results := Detect(data, analytics.SensitivityMedium)
	if len(results) != 1 {
		t.Fatalf("expected exactly one anomaly, got %d", len(results))
	}

	a := results[0]
	if a.Type != AnomalyTypeSpike {
		t.Errorf("expected spike, got %s", a.Type)
	}
	if a.Severity != SeverityHigh && a.Severity != SeverityCritical {
		t.Errorf("expected at least high severity, got %s", a.Severity)
	}
	if a.Value != 1000 {
		t.Errorf("expected value 1000, got %v", a.Value)
	}
	if a.Timestamp != "2024-01-10T00:00:00Z" {
		t.Errorf("unexpected timestamp %s", a.Timestamp)
	}
	if a.Confidence <= 0 || a.Confidence > 95 {
		t.Errorf("confidence %v outside (0, 95]", a.Confidence)
	}
	if a.ID == "" || a.Impact == "" || a.Description == "" {
		t.Errorf("anomaly fields should be populated: %+v", a)
	}
}

func TestDetect_Drop(t *testing.T) {
	data := createTestDataPoints(stableWithSpike(12, 10, 500, 0))

	results := Detect(data, analytics.SensitivityMedium)
	if len(results) != 1 {
		t.Fatalf("expected exactly one anomaly, got %d", len(results))
	}
	if results[0].Type != AnomalyTypeDrop {
		t.Errorf("expected drop, got %s", results[0].Type)
	}
	if !strings.Contains(results[0].Impact, "stock-out") {
		t.Errorf("drop impact should mention stock-out risk: %q", results[0].Impact)
	}
}

func TestDetect_TooFewPoints(t *testing.T) {
	data := createTestDataPoints(stableWithSpike(9, 8, 100, 10000))
	if results := Detect(data, analytics.SensitivityHigh); len(results) != 0 {
		t.Errorf("expected no anomalies below %d points, got %d", MinDataPoints, len(results))
	}
}

func TestDetect_FlatSeries(t *testing.T) {
	data := createTestDataPoints(stableWithSpike(20, 0, 100, 100))
	if results := Detect(data, analytics.SensitivityHigh); len(results) != 0 {
		t.Errorf("expected no anomalies in a flat series, got %d", len(results))
	}
}

func TestDetect_WarmupNeverFlagged(t *testing.T) {
	data := createTestDataPoints(stableWithSpike(12, 3, 100, 5000))
	for _, a := range Detect(data, analytics.SensitivityHigh) {
		if a.Timestamp < "2024-01-08" {
			t.Errorf("anomaly reported inside warm-up: %s", a.Timestamp)
		}
	}
}

func TestDetect_SensitivityOrdering(t *testing.T) {
	values := []float64{50, 52, 49, 51, 50, 48, 53, 70, 51, 30, 49, 65, 50, 52, 20, 50}
	data := createTestDataPoints(values)

	low := len(Detect(data, analytics.SensitivityLow))
	medium := len(Detect(data, analytics.SensitivityMedium))
	high := len(Detect(data, analytics.SensitivityHigh))

	if !(low <= medium && medium <= high) {
		t.Errorf("expected low <= medium <= high, got %d, %d, %d", low, medium, high)
	}
}

func TestDetect_Deterministic(t *testing.T) {
	data := createTestDataPoints(stableWithSpike(15, 11, 40, 400))
	first := Detect(data, analytics.SensitivityMedium)
	second := Detect(data, analytics.SensitivityMedium)

	if len(first) != len(second) {
		t.Fatalf("result lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("anomaly %d differs between runs", i)
		}
	}
}

func TestClassify(t *testing.T) {
	tests := []struct {
		ratio float64
		want  Severity
	}{
		{1.1, SeverityLow},
		{1.3, SeverityMedium},
		{1.6, SeverityHigh},
		{2.5, SeverityCritical},
	}
	for _, tt := range tests {
		if got := classify(tt.ratio*10, 10); got != tt.want {
			t.Errorf("ratio %v: expected %s, got %s", tt.ratio, tt.want, got)
		}
	}
}

func TestDescribe_ZeroExpected(t *testing.T) {
	got := describe(AnomalyTypeSpike, 12, 0)
	if !strings.Contains(got, "undefined deviation (expected value is 0)") {
		t.Errorf("unexpected description: %q", got)
	}

	got = describe(AnomalyTypeDrop, 50, 100)
	if !strings.Contains(got, "-50.0%") {
		t.Errorf("description should include signed percentage: %q", got)
	}
}

func TestFilterAndCount(t *testing.T) {
	anomalies := []Anomaly{
		{ID: "a", Severity: SeverityCritical},
		{ID: "b", Severity: SeverityLow},
		{ID: "c", Severity: SeverityCritical},
	}

	critical := Filter(anomalies, SeverityCritical)
	if len(critical) != 2 || critical[0].ID != "a" || critical[1].ID != "c" {
		t.Errorf("unexpected filter result: %+v", critical)
	}

	counts := CountBySeverity(anomalies)
	if counts[SeverityCritical] != 2 || counts[SeverityLow] != 1 || counts[SeverityHigh] != 0 {
		t.Errorf("unexpected counts: %v", counts)
	}
}
