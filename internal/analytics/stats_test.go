package analytics

import (
	"errors"
	"math"
	"testing"
)

const epsilon = 1e-9

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < epsilon
}

func TestMovingAverage(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		window int
		want   []float64
	}{
		{"leading window narrows", []float64{1, 2, 3, 4, 5}, 3, []float64{1, 1.5, 2, 3, 4}},
		{"window of one is identity", []float64{4, 8, 15}, 1, []float64{4, 8, 15}},
		{"window wider than input", []float64{2, 4, 6}, 10, []float64{2, 3, 4}},
		{"empty input", []float64{}, 7, []float64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := MovingAverage(tt.values, tt.window)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d values, got %d", len(tt.want), len(got))
			}
			for i := range got {
				if !almostEqual(got[i], tt.want[i]) {
					t.Errorf("index %d: expected %v, got %v", i, tt.want[i], got[i])
				}
			}
		})
	}
}

func TestMovingAverage_InvalidWindow(t *testing.T) {
	for _, window := range []int{0, -3} {
		_, err := MovingAverage([]float64{1, 2, 3}, window)
		if !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("window %d: expected ErrInvalidArgument, got %v", window, err)
		}
	}
}

func TestStandardDeviation(t *testing.T) {
	std, err := StandardDeviation([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !almostEqual(std, 2) {
		t.Errorf("expected population std 2, got %v", std)
	}

	std, err = StandardDeviation([]float64{42})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if std != 0 {
		t.Errorf("expected 0 for single value, got %v", std)
	}
}

func TestStandardDeviation_Empty(t *testing.T) {
	_, err := StandardDeviation(nil)
	if !errors.Is(err, ErrInsufficientData) {
		t.Errorf("expected ErrInsufficientData, got %v", err)
	}
}

func TestMeanSumMinMax(t *testing.T) {
	values := []float64{3, -1, 7, 5}

	if got := Sum(values); got != 14 {
		t.Errorf("Sum: expected 14, got %v", got)
	}
	if got := Mean(values); got != 3.5 {
		t.Errorf("Mean: expected 3.5, got %v", got)
	}
	minVal, maxVal := MinMax(values)
	if minVal != -1 || maxVal != 7 {
		t.Errorf("MinMax: expected (-1, 7), got (%v, %v)", minVal, maxVal)
	}

	if Mean(nil) != 0 {
		t.Error("Mean of empty slice should be 0")
	}
	minVal, maxVal = MinMax(nil)
	if minVal != 0 || maxVal != 0 {
		t.Errorf("MinMax of empty slice should be zeros, got (%v, %v)", minVal, maxVal)
	}
}

func BenchmarkMovingAverage(b *testing.B) {
	values := make([]float64, 365)
	for i := range values {
		values[i] = float64(i % 17)
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = MovingAverage(values, 7)
	}
}

func TestFinite(t *testing.T) {
	if !Finite() || !Finite(0, -1, 1e308) {
		t.Error("finite values reported as non-finite")
	}
	if Finite(1, math.NaN()) || Finite(math.Inf(1)) || Finite(math.Inf(-1), 2) {
		t.Error("NaN or Inf reported as finite")
	}
}
