package analytics

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseTimeWindow(t *testing.T) {
	tests := []struct {
		in   string
		want TimeWindow
	}{
		{"7d", TimeWindow7Days},
		{"30D", TimeWindow30Days},
		{" 90d ", TimeWindow90Days},
		{"1y", TimeWindow1Year},
		{"P7D", TimeWindow7Days},
		{"p30d", TimeWindow30Days},
		{"P90D", TimeWindow90Days},
		{"P1Y", TimeWindow1Year},
	}

	for _, tt := range tests {
		got, err := ParseTimeWindow(tt.in)
		if err != nil {
			t.Errorf("ParseTimeWindow(%q): unexpected error: %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseTimeWindow(%q): expected %s, got %s", tt.in, tt.want, got)
		}
	}
}

func TestParseTimeWindow_Invalid(t *testing.T) {
	for _, in := range []string{"", "14d", "P2D", "PT7H", "weekly", "2y"} {
		if _, err := ParseTimeWindow(in); !errors.Is(err, ErrInvalidArgument) {
			t.Errorf("ParseTimeWindow(%q): expected ErrInvalidArgument, got %v", in, err)
		}
	}
}

func TestTimeWindow_Start(t *testing.T) {
	now := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		window TimeWindow
		want   time.Time
	}{
		{TimeWindow7Days, time.Date(2024, 2, 23, 12, 0, 0, 0, time.UTC)},
		{TimeWindow30Days, time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC)},
		{TimeWindow90Days, time.Date(2023, 12, 2, 12, 0, 0, 0, time.UTC)},
		{TimeWindow1Year, time.Date(2023, 3, 1, 12, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		if got := tt.window.Start(now); !got.Equal(tt.want) {
			t.Errorf("%s: expected %v, got %v", tt.window, tt.want, got)
		}
	}
}

func TestTimeWindow_ISODuration(t *testing.T) {
	for _, w := range TimeWindows {
		parsed, err := ParseTimeWindow(w.ISODuration())
		if err != nil {
			t.Fatalf("%s: ISO form %q does not parse: %v", w, w.ISODuration(), err)
		}
		if parsed != w {
			t.Errorf("%s: ISO form round-tripped to %s", w, parsed)
		}
	}
}

func TestSensitivity_Multiplier(t *testing.T) {
	low, medium, high := SensitivityLow.Multiplier(), SensitivityMedium.Multiplier(), SensitivityHigh.Multiplier()
	if low != 2.5 || medium != 2.0 || high != 1.5 {
		t.Errorf("unexpected multipliers: low=%v medium=%v high=%v", low, medium, high)
	}
	if !(high < medium && medium < low) {
		t.Error("higher sensitivity must use a smaller multiplier")
	}
}

func TestParseSensitivity(t *testing.T) {
	got, err := ParseSensitivity("HIGH")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != SensitivityHigh {
		t.Errorf("expected high, got %s", got)
	}

	if _, err := ParseSensitivity("extreme"); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
	if cfg.TimeWindow != TimeWindow30Days || cfg.Sensitivity != SensitivityMedium || cfg.ForecastPeriods != 7 {
		t.Errorf("unexpected defaults: %+v", cfg)
	}
	if !cfg.EnableForecasting || !cfg.EnableAnomalyDetection {
		t.Error("forecasting and anomaly detection should be enabled by default")
	}
}

func TestNewConfig(t *testing.T) {
	cfg, err := NewConfig("P90D", "low", false, true, 30)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TimeWindow != TimeWindow90Days || cfg.Sensitivity != SensitivityLow {
		t.Errorf("unexpected config: %+v", cfg)
	}

	cases := []struct {
		name        string
		window      string
		sensitivity string
		periods     int
	}{
		{"bad window", "3d", "low", 7},
		{"bad sensitivity", "7d", "none", 7},
		{"zero periods", "7d", "low", 0},
		{"too many periods", "7d", "low", 31},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := NewConfig(c.window, c.sensitivity, true, true, c.periods)
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("expected ErrInvalidArgument, got %v", err)
			}
		})
	}
}

func TestConfig_ValidateRejectsNonCanonical(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TimeWindow = "P7D"
	if err := cfg.Validate(); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument for non-canonical window, got %v", err)
	}
}

func TestConfig_UnmarshalJSON(t *testing.T) {
	var cfg Config
	body := `{"timeWindow":"P1Y","sensitivity":"High","enableForecasting":true,"enableAnomalyDetection":false,"forecastPeriods":14}`
	if err := json.Unmarshal([]byte(body), &cfg); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.TimeWindow != TimeWindow1Year || cfg.Sensitivity != SensitivityHigh || cfg.ForecastPeriods != 14 {
		t.Errorf("unexpected config: %+v", cfg)
	}

	err := json.Unmarshal([]byte(`{"timeWindow":"2w"}`), &cfg)
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument from decode, got %v", err)
	}
}
