package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/sosodev/duration"
)

// TimeWindow selects how far back from "now" observations are analyzed.
type TimeWindow string

const (
	TimeWindow7Days  TimeWindow = "7d"
	TimeWindow30Days TimeWindow = "30d"
	TimeWindow90Days TimeWindow = "90d"
	TimeWindow1Year  TimeWindow = "1y"
)

// TimeWindows lists the recognized windows in ascending order.
var TimeWindows = []TimeWindow{TimeWindow7Days, TimeWindow30Days, TimeWindow90Days, TimeWindow1Year}

// ParseTimeWindow accepts the short forms (7d, 30d, 90d, 1y) and their
// ISO-8601 duration spellings (P7D, P30D, P90D, P1Y).
func ParseTimeWindow(s string) (TimeWindow, error) {
	s = strings.TrimSpace(s)
	for _, w := range TimeWindows {
		if strings.EqualFold(s, string(w)) {
			return w, nil
		}
	}

	if strings.HasPrefix(strings.ToUpper(s), "P") {
		d, err := duration.Parse(strings.ToUpper(s))
		if err == nil && !d.Negative && d.Months == 0 && d.Hours == 0 && d.Minutes == 0 && d.Seconds == 0 {
			switch {
			case d.Years == 1 && d.Weeks == 0 && d.Days == 0:
				return TimeWindow1Year, nil
			case d.Years == 0:
				switch d.Weeks*7 + d.Days {
				case 7:
					return TimeWindow7Days, nil
				case 30:
					return TimeWindow30Days, nil
				case 90:
					return TimeWindow90Days, nil
				}
			}
		}
	}

	return "", fmt.Errorf("%w: unknown time window %q (supported: 7d, 30d, 90d, 1y)", ErrInvalidArgument, s)
}

// UnmarshalText rejects unrecognized windows at decode time.
func (w *TimeWindow) UnmarshalText(b []byte) error {
	parsed, err := ParseTimeWindow(string(b))
	if err != nil {
		return err
	}
	*w = parsed
	return nil
}

// Start returns the earliest instant inside the window ending at now.
// The yearly window uses calendar arithmetic.
func (w TimeWindow) Start(now time.Time) time.Time {
	switch w {
	case TimeWindow7Days:
		return now.AddDate(0, 0, -7)
	case TimeWindow30Days:
		return now.AddDate(0, 0, -30)
	case TimeWindow90Days:
		return now.AddDate(0, 0, -90)
	case TimeWindow1Year:
		return now.AddDate(-1, 0, 0)
	default:
		return now
	}
}

// ISODuration renders the window as an ISO-8601 duration.
func (w TimeWindow) ISODuration() string {
	switch w {
	case TimeWindow1Year:
		return "P1Y"
	case TimeWindow7Days:
		return "P7D"
	case TimeWindow30Days:
		return "P30D"
	case TimeWindow90Days:
		return "P90D"
	default:
		return ""
	}
}

// Sensitivity controls how aggressively deviations are flagged.
type Sensitivity string

const (
	SensitivityLow    Sensitivity = "low"
	SensitivityMedium Sensitivity = "medium"
	SensitivityHigh   Sensitivity = "high"
)

// Sensitivities lists the recognized sensitivity levels.
var Sensitivities = []Sensitivity{SensitivityLow, SensitivityMedium, SensitivityHigh}

// ParseSensitivity parses low, medium or high (case-insensitive).
func ParseSensitivity(s string) (Sensitivity, error) {
	s = strings.TrimSpace(s)
	for _, level := range Sensitivities {
		if strings.EqualFold(s, string(level)) {
			return level, nil
		}
	}
	return "", fmt.Errorf("%w: unknown sensitivity %q (supported: low, medium, high)", ErrInvalidArgument, s)
}

// UnmarshalText rejects unrecognized levels at decode time.
func (s *Sensitivity) UnmarshalText(b []byte) error {
	parsed, err := ParseSensitivity(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// Multiplier returns the number of standard deviations a point must deviate
// from its rolling expectation to be flagged. Lower tolerance flags more.
func (s Sensitivity) Multiplier() float64 {
	switch s {
	case SensitivityLow:
		return 2.5
	case SensitivityHigh:
		return 1.5
	default:
		return 2.0
	}
}

// Forecast horizon bounds.
const (
	MinForecastPeriods = 1
	MaxForecastPeriods = 30
)

// Config holds the per-invocation analytics options.
type Config struct {
	TimeWindow             TimeWindow  `json:"timeWindow"`
	Sensitivity            Sensitivity `json:"sensitivity"`
	EnableForecasting      bool        `json:"enableForecasting"`
	EnableAnomalyDetection bool        `json:"enableAnomalyDetection"`
	ForecastPeriods        int         `json:"forecastPeriods"`
}

// DefaultConfig returns the dashboard defaults.
func DefaultConfig() Config {
	return Config{
		TimeWindow:             TimeWindow30Days,
		Sensitivity:            SensitivityMedium,
		EnableForecasting:      true,
		EnableAnomalyDetection: true,
		ForecastPeriods:        7,
	}
}

// NewConfig builds a validated Config from loosely-typed values.
func NewConfig(timeWindow, sensitivity string, enableForecasting, enableAnomalyDetection bool, forecastPeriods int) (Config, error) {
	w, err := ParseTimeWindow(timeWindow)
	if err != nil {
		return Config{}, err
	}
	s, err := ParseSensitivity(sensitivity)
	if err != nil {
		return Config{}, err
	}
	cfg := Config{
		TimeWindow:             w,
		Sensitivity:            s,
		EnableForecasting:      enableForecasting,
		EnableAnomalyDetection: enableAnomalyDetection,
		ForecastPeriods:        forecastPeriods,
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks every field against its closed set of values.
func (c Config) Validate() error {
	if !slices.Contains(TimeWindows, c.TimeWindow) {
		return fmt.Errorf("%w: unknown time window %q (supported: 7d, 30d, 90d, 1y)", ErrInvalidArgument, c.TimeWindow)
	}
	if !slices.Contains(Sensitivities, c.Sensitivity) {
		return fmt.Errorf("%w: unknown sensitivity %q (supported: low, medium, high)", ErrInvalidArgument, c.Sensitivity)
	}
	if c.ForecastPeriods < MinForecastPeriods || c.ForecastPeriods > MaxForecastPeriods {
		return fmt.Errorf("%w: forecastPeriods must be between %d and %d, got %d",
			ErrInvalidArgument, MinForecastPeriods, MaxForecastPeriods, c.ForecastPeriods)
	}
	return nil
}
