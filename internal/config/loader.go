package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

// Load loads configuration from file
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// Default config locations
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")               // Current directory
		v.AddConfigPath("./configs")       // Project configs directory
		v.AddConfigPath("/etc/stocksight") // System-wide config
	}

	// Set defaults
	setDefaults(v)

	// Enable environment variable overrides, e.g. STOCKSIGHT_ANALYTICS_TIME_WINDOW
	v.SetEnvPrefix("STOCKSIGHT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Read config file
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// Config file not found; use defaults
			return parseConfig(v)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return parseConfig(v)
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	d := DefaultConfig()

	// Server defaults
	v.SetDefault("server.host", d.Server.Host)
	v.SetDefault("server.http_port", d.Server.HTTPPort)

	// Auth defaults
	v.SetDefault("auth.enabled", d.Auth.Enabled)
	v.SetDefault("auth.api_keys", d.Auth.APIKeys)

	// Analytics defaults
	v.SetDefault("analytics.time_window", d.Analytics.TimeWindow)
	v.SetDefault("analytics.sensitivity", d.Analytics.Sensitivity)
	v.SetDefault("analytics.enable_forecasting", d.Analytics.EnableForecasting)
	v.SetDefault("analytics.enable_anomaly_detection", d.Analytics.EnableAnomalyDetection)
	v.SetDefault("analytics.forecast_periods", d.Analytics.ForecastPeriods)
	v.SetDefault("analytics.forecast_seed", d.Analytics.ForecastSeed)

	// Insight publishing defaults
	v.SetDefault("insights.publish", d.Insights.Publish)
	v.SetDefault("insights.subject_prefix", d.Insights.SubjectPrefix)
	v.SetDefault("insights.delivery", d.Insights.Delivery)

	// Queue defaults
	v.SetDefault("queue.type", d.Queue.Type)
	v.SetDefault("queue.url", d.Queue.URL)
	v.SetDefault("queue.redis_stream", d.Queue.RedisStream)

	// Export defaults
	v.SetDefault("export.compression", d.Export.Compression)

	// Logging defaults
	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
	v.SetDefault("logging.output_path", d.Logging.OutputPath)
}

// parseConfig parses viper config into Config struct
func parseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return &cfg, nil
}

// LoadOrDefault loads configuration from file or returns default config
func LoadOrDefault(configPath string) *Config {
	cfg, err := Load(configPath)
	if err != nil {
		// Return default configuration
		return DefaultConfig()
	}
	return cfg
}

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:     "0.0.0.0",
			HTTPPort: 5580,
		},
		Analytics: AnalyticsConfig{
			TimeWindow:             "30d",
			Sensitivity:            "medium",
			EnableForecasting:      true,
			EnableAnomalyDetection: true,
			ForecastPeriods:        7,
			ForecastSeed:           42,
		},
		Insights: InsightsConfig{
			Publish:       false,
			SubjectPrefix: "stocksight",
			Delivery:      DeliveryStream,
		},
		Queue: QueueConfig{
			Type:        "nats",
			URL:         "nats://localhost:4222",
			RedisStream: "stocksight",
		},
		Export: ExportConfig{
			Compression: "none",
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "json",
			OutputPath: "stdout",
		},
	}
}
