package config

import (
	"fmt"
	"strings"

	"github.com/stocksight/stocksight/internal/analytics"
)

// Config represents the complete application configuration
type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Auth      AuthConfig      `mapstructure:"auth"`
	Analytics AnalyticsConfig `mapstructure:"analytics"`
	Insights  InsightsConfig  `mapstructure:"insights"`
	Queue     QueueConfig     `mapstructure:"queue"`
	Export    ExportConfig    `mapstructure:"export"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// AuthConfig represents authentication configuration
type AuthConfig struct {
	Enabled bool     `mapstructure:"enabled"`  // Enable/disable API key authentication
	APIKeys []string `mapstructure:"api_keys"` // List of valid API keys
}

// ServerConfig represents server configuration
type ServerConfig struct {
	Host     string `mapstructure:"host"`      // Bind address (e.g., 0.0.0.0 for all interfaces)
	HTTPPort int    `mapstructure:"http_port"` // HTTP server port
}

// AnalyticsConfig holds the defaults applied when a request omits its own config
type AnalyticsConfig struct {
	TimeWindow             string `mapstructure:"time_window"`              // 7d, 30d, 90d, 1y (or P7D, P30D, P90D, P1Y)
	Sensitivity            string `mapstructure:"sensitivity"`              // low, medium, high
	EnableForecasting      bool   `mapstructure:"enable_forecasting"`       // Project forecast_periods days ahead
	EnableAnomalyDetection bool   `mapstructure:"enable_anomaly_detection"` // Flag spikes and drops
	ForecastPeriods        int    `mapstructure:"forecast_periods"`         // 1..30
	ForecastSeed           uint64 `mapstructure:"forecast_seed"`            // Seed for forecast noise
}

// InsightsConfig controls publishing of generated insights
type InsightsConfig struct {
	Publish       bool   `mapstructure:"publish"`        // Publish each insight to the queue
	SubjectPrefix string `mapstructure:"subject_prefix"` // Subjects are <prefix>.insights.<importance>
	Delivery      string `mapstructure:"delivery"`       // stream (default): one publish per insight as generated; batch: one batch after analysis
}

// QueueConfig represents message queue configuration
type QueueConfig struct {
	Type     string `mapstructure:"type"`     // Queue type: nats (default), redis, kafka, memory
	URL      string `mapstructure:"url"`      // Queue server URL (e.g., nats://localhost:4222, redis://localhost:6379)
	Username string `mapstructure:"username"` // Optional authentication
	Password string `mapstructure:"password"` // Optional authentication

	// Redis-specific options
	RedisDB     int    `mapstructure:"redis_db"`     // Redis database number (default: 0)
	RedisStream string `mapstructure:"redis_stream"` // Redis stream prefix (default: "stocksight")

	// Kafka-specific options
	KafkaBrokers []string `mapstructure:"kafka_brokers"` // Kafka broker addresses
}

// ExportConfig represents export document configuration
type ExportConfig struct {
	Compression string `mapstructure:"compression"` // none, snappy
}

// LoggingConfig represents logging configuration
type LoggingConfig struct {
	Level      string `mapstructure:"level"`       // debug, info, warn, error
	Format     string `mapstructure:"format"`      // json, console
	OutputPath string `mapstructure:"output_path"` // stdout, stderr, file path
	TimeFormat string `mapstructure:"time_format"` // RFC3339, Unix, UnixMs, etc
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if err := c.Server.Validate(); err != nil {
		return fmt.Errorf("server config: %w", err)
	}

	if err := c.Auth.Validate(); err != nil {
		return fmt.Errorf("auth config: %w", err)
	}

	if err := c.Analytics.Validate(); err != nil {
		return fmt.Errorf("analytics config: %w", err)
	}

	if err := c.Insights.Validate(); err != nil {
		return fmt.Errorf("insights config: %w", err)
	}

	// Queue settings only matter when something publishes
	if c.Insights.Publish {
		if err := c.Queue.Validate(); err != nil {
			return fmt.Errorf("queue config: %w", err)
		}
	}

	if err := c.Export.Validate(); err != nil {
		return fmt.Errorf("export config: %w", err)
	}

	if err := c.Logging.Validate(); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	return nil
}

// Validate validates server configuration
func (c *ServerConfig) Validate() error {
	if c.HTTPPort < 1 || c.HTTPPort > 65535 {
		return fmt.Errorf("invalid http_port: %d", c.HTTPPort)
	}
	return nil
}

// MinAPIKeyLength is the shortest API key accepted when auth is enabled
const MinAPIKeyLength = 32

// Validate validates auth configuration
func (c *AuthConfig) Validate() error {
	if !c.Enabled {
		return nil
	}
	if len(c.APIKeys) == 0 {
		return fmt.Errorf("auth.api_keys is required when auth is enabled")
	}
	for i, key := range c.APIKeys {
		if len(key) < MinAPIKeyLength {
			return fmt.Errorf("auth.api_keys[%d] must be at least %d characters", i, MinAPIKeyLength)
		}
	}
	return nil
}

// Validate validates analytics defaults by building an engine config from them
func (c *AnalyticsConfig) Validate() error {
	_, err := c.ToEngineConfig()
	return err
}

// ToEngineConfig converts the configured defaults into a validated analytics.Config
func (c *AnalyticsConfig) ToEngineConfig() (analytics.Config, error) {
	return analytics.NewConfig(c.TimeWindow, c.Sensitivity, c.EnableForecasting, c.EnableAnomalyDetection, c.ForecastPeriods)
}

// Validate validates insights configuration
func (c *InsightsConfig) Validate() error {
	if !c.Publish {
		return nil
	}
	if c.SubjectPrefix == "" {
		return fmt.Errorf("insights.subject_prefix is required when publishing")
	}
	if strings.ContainsAny(c.SubjectPrefix, " *>") {
		return fmt.Errorf("insights.subject_prefix must not contain spaces or wildcards")
	}
	switch c.Delivery {
	case "", DeliveryStream, DeliveryBatch:
	default:
		return fmt.Errorf("invalid insights.delivery: %s (must be %s or %s)", c.Delivery, DeliveryStream, DeliveryBatch)
	}
	return nil
}

// Validate validates queue configuration
func (c *QueueConfig) Validate() error {
	switch c.Type {
	case "", "nats", "redis":
		if c.URL == "" {
			return fmt.Errorf("queue.url is required for %s", c.typeOrDefault())
		}
	case "kafka":
		if len(c.KafkaBrokers) == 0 {
			return fmt.Errorf("queue.kafka_brokers is required for kafka")
		}
	case "memory":
	default:
		return fmt.Errorf("queue.type must be one of: nats, redis, kafka, memory")
	}
	return nil
}

func (c *QueueConfig) typeOrDefault() string {
	if c.Type == "" {
		return "nats"
	}
	return c.Type
}

// Validate validates export configuration
func (c *ExportConfig) Validate() error {
	switch c.Compression {
	case "", "none", "snappy":
		return nil
	default:
		return fmt.Errorf("export.compression must be 'none' or 'snappy'")
	}
}

// Validate validates logging configuration
func (c *LoggingConfig) Validate() error {
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}

	if !validLevels[c.Level] {
		return fmt.Errorf("logging.level must be one of: debug, info, warn, error")
	}

	validFormats := map[string]bool{
		"json":    true,
		"console": true,
	}

	if !validFormats[c.Format] {
		return fmt.Errorf("logging.format must be 'json' or 'console'")
	}

	return nil
}
