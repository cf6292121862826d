package config

import (
	"net"
	"strconv"
)

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Logging.Level == "debug" && c.Logging.Format == "console"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Logging.Level == "info" && c.Logging.Format == "json"
}

// GetServerAddress returns the HTTP listen address
func (c *Config) GetServerAddress() string {
	return net.JoinHostPort(c.Server.Host, strconv.Itoa(c.Server.HTTPPort))
}

// Insight delivery modes
const (
	DeliveryStream = "stream"
	DeliveryBatch  = "batch"
)

// Batched reports whether insights are published together after the analysis completes
func (c *InsightsConfig) Batched() bool {
	return c.Delivery == DeliveryBatch
}

// InsightSubject returns the subject an insight of the given importance is published on
func (c *InsightsConfig) InsightSubject(importance string) string {
	return c.SubjectPrefix + ".insights." + importance
}

// InsightWildcard matches every insight subject under the prefix
func (c *InsightsConfig) InsightWildcard() string {
	return c.SubjectPrefix + ".insights.>"
}

// ExportCompression returns the configured export compression, defaulting to none
func (c *ExportConfig) ExportCompression() string {
	if c.Compression == "" {
		return "none"
	}
	return c.Compression
}
