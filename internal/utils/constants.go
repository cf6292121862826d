package utils

import "time"

// HTTP timeouts
const (
	// DefaultRequestTimeout bounds a single HTTP request end to end
	DefaultRequestTimeout = 30 * time.Second

	// PublishTimeout bounds delivery of a single insight to the queue
	PublishTimeout = 5 * time.Second

	// ShutdownTimeout bounds graceful server shutdown
	ShutdownTimeout = 10 * time.Second
)

// Request limits
const (
	// MaxRequestBodySize caps analyze/export request bodies
	MaxRequestBodySize = 8 * 1024 * 1024

	// MaxObservationsPerRequest caps the number of observations in one request
	MaxObservationsPerRequest = 100000
)

// QueueType represents the type of message queue
type QueueType string

const (
	// QueueTypeNATS represents NATS JetStream queue (default)
	QueueTypeNATS QueueType = "nats"

	// QueueTypeRedis represents Redis Streams queue
	QueueTypeRedis QueueType = "redis"

	// QueueTypeKafka represents Apache Kafka queue
	QueueTypeKafka QueueType = "kafka"

	// QueueTypeMemory represents in-memory queue (for testing)
	QueueTypeMemory QueueType = "memory"
)
