// Package queue delivers serialized insights to a message broker.
package queue

import "context"

// Publisher publishes messages to a queue
type Publisher interface {
	// Publish publishes a message to a subject/topic and waits for the broker to accept it
	Publish(ctx context.Context, subject string, data []byte) error

	// PublishBatch publishes multiple messages and reports how many were accepted
	PublishBatch(ctx context.Context, messages []BatchMessage) (int, error)

	// Close closes the connection
	Close() error
}

// BatchMessage represents a message for batch publishing
type BatchMessage struct {
	Subject string
	Data    []byte
}

// StreamProvisioner is implemented by backends that must declare storage
// for a subject space before publishing to it.
type StreamProvisioner interface {
	EnsureStream(name string, subjects []string) error
}
