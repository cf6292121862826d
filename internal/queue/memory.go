package queue

import (
	"context"
	"fmt"
	"sync"
)

// Message is a message recorded by MemoryPublisher
type Message struct {
	Subject string
	Data    []byte
}

// MemoryPublisher records published messages in order.
// It backs local development and tests.
type MemoryPublisher struct {
	messages []Message
	closed   bool
	mu       sync.RWMutex
}

// NewMemoryPublisher creates an empty in-memory publisher
func NewMemoryPublisher() *MemoryPublisher {
	return &MemoryPublisher{}
}

// Publish records a copy of data under subject
func (p *MemoryPublisher) Publish(ctx context.Context, subject string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return fmt.Errorf("publisher closed")
	}

	dataCopy := make([]byte, len(data))
	copy(dataCopy, data)
	p.messages = append(p.messages, Message{Subject: subject, Data: dataCopy})
	return nil
}

// PublishBatch records each message in order
func (p *MemoryPublisher) PublishBatch(ctx context.Context, messages []BatchMessage) (int, error) {
	for i, msg := range messages {
		if err := p.Publish(ctx, msg.Subject, msg.Data); err != nil {
			return i, err
		}
	}
	return len(messages), nil
}

// Messages returns a snapshot of everything published so far
func (p *MemoryPublisher) Messages() []Message {
	p.mu.RLock()
	defer p.mu.RUnlock()

	out := make([]Message, len(p.messages))
	copy(out, p.messages)
	return out
}

// Close rejects further publishes
func (p *MemoryPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	return nil
}
