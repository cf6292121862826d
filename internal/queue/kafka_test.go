package queue

import (
	"context"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
)

func TestNewKafkaPublisher_Defaults(t *testing.T) {
	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	defer func() { _ = p.Close() }()

	if p.config.BatchSize != 100 {
		t.Errorf("Expected default batch size 100, got %d", p.config.BatchSize)
	}
	if p.config.BatchTimeout != 10*time.Millisecond {
		t.Errorf("Expected default batch timeout 10ms, got %v", p.config.BatchTimeout)
	}
	if p.config.RequiredAcks != int(kafka.RequireOne) {
		t.Errorf("Expected RequireOne, got %d", p.config.RequiredAcks)
	}
	if p.config.MaxRetries != 3 {
		t.Errorf("Expected 3 retries, got %d", p.config.MaxRetries)
	}
}

func TestNewKafkaPublisher_NoBrokers(t *testing.T) {
	for _, brokers := range [][]string{nil, {}} {
		if _, err := NewKafkaPublisher(KafkaConfig{Brokers: brokers}); err == nil {
			t.Errorf("Expected error for brokers %v", brokers)
		}
	}
}

func TestKafkaPublisher_WriterPerTopic(t *testing.T) {
	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"localhost:9092"}})
	if err != nil {
		t.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	defer func() { _ = p.Close() }()

	a := p.writer("stocksight.insights.low")
	b := p.writer("stocksight.insights.low")
	c := p.writer("stocksight.insights.high")

	if a != b {
		t.Error("Expected the same writer for the same topic")
	}
	if a == c {
		t.Error("Expected different writers for different topics")
	}
	if a.Topic != "stocksight.insights.low" {
		t.Errorf("Unexpected topic %s", a.Topic)
	}
}

func TestKafkaPublisher_PublishUnreachable(t *testing.T) {
	p, err := NewKafkaPublisher(KafkaConfig{Brokers: []string{"127.0.0.1:1"}, MaxRetries: 1})
	if err != nil {
		t.Fatalf("Failed to create Kafka publisher: %v", err)
	}
	defer func() { _ = p.Close() }()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := p.Publish(ctx, "stocksight.insights.low", []byte("x")); err == nil {
		t.Error("Expected error publishing to an unreachable broker")
	}
}

func TestMessageKey(t *testing.T) {
	if got := string(messageKey("stocksight.insights.critical")); got != "critical" {
		t.Errorf("Expected key 'critical', got %q", got)
	}
	if got := string(messageKey("plain")); got != "plain" {
		t.Errorf("Expected key 'plain', got %q", got)
	}
}
