// Package kafka publishes capture events to a Kafka topic.
package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/papercomputeco/recall/pkg/eventstream"
)

// Config holds the Kafka publisher settings.
type Config struct {
	// Brokers is the list of bootstrap broker addresses.
	Brokers []string

	// Topic is the destination topic for capture events.
	Topic string

	// Logger is the configured zap logger.
	Logger *zap.Logger
}

// Publisher writes capture events to Kafka. Messages are keyed by the memory
// file key so all events for one file land on the same partition, preserving
// per-file ordering for consumers.
type Publisher struct {
	writer *kafka.Writer
	logger *zap.Logger
}

// NewPublisher creates a Kafka-backed eventstream publisher.
func NewPublisher(c Config) (*Publisher, error) {
	if len(c.Brokers) == 0 {
		return nil, errors.New("at least one broker address is required")
	}
	if c.Topic == "" {
		return nil, errors.New("topic is required")
	}
	if c.Logger == nil {
		return nil, errors.New("logger is required")
	}

	writer := &kafka.Writer{
		Addr:     kafka.TCP(c.Brokers...),
		Topic:    c.Topic,
		Balancer: &kafka.Hash{},
	}

	return &Publisher{
		writer: writer,
		logger: c.Logger,
	}, nil
}

// PublishCapture serializes the event and writes it to the configured topic.
func (p *Publisher) PublishCapture(ctx context.Context, event *eventstream.MemoryCapturedEvent) error {
	if event == nil {
		return eventstream.ErrNilCaptureEvent
	}

	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshaling capture event: %w", err)
	}

	msg := kafka.Message{
		Key:   []byte(event.Key),
		Value: payload,
	}

	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("writing capture event: %w", err)
	}

	p.logger.Debug("published capture event",
		zap.String("event_id", event.EventID),
		zap.String("key", event.Key),
	)

	return nil
}

// Close flushes and closes the underlying writer.
func (p *Publisher) Close() error {
	return p.writer.Close()
}
