package nop

import (
	"context"

	"github.com/papercomputeco/recall/pkg/eventstream"
)

// Publisher is a no-op eventstream publisher used for tests and disabled mode.
type Publisher struct{}

// NewPublisher creates a new no-op eventstream publisher.
func NewPublisher() *Publisher {
	return &Publisher{}
}

// PublishCapture validates input and otherwise does nothing.
func (p *Publisher) PublishCapture(_ context.Context, event *eventstream.MemoryCapturedEvent) error {
	if event == nil {
		return eventstream.ErrNilCaptureEvent
	}

	return nil
}

// Close is a no-op.
func (p *Publisher) Close() error {
	return nil
}
