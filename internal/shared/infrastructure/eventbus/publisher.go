// Package eventbus publishes study events to a message broker.
package eventbus

import (
	"context"
)

// Publisher publishes encoded events to a broker.
type Publisher interface {
	// Publish sends a message to the event bus.
	Publish(ctx context.Context, routingKey string, payload []byte) error

	// Close closes the publisher connection.
	Close() error
}
