package pubsub

import (
	"context"
)

// Message is the structure passed between components on the bus.
type Message struct {
	// Topic identifies the channel the message belongs to (e.g., "dashboard.<page>.state").
	Topic string
	// Key identifies the entity the message is about, e.g. a page instance id.
	Key string
	// Payload contains the raw message data.
	Payload []byte
	// Metadata can contain arbitrary key-value pairs for context.
	Metadata map[string]string
}

// Handler defines the function signature for processing a received message.
type Handler func(ctx context.Context, msg Message) error

// Publisher defines the contract for sending messages.
type Publisher interface {
	Publish(ctx context.Context, msg Message) error
	Close() error
}

// Subscriber defines the contract for receiving messages.
type Subscriber interface {
	// Subscribe starts delivering messages on topic to handler until ctx is
	// cancelled. It returns as soon as the subscription is active.
	Subscribe(ctx context.Context, topic string, handler Handler) error
	Close() error
}
