package pubsub

import (
	"context"
	"encoding/json"
	"fmt"
)

// Event gives a topic a payload type so publishers and subscribers agree on
// the encoding.
type Event[T any] struct {
	Topic string
}

// NewEvent creates a typed event for topic.
func NewEvent[T any](topic string) Event[T] {
	return Event[T]{Topic: topic}
}

// Publish encodes payload as JSON and publishes it under key.
func (e Event[T]) Publish(ctx context.Context, pub Publisher, key string, payload T) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", e.Topic, err)
	}
	return pub.Publish(ctx, Message{Topic: e.Topic, Key: key, Payload: data})
}

// Subscribe decodes every message on the event's topic before calling handler.
func (e Event[T]) Subscribe(ctx context.Context, sub Subscriber, handler func(ctx context.Context, payload T) error) error {
	return sub.Subscribe(ctx, e.Topic, func(ctx context.Context, msg Message) error {
		var payload T
		if err := json.Unmarshal(msg.Payload, &payload); err != nil {
			return fmt.Errorf("decoding %s payload: %w", e.Topic, err)
		}
		return handler(ctx, payload)
	})
}
