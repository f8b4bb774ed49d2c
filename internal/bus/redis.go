package bus

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// RedisBus implements Publisher and Subscriber on top of Redis pub/sub.
// Delivery is at-most-once per connected subscriber; redelivery policy is
// left to the bus runtime.
type RedisBus struct {
	client *redis.Client
}

// NewRedisBus creates a bus backed by the given Redis client.
func NewRedisBus(client *redis.Client) *RedisBus {
	return &RedisBus{client: client}
}

// Publish marshals the event as JSON and publishes it on the channel.
func (b *RedisBus) Publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("bus: marshal event for channel %s: %w", channel, err)
	}

	if err := b.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("bus: publish to channel %s: %w", channel, err)
	}
	return nil
}

// Subscribe opens a subscription on the channel and streams raw payloads
// until ctx is cancelled.
func (b *RedisBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	sub := b.client.Subscribe(ctx, channel)

	// Confirm the subscription before handing back the channel.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("bus: subscribe to channel %s: %w", channel, err)
	}

	out := make(chan []byte)

	go func() {
		<-ctx.Done()
		_ = sub.Close()
	}()

	go func() {
		defer close(out)
		for msg := range sub.Channel() {
			out <- []byte(msg.Payload)
		}
	}()

	return out, nil
}
