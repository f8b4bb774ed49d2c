package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBus is a concurrency-safe in-process bus used when no Redis address
// is configured, and by tests that need to observe published events.
type MemoryBus struct {
	mu        sync.RWMutex
	subs      map[string][]chan []byte
	published map[string][][]byte // channel -> marshalled payloads, in publish order
}

// NewMemoryBus creates a new in-memory bus instance.
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		subs:      make(map[string][]chan []byte),
		published: make(map[string][][]byte),
	}
}

// Publish marshals the event and delivers it to all current subscribers of
// the channel. Delivery is synchronous; a subscriber that never drains its
// channel will block the publisher, as a real bus's backpressure would.
func (b *MemoryBus) Publish(ctx context.Context, channel string, event any) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("bus: marshal event for channel %s: %w", channel, err)
	}

	b.mu.Lock()
	b.published[channel] = append(b.published[channel], payload)
	subs := append([]chan []byte(nil), b.subs[channel]...)
	b.mu.Unlock()

	for _, sub := range subs {
		select {
		case sub <- payload:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	return nil
}

// Subscribe registers a new subscriber on the channel.
func (b *MemoryBus) Subscribe(ctx context.Context, channel string) (<-chan []byte, error) {
	sub := make(chan []byte, 16)

	b.mu.Lock()
	b.subs[channel] = append(b.subs[channel], sub)
	b.mu.Unlock()

	go func() {
		<-ctx.Done()
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs[channel] {
			if s == sub {
				b.subs[channel] = append(b.subs[channel][:i], b.subs[channel][i+1:]...)
				close(sub)
				break
			}
		}
	}()

	return sub, nil
}

// Subscribers reports how many subscribers a channel currently has. This
// method is intended for tests only.
func (b *MemoryBus) Subscribers(channel string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs[channel])
}

// Published returns the payloads published on a channel so far. This method
// is intended for tests only.
func (b *MemoryBus) Published(channel string) [][]byte {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return append([][]byte(nil), b.published[channel]...)
}
