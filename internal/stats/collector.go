// Package stats keeps lightweight counters about the guestbook, fed by
// created-message events from the bus rather than by polling the store.
package stats

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/nfrund/guestmap/internal/domain"
	"github.com/nfrund/guestmap/internal/geo"
	"github.com/nfrund/guestmap/internal/pubsub"
	"github.com/nfrund/guestmap/internal/topics"
)

// Snapshot is a point-in-time view of the counters.
type Snapshot struct {
	Messages  int `json:"messages"`
	Locations int `json:"locations"`
}

// Collector counts messages and distinct rounded locations. Safe for
// concurrent use.
type Collector struct {
	mu        sync.Mutex
	messages  int
	locations map[string]int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{locations: make(map[string]int)}
}

// Seed primes the counters from an existing listing, so restarts don't zero
// the stats while the bus only carries messages created since boot.
func (c *Collector) Seed(msgs []domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range msgs {
		c.messages++
		c.locations[geo.Key(m.Latitude, m.Longitude)]++
	}
}

// Record counts a single message.
func (c *Collector) Record(msg domain.Message) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages++
	c.locations[geo.Key(msg.Latitude, msg.Longitude)]++
}

// Snapshot returns the current counters.
func (c *Collector) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Messages: c.messages, Locations: len(c.locations)}
}

// HandleCreated is the bus handler for created-message events.
func (c *Collector) HandleCreated(ctx context.Context, msg pubsub.Message) error {
	var m domain.Message
	if err := json.Unmarshal(msg.Payload, &m); err != nil {
		return fmt.Errorf("failed to decode created-message event: %w", err)
	}
	c.Record(m)
	return nil
}

// Subscribe attaches the collector to the bus.
func (c *Collector) Subscribe(ctx context.Context, sub pubsub.Subscriber) error {
	return sub.Subscribe(ctx, topics.MessageCreated, c.HandleCreated)
}
