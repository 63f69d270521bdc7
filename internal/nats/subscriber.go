package nats

import (
	"encoding/json"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
)

// SubscribeRoom subscribes this instance to a room's subject and filters out
// events this instance published itself to prevent echo. One subscription
// per room; repeat calls are no-ops.
func (c *NATSClient) SubscribeRoom(room, instanceID string, handleFunc func(domain.Event)) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.SubMapping[room]; exists {
		return nil
	}

	sub, err := c.Conn.Subscribe(roomSubject(room), func(msg *nats.Msg) {
		var ev domain.Event
		if err := json.Unmarshal(msg.Data, &ev); err != nil {
			return // skip invalid payloads
		}
		if ev.Origin != instanceID {
			handleFunc(ev)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to subscribe to room %s: %w", room, err)
	}

	c.SubMapping[room] = sub
	return nil
}

// UnsubscribeRoom drops this instance's subscription for a room, if any.
func (c *NATSClient) UnsubscribeRoom(room string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if sub, exists := c.SubMapping[room]; exists {
		if err := sub.Unsubscribe(); err != nil {
			return fmt.Errorf("failed to unsubscribe: %w", err)
		}
		delete(c.SubMapping, room)
	}
	return nil
}

// CleanupSubscriptions removes all active subscriptions for this client.
// Ignores unsubscribe errors to ensure complete cleanup.
func (c *NATSClient) CleanupSubscriptions() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for room, sub := range c.SubMapping {
		_ = sub.Unsubscribe()
		delete(c.SubMapping, room)
	}
}
