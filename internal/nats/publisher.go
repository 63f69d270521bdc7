package nats

import (
	"encoding/json"
	"fmt"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
)

func roomSubject(room string) string {
	if room == "" {
		return "tutor.events.global"
	}
	return fmt.Sprintf("tutor.room.%s", room)
}

func (c *NATSClient) Publish(subject string, ev domain.Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to serialize event: %w", err)
	}

	return c.Conn.Publish(subject, data)
}

// PublishRoom publishes an event on the room's subject so other server
// instances can fan it out to their local connections.
func (c *NATSClient) PublishRoom(room string, ev domain.Event) error {
	return c.Publish(roomSubject(room), ev)
}
