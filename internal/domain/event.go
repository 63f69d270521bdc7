package domain

import "time"

type EventType string

const (
	EventConnection    EventType = "connection"
	EventDisconnect    EventType = "disconnect"
	EventMessage       EventType = "message"
	EventTranscription EventType = "transcription"
	EventAgentResponse EventType = "agent_response"
	EventRoomUpdate    EventType = "room_update"
	EventUserJoined    EventType = "user_joined"
	EventUserLeft      EventType = "user_left"
	EventError         EventType = "error"
	EventPing          EventType = "ping"
	EventPong          EventType = "pong"
)

// Event is the wire payload exchanged over the realtime channel. Only Type is
// interpreted by the dispatch layer; everything else is carried opaquely.
type Event struct {
	Type         EventType              `json:"type"`
	Status       string                 `json:"status,omitempty"`
	Room         string                 `json:"room,omitempty"`
	User         string                 `json:"user,omitempty"`
	Content      string                 `json:"content,omitempty"`
	Timestamp    string                 `json:"timestamp,omitempty"`
	Participants int                    `json:"participants,omitempty"`
	Origin       string                 `json:"origin,omitempty"`
	Data         map[string]interface{} `json:"data,omitempty"`
}

// Stamp returns the event with Timestamp set from the given clock.
func (e Event) Stamp(now time.Time) Event {
	e.Timestamp = now.UTC().Format(time.RFC3339)
	return e
}
