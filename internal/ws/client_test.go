package ws

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

func newRoomClient(r *Registry, room, identity string) *Client {
	return NewClient(nil, r, logger.NewLogger("error", ""), room, identity)
}

func TestUnknownEventTypeProducesNoOutbound(t *testing.T) {
	r := newTestRegistry()
	peer := &fakeConn{}
	r.Connect(peer, "roomA", "alice")
	require.Len(t, peer.received(), 1) // welcome only

	c := newRoomClient(r, "roomA", "bob")
	r.Connect(c, "roomA", "bob")
	drainWelcome(t, c)

	c.handleEvent(domain.Event{Type: "telepathy", Content: "ignored"})

	assert.Len(t, peer.received(), 1)
	select {
	case ev := <-c.send:
		t.Fatalf("sender received unexpected event %q", ev.Type)
	default:
	}
}

func TestMessageEventReachesRoomPeersOnly(t *testing.T) {
	r := newTestRegistry()
	peer := &fakeConn{}
	stranger := &fakeConn{}
	r.Connect(peer, "roomA", "alice")
	r.Connect(stranger, "roomB", "carol")

	c := newRoomClient(r, "roomA", "bob")
	r.Connect(c, "roomA", "bob")
	drainWelcome(t, c)

	c.handleEvent(domain.Event{Type: domain.EventMessage, Content: "hi"})

	events := peer.received()
	require.Len(t, events, 2) // welcome + message
	assert.Equal(t, domain.EventMessage, events[1].Type)
	assert.Equal(t, "bob", events[1].User)
	assert.Equal(t, "hi", events[1].Content)
	assert.NotEmpty(t, events[1].Timestamp)

	assert.Len(t, stranger.received(), 1) // welcome only

	// The sender is excluded from its own broadcast.
	select {
	case ev := <-c.send:
		t.Fatalf("sender received its own message back: %q", ev.Type)
	default:
	}
}

func TestPingAnsweredToSenderOnly(t *testing.T) {
	r := newTestRegistry()
	peer := &fakeConn{}
	r.Connect(peer, "roomA", "alice")

	c := newRoomClient(r, "roomA", "bob")
	r.Connect(c, "roomA", "bob")
	drainWelcome(t, c)

	c.handleEvent(domain.Event{Type: domain.EventPing})

	select {
	case ev := <-c.send:
		assert.Equal(t, domain.EventPong, ev.Type)
		assert.NotEmpty(t, ev.Timestamp)
	default:
		t.Fatal("sender did not receive a pong")
	}
	assert.Len(t, peer.received(), 1) // welcome only
}

func drainWelcome(t *testing.T, c *Client) {
	t.Helper()
	select {
	case ev := <-c.send:
		require.Equal(t, domain.EventConnection, ev.Type)
	default:
		t.Fatal("welcome event missing")
	}
}
