package ws

import (
	"sync"
	"sync/atomic"

	gws "github.com/gorilla/websocket"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

const sendBuffer = 256

// Client is one websocket connection bound to a room and a user identity.
// Outbound events go through a buffered channel drained by WritePump so the
// registry never blocks on a slow peer.
type Client struct {
	ws       *gws.Conn
	send     chan domain.Event
	done     chan struct{}
	closed   atomic.Bool
	once     sync.Once
	registry *Registry
	logg     logger.Logger

	Room     string
	Identity string

	// Relay, when set, receives room-scoped events that should also reach
	// other server instances (published over NATS by the service layer).
	Relay func(ev domain.Event)
	// OnDisconnect runs once after the read loop ends.
	OnDisconnect func()
}

func NewClient(conn *gws.Conn, registry *Registry, logg logger.Logger, room, identity string) *Client {
	return &Client{
		ws:       conn,
		send:     make(chan domain.Event, sendBuffer),
		done:     make(chan struct{}),
		registry: registry,
		logg:     logg,
		Room:     room,
		Identity: identity,
	}
}

// Send queues an event for delivery. It never blocks; a closed connection or
// a full buffer reports an error so broadcasts can prune this client.
func (c *Client) Send(ev domain.Event) error {
	if c.closed.Load() {
		return ErrConnClosed
	}
	select {
	case c.send <- ev:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSendBufferFull
	}
}

// Close tears the connection down. Safe to call multiple times; it also
// unblocks a pending read so the read loop can run its disconnect path.
func (c *Client) Close() error {
	c.once.Do(func() {
		c.closed.Store(true)
		close(c.done)
		c.ws.Close()
	})
	return nil
}

// ReadPump consumes inbound events until the peer goes away, dispatching
// each by its type discriminator.
func (c *Client) ReadPump() {
	defer func() {
		c.Close()
		if c.OnDisconnect != nil {
			c.OnDisconnect()
		}
	}()

	for {
		var ev domain.Event
		if err := c.ws.ReadJSON(&ev); err != nil {
			if gws.IsUnexpectedCloseError(err, gws.CloseNormalClosure, gws.CloseGoingAway) {
				c.logg.Errorf("read error for %s: %v", c.Identity, err)
			}
			return
		}
		c.handleEvent(ev)
	}
}

// WritePump drains the send channel onto the wire.
func (c *Client) WritePump() {
	defer c.ws.Close()

	for {
		select {
		case ev := <-c.send:
			if err := c.ws.WriteJSON(ev); err != nil {
				c.logg.Errorf("write error for %s: %v", c.Identity, err)
				return
			}
		case <-c.done:
			return
		}
	}
}

func (c *Client) handleEvent(ev domain.Event) {
	switch ev.Type {
	case domain.EventPing:
		c.registry.SendToConn(domain.Event{
			Type: domain.EventPong,
		}.Stamp(c.registry.now()), c)

	case domain.EventMessage, domain.EventTranscription, domain.EventAgentResponse:
		user := ev.User
		if user == "" {
			user = c.Identity
		}
		out := domain.Event{
			Type:    ev.Type,
			Room:    c.Room,
			User:    user,
			Content: ev.Content,
			Data:    ev.Data,
		}.Stamp(c.registry.now())

		c.registry.BroadcastToRoom(c.Room, out, c)
		if c.Relay != nil {
			c.Relay(out)
		}

	default:
		c.logg.Warnf("unknown message type %q from %s", ev.Type, c.Identity)
	}
}
