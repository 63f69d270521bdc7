package ws

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

type fakeConn struct {
	mu     sync.Mutex
	events []domain.Event
	fail   bool
	closed bool
}

func (f *fakeConn) Send(ev domain.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.fail {
		return ErrConnClosed
	}
	f.events = append(f.events, ev)
	return nil
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) received() []domain.Event {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]domain.Event, len(f.events))
	copy(out, f.events)
	return out
}

func newTestRegistry() *Registry {
	fixed := time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	return NewRegistry(logger.NewLogger("error", ""), func() time.Time { return fixed })
}

func TestConnectSendsWelcomeToNewConnOnly(t *testing.T) {
	r := newTestRegistry()
	c1 := &fakeConn{}
	c2 := &fakeConn{}

	r.Connect(c1, "algebra-101", "alice")
	r.Connect(c2, "algebra-101", "bob")

	events := c1.received()
	require.Len(t, events, 1)
	assert.Equal(t, domain.EventConnection, events[0].Type)
	assert.Equal(t, "connected", events[0].Status)
	assert.Equal(t, "algebra-101", events[0].Room)
	assert.NotEmpty(t, events[0].Timestamp)

	// bob's connect must not land on alice.
	require.Len(t, c2.received(), 1)
	assert.Len(t, c1.received(), 1)
}

func TestConnectDisconnectRoundTrip(t *testing.T) {
	r := newTestRegistry()
	c := &fakeConn{}

	r.Connect(c, "roomA", "alice")
	assert.Equal(t, 1, r.RoomParticipants("roomA"))
	assert.Contains(t, r.ActiveRooms(), "roomA")

	r.Disconnect(c, "roomA", "alice")
	assert.Equal(t, 0, r.RoomParticipants("roomA"))
	assert.NotContains(t, r.ActiveRooms(), "roomA")
}

func TestDisconnectIdempotent(t *testing.T) {
	r := newTestRegistry()
	c := &fakeConn{}

	r.Connect(c, "roomA", "alice")
	r.Disconnect(c, "roomA", "alice")
	r.Disconnect(c, "roomA", "alice")

	assert.Equal(t, 0, r.RoomParticipants("roomA"))
	assert.Empty(t, r.ActiveRooms())
}

func TestIdentityOverwriteLastWriterWins(t *testing.T) {
	r := newTestRegistry()
	c1 := &fakeConn{}
	c2 := &fakeConn{}

	r.Connect(c1, "roomA", "alice")
	r.Connect(c2, "roomA", "alice")

	before1 := len(c1.received())
	r.SendToUser("alice", domain.Event{Type: domain.EventMessage, Content: "hi"})

	assert.Len(t, c1.received(), before1, "stale connection must not receive targeted sends")
	events := c2.received()
	require.NotEmpty(t, events)
	assert.Equal(t, "hi", events[len(events)-1].Content)

	// Disconnecting the stale connection must not clear the newer mapping.
	r.Disconnect(c1, "roomA", "alice")
	r.SendToUser("alice", domain.Event{Type: domain.EventMessage, Content: "again"})
	events = c2.received()
	assert.Equal(t, "again", events[len(events)-1].Content)
}

func TestSendToUserUnknownIdentityIsNoOp(t *testing.T) {
	r := newTestRegistry()
	r.SendToUser("ghost", domain.Event{Type: domain.EventMessage})
}

func TestBroadcastToRoomExcludesSender(t *testing.T) {
	r := newTestRegistry()
	c1 := &fakeConn{}
	c2 := &fakeConn{}
	r.Connect(c1, "algebra-101", "alice")
	r.Connect(c2, "algebra-101", "bob")

	before1 := len(c1.received())
	r.BroadcastToRoom("algebra-101", domain.Event{Type: domain.EventMessage, Content: "hi"}, c1)

	assert.Len(t, c1.received(), before1, "excluded connection received a broadcast")
	events := c2.received()
	require.NotEmpty(t, events)
	assert.Equal(t, "hi", events[len(events)-1].Content)
}

func TestBroadcastPrunesDeadConnections(t *testing.T) {
	r := newTestRegistry()
	c1 := &fakeConn{}
	c2 := &fakeConn{fail: true}
	r.Connect(c1, "algebra-101", "alice")
	r.Connect(c2, "algebra-101", "bob")
	assert.Equal(t, 2, r.RoomParticipants("algebra-101"))

	r.BroadcastToRoom("algebra-101", domain.Event{Type: domain.EventMessage, Content: "hi"}, c1)

	assert.Equal(t, 1, r.RoomParticipants("algebra-101"))
}

func TestBroadcastPruneDropsEmptyRoom(t *testing.T) {
	r := newTestRegistry()
	c := &fakeConn{fail: true}
	r.Connect(c, "roomA", "alice")

	r.BroadcastToRoom("roomA", domain.Event{Type: domain.EventMessage}, nil)

	assert.Equal(t, 0, r.RoomParticipants("roomA"))
	assert.Empty(t, r.ActiveRooms())
}

func TestBroadcastAll(t *testing.T) {
	r := newTestRegistry()
	c1 := &fakeConn{}
	c2 := &fakeConn{}
	c3 := &fakeConn{fail: true}
	r.Connect(c1, "roomA", "alice")
	r.Connect(c2, "roomB", "bob")
	r.Connect(c3, "roomB", "carol")

	r.BroadcastAll(domain.Event{Type: domain.EventRoomUpdate, Content: "maintenance"})

	for _, c := range []*fakeConn{c1, c2} {
		events := c.received()
		require.NotEmpty(t, events)
		assert.Equal(t, domain.EventRoomUpdate, events[len(events)-1].Type)
	}
	assert.Equal(t, 1, r.RoomParticipants("roomB"))
}

func TestCloseRoom(t *testing.T) {
	r := newTestRegistry()
	c1 := &fakeConn{}
	c2 := &fakeConn{}
	r.Connect(c1, "roomA", "alice")
	r.Connect(c2, "roomA", "bob")

	closed := r.CloseRoom("roomA")

	assert.Equal(t, 2, closed)
	assert.True(t, c1.closed)
	assert.True(t, c2.closed)
	assert.Equal(t, 0, r.RoomParticipants("roomA"))
}

func TestConcurrentMutationAndBroadcast(t *testing.T) {
	r := newTestRegistry()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := &fakeConn{}
			r.Connect(c, "roomA", "user")
			r.BroadcastToRoom("roomA", domain.Event{Type: domain.EventMessage}, nil)
			r.Disconnect(c, "roomA", "user")
		}()
	}
	wg.Wait()

	assert.Equal(t, 0, r.RoomParticipants("roomA"))
}
