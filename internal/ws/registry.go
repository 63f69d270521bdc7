package ws

import (
	"sync"
	"time"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
)

// Registry tracks active realtime connections grouped by room, plus an
// identity index for targeted delivery. All mutation goes through one lock;
// broadcasts snapshot membership first and prune dead connections afterwards.
type Registry struct {
	mu    sync.RWMutex
	rooms map[string]map[Conn]struct{}
	users map[string]Conn

	logg logger.Logger
	now  func() time.Time
}

func NewRegistry(logg logger.Logger, now func() time.Time) *Registry {
	if now == nil {
		now = time.Now
	}
	return &Registry{
		rooms: make(map[string]map[Conn]struct{}),
		users: make(map[string]Conn),
		logg:  logg,
		now:   now,
	}
}

// Now returns the registry's clock reading, used to stamp events built by
// callers outside this package.
func (r *Registry) Now() time.Time {
	return r.now()
}

// Connect registers an already-accepted connection under a room and identity
// and acknowledges it. A second connection for the same identity overwrites
// the index entry; the older connection stays in its room set until it errors
// out or disconnects explicitly.
func (r *Registry) Connect(c Conn, room, identity string) {
	r.mu.Lock()
	members, ok := r.rooms[room]
	if !ok {
		members = make(map[Conn]struct{})
		r.rooms[room] = members
	}
	members[c] = struct{}{}
	r.users[identity] = c
	r.mu.Unlock()

	r.logg.Infof("connected: %s in room %s", identity, room)

	r.SendToConn(domain.Event{
		Type:   domain.EventConnection,
		Status: "connected",
		Room:   room,
	}.Stamp(r.now()), c)
}

// Disconnect removes a connection from its room (dropping the room once
// empty) and clears the identity index entry when it still points at this
// connection. Calling it again for the same triple is a no-op.
func (r *Registry) Disconnect(c Conn, room, identity string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if members, ok := r.rooms[room]; ok {
		delete(members, c)
		if len(members) == 0 {
			delete(r.rooms, room)
		}
	}

	// Only clear the index if it was not overwritten by a newer connection.
	if current, ok := r.users[identity]; ok && current == c {
		delete(r.users, identity)
	}

	r.logg.Infof("disconnected: %s from room %s", identity, room)
}

// RoomParticipants returns the member count for a room, 0 when absent.
func (r *Registry) RoomParticipants(room string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.rooms[room])
}

// ActiveRooms returns a snapshot of currently non-empty room names.
func (r *Registry) ActiveRooms() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.rooms))
	for name := range r.rooms {
		names = append(names, name)
	}
	return names
}

// SendToConn delivers a single event best effort. A failed send is logged
// and swallowed; a dead peer must never abort the caller.
func (r *Registry) SendToConn(ev domain.Event, c Conn) {
	if err := c.Send(ev); err != nil {
		r.logg.Errorf("send failed: %v", err)
	}
}

// SendToUser delivers to the identity's active connection, if any.
func (r *Registry) SendToUser(identity string, ev domain.Event) {
	r.mu.RLock()
	c, ok := r.users[identity]
	r.mu.RUnlock()
	if !ok {
		return
	}
	r.SendToConn(ev, c)
}

// BroadcastToRoom fans an event out to every member of a room except
// exclude. Connections whose send fails are pruned from the room set after
// the sweep completes.
func (r *Registry) BroadcastToRoom(room string, ev domain.Event, exclude Conn) {
	r.mu.RLock()
	members := make([]Conn, 0, len(r.rooms[room]))
	for c := range r.rooms[room] {
		members = append(members, c)
	}
	r.mu.RUnlock()

	var dead []Conn
	for _, c := range members {
		if c == exclude {
			continue
		}
		if err := c.Send(ev); err != nil {
			r.logg.Errorf("broadcast to room %s failed: %v", room, err)
			dead = append(dead, c)
		}
	}

	r.prune(room, dead)
}

// BroadcastAll fans an event out to every connection in every room, with the
// same lazy cleanup per room.
func (r *Registry) BroadcastAll(ev domain.Event) {
	r.mu.RLock()
	snapshot := make(map[string][]Conn, len(r.rooms))
	for room, members := range r.rooms {
		conns := make([]Conn, 0, len(members))
		for c := range members {
			conns = append(conns, c)
		}
		snapshot[room] = conns
	}
	r.mu.RUnlock()

	for room, conns := range snapshot {
		var dead []Conn
		for _, c := range conns {
			if err := c.Send(ev); err != nil {
				r.logg.Errorf("broadcast all failed in room %s: %v", room, err)
				dead = append(dead, c)
			}
		}
		r.prune(room, dead)
	}
}

// CloseRoom force-closes every connection in a room and drops the room.
func (r *Registry) CloseRoom(room string) int {
	r.mu.Lock()
	members := r.rooms[room]
	delete(r.rooms, room)
	conns := make([]Conn, 0, len(members))
	for c := range members {
		conns = append(conns, c)
	}
	r.mu.Unlock()

	for _, c := range conns {
		if err := c.Close(); err != nil {
			r.logg.Errorf("close in room %s failed: %v", room, err)
		}
	}
	return len(conns)
}

func (r *Registry) prune(room string, dead []Conn) {
	if len(dead) == 0 {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	members, ok := r.rooms[room]
	if !ok {
		return
	}
	for _, c := range dead {
		delete(members, c)
	}
	if len(members) == 0 {
		delete(r.rooms, room)
	}
}
