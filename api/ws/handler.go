package ws

import (
	"net/http"

	gws "github.com/gorilla/websocket"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
	wsint "github.com/PunithVT/livekit-voice-agent/internal/ws"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
	"github.com/PunithVT/livekit-voice-agent/service"
)

var upgrader = gws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// HandleWebSocket upgrades /ws/{room}/{identity} requests and runs the
// connection lifecycle: register, announce, pump, announce departure.
func HandleWebSocket(
	registry *wsint.Registry,
	tutorService service.TutorService,
	logg logger.Logger,
) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		room := r.PathValue("room")
		identity := r.PathValue("identity")
		if room == "" || identity == "" {
			http.Error(w, "room and identity are required", http.StatusBadRequest)
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			logg.Errorf("[WS HANDLER] Upgrade error: %v", err)
			return
		}

		client := wsint.NewClient(conn, registry, logg, room, identity)
		registry.Connect(client, room, identity)

		if err := tutorService.RecordJoin(room, identity, func(remote domain.Event) {
			registry.BroadcastToRoom(remote.Room, remote, nil)
		}); err != nil {
			logg.Errorf("[WS HANDLER] Failed to record join for %s: %v", identity, err)
		}

		joined := domain.Event{
			Type:         domain.EventUserJoined,
			Room:         room,
			User:         identity,
			Participants: registry.RoomParticipants(room),
		}.Stamp(registry.Now())
		registry.BroadcastToRoom(room, joined, client)
		_ = tutorService.RelayEvent(joined)

		client.Relay = func(ev domain.Event) {
			_ = tutorService.RelayEvent(ev)
		}
		client.OnDisconnect = func() {
			registry.Disconnect(client, room, identity)

			left := domain.Event{
				Type:         domain.EventUserLeft,
				Room:         room,
				User:         identity,
				Participants: registry.RoomParticipants(room),
			}.Stamp(registry.Now())
			registry.BroadcastToRoom(room, left, nil)
			_ = tutorService.RelayEvent(left)

			if err := tutorService.RecordLeave(room, identity); err != nil {
				logg.Errorf("[WS HANDLER] Failed to record leave for %s: %v", identity, err)
			}
			if registry.RoomParticipants(room) == 0 {
				tutorService.DropRoom(room)
			}
			logg.Infof("[WS HANDLER] %s disconnected from %s", identity, room)
		}

		logg.Infof("[WS HANDLER] New connection from %s (room=%s user=%s)", conn.RemoteAddr(), room, identity)

		go client.ReadPump()
		go client.WritePump()
	}
}
