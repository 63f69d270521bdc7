package http

import (
	"net/http"
	"time"

	"github.com/PunithVT/livekit-voice-agent/internal/domain"
)

func (h *handlers) health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

type tokenResponse struct {
	Token     string `json:"token"`
	Room      string `json:"room"`
	URL       string `json:"url"`
	Identity  string `json:"identity"`
	ExpiresAt string `json:"expires_at"`
}

// getToken mints a room token from query parameters. A missing room gets a
// generated one.
func (h *handlers) getToken(w http.ResponseWriter, r *http.Request) {
	tokenRequests.Inc()

	identity := r.URL.Query().Get("identity")
	if identity == "" {
		identity = r.URL.Query().Get("name")
	}
	if identity == "" {
		tokenErrors.Inc()
		respondError(w, http.StatusBadRequest, "identity is required")
		return
	}
	room := r.URL.Query().Get("room")
	if room == "" {
		roomCreations.Inc()
	}

	t, err := h.cfg.Minter.Mint(identity, room, r.URL.Query().Get("metadata"))
	if err != nil {
		tokenErrors.Inc()
		h.logg.Errorf("token mint failed for %s: %v", identity, err)
		respondError(w, http.StatusInternalServerError, "failed to mint token")
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{
		Token:     t.JWT,
		Room:      t.Room,
		URL:       t.URL,
		Identity:  t.Identity,
		ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
	})
}

func (h *handlers) postToken(w http.ResponseWriter, r *http.Request) {
	tokenRequests.Inc()

	var req struct {
		Identity string `json:"identity"`
		Room     string `json:"room"`
		Metadata string `json:"metadata"`
	}
	if !decodeBody(w, r, &req) {
		tokenErrors.Inc()
		return
	}
	if req.Identity == "" {
		tokenErrors.Inc()
		respondError(w, http.StatusBadRequest, "identity is required")
		return
	}
	if req.Room == "" {
		roomCreations.Inc()
	}

	t, err := h.cfg.Minter.Mint(req.Identity, req.Room, req.Metadata)
	if err != nil {
		tokenErrors.Inc()
		h.logg.Errorf("token mint failed for %s: %v", req.Identity, err)
		respondError(w, http.StatusInternalServerError, "failed to mint token")
		return
	}
	respondJSON(w, http.StatusOK, tokenResponse{
		Token:     t.JWT,
		Room:      t.Room,
		URL:       t.URL,
		Identity:  t.Identity,
		ExpiresAt: t.ExpiresAt.Format(time.RFC3339),
	})
}

// listRooms reports rooms known across all instances (Redis backed).
func (h *handlers) listRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.cfg.TutorService.ActiveRooms()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list rooms")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms, "count": len(rooms)})
}

// listLocalRooms reports rooms with connections on this instance.
func (h *handlers) listLocalRooms(w http.ResponseWriter, r *http.Request) {
	rooms := h.cfg.Registry.ActiveRooms()
	respondJSON(w, http.StatusOK, map[string]interface{}{"rooms": rooms, "count": len(rooms)})
}

func (h *handlers) closeRoom(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	closed := h.cfg.Registry.CloseRoom(room)
	h.logg.Infof("closed room %s (%d connections)", room, closed)
	respondJSON(w, http.StatusOK, map[string]interface{}{"room": room, "closed_connections": closed})
}

func (h *handlers) roomParticipants(w http.ResponseWriter, r *http.Request) {
	room := r.PathValue("room")
	members, err := h.cfg.TutorService.RoomMembers(room)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list participants")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"room":         room,
		"participants": members,
		"count":        len(members),
		"local_count":  h.cfg.Registry.RoomParticipants(room),
	})
}

// announce pushes a room_update event to every local connection, or to a
// single room when one is named.
func (h *handlers) announce(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Room    string `json:"room"`
		Content string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Content == "" {
		respondError(w, http.StatusBadRequest, "content is required")
		return
	}

	ev := domain.Event{
		Type:    domain.EventRoomUpdate,
		Room:    req.Room,
		Content: req.Content,
	}.Stamp(h.cfg.Registry.Now())

	if req.Room == "" {
		h.cfg.Registry.BroadcastAll(ev)
	} else {
		h.cfg.Registry.BroadcastToRoom(req.Room, ev, nil)
	}
	_ = h.cfg.TutorService.RelayEvent(ev)
	respondJSON(w, http.StatusAccepted, map[string]interface{}{"announced": true})
}

// notifyUser delivers an agent_response event to one identity's connection.
func (h *handlers) notifyUser(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Content string                 `json:"content"`
		Data    map[string]interface{} `json:"data"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	identity := r.PathValue("identity")
	ev := domain.Event{
		Type:    domain.EventAgentResponse,
		User:    identity,
		Content: req.Content,
		Data:    req.Data,
	}.Stamp(h.cfg.Registry.Now())

	h.cfg.Registry.SendToUser(identity, ev)
	respondJSON(w, http.StatusAccepted, map[string]interface{}{"delivered_to": identity})
}

func (h *handlers) activeUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.cfg.TutorService.ActiveUsers()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list users")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"users": users, "count": len(users)})
}
