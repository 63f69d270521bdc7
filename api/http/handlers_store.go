package http

import (
	"net/http"
	"strconv"
)

func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	return id, err == nil
}

func (h *handlers) createSubtopic(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Topic    string `json:"topic"`
		Subtopic string `json:"subtopic"`
		Content  string `json:"content"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Topic == "" || req.Subtopic == "" {
		respondError(w, http.StatusBadRequest, "topic and subtopic are required")
		return
	}

	st, err := h.cfg.Store.CreateSubtopic(req.Topic, req.Subtopic, req.Content)
	if err != nil {
		h.logg.Errorf("create subtopic failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create subtopic")
		return
	}
	respondJSON(w, http.StatusCreated, st)
}

func (h *handlers) listSubtopics(w http.ResponseWriter, r *http.Request) {
	subtopics, err := h.cfg.Store.ListSubtopics(r.URL.Query().Get("topic"))
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list subtopics")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"subtopics": subtopics, "count": len(subtopics)})
}

func (h *handlers) getSubtopic(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	st, found, err := h.cfg.Store.GetSubtopic(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load subtopic")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "subtopic not found")
		return
	}
	respondJSON(w, http.StatusOK, st)
}

func (h *handlers) createConversation(w http.ResponseWriter, r *http.Request) {
	var req struct {
		RoomName     string                 `json:"room_name"`
		UserIdentity string                 `json:"user_identity"`
		Metadata     map[string]interface{} `json:"metadata"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.RoomName == "" || req.UserIdentity == "" {
		respondError(w, http.StatusBadRequest, "room_name and user_identity are required")
		return
	}

	conv, err := h.cfg.Store.CreateConversation(req.RoomName, req.UserIdentity, req.Metadata)
	if err != nil {
		h.logg.Errorf("create conversation failed: %v", err)
		respondError(w, http.StatusInternalServerError, "failed to create conversation")
		return
	}
	respondJSON(w, http.StatusCreated, conv)
}

func (h *handlers) getConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	conv, found, err := h.cfg.Store.GetConversation(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load conversation")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "conversation not found")
		return
	}
	respondJSON(w, http.StatusOK, conv)
}

func (h *handlers) endConversation(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	if err := h.cfg.Store.EndConversation(id); err != nil {
		respondError(w, http.StatusInternalServerError, "failed to end conversation")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"id": id, "ended": true})
}

func (h *handlers) addMessage(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	var req struct {
		Role     string                 `json:"role"`
		Content  string                 `json:"content"`
		Metadata map[string]interface{} `json:"metadata"`
	}
	if !decodeBody(w, r, &req) {
		return
	}

	msg, err := h.cfg.Store.AddMessage(id, req.Role, req.Content, req.Metadata)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusCreated, msg)
}

func (h *handlers) listMessages(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))

	msgs, err := h.cfg.Store.ConversationMessages(id, limit)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to list messages")
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{"messages": msgs, "count": len(msgs)})
}

func (h *handlers) conversationStats(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		respondError(w, http.StatusBadRequest, "invalid id")
		return
	}
	stats, err := h.cfg.Store.Stats(id)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute stats")
		return
	}
	respondJSON(w, http.StatusOK, stats)
}

func (h *handlers) platformSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.cfg.Store.PlatformSummary()
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to compute summary")
		return
	}
	respondJSON(w, http.StatusOK, summary)
}

func (h *handlers) upsertProfile(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserIdentity string                 `json:"user_identity"`
		DisplayName  string                 `json:"display_name"`
		Preferences  map[string]interface{} `json:"preferences"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserIdentity == "" {
		respondError(w, http.StatusBadRequest, "user_identity is required")
		return
	}

	profile, err := h.cfg.Store.UpsertUserProfile(req.UserIdentity, req.DisplayName, req.Preferences)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to save profile")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}

func (h *handlers) getProfile(w http.ResponseWriter, r *http.Request) {
	identity := r.PathValue("identity")
	profile, found, err := h.cfg.Store.UserProfile(identity)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to load profile")
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, "profile not found")
		return
	}
	respondJSON(w, http.StatusOK, profile)
}
