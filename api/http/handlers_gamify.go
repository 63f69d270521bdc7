package http

import (
	"net/http"
	"strconv"
)

func (h *handlers) awardPoints(w http.ResponseWriter, r *http.Request) {
	var req struct {
		UserID   string `json:"user_id"`
		Activity string `json:"activity"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == "" || req.Activity == "" {
		respondError(w, http.StatusBadRequest, "user_id and activity are required")
		return
	}

	result, err := h.cfg.Gamify.Award(req.UserID, req.Activity)
	if err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, result)
}

func (h *handlers) gamifyStats(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.cfg.Gamify.Profile(r.PathValue("user")))
}

func (h *handlers) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	board := h.cfg.Gamify.Leaderboard(limit)
	respondJSON(w, http.StatusOK, map[string]interface{}{"leaderboard": board, "count": len(board)})
}

func (h *handlers) achievements(w http.ResponseWriter, r *http.Request) {
	catalog := h.cfg.Gamify.Catalog()
	respondJSON(w, http.StatusOK, map[string]interface{}{"achievements": catalog, "count": len(catalog)})
}
