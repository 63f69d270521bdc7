package http

import (
	"net/http"

	"github.com/PunithVT/livekit-voice-agent/internal/prompts"
)

// agentPrompts hands the out-of-process voice agent its session strings.
func (h *handlers) agentPrompts(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	respondJSON(w, http.StatusOK, map[string]string{
		"instruction": prompts.Instruction(q.Get("subject"), q.Get("topic"), q.Get("style")),
		"welcome":     prompts.Welcome(q.Get("name"), q.Get("topic")),
		"lookup":      prompts.Lookup(q.Get("topic")),
	})
}

func (h *handlers) listCommands(w http.ResponseWriter, r *http.Request) {
	cmds := h.cfg.Commands.Available(r.URL.Query().Get("category"))
	respondJSON(w, http.StatusOK, map[string]interface{}{"commands": cmds, "count": len(cmds)})
}

func (h *handlers) commandsHelp(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"help": h.cfg.Commands.Help()})
}

// interpretCommand runs recognition and execution over a transcript snippet.
func (h *handlers) interpretCommand(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text    string                 `json:"text"`
		Context map[string]interface{} `json:"context"`
	}
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Text == "" {
		respondError(w, http.StatusBadRequest, "text is required")
		return
	}

	name, ok := h.cfg.Commands.Recognize(req.Text)
	if !ok {
		commandInterpretations.WithLabelValues("unrecognized").Inc()
		respondJSON(w, http.StatusOK, map[string]interface{}{"recognized": false})
		return
	}

	result := h.cfg.Commands.Execute(name, req.Context)
	commandInterpretations.WithLabelValues("recognized").Inc()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"recognized": true,
		"result":     result,
	})
}
