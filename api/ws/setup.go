package ws

import (
	"context"
	"net/http"

	wsint "github.com/PunithVT/livekit-voice-agent/internal/ws"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
	"github.com/PunithVT/livekit-voice-agent/service"
)

type WSConfig struct {
	Registry     *wsint.Registry
	TutorService service.TutorService
	RootCtx      context.Context
}

// RegisterRoutes attaches the websocket endpoint to the shared mux.
func RegisterRoutes(mux *http.ServeMux, cfg WSConfig) {
	log := logger.FromContext(cfg.RootCtx).WithModule("websocket")
	mux.HandleFunc("GET /ws/{room}/{identity}", HandleWebSocket(cfg.Registry, cfg.TutorService, log))
}
