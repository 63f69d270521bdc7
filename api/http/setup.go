package http

import (
	"context"
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/PunithVT/livekit-voice-agent/internal/command"
	"github.com/PunithVT/livekit-voice-agent/internal/files"
	"github.com/PunithVT/livekit-voice-agent/internal/gamify"
	"github.com/PunithVT/livekit-voice-agent/internal/quiz"
	"github.com/PunithVT/livekit-voice-agent/internal/storage/sqlite"
	"github.com/PunithVT/livekit-voice-agent/internal/token"
	wsint "github.com/PunithVT/livekit-voice-agent/internal/ws"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
	"github.com/PunithVT/livekit-voice-agent/service"
)

// APIConfig carries everything the HTTP surface needs.
type APIConfig struct {
	Registry     *wsint.Registry
	TutorService service.TutorService
	Minter       *token.Minter
	Store        *sqlite.Store
	Commands     *command.System
	Quizzes      *quiz.Generator
	Gamify       *gamify.Engine
	Files        *files.Store
	RootCtx      context.Context
}

type handlers struct {
	cfg  APIConfig
	logg logger.Logger
}

// RegisterRoutes attaches every REST endpoint to the shared mux.
func RegisterRoutes(mux *http.ServeMux, cfg APIConfig) {
	h := &handlers{cfg: cfg, logg: logger.FromContext(cfg.RootCtx).WithModule("http")}

	mux.HandleFunc("GET /api/health", h.health)
	mux.Handle("GET /api/metrics", promhttp.Handler())

	mux.HandleFunc("GET /api/getToken", h.getToken)
	mux.HandleFunc("POST /api/token", h.postToken)

	mux.HandleFunc("GET /api/rooms", h.listRooms)
	mux.HandleFunc("GET /api/ws/rooms", h.listLocalRooms)
	mux.HandleFunc("DELETE /api/rooms/{room}", h.closeRoom)
	mux.HandleFunc("GET /api/rooms/{room}/participants", h.roomParticipants)
	mux.HandleFunc("GET /api/users", h.activeUsers)
	mux.HandleFunc("POST /api/announce", h.announce)
	mux.HandleFunc("POST /api/users/{identity}/notify", h.notifyUser)

	mux.HandleFunc("POST /api/subtopics", h.createSubtopic)
	mux.HandleFunc("GET /api/subtopics", h.listSubtopics)
	mux.HandleFunc("GET /api/subtopics/{id}", h.getSubtopic)

	mux.HandleFunc("POST /api/conversations", h.createConversation)
	mux.HandleFunc("GET /api/conversations/{id}", h.getConversation)
	mux.HandleFunc("POST /api/conversations/{id}/end", h.endConversation)
	mux.HandleFunc("POST /api/conversations/{id}/messages", h.addMessage)
	mux.HandleFunc("GET /api/conversations/{id}/messages", h.listMessages)
	mux.HandleFunc("GET /api/conversations/{id}/stats", h.conversationStats)
	mux.HandleFunc("GET /api/analytics/summary", h.platformSummary)

	mux.HandleFunc("POST /api/users/profile", h.upsertProfile)
	mux.HandleFunc("GET /api/users/{identity}/profile", h.getProfile)

	mux.HandleFunc("POST /api/quiz/generate", h.generateQuiz)
	mux.HandleFunc("GET /api/quiz", h.listQuizzes)
	mux.HandleFunc("GET /api/quiz/{id}", h.getQuiz)
	mux.HandleFunc("POST /api/quiz/{id}/grade", h.gradeQuiz)
	mux.HandleFunc("GET /api/quiz/flashcards", h.flashcards)

	mux.HandleFunc("POST /api/gamification/points", h.awardPoints)
	mux.HandleFunc("GET /api/gamification/stats/{user}", h.gamifyStats)
	mux.HandleFunc("GET /api/gamification/leaderboard", h.leaderboard)
	mux.HandleFunc("GET /api/gamification/achievements", h.achievements)

	mux.HandleFunc("POST /api/upload", h.upload)
	mux.HandleFunc("GET /api/files", h.listFiles)
	mux.HandleFunc("DELETE /api/files/{name}", h.deleteFile)

	mux.HandleFunc("GET /api/agent/prompts", h.agentPrompts)

	mux.HandleFunc("GET /api/commands", h.listCommands)
	mux.HandleFunc("GET /api/commands/help", h.commandsHelp)
	mux.HandleFunc("POST /api/commands/interpret", h.interpretCommand)
}
