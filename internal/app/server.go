package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	apihttp "github.com/PunithVT/livekit-voice-agent/api/http"
	apiws "github.com/PunithVT/livekit-voice-agent/api/ws"
	"github.com/PunithVT/livekit-voice-agent/config"
	"github.com/PunithVT/livekit-voice-agent/internal/command"
	"github.com/PunithVT/livekit-voice-agent/internal/files"
	"github.com/PunithVT/livekit-voice-agent/internal/gamify"
	"github.com/PunithVT/livekit-voice-agent/internal/nats"
	"github.com/PunithVT/livekit-voice-agent/internal/quiz"
	"github.com/PunithVT/livekit-voice-agent/internal/redis"
	"github.com/PunithVT/livekit-voice-agent/internal/storage/sqlite"
	"github.com/PunithVT/livekit-voice-agent/internal/token"
	wsint "github.com/PunithVT/livekit-voice-agent/internal/ws"
	"github.com/PunithVT/livekit-voice-agent/pkg/logger"
	"github.com/PunithVT/livekit-voice-agent/service"
)

// App represents the main application structure holding all dependencies
type App struct {
	cfg          config.Config
	logger       logger.Logger
	natsClient   *nats.NATSClient
	redisClient  *redis.RedisClient
	store        *sqlite.Store
	tutorService service.TutorService
	registry     *wsint.Registry
	httpServer   *http.Server
	rootCtx      context.Context
	cancel       context.CancelFunc
}

// NewApp initializes and connects all application dependencies
func NewApp(cfg config.Config) (*App, error) {
	baseLogger := logger.NewLogger(cfg.LogLevel, cfg.LogFile)
	rootCtx := logger.NewContext(context.Background(), baseLogger)
	rootCtx, rootCancel := context.WithCancel(rootCtx)

	log := logger.FromContext(rootCtx).WithModule("app")
	log.Infof("Initializing application components...")

	instanceID := uuid.NewString()

	natsClient, err := nats.NewNATSClient(cfg.NATSURL)
	if err != nil {
		rootCancel()
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	redisClient, err := redis.NewRedisClient(cfg.RedisURL)
	if err != nil {
		rootCancel()
		natsClient.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	store, err := sqlite.Open(cfg.DatabasePath)
	if err != nil {
		rootCancel()
		natsClient.Close()
		redisClient.Close()
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	minter, err := token.NewMinter(cfg.LiveKit.APIKey, cfg.LiveKit.APISecret, cfg.LiveKit.URL, cfg.LiveKit.TokenTTLHours, nil)
	if err != nil {
		rootCancel()
		natsClient.Close()
		redisClient.Close()
		store.Close()
		return nil, fmt.Errorf("failed to create token minter: %w", err)
	}

	fileStore, err := files.NewStore(cfg.UploadDir, baseLogger, nil)
	if err != nil {
		rootCancel()
		natsClient.Close()
		redisClient.Close()
		store.Close()
		return nil, fmt.Errorf("failed to create upload store: %w", err)
	}

	registry := wsint.NewRegistry(baseLogger.WithModule("registry"), nil)
	tutorService := service.NewTutorService(natsClient, redisClient, instanceID, baseLogger.WithModule("service"))

	httpServer := createHTTPServer(rootCtx, cfg.Port, apihttp.APIConfig{
		Registry:     registry,
		TutorService: tutorService,
		Minter:       minter,
		Store:        store,
		Commands:     command.MustSystem(),
		Quizzes:      quiz.NewGenerator(time.Now().UnixNano()),
		Gamify:       gamify.NewEngine(baseLogger, nil),
		Files:        fileStore,
		RootCtx:      rootCtx,
	})

	app := &App{
		cfg:          cfg,
		logger:       log,
		natsClient:   natsClient,
		redisClient:  redisClient,
		store:        store,
		tutorService: tutorService,
		registry:     registry,
		httpServer:   httpServer,
		rootCtx:      rootCtx,
		cancel:       rootCancel,
	}

	log.Infof("Application initialized successfully (instance %s)", instanceID)
	return app, nil
}

func createHTTPServer(ctx context.Context, port int, apiCfg apihttp.APIConfig) *http.Server {
	mux := http.NewServeMux()
	apihttp.RegisterRoutes(mux, apiCfg)
	apiws.RegisterRoutes(mux, apiws.WSConfig{
		Registry:     apiCfg.Registry,
		TutorService: apiCfg.TutorService,
		RootCtx:      ctx,
	})

	return &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}
}

// Start runs the application and handles graceful shutdown on signal
func (a *App) Start() error {
	log := a.logger.WithFields(map[string]interface{}{
		"port": a.cfg.Port,
	})

	log.Infof("Starting application server")

	go func() {
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithFields(map[string]interface{}{
				"error": err.Error(),
			}).Fatalf("HTTP server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	sig := <-quit
	log.WithFields(map[string]interface{}{
		"signal": sig.String(),
	}).Warnf("Received shutdown signal")

	return a.Stop()
}

// Stop gracefully shuts down the server and closes all connections
func (a *App) Stop() error {
	log := a.logger.WithFields(map[string]interface{}{
		"shutdown_timeout": "5s",
	})

	log.Infof("Initiating graceful shutdown")

	a.cancel()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := a.httpServer.Shutdown(ctx); err != nil {
		log.WithFields(map[string]interface{}{
			"error": err.Error(),
		}).Errorf("HTTP server shutdown error")
	}

	log.Infof("Closing NATS connection")
	a.natsClient.Close()

	log.Infof("Closing Redis connection")
	a.redisClient.Close()

	log.Infof("Closing database")
	a.store.Close()

	log.Infof("Shutdown completed successfully")
	return nil
}
