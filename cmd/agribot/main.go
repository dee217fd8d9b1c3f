package main

import (
	"context"
	"errors"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/liliang-cn/agribot/internal/api"
	"github.com/liliang-cn/agribot/internal/api/app"
	"github.com/liliang-cn/agribot/internal/clock"
	"github.com/liliang-cn/agribot/internal/config"
	"github.com/liliang-cn/agribot/internal/connectivity"
	"github.com/liliang-cn/agribot/internal/knowledge"
	"github.com/liliang-cn/agribot/internal/realtime"
	"github.com/liliang-cn/agribot/internal/repository"
	"github.com/liliang-cn/agribot/internal/service"
	"github.com/liliang-cn/agribot/internal/state"
)

var (
	configPath = flag.String("config", "", "Path to config file")
)

func main() {
	flag.Parse()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to load .env: %v", err)
	}

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer logger.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := repository.NewDB(cfg.Database.Path)
	if err != nil {
		logger.Fatal("Failed to initialize database", zap.Error(err))
	}
	defer db.Close()

	sessionRepo := repository.NewSessionRepository(db)
	consultRepo := repository.NewConsultationRepository(db)
	prefRepo := repository.NewPreferenceRepository(db)

	store, err := newStateStore(ctx, cfg.Session)
	if err != nil {
		logger.Fatal("Failed to initialize state store", zap.String("store", cfg.Session.Store), zap.Error(err))
	}

	// A missing key is not fatal: every query is then answered offline
	var assistant service.Assistant
	gemini, err := service.NewGeminiAssistant(ctx, cfg.Gemini, logger)
	if err != nil {
		logger.Warn("Remote assistant disabled, running offline only", zap.Error(err))
	} else {
		assistant = gemini
	}

	monitor := connectivity.NewMonitor(connectivity.Options{
		Mode:          connectivity.Mode(cfg.Connectivity.Mode),
		ProbeURL:      cfg.Connectivity.ProbeURL,
		ProbeInterval: cfg.Connectivity.ProbeInterval,
		ProbeTimeout:  cfg.Connectivity.ProbeTimeout,
	}, logger)

	hub := realtime.NewHub(logger)
	player := realtime.NewPlayer(hub, logger)
	monitor.Subscribe(func(online bool) {
		hub.Broadcast(realtime.EventConnectivity, map[string]bool{"online": online})
	})

	kb := knowledge.Default()
	clk := clock.Real()

	sessions := service.NewSessionService(store, sessionRepo, hub, logger)
	speech := service.NewSpeechService(service.SpeechDeps{
		Sessions:  sessionRepo,
		Assistant: assistant,
		Checker:   monitor,
		Output:    player,
		Synth:     player,
		Voices:    player,
		Clock:     clk,
		Publisher: hub,
		Logger:    logger,
	})
	player.Attach(speech.Finished)

	consultations := service.NewConsultationService(
		consultRepo,
		clk,
		hub,
		cfg.Consultation.AcceptDelay,
		cfg.Consultation.NotificationTTL,
		logger,
	)
	chat := service.NewChatService(assistant, monitor, kb, sessions, speech, cfg.Gemini.Temperature, logger)
	market := service.NewMarketService(assistant, monitor, sessions, speech, logger)
	features := service.NewFeatureService(sessions, chat, market, consultations)
	branding := service.NewBrandingService(prefRepo, cfg.Branding.PlaceholderURL)
	adminService := service.NewAdminService(sessionRepo, consultations, kb, monitor)

	sessions.OnLogout(consultations.Forget)
	sessions.OnLogout(speech.Forget)
	sessions.OnLogout(player.Forget)
	sessions.OnMute(speech.Stop)

	go hub.Run(ctx)
	if connectivity.Mode(cfg.Connectivity.Mode) == connectivity.ModeAuto {
		go monitor.Run(ctx)
	}

	if cfg.Admin.APIKey == "" {
		logger.Warn("No admin API key configured, admin and branding writes are disabled")
	}

	router := api.SetupRouter(app.Services{
		Sessions:      sessions,
		Chat:          chat,
		Market:        market,
		Speech:        speech,
		Features:      features,
		Consultations: consultations,
		Branding:      branding,
		Hub:           hub,
	}, adminService, api.RouterConfig{
		APIKey:       cfg.Admin.APIKey,
		AllowOrigins: cfg.Server.AllowOrigins,
	}, logger)

	srv := &http.Server{
		Addr:         cfg.Address(),
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 90 * time.Second, // remote generation and TTS are slow
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("Starting AgriBot server",
			zap.String("address", cfg.Address()),
			zap.String("base_url", cfg.Server.BaseURL),
			zap.String("connectivity", cfg.Connectivity.Mode),
			zap.Bool("assistant", assistant != nil),
		)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited")
}

func newStateStore(ctx context.Context, cfg config.SessionConfig) (state.Store, error) {
	if cfg.Store != "redis" {
		return state.NewMemoryStore(), nil
	}
	rdb, err := state.DialRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, err
	}
	return state.NewRedisStore(rdb, cfg.TTL), nil
}
