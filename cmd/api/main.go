package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	pkgvalidator "github.com/talentwire/interview-orchestrator/pkg/validator"

	"github.com/talentwire/interview-orchestrator/internal/adapter/handler"
	"github.com/talentwire/interview-orchestrator/internal/adapter/repository"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/cache"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/database"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/external/capture"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/external/notify"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/external/speechsynth"
	"github.com/talentwire/interview-orchestrator/internal/infrastructure/storage"
	"github.com/talentwire/interview-orchestrator/internal/usecase/interview"
	"github.com/talentwire/interview-orchestrator/internal/usecase/registry"
	"github.com/talentwire/interview-orchestrator/internal/usecase/signaling"
	"github.com/talentwire/interview-orchestrator/pkg/config"
	"github.com/talentwire/interview-orchestrator/pkg/jwt"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize Echo instance
	e := echo.New()

	// Register validator for request validation
	e.Validator = pkgvalidator.New()

	// Configure Echo
	e.HideBanner = true
	e.HidePort = false

	// Custom logger format
	e.Use(middleware.LoggerWithConfig(middleware.LoggerConfig{
		Format: "${time_rfc3339} | ${status} | ${method} ${uri} | ${latency_human}\n",
	}))

	// Recover from panics
	e.Use(middleware.Recover())

	// CORS middleware
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodPatch},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		AllowCredentials: true,
	}))

	// Initialize dependencies
	log.Println("🔧 Initializing dependencies...")

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	// Initialize Database
	log.Println("📦 Connecting to database...")
	db, err := database.NewPostgresDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer database.CloseDB(db)

	// Run migrations only when explicitly enabled in config.
	// Production deployments should manage schema via sql-migrate.
	if cfg.Database.AutoMigrate {
		if cfg.Server.Environment == "production" {
			log.Fatalf("AutoMigrate is enabled in production. Disable DB_AUTO_MIGRATE or manage schema with sql-migrate.")
		}
		log.Println("🔄 Running migrations (development only) ...")
		if err := database.AutoMigrate(db); err != nil {
			log.Fatalf("Failed to run migrations: %v", err)
		}
	} else {
		log.Println("🔄 Skipping migrations; use sql-migrate for schema migrations in CI/CD/production")
	}

	// Initialize Redis
	log.Println("📦 Connecting to Redis...")
	redisClient, err := cache.NewRedisClient(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	defer redisClient.Close()

	// Initialize report archive storage
	log.Println("🗄️  Connecting to report archive storage...")
	archive, err := storage.NewMinIOClient(&cfg.Storage)
	if err != nil {
		log.Fatalf("Failed to initialize report archive: %v", err)
	}

	// Initialize repositories
	log.Println("⚙️  Initializing repositories...")
	sessionRepo := repository.NewSessionRepository(db)
	reportRepo := repository.NewReportRepository(db)
	questionRepo := repository.NewCachedQuestionRepository(
		repository.NewQuestionRepository(db),
		redisClient,
		logger,
	)

	// Initialize signaling room manager
	log.Println("📡 Initializing signaling room manager...")
	rooms := signaling.NewManager(registry.New[*signaling.Room](), signaling.Config{
		WindowSize:         cfg.Signaling.QualityWindowSize,
		DegradedPacketLoss: cfg.Signaling.DegradedPacketLoss,
		CriticalPacketLoss: cfg.Signaling.CriticalPacketLoss,
		SustainedCritical:  cfg.Signaling.SustainedCritical,
		OpTimeout:          cfg.Signaling.OpTimeout,
	}, logger)

	// Initialize external collaborators
	log.Println("🔊 Initializing speech synthesizer client...")
	synth := speechsynth.NewClient(&cfg.Speech)

	log.Println("📬 Initializing report sink...")
	sink := notify.NewSink(archive, redisClient, logger)

	// Initialize interview orchestrator
	log.Println("🎙️  Initializing interview orchestrator...")
	orchestrator := interview.NewOrchestrator(interview.Config{
		SetupTimeout: cfg.Interview.SetupTimeout,
		ReadyTimeout: cfg.Interview.ReadyTimeout,
	}, rooms, sessionRepo, reportRepo, questionRepo, synth, sink, logger)

	// Initialize transcription adapter for audio-only capture collaborators
	log.Println("📝 Initializing transcription adapter...")
	transcriber := capture.NewAdapter(
		cfg.Speech.AssemblyAIKey,
		cfg.Speech.TranscriptURL,
		cfg.Speech.TranscriptToken,
		orchestrator,
		redisClient,
		logger,
	)

	// Initialize JWT manager for peer room tokens
	log.Println("🔑 Initializing room token manager...")
	tokenManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// Initialize handlers
	log.Println("🚀 Initializing handlers...")
	sessionHandler := handler.NewSession(orchestrator, tokenManager, logger)
	captureWebhook := handler.NewCaptureWebhook(orchestrator, cfg.Speech.WebhookSecret, logger)
	transcriptWebhook := handler.NewTranscriptWebhook(transcriber, cfg.Speech.WebhookSecret, cfg.Speech.TranscriptToken, logger)
	signalingHandler := handler.NewSignaling(rooms, tokenManager, logger)

	// Setup router with handlers
	log.Println("🛣️  Setting up routes...")
	router := handler.NewRouter(cfg, sessionHandler, captureWebhook, transcriptWebhook, signalingHandler)
	router.Setup(e)

	// Start server
	go func() {
		addr := fmt.Sprintf("%s:%s", cfg.Server.Host, cfg.Server.Port)
		log.Printf("🚀 Starting server on %s", addr)
		log.Printf("📝 Environment: %s", cfg.Server.Environment)
		log.Printf("🔗 Health check: http://%s/health", addr)

		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.Server.ShutdownTimeout)*time.Second)
	defer cancel()

	// Cancel live sessions first so partial reports are handed off
	orchestrator.Shutdown(ctx)

	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
