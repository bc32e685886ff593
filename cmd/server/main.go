package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/stemsi/institute-backend/internal/cache"
	"github.com/stemsi/institute-backend/internal/config"
	"github.com/stemsi/institute-backend/internal/database"
	"github.com/stemsi/institute-backend/internal/handler"
	"github.com/stemsi/institute-backend/internal/logger"
	"github.com/stemsi/institute-backend/internal/middleware"
	"github.com/stemsi/institute-backend/internal/model"
	"github.com/stemsi/institute-backend/internal/repository"
	"github.com/stemsi/institute-backend/internal/repository/memory"
	"github.com/stemsi/institute-backend/internal/router"
	"github.com/stemsi/institute-backend/internal/service"
	"github.com/stemsi/institute-backend/internal/storage"
	"github.com/stemsi/institute-backend/internal/validator"
	"github.com/stemsi/institute-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("store", cfg.StoreBackend).
		Str("documents", cfg.DocumentBackend).
		Msg("Starting Institute Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Entity Store ──────────────────────────────────────────────────
	var store *repository.Store
	switch cfg.StoreBackend {
	case config.StoreBackendMemory:
		log.Warn().Msg("Using in-memory store, data is lost on restart")
		store = memory.NewStore()
	case config.StoreBackendPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
		}
		defer pool.Close()
		store = repository.NewPostgresStore(pool)
	default:
		log.Fatal().Str("store", cfg.StoreBackend).Msg("Unknown STORE_BACKEND")
	}

	// ─── Connect to Redis (optional) ───────────────────────────────────
	var reportCache service.ReportCache
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	if rdb != nil {
		defer rdb.Close()
		reportCache = cache.NewRedisReportCache(rdb, cfg.ReportCacheTTL)
	}

	// ─── Document Storage ──────────────────────────────────────────────
	var documentStore service.DocumentStore
	switch cfg.DocumentBackend {
	case config.DocumentBackendOSS:
		ossStore, err := storage.NewOSSStore(cfg)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize OSS document storage")
		}
		documentStore = ossStore
	default:
		documentStore = storage.NewLocalStore(cfg.DocumentDir)
	}

	// ─── Initialize Services ──────────────────────────────────────────
	reportService := service.NewReportService(store.Reports, reportCache, log)
	eligibilityService := service.NewEligibilityService(store)
	documentService := service.NewDocumentService(cfg, documentStore)
	instituteService := service.NewInstituteService(store.Institutes, documentService, reportService, cfg.StrictDocumentStorage, log)
	classService := service.NewClassService(store.Classes, reportService)
	sectionService := service.NewSectionService(store)
	assignmentService := service.NewAssignmentService(store, eligibilityService, log)
	letterService := service.NewLetterService(store.Letters)
	registerService := service.NewRegisterService(store, eligibilityService, reportService)
	shareService := service.NewShareService(store, eligibilityService, log)
	adminService := service.NewAdminService(store, cfg.BcryptCost, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Institute:  handler.NewInstituteHandler(instituteService),
		Class:      handler.NewClassHandler(classService, eligibilityService),
		Section:    handler.NewSectionHandler(sectionService),
		Assignment: handler.NewAssignmentHandler(assignmentService),
		Dispatch:   handler.NewLetterHandler(model.LetterDispatch, letterService),
		Receive:    handler.NewLetterHandler(model.LetterReceive, letterService),
		Income:     handler.NewRegisterHandler(model.RegisterIncome, registerService),
		Expense:    handler.NewRegisterHandler(model.RegisterExpense, registerService),
		Share:      handler.NewShareHandler(shareService),
		Report:     handler.NewReportHandler(reportService),
		Admin:      handler.NewAdminHandler(adminService),
	}
	if cfg.WriteRateLimit > 0 {
		handlers.WriteLimits = middleware.NewRateLimiter(cfg.WriteRateLimit, time.Minute)
		defer handlers.WriteLimits.Stop()
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	// Warming only pays off when reports are cached. Rebuild at half the
	// TTL so entries are replaced before they expire.
	if reportCache != nil {
		reportWarmer := worker.NewReportWarmer(reportService, cfg.ReportCacheTTL/2, log)
		go reportWarmer.Start(workerCtx)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg, log)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	// 1. Stop accepting new HTTP requests (5s timeout).
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	// 2. Stop background workers.
	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
