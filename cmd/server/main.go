package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog"

	"github.com/roomfinder/roomfinder-backend/internal/config"
	"github.com/roomfinder/roomfinder-backend/internal/database"
	"github.com/roomfinder/roomfinder-backend/internal/handler"
	"github.com/roomfinder/roomfinder-backend/internal/logger"
	"github.com/roomfinder/roomfinder-backend/internal/middleware"
	"github.com/roomfinder/roomfinder-backend/internal/repository"
	"github.com/roomfinder/roomfinder-backend/internal/router"
	"github.com/roomfinder/roomfinder-backend/internal/service"
	"github.com/roomfinder/roomfinder-backend/internal/validator"
	"github.com/roomfinder/roomfinder-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Str("timezone", cfg.Location.String()).
		Msg("Starting RoomFinder Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	classroomRepo := repository.NewClassroomRepository(pool)
	userRepo := repository.NewUserRepository(pool)
	bookingRepo := repository.NewBookingRepository(pool)
	eventRepo := repository.NewBookingEventRepository(pool)
	catalogCache := repository.NewCatalogCache(rdb)
	sessionStore := repository.NewSessionStore(rdb)
	eventQueue := repository.NewEventQueue(rdb)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, userRepo, sessionStore, log)
	classroomService := service.NewClassroomService(classroomRepo, catalogCache, cfg.CatalogCacheTTL, cfg.Location, log)
	bookingService := service.NewBookingService(classroomRepo, bookingRepo, eventQueue, cfg.Location, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Health: handler.NewHealthHandler(map[string]handler.Pinger{
			"postgres": pool.Ping,
			"redis":    func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
		}, log),
		Classroom: handler.NewClassroomHandler(classroomService),
		Auth:      handler.NewAuthHandler(authService),
		Booking:   handler.NewBookingHandler(bookingService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	eventWorker := worker.NewBookingEventWorker(eventRepo, rdb, log)
	eventWorkerDone := make(chan struct{})
	go eventWorker.Start(workerCtx, eventWorkerDone)

	loginLimiter := middleware.NewRateLimiter(cfg.LoginRatePerMinute, time.Minute)
	go loginLimiter.Run(workerCtx.Done())

	// ─── Prewarm Redis Caches ─────────────────────────────────────────
	// Load the catalog into Redis before accepting traffic.
	if _, err := classroomService.Catalog(ctx); err != nil {
		log.Warn().Err(err).Msg("Catalog prewarm failed")
	}

	// ─── Metrics ───────────────────────────────────────────────────────
	var registry *prometheus.Registry
	if cfg.MetricsEnabled {
		registry = prometheus.NewRegistry()
		registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(cfg, handlers, router.Options{
		Auth:         authService,
		LoginLimiter: loginLimiter,
		Registry:     registry,
	})

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
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

	// 2. Stop background workers and wait for the event queue to drain.
	workerCancel()
	select {
	case <-eventWorkerDone:
	case <-time.After(10 * time.Second):
		log.Warn().Msg("Event worker did not drain in time")
	}

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
