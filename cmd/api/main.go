package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"shareit/internal/api"
	"shareit/internal/clock"
	"shareit/internal/config"
	"shareit/internal/database"
	"shareit/internal/events"
	"shareit/internal/export"
	"shareit/internal/logging"
	"shareit/internal/metrics"
	"shareit/internal/repository"
	"shareit/internal/service"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

func main() {
	if err := run(); err != nil {
		log.Fatalf("Fatal error: %v", err)
	}
}

func run() error {
	cfg, logger, closer, err := loadConfigAndLogger()
	if err != nil {
		return err
	}
	if closer != nil {
		defer (func() { _ = closer.Close() })()
	}

	clk := clock.NewRealClock()
	db, err := initDatabase(cfg, clk, &logger)
	if err != nil {
		return err
	}
	defer db.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	redisClient := initRedis(ctx, cfg, &logger)
	if redisClient != nil {
		defer func() { _ = repository.Close(redisClient) }()
	}
	rateLimits := initRateLimits(ctx, redisClient, &logger)

	eventBus := events.NewEventBus()
	subscribeBookingEvents(eventBus, &logger)

	// Инициализация бизнес-сервисов
	services := api.Services{
		Bookings:   service.NewBookingService(db, db, db, eventBus, clk, &logger),
		Users:      service.NewUserService(db, &logger),
		Items:      service.NewItemService(db, db, db, db, db, clk, &logger),
		Requests:   service.NewRequestService(db, db, db, clk, &logger),
		RateLimits: rateLimits,
		Exporter:   export.NewExporter(cfg.Exports.MaxRows, time.UTC),
	}
	httpServer := api.NewHTTPServer(cfg.API, services, &logger)

	startMetrics(ctx, cfg, &logger)

	if cfg.Backup.Enabled {
		backupService := database.NewBackupService(cfg.Database.Path, cfg.Backup, &logger)
		go backupService.Start(ctx)
	}

	return serve(ctx, httpServer, cfg, &logger)
}

func loadConfigAndLogger() (*config.Config, zerolog.Logger, io.Closer, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "configs/config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("load config: %w", err)
	}

	baseLogger, closer, err := logging.New(cfg.Logging, cfg.App)
	if err != nil {
		return nil, zerolog.Logger{}, nil, fmt.Errorf("init logger: %w", err)
	}
	logger := baseLogger.With().Str("component", "api-main").Logger()

	return cfg, logger, closer, nil
}

func initDatabase(cfg *config.Config, clk clock.Clock, logger *zerolog.Logger) (*database.DB, error) {
	if cfg.Database.Path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
			logger.Error().Err(err).Msg("Ошибка создания директории для базы данных")
			return nil, err
		}
	}

	db, err := database.NewDB(cfg.Database.Path, logger,
		database.WithBusyTimeout(cfg.Database.BusyTimeout),
		database.WithNow(clk.Now),
	)
	if err != nil {
		logger.Error().Err(err).Str("db_path", cfg.Database.Path).Msg("init database")
		return nil, err
	}
	return db, nil
}

func initRedis(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) *redis.Client {
	if cfg.Redis.Address == "" {
		return nil
	}

	redisClient := repository.NewRedisClient(cfg.Redis)
	if err := repository.Ping(ctx, redisClient); err != nil {
		logger.Warn().Err(err).Msg("Redis unavailable, rate limits fall back to memory")
	} else {
		logger.Info().Str("addr", cfg.Redis.Address).Msg("redis connected")
	}
	return redisClient
}

// initRateLimits prefers Redis and falls back to process memory while it is down.
func initRateLimits(ctx context.Context, redisClient *redis.Client, logger *zerolog.Logger) *repository.FailoverRateLimitStore {
	memory := repository.NewMemoryRateLimitStore()
	go sweepRateLimits(ctx, memory, logger)

	return repository.NewFailoverRateLimitStore(
		repository.NewRedisRateLimitStore(redisClient),
		memory,
		logger,
	)
}

func sweepRateLimits(ctx context.Context, store *repository.MemoryRateLimitStore, logger *zerolog.Logger) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := store.Sweep(); n > 0 {
				logger.Debug().Int("removed", n).Msg("expired rate limit windows swept")
			}
		}
	}
}

// subscribeBookingEvents writes an audit line for every booking transition.
func subscribeBookingEvents(bus *events.EventBus, logger *zerolog.Logger) {
	audit := logging.Component(logger, "booking-events")
	handler := func(ev *events.Event) error {
		payload, err := events.DecodeBooking(ev)
		if err != nil {
			audit.Error().Err(err).Str("event", ev.Type).Msg("event bus: decode payload")
			return nil
		}
		audit.Info().
			Str("event", ev.Type).
			Int64("booking_id", payload.BookingID).
			Int64("item_id", payload.ItemID).
			Int64("booker_id", payload.BookerID).
			Int64("owner_id", payload.OwnerID).
			Str("status", payload.Status).
			Msg("booking event")
		return nil
	}
	for _, eventType := range events.BookingEventTypes() {
		bus.Subscribe(eventType, handler)
	}
}

func startMetrics(ctx context.Context, cfg *config.Config, logger *zerolog.Logger) {
	if !cfg.Monitoring.PrometheusEnabled {
		return
	}

	metrics.Register()
	port := cfg.Monitoring.PrometheusPort
	if port == 0 {
		port = 9090
	}
	go startMetricsServer(ctx, port, logger)
}

func serve(ctx context.Context, httpServer *api.HTTPServer, cfg *config.Config, logger *zerolog.Logger) error {
	errCh := make(chan error, 1)
	go func() {
		errCh <- httpServer.Start()
	}()

	logger.Info().Int("http_port", cfg.API.HTTP.Port).Msg("API server started")

	select {
	case <-ctx.Done():
		logger.Info().Msg("shutdown signal received")
	case err := <-errCh:
		if err != nil {
			logger.Error().Err(err).Msg("http server stopped")
			return err
		}
	}

	timeout := time.Duration(cfg.API.HTTP.ShutdownTimeout) * time.Second
	shutdownCtx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error().Err(err).Msg("http shutdown")
	}

	logger.Info().Msg("API server stopped")
	return nil
}

func startMetricsServer(ctx context.Context, port int, logger *zerolog.Logger) {
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())

	srv := &http.Server{Addr: fmt.Sprintf(":%d", port), Handler: mux, ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		ctxShutdown, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(ctxShutdown)
	}()
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error().Err(err).Msg("metrics server error")
	}
}
