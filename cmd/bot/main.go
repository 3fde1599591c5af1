package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Freeeeeet/reservas_bot/internal/api/router"
	"github.com/Freeeeeet/reservas_bot/internal/app"
	"github.com/Freeeeeet/reservas_bot/internal/bookingapi"
	"github.com/Freeeeeet/reservas_bot/internal/config"
	"github.com/Freeeeeet/reservas_bot/internal/controller"
	"github.com/Freeeeeet/reservas_bot/internal/controller/state"
	"github.com/Freeeeeet/reservas_bot/internal/observability/metrics"
	"github.com/Freeeeeet/reservas_bot/internal/repository"
	"github.com/Freeeeeet/reservas_bot/internal/service"
	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Info("Starting reservas bot",
		zap.String("environment", cfg.Environment),
		zap.String("booking_api", cfg.BookingAPIURL))

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	loc, err := cfg.Location()
	if err != nil {
		logger.Fatal("Invalid timezone", zap.Error(err))
	}

	checks := map[string]router.HealthCheck{}

	// Журнал попыток бронирования (необязательно)
	var (
		submissionLog service.SubmissionLog
		pruner        app.SubmissionPruner
	)
	if dsn := cfg.GetDBDSN(); dsn != "" {
		pool, err := pgxpool.New(ctx, dsn)
		if err != nil {
			logger.Fatal("Failed to create database pool", zap.Error(err))
		}
		defer pool.Close()

		if err := pool.Ping(ctx); err != nil {
			logger.Fatal("Failed to connect to database", zap.Error(err))
		}

		migrator, err := app.NewMigrator(pool, logger)
		if err != nil {
			logger.Fatal("Failed to create migrator", zap.Error(err))
		}
		if err := migrator.Run(ctx); err != nil {
			logger.Fatal("Failed to apply migrations", zap.Error(err))
		}
		migrator.Close()

		submissionRepo := repository.NewSubmissionRepository(pool)
		submissionLog = submissionRepo
		pruner = submissionRepo
		checks["postgres"] = pool.Ping
		logger.Info("✅ Submission log enabled")
	}

	// Хранилище сессий: Redis, если задан адрес, иначе память процесса
	var (
		store  state.Store
		purger app.SessionPurger
	)
	if cfg.RedisAddr != "" {
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer client.Close()

		redisStore := state.NewRedisStore(client, cfg.SessionTTL)
		if err := redisStore.Ping(ctx); err != nil {
			logger.Fatal("Failed to connect to redis", zap.Error(err))
		}
		store = redisStore
		checks["redis"] = redisStore.Ping
		logger.Info("✅ Redis session store enabled", zap.String("addr", cfg.RedisAddr))
	} else {
		manager := state.NewManager()
		store = manager
		purger = manager
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	bookingMetrics := metrics.NewBookingMetrics(registry)

	apiClient := bookingapi.NewClient(cfg.BookingAPIURL,
		bookingapi.WithTimeout(cfg.HTTPTimeout),
		bookingapi.WithLogger(logger.Named("bookingapi")))

	opts := []service.Option{
		service.WithLocation(loc),
		service.WithMetrics(bookingMetrics),
	}
	if submissionLog != nil {
		opts = append(opts, service.WithSubmissionLog(submissionLog))
	}
	bookingService := service.NewBookingService(apiClient, store, logger, opts...)

	scheduler := app.NewScheduler(purger, pruner, app.SchedulerConfig{
		Interval:            time.Hour,
		SessionTTL:          cfg.SessionTTL,
		SubmissionRetention: cfg.SubmissionRetention,
	}, logger)
	scheduler.Start(ctx)
	defer scheduler.Stop()

	opsServer := router.NewServer(cfg.HTTPAddr, router.New(&router.Config{
		Logger:         logger,
		MetricsHandler: promhttp.HandlerFor(registry, promhttp.HandlerOpts{}),
		Checks:         checks,
	}), logger)
	opsServer.Start()
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		opsServer.Shutdown(shutdownCtx)
	}()

	b, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(b, bookingService, logger)
	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Warn("Failed to register bot commands menu", zap.Error(err))
	}

	botController.Start(ctx)
	logger.Info("Bot stopped")
}
