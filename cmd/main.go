package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/complyline/deadline-service/internal/config"
	"github.com/complyline/deadline-service/internal/handler"
	"github.com/complyline/deadline-service/internal/health"
	"github.com/complyline/deadline-service/internal/infra/calendar"
	"github.com/complyline/deadline-service/internal/infra/email"
	"github.com/complyline/deadline-service/internal/infra/persistence"
	"github.com/complyline/deadline-service/internal/infra/ratelimitstore"
	"github.com/complyline/deadline-service/internal/observability"
	"github.com/complyline/deadline-service/internal/observability/metrics"
	"github.com/complyline/deadline-service/internal/observability/middleware"
	"github.com/complyline/deadline-service/internal/service/ratelimit"
	"github.com/complyline/deadline-service/internal/service/recurrence"
	"github.com/complyline/deadline-service/internal/service/reminder"
	"github.com/complyline/deadline-service/internal/service/tasks"
	"github.com/complyline/deadline-service/internal/service/urgency"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Local development convenience; absent files are fine.
	_ = godotenv.Load()

	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "deadline-service"
	}

	obs, err := observability.Init(ctx, observability.Config{
		ServiceName:  serviceName,
		Version:      Version,
		Environment:  observability.EnvironmentFromOS(),
		OTLPEndpoint: os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT"),
		SamplingRate: 1.0,
	})
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	reminderMetrics, err := metrics.NewReminderMetrics()
	if err != nil {
		slog.Error("failed to initialize reminder metrics", slog.String("error", err.Error()))
		return 1
	}

	rateLimitMetrics, err := metrics.NewRateLimitMetrics()
	if err != nil {
		slog.Error("failed to initialize rate limit metrics", slog.String("error", err.Error()))
		return 1
	}

	db, err := persistence.Open(cfg.Database.DSN)
	if err != nil {
		slog.Error("failed to connect database",
			slog.String("event", "database.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := persistence.AutoMigrate(db); err != nil {
		slog.Error("failed to migrate database schema",
			slog.String("event", "database.migrate.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	slog.Info("database connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	if err := redisotel.InstrumentTracing(redisClient); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisotel.InstrumentMetrics(redisClient); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	if err := redisClient.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		return 1
	}

	defer func() {
		if err := redisClient.Close(); err != nil {
			slog.Warn("failed to close redis client", slog.String("error", err.Error()))
		}
	}()

	slog.Info("redis connected",
		slog.String("addr", cfg.Redis.Addr),
	)

	taskRepo := persistence.NewTaskRepository(db)
	notificationRepo := persistence.NewNotificationLogRepository(db)
	profileRepo := persistence.NewProfileRepository(db)

	var syncer calendar.Syncer
	if cfg.Calendar.Enabled() {
		googleSyncer, err := calendar.NewGoogleSyncer(ctx, calendar.GoogleConfig{
			ClientID:     cfg.Calendar.ClientID,
			ClientSecret: cfg.Calendar.ClientSecret,
			RefreshToken: cfg.Calendar.RefreshToken,
			CalendarID:   cfg.Calendar.CalendarID,
		})
		if err != nil {
			slog.Error("failed to initialize calendar sync", slog.String("error", err.Error()))
			return 1
		}
		syncer = googleSyncer
		slog.Info("calendar sync enabled")
	} else {
		slog.Info("calendar sync disabled, credentials not configured")
	}

	classifier := urgency.NewClassifier()
	engine := recurrence.NewEngine()

	taskService := tasks.NewService(taskRepo, engine, classifier, syncer)

	emailClient := email.NewClient(cfg.Email.APIURL, cfg.Email.APIKey, cfg.Email.From)
	reminderService := reminder.NewService(
		taskRepo,
		profileRepo,
		notificationRepo,
		emailClient,
		classifier,
		reminderMetrics,
		cfg.Email.Pace,
	)

	limiterStore := ratelimitstore.NewRedisStore(redisClient)
	limitWindow := time.Duration(cfg.RateLimit.WindowMinutes) * time.Minute
	adminLimiter := ratelimit.NewLimiter(limiterStore, cfg.RateLimit.AdminMax, limitWindow)
	clientLimiter := ratelimit.NewLimiter(limiterStore, cfg.RateLimit.ClientMax, limitWindow)

	taskHandler := handler.NewTaskHandler(taskService)
	reminderHandler := handler.NewReminderHandler(reminderService)
	calendarHandler := handler.NewCalendarHandler(taskService)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready"},
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	healthChecker := health.NewChecker(db, redisClient, Version)
	r.GET("/health/live", healthChecker.LiveHandler())
	r.GET("/health/ready", healthChecker.ReadyHandler())
	r.GET("/health", healthChecker.ReadyHandler())

	v1 := r.Group("/api/v1")
	{
		taskHandler.Register(v1)
		v1.POST("/reminders/send",
			handler.RateLimit(adminLimiter, "reminders_admin", rateLimitMetrics),
			reminderHandler.HandleSend,
		)
		v1.POST("/reminders/client",
			handler.RateLimit(clientLimiter, "reminders_client", rateLimitMetrics),
			reminderHandler.HandleSendForClient,
		)
		v1.POST("/calendar/sync", calendarHandler.HandleSync)
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("rate_limit_window_minutes", cfg.RateLimit.WindowMinutes),
			slog.Int("rate_limit_admin_max", cfg.RateLimit.AdminMax),
			slog.Int("rate_limit_client_max", cfg.RateLimit.ClientMax),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}
