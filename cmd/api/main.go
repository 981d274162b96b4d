package main

import (
	"context"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/focusflow/focusflow-api/internal/api"
	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/service"
	"github.com/focusflow/focusflow-api/internal/infrastructure/ai"
	"github.com/focusflow/focusflow-api/internal/infrastructure/config"
	mongodb "github.com/focusflow/focusflow-api/internal/infrastructure/db/mongo"
	redisdb "github.com/focusflow/focusflow-api/internal/infrastructure/db/redis"
	"github.com/focusflow/focusflow-api/internal/infrastructure/queue"
	"github.com/focusflow/focusflow-api/pkg/logger"

	_ "github.com/focusflow/focusflow-api/docs"
)

// @title        FocusFlow API
// @version      1.0
// @description  Focus-session tracking, daily limits, notifications and AI coaching.
//
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	_ = godotenv.Load()

	cfg := config.Load()

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// --- Infrastructure ---
	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	rdb, err := redisdb.Connect(ctx, redisdb.Config{
		Addr: cfg.Redis.Addr,
		DB:   cfg.Redis.DB,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("redis connection failed")
	}
	defer func() { _ = rdb.Close() }()

	coachClient, err := ai.NewClient(ai.Config{
		APIKey:   cfg.Coach.APIKey,
		Model:    cfg.Coach.Model,
		Endpoint: cfg.Coach.Endpoint,
	})
	if err != nil {
		// Missing credentials are a deployment mistake; fail fast rather
		// than serving a coach that can never answer.
		log.Fatal().Err(err).Msg("coach client configuration invalid")
	}

	// --- Repositories ---
	userRepo := mongodb.NewUserRepository(db)
	sessionRepo := mongodb.NewSessionRepository(db)
	statsRepo := mongodb.NewStatsRepository(db, log)
	notificationRepo := mongodb.NewNotificationRepository(db)
	settingsRepo := mongodb.NewSettingsRepository(db)
	quota := redisdb.NewQuotaStore(rdb)

	for name, idx := range map[string]interface {
		EnsureIndexes(context.Context) error
	}{
		"users":         userRepo,
		"daily_stats":   statsRepo,
		"sessions":      sessionRepo,
		"notifications": notificationRepo,
	} {
		if err := idx.EnsureIndexes(ctx); err != nil {
			log.Fatal().Err(err).Str("collection", name).Msg("index creation failed")
		}
	}

	// --- Services ---
	resolver := domain.NewResolver(cfg.AdminEmails)

	notificationService := service.NewNotificationService(notificationRepo, settingsRepo, nil, log)
	dispatcher := queue.NewDispatcher(0, notificationService, log)
	dispatcher.Start(ctx)

	authService := service.NewAuthService(userRepo, resolver, cfg.JWTSecret, 24*time.Hour)
	sessionService := service.NewSessionService(sessionRepo, statsRepo, quota, resolver, dispatcher, log)
	statsService := service.NewStatsService(statsRepo, settingsRepo, quota, dispatcher, log)
	coachService := service.NewCoachService(coachClient, log)

	e := api.NewRouter(db, rdb, cfg.JWTSecret, api.Services{
		Auth:          authService,
		Sessions:      sessionService,
		Stats:         statsService,
		Notifications: notificationService,
		Coach:         coachService,
		Users:         userRepo,
		Resolver:      resolver,
	}, log)

	// --- Serve ---
	go func() {
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server stopped")
		}
	}()
	log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("focusflow api listening")

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
	log.Info().Msg("focusflow api stopped")
}
