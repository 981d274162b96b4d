package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/focusflow/focusflow-api/internal/api/handler"
	"github.com/focusflow/focusflow-api/internal/api/middleware"
	"github.com/focusflow/focusflow-api/internal/core/domain"
	"github.com/focusflow/focusflow-api/internal/core/ports"
)

// Services carries the dependency-injected use-case implementations. They
// are constructed once in cmd/api and passed in; nothing here is a shared
// mutable global, which keeps handlers testable in isolation.
type Services struct {
	Auth          ports.AuthService
	Sessions      ports.SessionService
	Stats         ports.StatsService
	Notifications ports.NotificationService
	Coach         ports.CoachService
	Users         ports.UserRepository
	Resolver      *domain.Resolver
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, jwtSecret string, svc Services, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("focusflow"))

	authMiddleware := middleware.Auth(jwtSecret)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(svc.Auth)
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Sessions ---
	sessionHandler := handler.NewSessionHandler(svc.Sessions)
	sessions := e.Group("/v1/sessions", authMiddleware)
	sessions.GET("", sessionHandler.List)
	sessions.GET("/check", sessionHandler.Check)
	sessions.POST("/start", sessionHandler.Start)
	sessions.POST("/:id/complete", sessionHandler.Complete)
	sessions.POST("/:id/abandon", sessionHandler.Abandon)

	// --- Stats ---
	statsHandler := handler.NewStatsHandler(svc.Stats)
	stats := e.Group("/v1/stats", authMiddleware)
	stats.GET("/today", statsHandler.Today)
	stats.GET("/history", statsHandler.History)
	e.POST("/v1/distractions", statsHandler.RecordDistraction, authMiddleware)

	// --- Notifications ---
	notificationHandler := handler.NewNotificationHandler(svc.Notifications)
	notifications := e.Group("/v1/notifications", authMiddleware)
	notifications.GET("", notificationHandler.List)
	notifications.DELETE("", notificationHandler.ClearAll)
	notifications.POST("/:id/read", notificationHandler.MarkRead)
	notifications.POST("/read-all", notificationHandler.MarkAllRead)
	notifications.GET("/settings", notificationHandler.GetSettings)
	notifications.PUT("/settings", notificationHandler.UpdateSettings)

	// --- Plan ---
	planHandler := handler.NewPlanHandler(svc.Resolver)
	plan := e.Group("/v1/plan", authMiddleware)
	plan.GET("", planHandler.Get)
	plan.GET("/features/:feature", planHandler.CheckFeature)

	// --- AI coach (entitlement-gated) ---
	coachHandler := handler.NewCoachHandler(svc.Coach)
	e.POST("/v1/coach/chat", coachHandler.Chat,
		authMiddleware,
		middleware.RequireFeature(svc.Resolver, domain.FeatureAICoach),
	)

	// --- Admin (role-gated) ---
	adminHandler := handler.NewAdminHandler(svc.Users)
	admin := e.Group("/v1/admin", authMiddleware, middleware.RBAC(domain.RoleAdmin))
	admin.GET("/users", adminHandler.ListUsers)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?

	// --- Observability & docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
