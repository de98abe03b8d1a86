package handlers

import (
	"context"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"portfoliopal/api/internal/ai"
	"portfoliopal/api/internal/config"
	"portfoliopal/api/internal/middleware"
	"portfoliopal/api/internal/models"
	"portfoliopal/api/internal/repository"
	"portfoliopal/api/internal/service"
	"portfoliopal/api/internal/store"
)

// userDirectory is the read surface the handlers need from the user
// repository: session resolution plus the admin listing.
type userDirectory interface {
	middleware.UserLoader
	ListRecent(ctx context.Context, limit int64) ([]models.User, error)
}

// activityLog is the read surface the handlers need from the activity
// repository.
type activityLog interface {
	ListRecent(ctx context.Context, limit int64) ([]models.Activity, error)
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	authService *service.AuthService
	gate        service.AdminGate
	throttle    *service.LoginThrottle
	generator   ai.TextGenerator
	store       *store.Store
	cache       *redis.Client
	users       userDirectory
	activity    activityLog
}

func NewHandlerSet(log zerolog.Logger, docStore *store.Store, cache *redis.Client, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(docStore)
	resetRepo := repository.NewResetRepository(docStore)
	activityRepo := repository.NewActivityRepository(docStore)
	auth := service.NewAuthService(userRepo, resetRepo, activityRepo, cfg, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		authService: auth,
		gate:        service.NewAdminGate(cfg.Auth.AdminEmail()),
		throttle:    service.NewLoginThrottle(cache, cfg.Throttle, log),
		generator:   ai.New(cfg.AI, log),
		store:       docStore,
		cache:       cache,
		users:       userRepo,
		activity:    activityRepo,
	}
}

func (h HandlerSet) Register(engine *gin.Engine) {
	engine.GET("/", h.Root)
	engine.GET("/test", h.Status)

	api := engine.Group("/api")
	api.GET("/hello", h.Hello)

	auth := api.Group("/auth")
	auth.POST("/signup", middleware.Throttle(h.throttle), h.Signup)
	auth.POST("/login", middleware.Throttle(h.throttle), h.Login)
	auth.POST("/forgot-password", h.ForgotPassword)
	auth.POST("/reset-password", h.ResetPassword)
	auth.GET("/me", middleware.Auth(h.cfg.Auth.SecretKey, h.users), h.Me)

	admin := api.Group("/admin")
	admin.Use(
		middleware.Auth(h.cfg.Auth.SecretKey, h.users),
		middleware.RequireAdmin(h.gate),
	)
	admin.GET("/overview", h.AdminOverview)

	api.POST("/activity",
		middleware.Auth(h.cfg.Auth.SecretKey, h.users),
		middleware.RequireCSRF(),
		h.LogActivity,
	)

	aiGroup := api.Group("/ai")
	aiGroup.POST("/project-writer", h.ProjectWriter)
	aiGroup.POST("/portfolio", h.Portfolio)
}
