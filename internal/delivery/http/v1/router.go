package v1

import (
	"time"

	"go-devconnector-backend/config"
	"go-devconnector-backend/internal/delivery/http/middleware"
	"go-devconnector-backend/internal/domain"
	"go-devconnector-backend/internal/usecase"
	"go-devconnector-backend/pkg/metrics"
	"go-devconnector-backend/pkg/security"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	AuthUC       domain.AuthUsecase
	ProfileUC    domain.ProfileUsecase
	PostUC       domain.PostUsecase
	HealthUC     usecase.HealthUsecase
	LoginTracker *security.LoginTracker
	SecurityLog  *security.SecurityLogger
	Redis        *goredis.Client // optional, rate limits fall back to memory
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	cfg := deps.Config
	window := time.Duration(cfg.RateLimitWindowSeconds) * time.Second

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(cfg.FrontendURL, cfg.IsProduction())) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.Metrics())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RateLimitMiddleware(deps.Redis, middleware.GlobalRateLimitConfig(cfg.RateLimitGlobalThreshold, window), deps.SecurityLog))
	r.Use(middleware.ErrorHandler())

	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	api := r.Group("/api")

	NewHealthHandler(api, deps.HealthUC)

	// Swagger
	api.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(deps.AuthUC, deps.SecurityLog))

	authLimit := middleware.RateLimitMiddleware(deps.Redis, middleware.AuthRateLimitConfig(cfg.RateLimitLoginThreshold, window), deps.SecurityLog)

	NewAuthHandler(api, protected, deps.AuthUC, deps.LoginTracker, deps.SecurityLog, authLimit)
	NewProfileHandler(api, protected, deps.ProfileUC)
	NewPostHandler(protected, deps.PostUC)

	return r
}
