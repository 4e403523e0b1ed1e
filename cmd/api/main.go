package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-devconnector-backend/config"
	_ "go-devconnector-backend/docs" // Important for Swagger
	v1 "go-devconnector-backend/internal/delivery/http/v1"
	"go-devconnector-backend/internal/repository/postgres"
	"go-devconnector-backend/internal/usecase"
	"go-devconnector-backend/pkg/auth"
	"go-devconnector-backend/pkg/database"
	"go-devconnector-backend/pkg/github"
	"go-devconnector-backend/pkg/logger"
	"go-devconnector-backend/pkg/redis"
	"go-devconnector-backend/pkg/security"
	"go-devconnector-backend/pkg/validation"

	"github.com/gin-gonic/gin"
	goredis "github.com/redis/go-redis/v9"
)

// @title           DevConnector API
// @version         1.0
// @description     Social network backend for developers: profiles, posts, likes and comments.
// @host            localhost:5000
// @BasePath        /api
// @securityDefinitions.apikey ApiKeyAuth
// @in header
// @name x-auth-token
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init(cfg.LogLevel)
	logger.Log.Info("Starting devconnector backend", "port", cfg.Port, "env", cfg.AppEnv)
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	secLog := security.NewSecurityLogger("devconnector-api", cfg.AppEnv)
	defer func() { _ = secLog.Sync() }()

	ctx := context.Background()

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(ctx, cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional)
	var redisClient *goredis.Client
	redisClient, err = redis.NewClient(ctx, redis.Config{URL: cfg.RedisURL, Password: cfg.RedisPassword})
	switch {
	case errors.Is(err, redis.ErrNotConfigured):
		logger.Log.Warn("Redis not configured, using in-memory rate limiting and no GitHub cache")
	case err != nil:
		logger.Log.Warn("Redis unavailable, continuing without it", "error", err)
		redisClient = nil
	default:
		logger.Log.Info("Redis connection established")
		defer func() { _ = redisClient.Close() }()
	}

	// 5. Setup Repositories
	userRepo := postgres.NewUserRepository(dbPool)
	profileRepo := postgres.NewProfileRepository(dbPool)
	postRepo := postgres.NewPostRepository(dbPool)

	// 6. Setup UseCases
	validate := validation.New()
	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL())
	githubClient := github.NewClient(github.Config{
		BaseURL:  cfg.GithubAPIURL,
		Token:    cfg.GithubToken,
		CacheTTL: time.Duration(cfg.GithubCacheSeconds) * time.Second,
	}, redisClient)

	authUC := usecase.NewAuthUsecase(userRepo, hasher, tokens, validate)
	profileUC := usecase.NewProfileUsecase(profileRepo, githubClient, validate, cfg.CascadePostsOnAccountDelete)
	postUC := usecase.NewPostUsecase(postRepo, userRepo, validate)

	checks := map[string]usecase.DependencyCheck{
		"database": dbPool.Ping,
	}
	if redisClient != nil {
		checks["redis"] = func(ctx context.Context) error {
			return redis.HealthCheck(ctx, redisClient)
		}
	}
	healthUC := usecase.NewHealthUsecase(checks)

	// 7. Setup Login Tracker
	tracker := security.NewLoginTracker(redisClient, security.LoginTrackerConfig{
		MaxAttempts:   cfg.FailedLoginMaxAttempts,
		AttemptWindow: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		BlockDuration: time.Duration(cfg.FailedLoginBlockMinutes) * time.Minute,
		UseIPTracking: true,
	}, secLog)

	// 8. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		AuthUC:       authUC,
		ProfileUC:    profileUC,
		PostUC:       postUC,
		HealthUC:     healthUC,
		LoginTracker: tracker,
		SecurityLog:  secLog,
		Redis:        redisClient,
		Config:       cfg,
	})

	// 9. Start Server
	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
