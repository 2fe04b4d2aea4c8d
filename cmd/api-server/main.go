package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"

	"github.com/gin-gonic/gin"

	"microblog/database"
	"microblog/internal/cache"
	"microblog/internal/config"
	"microblog/internal/http-api/handler"
	"microblog/internal/http-api/middleware"
	"microblog/internal/http-api/repository"
	"microblog/internal/http-api/service"
)

func main() {
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("could not load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}

	logger := newLogger(cfg)

	db, err := database.ConnectDB(cfg, logger)
	if err != nil {
		log.Fatalf("could not connect to database: %v", err)
	}

	pages, err := cache.NewRedisPageCache(cfg.RedisURL)
	if err != nil {
		log.Fatalf("could not connect to redis: %v", err)
	}

	// Repositories
	userRepo := repository.NewUserRepository(db)
	groupRepo := repository.NewGroupRepository(db)
	postRepo := repository.NewPostRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	followRepo := repository.NewFollowRepository(db)
	refreshTokenRepo := repository.NewRefreshTokenRepository(db)

	// Services
	authService := service.NewAuthService(userRepo, refreshTokenRepo, cfg)
	postService := service.NewPostService(postRepo, groupRepo, userRepo, followRepo, commentRepo, cfg.PostsPerPage)
	commentService := service.NewCommentService(commentRepo, postRepo)
	followService := service.NewFollowService(followRepo, userRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, int(cfg.AccessTokenTTL.Seconds()), cfg.IsProduction())
	postHandler := handler.NewPostHandler(postService, cfg.MediaPath)
	commentHandler := handler.NewCommentHandler(commentService)
	profileHandler := handler.NewProfileHandler(postService, followService)

	// Router
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.CustomRecovery(handler.ServerErrorPage))
	r.Use(middleware.CheckOrigin(cfg.CORSOrigins))

	requireLogin := middleware.RequireLogin(authService)
	optionalLogin := middleware.OptionalLogin(authService)
	cachePage := middleware.CachePage(pages, cfg.IndexCacheTTL)
	writeLimit := middleware.RateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst)

	handler.RegisterErrorPages(r)
	authHandler.RegisterRoutes(r)
	postHandler.RegisterRoutes(r, requireLogin, cachePage, writeLimit)
	commentHandler.RegisterRoutes(r, requireLogin, writeLimit)
	profileHandler.RegisterRoutes(r, requireLogin, optionalLogin)

	addr := fmt.Sprintf(":%d", cfg.HTTPPort)
	logger.Info("starting api server", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}

func newLogger(cfg *config.Config) *slog.Logger {
	var level slog.Level
	switch cfg.LogLevel {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	default:
		level = slog.LevelInfo
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.LogFormat == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}
