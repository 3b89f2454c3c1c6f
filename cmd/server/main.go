package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/marcp/critics-eye-backend/config"
	"github.com/marcp/critics-eye-backend/internal/app/controller"
	"github.com/marcp/critics-eye-backend/internal/app/repository"
	"github.com/marcp/critics-eye-backend/internal/app/service"
	"github.com/marcp/critics-eye-backend/internal/db"
	"github.com/marcp/critics-eye-backend/internal/middleware"
	"github.com/marcp/critics-eye-backend/internal/router"
	"github.com/marcp/critics-eye-backend/internal/scheduler"
	"github.com/marcp/critics-eye-backend/internal/storage"
	"github.com/marcp/critics-eye-backend/internal/websocket"
	"github.com/marcp/critics-eye-backend/pkg/logger"
	"github.com/marcp/critics-eye-backend/pkg/mailer"
	"github.com/marcp/critics-eye-backend/pkg/redis"
)

const shutdownTimeout = 10 * time.Second

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	// Initialize logger
	logLevel := "info"
	logFormat := "json"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
		logFormat = "console"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting The Critic's Eye backend", map[string]interface{}{
		"environment": cfg.Server.Environment,
		"port":        cfg.Server.Port,
		"log_level":   logLevel,
	})

	// Initialize database
	if err := db.Initialize(&cfg.Database); err != nil {
		logger.Fatal("Failed to initialize database", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			logger.Error("Failed to close database connection", err)
		}
	}()

	if err := db.Migrate(); err != nil {
		logger.Fatal("Failed to run migrations", err)
	}
	if err := db.Seed(db.GetDB()); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Redis holds revoked token IDs; without it logout cannot be enforced
	if err := redis.Init(&cfg.Redis); err != nil {
		logger.Fatal("Failed to initialize redis", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close redis connection", err)
		}
	}()
	blacklist := redis.NewTokenBlacklist(redis.GetClient())

	// Score feed
	hub := websocket.NewHub()
	go hub.Run()
	defer hub.Stop()

	// Initialize repositories
	gdb := db.GetDB()
	userRepo := repository.NewUserRepository(gdb)
	resetRepo := repository.NewPasswordResetRepository(gdb)
	productRepo := repository.NewProductRepository(gdb)
	typeRepo := repository.NewProductTypeRepository(gdb)
	genreRepo := repository.NewGenreRepository(gdb)
	linkRepo := repository.NewProductGenreRepository(gdb)
	reviewRepo := repository.NewReviewRepository(gdb)
	commentRepo := repository.NewCommentRepository(gdb)

	// Initialize services
	scoreService := service.NewScoreService(productRepo, reviewRepo, hub)
	authService := service.NewAuthService(userRepo, blacklist, cfg.JWT.Secret, cfg.JWT.TokenExpiry)
	resetService := service.NewPasswordResetService(resetRepo, userRepo, mailer.NewSMTPMailer(cfg.Mail))
	productService := service.NewProductService(productRepo, typeRepo, scoreService)
	reviewService := service.NewReviewService(reviewRepo, productRepo, scoreService)
	commentService := service.NewCommentService(commentRepo, reviewRepo)
	genreService := service.NewGenreService(genreRepo)
	typeService := service.NewProductTypeService(typeRepo)
	productGenreService := service.NewProductGenreService(linkRepo, productRepo, genreRepo)
	userService := service.NewUserService(userRepo)
	imageService := service.NewImageService(storage.NewS3Storage(cfg.S3), productRepo, userRepo, cfg.Upload.MaxSizeKB)

	// Housekeeping
	cleanup := scheduler.NewResetCleanupScheduler(cfg.Scheduler.ResetCleanupSchedule, resetService)
	if err := cleanup.Start(); err != nil {
		logger.Fatal("Failed to start reset cleanup scheduler", err)
	}
	defer cleanup.Stop()

	// Setup router
	r := router.NewRouter(
		controller.NewAuthController(authService, resetService),
		controller.NewProductController(productService),
		controller.NewReviewController(reviewService),
		controller.NewCommentController(commentService),
		controller.NewGenreController(genreService),
		controller.NewProductTypeController(typeService),
		controller.NewProductGenreController(productGenreService),
		controller.NewUserController(userService),
		controller.NewUploadController(imageService),
		controller.NewScoreFeedController(hub, websocket.NewUpgrader(cfg.CORS.AllowedOrigins)),
		middleware.NewAuthMiddleware(cfg.JWT.Secret, blacklist),
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server started successfully", map[string]interface{}{
			"address": srv.Addr,
			"pid":     os.Getpid(),
		})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server gracefully...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", err)
	}

	logger.Info("Server stopped successfully")
}
