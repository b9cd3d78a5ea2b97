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

	"github.com/ikkim/cafe-backend/config"
	"github.com/ikkim/cafe-backend/internal/app/controller"
	"github.com/ikkim/cafe-backend/internal/app/repository"
	"github.com/ikkim/cafe-backend/internal/app/service"
	"github.com/ikkim/cafe-backend/internal/db"
	"github.com/ikkim/cafe-backend/internal/middleware"
	"github.com/ikkim/cafe-backend/internal/router"
	"github.com/ikkim/cafe-backend/internal/session"
	"github.com/ikkim/cafe-backend/internal/storage"
	"github.com/ikkim/cafe-backend/pkg/logger"
	"github.com/ikkim/cafe-backend/pkg/mapquest"
	"github.com/ikkim/cafe-backend/pkg/redis"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", err)
	}

	logLevel := "info"
	if cfg.Server.Environment == "development" {
		logLevel = "debug"
	}
	logFormat := "console"
	if cfg.Server.Environment == "production" {
		logFormat = "json"
	}
	logger.Initialize(logger.Config{
		Level:       logLevel,
		Format:      logFormat,
		EnableColor: true,
	})

	logger.Info("Starting Cafe Finder server", map[string]interface{}{
		"environment":   cfg.Server.Environment,
		"port":          cfg.Server.Port,
		"log_level":     logLevel,
		"session_store": cfg.Session.Store,
		"map_storage":   cfg.Storage.Driver,
	})

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

	if err := db.Seed(); err != nil {
		logger.Warn("Failed to seed database", map[string]interface{}{
			"error": err.Error(),
		})
	}

	sessionStore, err := newSessionStore(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize session store", err)
	}
	defer func() {
		if err := redis.Close(); err != nil {
			logger.Error("Failed to close Redis connection", err)
		}
	}()

	mapStorage, err := newMapStorage(cfg)
	if err != nil {
		logger.Fatal("Failed to initialize map storage", err)
	}

	mapClient, err := mapquest.NewClient(mapquest.Config{
		APIKey:  cfg.MapQuest.APIKey,
		BaseURL: cfg.MapQuest.BaseURL,
	})
	if err != nil {
		logger.Fatal("Failed to initialize MapQuest client", err)
	}

	// Initialize repositories
	userRepo := repository.NewUserRepository(db.GetDB())
	cityRepo := repository.NewCityRepository(db.GetDB())
	cafeRepo := repository.NewCafeRepository(db.GetDB())
	likeRepo := repository.NewLikeRepository(db.GetDB())

	// Initialize services
	authService := service.NewAuthService(db.GetDB(), userRepo)
	mapService := service.NewMapService(mapClient, mapStorage)
	cafeService := service.NewCafeService(db.GetDB(), cafeRepo, cityRepo, mapService)
	likeService := service.NewLikeService(likeRepo, cafeRepo)

	// Initialize controllers
	homeController := controller.NewHomeController()
	authController := controller.NewAuthController(authService)
	cafeController := controller.NewCafeController(cafeService, mapService)
	profileController := controller.NewProfileController(authService, likeService)
	likeController := controller.NewLikeController(likeService)

	sessionMiddleware := middleware.NewSessionMiddleware(sessionStore, authService)

	r := router.NewRouter(
		homeController,
		authController,
		cafeController,
		profileController,
		likeController,
		sessionMiddleware,
		cfg,
	)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: r.Setup(),
	}

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

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shut down", err)
	}

	logger.Info("Server stopped successfully")
}

func newSessionStore(cfg *config.Config) (session.Store, error) {
	secure := cfg.Server.Environment == "production"

	switch cfg.Session.Store {
	case "redis":
		client, err := redis.Init(&cfg.Redis)
		if err != nil {
			return nil, err
		}
		return session.NewRedisStore(client, cfg.Session.MaxAge, secure), nil
	default:
		return session.NewCookieStore(cfg.Session.Secret, cfg.Session.MaxAge, secure), nil
	}
}

func newMapStorage(cfg *config.Config) (storage.MapStorage, error) {
	switch cfg.Storage.Driver {
	case "s3":
		return storage.NewS3Storage(
			cfg.S3.Region,
			cfg.S3.Bucket,
			cfg.S3.AccessKeyID,
			cfg.S3.SecretAccessKey,
			cfg.S3.BaseURL,
		), nil
	default:
		return storage.NewLocalStorage(cfg.Storage.MapDir, "/static/maps")
	}
}
