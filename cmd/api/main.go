package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/aditya-4747/VideoStreamAPI/internal/aggregation"
	"github.com/aditya-4747/VideoStreamAPI/internal/auth"
	"github.com/aditya-4747/VideoStreamAPI/internal/cache"
	"github.com/aditya-4747/VideoStreamAPI/internal/config"
	"github.com/aditya-4747/VideoStreamAPI/internal/content"
	"github.com/aditya-4747/VideoStreamAPI/internal/database"
	"github.com/aditya-4747/VideoStreamAPI/internal/engagement"
	"github.com/aditya-4747/VideoStreamAPI/internal/logging"
	"github.com/aditya-4747/VideoStreamAPI/internal/storage"
)

// API bundles the services the HTTP handlers dispatch to.
type API struct {
	cfg         *config.Config
	log         *logging.Logger
	repo        *database.Repository
	tokens      *auth.TokenManager
	auth        *auth.Service
	content     *content.Service
	engagement  *engagement.Service
	aggregation *aggregation.Service
}

func main() {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		configPath = "config.yaml"
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		logging.NewDefault().WithError(err).Fatal("failed to load config")
	}

	log, err := logging.New(cfg.Logging)
	if err != nil {
		logging.NewDefault().WithError(err).Fatal("failed to initialize logging")
	}

	db, err := database.New(cfg.Database)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to database")
	}
	defer db.Close()

	if err := db.Migrate(context.Background()); err != nil {
		log.WithError(err).Fatal("failed to run migrations")
	}

	repo := database.NewRepository(db)

	redisCache, err := cache.New(cfg.Redis)
	if err != nil {
		log.WithError(err).Warn("redis unavailable, running without cache")
		redisCache = nil
	}
	if redisCache != nil {
		defer redisCache.Close()
	}

	media, err := storage.New(cfg.Storage)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize media storage")
	}

	tokens := auth.NewTokenManager(cfg.Auth)

	api := &API{
		cfg:         cfg,
		log:         log,
		repo:        repo,
		tokens:      tokens,
		auth:        auth.NewService(repo, tokens, media, log),
		content:     content.NewService(repo, media, contentCache(redisCache), statsInvalidator(redisCache), log),
		engagement:  engagement.NewService(repo, repo, statsInvalidator(redisCache), log),
		aggregation: aggregation.NewService(repo, aggCache(redisCache), log),
	}

	router := setupRouter(api)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		log.WithField("addr", addr).Info("starting API server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.WithError(err).Fatal("failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Fatal("server forced to shutdown")
	}

	log.Info("server stopped")
}

// The cache is optional at startup. A nil *cache.Cache must become a
// true nil interface or the services would call through it.

func contentCache(c *cache.Cache) content.VideoCache {
	if c == nil {
		return nil
	}
	return c
}

func statsInvalidator(c *cache.Cache) engagement.StatsInvalidator {
	if c == nil {
		return nil
	}
	return c
}

func aggCache(c *cache.Cache) aggregation.StatsCache {
	if c == nil {
		return nil
	}
	return c
}
