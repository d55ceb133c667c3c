// Package main is the entry point for the BookMarkBrain REST API server.
// It loads configuration, connects to PostgreSQL and Valkey, wires the
// services behind the JSON handlers and serves them with graceful shutdown.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmarkbrain/internal/cache"
	"bookmarkbrain/internal/config"
	"bookmarkbrain/internal/database"
	"bookmarkbrain/internal/extract"
	"bookmarkbrain/internal/handlers"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/middleware"
	"bookmarkbrain/internal/router"
	"bookmarkbrain/internal/service"
	"bookmarkbrain/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(cfg.Env)
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	log.Info("configuration loaded", "env", cfg.Env, "addr", cfg.Addr())

	ctx := context.Background()

	db, err := database.Connect(ctx, cfg.DSN(), log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(ctx, db, log); err != nil {
		log.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed sample data in development (no-op if data already exists).
	if cfg.IsDev() {
		if err := database.Seed(ctx, db, log); err != nil {
			log.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	// Valkey backs the extraction cache only; the API runs without it.
	var extractCache extract.Cache
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, log)
	if err != nil {
		log.Warn("valkey unavailable, extraction cache disabled", "error", err)
	} else {
		defer valkeyClient.Close()
		extractCache = cache.NewStore(valkeyClient, "extract:", cfg.ExtractCacheTTL, log)
	}
	extractor := extract.New(cfg.ExtractTimeout, extractCache, log)

	repo := service.NewPostgresRepository(store.New(db))

	rateLimiter := middleware.NewRateLimiter(cfg.RateLimitPerMinute, time.Minute, log)
	defer rateLimiter.Stop()

	r := router.NewAPI(router.API{
		Log:              log,
		DB:               db,
		RateLimiter:      rateLimiter,
		CORSOrigins:      cfg.CORSOrigins,
		Categories:       handlers.NewCategories(service.NewCategoryService(repo, log), log),
		Tweets:           handlers.NewTweets(service.NewTweetService(repo, extractor, log), log),
		Hashtags:         handlers.NewHashtags(service.NewHashtagService(repo, log), log),
		Collections:      handlers.NewCollections(service.NewCollectionService(repo, log), log),
		TweetCategories:  handlers.NewTweetCategories(service.NewTweetCategoryService(repo, log), log),
		TweetHashtags:    handlers.NewTweetHashtags(service.NewTweetHashtagService(repo, log), log),
		CollectionTweets: handlers.NewCollectionTweets(service.NewCollectionTweetService(repo, log), log),
	})

	// WriteTimeout must cover a URL extraction on top of the request itself.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.ExtractTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("api server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("api server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", "signal", sig.String())

	shutdownCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("api server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("api server stopped gracefully")
}
