// Package main is the entry point for the BookMarkBrain web front end. It
// renders HTML pages and talks to the REST API over HTTP.
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bookmarkbrain/internal/apiclient"
	"bookmarkbrain/internal/cache"
	"bookmarkbrain/internal/config"
	"bookmarkbrain/internal/logger"
	"bookmarkbrain/internal/render"
	"bookmarkbrain/internal/router"
	"bookmarkbrain/internal/session"
	"bookmarkbrain/internal/web"
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

	log.Info("configuration loaded", "env", cfg.Env, "addr", cfg.WebAddr(), "api", cfg.APIBaseURL)

	// Valkey holds the flash messages of browser sessions.
	valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword, log)
	if err != nil {
		log.Error("failed to connect to valkey", "error", err)
		os.Exit(1)
	}
	defer valkeyClient.Close()

	// Outside development, cookies are marked Secure (HTTPS-only).
	secureCookies := !cfg.IsDev()
	sessions := session.NewStore(valkeyClient, secureCookies)

	renderer, err := render.New(sessions, log)
	if err != nil {
		log.Error("failed to initialize template renderer", "error", err)
		os.Exit(1)
	}

	api := apiclient.New(cfg.APIBaseURL, cfg.ExtractTimeout+apiclient.DefaultTimeout, log)
	pages := web.New(api, renderer, sessions, log)

	r := router.NewWeb(router.Web{
		Log:          log,
		Pages:        pages,
		Sessions:     sessions,
		SecureCookie: secureCookies,
	})

	srv := &http.Server{
		Addr:         cfg.WebAddr(),
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.ExtractTimeout + apiclient.DefaultTimeout + 15*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Info("web server starting", "addr", cfg.WebAddr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("web server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	log.Info("shutdown signal received", "signal", sig.String())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Error("web server forced to shutdown", "error", err)
		os.Exit(1)
	}

	log.Info("web server stopped gracefully")
}
