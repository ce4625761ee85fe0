package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/wolfman30/lead-webhook/cmd/mainconfig"
	"github.com/wolfman30/lead-webhook/internal/api/router"
	appconfig "github.com/wolfman30/lead-webhook/internal/config"
	httpmiddleware "github.com/wolfman30/lead-webhook/internal/http/middleware"
	"github.com/wolfman30/lead-webhook/internal/ledger"
	"github.com/wolfman30/lead-webhook/internal/observability/metrics"
	"github.com/wolfman30/lead-webhook/internal/webhook"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-webhook API server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.LedgerBackend,
	)

	loc, err := cfg.Location()
	if err != nil {
		logger.Error("invalid timezone", "error", err)
		os.Exit(1)
	}

	leadMetrics := metrics.NewLeadMetrics(nil, cfg.MetricsOrigins...)

	// The API always serves the ledger, so a store (and its backend settings)
	// is required even when the webhook itself is not persisting.
	store, closeStore, err := mainconfig.BuildLedgerStore(context.Background(), cfg, logger, leadMetrics)
	if err != nil {
		logger.Error("failed to build ledger store", "error", err)
		os.Exit(1)
	}
	defer closeStore()

	limiter := httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	defer limiter.Close()

	webhookHandler := webhook.NewHandler(store, webhook.Options{
		Persist:  cfg.PersistLeads,
		Location: loc,
	}, logger, leadMetrics)

	// Setup router
	r := router.New(&router.Config{
		Logger:             logger,
		Webhook:            webhookHandler,
		Ledger:             ledger.NewHandler(store, logger),
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimiter:        limiter,
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
	fmt.Println("Server exited gracefully")
}
