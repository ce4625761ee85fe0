package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpmiddleware "github.com/wolfman30/lead-webhook/internal/http/middleware"
	"github.com/wolfman30/lead-webhook/internal/ledger"
	"github.com/wolfman30/lead-webhook/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger *logging.Logger
	// Webhook receives POST /webhooks/{origin}; the last path segment
	// becomes the lead's origin.
	Webhook            http.Handler
	Ledger             *ledger.Handler
	MetricsHandler     http.Handler
	CORSAllowedOrigins []string

	// RateLimiter guards the webhook routes when set.
	RateLimiter *httpmiddleware.RateLimiter
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	r.Use(httpmiddleware.RequestLogger(cfg.Logger))

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	if cfg.Webhook != nil {
		r.Route("/webhooks", func(hooks chi.Router) {
			if cfg.RateLimiter != nil {
				hooks.Use(httpmiddleware.RateLimit(cfg.RateLimiter))
			}
			hooks.Post("/*", cfg.Webhook.ServeHTTP)
		})
	}

	if cfg.Ledger != nil {
		r.With(middleware.Compress(5)).Get("/leads/{day}", cfg.Ledger.ReadDay)
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
