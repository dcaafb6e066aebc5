package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/rjcarver/glyphbot/internal/channels/whatsapp"
	httpmiddleware "github.com/rjcarver/glyphbot/internal/http/middleware"
	"github.com/rjcarver/glyphbot/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	WhatsApp       *whatsapp.Adapter
	RateLimiter    *httpmiddleware.RateLimiter
	MetricsHandler http.Handler
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}
	if cfg.RateLimiter != nil {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimiter))
	}

	r.Get("/health", healthCheck)

	if cfg.WhatsApp != nil {
		r.Get("/webhooks/whatsapp", cfg.WhatsApp.HandleVerification)
		r.Post("/webhooks/whatsapp", cfg.WhatsApp.HandleWebhook)
	}
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	return r
}

func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
