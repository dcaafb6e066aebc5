package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/rjcarver/glyphbot/internal/api/router"
	"github.com/rjcarver/glyphbot/internal/bot"
	"github.com/rjcarver/glyphbot/internal/channels/whatsapp"
	appconfig "github.com/rjcarver/glyphbot/internal/config"
	httpmiddleware "github.com/rjcarver/glyphbot/internal/http/middleware"
	"github.com/rjcarver/glyphbot/internal/observability/metrics"
	"github.com/rjcarver/glyphbot/internal/transform"
	"github.com/rjcarver/glyphbot/pkg/logging"
)

func main() {
	// .env is a development convenience; missing files are fine.
	_ = godotenv.Load()

	cfg := appconfig.Load()

	logger := logging.New(cfg.LogLevel)
	if cfg.Env == "development" {
		logger = logging.NewText(cfg.LogLevel)
	}
	logger.Info("starting glyphbot API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	// The handshake endpoint must stay up even without send credentials, so
	// incomplete configuration is a warning here; sends will fail with a
	// configuration error until the variables are provided.
	if err := cfg.Validate(); err != nil {
		logger.Warn("whatsapp credentials incomplete; outbound sends will fail", "error", err)
	}

	// Conversation engine over the glyph cipher codec.
	sessions := bot.NewMemoryStore()
	engine := bot.NewEngine(transform.NewCodec(), transform.DefaultCarrier())

	client := whatsapp.NewClient(cfg.WhatsAppToken, cfg.WhatsAppPhoneNumberID)
	if cfg.GraphAPIBase != "" {
		client.SetGraphAPIBase(cfg.GraphAPIBase)
	}
	client.SetTimeout(cfg.SendTimeout)

	messagingMetrics := metrics.NewMessagingMetrics(nil)
	adapter := whatsapp.NewAdapter(client, cfg.WhatsAppVerifyToken, sessions, engine, messagingMetrics, logger)

	r := router.New(&router.Config{
		Logger:         logger,
		WhatsApp:       adapter,
		RateLimiter:    httpmiddleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst),
		MetricsHandler: promhttp.Handler(),
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

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
}
