package main

import (
	"context"
	stdlog "log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	httpapi "github.com/i474232898/forecast-compare/internal/api/http"
	"github.com/i474232898/forecast-compare/internal/config"
	"github.com/i474232898/forecast-compare/internal/forecast"
	"github.com/i474232898/forecast-compare/internal/forecast/providers"
	"github.com/i474232898/forecast-compare/internal/log"
	"github.com/i474232898/forecast-compare/internal/scheduler"
	"github.com/i474232898/forecast-compare/internal/store"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		stdlog.Fatalf("failed to load config: %v", err)
	}

	if err := log.Init(cfg.Debug); err != nil {
		stdlog.Fatalf("failed to init logger: %v", err)
	}
	defer log.Sync()

	// Shared HTTP client for outbound provider calls.
	httpClient := &http.Client{
		Timeout: cfg.HTTPTimeout,
	}

	opts := []providers.Option{
		providers.WithBaseURL(cfg.OpenWeatherBaseURL),
		providers.WithRateLimit(cfg.UpstreamRPS, cfg.UpstreamBurst),
		providers.WithRetries(cfg.UpstreamMaxRetries),
	}
	source := providers.NewOpenWeatherProvider(httpClient, cfg.OpenWeatherAPIKey, opts...)

	var geocoder forecast.Geocoder = providers.NewOpenWeatherGeocoder(httpClient, cfg.OpenWeatherAPIKey, opts...)
	if cfg.GoogleMapsAPIKey != "" {
		geocoder = providers.NewGoogleGeocoder(cfg.GoogleMapsAPIKey)
	}

	// Recent comparisons, so toggling the window does not re-fetch.
	memStore := store.NewMemoryStore(cfg.StoreMaxEntries, cfg.StoreMaxAge)

	service := forecast.NewService(memStore, source, geocoder, cfg.FetchTimeout, cfg.TimeZone)

	sched := scheduler.New(memStore, cfg.PurgeInterval)
	if err := sched.Start(); err != nil {
		log.Errorf("failed to start scheduler: %v", err)
		return
	}
	defer sched.Stop()

	app := fiber.New(fiber.Config{
		AppName:               "forecast-compare",
		DisableStartupMessage: true,
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          cfg.FetchTimeout + 5*time.Second,
		ErrorHandler:          httpapi.ErrorHandler,
	})

	app.Use(logger.New())
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "ok",
			"service": "forecast-compare",
		})
	})

	httpapi.RegisterRoutes(app, service)

	go func() {
		log.Infow("listening", "port", cfg.Port, "timezone", cfg.TimeZone.String())
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Errorf("fiber server stopped: %v", err)
		}
	}()

	// Wait for termination signal
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Errorf("error during shutdown: %v", err)
	}
}
