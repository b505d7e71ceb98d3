package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	OpenWeatherAPIKey  string
	OpenWeatherBaseURL string

	// GoogleMapsAPIKey switches reverse geocoding to Google when set.
	GoogleMapsAPIKey string

	Port string

	// HTTPTimeout bounds each outbound request; FetchTimeout bounds the
	// whole fetch of one location.
	HTTPTimeout  time.Duration
	FetchTimeout time.Duration

	// TimeZone decides which calendar day a forecast sample belongs to.
	TimeZone *time.Location

	// Outbound resilience.
	UpstreamRPS        float64
	UpstreamBurst      int
	UpstreamMaxRetries int

	// Comparison store retention.
	StoreMaxEntries int
	StoreMaxAge     time.Duration
	PurgeInterval   time.Duration

	Debug bool
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.OpenWeatherAPIKey = os.Getenv("OPENWEATHER_API_KEY")
	if cfg.OpenWeatherAPIKey == "" {
		return nil, fmt.Errorf("OPENWEATHER_API_KEY is required")
	}
	cfg.OpenWeatherBaseURL = getenvDefault("OPENWEATHER_BASE_URL", "https://api.openweathermap.org")
	cfg.GoogleMapsAPIKey = os.Getenv("GOOGLE_MAPS_API_KEY")
	cfg.Port = getenvDefault("PORT", "8080")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = getenvDuration("FETCH_TIMEOUT", "15s"); err != nil {
		return nil, err
	}
	if cfg.StoreMaxAge, err = getenvDuration("STORE_MAX_AGE", "30m"); err != nil {
		return nil, err
	}
	if cfg.PurgeInterval, err = getenvDuration("PURGE_INTERVAL", "5m"); err != nil {
		return nil, err
	}

	tzName := getenvDefault("FORECAST_TIMEZONE", "Local")
	tz, err := time.LoadLocation(tzName)
	if err != nil {
		return nil, fmt.Errorf("invalid FORECAST_TIMEZONE: %w", err)
	}
	cfg.TimeZone = tz

	rps, err := strconv.ParseFloat(getenvDefault("UPSTREAM_RPS", "10"), 64)
	if err != nil {
		return nil, fmt.Errorf("invalid UPSTREAM_RPS: %w", err)
	}
	cfg.UpstreamRPS = rps
	cfg.UpstreamBurst = getenvInt("UPSTREAM_BURST", 5)
	cfg.UpstreamMaxRetries = getenvInt("UPSTREAM_MAX_RETRIES", 0)

	cfg.StoreMaxEntries = getenvInt("STORE_MAX_ENTRIES", 256)

	cfg.Debug, _ = strconv.ParseBool(os.Getenv("DEBUG"))

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}

func getenvDuration(key, def string) (time.Duration, error) {
	d, err := time.ParseDuration(getenvDefault(key, def))
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return d, nil
}
