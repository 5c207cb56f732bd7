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
	Port string

	// HTTPTimeout applies to outbound archive requests.
	HTTPTimeout time.Duration

	// ArchiveBaseURL overrides the Open-Meteo archive endpoint (useful
	// for tests and mirrors). Empty selects the default.
	ArchiveBaseURL string

	// GeocoderAPIKey enables reverse-geocoded region labels. Optional.
	GeocoderAPIKey string

	// RefreshInterval controls how often cached region series are
	// recomputed in the background.
	RefreshInterval time.Duration

	// CacheMaxAge is how stale a cached series may be before requests
	// fall back to a live fetch.
	CacheMaxAge time.Duration

	// CacheWindow is the trailing window the background refresh covers.
	CacheWindow time.Duration
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.Port = getenvDefault("PORT", "8080")
	cfg.ArchiveBaseURL = os.Getenv("ARCHIVE_BASE_URL")
	cfg.GeocoderAPIKey = os.Getenv("GEOCODER_API_KEY")

	var err error
	if cfg.HTTPTimeout, err = getenvDuration("HTTP_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.RefreshInterval, err = getenvDuration("REFRESH_INTERVAL", "1h"); err != nil {
		return nil, err
	}
	if cfg.CacheMaxAge, err = getenvDuration("CACHE_MAX_AGE", "2h"); err != nil {
		return nil, err
	}

	windowDays := getenvInt("CACHE_WINDOW_DAYS", 7)
	if windowDays <= 0 {
		return nil, fmt.Errorf("invalid CACHE_WINDOW_DAYS: must be positive")
	}
	cfg.CacheWindow = time.Duration(windowDays) * 24 * time.Hour

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
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

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
