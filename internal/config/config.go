package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// RSS settings
	FeedsConfigPath string
	MaxPerFeed      int
	FetchWorkers    int
	FetchTimeout    time.Duration
	UserAgent       string

	// Clustering settings
	SimilarityThreshold float64

	// Storage settings
	DBPath string

	// Feed cache settings
	FeedCacheTTL time.Duration

	// Gemini settings (optional; the reader works without them)
	GeminiAPIKey     string
	GeminiModel      string
	GeminiDailyLimit int

	// App settings
	Debug bool
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:     "configs/feeds.yaml",
		MaxPerFeed:          5,
		FetchWorkers:        4,
		FetchTimeout:        10 * time.Second,
		UserAgent:           "Briefs News Reader 1.0",
		SimilarityThreshold: 0.85,
		DBPath:              "briefs.db",
		FeedCacheTTL:        10 * time.Minute,
		GeminiModel:         "gemini-1.5-flash",
		GeminiDailyLimit:    50,
	}

	// Load from environment
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.DBPath = getEnvOrDefault("BRIEFS_DB_PATH", cfg.DBPath)
	cfg.UserAgent = getEnvOrDefault("FETCH_USER_AGENT", cfg.UserAgent)
	cfg.GeminiAPIKey = os.Getenv("GEMINI_API_KEY")
	cfg.GeminiModel = getEnvOrDefault("GEMINI_MODEL", cfg.GeminiModel)

	cfg.MaxPerFeed = getEnvIntOrDefault("MAX_PER_FEED", cfg.MaxPerFeed)
	cfg.FetchWorkers = getEnvIntOrDefault("FETCH_WORKERS", cfg.FetchWorkers)
	cfg.GeminiDailyLimit = getEnvIntOrDefault("GEMINI_DAILY_LIMIT", cfg.GeminiDailyLimit)

	if v := os.Getenv("FETCH_TIMEOUT_SECONDS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FetchTimeout = time.Duration(val) * time.Second
		}
	}
	if v := os.Getenv("FEED_CACHE_TTL_MINUTES"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val >= 0 {
			cfg.FeedCacheTTL = time.Duration(val) * time.Minute
		}
	}
	if v := os.Getenv("SIMILARITY_THRESHOLD"); v != "" {
		if val, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.SimilarityThreshold = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.FeedsConfigPath == "" {
		return fmt.Errorf("FEEDS_CONFIG_PATH must not be empty")
	}
	if c.DBPath == "" {
		return fmt.Errorf("BRIEFS_DB_PATH must not be empty")
	}
	if c.SimilarityThreshold <= 0 || c.SimilarityThreshold > 1 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be in (0, 1], got %v", c.SimilarityThreshold)
	}
	if c.MaxPerFeed <= 0 {
		return fmt.Errorf("MAX_PER_FEED must be positive, got %d", c.MaxPerFeed)
	}
	if c.FetchWorkers <= 0 {
		return fmt.Errorf("FETCH_WORKERS must be positive, got %d", c.FetchWorkers)
	}
	return nil
}
