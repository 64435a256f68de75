package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SimilarityThreshold != 0.85 {
		t.Errorf("SimilarityThreshold = %v, want 0.85", cfg.SimilarityThreshold)
	}
	if cfg.MaxPerFeed != 5 {
		t.Errorf("MaxPerFeed = %d, want 5", cfg.MaxPerFeed)
	}
	if cfg.FetchTimeout != 10*time.Second {
		t.Errorf("FetchTimeout = %v, want 10s", cfg.FetchTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("SIMILARITY_THRESHOLD", "0.7")
	t.Setenv("MAX_PER_FEED", "10")
	t.Setenv("BRIEFS_DB_PATH", "/tmp/custom.db")
	t.Setenv("FEED_CACHE_TTL_MINUTES", "0")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.SimilarityThreshold != 0.7 {
		t.Errorf("SimilarityThreshold = %v, want 0.7", cfg.SimilarityThreshold)
	}
	if cfg.MaxPerFeed != 10 {
		t.Errorf("MaxPerFeed = %d, want 10", cfg.MaxPerFeed)
	}
	if cfg.DBPath != "/tmp/custom.db" {
		t.Errorf("DBPath = %q", cfg.DBPath)
	}
	if cfg.FeedCacheTTL != 0 {
		t.Errorf("FeedCacheTTL = %v, want 0 (cache disabled)", cfg.FeedCacheTTL)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"threshold too high", func(c *Config) { c.SimilarityThreshold = 1.5 }, true},
		{"threshold zero", func(c *Config) { c.SimilarityThreshold = 0 }, true},
		{"no db path", func(c *Config) { c.DBPath = "" }, true},
		{"no feeds path", func(c *Config) { c.FeedsConfigPath = "" }, true},
		{"zero workers", func(c *Config) { c.FetchWorkers = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{
				FeedsConfigPath:     "configs/feeds.yaml",
				DBPath:              "briefs.db",
				SimilarityThreshold: 0.85,
				MaxPerFeed:          5,
				FetchWorkers:        4,
			}
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
