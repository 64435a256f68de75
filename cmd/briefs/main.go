package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"

	"github.com/briefsapp/briefs/internal/app"
	"github.com/briefsapp/briefs/internal/cache"
	"github.com/briefsapp/briefs/internal/config"
	"github.com/briefsapp/briefs/internal/gemini"
	"github.com/briefsapp/briefs/internal/logger"
	"github.com/briefsapp/briefs/internal/metrics"
	"github.com/briefsapp/briefs/internal/rss"
	"github.com/briefsapp/briefs/internal/scraper"
	"github.com/briefsapp/briefs/internal/storage"
	"github.com/briefsapp/briefs/internal/ui"
)

func main() {
	// .env is optional; real env vars win either way.
	_ = godotenv.Load()

	logger.Init()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	feeds, err := rss.LoadFeeds(cfg.FeedsConfigPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load feeds from %s: %v\n", cfg.FeedsConfigPath, err)
		os.Exit(1)
	}
	if len(feeds) == 0 {
		fmt.Fprintf(os.Stderr, "no feeds configured in %s\n", cfg.FeedsConfigPath)
		os.Exit(1)
	}

	store, err := storage.New(cfg.DBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "open database %s: %v\n", cfg.DBPath, err)
		os.Exit(1)
	}
	defer store.Close()

	var gem *gemini.Client
	if cfg.GeminiAPIKey != "" {
		gem, err = gemini.NewClient(cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			logger.Warn("gemini unavailable, falling back to local digests", "error", err)
		} else {
			defer gem.Close()
		}
	}

	fetcher := rss.NewFetcher(cfg.FetchWorkers, cfg.FetchTimeout, cfg.MaxPerFeed, cfg.UserAgent)
	feedCache := cache.New(cfg.FeedCacheTTL)
	scr := scraper.New(cfg.UserAgent)

	a := app.New(cfg, feeds, fetcher, store, feedCache, gem, scr)

	// Check if we should start HTTP server for monitoring
	if os.Getenv("ENABLE_HTTP_MONITORING") == "true" {
		go startMonitoringServer()
	}

	program := tea.NewProgram(ui.NewModel(a), tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		fmt.Fprintf(os.Stderr, "ui: %v\n", err)
		os.Exit(1)
	}
}

func startMonitoringServer() {
	port := os.Getenv("MONITORING_PORT")
	if port == "" {
		port = "8080"
	}

	http.HandleFunc("/health", healthHandler)
	http.HandleFunc("/metrics", metricsHandler)

	logger.Info("starting monitoring server", "port", port)
	if err := http.ListenAndServe(":"+port, nil); err != nil {
		logger.Error("monitoring server error", "error", err)
	}
}

func healthHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	status := "ok"
	if !stats["is_healthy"].(bool) {
		status = "error"
		w.WriteHeader(http.StatusServiceUnavailable)
	}

	response := map[string]interface{}{
		"status":     status,
		"last_run":   stats["last_run_time"],
		"last_error": stats["last_error"],
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

func metricsHandler(w http.ResponseWriter, r *http.Request) {
	stats := metrics.Global.GetStats()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(stats)
}
