package rss

import (
	"context"
	"os"
	"sync"
	"time"

	"github.com/mmcdole/gofeed"
	"gopkg.in/yaml.v3"

	"github.com/briefsapp/briefs/internal/logger"
	"github.com/briefsapp/briefs/internal/news"
)

// Feed is one configured RSS source.
type Feed struct {
	Name  string `yaml:"name"`
	URL   string `yaml:"url"`
	Color string `yaml:"color"`
}

// FeedsConfig is the YAML config structure:
//
// feeds:
//   - name: TechCrunch
//     url: https://techcrunch.com/feed/
type FeedsConfig struct {
	Feeds []Feed `yaml:"feeds"`
}

// LoadFeeds reads the RSS feed list from a YAML file.
func LoadFeeds(path string) ([]Feed, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var cfg FeedsConfig
	dec := yaml.NewDecoder(f)
	if err := dec.Decode(&cfg); err != nil {
		return nil, err
	}
	return cfg.Feeds, nil
}

// FeedResult is the outcome of fetching one feed: its normalized articles,
// or the error that made this cycle skip it.
type FeedResult struct {
	Feed     Feed
	Articles []news.NormalizedArticle
	Err      error
}

// Fetcher downloads and normalizes feeds with a bounded worker pool.
type Fetcher struct {
	Workers    int
	Timeout    time.Duration
	MaxPerFeed int
	UserAgent  string
}

// NewFetcher returns a Fetcher with zero values replaced by defaults.
func NewFetcher(workers int, timeout time.Duration, maxPerFeed int, userAgent string) *Fetcher {
	if workers <= 0 {
		workers = 4
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if maxPerFeed <= 0 {
		maxPerFeed = 5
	}
	if userAgent == "" {
		userAgent = "Briefs News Reader 1.0"
	}
	return &Fetcher{Workers: workers, Timeout: timeout, MaxPerFeed: maxPerFeed, UserAgent: userAgent}
}

// FetchAll fetches every feed, one worker task per feed, and returns the
// per-feed results in completion order. A failing feed is logged and
// reported in its result, never fatal: clustering must still run over the
// articles that did arrive. FetchAll returns only after all workers join,
// so callers always see the full batch.
func (f *Fetcher) FetchAll(ctx context.Context, feeds []Feed) []FeedResult {
	results := make([]FeedResult, 0, len(feeds))
	var mu sync.Mutex
	var wg sync.WaitGroup
	sem := make(chan struct{}, f.Workers)

	for _, feed := range feeds {
		wg.Add(1)
		go func(feed Feed) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			res := f.fetchOne(ctx, feed)

			mu.Lock()
			results = append(results, res)
			mu.Unlock()
		}(feed)
	}
	wg.Wait()

	return results
}

func (f *Fetcher) fetchOne(ctx context.Context, feed Feed) FeedResult {
	ctx, cancel := context.WithTimeout(ctx, f.Timeout)
	defer cancel()

	parser := gofeed.NewParser()
	parser.UserAgent = f.UserAgent

	parsed, err := parser.ParseURLWithContext(feed.URL, ctx)
	if err != nil {
		logger.Warn("feed fetch failed", "feed", feed.Name, "url", feed.URL, "error", err)
		return FeedResult{Feed: feed, Err: err}
	}

	items := parsed.Items
	if len(items) > f.MaxPerFeed {
		items = items[:f.MaxPerFeed]
	}

	articles := make([]news.NormalizedArticle, 0, len(items))
	for _, item := range items {
		articles = append(articles, news.Normalize(item, feed.Name))
	}

	logger.Debug("feed fetched", "feed", feed.Name, "articles", len(articles))
	return FeedResult{Feed: feed, Articles: articles}
}
