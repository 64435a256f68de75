package app

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/briefsapp/briefs/internal/cache"
	"github.com/briefsapp/briefs/internal/config"
	"github.com/briefsapp/briefs/internal/gemini"
	"github.com/briefsapp/briefs/internal/logger"
	"github.com/briefsapp/briefs/internal/metrics"
	"github.com/briefsapp/briefs/internal/news"
	"github.com/briefsapp/briefs/internal/ratelimit"
	"github.com/briefsapp/briefs/internal/rss"
	"github.com/briefsapp/briefs/internal/scraper"
	"github.com/briefsapp/briefs/internal/storage"
)

// SortOrder selects how the article list is arranged.
type SortOrder int

const (
	SortRecent SortOrder = iota
	SortAlphabetical
	SortSource
)

func (o SortOrder) String() string {
	switch o {
	case SortAlphabetical:
		return "a-z"
	case SortSource:
		return "source"
	default:
		return "recent"
	}
}

// Next cycles to the following sort order.
func (o SortOrder) Next() SortOrder {
	return (o + 1) % 3
}

// Fetcher downloads configured feeds. Satisfied by *rss.Fetcher; tests
// substitute a fake.
type Fetcher interface {
	FetchAll(ctx context.Context, feeds []rss.Feed) []rss.FeedResult
}

// App wires feeds, clustering, persistence and analysis together behind
// the operations the terminal UI calls.
type App struct {
	cfg     *config.Config
	feeds   []rss.Feed
	fetcher Fetcher
	store   *storage.Store
	cache   *cache.FeedCache
	gemini  *gemini.Client
	scraper *scraper.Scraper
	limiter *ratelimit.Limiter
}

// New assembles an App. gemini may be nil when no API key is configured;
// MarkRead then falls back to a locally built digest.
func New(cfg *config.Config, feeds []rss.Feed, fetcher Fetcher, store *storage.Store, feedCache *cache.FeedCache, gem *gemini.Client, scr *scraper.Scraper) *App {
	return &App{
		cfg:     cfg,
		feeds:   feeds,
		fetcher: fetcher,
		store:   store,
		cache:   feedCache,
		gemini:  gem,
		scraper: scr,
		limiter: ratelimit.New(cfg.GeminiDailyLimit),
	}
}

// Refresh fetches every configured feed (serving recent ones from the
// TTL cache), clusters the merged batch, and returns the canonical
// articles newest first. Liked and discarded stories are hidden: liked
// ones live in the saved list, discarded ones are gone for good.
func (a *App) Refresh(ctx context.Context) ([]news.CanonicalArticle, error) {
	start := time.Now()

	var merged []news.NormalizedArticle
	var toFetch []rss.Feed

	for _, feed := range a.feeds {
		if cached, ok := a.cache.Get(feed.URL); ok {
			logger.Debug("feed served from cache", "feed", feed.Name, "articles", len(cached))
			merged = append(merged, cached...)
			continue
		}
		toFetch = append(toFetch, feed)
	}

	if len(toFetch) > 0 {
		results := a.fetcher.FetchAll(ctx, toFetch)

		fetched, failed := 0, 0
		for _, res := range results {
			if res.Err != nil {
				failed++
				continue
			}
			fetched++
			a.cache.Set(res.Feed.URL, res.Articles)
			merged = append(merged, res.Articles...)
		}
		metrics.Global.AddFeedsFetched(fetched)
		metrics.Global.AddFeedsFailed(failed)
	}

	metrics.Global.AddArticlesFetched(len(merged))

	clusters := news.ClusterArticles(merged, a.cfg.SimilarityThreshold)
	canonical := news.Canonicalize(clusters)
	metrics.Global.RecordClustering(len(merged), len(canonical))

	hidden, err := a.hiddenIDs()
	if err != nil {
		metrics.Global.SetError(err.Error())
		return nil, err
	}

	visible := make([]news.CanonicalArticle, 0, len(canonical))
	for _, art := range canonical {
		if hidden[art.ID] {
			continue
		}
		visible = append(visible, art)
	}

	SortArticles(visible, SortRecent)

	metrics.Global.RecordRefreshTime(time.Since(start))
	metrics.Global.SetLastRun()
	logger.Info("refresh complete",
		"fetched", len(merged),
		"clusters", len(canonical),
		"visible", len(visible),
		"duration", time.Since(start))

	return visible, nil
}

// hiddenIDs collects the ids the reader has already dealt with, liked or
// discarded alike.
func (a *App) hiddenIDs() (map[string]bool, error) {
	recs, err := a.store.Query(func(r storage.Record) bool { return r.Liked || r.Discarded })
	if err != nil {
		return nil, fmt.Errorf("load hidden ids: %w", err)
	}

	hidden := make(map[string]bool, len(recs))
	for _, r := range recs {
		hidden[r.ID] = true
	}
	return hidden, nil
}

// Filter returns the articles whose title, summary or source contains
// the query, case-insensitively. The result is always a fresh slice, so
// callers may mutate it without touching the input.
func Filter(articles []news.CanonicalArticle, query string) []news.CanonicalArticle {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return append([]news.CanonicalArticle(nil), articles...)
	}

	var out []news.CanonicalArticle
	for _, art := range articles {
		haystack := strings.ToLower(art.Title + " " + art.Summary + " " + art.Source)
		if strings.Contains(haystack, query) {
			out = append(out, art)
		}
	}
	return out
}

// SortArticles sorts in place. Ties keep the existing order so repeated
// sorts are stable for the reader.
func SortArticles(articles []news.CanonicalArticle, order SortOrder) {
	switch order {
	case SortAlphabetical:
		sort.SliceStable(articles, func(i, j int) bool {
			return strings.ToLower(articles[i].Title) < strings.ToLower(articles[j].Title)
		})
	case SortSource:
		sort.SliceStable(articles, func(i, j int) bool {
			return strings.ToLower(articles[i].Source) < strings.ToLower(articles[j].Source)
		})
	default:
		sort.SliceStable(articles, func(i, j int) bool {
			return articles[i].Timestamp.After(articles[j].Timestamp)
		})
	}
}

// Like persists the article as liked.
func (a *App) Like(article news.CanonicalArticle) error {
	if err := a.store.Like(article); err != nil {
		return err
	}
	logger.Info("article liked", "id", article.ID, "title", article.Title)
	return nil
}

// Discard hides the article permanently.
func (a *App) Discard(article news.CanonicalArticle) error {
	if err := a.store.Discard(article); err != nil {
		return err
	}
	logger.Info("article discarded", "id", article.ID, "title", article.Title)
	return nil
}

// IsLiked reports the stored liked flag for a canonical article id.
func (a *App) IsLiked(id string) bool {
	liked, err := a.store.IsLiked(id)
	if err != nil {
		logger.Error("liked lookup failed", "id", id, "error", err)
		return false
	}
	return liked
}

// Liked returns the persisted liked articles.
func (a *App) Liked() ([]storage.Record, error) {
	return a.store.Liked()
}

// Stats returns the liked total and per-source counts.
func (a *App) Stats() (int, map[string]int, error) {
	return a.store.Stats()
}

// MarkRead produces the long-form text for an article: the stored copy
// if one exists, otherwise a scrape of the article page run through
// Gemini (or a local digest when no client is configured). The result is
// persisted so the next read is instant.
func (a *App) MarkRead(ctx context.Context, article news.CanonicalArticle) (string, error) {
	if stored, err := a.store.Get(article.ID); err != nil {
		return "", err
	} else if stored != nil && stored.Verbose != "" {
		return stored.Verbose, nil
	}

	verbose := a.buildVerbose(ctx, article)

	if err := a.store.SetVerbose(article, verbose); err != nil {
		logger.Error("verbose save failed", "id", article.ID, "error", err)
	}
	return verbose, nil
}

func (a *App) buildVerbose(ctx context.Context, article news.CanonicalArticle) string {
	var content string
	if a.scraper != nil {
		extracted, err := a.scraper.ExtractArticle(ctx, article.Link)
		if err != nil {
			logger.Warn("article scrape failed", "url", article.Link, "error", err)
		} else {
			content = extracted.Content
		}
	}

	if content != "" && a.gemini != nil {
		if !a.limiter.Allow() {
			logger.Warn("gemini daily limit reached, using local digest", "used", a.limiter.Used())
		} else {
			analysis, err := a.gemini.AnalyzeArticle(ctx, article.Title, content)
			if err == nil {
				return analysis
			}
			logger.Warn("gemini analysis failed", "id", article.ID, "error", err)
		}
	}

	return localDigest(article, content)
}

// localDigest builds a readable fallback from what we already have when
// scraping or analysis is unavailable.
func localDigest(article news.CanonicalArticle, content string) string {
	var b strings.Builder

	b.WriteString(article.Title)
	b.WriteString("\n\n")

	if content != "" {
		b.WriteString(content)
	} else {
		b.WriteString(article.Summary)
	}

	b.WriteString("\n\nSource: ")
	b.WriteString(article.Source)
	if len(article.Sources) > 1 {
		fmt.Fprintf(&b, " (and %d more)", len(article.Sources)-1)
	}
	b.WriteString("\nLink: ")
	b.WriteString(article.Link)

	return b.String()
}
