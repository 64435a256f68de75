package app

import (
	"context"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/briefsapp/briefs/internal/cache"
	"github.com/briefsapp/briefs/internal/config"
	"github.com/briefsapp/briefs/internal/news"
	"github.com/briefsapp/briefs/internal/rss"
	"github.com/briefsapp/briefs/internal/storage"
)

// fakeFetcher returns canned results and counts how often each feed was
// actually fetched.
type fakeFetcher struct {
	results map[string][]news.NormalizedArticle
	calls   atomic.Int64
}

func (f *fakeFetcher) FetchAll(ctx context.Context, feeds []rss.Feed) []rss.FeedResult {
	var out []rss.FeedResult
	for _, feed := range feeds {
		f.calls.Add(1)
		out = append(out, rss.FeedResult{Feed: feed, Articles: f.results[feed.URL]})
	}
	return out
}

func normalized(title, summary, link, source string, ts time.Time) news.NormalizedArticle {
	return news.NormalizedArticle{
		Title:     title,
		Summary:   summary,
		Link:      link,
		Timestamp: ts,
		Source:    source,
		Domain:    "example.com",
	}
}

func newTestApp(t *testing.T, fetcher Fetcher, feeds []rss.Feed, cacheTTL time.Duration) *App {
	t.Helper()

	cfg := &config.Config{SimilarityThreshold: 0.85}
	store, err := storage.New(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.New() error = %v", err)
	}
	t.Cleanup(func() { store.Close() })

	return New(cfg, feeds, fetcher, store, cache.New(cacheTTL), nil, nil)
}

func TestRefreshMergesDuplicateStories(t *testing.T) {
	now := time.Now()
	feeds := []rss.Feed{
		{Name: "TechCrunch", URL: "https://techcrunch.com/feed/"},
		{Name: "The Verge", URL: "https://theverge.com/rss"},
	}
	fetcher := &fakeFetcher{results: map[string][]news.NormalizedArticle{
		feeds[0].URL: {
			normalized("OpenAI releases GPT-5 with major improvements",
				"OpenAI announced GPT-5 today with significant upgrades to reasoning.",
				"https://techcrunch.com/gpt5", "TechCrunch", now),
		},
		feeds[1].URL: {
			normalized("OpenAI releases GPT-5 with major improvement",
				"OpenAI announced GPT-5 today with significant upgrades to reasoning!",
				"https://theverge.com/gpt5", "The Verge", now.Add(-time.Hour)),
			normalized("Google quarterly earnings beat expectations",
				"Alphabet reported revenue well above analyst estimates.",
				"https://theverge.com/goog", "The Verge", now.Add(-2*time.Hour)),
		},
	}}

	articles, err := newTestApp(t, fetcher, feeds, 0).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}

	if len(articles) != 2 {
		t.Fatalf("Refresh() returned %d articles, want 2 (duplicates collapsed)", len(articles))
	}

	var merged *news.CanonicalArticle
	for i := range articles {
		if strings.Contains(articles[i].Title, "GPT-5") {
			merged = &articles[i]
		}
	}
	if merged == nil {
		t.Fatal("GPT-5 story missing from refresh results")
	}
	if len(merged.Sources) != 2 {
		t.Errorf("merged story has %d sources, want 2", len(merged.Sources))
	}
}

func TestRefreshSortsNewestFirst(t *testing.T) {
	now := time.Now()
	feeds := []rss.Feed{{Name: "Wired", URL: "https://wired.com/feed"}}
	fetcher := &fakeFetcher{results: map[string][]news.NormalizedArticle{
		feeds[0].URL: {
			normalized("Old story about databases", "A deep dive into storage engines.", "https://wired.com/1", "Wired", now.Add(-48*time.Hour)),
			normalized("Fresh story about compilers", "New optimizations land in LLVM.", "https://wired.com/2", "Wired", now),
		},
	}}

	articles, err := newTestApp(t, fetcher, feeds, 0).Refresh(context.Background())
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles, want 2", len(articles))
	}
	if !strings.Contains(articles[0].Title, "Fresh") {
		t.Errorf("first article = %q, want the fresh story first", articles[0].Title)
	}
}

func TestRefreshHidesDiscarded(t *testing.T) {
	now := time.Now()
	feeds := []rss.Feed{{Name: "HN", URL: "https://news.ycombinator.com/rss"}}
	fetcher := &fakeFetcher{results: map[string][]news.NormalizedArticle{
		feeds[0].URL: {
			normalized("Keep this story", "Worth reading later.", "https://example.com/keep", "HN", now),
			normalized("Hide this story", "Not interesting at all.", "https://example.com/hide", "HN", now),
		},
	}}

	app := newTestApp(t, fetcher, feeds, 0)
	ctx := context.Background()

	articles, err := app.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(articles) != 2 {
		t.Fatalf("got %d articles before discard, want 2", len(articles))
	}

	var target news.CanonicalArticle
	for _, a := range articles {
		if strings.Contains(a.Title, "Hide") {
			target = a
		}
	}
	if err := app.Discard(target); err != nil {
		t.Fatalf("Discard() error = %v", err)
	}

	articles, err = app.Refresh(ctx)
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles after discard, want 1", len(articles))
	}
	if articles[0].ID != news.ContentID("Keep this story") {
		t.Errorf("surviving article = %q, want the kept story", articles[0].Title)
	}
}

func TestRefreshHidesLiked(t *testing.T) {
	now := time.Now()
	feeds := []rss.Feed{{Name: "MIT", URL: "https://technologyreview.com/feed"}}
	fetcher := &fakeFetcher{results: map[string][]news.NormalizedArticle{
		feeds[0].URL: {
			normalized("Battery breakthrough claims", "Solid state cells reach production.", "https://example.com/bat", "MIT", now),
		},
	}}

	app := newTestApp(t, fetcher, feeds, 0)
	ctx := context.Background()

	articles, err := app.Refresh(ctx)
	if err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if len(articles) != 1 {
		t.Fatalf("got %d articles, want 1", len(articles))
	}

	if err := app.Like(articles[0]); err != nil {
		t.Fatalf("Like() error = %v", err)
	}

	articles, err = app.Refresh(ctx)
	if err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}
	if len(articles) != 0 {
		t.Errorf("liked article still in list: %v", articles)
	}

	liked, err := app.Liked()
	if err != nil {
		t.Fatalf("Liked() error = %v", err)
	}
	if len(liked) != 1 {
		t.Errorf("saved list has %d records, want 1", len(liked))
	}
}

func TestRefreshUsesFeedCache(t *testing.T) {
	now := time.Now()
	feeds := []rss.Feed{{Name: "Ars", URL: "https://arstechnica.com/feed"}}
	fetcher := &fakeFetcher{results: map[string][]news.NormalizedArticle{
		feeds[0].URL: {
			normalized("Cached story", "This one should only be fetched once.", "https://example.com/c", "Ars", now),
		},
	}}

	app := newTestApp(t, fetcher, feeds, 10*time.Minute)
	ctx := context.Background()

	if _, err := app.Refresh(ctx); err != nil {
		t.Fatalf("Refresh() error = %v", err)
	}
	if _, err := app.Refresh(ctx); err != nil {
		t.Fatalf("second Refresh() error = %v", err)
	}

	if got := fetcher.calls.Load(); got != 1 {
		t.Errorf("feed fetched %d times, want 1 (second refresh inside TTL)", got)
	}
}

func TestFilter(t *testing.T) {
	articles := []news.CanonicalArticle{
		{Title: "Rust adds new borrow checker", Summary: "Compiler internals.", Source: "HN"},
		{Title: "Python 4 roadmap", Summary: "Guido discusses typing and rust bindings.", Source: "Wired"},
		{Title: "Kubernetes release", Summary: "Cluster tooling.", Source: "TechCrunch"},
	}

	tests := []struct {
		query string
		want  int
	}{
		{"", 3},
		{"rust", 2},
		{"RUST", 2},
		{"wired", 1},
		{"nothing matches this", 0},
	}

	for _, tt := range tests {
		if got := len(Filter(articles, tt.query)); got != tt.want {
			t.Errorf("Filter(%q) returned %d articles, want %d", tt.query, got, tt.want)
		}
	}
}

func TestFilterEmptyQueryReturnsFreshSlice(t *testing.T) {
	articles := []news.CanonicalArticle{
		{ID: "a", Title: "First"},
		{ID: "b", Title: "Second"},
	}

	got := Filter(articles, "")
	if len(got) != 2 {
		t.Fatalf("Filter(\"\") returned %d articles, want 2", len(got))
	}

	// Mutating the result must not write through to the input.
	got[0] = news.CanonicalArticle{ID: "x", Title: "Overwritten"}
	if articles[0].ID != "a" {
		t.Errorf("input slice mutated through filter result: %+v", articles[0])
	}
}

func TestSortArticles(t *testing.T) {
	now := time.Now()
	base := []news.CanonicalArticle{
		{Title: "beta", Source: "Wired", Timestamp: now.Add(-time.Hour)},
		{Title: "Alpha", Source: "TechCrunch", Timestamp: now},
		{Title: "gamma", Source: "Ars Technica", Timestamp: now.Add(-2 * time.Hour)},
	}

	t.Run("recent", func(t *testing.T) {
		articles := append([]news.CanonicalArticle(nil), base...)
		SortArticles(articles, SortRecent)
		if articles[0].Title != "Alpha" || articles[2].Title != "gamma" {
			t.Errorf("recent order = [%s %s %s]", articles[0].Title, articles[1].Title, articles[2].Title)
		}
	})

	t.Run("alphabetical", func(t *testing.T) {
		articles := append([]news.CanonicalArticle(nil), base...)
		SortArticles(articles, SortAlphabetical)
		if articles[0].Title != "Alpha" || articles[1].Title != "beta" {
			t.Errorf("alphabetical order = [%s %s %s]", articles[0].Title, articles[1].Title, articles[2].Title)
		}
	})

	t.Run("source", func(t *testing.T) {
		articles := append([]news.CanonicalArticle(nil), base...)
		SortArticles(articles, SortSource)
		if articles[0].Source != "Ars Technica" {
			t.Errorf("source order starts with %s, want Ars Technica", articles[0].Source)
		}
	})
}

func TestSortOrderCycle(t *testing.T) {
	order := SortRecent
	seen := map[SortOrder]bool{}
	for i := 0; i < 3; i++ {
		seen[order] = true
		order = order.Next()
	}
	if order != SortRecent {
		t.Errorf("cycle did not return to SortRecent, got %v", order)
	}
	if len(seen) != 3 {
		t.Errorf("cycle visited %d orders, want 3", len(seen))
	}
}

func TestMarkReadFallbackAndCaching(t *testing.T) {
	feeds := []rss.Feed{{Name: "HN", URL: "https://news.ycombinator.com/rss"}}
	app := newTestApp(t, &fakeFetcher{}, feeds, 0)

	article := news.CanonicalArticle{
		ID:      news.ContentID("Offline story"),
		Title:   "Offline story",
		Summary: "The summary we already have.",
		Link:    "https://example.invalid/offline",
		Source:  "HN",
		Sources: []string{"https://example.invalid/offline", "https://mirror.invalid/offline"},
	}

	// No scraper and no Gemini configured: MarkRead must still return a
	// readable digest built from the article itself.
	verbose, err := app.MarkRead(context.Background(), article)
	if err != nil {
		t.Fatalf("MarkRead() error = %v", err)
	}
	if !strings.Contains(verbose, article.Summary) {
		t.Errorf("digest missing summary: %q", verbose)
	}
	if !strings.Contains(verbose, "1 more") {
		t.Errorf("digest missing extra-source note: %q", verbose)
	}

	// Second read comes from the store.
	again, err := app.MarkRead(context.Background(), article)
	if err != nil {
		t.Fatalf("second MarkRead() error = %v", err)
	}
	if again != verbose {
		t.Error("MarkRead() returned different text on second call")
	}
}
