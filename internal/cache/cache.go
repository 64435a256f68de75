package cache

import (
	"sync"
	"time"

	"github.com/briefsapp/briefs/internal/news"
)

type cacheItem struct {
	articles  []news.NormalizedArticle
	expiresAt time.Time
}

// FeedCache keeps recently fetched feed batches, keyed by feed URL, so a
// manual refresh inside the TTL window does not hammer the same servers.
type FeedCache struct {
	mu    sync.RWMutex
	ttl   time.Duration
	items map[string]cacheItem
}

func New(ttl time.Duration) *FeedCache {
	c := &FeedCache{
		ttl:   ttl,
		items: make(map[string]cacheItem),
	}

	// Cleanup expired items periodically. A disabled cache never stores
	// anything, so it needs no cleanup goroutine.
	if ttl > 0 {
		go c.cleanupLoop()
	}

	return c
}

func (c *FeedCache) Set(feedURL string, articles []news.NormalizedArticle) {
	if c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.items[feedURL] = cacheItem{
		articles:  articles,
		expiresAt: time.Now().Add(c.ttl),
	}
}

func (c *FeedCache) Get(feedURL string) ([]news.NormalizedArticle, bool) {
	c.mu.RLock()
	item, exists := c.items[feedURL]
	c.mu.RUnlock()

	if !exists {
		return nil, false
	}
	if time.Now().After(item.expiresAt) {
		c.mu.Lock()
		delete(c.items, feedURL)
		c.mu.Unlock()
		return nil, false
	}

	return item.articles, true
}

// Invalidate drops every cached batch, forcing the next refresh to hit
// the network.
func (c *FeedCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make(map[string]cacheItem)
}

func (c *FeedCache) cleanupLoop() {
	ticker := time.NewTicker(1 * time.Hour)
	defer ticker.Stop()

	for range ticker.C {
		c.cleanup()
	}
}

func (c *FeedCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	for key, item := range c.items {
		if now.After(item.expiresAt) {
			delete(c.items, key)
		}
	}
}
