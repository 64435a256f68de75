package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	FeedsFetched        int64
	FeedsFailed         int64
	ArticlesFetched     int64
	ClustersFormed      int64
	DuplicatesCollapsed int64

	// Timings
	LastRefreshTime    time.Duration
	AverageRefreshTime time.Duration
	TotalRefreshTime   time.Duration
	RefreshCount       int64

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddFeedsFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFetched += int64(n)
}

func (m *Metrics) AddFeedsFailed(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedsFailed += int64(n)
}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

// RecordClustering tracks one clustering pass: how many clusters came out
// of a batch, and how many articles were folded into an existing story.
func (m *Metrics) RecordClustering(batchSize, clusterCount int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ClustersFormed += int64(clusterCount)
	m.DuplicatesCollapsed += int64(batchSize - clusterCount)
}

func (m *Metrics) RecordRefreshTime(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRefreshTime = duration
	m.TotalRefreshTime += duration
	m.RefreshCount++

	if m.RefreshCount > 0 {
		m.AverageRefreshTime = m.TotalRefreshTime / time.Duration(m.RefreshCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"feeds_fetched":           m.FeedsFetched,
		"feeds_failed":            m.FeedsFailed,
		"articles_fetched":        m.ArticlesFetched,
		"clusters_formed":         m.ClustersFormed,
		"duplicates_collapsed":    m.DuplicatesCollapsed,
		"last_refresh_time_ms":    m.LastRefreshTime.Milliseconds(),
		"average_refresh_time_ms": m.AverageRefreshTime.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
