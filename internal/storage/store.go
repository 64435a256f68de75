package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"github.com/briefsapp/briefs/internal/news"
)

// Record is a canonical article plus the reader state that survives
// refresh cycles. The clustering core never sees these flags; they are
// attached here, keyed by the content id.
type Record struct {
	news.CanonicalArticle
	Liked     bool
	LikedAt   time.Time
	Discarded bool
}

// Store provides SQLite-backed persistence for liked/discarded articles
// and their long-form verbose text.
type Store struct {
	db *sql.DB
}

const createTablesSQL = `
CREATE TABLE IF NOT EXISTS articles (
	id TEXT PRIMARY KEY,
	title TEXT,
	summary TEXT,
	link TEXT,
	timestamp TEXT,
	source TEXT,
	domain TEXT,
	sources TEXT,
	verbose TEXT,
	liked INTEGER DEFAULT 0,
	liked_at TEXT,
	discarded INTEGER DEFAULT 0
);
`

const recordColumns = `id, title, summary, link, timestamp, source, domain, sources, verbose, liked, liked_at, discarded`

// New opens the SQLite database at dbPath, creates the schema if needed,
// and returns a Store.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: open database: %w", err)
	}

	// WAL mode for better concurrent read performance.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: set WAL mode: %w", err)
	}

	if _, err := db.Exec(createTablesSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: create tables: %w", err)
	}

	return &Store{db: db}, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Upsert inserts or replaces the record under its article id.
func (s *Store) Upsert(r Record) error {
	sources, err := json.Marshal(r.Sources)
	if err != nil {
		return fmt.Errorf("storage: marshal sources for %s: %w", r.ID, err)
	}

	likedAt := ""
	if !r.LikedAt.IsZero() {
		likedAt = r.LikedAt.UTC().Format(time.RFC3339)
	}

	_, err = s.db.Exec(
		`INSERT OR REPLACE INTO articles (`+recordColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Title, r.Summary, r.Link, r.Timestamp.UTC().Format(time.RFC3339),
		r.Source, r.Domain, string(sources), r.Verbose,
		boolToInt(r.Liked), likedAt, boolToInt(r.Discarded),
	)
	if err != nil {
		return fmt.Errorf("storage: upsert article %s: %w", r.ID, err)
	}
	return nil
}

// Get returns the record for id, or nil if none is stored.
func (s *Store) Get(id string) (*Record, error) {
	row := s.db.QueryRow(`SELECT `+recordColumns+` FROM articles WHERE id = ?`, id)
	r, err := scanRecord(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: get article %s: %w", id, err)
	}
	return r, nil
}

// Query returns every stored record matching the predicate. The store is
// personal-reader sized, so a full scan with an in-process filter keeps
// the keyed-store surface small.
func (s *Store) Query(pred func(Record) bool) ([]Record, error) {
	rows, err := s.db.Query(`SELECT ` + recordColumns + ` FROM articles`)
	if err != nil {
		return nil, fmt.Errorf("storage: query articles: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		r, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: scan article: %w", err)
		}
		if pred(*r) {
			out = append(out, *r)
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate articles: %w", err)
	}
	return out, nil
}

// Like stores the article with the liked flag set. Repeated likes of the
// same id are idempotent: the title hash keys the row, so a story liked
// last week stays liked when it reappears after a refresh.
func (s *Store) Like(article news.CanonicalArticle) error {
	existing, err := s.Get(article.ID)
	if err != nil {
		return err
	}
	if existing != nil && existing.Liked {
		return nil
	}

	rec := Record{CanonicalArticle: article, Liked: true, LikedAt: time.Now()}
	if existing != nil {
		rec.Discarded = existing.Discarded
		if existing.Verbose != "" {
			rec.Verbose = existing.Verbose
		}
	}
	return s.Upsert(rec)
}

// Discard marks the article as discarded, creating the row if the reader
// never liked it. Discarded ids stay hidden across refreshes.
func (s *Store) Discard(article news.CanonicalArticle) error {
	existing, err := s.Get(article.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		if existing.Discarded {
			return nil
		}
		existing.Discarded = true
		return s.Upsert(*existing)
	}
	return s.Upsert(Record{CanonicalArticle: article, Discarded: true})
}

// SetVerbose attaches the long-form read text to an already stored
// article, or stores the article with it when the row is missing.
func (s *Store) SetVerbose(article news.CanonicalArticle, verbose string) error {
	existing, err := s.Get(article.ID)
	if err != nil {
		return err
	}
	if existing != nil {
		existing.Verbose = verbose
		return s.Upsert(*existing)
	}
	rec := Record{CanonicalArticle: article}
	rec.Verbose = verbose
	return s.Upsert(rec)
}

// IsLiked reports whether the id has a liked record.
func (s *Store) IsLiked(id string) (bool, error) {
	var liked int
	err := s.db.QueryRow(`SELECT liked FROM articles WHERE id = ?`, id).Scan(&liked)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: is liked %s: %w", id, err)
	}
	return liked != 0, nil
}

// IsDiscarded reports whether the id has a discarded record.
func (s *Store) IsDiscarded(id string) (bool, error) {
	var discarded int
	err := s.db.QueryRow(`SELECT discarded FROM articles WHERE id = ?`, id).Scan(&discarded)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("storage: is discarded %s: %w", id, err)
	}
	return discarded != 0, nil
}

// Liked returns all liked, non-discarded records.
func (s *Store) Liked() ([]Record, error) {
	return s.Query(func(r Record) bool { return r.Liked && !r.Discarded })
}

// DiscardedIDs returns the set of discarded article ids, loaded once at
// startup so the article list can hide them immediately.
func (s *Store) DiscardedIDs() (map[string]bool, error) {
	rows, err := s.db.Query(`SELECT id FROM articles WHERE discarded = 1`)
	if err != nil {
		return nil, fmt.Errorf("storage: discarded ids: %w", err)
	}
	defer rows.Close()

	ids := make(map[string]bool)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("storage: scan discarded id: %w", err)
		}
		ids[id] = true
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: iterate discarded ids: %w", err)
	}
	return ids, nil
}

// Stats returns the liked-article total and a per-source breakdown.
func (s *Store) Stats() (int, map[string]int, error) {
	liked, err := s.Liked()
	if err != nil {
		return 0, nil, err
	}

	bySource := make(map[string]int)
	for _, r := range liked {
		source := r.Source
		if source == "" {
			source = "Unknown"
		}
		bySource[source]++
	}
	return len(liked), bySource, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecord(row rowScanner) (*Record, error) {
	var r Record
	var timestamp, sources, likedAt string
	var liked, discarded int

	err := row.Scan(&r.ID, &r.Title, &r.Summary, &r.Link, &timestamp,
		&r.Source, &r.Domain, &sources, &r.Verbose, &liked, &likedAt, &discarded)
	if err != nil {
		return nil, err
	}

	if t, err := time.Parse(time.RFC3339, timestamp); err == nil {
		r.Timestamp = t
	}
	if likedAt != "" {
		if t, err := time.Parse(time.RFC3339, likedAt); err == nil {
			r.LikedAt = t
		}
	}
	if sources != "" {
		if err := json.Unmarshal([]byte(sources), &r.Sources); err != nil {
			return nil, err
		}
	}
	r.Liked = liked != 0
	r.Discarded = discarded != 0
	return &r, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
