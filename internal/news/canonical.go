package news

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// CanonicalArticle is the single representative item produced for each
// story cluster. Liked/discarded flags and the Verbose text are owned by
// the storage layer; this package only ever fills Verbose with the empty
// string.
type CanonicalArticle struct {
	ID        string
	Title     string
	Summary   string
	Link      string
	Timestamp time.Time
	Source    string
	Domain    string
	Sources   []string
	Verbose   string
}

// ContentID derives the stable identifier for an article title. Hashing
// the title alone (not title+summary) keeps the id identical across
// refreshes even when feeds reformat their summaries, which is what makes
// liked/discarded lookups idempotent.
func ContentID(title string) string {
	h := sha256.Sum256([]byte(title))
	return hex.EncodeToString(h[:])
}

// Canonicalize collapses each cluster into one CanonicalArticle, keeping
// cluster order. The representative is always the first-discovered member;
// Sources collects the distinct links of every member.
func Canonicalize(clusters []Cluster) []CanonicalArticle {
	out := make([]CanonicalArticle, 0, len(clusters))

	for _, cluster := range clusters {
		if len(cluster) == 0 {
			continue
		}
		rep := cluster.Representative()

		seen := make(map[string]struct{}, len(cluster))
		sources := make([]string, 0, len(cluster))
		for _, member := range cluster {
			if _, dup := seen[member.Link]; dup {
				continue
			}
			seen[member.Link] = struct{}{}
			sources = append(sources, member.Link)
		}

		out = append(out, CanonicalArticle{
			ID:        ContentID(rep.Title),
			Title:     rep.Title,
			Summary:   rep.Summary,
			Link:      rep.Link,
			Timestamp: rep.Timestamp,
			Source:    rep.Source,
			Domain:    rep.Domain,
			Sources:   sources,
		})
	}

	return out
}
