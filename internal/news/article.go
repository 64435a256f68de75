package news

import (
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/mmcdole/gofeed"
)

// NormalizedArticle is a single feed entry reduced to canonical fields.
// Values are immutable once produced by Normalize.
type NormalizedArticle struct {
	Title     string
	Summary   string
	Link      string
	Timestamp time.Time
	Source    string
	Domain    string
}

// SummaryMaxRunes is the summary length cap applied before highlighting.
const SummaryMaxRunes = 300

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Quantifiable token classes, applied in this fixed order so earlier
// rewrites never overlap later ones.
var quantifiablePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)(\$\d+(?:\.\d+)?[MBK]?)`),                                         // money amounts
	regexp.MustCompile(`\b(\d{4})\b`),                                                         // years
	regexp.MustCompile(`(?i)(\d+(?:,\d+)?\+?\s(?:users|downloads|installs|followers|views))`), // metrics
	regexp.MustCompile(`(\d+(?:\.\d+)?%)`),                                                    // percentages
	regexp.MustCompile(`(?i)(\d+(?:\.\d+)?\s*(?:million|billion|thousand))`),                  // large numbers
}

var dateLayouts = []string{time.RFC1123Z, time.RFC1123, time.RFC3339}

// Normalize turns a raw feed entry into a NormalizedArticle. It never
// fails: malformed markup, missing dates and broken links all degrade to
// safe defaults instead of rejecting the article.
func Normalize(item *gofeed.Item, source string) NormalizedArticle {
	title := strings.TrimSpace(StripHTML(item.Title))

	raw := item.Description
	if raw == "" {
		raw = item.Content
	}
	summary := strings.TrimSpace(StripHTML(raw))
	summary = truncateSummary(summary)
	// Highlight only after truncation so a marker is never split across
	// the cut point.
	summary = HighlightQuantifiables(summary)

	return NormalizedArticle{
		Title:     title,
		Summary:   summary,
		Link:      item.Link,
		Timestamp: extractTimestamp(item),
		Source:    source,
		Domain:    ExtractDomain(item.Link),
	}
}

// StripHTML removes markup from text, keeping only the rendered content.
// Falls back to a regex tag strip when the parser chokes on broken markup.
func StripHTML(text string) string {
	if text == "" {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(text))
	if err != nil {
		return tagPattern.ReplaceAllString(text, " ")
	}
	return doc.Text()
}

// truncateSummary caps the summary at SummaryMaxRunes, ending with an
// ellipsis marker when the original was longer.
func truncateSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= SummaryMaxRunes {
		return s
	}
	return string(runes[:SummaryMaxRunes-3]) + "..."
}

// HighlightQuantifiables wraps money amounts, years, count metrics,
// percentages and written-out magnitudes in ** emphasis markers.
func HighlightQuantifiables(text string) string {
	if text == "" {
		return ""
	}
	for _, p := range quantifiablePatterns {
		text = p.ReplaceAllString(text, "**${1}**")
	}
	return text
}

// extractTimestamp resolves the entry's publish time through a fallback
// chain: parsed published, parsed updated, published string, updated
// string, and finally the current instant.
func extractTimestamp(item *gofeed.Item) time.Time {
	if item.PublishedParsed != nil {
		return *item.PublishedParsed
	}
	if item.UpdatedParsed != nil {
		return *item.UpdatedParsed
	}
	if t, ok := parseDate(item.Published); ok {
		return t
	}
	if t, ok := parseDate(item.Updated); ok {
		return t
	}
	return time.Now()
}

func parseDate(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ExtractDomain returns the lowercased host of link without a leading
// "www." prefix, or "unknown" for empty or malformed links.
func ExtractDomain(link string) string {
	if link == "" {
		return "unknown"
	}
	u, err := url.Parse(link)
	if err != nil || u.Host == "" {
		return "unknown"
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
