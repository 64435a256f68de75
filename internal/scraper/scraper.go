package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// ArticleContent is full article content
type ArticleContent struct {
	Title   string
	Content string
	URL     string
}

// Scraper fetches article pages and extracts readable body text.
type Scraper struct {
	client    *http.Client
	userAgent string
}

// New creates a Scraper with the given user agent.
func New(userAgent string) *Scraper {
	return &Scraper{
		client:    &http.Client{Timeout: 15 * time.Second},
		userAgent: userAgent,
	}
}

// ExtractArticle gets full text of article by URL
func (s *Scraper) ExtractArticle(ctx context.Context, url string) (*ArticleContent, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("error building request: %v", err)
	}
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("error loading page: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != 200 {
		return nil, fmt.Errorf("HTTP error: %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %v", err)
	}

	content := cleanContent(extractBodyText(doc))
	title := extractTitle(doc)

	if content == "" {
		return nil, fmt.Errorf("can't get content")
	}

	return &ArticleContent{
		Title:   title,
		Content: content,
		URL:     url,
	}, nil
}

// extractBodyText is a universal paragraph extractor for news sites
func extractBodyText(doc *goquery.Document) string {
	var paragraphs []string

	// Try most popular selectors
	selectors := []string{
		"article p",
		".article p",
		".article-body p",
		".article-content p",
		".content p",
		".post-content p",
		".entry-content p",
		"main p",
		"#content p",
		".text p",
		"p",
	}

	for _, selector := range selectors {
		doc.Find(selector).Each(func(i int, sel *goquery.Selection) {
			text := strings.TrimSpace(sel.Text())
			if text != "" && len(text) > 20 {
				paragraphs = append(paragraphs, text)
			}
		})
		if len(paragraphs) >= 3 { // If we find 3 paragraphs, it's enough
			break
		}
	}

	return strings.Join(paragraphs, "\n\n")
}

// extractTitle gets article title
func extractTitle(doc *goquery.Document) string {
	selectors := []string{
		"h1",
		"title",
		".article-title",
		".headline",
		".entry-title",
	}

	for _, selector := range selectors {
		title := doc.Find(selector).First().Text()
		title = strings.TrimSpace(title)
		if title != "" {
			return title
		}
	}

	return ""
}

// cleanContent cleans and normalizes text with better formatting
func cleanContent(content string) string {
	if content == "" {
		return ""
	}

	lines := strings.Split(content, "\n")
	var cleanLines []string

	for _, line := range lines {
		line = strings.TrimSpace(line)
		if len(line) < 8 {
			continue
		}

		// Drop boilerplate lines that survive the selectors
		lower := strings.ToLower(line)
		isJunk := false
		junkIndicators := []string{
			"cookie", "newsletter", "subscribe", "advertisement",
			"sign up", "sign in", "read more", "follow us",
			"share this", "related stories", "privacy policy",
		}
		for _, indicator := range junkIndicators {
			if strings.Contains(lower, indicator) {
				isJunk = true
				break
			}
		}
		if isJunk {
			continue
		}

		cleanLines = append(cleanLines, line)
	}

	resultText := strings.Join(cleanLines, "\n\n")

	for strings.Contains(resultText, "  ") {
		resultText = strings.ReplaceAll(resultText, "  ", " ")
	}
	for strings.Contains(resultText, "\n\n\n") {
		resultText = strings.ReplaceAll(resultText, "\n\n\n", "\n\n")
	}

	resultText = strings.TrimSpace(resultText)

	// Limit length, keep full paragraphs
	if len(resultText) > 4000 {
		paragraphs := strings.Split(resultText, "\n\n")
		var selected []string
		totalLength := 0

		for _, paragraph := range paragraphs {
			if totalLength+len(paragraph) < 3800 {
				selected = append(selected, paragraph)
				totalLength += len(paragraph) + 2
			} else {
				break
			}
		}

		if len(selected) > 0 {
			resultText = strings.Join(selected, "\n\n")
		}
	}

	return resultText
}
