package gemini

import (
	"context"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// Client wraps the Gemini API for article analysis.
type Client struct {
	client *genai.Client
	model  string
}

// NewClient creates a Gemini client. The model name comes from config
// (GEMINI_MODEL), defaulting to gemini-1.5-flash.
func NewClient(apiKey, model string) (*Client, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &Client{client: client, model: model}, nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
	}
}

// AnalyzeArticle asks Gemini for a readable long-form summary of a
// scraped article. Returns the analysis text.
func (c *Client) AnalyzeArticle(ctx context.Context, title, content string) (string, error) {
	model := c.client.GenerativeModel(c.model)

	// Sanitize & limit content size (avoid over-long prompts)
	content = strings.ReplaceAll(content, "\r", "")
	content = strings.TrimSpace(content)
	content = strings.Join(strings.Fields(content), " ")
	maxChars := 6000
	if utf8.RuneCountInString(content) > maxChars {
		// cut on rune boundary then try to end at sentence
		runes := []rune(content)
		trimmed := string(runes[:maxChars])
		if idx := strings.LastIndex(trimmed, ". "); idx > 1200 {
			trimmed = trimmed[:idx+1]
		}
		content = trimmed + "\n[TRUNCATED]"
	}

	prompt := fmt.Sprintf(`Summarize this news article for a technical reader.

ARTICLE:
Title: %s
Content: %s

TASKS:

Write a clear summary of the key facts (3-5 short paragraphs).

Call out concrete numbers (funding amounts, user counts, percentages, dates) when the article mentions them.

End with one sentence on why this matters.

REQUIREMENTS:

Do not translate proper names of brands or organizations.

Avoid filler openings like "This article is about...".

Plain text only, no markdown headings.`, title, content)

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("failed to generate content: %w", err)
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("no response from Gemini")
	}

	analysis := strings.TrimSpace(fmt.Sprintf("%v", resp.Candidates[0].Content.Parts[0]))
	if analysis == "" {
		return "", fmt.Errorf("empty response from Gemini")
	}
	return analysis, nil
}
