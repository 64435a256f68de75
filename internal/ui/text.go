package ui

import (
	"fmt"
	"net/url"
	"strings"
	"time"
)

// truncate shortens s to max runes with an ellipsis.
func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// wrap breaks text into lines no wider than width, preserving paragraph
// breaks.
func wrap(text string, width int) string {
	if width <= 0 {
		return text
	}

	var out []string
	for _, paragraph := range strings.Split(text, "\n") {
		words := strings.Fields(paragraph)
		if len(words) == 0 {
			out = append(out, "")
			continue
		}

		line := words[0]
		for _, word := range words[1:] {
			if len(line)+1+len(word) > width {
				out = append(out, line)
				line = word
				continue
			}
			line += " " + word
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

// relativeTime renders a timestamp the way a reader thinks about it.
func relativeTime(t time.Time) string {
	if t.IsZero() {
		return "unknown"
	}

	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 7*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("Jan 2")
	}
}

// sourceDomains lists the domains of the extra links a merged story came
// from, excluding the representative's own link.
func sourceDomains(sources []string, ownLink string) []string {
	var out []string
	for _, src := range sources {
		if src == ownLink {
			continue
		}
		if u, err := url.Parse(src); err == nil && u.Hostname() != "" {
			out = append(out, strings.TrimPrefix(strings.ToLower(u.Hostname()), "www."))
		}
	}
	return out
}

// renderHighlights turns **marked** numeric spans into styled text.
func renderHighlights(s string) string {
	var b strings.Builder
	for {
		start := strings.Index(s, "**")
		if start < 0 {
			break
		}
		end := strings.Index(s[start+2:], "**")
		if end < 0 {
			break
		}
		b.WriteString(s[:start])
		b.WriteString(numberStyle.Render(s[start+2 : start+2+end]))
		s = s[start+2+end+2:]
	}
	b.WriteString(s)
	return b.String()
}
