package ui

import (
	"fmt"
	"sort"
	"strings"
)

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render("📰 Briefs"))
	b.WriteString("\n\n")

	switch m.state {
	case stateLoading:
		b.WriteString(statusStyle.Render("⏳ Fetching feeds..."))
		b.WriteString("\n")
	case stateReading:
		b.WriteString(m.readingView())
	case stateSaved:
		b.WriteString(m.savedView())
	default:
		b.WriteString(m.listView())
	}

	if m.err != nil {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("error: " + m.err.Error()))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) listView() string {
	var b strings.Builder

	if m.searching || m.query != "" {
		prompt := "/" + m.query
		if m.searching {
			prompt += "▌"
		}
		b.WriteString(searchStyle.Render(prompt))
		b.WriteString("\n\n")
	}

	if len(m.visible) == 0 {
		if m.query != "" {
			b.WriteString(dimStyle.Render("No stories match your search."))
		} else {
			b.WriteString(dimStyle.Render("No stories. Press 'r' to refresh."))
		}
		b.WriteString("\n")
		return b.String()
	}

	width := m.width
	if width <= 0 {
		width = 100
	}

	for i, art := range m.visible {
		cursor := "  "
		title := titleStyle.Render(truncate(art.Title, width-4))
		if i == m.cursor {
			cursor = selectedStyle.Render("▶ ")
			title = selectedStyle.Render(truncate(art.Title, width-4))
		}

		b.WriteString(cursor)
		b.WriteString(title)
		b.WriteString("\n")

		meta := sourceStyle.Render(art.Source) + dimStyle.Render(" · ") + dateStyle.Render(relativeTime(art.Timestamp))
		if extra := sourceDomains(art.Sources, art.Link); len(extra) > 0 {
			meta += dimStyle.Render(" · ") + clusterStyle.Render("also on "+strings.Join(extra, ", "))
		}
		b.WriteString("    ")
		b.WriteString(meta)
		b.WriteString("\n")

		// Summary only for the selected story, to keep the list scannable.
		if i == m.cursor && art.Summary != "" {
			summary := wrap(art.Summary, width-6)
			for _, line := range strings.Split(summary, "\n") {
				b.WriteString("    ")
				b.WriteString(textStyle.Render(renderHighlights(line)))
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) readingView() string {
	if m.reading == nil {
		return ""
	}

	width := m.width - 8
	if width <= 0 {
		width = 80
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(wrap(m.reading.Title, width)))
	b.WriteString("\n")
	b.WriteString(sourceStyle.Render(m.reading.Source))
	b.WriteString(dimStyle.Render(" · "))
	b.WriteString(dateStyle.Render(relativeTime(m.reading.Timestamp)))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.reading.Link))
	b.WriteString("\n\n")

	switch {
	case m.verboseErr != nil:
		b.WriteString(errorStyle.Render("couldn't load article: " + m.verboseErr.Error()))
		b.WriteString("\n\n")
		b.WriteString(textStyle.Render(wrap(renderHighlights(m.reading.Summary), width)))
	case m.verbose == "":
		b.WriteString(statusStyle.Render("⏳ Loading full story..."))
	default:
		b.WriteString(textStyle.Render(wrap(m.verbose, width)))
	}

	return readingStyle.Render(b.String())
}

func (m Model) savedView() string {
	var b strings.Builder

	b.WriteString(likedStyle.Render("♥ Saved stories"))
	b.WriteString("\n\n")

	if len(m.saved) == 0 {
		b.WriteString(dimStyle.Render("Nothing saved yet. Press 'l' on a story to keep it."))
		b.WriteString("\n")
		return b.String()
	}

	for _, rec := range m.saved {
		b.WriteString("  ")
		b.WriteString(titleStyle.Render(rec.Title))
		b.WriteString("\n    ")
		b.WriteString(sourceStyle.Render(rec.Source))
		b.WriteString(dimStyle.Render(" · "))
		b.WriteString(dateStyle.Render("saved " + relativeTime(rec.LikedAt)))
		b.WriteString("\n    ")
		b.WriteString(dimStyle.Render(rec.Link))
		b.WriteString("\n\n")
	}

	if m.savedTotal > 0 {
		parts := make([]string, 0, len(m.savedBySource))
		for source, n := range m.savedBySource {
			parts = append(parts, fmt.Sprintf("%s %d", source, n))
		}
		sort.Strings(parts)
		b.WriteString(statusStyle.Render(fmt.Sprintf("%d saved", m.savedTotal)))
		b.WriteString(dimStyle.Render(" · " + strings.Join(parts, " · ")))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) footer() string {
	if m.searching {
		return dimStyle.Render("type to search · enter keep · esc clear")
	}
	if m.state == stateReading {
		return dimStyle.Render("esc back · l save · q quit")
	}
	if m.state == stateSaved {
		return dimStyle.Render("esc back · q quit")
	}

	help := "↑/↓ move · enter read · l save · d discard · v saved · / search · s sort · r refresh · q quit"
	line := dimStyle.Render(help)
	if m.status != "" {
		line += "  " + statusStyle.Render(fmt.Sprintf("[%s]", m.status))
	}
	return line
}
