package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefsapp/briefs/internal/app"
	"github.com/briefsapp/briefs/internal/news"
)

// refreshCmd runs a full refresh cycle off the update loop.
func refreshCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		articles, err := a.Refresh(context.Background())
		return refreshDoneMsg{articles: articles, err: err}
	}
}

// markReadCmd fetches or builds the long-form text for one article.
func markReadCmd(a *app.App, article news.CanonicalArticle) tea.Cmd {
	return func() tea.Msg {
		text, err := a.MarkRead(context.Background(), article)
		return verboseDoneMsg{id: article.ID, text: text, err: err}
	}
}

// savedCmd loads the liked stories and their per-source stats.
func savedCmd(a *app.App) tea.Cmd {
	return func() tea.Msg {
		records, err := a.Liked()
		if err != nil {
			return savedDoneMsg{err: err}
		}
		total, bySource, err := a.Stats()
		if err != nil {
			return savedDoneMsg{err: err}
		}
		return savedDoneMsg{records: records, total: total, bySource: bySource}
	}
}

// likeCmd persists a like.
func likeCmd(a *app.App, article news.CanonicalArticle) tea.Cmd {
	return func() tea.Msg {
		if err := a.Like(article); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}

// discardCmd persists a discard. The list is updated optimistically by
// the caller; this just makes it stick.
func discardCmd(a *app.App, article news.CanonicalArticle) tea.Cmd {
	return func() tea.Msg {
		if err := a.Discard(article); err != nil {
			return actionErrMsg{err: err}
		}
		return nil
	}
}
