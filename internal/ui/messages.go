package ui

import (
	"github.com/briefsapp/briefs/internal/news"
	"github.com/briefsapp/briefs/internal/storage"
)

// refreshDoneMsg carries a finished refresh cycle back into the update
// loop.
type refreshDoneMsg struct {
	articles []news.CanonicalArticle
	err      error
}

// verboseDoneMsg carries the long-form text for the article being read.
type verboseDoneMsg struct {
	id   string
	text string
	err  error
}

// savedDoneMsg carries the persisted liked stories for the saved view.
type savedDoneMsg struct {
	records  []storage.Record
	total    int
	bySource map[string]int
	err      error
}

// actionErrMsg reports a failed like/discard so the status line can show it.
type actionErrMsg struct {
	err error
}
