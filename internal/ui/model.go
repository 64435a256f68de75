package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/briefsapp/briefs/internal/app"
	"github.com/briefsapp/briefs/internal/news"
	"github.com/briefsapp/briefs/internal/storage"
)

// viewState is the screen the reader is on.
type viewState int

const (
	stateLoading viewState = iota
	stateList
	stateReading
	stateSaved
)

// Model is the terminal reader state: the refreshed article set, the
// filtered view of it, and whichever article is open for reading.
type Model struct {
	app *app.App

	state     viewState
	articles  []news.CanonicalArticle // full refreshed set
	visible   []news.CanonicalArticle // after search filter + sort
	cursor    int
	sortOrder app.SortOrder

	searching bool
	query     string

	reading    *news.CanonicalArticle
	verbose    string
	verboseErr error

	saved         []storage.Record
	savedTotal    int
	savedBySource map[string]int

	width  int
	height int

	status string
	err    error
}

// NewModel creates the reader model. The first refresh starts in Init.
func NewModel(a *app.App) Model {
	return Model{
		app:       a,
		state:     stateLoading,
		sortOrder: app.SortRecent,
	}
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return refreshCmd(m.app)
}

// applyFilter recomputes the visible list from the full set, the search
// query and the sort order, clamping the cursor.
func (m *Model) applyFilter() {
	m.visible = app.Filter(m.articles, m.query)
	app.SortArticles(m.visible, m.sortOrder)
	if m.cursor >= len(m.visible) {
		m.cursor = len(m.visible) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// current returns the article under the cursor, or nil.
func (m *Model) current() *news.CanonicalArticle {
	if len(m.visible) == 0 || m.cursor >= len(m.visible) {
		return nil
	}
	return &m.visible[m.cursor]
}

// removeVisible drops the article with id from both lists without waiting
// for the store write to finish.
func (m *Model) removeVisible(id string) {
	filter := func(in []news.CanonicalArticle) []news.CanonicalArticle {
		out := in[:0]
		for _, a := range in {
			if a.ID != id {
				out = append(out, a)
			}
		}
		return out
	}
	m.articles = filter(m.articles)
	m.visible = filter(m.visible)
	if m.cursor >= len(m.visible) && m.cursor > 0 {
		m.cursor--
	}
}
