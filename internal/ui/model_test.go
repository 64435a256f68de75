package ui

import (
	"testing"
	"time"

	"github.com/briefsapp/briefs/internal/app"
	"github.com/briefsapp/briefs/internal/news"
)

func fixtureModel() Model {
	now := time.Now()
	m := NewModel(nil)
	m.state = stateList
	m.articles = []news.CanonicalArticle{
		{ID: "a", Title: "Go generics deep dive", Summary: "Type parameters.", Source: "HN", Timestamp: now},
		{ID: "b", Title: "Rust async runtimes", Summary: "Tokio internals.", Source: "Wired", Timestamp: now.Add(-time.Hour)},
		{ID: "c", Title: "Zig package manager", Summary: "Build system news.", Source: "HN", Timestamp: now.Add(-2 * time.Hour)},
	}
	m.applyFilter()
	return m
}

func TestApplyFilterSearch(t *testing.T) {
	m := fixtureModel()

	m.query = "rust"
	m.applyFilter()
	if len(m.visible) != 1 || m.visible[0].ID != "b" {
		t.Fatalf("visible = %v, want only the Rust story", m.visible)
	}

	m.query = ""
	m.applyFilter()
	if len(m.visible) != 3 {
		t.Errorf("clearing the query left %d visible, want 3", len(m.visible))
	}
}

func TestApplyFilterClampsCursor(t *testing.T) {
	m := fixtureModel()
	m.cursor = 2

	m.query = "rust"
	m.applyFilter()
	if m.cursor != 0 {
		t.Errorf("cursor = %d after narrowing to one result, want 0", m.cursor)
	}
}

func TestApplyFilterSortOrder(t *testing.T) {
	m := fixtureModel()
	m.sortOrder = app.SortAlphabetical
	m.applyFilter()
	if m.visible[0].ID != "a" || m.visible[1].ID != "b" || m.visible[2].ID != "c" {
		t.Errorf("alphabetical order = [%s %s %s]", m.visible[0].Title, m.visible[1].Title, m.visible[2].Title)
	}
}

func TestRemoveVisibleMiddleNoQuery(t *testing.T) {
	// With no search active, the visible list must not share backing
	// storage with the full set: removing a middle story once corrupted
	// the list with a duplicated later entry.
	m := fixtureModel()

	m.removeVisible("b")

	if len(m.visible) != 2 {
		t.Fatalf("visible has %d entries after removing b, want 2: %+v", len(m.visible), m.visible)
	}
	seen := map[string]bool{}
	for _, a := range m.visible {
		if seen[a.ID] {
			t.Fatalf("duplicate entry %q in visible list: %+v", a.ID, m.visible)
		}
		seen[a.ID] = true
	}
	if !seen["a"] || !seen["c"] || seen["b"] {
		t.Errorf("visible ids = %v, want exactly a and c", seen)
	}
	if len(m.articles) != 2 {
		t.Errorf("articles has %d entries after removing b, want 2", len(m.articles))
	}
}

func TestRemoveVisible(t *testing.T) {
	m := fixtureModel()
	m.cursor = 2

	m.removeVisible("c")
	if len(m.visible) != 2 || len(m.articles) != 2 {
		t.Fatalf("visible=%d articles=%d after remove, want 2/2", len(m.visible), len(m.articles))
	}
	if m.cursor != 1 {
		t.Errorf("cursor = %d after removing last item, want 1", m.cursor)
	}
	for _, a := range m.articles {
		if a.ID == "c" {
			t.Error("removed article still present")
		}
	}
}

func TestCurrentEmptyList(t *testing.T) {
	m := NewModel(nil)
	if m.current() != nil {
		t.Error("current() on empty list should be nil")
	}
}
