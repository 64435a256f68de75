package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case refreshDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateList
			return m, nil
		}
		m.err = nil
		m.articles = msg.articles
		m.applyFilter()
		m.state = stateList
		m.status = fmt.Sprintf("%d stories", len(m.articles))
		return m, nil

	case verboseDoneMsg:
		if m.reading == nil || m.reading.ID != msg.id {
			return m, nil
		}
		m.verbose = msg.text
		m.verboseErr = msg.err
		return m, nil

	case savedDoneMsg:
		if msg.err != nil {
			m.err = msg.err
			m.state = stateList
			return m, nil
		}
		m.saved = msg.records
		m.savedTotal = msg.total
		m.savedBySource = msg.bySource
		return m, nil

	case actionErrMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Search input swallows most keys.
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "ctrl+c", "q":
		return m, tea.Quit
	}

	if m.state == stateReading {
		switch msg.String() {
		case "esc", "enter", "backspace":
			m.state = stateList
			m.reading = nil
			m.verbose = ""
			m.verboseErr = nil
		case "l":
			// Liking from the reading view saves the story and returns
			// to the list, where it no longer appears.
			if m.reading != nil {
				target := *m.reading
				m.state = stateList
				m.reading = nil
				m.verbose = ""
				m.verboseErr = nil
				m.removeVisible(target.ID)
				m.status = fmt.Sprintf("saved: %s", truncate(target.Title, 40))
				return m, likeCmd(m.app, target)
			}
		}
		return m, nil
	}

	if m.state == stateSaved {
		switch msg.String() {
		case "esc", "v", "backspace":
			m.state = stateList
		}
		return m, nil
	}

	if m.state == stateLoading {
		return m, nil
	}

	switch msg.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.visible)-1 {
			m.cursor++
		}
	case "g", "home":
		m.cursor = 0
	case "G", "end":
		if len(m.visible) > 0 {
			m.cursor = len(m.visible) - 1
		}
	case "enter":
		if art := m.current(); art != nil {
			opened := *art
			m.state = stateReading
			m.reading = &opened
			m.verbose = ""
			m.verboseErr = nil
			return m, markReadCmd(m.app, opened)
		}
	case "l":
		if art := m.current(); art != nil {
			target := *art
			m.removeVisible(target.ID)
			m.status = fmt.Sprintf("saved: %s", truncate(target.Title, 40))
			return m, likeCmd(m.app, target)
		}
	case "d":
		if art := m.current(); art != nil {
			id := art.ID
			target := *art
			m.removeVisible(id)
			m.status = fmt.Sprintf("discarded: %s", truncate(target.Title, 40))
			return m, discardCmd(m.app, target)
		}
	case "v":
		m.state = stateSaved
		return m, savedCmd(m.app)
	case "/":
		m.searching = true
		m.query = ""
		m.applyFilter()
	case "s":
		m.sortOrder = m.sortOrder.Next()
		m.applyFilter()
		m.status = "sort: " + m.sortOrder.String()
	case "r":
		m.state = stateLoading
		m.status = "refreshing..."
		return m, refreshCmd(m.app)
	}

	return m, nil
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.searching = false
		m.query = ""
		m.applyFilter()
	case "enter":
		m.searching = false
	case "backspace":
		if len(m.query) > 0 {
			runes := []rune(m.query)
			m.query = string(runes[:len(runes)-1])
			m.applyFilter()
		}
	default:
		if msg.Type == tea.KeyRunes {
			m.query += string(msg.Runes)
			m.applyFilter()
		}
	}
	return m, nil
}
