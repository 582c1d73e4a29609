package tui

import (
	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/search"
)

type errMsg struct {
	err error
}

type sessionsLoadedMsg struct {
	sessions []sessionItem
}

type sessionDetailLoadedMsg struct {
	item sessionItem
}

type statsLoadedMsg struct {
	stats statsData
}

type searchResultsMsg struct {
	query   string
	results []search.SearchResult
}

type copiedMsg struct {
	text string
	err  error
}

func loadSessions(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		stored, err := database.ListSessions(0)
		if err != nil {
			return errMsg{err}
		}

		sessions := make([]sessionItem, 0, len(stored))
		for _, s := range stored {
			sessions = append(sessions, sessionItem{ID: s.ID, Session: s.Session})
		}
		return sessionsLoadedMsg{sessions: sessions}
	}
}

func loadSessionDetail(database *db.DB, sessionID string) tea.Cmd {
	return func() tea.Msg {
		stored, err := database.GetSession(sessionID)
		if err != nil {
			return errMsg{err}
		}
		return sessionDetailLoadedMsg{item: sessionItem{ID: stored.ID, Session: stored.Session}}
	}
}

func loadStats(database *db.DB) tea.Cmd {
	return func() tea.Msg {
		journal, err := database.LoadJournal()
		if err != nil {
			return errMsg{err}
		}
		store, err := database.GetStats()
		if err != nil {
			return errMsg{err}
		}
		return statsLoadedMsg{stats: statsData{
			statistics: journal.Statistics(),
			totals:     journal.Totals(),
			store:      store,
		}}
	}
}

func performSearch(database *db.DB, query string) tea.Cmd {
	return func() tea.Msg {
		filters := ParseSearchQuery(query)

		// Minimum 2 characters to search (avoid useless single-char results)
		if len(filters.Query) < 2 {
			return searchResultsMsg{query: query, results: nil}
		}

		results, err := search.WithOptions(database, filters.Query, search.Options{
			Ship:     filters.Ship,
			Location: filters.Location,
			Since:    filters.AfterDate,
			Limit:    50,
		})
		if err != nil {
			// Half-typed FTS syntax is expected while typing
			return searchResultsMsg{query: query, results: []search.SearchResult{}}
		}
		if results == nil {
			results = []search.SearchResult{}
		}
		return searchResultsMsg{query: query, results: results}
	}
}

func copyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		err := clipboard.WriteAll(text)
		return copiedMsg{text: text, err: err}
	}
}
