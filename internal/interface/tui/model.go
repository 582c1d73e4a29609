package tui

import (
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/scjournal/internal/core/db"
	"github.com/neilberkman/scjournal/internal/core/models"
	"github.com/neilberkman/scjournal/internal/core/search"
)

type viewMode int

const (
	listView viewMode = iota
	detailView
	searchView
	statsView
	helpView
)

type Model struct {
	db         *db.DB
	timeLayout string
	mode       viewMode
	list       list.Model
	viewport   viewport.Model
	width      int
	height     int
	err        error
	status     string

	// Journal data
	sessions       []sessionItem
	currentSession *sessionItem
	stats          *statsData

	// Search state
	searchInput       textinput.Model
	searchResults     []search.SearchResult
	searchSelectedIdx int
	searchViewOffset  int
}

type sessionItem struct {
	ID      string
	Session *models.Session
}

type statsData struct {
	statistics models.Statistics
	totals     models.Totals
	store      *db.Stats
}

// New creates the TUI model. timeLayout formats absolute times.
func New(database *db.DB, timeLayout string) Model {
	ti := textinput.New()
	ti.Placeholder = "bounty ship:cutlass after:last-week"
	ti.CharLimit = 200
	ti.Width = 60

	return Model{
		db:          database,
		timeLayout:  timeLayout,
		mode:        listView,
		searchInput: ti,
	}
}

func (m Model) Init() tea.Cmd {
	return loadSessions(m.db)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.sessions != nil {
			index := m.list.Index()
			m.list = createSessionList(m.sessions, m.width, m.height)
			m.list.Select(index)
		}
		if m.mode == detailView && m.currentSession != nil {
			m.viewport = createViewport(*m.currentSession, m.timeLayout, m.width, m.height)
		}
		return m, nil

	case tea.KeyMsg:
		// The search box takes every printable key
		if m.mode == searchView {
			if msg.String() == "ctrl+c" {
				return m, tea.Quit
			}
			return m.updateSearch(msg)
		}

		switch msg.String() {
		case "ctrl+c", "q":
			if m.mode == listView {
				return m, tea.Quit
			}
			// In other views, go back to list
			m.mode = listView
			m.status = ""
			return m, nil

		case "?":
			m.mode = helpView
			return m, nil
		}

		// Mode-specific key handling
		switch m.mode {
		case listView:
			return m.updateList(msg)
		case detailView:
			return m.updateDetail(msg)
		case statsView:
			return m.updateStats(msg)
		case helpView:
			return m.updateHelp(msg)
		}

	case sessionsLoadedMsg:
		m.sessions = msg.sessions
		m.list = createSessionList(msg.sessions, m.width, m.height)
		// Newest sessions are last, start there
		if len(msg.sessions) > 0 {
			m.list.Select(len(msg.sessions) - 1)
		}
		return m, nil

	case sessionDetailLoadedMsg:
		m.currentSession = &msg.item
		m.viewport = createViewport(msg.item, m.timeLayout, m.width, m.height)
		m.mode = detailView
		m.status = ""
		return m, nil

	case statsLoadedMsg:
		m.stats = &msg.stats
		m.mode = statsView
		return m, nil

	case searchResultsMsg:
		// Drop results for a query the user has already typed past
		if msg.query != m.searchInput.Value() {
			return m, nil
		}
		m.searchResults = msg.results
		return m, nil

	case copiedMsg:
		if msg.err != nil {
			m.status = "Clipboard unavailable: " + msg.text
		} else {
			m.status = "Copied to clipboard"
		}
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil
	}

	return m, nil
}

func (m Model) View() string {
	if m.err != nil {
		return "Error: " + m.err.Error() + "\n\nPress q to quit"
	}

	switch m.mode {
	case listView:
		return m.viewList()
	case detailView:
		return m.viewDetail()
	case searchView:
		return m.viewSearch()
	case statsView:
		return m.viewStats()
	case helpView:
		return m.viewHelp()
	}

	return ""
}
