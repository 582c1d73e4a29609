package tui

import (
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/neilberkman/scjournal/internal/core/format"
)

type sessionListItem struct {
	session sessionItem
}

func (i sessionListItem) FilterValue() string {
	return i.session.Session.Ship + " " + i.session.Session.Location
}

func (i sessionListItem) Title() string {
	return i.session.Session.DescribeShort()
}

func (i sessionListItem) Description() string {
	s := i.session.Session
	return fmt.Sprintf("%s | Net %s | %d activities | %s",
		i.session.ID, format.Currency(s.NetProfit()), len(s.Activities), format.Relative(s.StartTime))
}

// Custom delegate to highlight sessions still in progress
type sessionDelegate struct {
	list.DefaultDelegate
}

func (d sessionDelegate) Render(w io.Writer, m list.Model, index int, item list.Item) {
	s, ok := item.(sessionListItem)
	if !ok {
		d.DefaultDelegate.Render(w, m, index, item)
		return
	}

	title := s.Title()
	desc := s.Description()

	switch {
	case index == m.Index():
		title = selectedItemStyle.Render(title)
		desc = selectedItemStyle.Faint(true).Render(desc)
	case s.session.Session.InProgress():
		title = inProgressItemStyle.Render(title)
		desc = itemStyle.Render(desc)
	default:
		title = itemStyle.Render(title)
		desc = itemStyle.Render(desc)
	}

	fmt.Fprintf(w, "%s\n%s", title, desc)
}

func createSessionList(sessions []sessionItem, width, height int) list.Model {
	items := make([]list.Item, len(sessions))
	for i, s := range sessions {
		items[i] = sessionListItem{session: s}
	}

	delegate := sessionDelegate{DefaultDelegate: list.NewDefaultDelegate()}

	l := list.New(items, delegate, width, height-1) // Reserve 1 line for help text only
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetShowTitle(false)
	l.SetFilteringEnabled(false) // Dedicated search with /

	return l
}

func (m Model) selectedSession() (sessionItem, bool) {
	selected, ok := m.list.SelectedItem().(sessionListItem)
	if !ok {
		return sessionItem{}, false
	}
	return selected.session, true
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "enter":
		if selected, ok := m.selectedSession(); ok {
			return m, loadSessionDetail(m.db, selected.ID)
		}
		return m, nil

	case "c":
		if selected, ok := m.selectedSession(); ok {
			return m, copyToClipboard(selected.Session.DescribeShort())
		}
		return m, nil

	case "/":
		m.mode = searchView
		m.status = ""
		cmd := m.searchInput.Focus()
		return m, cmd

	case "t":
		return m, loadStats(m.db)

	case "r":
		m.status = ""
		return m, loadSessions(m.db)
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m Model) viewList() string {
	helpText := "↑/k up • ↓/j down • enter open • / search • t stats • c copy • q quit • ? more"
	if m.status != "" {
		helpText = statusStyle.Render(m.status) + " • " + helpText
	}

	if len(m.sessions) == 0 {
		return "No sessions logged yet. Run 'scjournal start' to log one.\n\n" + helpText
	}

	return m.list.View() + "\n" + helpText
}
