package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?":
		m.mode = listView
		return m, nil
	}

	return m, nil
}

func (m Model) viewHelp() string {
	help := `
Star Citizen Session Journal - Help
═══════════════════════════════════

SESSION LIST VIEW
─────────────────
  ↑/↓, j/k     Navigate sessions (newest at the bottom)
  Enter        View session details
  /            Search activity logs
  t            Journal statistics
  c            Copy session summary to clipboard
  r            Reload from the journal
  ?            Show this help
  q            Quit

SESSION DETAIL VIEW
───────────────────
  j/k          Scroll line by line
  d/u          Scroll half page
  g/G          Jump to top/bottom
  c            Copy session summary to clipboard
  esc          Back to session list

SEARCH VIEW
───────────
  Type         Enter search query (live)
  Enter        Open selected session
  ↑/↓, Ctrl+j  Navigate results
  esc          Back to session list

  Filters: ship:<name>  location:<name>  after:<date or "last-week">

Press esc or ? to return to session list
`

	return helpStyle.Render(help)
}
