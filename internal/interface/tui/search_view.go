package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg.String() {
	case "esc":
		m.mode = listView
		m.searchInput.SetValue("")
		m.searchInput.Blur()
		m.searchResults = nil
		m.searchSelectedIdx = 0
		m.searchViewOffset = 0
		return m, nil

	case "enter":
		// Open selected session
		if len(m.searchResults) > 0 && m.searchSelectedIdx < len(m.searchResults) {
			sessionID := m.searchResults[m.searchSelectedIdx].SessionID
			m.searchInput.Blur()
			return m, loadSessionDetail(m.db, sessionID)
		}
		return m, nil

	// Navigation: Use Ctrl+j or arrow keys (allow j/k to be typed in search)
	case "ctrl+j", "down":
		if len(m.searchResults) > 0 {
			m.searchSelectedIdx++
			if m.searchSelectedIdx >= len(m.searchResults) {
				m.searchSelectedIdx = len(m.searchResults) - 1
			}
			return adjustSearchViewport(m), nil
		}
		return m, nil

	case "up":
		if len(m.searchResults) > 0 {
			m.searchSelectedIdx--
			if m.searchSelectedIdx < 0 {
				m.searchSelectedIdx = 0
			}
			return adjustSearchViewport(m), nil
		}
		return m, nil
	}

	// Update text input (all other keys including j/k/q go here)
	m.searchInput, cmd = m.searchInput.Update(msg)

	// Perform live search on every keystroke
	query := m.searchInput.Value()
	m.searchSelectedIdx = 0
	m.searchViewOffset = 0
	return m, tea.Batch(cmd, performSearch(m.db, query))
}

func (m Model) viewSearch() string {
	var b strings.Builder

	// Header with search input
	b.WriteString(searchHeaderStyle.Render("Search: "))
	b.WriteString(m.searchInput.View())
	b.WriteString("\n")
	b.WriteString(strings.Repeat("─", 80))
	b.WriteString("\n\n")

	switch {
	case m.searchResults == nil:
		b.WriteString(searchMetaStyle.Render("Type to search activities (minimum 2 characters)"))
	case len(m.searchResults) == 0:
		b.WriteString(searchMetaStyle.Render("No results found"))
	default:
		b.WriteString(searchMetaStyle.Render(fmt.Sprintf("Found %d activities:", len(m.searchResults))))
		b.WriteString("\n\n")

		startIdx, endIdx := visibleSearchWindow(m)
		query := ParseSearchQuery(m.searchInput.Value()).Query

		for i := startIdx; i < endIdx; i++ {
			result := m.searchResults[i]

			header := fmt.Sprintf("%s at %s", result.Ship, result.Location)
			prefix := "  "
			if i == m.searchSelectedIdx {
				prefix = "► "
				header = searchSelectedStyle.Render(header)
			}

			b.WriteString(fmt.Sprintf("%s%s %s\n", prefix, header, searchMetaStyle.Render(result.StartTime)))
			b.WriteString(fmt.Sprintf("    %s\n\n", highlightQuery(firstLine(result.ActivityText, 100), query)))
		}

		// Show scroll indicators
		if startIdx > 0 {
			b.WriteString(searchMetaStyle.Render(fmt.Sprintf("... %d results above\n", startIdx)))
		}
		if endIdx < len(m.searchResults) {
			b.WriteString(searchMetaStyle.Render(fmt.Sprintf("... %d results below\n", len(m.searchResults)-endIdx)))
		}
	}

	b.WriteString("\n\n")
	if len(m.searchResults) > 0 {
		b.WriteString("Ctrl+j or ↑↓: navigate | Enter: open | esc: back")
	} else {
		b.WriteString("Type to search (min 2 chars) | esc: back")
	}
	b.WriteString("\n")
	b.WriteString(searchMetaStyle.Render("Filters: ship:cutlass | location:area18 | after:yesterday | after:2025-05-01"))

	return b.String()
}

func highlightQuery(text, query string) string {
	query = strings.Trim(query, `"*`)
	if query == "" {
		return text
	}

	// Simple case-insensitive highlighting of the first match
	lower := strings.ToLower(text)
	lowerQuery := strings.ToLower(query)

	idx := strings.Index(lower, lowerQuery)
	if idx == -1 {
		return text
	}

	before := text[:idx]
	match := text[idx : idx+len(query)]
	after := text[idx+len(query):]

	return before + searchMatchStyle.Render(match) + after
}

// firstLine returns the first line of s, cut to maxLen runes
func firstLine(s string, maxLen int) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	runes := []rune(s)
	if len(runes) > maxLen {
		return string(runes[:maxLen-3]) + "..."
	}
	return s
}
