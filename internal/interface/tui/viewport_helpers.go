package tui

const (
	linesPerResult = 3 // Header, activity line, blank line
	reservedLines  = 8 // Search header and footer
)

func maxVisibleResults(height int) int {
	n := (height - reservedLines) / linesPerResult
	if n < 2 {
		n = 2
	}
	return n
}

// adjustSearchViewport keeps the selected search result inside the visible window
func adjustSearchViewport(m Model) Model {
	visible := maxVisibleResults(m.height)

	// Scroll down if selected item is below visible window
	if m.searchSelectedIdx >= m.searchViewOffset+visible {
		m.searchViewOffset = m.searchSelectedIdx - visible + 1
	}

	// Scroll up if selected item is above visible window
	if m.searchSelectedIdx < m.searchViewOffset {
		m.searchViewOffset = m.searchSelectedIdx
	}

	return m
}

// visibleSearchWindow returns the [start, end) range of results to render
func visibleSearchWindow(m Model) (int, int) {
	start := m.searchViewOffset
	end := start + maxVisibleResults(m.height)
	if end > len(m.searchResults) {
		end = len(m.searchResults)
	}
	return start, end
}
