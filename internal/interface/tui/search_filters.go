package tui

import (
	"strings"
	"time"

	"github.com/olebedev/when"
	"github.com/olebedev/when/rules/common"
	"github.com/olebedev/when/rules/en"
)

// SearchFilters represents parsed filters from a search query
type SearchFilters struct {
	Query     string    // The actual search text
	Ship      string    // Filter by ship
	Location  string    // Filter by location
	AfterDate time.Time // Only sessions started after this date
}

// ParseSearchQuery extracts filters from a search query string
// Supports:
//   - ship:<name> - filter by ship
//   - location:<name> - filter by location
//   - after:yesterday, after:last-week, after:2025-05-01 - sessions started after
func ParseSearchQuery(query string) SearchFilters {
	filters := SearchFilters{}

	// Initialize date parser with English rules
	w := when.New(nil)
	w.Add(en.All...)
	w.Add(common.All...)

	tokens := strings.Fields(query)
	var queryParts []string

	for _, token := range tokens {
		lower := strings.ToLower(token)

		if strings.HasPrefix(lower, "ship:") {
			filters.Ship = token[len("ship:"):]
			continue
		}

		if strings.HasPrefix(lower, "location:") {
			filters.Location = token[len("location:"):]
			continue
		}

		if strings.HasPrefix(lower, "after:") {
			if parsed := parseDate(w, token[len("after:"):]); parsed != nil {
				filters.AfterDate = *parsed
			}
			continue
		}

		// Not a filter, add to query
		queryParts = append(queryParts, token)
	}

	filters.Query = strings.Join(queryParts, " ")
	return filters
}

// parseDate attempts to parse a date string using natural language parsing
func parseDate(w *when.Parser, dateStr string) *time.Time {
	// Dashes stand in for spaces inside a single token: last-week
	dateStr = strings.ReplaceAll(dateStr, "-", " ")

	// Try standard formats first so plain dates are not reinterpreted
	formats := []string{
		"2006 01 02",
		"2006/01/02",
	}
	for _, format := range formats {
		if t, err := time.ParseInLocation(format, dateStr, time.Local); err == nil {
			return &t
		}
	}

	result, err := w.Parse(dateStr, time.Now())
	if err == nil && result != nil {
		return &result.Time
	}

	return nil
}
