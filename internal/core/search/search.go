package search

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/neilberkman/scjournal/internal/core/db"
)

// SearchResult represents a single matching activity
type SearchResult struct {
	SessionID    string `json:"session_id"`
	Ship         string `json:"ship"`
	Location     string `json:"location"`
	StartTime    string `json:"start_time"`
	ActivityText string `json:"activity"`
}

// Options narrows a search. Zero values mean no filter.
type Options struct {
	Ship     string
	Location string
	Since    time.Time
	Limit    int
}

// DefaultLimit caps results when no limit is given
const DefaultLimit = 100

// Newest session first, then activity order within the session
const defaultOrderBy = "s.start_unix DESC, a.sequence ASC"

// Activities performs a full-text search over activity logs
func Activities(database *db.DB, query string, limit int) ([]SearchResult, error) {
	return WithOptions(database, query, Options{Limit: limit})
}

// WithOptions performs a full-text search with ship, location and date filters
func WithOptions(database *db.DB, query string, opts Options) ([]SearchResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("search query cannot be empty")
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	var filters []string
	var filterArgs []interface{}
	if opts.Ship != "" {
		filters = append(filters, "s.ship LIKE '%' || ? || '%'")
		filterArgs = append(filterArgs, opts.Ship)
	}
	if opts.Location != "" {
		filters = append(filters, "s.location LIKE '%' || ? || '%'")
		filterArgs = append(filterArgs, opts.Location)
	}
	if !opts.Since.IsZero() {
		filters = append(filters, "s.start_unix >= ?")
		filterArgs = append(filterArgs, opts.Since.UnixNano())
	}
	filterSQL := ""
	if len(filters) > 0 {
		filterSQL = " AND " + strings.Join(filters, " AND ")
	}

	// FTS5 rejects these characters in bare queries, so fall back to a
	// substring match
	hasSpecialChars := strings.ContainsAny(query, "-_@#$%&:.,'()")

	var rows *sql.Rows
	var err error

	if hasSpecialChars {
		args := append([]interface{}{query}, filterArgs...)
		args = append(args, limit)
		rows, err = database.Query(fmt.Sprintf(`
			SELECT
				s.session_id,
				s.ship,
				s.location,
				s.start_time,
				a.text
			FROM activities a
			JOIN sessions s ON s.id = a.session_id
			WHERE a.text LIKE '%%' || ? || '%%'%s
			ORDER BY %s
			LIMIT ?
		`, filterSQL, defaultOrderBy), args...)
	} else {
		args := append([]interface{}{query}, filterArgs...)
		args = append(args, limit)
		rows, err = database.Query(fmt.Sprintf(`
			SELECT
				s.session_id,
				s.ship,
				s.location,
				s.start_time,
				snippet(activities_fts, -1, '', '', '...', 64) as snippet
			FROM activities_fts
			JOIN activities a ON activities_fts.rowid = a.id
			JOIN sessions s ON s.id = a.session_id
			WHERE activities_fts MATCH ?%s
			ORDER BY %s
			LIMIT ?
		`, filterSQL, defaultOrderBy), args...)
	}
	if err != nil {
		return nil, fmt.Errorf("search query failed: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		if err := rows.Scan(
			&r.SessionID,
			&r.Ship,
			&r.Location,
			&r.StartTime,
			&r.ActivityText,
		); err != nil {
			return nil, fmt.Errorf("failed to scan result: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating results: %w", err)
	}

	return results, nil
}
