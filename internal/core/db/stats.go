package db

import (
	"database/sql"
	"time"
)

// Stats represents database statistics. Journal statistics proper (playtime,
// ship usage) come from models.Journal; these are store-level figures.
type Stats struct {
	TotalSessions       int
	OpenSessions        int
	TotalActivities     int
	TotalEarnings       float64
	TotalExpenses       float64
	OldestSession       time.Time
	NewestSession       time.Time
	MostVisitedLocation string
	MostVisitedCount    int
	ImportedFiles       int
}

// GetStats returns store-level statistics
func (db *DB) GetStats() (*Stats, error) {
	stats := &Stats{}

	err := db.QueryRow(`
		SELECT
			COUNT(*),
			COALESCE(SUM(CASE WHEN end_time IS NULL THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(earnings), 0),
			COALESCE(SUM(expenses), 0)
		FROM sessions
	`).Scan(&stats.TotalSessions, &stats.OpenSessions, &stats.TotalEarnings, &stats.TotalExpenses)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM activities").Scan(&stats.TotalActivities)
	if err != nil {
		return nil, err
	}

	err = db.QueryRow("SELECT COUNT(*) FROM import_log WHERE status = 'success'").Scan(&stats.ImportedFiles)
	if err != nil {
		return nil, err
	}

	// Date range (only if we have sessions)
	if stats.TotalSessions > 0 {
		var oldest, newest string
		err = db.QueryRow(`
			SELECT
				(SELECT start_time FROM sessions ORDER BY start_unix ASC, id ASC LIMIT 1),
				(SELECT start_time FROM sessions ORDER BY start_unix DESC, id DESC LIMIT 1)
		`).Scan(&oldest, &newest)
		if err != nil {
			return nil, err
		}
		if t, err := parseTime(oldest); err == nil {
			stats.OldestSession = t
		}
		if t, err := parseTime(newest); err == nil {
			stats.NewestSession = t
		}

		var location sql.NullString
		err = db.QueryRow(`
			SELECT location, COUNT(*) as count
			FROM sessions
			WHERE TRIM(location) != ''
			GROUP BY location
			ORDER BY count DESC, MIN(id) ASC
			LIMIT 1
		`).Scan(&location, &stats.MostVisitedCount)
		if err != nil && err != sql.ErrNoRows {
			return nil, err
		}
		if location.Valid {
			stats.MostVisitedLocation = location.String
		}
	}

	return stats, nil
}
