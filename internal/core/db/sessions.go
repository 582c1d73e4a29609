package db

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/neilberkman/scjournal/internal/core/id"
	"github.com/neilberkman/scjournal/internal/core/models"
)

var (
	// ErrNotFound is returned when no session matches an ID or prefix.
	ErrNotFound = errors.New("session not found")
	// ErrAmbiguousID is returned when a prefix matches more than one session.
	ErrAmbiguousID = errors.New("session ID prefix is ambiguous")
)

// StoredSession is a journal session together with its store ID.
type StoredSession struct {
	ID      string
	Session *models.Session
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	Exec(query string, args ...interface{}) (sql.Result, error)
}

const sessionColumns = `s.id, s.session_id, s.start_time, s.end_time, s.location, s.ship, s.earnings, s.expenses, s.notes`

func formatTime(t time.Time) string {
	return t.Format(time.RFC3339Nano)
}

func parseTime(v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, v)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid stored timestamp %q: %w", v, err)
	}
	return t, nil
}

func endValue(s *models.Session) interface{} {
	if s.EndTime == nil {
		return nil
	}
	return formatTime(*s.EndTime)
}

// InsertSession stores a new session with its activities and returns its ID.
func (db *DB) InsertSession(s *models.Session) (string, error) {
	tx, err := db.conn.Begin()
	if err != nil {
		return "", fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	sessionID, err := InsertSessionTx(tx, s)
	if err != nil {
		return "", err
	}

	if err := tx.Commit(); err != nil {
		return "", fmt.Errorf("failed to commit: %w", err)
	}
	return sessionID, nil
}

// InsertSessionTx stores a session inside an existing transaction.
func InsertSessionTx(tx *sql.Tx, s *models.Session) (string, error) {
	sessionID := id.New()

	result, err := tx.Exec(`
		INSERT INTO sessions (
			session_id, start_time, start_unix, end_time,
			location, ship, earnings, expenses, notes
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		sessionID,
		formatTime(s.StartTime),
		s.StartTime.UnixNano(),
		endValue(s),
		s.Location,
		s.Ship,
		s.Earnings,
		s.Expenses,
		s.Notes,
	)
	if err != nil {
		return "", fmt.Errorf("failed to insert session: %w", err)
	}

	rowID, err := result.LastInsertId()
	if err != nil {
		return "", fmt.Errorf("failed to get session ID: %w", err)
	}

	if err := insertActivities(tx, rowID, s.Activities); err != nil {
		return "", err
	}
	return sessionID, nil
}

func insertActivities(ex execer, rowID int64, activities []string) error {
	for i, text := range activities {
		_, err := ex.Exec(`
			INSERT INTO activities (session_id, sequence, text) VALUES (?, ?, ?)
		`, rowID, i+1, text)
		if err != nil {
			return fmt.Errorf("failed to insert activity %d: %w", i+1, err)
		}
	}
	return nil
}

// UpdateSession rewrites a stored session's fields and activity log.
func (db *DB) UpdateSession(sessionID string, s *models.Session) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var rowID int64
	err = tx.QueryRow(`SELECT id FROM sessions WHERE session_id = ?`, sessionID).Scan(&rowID)
	if err == sql.ErrNoRows {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	if err != nil {
		return err
	}

	_, err = tx.Exec(`
		UPDATE sessions SET
			start_time = ?, start_unix = ?, end_time = ?,
			location = ?, ship = ?, earnings = ?, expenses = ?, notes = ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`,
		formatTime(s.StartTime),
		s.StartTime.UnixNano(),
		endValue(s),
		s.Location,
		s.Ship,
		s.Earnings,
		s.Expenses,
		s.Notes,
		rowID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}

	if _, err := tx.Exec(`DELETE FROM activities WHERE session_id = ?`, rowID); err != nil {
		return fmt.Errorf("failed to clear activities: %w", err)
	}
	if err := insertActivities(tx, rowID, s.Activities); err != nil {
		return err
	}

	return tx.Commit()
}

// DeleteSession removes a session and its activities.
func (db *DB) DeleteSession(sessionID string) error {
	result, err := db.conn.Exec(`DELETE FROM sessions WHERE session_id = ?`, sessionID)
	if err != nil {
		return err
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, sessionID)
	}
	return nil
}

// GetSession returns the session whose ID is idOrPrefix, or the only one
// whose ID starts with it. IDs are matched case-insensitively.
func (db *DB) GetSession(idOrPrefix string) (*StoredSession, error) {
	key := strings.ToUpper(strings.TrimSpace(idOrPrefix))
	if key == "" {
		return nil, ErrNotFound
	}

	sessions, err := db.querySessions(`
		SELECT `+sessionColumns+`
		FROM sessions s
		WHERE substr(s.session_id, 1, length(?1)) = ?1
		ORDER BY (s.session_id = ?1) DESC, s.id
		LIMIT 2
	`, key)
	if err != nil {
		return nil, err
	}

	switch {
	case len(sessions) == 0:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, idOrPrefix)
	case sessions[0].ID == key, len(sessions) == 1:
		return &sessions[0], nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, idOrPrefix)
	}
}

// LatestOpenSession returns the most recently added session that has not
// been ended.
func (db *DB) LatestOpenSession() (*StoredSession, error) {
	sessions, err := db.querySessions(`
		SELECT ` + sessionColumns + `
		FROM sessions s
		WHERE s.end_time IS NULL
		ORDER BY s.id DESC
		LIMIT 1
	`)
	if err != nil {
		return nil, err
	}
	if len(sessions) == 0 {
		return nil, ErrNotFound
	}
	return &sessions[0], nil
}

// ListSessions returns sessions in the order they were added. A positive
// limit keeps only the most recent limit sessions.
func (db *DB) ListSessions(limit int) ([]StoredSession, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	return db.querySessions(`
		SELECT * FROM (
			SELECT `+sessionColumns+`
			FROM sessions s
			ORDER BY s.id DESC
			LIMIT ?
		) ORDER BY id ASC
	`, limit)
}

// LoadJournal builds a journal of every stored session in insertion order.
func (db *DB) LoadJournal() (*models.Journal, error) {
	sessions, err := db.ListSessions(0)
	if err != nil {
		return nil, err
	}

	journal := models.NewJournal()
	for _, s := range sessions {
		journal.Add(s.Session)
	}
	return journal, nil
}

// querySessions runs a session query and attaches each session's activities.
// The query must select sessionColumns.
func (db *DB) querySessions(query string, args ...interface{}) ([]StoredSession, error) {
	rows, err := db.conn.Query(query, args...)
	if err != nil {
		return nil, err
	}

	var sessions []StoredSession
	var rowIDs []int64
	for rows.Next() {
		var rowID int64
		var sessionID, start, location, ship, notes string
		var end sql.NullString
		var earnings, expenses float64
		if err := rows.Scan(&rowID, &sessionID, &start, &end, &location, &ship, &earnings, &expenses, &notes); err != nil {
			_ = rows.Close()
			return nil, err
		}

		startTime, err := parseTime(start)
		if err != nil {
			_ = rows.Close()
			return nil, err
		}
		s := models.NewSession(startTime, location, ship)
		if end.Valid {
			endTime, err := parseTime(end.String)
			if err != nil {
				_ = rows.Close()
				return nil, err
			}
			s.EndTime = &endTime
		}
		s.Earnings = earnings
		s.Expenses = expenses
		s.Notes = notes

		sessions = append(sessions, StoredSession{ID: sessionID, Session: s})
		rowIDs = append(rowIDs, rowID)
	}
	if err := rows.Err(); err != nil {
		_ = rows.Close()
		return nil, err
	}
	_ = rows.Close()

	for i, rowID := range rowIDs {
		activities, err := db.activities(rowID)
		if err != nil {
			return nil, err
		}
		sessions[i].Session.Activities = activities
	}
	return sessions, nil
}

func (db *DB) activities(rowID int64) ([]string, error) {
	rows, err := db.conn.Query(`
		SELECT text FROM activities
		WHERE session_id = ?
		ORDER BY sequence ASC
	`, rowID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	activities := []string{}
	for rows.Next() {
		var text string
		if err := rows.Scan(&text); err != nil {
			return nil, err
		}
		activities = append(activities, text)
	}
	return activities, rows.Err()
}
