package db

import (
	"database/sql"
	"fmt"
)

// runMigrations applies database migrations for existing databases
func (db *DB) runMigrations() error {
	// Migration 1: notes were added after the first release
	if err := db.migration001AddNotes(); err != nil {
		return fmt.Errorf("migration 001: %w", err)
	}

	// Migration 2: start_unix backs ordering and date range stats
	if err := db.migration002AddStartUnix(); err != nil {
		return fmt.Errorf("migration 002: %w", err)
	}

	return nil
}

func (db *DB) tableExists(name string) (bool, error) {
	var tableName string
	err := db.conn.QueryRow(`
		SELECT name FROM sqlite_master
		WHERE type='table' AND name=?
	`, name).Scan(&tableName)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return err == nil, err
}

func (db *DB) hasColumn(table, column string) (bool, error) {
	var count int
	err := db.conn.QueryRow(`
		SELECT COUNT(*) FROM pragma_table_info(?)
		WHERE name=?
	`, table, column).Scan(&count)
	return count > 0, err
}

// migration001AddNotes adds the notes column to sessions
func (db *DB) migration001AddNotes() error {
	exists, err := db.tableExists("sessions")
	if err != nil || !exists {
		// Table doesn't exist yet, will be created by initSchema
		return err
	}

	hasNotes, err := db.hasColumn("sessions", "notes")
	if err != nil {
		return err
	}
	if hasNotes {
		return nil
	}

	if _, err := db.conn.Exec(`ALTER TABLE sessions ADD COLUMN notes TEXT NOT NULL DEFAULT ''`); err != nil {
		return fmt.Errorf("add notes column: %w", err)
	}
	return nil
}

// migration002AddStartUnix adds start_unix and fills it from start_time
func (db *DB) migration002AddStartUnix() error {
	exists, err := db.tableExists("sessions")
	if err != nil || !exists {
		return err
	}

	hasStartUnix, err := db.hasColumn("sessions", "start_unix")
	if err != nil {
		return err
	}
	if hasStartUnix {
		return nil
	}

	if _, err := db.conn.Exec(`ALTER TABLE sessions ADD COLUMN start_unix INTEGER NOT NULL DEFAULT 0`); err != nil {
		return fmt.Errorf("add start_unix column: %w", err)
	}

	rows, err := db.conn.Query(`SELECT id, start_time FROM sessions`)
	if err != nil {
		return err
	}
	type pending struct {
		id   int64
		unix int64
	}
	var updates []pending
	for rows.Next() {
		var id int64
		var start string
		if err := rows.Scan(&id, &start); err != nil {
			_ = rows.Close()
			return err
		}
		t, err := parseTime(start)
		if err != nil {
			continue
		}
		updates = append(updates, pending{id: id, unix: t.UnixNano()})
	}
	_ = rows.Close()

	for _, u := range updates {
		if _, err := db.conn.Exec(`UPDATE sessions SET start_unix = ? WHERE id = ?`, u.unix, u.id); err != nil {
			return fmt.Errorf("populate start_unix: %w", err)
		}
	}
	return nil
}

// backfillFTS rebuilds the activity index when it was created after
// activities were already stored.
func (db *DB) backfillFTS() error {
	var activities, indexed int
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM activities`).Scan(&activities); err != nil {
		return err
	}
	if activities == 0 {
		return nil
	}
	if err := db.conn.QueryRow(`SELECT COUNT(*) FROM activities_fts_docsize`).Scan(&indexed); err != nil {
		return err
	}
	if indexed >= activities {
		return nil
	}

	_, err := db.conn.Exec(`INSERT INTO activities_fts(activities_fts) VALUES ('rebuild')`)
	return err
}
