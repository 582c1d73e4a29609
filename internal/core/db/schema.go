package db

func (db *DB) initSchema() error {
	schema := `
	-- Sessions table. id is the insertion order of the journal.
	CREATE TABLE IF NOT EXISTS sessions (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id TEXT UNIQUE NOT NULL,
		start_time TEXT NOT NULL,
		start_unix INTEGER NOT NULL DEFAULT 0,
		end_time TEXT,
		location TEXT NOT NULL DEFAULT '',
		ship TEXT NOT NULL DEFAULT '',
		earnings REAL NOT NULL DEFAULT 0,
		expenses REAL NOT NULL DEFAULT 0,
		notes TEXT NOT NULL DEFAULT '',
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_session_id ON sessions(session_id);
	CREATE INDEX IF NOT EXISTS idx_sessions_ship ON sessions(ship);
	CREATE INDEX IF NOT EXISTS idx_sessions_start_unix ON sessions(start_unix);

	-- Activity log, one row per entry in session order
	CREATE TABLE IF NOT EXISTS activities (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		session_id INTEGER NOT NULL,
		sequence INTEGER NOT NULL,
		text TEXT NOT NULL,
		FOREIGN KEY (session_id) REFERENCES sessions(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_activities_session_id ON activities(session_id, sequence);

	-- Import log table
	CREATE TABLE IF NOT EXISTS import_log (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		file_path TEXT NOT NULL,
		file_hash TEXT NOT NULL,
		imported_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		sessions_imported INTEGER,
		activities_imported INTEGER,
		status TEXT CHECK(status IN ('success', 'partial', 'failed')),
		error_message TEXT
	);

	CREATE INDEX IF NOT EXISTS idx_import_log_file_hash ON import_log(file_hash);

	-- Natural language search over activities with porter stemming
	CREATE VIRTUAL TABLE IF NOT EXISTS activities_fts USING fts5(
		text,
		content=activities,
		content_rowid=id,
		tokenize='porter unicode61'
	);

	-- Triggers to keep FTS in sync
	CREATE TRIGGER IF NOT EXISTS activities_ai AFTER INSERT ON activities BEGIN
		INSERT INTO activities_fts(rowid, text) VALUES (new.id, new.text);
	END;

	CREATE TRIGGER IF NOT EXISTS activities_ad AFTER DELETE ON activities BEGIN
		INSERT INTO activities_fts(activities_fts, rowid, text) VALUES ('delete', old.id, old.text);
	END;

	CREATE TRIGGER IF NOT EXISTS activities_au AFTER UPDATE ON activities BEGIN
		INSERT INTO activities_fts(activities_fts, rowid, text) VALUES ('delete', old.id, old.text);
		INSERT INTO activities_fts(rowid, text) VALUES (new.id, new.text);
	END;
	`

	_, err := db.conn.Exec(schema)
	return err
}
