package storage

// schemaSQL creates the fact cache tables. CREATE IF NOT EXISTS keeps it
// idempotent across runs.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS file_facts (
    path        TEXT PRIMARY KEY,
    fingerprint TEXT NOT NULL,
    language    TEXT NOT NULL,
    facts       BLOB NOT NULL,
    updated_at  INTEGER NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_file_facts_fingerprint ON file_facts(fingerprint);

CREATE TABLE IF NOT EXISTS cache_meta (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);
`

// schemaVersion bumps when the facts encoding changes incompatibly. A version
// mismatch invalidates the whole cache.
const schemaVersion = "2"

func (db *DB) initializeSchema() error {
	if _, err := db.conn.Exec(schemaSQL); err != nil {
		return err
	}

	var current string
	err := db.conn.QueryRow(`SELECT value FROM cache_meta WHERE key = 'schema_version'`).Scan(&current)
	if err == nil && current == schemaVersion {
		return nil
	}

	// Stale or missing version: drop cached facts and stamp the new version.
	if _, err := db.conn.Exec(`DELETE FROM file_facts`); err != nil {
		return err
	}
	_, err = db.conn.Exec(
		`INSERT INTO cache_meta (key, value) VALUES ('schema_version', ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value`,
		schemaVersion,
	)
	return err
}
