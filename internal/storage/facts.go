package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"cgraph/internal/lang"
)

// GetFacts returns the cached facts for a file if the fingerprint still
// matches. The second return value reports a cache hit.
func (db *DB) GetFacts(path, fingerprint string) (*lang.FileFacts, bool, error) {
	var storedFingerprint string
	var blob []byte
	err := db.conn.QueryRow(
		`SELECT fingerprint, facts FROM file_facts WHERE path = ?`, path,
	).Scan(&storedFingerprint, &blob)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cached facts: %w", err)
	}
	if storedFingerprint != fingerprint {
		return nil, false, nil
	}

	var facts lang.FileFacts
	if err := json.Unmarshal(blob, &facts); err != nil {
		// Corrupt entry: treat as a miss so it gets rewritten.
		db.logger.Warn("discarding corrupt cache entry", map[string]interface{}{
			"path":  path,
			"error": err.Error(),
		})
		return nil, false, nil
	}

	return &facts, true, nil
}

// PutFacts stores extracted facts for a file, replacing any previous entry.
func (db *DB) PutFacts(path, fingerprint string, facts *lang.FileFacts) error {
	blob, err := json.Marshal(facts)
	if err != nil {
		return fmt.Errorf("failed to encode facts: %w", err)
	}

	_, err = db.conn.Exec(
		`INSERT INTO file_facts (path, fingerprint, language, facts, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
		   fingerprint = excluded.fingerprint,
		   language    = excluded.language,
		   facts       = excluded.facts,
		   updated_at  = excluded.updated_at`,
		path, fingerprint, string(facts.Language), blob, time.Now().Unix(),
	)
	if err != nil {
		return fmt.Errorf("failed to write cached facts: %w", err)
	}
	return nil
}

// PruneExcept removes cache entries for files no longer present in the scan.
func (db *DB) PruneExcept(paths []string) error {
	keep := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		keep[p] = struct{}{}
	}

	rows, err := db.conn.Query(`SELECT path FROM file_facts`)
	if err != nil {
		return err
	}
	defer rows.Close()

	var stale []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return err
		}
		if _, ok := keep[p]; !ok {
			stale = append(stale, p)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	return db.WithTx(func(tx *sql.Tx) error {
		for _, p := range stale {
			if _, err := tx.Exec(`DELETE FROM file_facts WHERE path = ?`, p); err != nil {
				return err
			}
		}
		return nil
	})
}
