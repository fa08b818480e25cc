package store

import (
	"database/sql"
)

// ensureSchema creates the journal table and its created_at index.
func ensureSchema(db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS ask_history (
			id BIGSERIAL PRIMARY KEY,
			question TEXT NOT NULL,
			subject TEXT NOT NULL DEFAULT '',
			outcome TEXT NOT NULL,
			status INTEGER NOT NULL,
			answer TEXT NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)`,
		`CREATE INDEX IF NOT EXISTS ask_history_created_at_idx ON ask_history (created_at DESC)`,
	}

	for _, s := range stmts {
		if _, err := db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}
