package store

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq"

	"github.com/katakuxiko/askai/internal/model"
)

// PgStore is the Postgres-backed ask history.
type PgStore struct {
	db *sql.DB
}

func NewPgStore(conn string) (*PgStore, error) {
	db, err := sql.Open("postgres", conn)
	if err != nil {
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	if err := ensureSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return &PgStore{db: db}, nil
}

func (s *PgStore) Record(e model.HistoryEntry) error {
	_, err := s.db.Exec(`
		INSERT INTO ask_history (question, subject, outcome, status, answer)
		VALUES ($1, $2, $3, $4, $5)
	`, e.Question, e.Subject, string(e.Outcome), e.Status, e.Answer)
	return err
}

// Recent returns up to limit entries, newest first.
func (s *PgStore) Recent(limit int) ([]model.HistoryEntry, error) {
	rows, err := s.db.Query(`
		SELECT id, question, subject, outcome, status, answer, created_at
		FROM ask_history
		ORDER BY created_at DESC, id DESC
		LIMIT $1
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	res := []model.HistoryEntry{}
	for rows.Next() {
		var e model.HistoryEntry
		var outcome string
		if err := rows.Scan(&e.ID, &e.Question, &e.Subject, &outcome, &e.Status, &e.Answer, &e.CreatedAt); err != nil {
			return nil, err
		}
		e.Outcome = model.OutcomeKind(outcome)
		res = append(res, e)
	}
	return res, rows.Err()
}

func (s *PgStore) Close() error {
	return s.db.Close()
}
