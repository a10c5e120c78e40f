package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/hamed0406/dbkeepalive/internal/domain"
	"github.com/hamed0406/dbkeepalive/internal/repo"
)

var _ repo.HistoryStore = (*Store)(nil)

// Store persists the history record in a single-row key/value table in a
// local SQLite file. Useful for single-host deployments with no postgres
// around.
type Store struct {
	db *sql.DB
}

func New(ctx context.Context, path string) (*Store, error) {
	db, err := sql.Open("sqlite", fmt.Sprintf("%s?_pragma=journal_mode(WAL)", path))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	s := &Store{db: db}
	if err := s.migrate(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS keepalive_state (
	key        TEXT PRIMARY KEY,
	payload    TEXT NOT NULL,
	updated_at TEXT NOT NULL
)`)
	return err
}

func (s *Store) Load(ctx context.Context) (*domain.HistoryLog, error) {
	var payload string
	err := s.db.QueryRowContext(ctx,
		`SELECT payload FROM keepalive_state WHERE key = ?`,
		repo.HistoryKey,
	).Scan(&payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	var log domain.HistoryLog
	if err := json.Unmarshal([]byte(payload), &log); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return &log, nil
}

func (s *Store) Save(ctx context.Context, log *domain.HistoryLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = s.db.ExecContext(ctx, `
INSERT INTO keepalive_state (key, payload, updated_at)
VALUES (?, ?, datetime('now'))
ON CONFLICT (key) DO UPDATE SET payload = excluded.payload, updated_at = datetime('now')`,
		repo.HistoryKey, string(payload),
	)
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	return nil
}
