package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
	"github.com/hamed0406/dbkeepalive/internal/repo"
)

var _ repo.HistoryStore = (*Store)(nil)

// Store persists the history record as a single JSONB row. Writes are a
// plain upsert; last writer wins on the whole record, which matches the
// store contract.
type Store struct {
	pool *pgxpool.Pool
	log  *zap.Logger
}

func New(ctx context.Context, dsn string, log *zap.Logger) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	ctxPing, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(ctxPing); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping: %w", err)
	}
	s := &Store{pool: pool, log: log}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}
	return s, nil
}

func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
CREATE TABLE IF NOT EXISTS keepalive_state (
	key        TEXT PRIMARY KEY,
	payload    JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`)
	return err
}

func (s *Store) Load(ctx context.Context) (*domain.HistoryLog, error) {
	var payload []byte
	err := s.pool.QueryRow(ctx,
		`SELECT payload FROM keepalive_state WHERE key = $1`,
		repo.HistoryKey,
	).Scan(&payload)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select history: %w", err)
	}

	var log domain.HistoryLog
	if err := json.Unmarshal(payload, &log); err != nil {
		return nil, fmt.Errorf("decode history: %w", err)
	}
	return &log, nil
}

func (s *Store) Save(ctx context.Context, log *domain.HistoryLog) error {
	payload, err := json.Marshal(log)
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}
	_, err = s.pool.Exec(ctx, `
INSERT INTO keepalive_state (key, payload, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (key) DO UPDATE SET payload = EXCLUDED.payload, updated_at = now()`,
		repo.HistoryKey, payload,
	)
	if err != nil {
		return fmt.Errorf("upsert history: %w", err)
	}
	return nil
}
