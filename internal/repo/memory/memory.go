package memory

import (
	"context"
	"sync"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

// Store keeps the history record in process memory. Default backend when
// no persistence binding is configured, and the fake used in tests.
type Store struct {
	mu  sync.RWMutex
	log *domain.HistoryLog
}

func New() *Store {
	return &Store{}
}

func (m *Store) Load(ctx context.Context) (*domain.HistoryLog, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.log == nil {
		return nil, nil
	}
	// Copy so callers can't mutate the stored record in place.
	cp := domain.HistoryLog{
		Runs:        append([]domain.RunSummary(nil), m.log.Runs...),
		LastUpdated: m.log.LastUpdated,
	}
	return &cp, nil
}

func (m *Store) Save(ctx context.Context, log *domain.HistoryLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := domain.HistoryLog{
		Runs:        append([]domain.RunSummary(nil), log.Runs...),
		LastUpdated: log.LastUpdated,
	}
	m.log = &cp
	return nil
}
