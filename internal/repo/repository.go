package repo

import (
	"context"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

// HistoryKey identifies the single process-wide history record in
// whatever store backs it.
const HistoryKey = "ping-history"

// HistoryStore is the persistence port for the history record; swap in
// any key/value-ish adapter. Load returns (nil, nil) when the record has
// never been written. Implementations give no transactional
// read-modify-write guarantee; callers own that trade-off.
type HistoryStore interface {
	Load(ctx context.Context) (*domain.HistoryLog, error)
	Save(ctx context.Context, log *domain.HistoryLog) error
}
