package history

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
	"github.com/hamed0406/dbkeepalive/internal/repo"
)

// Window is how long a run stays in the persisted history.
const Window = 24 * time.Hour

// Log maintains the rolling run history on top of a HistoryStore. The
// read-modify-write in Append is not transactional: two overlapping runs
// racing on the record lose one append (last writer wins). Accepted:
// runs are hours apart and a missing entry costs little.
type Log struct {
	store  repo.HistoryStore
	logger *zap.Logger
	now    func() time.Time
}

func New(store repo.HistoryStore, logger *zap.Logger) *Log {
	return &Log{store: store, logger: logger, now: time.Now}
}

// Append records one run: load the current log (absent means empty),
// push the summary, drop runs older than the window, write back.
// Best-effort; load or save failures are logged and swallowed so a
// broken history substrate never stops liveness pinging.
func (l *Log) Append(ctx context.Context, summary domain.RunSummary) {
	cur, err := l.store.Load(ctx)
	if err != nil {
		l.logger.Warn("history_load_failed", zap.Error(err))
		cur = nil
	}
	if cur == nil {
		cur = &domain.HistoryLog{}
	}

	now := l.now().UTC()
	cur.Runs = append(cur.Runs, summary)
	cur.Runs = pruneOlderThan(cur.Runs, now.Add(-Window))
	cur.LastUpdated = now

	if err := l.store.Save(ctx, cur); err != nil {
		l.logger.Warn("history_save_failed", zap.Error(err))
	}
}

// Read returns the stored log verbatim. A read failure and a
// never-written record are indistinguishable: both report no data.
func (l *Log) Read(ctx context.Context) (*domain.HistoryLog, bool) {
	cur, err := l.store.Load(ctx)
	if err != nil {
		l.logger.Warn("history_load_failed", zap.Error(err))
		return nil, false
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

func pruneOlderThan(runs []domain.RunSummary, cutoff time.Time) []domain.RunSummary {
	kept := runs[:0]
	for _, r := range runs {
		if !r.Timestamp.Before(cutoff) {
			kept = append(kept, r)
		}
	}
	return kept
}
