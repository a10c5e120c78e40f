package runner

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/hamed0406/dbkeepalive/internal/domain"
	"github.com/hamed0406/dbkeepalive/internal/history"
	"github.com/hamed0406/dbkeepalive/internal/probe"
)

// Runner orchestrates one batch of probes across all discovered targets
// and records the outcome. Targets are re-discovered at every run so
// configuration changes take effect without a restart.
type Runner struct {
	Logger   *zap.Logger
	Prober   probe.Prober
	History  *history.Log
	Discover func() []domain.Target
	Interval time.Duration
}

func New(
	logger *zap.Logger,
	prober probe.Prober,
	hist *history.Log,
	discover func() []domain.Target,
	interval time.Duration,
) *Runner {
	if interval < 0 {
		interval = 0
	}
	return &Runner{
		Logger:   logger,
		Prober:   prober,
		History:  hist,
		Discover: discover,
		Interval: interval,
	}
}

// RunOnce executes one full run and persists it. The summary is always
// returned to the caller, whatever happened to persistence.
func (r *Runner) RunOnce(ctx context.Context, trigger domain.Trigger) domain.RunSummary {
	summary := r.execute(ctx, r.Discover(), trigger)

	r.History.Append(ctx, summary)

	r.Logger.Info("run_complete",
		zap.String("trigger", string(trigger)),
		zap.Bool("success", summary.Success),
		zap.Int("total", summary.Counts.Total),
		zap.Int("succeeded", summary.Counts.Succeeded),
		zap.Int("failed", summary.Counts.Failed),
	)
	return summary
}

func (r *Runner) execute(ctx context.Context, targets []domain.Target, trigger domain.Trigger) domain.RunSummary {
	started := time.Now().UTC()

	if len(targets) == 0 {
		// A zero-target run is an operational fact worth recording, not an error.
		return domain.RunSummary{
			Timestamp: started,
			Trigger:   trigger,
			Success:   false,
			Message:   "no targets configured: set URL_<n>/KEY_<n> pairs",
			Results:   []domain.ProbeResult{},
		}
	}

	// All probes start at once and each owns its slot in the results
	// slice, so the join needs no locks. A failed probe is data, never an
	// abort; a slow one just delays the join.
	results := make([]domain.ProbeResult, len(targets))
	var wg sync.WaitGroup
	for i, tgt := range targets {
		wg.Add(1)
		go func(i int, t domain.Target) {
			defer wg.Done()
			results[i] = r.Prober.Check(ctx, t)
		}(i, tgt)
	}
	wg.Wait()

	counts := domain.Counts{Total: len(results)}
	for _, res := range results {
		if res.Success {
			counts.Succeeded++
		} else {
			counts.Failed++
		}
	}

	return domain.RunSummary{
		Timestamp: started,
		Trigger:   trigger,
		Success:   counts.Failed == 0,
		Message: fmt.Sprintf("Pinged %d project(s): %d succeeded, %d failed",
			counts.Total, counts.Succeeded, counts.Failed),
		Results: results,
		Counts:  counts,
	}
}

// Run starts the scheduled loop: an immediate pass, then one per tick.
// Interval 0 means an external cron owns scheduling and the loop is
// disabled. Stops when ctx is cancelled.
func (r *Runner) Run(ctx context.Context) {
	if r.Interval == 0 {
		r.Logger.Info("scheduler_disabled")
		return
	}
	t := time.NewTicker(r.Interval)
	defer t.Stop()

	r.RunOnce(ctx, domain.TriggerScheduled)

	for {
		select {
		case <-ctx.Done():
			r.Logger.Info("scheduler_stopped")
			return
		case <-t.C:
			r.RunOnce(ctx, domain.TriggerScheduled)
		}
	}
}
