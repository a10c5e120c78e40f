package httpapi

import (
	"net/http"
	"time"

	"github.com/hamed0406/dbkeepalive/internal/domain"
)

const (
	statusNoData   = "no_data"
	statusHealthy  = "healthy"
	statusDegraded = "degraded"
)

type historyMeta struct {
	Available bool       `json:"available"`
	RunCount  int        `json:"run_count"`
	OldestRun *time.Time `json:"oldest_run,omitempty"`
}

type statusBody struct {
	Status    string               `json:"status"`
	Timestamp *time.Time           `json:"timestamp,omitempty"`
	Trigger   domain.Trigger       `json:"trigger,omitempty"`
	Results   []domain.ProbeResult `json:"results,omitempty"`
	Counts    *domain.Counts       `json:"counts,omitempty"`
	History   historyMeta          `json:"history"`
}

// renderStatus maps the history snapshot onto a health response. Health
// is binary on the most recent run only; per-target trends are the
// reader's job. Absent history is not an error; the pinger may simply
// never have run.
func renderStatus(log *domain.HistoryLog) (int, statusBody) {
	if log == nil || len(log.Runs) == 0 {
		return http.StatusOK, statusBody{Status: statusNoData}
	}

	last := log.Runs[len(log.Runs)-1]
	oldest := log.Runs[0].Timestamp

	body := statusBody{
		Status:    statusHealthy,
		Timestamp: &last.Timestamp,
		Trigger:   last.Trigger,
		Results:   last.Results,
		Counts:    &last.Counts,
		History: historyMeta{
			Available: true,
			RunCount:  len(log.Runs),
			OldestRun: &oldest,
		},
	}

	if last.Success {
		return http.StatusOK, body
	}
	body.Status = statusDegraded
	return http.StatusServiceUnavailable, body
}
