package domain

import "time"

// Trigger is what caused a run.
type Trigger string

const (
	TriggerScheduled Trigger = "scheduled"
	TriggerManual    Trigger = "manual"
)

// Target is one configured database project to keep alive.
// The key is intentionally excluded from JSON output.
type Target struct {
	Name     string `json:"name"`
	Endpoint string `json:"endpoint"`
	Key      string `json:"-"`
}

// ProbeResult is the outcome of pinging one target. StatusCode is nil
// when no response was obtained (DNS, TLS, timeout, reset).
type ProbeResult struct {
	TargetName string    `json:"target_name"`
	Success    bool      `json:"success"`
	StatusCode *int      `json:"status_code,omitempty"`
	Error      string    `json:"error,omitempty"`
	DurationMS int64     `json:"duration_ms"`
	CheckedAt  time.Time `json:"checked_at"`
}

type Counts struct {
	Total     int `json:"total"`
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// RunSummary is one orchestrated batch of probes across all targets.
// Success is true iff no target failed.
type RunSummary struct {
	Timestamp time.Time     `json:"timestamp"`
	Trigger   Trigger       `json:"trigger"`
	Success   bool          `json:"success"`
	Message   string        `json:"message"`
	Results   []ProbeResult `json:"results"`
	Counts    Counts        `json:"counts"`
}

// HistoryLog is the single persisted record of recent runs, ordered
// chronologically and trimmed to the retention window on every append.
type HistoryLog struct {
	Runs        []RunSummary `json:"runs"`
	LastUpdated time.Time    `json:"last_updated"`
}
