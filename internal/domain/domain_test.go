package domain

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestTarget_KeyNeverSerialized(t *testing.T) {
	tgt := Target{
		Name:     "abcproject",
		Endpoint: "https://abcproject.supabase.co",
		Key:      "secret-key",
	}
	b, err := json.Marshal(tgt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "secret-key") {
		t.Fatalf("credential leaked into JSON: %s", b)
	}
}

func TestProbeResult_StatusCodeOmittedWhenAbsent(t *testing.T) {
	r := ProbeResult{
		TargetName: "abcproject",
		Success:    false,
		Error:      "dial tcp: i/o timeout",
		DurationMS: 42,
		CheckedAt:  time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
	}
	b, err := json.Marshal(r)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if strings.Contains(string(b), "status_code") {
		t.Fatalf("expected status_code omitted on transport failure, got %s", b)
	}

	code := 200
	r.StatusCode = &code
	b, _ = json.Marshal(r)
	if !strings.Contains(string(b), `"status_code":200`) {
		t.Fatalf("expected status_code present, got %s", b)
	}
}

func TestRunSummary_JSONRoundTrip(t *testing.T) {
	want := RunSummary{
		Timestamp: time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC),
		Trigger:   TriggerManual,
		Success:   true,
		Message:   "Pinged 1 project(s): 1 succeeded, 0 failed",
		Results: []ProbeResult{
			{TargetName: "abcproject", Success: true, DurationMS: 12, CheckedAt: time.Date(2025, 8, 18, 12, 0, 0, 0, time.UTC)},
		},
		Counts: Counts{Total: 1, Succeeded: 1, Failed: 0},
	}
	b, err := json.Marshal(want)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var got RunSummary
	if err := json.Unmarshal(b, &got); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if got.Trigger != want.Trigger || got.Success != want.Success ||
		got.Counts != want.Counts || !got.Timestamp.Equal(want.Timestamp) {
		t.Fatalf("mismatch after round-trip:\nwant=%+v\ngot =%+v", want, got)
	}
	if len(got.Results) != 1 || got.Results[0].TargetName != "abcproject" {
		t.Fatalf("results lost in round-trip: %+v", got.Results)
	}
}
