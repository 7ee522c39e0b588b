package models

import (
	"sort"
	"time"
)

// OutcomeStatus is the result class of one metric on one session
type OutcomeStatus string

// Metric outcome status constants
const (
	StatusOK        OutcomeStatus = "ok"         // Metric computed
	StatusFailed    OutcomeStatus = "failed"     // Metric returned an error
	StatusNoPresses OutcomeStatus = "no_presses" // Lever latency found no qualifying press
	StatusSkipped   OutcomeStatus = "skipped"    // Session failed to decode
)

// Outcome is the result of one metric on one session
type Outcome struct {
	Metric string             `json:"metric"`
	Status OutcomeStatus      `json:"status"`
	Values map[string]float64 `json:"values,omitempty"` // Scalar summary, e.g. presented/retrieved/mean_latency
	Detail interface{}        `json:"detail,omitempty"` // Full metric result
	Error  string             `json:"error,omitempty"`
	Err    error              `json:"-"`
}

// ValueNames returns the keys of Values in sorted order
func (o Outcome) ValueNames() []string {
	names := make([]string, 0, len(o.Values))
	for name := range o.Values {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SessionInfo identifies a session file
type SessionInfo struct {
	Path       string `json:"path"`
	Subject    string `json:"subject,omitempty"`
	Experiment string `json:"experiment,omitempty"`
	Group      string `json:"group,omitempty"`
	Box        string `json:"box,omitempty"`
	StartDate  string `json:"start_date,omitempty"`
}

// SessionResult represents the result of analyzing a single session file
type SessionResult struct {
	Session     SessionInfo   `json:"session"`
	Events      int           `json:"events"`
	Duration    float64       `json:"duration_seconds"` // Last decoded timestamp
	Outcomes    []Outcome     `json:"outcomes"`
	DecodeError string        `json:"decode_error,omitempty"`
	Err         error         `json:"-"`
	Elapsed     time.Duration `json:"-"`
}

// Decoded reports whether the session decoded and its metrics ran
func (r SessionResult) Decoded() bool {
	return r.Err == nil && r.DecodeError == ""
}

// Outcome returns the outcome of the named metric
func (r SessionResult) Outcome(metric string) (Outcome, bool) {
	for _, o := range r.Outcomes {
		if o.Metric == metric {
			return o, true
		}
	}
	return Outcome{}, false
}

// BatchResult represents the aggregate result of analyzing a set of sessions
type BatchResult struct {
	RunID        string          `json:"run_id"`
	StartedAt    time.Time       `json:"started_at"`
	Duration     time.Duration   `json:"-"`
	TimeScale    float64         `json:"time_scale"`
	TableVersion string          `json:"event_codes_version"`
	Sessions     []SessionResult `json:"sessions"`
}

// Decoded returns the number of sessions that decoded
func (b BatchResult) Decoded() int {
	n := 0
	for _, s := range b.Sessions {
		if s.Decoded() {
			n++
		}
	}
	return n
}

// FailedSessions returns the sessions that failed to decode
func (b BatchResult) FailedSessions() []SessionResult {
	var failed []SessionResult
	for _, s := range b.Sessions {
		if !s.Decoded() {
			failed = append(failed, s)
		}
	}
	return failed
}

// StatusCounts counts outcomes across all sessions by status
func (b BatchResult) StatusCounts() map[OutcomeStatus]int {
	counts := make(map[OutcomeStatus]int)
	for _, s := range b.Sessions {
		for _, o := range s.Outcomes {
			counts[o.Status]++
		}
	}
	return counts
}
