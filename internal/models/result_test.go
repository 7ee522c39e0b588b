package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutcome_ValueNames(t *testing.T) {
	o := Outcome{Values: map[string]float64{"retrieved": 1, "mean_latency": 2.5, "presented": 2}}
	assert.Equal(t, []string{"mean_latency", "presented", "retrieved"}, o.ValueNames())
	assert.Empty(t, Outcome{}.ValueNames())
}

func TestSessionResult_Outcome(t *testing.T) {
	r := SessionResult{Outcomes: []Outcome{
		{Metric: "head_pokes", Status: StatusOK},
		{Metric: "lever_press_latency", Status: StatusNoPresses},
	}}

	o, ok := r.Outcome("lever_press_latency")
	assert.True(t, ok)
	assert.Equal(t, StatusNoPresses, o.Status)

	_, ok = r.Outcome("missing")
	assert.False(t, ok)
}

func TestBatchResult_Aggregates(t *testing.T) {
	batch := BatchResult{Sessions: []SessionResult{
		{Session: SessionInfo{Path: "a"}, Outcomes: []Outcome{{Status: StatusOK}, {Status: StatusFailed}}},
		{Session: SessionInfo{Path: "b"}, Err: errors.New("boom"), DecodeError: "boom", Outcomes: []Outcome{{Status: StatusSkipped}, {Status: StatusSkipped}}},
		{Session: SessionInfo{Path: "c"}, Outcomes: []Outcome{{Status: StatusOK}, {Status: StatusNoPresses}}},
	}}

	assert.Equal(t, 2, batch.Decoded())
	failed := batch.FailedSessions()
	if assert.Len(t, failed, 1) {
		assert.Equal(t, "b", failed[0].Session.Path)
	}
	assert.Equal(t, map[OutcomeStatus]int{
		StatusOK:        2,
		StatusFailed:    1,
		StatusSkipped:   2,
		StatusNoPresses: 1,
	}, batch.StatusCounts())
}
