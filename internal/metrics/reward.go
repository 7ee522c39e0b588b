package metrics

import (
	"github.com/harrison/operant/internal/models"
)

// RewardResult summarizes dipper presentations and their retrieval.
type RewardResult struct {
	Presented   int       `json:"presented"`
	Retrieved   int       `json:"retrieved"`
	MeanLatency float64   `json:"mean_latency"` // seconds, 3 decimals
	Latencies   []float64 `json:"latencies"`    // one per retrieval, 2 decimals
}

// RewardRetrieval pairs every DipOn with its DipOff (or the EndSession that
// cut it short) and counts a retrieval when the animal was already in the
// receptacle at dip onset (latency 0) or entered it before the dip ended.
func RewardRetrieval(stream *models.EventStream) (RewardResult, error) {
	onsets := IndicesOf(stream, DipOn)
	terminals := IndicesOf(stream, DipOff, EndSession)

	// EndSession only terminates a dip that is still open when the session
	// ends; otherwise it is not a terminal.
	if n := len(terminals); n == len(onsets)+1 && stream.Label(terminals[n-1]) == EndSession {
		terminals = terminals[:n-1]
	}

	dips, err := PairIntervals(onsets, terminals, DipOn, labelSet(DipOff, EndSession))
	if err != nil {
		return RewardResult{}, err
	}

	pokes := pokeIntervals(stream)
	result := RewardResult{Presented: len(dips), Latencies: []float64{}}

	for _, dip := range dips {
		if spansPosition(pokes, dip.Onset) {
			result.Retrieved++
			result.Latencies = append(result.Latencies, 0)
			continue
		}
		if poke := firstIn(stream, PokeOn, dip.Onset+1, dip.Offset); poke >= 0 {
			result.Retrieved++
			latency := round(stream.Timestamp(poke)-stream.Timestamp(dip.Onset), 2)
			result.Latencies = append(result.Latencies, latency)
		}
	}

	if result.Retrieved == 0 {
		return RewardResult{}, &EmptyResultError{Metric: "reward retrieval", Reason: "no dips retrieved"}
	}

	mean, err := Mean(result.Latencies)
	if err != nil {
		return RewardResult{}, err
	}
	result.MeanLatency = round(mean, 3)
	return result, nil
}

// pokeIntervals closes each PokeOn1 with the next PokeOff1 after it. A poke
// that is never closed stays open through the end of the stream.
func pokeIntervals(stream *models.EventStream) []models.Interval {
	var intervals []models.Interval
	open := -1
	for i := 0; i < stream.Len(); i++ {
		switch stream.Label(i) {
		case PokeOn:
			if open < 0 {
				open = i
			}
		case PokeOff:
			if open >= 0 {
				intervals = append(intervals, models.Interval{Onset: open, Offset: i})
				open = -1
			}
		}
	}
	if open >= 0 {
		intervals = append(intervals, models.Interval{Onset: open, Offset: stream.Len()})
	}
	return intervals
}

// spansPosition reports whether pos lies strictly inside one of intervals.
func spansPosition(intervals []models.Interval, pos int) bool {
	for _, iv := range intervals {
		if iv.Onset < pos && pos < iv.Offset {
			return true
		}
	}
	return false
}
