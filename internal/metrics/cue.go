package metrics

import (
	"fmt"

	"github.com/harrison/operant/internal/models"
)

// CueITIResult holds head-poke rates (responses per minute) during cues and
// during the equal-length interval preceding each cue.
type CueITIResult struct {
	Cycles   int       `json:"cycles"`
	CueRate  float64   `json:"cue_rate"` // mean across cycles, 3 decimals
	ITIRate  float64   `json:"iti_rate"` // mean across cycles, 3 decimals
	CueRates []float64 `json:"cue_rates"`
	ITIRates []float64 `json:"iti_rates"`
}

// CueITIResponding compares poke rates inside each codeOn/codeOff cue with
// the rate in the window of the same duration that ends at cue onset.
//
// The comparison window never reaches back past the previous cue's offset,
// or past StartSession (the stream start when absent) for the first cue.
// Rates always divide by the full cue duration, even when that boundary
// clips the window.
func CueITIResponding(stream *models.EventStream, codeOn, codeOff string) (CueITIResult, error) {
	cues, err := PairIntervals(IndicesOf(stream, codeOn), IndicesOf(stream, codeOff), codeOn, codeOff)
	if err != nil {
		return CueITIResult{}, err
	}
	if len(cues) == 0 {
		return CueITIResult{}, &EmptyResultError{
			Metric: "cue/ITI responding",
			Reason: fmt.Sprintf("no %s/%s cycles", codeOn, codeOff),
		}
	}

	result := CueITIResult{
		Cycles:   len(cues),
		CueRates: make([]float64, 0, len(cues)),
		ITIRates: make([]float64, 0, len(cues)),
	}

	for i, cue := range cues {
		onsetTS := stream.Timestamp(cue.Onset)
		duration := stream.Timestamp(cue.Offset) - onsetTS
		if duration <= 0 {
			return CueITIResult{}, &EmptyResultError{
				Metric: "cue/ITI responding",
				Reason: fmt.Sprintf("cue %d has zero duration", i),
			}
		}
		minutes := duration / 60

		cuePokes := countIn(stream, PokeOn, cue.Onset, cue.Offset)

		lower := sessionStart(stream, cue.Onset)
		if i > 0 {
			lower = cues[i-1].Offset
		}
		itiPokes := 0
		for x := lower; x < cue.Onset; x++ {
			if stream.Label(x) == PokeOn && stream.Timestamp(x) >= onsetTS-duration {
				itiPokes++
			}
		}

		result.CueRates = append(result.CueRates, float64(cuePokes)/minutes)
		result.ITIRates = append(result.ITIRates, float64(itiPokes)/minutes)
	}

	cueMean, err := Mean(result.CueRates)
	if err != nil {
		return CueITIResult{}, err
	}
	itiMean, err := Mean(result.ITIRates)
	if err != nil {
		return CueITIResult{}, err
	}
	result.CueRate = round(cueMean, 3)
	result.ITIRate = round(itiMean, 3)
	return result, nil
}

// sessionStart returns the position of the last StartSession marker before
// limit, or 0 when there is none.
func sessionStart(stream *models.EventStream, limit int) int {
	start := 0
	for i := 0; i < limit; i++ {
		if stream.Label(i) == StartSession {
			start = i
		}
	}
	return start
}
