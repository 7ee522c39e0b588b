package metrics

import (
	"github.com/harrison/operant/internal/models"
)

// LeverLatencyResult is the latency from lever presentation to first press,
// averaged over every presentation that drew a press.
type LeverLatencyResult struct {
	Windows     int       `json:"windows"`      // lever presentations
	Responded   int       `json:"responded"`    // presentations with a press
	MeanLatency float64   `json:"mean_latency"` // seconds, 3 decimals
	Latencies   []float64 `json:"latencies"`
}

// LeverPressLatency splits the session into windows that open at each leverOn
// marker and close at the next leverOn, EndSession or the end of the stream,
// and averages the time to the first leverPress over all windows.
//
// It returns ErrNoPresses when no window contains a press.
func LeverPressLatency(stream *models.EventStream, leverOn, leverPress string) (LeverLatencyResult, error) {
	bounds := IndicesOf(stream, leverOn, EndSession)
	bounds = append(bounds, stream.Len())

	result := LeverLatencyResult{Latencies: []float64{}}
	for i := 0; i < len(bounds)-1; i++ {
		start, end := bounds[i], bounds[i+1]
		if stream.Label(start) != leverOn {
			continue
		}
		result.Windows++

		press := firstIn(stream, leverPress, start+1, end)
		if press < 0 {
			continue
		}
		result.Responded++
		result.Latencies = append(result.Latencies, round(stream.Timestamp(press)-stream.Timestamp(start), 2))
	}

	if result.Responded == 0 {
		return LeverLatencyResult{Windows: result.Windows}, ErrNoPresses
	}

	mean, err := Mean(result.Latencies)
	if err != nil {
		return LeverLatencyResult{}, err
	}
	result.MeanLatency = round(mean, 3)
	return result, nil
}
