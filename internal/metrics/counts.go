package metrics

import (
	"github.com/harrison/operant/internal/models"
)

// LeverPressCounts holds press counts for up to two levers.
type LeverPressCounts struct {
	Lever1 int `json:"lever1"`
	Lever2 int `json:"lever2"`
	Total  int `json:"total"`
}

// LeverPressing counts lever1 and, when lever2 is not empty, lever2 presses.
func LeverPressing(stream *models.EventStream, lever1, lever2 string) LeverPressCounts {
	counts := LeverPressCounts{Lever1: stream.Count(lever1)}
	if lever2 != "" {
		counts.Lever2 = stream.Count(lever2)
	}
	counts.Total = counts.Lever1 + counts.Lever2
	return counts
}

// TotalHeadPokes returns the number of receptacle entries.
func TotalHeadPokes(stream *models.EventStream) int {
	return stream.Count(PokeOn)
}

// SuccessfulGoNoGoTrials returns the counts of successful go and no-go trial
// markers.
func SuccessfulGoNoGoTrials(stream *models.EventStream) (goCount, nogoCount int) {
	return stream.Count(SuccessfulGoTrial), stream.Count(SuccessfulNoGoTrial)
}

// Mean returns the arithmetic mean of values.
func Mean(values []float64) (float64, error) {
	if len(values) == 0 {
		return 0, &EmptyResultError{Metric: "mean", Reason: "no values"}
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values)), nil
}
