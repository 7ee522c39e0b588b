package metrics

import (
	"github.com/harrison/operant/internal/models"
)

// GoNoGoResult counts go and no-go trials by lever presentation.
type GoNoGoResult struct {
	Go   int `json:"go"`
	NoGo int `json:"nogo"`
}

// Total returns the number of classified lever presentations.
func (r GoNoGoResult) Total() int {
	return r.Go + r.NoGo
}

// GoNoGoTrials classifies each RLeverOn/LLeverOn presentation. A presentation
// immediately followed by LightOn1 or LightOn2 is a no-go trial; every other
// presentation, including one that ends the stream, is a go trial.
func GoNoGoTrials(stream *models.EventStream) GoNoGoResult {
	var result GoNoGoResult
	for _, lever := range IndicesOf(stream, RLeverOn, LLeverOn) {
		next := lever + 1
		if next < stream.Len() && isLightOn(stream.Label(next)) {
			result.NoGo++
		} else {
			result.Go++
		}
	}
	return result
}

func isLightOn(label string) bool {
	return label == LightOn1 || label == LightOn2
}
