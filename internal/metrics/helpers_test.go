package metrics

import (
	"github.com/harrison/operant/internal/models"
)

// ev is shorthand for a decoded event in test streams.
func ev(ts float64, label string) models.DecodedEvent {
	return models.DecodedEvent{Timestamp: ts, Label: label}
}

func streamOf(events ...models.DecodedEvent) *models.EventStream {
	return models.NewEventStream(events)
}
