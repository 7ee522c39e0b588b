package models

// DecodedEvent is a single recorder event: seconds since the first event of
// the session and the symbolic label of its event code.
type DecodedEvent struct {
	Timestamp float64 `json:"timestamp"`
	Label     string  `json:"label"`
}

// Interval delimits a behavioral epoch by two stream positions.
type Interval struct {
	Onset  int `json:"onset"`
	Offset int `json:"offset"`
}

// EventStream is the ordered, immutable event sequence decoded from one
// session. Timestamps are non-decreasing and the first is always 0.
type EventStream struct {
	events []DecodedEvent
}

// NewEventStream wraps events in a stream. The slice is copied so later
// changes by the caller do not leak into the stream.
func NewEventStream(events []DecodedEvent) *EventStream {
	cp := make([]DecodedEvent, len(events))
	copy(cp, events)
	return &EventStream{events: cp}
}

// Len returns the number of events.
func (s *EventStream) Len() int {
	if s == nil {
		return 0
	}
	return len(s.events)
}

// At returns the event at position i.
func (s *EventStream) At(i int) DecodedEvent {
	return s.events[i]
}

// Label returns the label of the event at position i.
func (s *EventStream) Label(i int) string {
	return s.events[i].Label
}

// Timestamp returns the timestamp of the event at position i.
func (s *EventStream) Timestamp(i int) float64 {
	return s.events[i].Timestamp
}

// Events returns a copy of the underlying events.
func (s *EventStream) Events() []DecodedEvent {
	if s == nil {
		return nil
	}
	cp := make([]DecodedEvent, len(s.events))
	copy(cp, s.events)
	return cp
}

// Duration returns the timestamp of the last event, or 0 for an empty stream.
func (s *EventStream) Duration() float64 {
	if s.Len() == 0 {
		return 0
	}
	return s.events[len(s.events)-1].Timestamp
}

// Count returns how many events carry the given label.
func (s *EventStream) Count(label string) int {
	if s == nil {
		return 0
	}
	n := 0
	for _, e := range s.events {
		if e.Label == label {
			n++
		}
	}
	return n
}
