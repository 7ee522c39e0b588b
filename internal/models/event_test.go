package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewEventStream_CopiesInput(t *testing.T) {
	events := []DecodedEvent{
		{Timestamp: 0, Label: "StartSession"},
		{Timestamp: 1.5, Label: "PokeOn1"},
	}

	stream := NewEventStream(events)
	events[1].Label = "Mutated"

	assert.Equal(t, "PokeOn1", stream.Label(1))
	assert.Equal(t, 2, stream.Len())
}

func TestEventStream_EventsReturnsCopy(t *testing.T) {
	stream := NewEventStream([]DecodedEvent{{Timestamp: 0, Label: "StartSession"}})

	out := stream.Events()
	out[0].Label = "Mutated"

	assert.Equal(t, "StartSession", stream.At(0).Label)
}

func TestEventStream_Accessors(t *testing.T) {
	stream := NewEventStream([]DecodedEvent{
		{Timestamp: 0, Label: "StartSession"},
		{Timestamp: 2.25, Label: "PokeOn1"},
		{Timestamp: 3.5, Label: "PokeOn1"},
		{Timestamp: 10, Label: "EndSession"},
	})

	assert.Equal(t, 2.25, stream.Timestamp(1))
	assert.Equal(t, 2, stream.Count("PokeOn1"))
	assert.Equal(t, 0, stream.Count("DipOn"))
	assert.Equal(t, 10.0, stream.Duration())
}

func TestEventStream_NilAndEmpty(t *testing.T) {
	var nilStream *EventStream
	assert.Equal(t, 0, nilStream.Len())
	assert.Nil(t, nilStream.Events())
	assert.Equal(t, 0, nilStream.Count("PokeOn1"))

	empty := NewEventStream(nil)
	assert.Equal(t, 0, empty.Len())
	assert.Equal(t, 0.0, empty.Duration())
}
