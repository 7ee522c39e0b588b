// Package metrics computes behavioral measures from a decoded event stream.
//
// Every function is a pure read-only query over a *models.EventStream. Markers
// are located with IndicesOf, onset/offset markers are paired with
// PairIntervals, and failures are reported with typed errors
// (PairingMismatchError, EmptyResultError) or the ErrNoPresses sentinel
// rather than NaN or a panic.
package metrics

import (
	"math"
	"strings"

	"github.com/harrison/operant/internal/models"
)

// Marker labels used by the fixed-protocol metrics.
const (
	StartSession        = "StartSession"
	EndSession          = "EndSession"
	DipOn               = "DipOn"
	DipOff              = "DipOff"
	PokeOn              = "PokeOn1"
	PokeOff             = "PokeOff1"
	RLeverOn            = "RLeverOn"
	LLeverOn            = "LLeverOn"
	LightOn1            = "LightOn1"
	LightOn2            = "LightOn2"
	SuccessfulGoTrial   = "SuccessfulGoTrial"
	SuccessfulNoGoTrial = "SuccessfulNoGoTrial"
)

// IndicesOf returns, in ascending order, every stream position whose label is
// one of labels.
func IndicesOf(stream *models.EventStream, labels ...string) []int {
	set := make(map[string]struct{}, len(labels))
	for _, l := range labels {
		set[l] = struct{}{}
	}

	indices := []int{}
	for i := 0; i < stream.Len(); i++ {
		if _, ok := set[stream.Label(i)]; ok {
			indices = append(indices, i)
		}
	}
	return indices
}

// PairIntervals pairs the i-th onset with the i-th offset. The names are only
// used in the error message.
func PairIntervals(onsets, offsets []int, onsetName, offsetName string) ([]models.Interval, error) {
	if len(onsets) != len(offsets) {
		return nil, &PairingMismatchError{
			Onset:   onsetName,
			Offset:  offsetName,
			Onsets:  len(onsets),
			Offsets: len(offsets),
			Index:   -1,
		}
	}

	intervals := make([]models.Interval, len(onsets))
	for i := range onsets {
		if offsets[i] <= onsets[i] {
			return nil, &PairingMismatchError{
				Onset:   onsetName,
				Offset:  offsetName,
				Onsets:  len(onsets),
				Offsets: len(offsets),
				Index:   i,
			}
		}
		intervals[i] = models.Interval{Onset: onsets[i], Offset: offsets[i]}
	}
	return intervals, nil
}

// firstIn returns the first position in [from, to) labelled label, or -1.
func firstIn(stream *models.EventStream, label string, from, to int) int {
	for i := from; i < to; i++ {
		if stream.Label(i) == label {
			return i
		}
	}
	return -1
}

// countIn counts positions in [from, to) labelled label.
func countIn(stream *models.EventStream, label string, from, to int) int {
	n := 0
	for i := from; i < to; i++ {
		if stream.Label(i) == label {
			n++
		}
	}
	return n
}

func labelSet(labels ...string) string {
	return strings.Join(labels, "|")
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
