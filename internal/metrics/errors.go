package metrics

import (
	"errors"
	"fmt"
)

// ErrNoPresses is returned by LeverPressLatency when no presentation window
// contains a qualifying press. It is an outcome, not a malformed session.
var ErrNoPresses = errors.New("no presses")

// PairingMismatchError reports onset/offset markers that cannot be paired
// positionally, either because their counts differ or because an offset does
// not follow its onset.
type PairingMismatchError struct {
	Onset   string // Onset marker label(s)
	Offset  string // Offset marker label(s)
	Onsets  int    // Number of onsets found
	Offsets int    // Number of offsets found
	Index   int    // Pair index with an out-of-order offset, -1 for a count mismatch
}

// Error implements the error interface for PairingMismatchError.
func (e *PairingMismatchError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("pairing %s/%s: offset %d does not follow its onset", e.Onset, e.Offset, e.Index)
	}
	return fmt.Sprintf("pairing %s/%s: %d onsets but %d offsets", e.Onset, e.Offset, e.Onsets, e.Offsets)
}

// EmptyResultError reports a metric whose mean or rate is undefined because
// the set it is computed over is empty.
type EmptyResultError struct {
	Metric string
	Reason string
}

// Error implements the error interface for EmptyResultError.
func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("%s: %s", e.Metric, e.Reason)
}

// IsPairingMismatch checks if the error is or wraps a PairingMismatchError.
func IsPairingMismatch(err error) bool {
	if err == nil {
		return false
	}
	var pe *PairingMismatchError
	return errors.As(err, &pe)
}

// IsEmptyResult checks if the error is or wraps an EmptyResultError.
func IsEmptyResult(err error) bool {
	if err == nil {
		return false
	}
	var ee *EmptyResultError
	return errors.As(err, &ee)
}
