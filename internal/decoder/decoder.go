// Package decoder turns the packed W-array of a MED-PC session file into a
// timestamped event stream.
//
// Every data token is a decimal numeral: the trailing four digits are an
// event id and the leading digits are a raw tick count. Tokens containing a
// colon are array row labels and are skipped.
package decoder

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/harrison/operant/internal/eventcodes"
	"github.com/harrison/operant/internal/models"
)

// idDigits is the number of trailing digits that carry the event id.
const idDigits = 4

// DecodeError reports why a session's event array could not be decoded.
// Position is the index among data tokens, or -1 when the failure is not
// tied to a single token.
type DecodeError struct {
	Position int
	Token    string
	Reason   string
}

// Error implements the error interface for DecodeError.
func (e *DecodeError) Error() string {
	if e.Position < 0 {
		return fmt.Sprintf("decode: %s", e.Reason)
	}
	return fmt.Sprintf("decode: token %d (%q): %s", e.Position, e.Token, e.Reason)
}

// IsDecodeError checks if the error is or wraps a DecodeError.
func IsDecodeError(err error) bool {
	if err == nil {
		return false
	}
	var de *DecodeError
	return errors.As(err, &de)
}

// Decode converts raw into an event stream. timeScale is the number of ticks
// per second of the recorder clock.
func Decode(raw string, timeScale float64, table *eventcodes.Table) (*models.EventStream, error) {
	if table == nil {
		return nil, &DecodeError{Position: -1, Reason: "no event code table"}
	}
	if timeScale <= 0 || math.IsNaN(timeScale) || math.IsInf(timeScale, 0) {
		return nil, &DecodeError{Position: -1, Reason: fmt.Sprintf("invalid time scale %v", timeScale)}
	}

	tokens := DataTokens(raw)
	if len(tokens) == 0 {
		return nil, &DecodeError{Position: -1, Reason: "no event tokens"}
	}

	events := make([]models.DecodedEvent, len(tokens))
	var firstTicks, prevTicks int64

	for i, tok := range tokens {
		ticks, id, err := splitToken(tok)
		if err != nil {
			return nil, &DecodeError{Position: i, Token: tok, Reason: err.Error()}
		}

		label, ok := table.Lookup(id)
		if !ok {
			return nil, &DecodeError{Position: i, Token: tok, Reason: fmt.Sprintf("unknown event id %d", id)}
		}

		if i == 0 {
			firstTicks = ticks
			events[i] = models.DecodedEvent{Timestamp: 0, Label: label}
		} else {
			if ticks < prevTicks {
				return nil, &DecodeError{
					Position: i,
					Token:    tok,
					Reason:   fmt.Sprintf("tick count %d precedes previous %d", ticks, prevTicks),
				}
			}
			ts := float64(ticks)/timeScale - float64(firstTicks)/timeScale
			events[i] = models.DecodedEvent{Timestamp: round(ts, 2), Label: label}
		}
		prevTicks = ticks
	}

	return models.NewEventStream(events), nil
}

// DataTokens splits raw on whitespace and drops metadata tokens (any token
// containing ':').
func DataTokens(raw string) []string {
	fields := strings.Fields(raw)
	tokens := fields[:0]
	for _, f := range fields {
		if strings.Contains(f, ":") {
			continue
		}
		tokens = append(tokens, f)
	}
	return tokens
}

// splitToken returns the tick count and event id packed into tok.
func splitToken(tok string) (int64, int, error) {
	digits, err := integerDigits(tok)
	if err != nil {
		return 0, 0, err
	}
	if len(digits) <= idDigits {
		return 0, 0, fmt.Errorf("token has %d digits, need at least %d", len(digits), idDigits+1)
	}

	cut := len(digits) - idDigits
	ticks, err := strconv.ParseInt(digits[:cut], 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid tick count: %w", err)
	}
	id, err := strconv.Atoi(digits[cut:])
	if err != nil {
		return 0, 0, fmt.Errorf("invalid event id: %w", err)
	}
	return ticks, id, nil
}

// integerDigits coerces tok to an integer and returns its decimal digits.
// Fractional forms are truncated.
func integerDigits(tok string) (string, error) {
	if n, err := strconv.ParseInt(tok, 10, 64); err == nil {
		if n < 0 {
			return "", fmt.Errorf("negative value")
		}
		return strconv.FormatInt(n, 10), nil
	}

	f, err := strconv.ParseFloat(tok, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("not a number")
	}
	if f < 0 {
		return "", fmt.Errorf("negative value")
	}
	if f >= math.MaxInt64 {
		return "", fmt.Errorf("value out of range")
	}
	return strconv.FormatInt(int64(math.Trunc(f)), 10), nil
}

func round(v float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}
