package logger

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"

	"github.com/harrison/operant/internal/models"
)

// colorScheme defines consistent colors for metric values.
// Cyan: value names
// Green: rates and latencies
// White: counts
type colorScheme struct {
	label *color.Color
	rate  *color.Color
	count *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		label: color.New(color.FgCyan),
		rate:  color.New(color.FgGreen),
		count: color.New(color.FgWhite),
	}
}

// formatValues renders an outcome's scalar values in name order.
// Format: "cue_rate: 2, cycles: 1, iti_rate: 1"
func formatValues(o models.Outcome, useColor bool) string {
	names := o.ValueNames()
	if len(names) == 0 {
		return "-"
	}

	scheme := newColorScheme()
	parts := make([]string, 0, len(names))
	for _, name := range names {
		value := formatNumber(o.Values[name])
		if useColor {
			c := scheme.count
			if isRateOrLatency(name) {
				c = scheme.rate
			}
			parts = append(parts, fmt.Sprintf("%s: %s", scheme.label.Sprint(name), c.Sprint(value)))
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", name, value))
	}
	return strings.Join(parts, ", ")
}

func isRateOrLatency(name string) bool {
	return strings.HasSuffix(name, "_rate") || strings.HasSuffix(name, "_latency")
}

// formatNumber prints integers without a fractional part.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
