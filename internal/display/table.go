package display

import (
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/harrison/operant/internal/models"
)

// PrintOutcomeTable writes one row per session and one column per metric.
// Cells hold the metric's headline value, or its status when it did not succeed.
func PrintOutcomeTable(out io.Writer, batch models.BatchResult, metricNames []string) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)

	header := append([]string{"SESSION", "SUBJECT"}, upper(metricNames)...)
	fmt.Fprintln(w, strings.Join(header, "\t"))

	for _, s := range batch.Sessions {
		row := []string{filepath.Base(s.Session.Path), dash(s.Session.Subject)}
		for _, name := range metricNames {
			o, ok := s.Outcome(name)
			if !ok {
				row = append(row, "-")
				continue
			}
			row = append(row, Headline(o))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	return w.Flush()
}

// headlineKeys picks the value shown for each metric in summaries
var headlineKeys = []string{"mean_latency", "cue_rate", "total"}

// Headline returns a short text for an outcome: "cue 2 / iti 1" for cue
// responding, the mean latency or total for others, the status otherwise.
func Headline(o models.Outcome) string {
	if o.Status != models.StatusOK {
		return string(o.Status)
	}
	if cue, ok := o.Values["cue_rate"]; ok {
		return fmt.Sprintf("cue %s / iti %s", num(cue), num(o.Values["iti_rate"]))
	}
	if goCount, ok := o.Values["go"]; ok {
		return fmt.Sprintf("go %s / nogo %s", num(goCount), num(o.Values["nogo"]))
	}
	for _, key := range headlineKeys {
		if v, ok := o.Values[key]; ok {
			return num(v)
		}
	}
	return string(o.Status)
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func dash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func upper(names []string) []string {
	out := make([]string, len(names))
	for i, n := range names {
		out[i] = strings.ToUpper(n)
	}
	return out
}
