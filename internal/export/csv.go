package export

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/harrison/operant/internal/models"
)

// CSVExporter exports batch results in long CSV format: one row per
// (session, metric, value). Metrics without values, and sessions that failed
// to decode, get a single row with empty value columns.
type CSVExporter struct{}

var csvHeader = []string{"run_id", "session", "subject", "start_date", "metric", "status", "value_name", "value", "error"}

// Export writes the CSV rows
func (ce *CSVExporter) Export(w io.Writer, batch *models.BatchResult) error {
	if batch == nil {
		return fmt.Errorf("batch cannot be nil")
	}

	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, s := range batch.Sessions {
		prefix := []string{batch.RunID, s.Session.Path, s.Session.Subject, s.Session.StartDate}

		if len(s.Outcomes) == 0 {
			row := append(append([]string{}, prefix...), "", string(models.StatusSkipped), "", "", s.DecodeError)
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write CSV row: %w", err)
			}
			continue
		}

		for _, o := range s.Outcomes {
			names := o.ValueNames()
			if len(names) == 0 {
				row := append(append([]string{}, prefix...), o.Metric, string(o.Status), "", "", o.Error)
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
				continue
			}
			for _, name := range names {
				row := append(append([]string{}, prefix...), o.Metric, string(o.Status), name, num(o.Values[name]), o.Error)
				if err := cw.Write(row); err != nil {
					return fmt.Errorf("failed to write CSV row: %w", err)
				}
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
