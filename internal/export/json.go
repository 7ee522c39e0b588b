package export

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/harrison/operant/internal/models"
)

// JSONExporter exports batch results in JSON format
type JSONExporter struct {
	Pretty bool // Enable pretty printing with indentation
}

// jsonReport adds derived totals to the batch
type jsonReport struct {
	*models.BatchResult
	DurationSeconds float64                      `json:"duration_seconds"`
	Decoded         int                          `json:"decoded"`
	StatusCounts    map[models.OutcomeStatus]int `json:"status_counts"`
}

// Export writes the batch as a single JSON document
func (je *JSONExporter) Export(w io.Writer, batch *models.BatchResult) error {
	if batch == nil {
		return fmt.Errorf("batch cannot be nil")
	}

	enc := json.NewEncoder(w)
	if je.Pretty {
		enc.SetIndent("", "  ")
	}

	report := jsonReport{
		BatchResult:     batch,
		DurationSeconds: batch.Duration.Seconds(),
		Decoded:         batch.Decoded(),
		StatusCounts:    batch.StatusCounts(),
	}
	if err := enc.Encode(report); err != nil {
		return fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return nil
}
