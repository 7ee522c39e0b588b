package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/harrison/operant/internal/models"
)

func testBatch() *models.BatchResult {
	return &models.BatchResult{
		RunID:        "run-1",
		StartedAt:    time.Date(2020, 1, 15, 9, 0, 0, 0, time.UTC),
		Duration:     1500 * time.Millisecond,
		TimeScale:    100,
		TableVersion: "2020.1",
		Sessions: []models.SessionResult{
			{
				Session:  models.SessionInfo{Path: "/data/R1.txt", Subject: "R1", StartDate: "01/15/20"},
				Events:   18,
				Duration: 199,
				Outcomes: []models.Outcome{
					{Metric: "reward_retrieval", Status: models.StatusOK, Values: map[string]float64{"presented": 1, "retrieved": 1, "mean_latency": 3}},
					{Metric: "lever_press_latency", Status: models.StatusNoPresses, Error: "no qualifying lever presses"},
				},
			},
			{
				Session:     models.SessionInfo{Path: "/data/bad.txt"},
				DecodeError: "decode: token 3 (\"12\"): fewer than 5 digits | bad",
				Outcomes: []models.Outcome{
					{Metric: "reward_retrieval", Status: models.StatusSkipped, Error: "decode failed"},
					{Metric: "lever_press_latency", Status: models.StatusSkipped, Error: "decode failed"},
				},
			},
		},
	}
}

func TestNewExporter(t *testing.T) {
	tests := []struct {
		format  string
		want    interface{}
		wantErr bool
	}{
		{"json", &JSONExporter{}, false},
		{"markdown", &MarkdownExporter{}, false},
		{"MD", &MarkdownExporter{}, false},
		{"csv", &CSVExporter{}, false},
		{"html", &HTMLExporter{}, false},
		{"xml", nil, true},
		{"", nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.format, func(t *testing.T) {
			e, err := NewExporter(tt.format, nil)
			if (err != nil) != tt.wantErr {
				t.Fatalf("NewExporter(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			switch tt.want.(type) {
			case *JSONExporter:
				if _, ok := e.(*JSONExporter); !ok {
					t.Errorf("got %T", e)
				}
			case *MarkdownExporter:
				if _, ok := e.(*MarkdownExporter); !ok {
					t.Errorf("got %T", e)
				}
			case *CSVExporter:
				if _, ok := e.(*CSVExporter); !ok {
					t.Errorf("got %T", e)
				}
			case *HTMLExporter:
				if _, ok := e.(*HTMLExporter); !ok {
					t.Errorf("got %T", e)
				}
			}
		})
	}
}

func TestExporters_NilBatch(t *testing.T) {
	for _, e := range []Exporter{&JSONExporter{}, &MarkdownExporter{}, &CSVExporter{}, &HTMLExporter{}} {
		if err := e.Export(&bytes.Buffer{}, nil); err == nil {
			t.Errorf("%T: expected error for nil batch", e)
		}
	}
}

func TestJSONExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&JSONExporter{Pretty: true}).Export(&buf, testBatch()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	var got map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if got["run_id"] != "run-1" {
		t.Errorf("run_id = %v", got["run_id"])
	}
	if got["decoded"] != float64(1) {
		t.Errorf("decoded = %v", got["decoded"])
	}
	if got["duration_seconds"] != 1.5 {
		t.Errorf("duration_seconds = %v", got["duration_seconds"])
	}
	counts, ok := got["status_counts"].(map[string]interface{})
	if !ok || counts["skipped"] != float64(2) || counts["ok"] != float64(1) {
		t.Errorf("status_counts = %v", got["status_counts"])
	}
	sessions, ok := got["sessions"].([]interface{})
	if !ok || len(sessions) != 2 {
		t.Fatalf("sessions = %v", got["sessions"])
	}
	if !strings.Contains(buf.String(), "\n  ") {
		t.Error("expected indented output")
	}
}

func TestMarkdownExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	me := &MarkdownExporter{MetricNames: []string{"reward_retrieval", "lever_press_latency"}}
	if err := me.Export(&buf, testBatch()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"# Operant Analysis Report",
		"- **Run ID**: run-1",
		"- **Sessions**: 2",
		"- **Decoded**: 1",
		"- **Time Scale**: 100",
		"- **Event Codes**: 2020.1",
		"- **Metrics**: 1 ok, 0 failed, 1 no presses, 2 skipped",
		"| reward_retrieval | 1 | 0 | 0 | 1 |",
		"| lever_press_latency | 0 | 0 | 1 | 1 |",
		"## R1.txt",
		"- **Subject**: R1",
		"| reward_retrieval | ok | mean_latency=3, presented=1, retrieved=1 |  |",
		"| lever_press_latency | no_presses | - | no qualifying lever presses |",
		"## Decode Failures",
		`fewer than 5 digits \| bad`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in report:\n%s", want, out)
		}
	}
	if strings.Contains(out, "**Generated**") {
		t.Error("timestamp should be omitted unless requested")
	}
	if strings.Contains(out, "## bad.txt") {
		t.Error("failed sessions should not get a metrics section")
	}
}

func TestMarkdownExporter_DerivesMetricNames(t *testing.T) {
	var buf bytes.Buffer
	if err := (&MarkdownExporter{}).Export(&buf, testBatch()); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	first := strings.Index(out, "| reward_retrieval | 1 |")
	second := strings.Index(out, "| lever_press_latency | 0 |")
	if first < 0 || second < 0 || first > second {
		t.Errorf("expected metric rows in first-seen order:\n%s", out)
	}
}

func TestCSVExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	if err := (&CSVExporter{}).Export(&buf, testBatch()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("invalid CSV: %v", err)
	}

	// header + 3 reward values + 1 lever row + 2 skipped rows
	if len(records) != 7 {
		t.Fatalf("expected 7 records, got %d: %v", len(records), records)
	}
	if strings.Join(records[0], ",") != strings.Join(csvHeader, ",") {
		t.Errorf("header = %v", records[0])
	}

	want := []string{"run-1", "/data/R1.txt", "R1", "01/15/20", "reward_retrieval", "ok", "mean_latency", "3", ""}
	if strings.Join(records[1], "|") != strings.Join(want, "|") {
		t.Errorf("first row = %v, want %v", records[1], want)
	}
	if records[4][5] != "no_presses" || records[4][6] != "" {
		t.Errorf("valueless outcome row = %v", records[4])
	}
	if records[6][1] != "/data/bad.txt" || records[6][5] != "skipped" {
		t.Errorf("skipped row = %v", records[6])
	}
}

func TestHTMLExporter_Export(t *testing.T) {
	var buf bytes.Buffer
	he := &HTMLExporter{Markdown: MarkdownExporter{MetricNames: []string{"reward_retrieval"}}}
	if err := he.Export(&buf, testBatch()); err != nil {
		t.Fatalf("Export() error = %v", err)
	}

	out := buf.String()
	for _, want := range []string{
		"<!DOCTYPE html>",
		"<title>Operant Analysis Report run-1</title>",
		"<h1>Operant Analysis Report</h1>",
		"<table>",
		"<td>reward_retrieval</td>",
		"</html>",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in HTML:\n%s", want, out)
		}
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports", "run.csv")

	if err := ExportToFile(context.Background(), &CSVExporter{}, testBatch(), path); err != nil {
		t.Fatalf("ExportToFile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "run_id,session,") {
		t.Errorf("unexpected file content:\n%s", data)
	}

	if err := ExportToFile(context.Background(), &CSVExporter{}, nil, path); err == nil {
		t.Error("expected error for nil batch")
	}
}
