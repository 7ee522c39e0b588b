// Package analysis runs the decoder and every metric over session files.
//
// A session that fails to load or decode has all of its metrics marked
// skipped; a metric that fails is recorded as failed. Neither stops the
// batch. Sessions are analyzed concurrently and share only the read-only
// event code table.
package analysis

import (
	"fmt"
	"math"
	"time"

	"github.com/harrison/operant/internal/decoder"
	"github.com/harrison/operant/internal/eventcodes"
	"github.com/harrison/operant/internal/models"
	"github.com/harrison/operant/internal/session"
)

// Options configures an Analyzer
type Options struct {
	Table          *eventcodes.Table // Required
	TimeScale      float64           // Ticks per second, > 0
	Markers        Markers           // Zero value uses DefaultMarkers
	MaxConcurrency int               // 0 = unlimited
	Logger         Logger            // Optional
	Progress       func(done, total int)
}

// Analyzer decodes session files and computes their metrics
type Analyzer struct {
	table          *eventcodes.Table
	timeScale      float64
	markers        Markers
	maxConcurrency int
	logger         Logger
	progress       func(done, total int)
}

// New creates an Analyzer from opts
func New(opts Options) (*Analyzer, error) {
	if opts.Table == nil {
		return nil, fmt.Errorf("event code table is required")
	}
	if opts.TimeScale <= 0 || math.IsNaN(opts.TimeScale) || math.IsInf(opts.TimeScale, 0) {
		return nil, fmt.Errorf("time scale must be > 0, got %v", opts.TimeScale)
	}
	if opts.MaxConcurrency < 0 {
		return nil, fmt.Errorf("max concurrency must be >= 0, got %d", opts.MaxConcurrency)
	}

	markers := opts.Markers
	if markers == (Markers{}) {
		markers = DefaultMarkers()
	}

	var logger Logger = nopLogger{}
	if opts.Logger != nil {
		logger = opts.Logger
	}

	return &Analyzer{
		table:          opts.Table,
		timeScale:      opts.TimeScale,
		markers:        markers,
		maxConcurrency: opts.MaxConcurrency,
		logger:         logger,
		progress:       opts.Progress,
	}, nil
}

// Table returns the event code table in use
func (a *Analyzer) Table() *eventcodes.Table {
	return a.table
}

// DecodeFile loads a session file and decodes its W array
func (a *Analyzer) DecodeFile(path string) (*session.Header, *models.EventStream, error) {
	h, err := session.LoadFile(path)
	if err != nil {
		return nil, nil, err
	}

	stream, err := a.DecodeHeader(h)
	if err != nil {
		return h, nil, err
	}
	return h, stream, nil
}

// DecodeHeader decodes the W array of an already parsed session
func (a *Analyzer) DecodeHeader(h *session.Header) (*models.EventStream, error) {
	raw, err := h.EventArray()
	if err != nil {
		return nil, err
	}
	return decoder.Decode(raw, a.timeScale, a.table)
}

// AnalyzeStream runs every metric over a decoded stream
func (a *Analyzer) AnalyzeStream(stream *models.EventStream) []models.Outcome {
	named := a.markers.metrics()
	outcomes := make([]models.Outcome, 0, len(named))

	for _, m := range named {
		values, detail, err := m.run(stream)
		outcome := models.Outcome{
			Metric: m.name,
			Status: classify(err),
			Values: values,
			Detail: detail,
			Err:    err,
		}
		if err != nil {
			outcome.Error = err.Error()
		}
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

// AnalyzeFile loads, decodes and analyzes one session file.
// Failures are captured in the returned result, never returned.
func (a *Analyzer) AnalyzeFile(path string) models.SessionResult {
	start := time.Now()

	h, stream, err := a.DecodeFile(path)
	result := models.SessionResult{Session: SessionInfo(path, h)}
	if err != nil {
		result = skipped(result, err)
		result.Elapsed = time.Since(start)
		return result
	}

	result.Events = stream.Len()
	result.Duration = stream.Duration()
	result.Outcomes = a.AnalyzeStream(stream)
	result.Elapsed = time.Since(start)
	return result
}

// skipped marks every metric of a session that could not be decoded
func skipped(result models.SessionResult, err error) models.SessionResult {
	result.Err = err
	result.DecodeError = err.Error()
	result.Outcomes = make([]models.Outcome, 0, len(MetricNames))
	for _, name := range MetricNames {
		result.Outcomes = append(result.Outcomes, models.Outcome{
			Metric: name,
			Status: models.StatusSkipped,
			Error:  err.Error(),
			Err:    err,
		})
	}
	return result
}

// SessionInfo describes a session file from its parsed header; h may be nil
func SessionInfo(path string, h *session.Header) models.SessionInfo {
	info := models.SessionInfo{Path: path}
	if h == nil {
		return info
	}
	info.Subject = h.Subject()
	info.Experiment = h.Experiment()
	info.Group = h.Group()
	info.Box = h.Box()
	info.StartDate = h.StartDate()
	return info
}
