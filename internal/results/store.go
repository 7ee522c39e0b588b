// Package results keeps a SQLite ledger of analysis runs: one row per run,
// per session and per (session, metric) outcome. Decoded event streams are
// never stored.
package results

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/harrison/operant/internal/models"
)

// Store manages the SQLite results ledger
type Store struct {
	db     *sql.DB
	dbPath string
}

// RunSummary describes one recorded run
type RunSummary struct {
	ID           string
	StartedAt    time.Time
	Duration     time.Duration
	TimeScale    float64
	TableVersion string
	Sessions     int
	Decoded      int
	Counts       map[models.OutcomeStatus]int
}

// MetricStat counts outcomes of one metric by status
type MetricStat struct {
	Metric    string
	OK        int
	Failed    int
	NoPresses int
	Skipped   int
}

// Total returns the number of outcomes counted
func (m MetricStat) Total() int {
	return m.OK + m.Failed + m.NoPresses + m.Skipped
}

// HistoryQuery filters recorded outcomes; empty fields match everything
type HistoryQuery struct {
	Subject string
	Metric  string
	Limit   int
}

// HistoryEntry is one recorded outcome with its session and run
type HistoryEntry struct {
	RunID     string
	StartedAt time.Time
	Path      string
	Subject   string
	StartDate string
	Metric    string
	Status    models.OutcomeStatus
	Values    map[string]float64
	Error     string
}

// Open opens (creating if needed) the ledger at dbPath and applies migrations.
// ":memory:" opens a private in-memory ledger.
func Open(dbPath string) (*Store, error) {
	if dbPath != ":memory:" {
		dir := filepath.Dir(dbPath)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if dbPath == ":memory:" {
		// Every pooled connection would otherwise see its own empty database
		db.SetMaxOpenConns(1)
	}

	// busy_timeout first so the rest wait on locks
	pragmas := []string{
		"PRAGMA busy_timeout=5000",
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}

	for _, pragma := range pragmas {
		if err := execWithRetry(db, pragma, 5, 10*time.Millisecond); err != nil {
			db.Close()
			return nil, fmt.Errorf("set %s: %w", pragma, err)
		}
	}

	store := &Store{
		db:     db,
		dbPath: dbPath,
	}

	if err := store.ApplyMigrations(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return store, nil
}

// execWithRetry executes a SQL statement with exponential backoff retry on lock errors.
func execWithRetry(db *sql.DB, stmt string, maxRetries int, baseDelay time.Duration) error {
	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		_, err := db.Exec(stmt)
		if err == nil {
			return nil
		}

		if !strings.Contains(err.Error(), "database is locked") {
			return err
		}

		lastErr = err
		time.Sleep(baseDelay * time.Duration(1<<attempt))
	}
	return lastErr
}

// Path returns the database path
func (s *Store) Path() string {
	return s.dbPath
}

// Close closes the database connection
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// RecordRun stores a batch with all its sessions and outcomes in one transaction.
func (s *Store) RecordRun(ctx context.Context, batch *models.BatchResult) error {
	if batch == nil {
		return fmt.Errorf("batch cannot be nil")
	}
	if batch.RunID == "" {
		return fmt.Errorf("batch has no run id")
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `INSERT INTO runs
		(id, started_at, duration_ms, time_scale, table_version, session_count, decoded_count)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		batch.RunID, batch.StartedAt.UTC(), batch.Duration.Milliseconds(), batch.TimeScale,
		batch.TableVersion, len(batch.Sessions), batch.Decoded())
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}

	sessionStmt, err := tx.PrepareContext(ctx, `INSERT INTO sessions
		(run_id, path, subject, experiment, group_name, box, start_date, events, duration_seconds, decode_error)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare session insert: %w", err)
	}
	defer sessionStmt.Close()

	outcomeStmt, err := tx.PrepareContext(ctx, `INSERT INTO outcomes
		(session_id, metric, status, metric_values, error_message)
		VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outcome insert: %w", err)
	}
	defer outcomeStmt.Close()

	for _, sr := range batch.Sessions {
		info := sr.Session
		res, err := sessionStmt.ExecContext(ctx, batch.RunID, info.Path, info.Subject, info.Experiment,
			info.Group, info.Box, info.StartDate, sr.Events, sr.Duration, sr.DecodeError)
		if err != nil {
			return fmt.Errorf("insert session %s: %w", info.Path, err)
		}
		sessionID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("get session id: %w", err)
		}

		for _, o := range sr.Outcomes {
			valuesJSON := "{}"
			if len(o.Values) > 0 {
				data, err := json.Marshal(o.Values)
				if err != nil {
					return fmt.Errorf("marshal values of %s: %w", o.Metric, err)
				}
				valuesJSON = string(data)
			}
			if _, err := outcomeStmt.ExecContext(ctx, sessionID, o.Metric, string(o.Status), valuesJSON, o.Error); err != nil {
				return fmt.Errorf("insert outcome %s for %s: %w", o.Metric, info.Path, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit run: %w", err)
	}
	return nil
}

// RecentRuns returns up to limit runs, newest first. limit <= 0 returns all.
func (s *Store) RecentRuns(ctx context.Context, limit int) ([]RunSummary, error) {
	query := `SELECT id, started_at, duration_ms, time_scale, COALESCE(table_version, ''), session_count, decoded_count
		FROM runs ORDER BY started_at DESC, rowid DESC`
	var args []interface{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}

	var runs []RunSummary
	for rows.Next() {
		var r RunSummary
		var durationMS int64
		if err := rows.Scan(&r.ID, &r.StartedAt, &durationMS, &r.TimeScale, &r.TableVersion, &r.Sessions, &r.Decoded); err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan run: %w", err)
		}
		r.Duration = time.Duration(durationMS) * time.Millisecond
		r.Counts = make(map[models.OutcomeStatus]int)
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	rows.Close()

	for i := range runs {
		if err := s.loadStatusCounts(ctx, &runs[i]); err != nil {
			return nil, err
		}
	}
	return runs, nil
}

func (s *Store) loadStatusCounts(ctx context.Context, run *RunSummary) error {
	rows, err := s.db.QueryContext(ctx, `SELECT o.status, COUNT(*)
		FROM outcomes o JOIN sessions se ON o.session_id = se.id
		WHERE se.run_id = ? GROUP BY o.status`, run.ID)
	if err != nil {
		return fmt.Errorf("query status counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var status string
		var n int
		if err := rows.Scan(&status, &n); err != nil {
			return fmt.Errorf("scan status count: %w", err)
		}
		run.Counts[models.OutcomeStatus(status)] = n
	}
	return rows.Err()
}

// MetricStats counts outcomes per metric by status. An empty runID counts
// across every recorded run.
func (s *Store) MetricStats(ctx context.Context, runID string) ([]MetricStat, error) {
	query := `SELECT o.metric,
		SUM(CASE WHEN o.status = 'ok' THEN 1 ELSE 0 END),
		SUM(CASE WHEN o.status = 'failed' THEN 1 ELSE 0 END),
		SUM(CASE WHEN o.status = 'no_presses' THEN 1 ELSE 0 END),
		SUM(CASE WHEN o.status = 'skipped' THEN 1 ELSE 0 END)
		FROM outcomes o JOIN sessions se ON o.session_id = se.id`
	var args []interface{}
	if runID != "" {
		query += ` WHERE se.run_id = ?`
		args = append(args, runID)
	}
	query += ` GROUP BY o.metric ORDER BY o.metric`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query metric stats: %w", err)
	}
	defer rows.Close()

	var stats []MetricStat
	for rows.Next() {
		var m MetricStat
		if err := rows.Scan(&m.Metric, &m.OK, &m.Failed, &m.NoPresses, &m.Skipped); err != nil {
			return nil, fmt.Errorf("scan metric stat: %w", err)
		}
		stats = append(stats, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate metric stats: %w", err)
	}
	return stats, nil
}

// History returns recorded outcomes matching q, newest run first.
func (s *Store) History(ctx context.Context, q HistoryQuery) ([]HistoryEntry, error) {
	query := `SELECT r.id, r.started_at, se.path, COALESCE(se.subject, ''), COALESCE(se.start_date, ''),
		o.metric, o.status, COALESCE(o.metric_values, ''), COALESCE(o.error_message, '')
		FROM outcomes o
		JOIN sessions se ON o.session_id = se.id
		JOIN runs r ON se.run_id = r.id`

	var conds []string
	var args []interface{}
	if q.Subject != "" {
		conds = append(conds, "se.subject = ?")
		args = append(args, q.Subject)
	}
	if q.Metric != "" {
		conds = append(conds, "o.metric = ?")
		args = append(args, q.Metric)
	}
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	query += " ORDER BY r.started_at DESC, se.id, o.id"
	if q.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var entries []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		var status, valuesJSON string
		if err := rows.Scan(&e.RunID, &e.StartedAt, &e.Path, &e.Subject, &e.StartDate,
			&e.Metric, &status, &valuesJSON, &e.Error); err != nil {
			return nil, fmt.Errorf("scan history: %w", err)
		}
		e.Status = models.OutcomeStatus(status)
		if valuesJSON != "" && valuesJSON != "{}" {
			if err := json.Unmarshal([]byte(valuesJSON), &e.Values); err != nil {
				return nil, fmt.Errorf("unmarshal values of %s: %w", e.Metric, err)
			}
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return entries, nil
}
