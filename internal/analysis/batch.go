package analysis

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/harrison/operant/internal/models"
	"golang.org/x/sync/errgroup"
)

// Run analyzes every path concurrently and aggregates the results in input order.
// It handles SIGINT/SIGTERM by cancelling sessions that have not started;
// those sessions are recorded as skipped and the context error is returned
// alongside the partial result.
func (a *Analyzer) Run(ctx context.Context, paths []string) (*models.BatchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(sigChan)

	go func() {
		select {
		case <-sigChan:
			fmt.Fprintln(os.Stderr, "\nReceived interrupt signal, finishing running sessions...")
			cancel()
		case <-ctx.Done():
		}
	}()

	startTime := time.Now()
	batch := &models.BatchResult{
		RunID:        uuid.NewString(),
		StartedAt:    startTime,
		TimeScale:    a.timeScale,
		TableVersion: a.table.Version(),
		Sessions:     make([]models.SessionResult, len(paths)),
	}
	ran := make([]bool, len(paths))

	var done atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	if a.maxConcurrency > 0 {
		g.SetLimit(a.maxConcurrency)
	}

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			a.logger.LogSessionStart(path)
			result := a.AnalyzeFile(path)
			batch.Sessions[i] = result
			ran[i] = true

			// A logging failure must not drop the session
			_ = a.logger.LogSessionResult(result)

			if a.progress != nil {
				a.progress(int(done.Add(1)), len(paths))
			}
			return nil
		})
	}

	err := g.Wait()
	for i, path := range paths {
		if !ran[i] {
			cause := err
			if cause == nil {
				cause = context.Canceled
			}
			batch.Sessions[i] = skipped(models.SessionResult{Session: models.SessionInfo{Path: path}}, cause)
		}
	}

	batch.Duration = time.Since(startTime)
	a.logger.LogSummary(*batch)

	if err != nil {
		return batch, fmt.Errorf("analysis interrupted: %w", err)
	}
	return batch, nil
}
