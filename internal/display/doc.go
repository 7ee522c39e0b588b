// Package display provides terminal output for the operant CLI: warnings,
// a per-file progress indicator and tabular summaries.
//
// Color is applied with fatih/color only when the destination writer is a
// terminal, so output captured in files and tests stays plain:
//
//	progress := display.NewProgressIndicator(os.Stdout, "Validating", len(files))
//	progress.Start()
//	for _, file := range files {
//	    progress.Step(file, err == nil)
//	}
//	progress.Complete()
//
//	display.WarnDecodeFailures(batch.FailedSessions()).Display(os.Stderr)
package display
