package main

import (
	"fmt"
	"os"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/util"
	"github.com/cons0leweb/cons0leweb-utils/pkg/workers"
)

const progressPollInterval = 500 * time.Millisecond

// newRunID returns a sortable unique identifier for one bulk run
func newRunID() string {
	return ulid.Make().String()
}

// runEngine drains the given tasks through a worker pool, rendering a
// progress bar when stderr is a terminal, and returns the final counts.
// Individual task failures are counted, not returned.
func runEngine(prefix string, count int, tasks []workers.Task) (workers.Progress, error) {
	pool := workers.NewPool(nil)
	if err := pool.Start(count); err != nil {
		return workers.Progress{}, err
	}

	for _, task := range tasks {
		pool.Add(task)
	}

	var bar *util.ProgressBar
	if util.IsTerminal(os.Stderr) {
		bar = util.NewProgressBar(prefix, os.Stderr)
	}

	ticker := time.NewTicker(progressPollInterval)
	defer ticker.Stop()

	for {
		progress := pool.Progress()
		if bar != nil {
			bar.Update(progress.Processed+progress.Errors, progress.Total, progress.Errors)
		}
		if progress.Done() {
			break
		}
		<-ticker.C
	}

	pool.Stop()
	if bar != nil {
		bar.Finish()
	}

	return pool.Progress(), nil
}

// printRunSummary reports one finished bulk run on stdout.
func printRunSummary(command, runID string, progress workers.Progress, elapsed time.Duration, jsonOutput bool) {
	logging.Info("Run complete", map[string]interface{}{
		"run_id":    runID,
		"command":   command,
		"total":     progress.Total,
		"processed": progress.Processed,
		"errors":    progress.Errors,
		"duration":  elapsed.Round(time.Millisecond).String(),
	})

	if jsonOutput {
		util.PrintJSONSuccess(util.RunResult{
			RunID:     runID,
			Command:   command,
			Total:     progress.Total,
			Processed: progress.Processed,
			Errors:    progress.Errors,
			Duration:  elapsed.Round(time.Millisecond).String(),
		})
		return
	}

	fmt.Printf("%s: %s in %s (run %s)\n",
		command, progress.String(), util.FormatDuration(elapsed), runID)
}
