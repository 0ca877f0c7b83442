package main

import (
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/scan"
	"github.com/cons0leweb/cons0leweb-utils/pkg/workers"
)

func handleWatchCommand(args []string) {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		text       = fs.String("text", "", "Text to insert (required)")
		position   = fs.String("position", "end", "Insert position: start, end or random")
		noBackup   = fs.Bool("no-backup", false, "Skip the per-file backup before editing")
		recursive  = fs.Bool("recursive", false, "Watch subdirectories too, including new ones")
		extensions = fs.String("ext", "", "Comma-separated extension filter, or 'all' (default from config)")
		maxSize    = fs.String("max-size", "", "Skip files larger than this, e.g. 10MB (default from config)")
		numWorkers = fs.Int("workers", 0, "Worker count (default from config)")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu watch [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Watch <folder> and insert text into matching files as they show up.")
		fmt.Fprintln(os.Stderr, "Runs until interrupted.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	dir := fs.Arg(0)

	if *text == "" {
		fail(fmt.Errorf("missing required -text"))
	}
	pos, err := fileops.ParseInsertPosition(*position)
	if err != nil {
		fail(err)
	}

	configPath := resolveConfigPath(*configFile)
	cfg, err := loadConfig(configPath)
	if err != nil {
		fail(err)
	}
	if err := setupLogging(cfg); err != nil {
		fail(err)
	}

	opts, err := scanOptions(cfg, *extensions, *maxSize, *recursive)
	if err != nil {
		fail(err)
	}

	pool := workers.NewPool(nil)
	if err := pool.Start(workerCount(cfg, *numWorkers)); err != nil {
		fail(err)
	}

	watcher, err := scan.NewWatcher(opts)
	if err != nil {
		fail(err)
	}
	if err := watcher.Watch(dir); err != nil {
		fail(err)
	}
	recordRecentFolder(cfg, configPath, dir)

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)

	withBackup := cfg.Backup.OnInsert && !*noBackup
	runID := newRunID()
	logging.Info("Watch started", map[string]interface{}{
		"run_id": runID,
		"folder": dir,
	})
	fmt.Printf("Watching %s, press Ctrl-C to stop\n", dir)

	// Each path is stamped at most once per session. The insert's own
	// write lands as another event for the same path and must not loop.
	stamped := make(map[string]bool)
	start := time.Now()

loop:
	for {
		select {
		case f, ok := <-watcher.Events():
			if !ok {
				break loop
			}
			if stamped[f.Path] {
				continue
			}
			stamped[f.Path] = true
			pool.Add(&workers.InsertTask{
				Path:       f.Path,
				Text:       *text,
				Position:   pos,
				WithBackup: withBackup,
			})
			fmt.Printf("  queued %s\n", f.Path)
		case werr, ok := <-watcher.Errors():
			if !ok {
				break loop
			}
			logging.Warnf("Watch error: %v", werr)
		case <-sigCh:
			break loop
		}
	}

	fmt.Println("\nStopping...")
	if err := watcher.Stop(); err != nil {
		logging.Warnf("Watcher shutdown: %v", err)
	}
	pool.Stop()

	progress := pool.Progress()
	printRunSummary("watch", runID, progress, time.Since(start), false)
}
