package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/scan"
	"github.com/cons0leweb/cons0leweb-utils/pkg/workers"
)

func handleInsertCommand(args []string) {
	fs := flag.NewFlagSet("insert", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		text       = fs.String("text", "", "Text to insert (required)")
		position   = fs.String("position", "end", "Insert position: start, end or random")
		noBackup   = fs.Bool("no-backup", false, "Skip the per-file backup before editing")
		recursive  = fs.Bool("recursive", false, "Recurse into subdirectories")
		extensions = fs.String("ext", "", "Comma-separated extension filter, or 'all' (default from config)")
		maxSize    = fs.String("max-size", "", "Skip files larger than this, e.g. 10MB (default from config)")
		numWorkers = fs.Int("workers", 0, "Worker count (default from config)")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu insert [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Insert text into every matching file under <folder>.")
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
	files, err := scan.Walk(dir, opts)
	if err != nil {
		fail(err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found.")
		return
	}

	withBackup := cfg.Backup.OnInsert && !*noBackup
	tasks := make([]workers.Task, len(files))
	for i, f := range files {
		tasks[i] = &workers.InsertTask{
			Path:       f.Path,
			Text:       *text,
			Position:   pos,
			WithBackup: withBackup,
		}
	}

	runID := newRunID()
	logging.Info("Run started", map[string]interface{}{
		"run_id":  runID,
		"command": "insert",
		"folder":  dir,
		"files":   len(files),
	})

	start := time.Now()
	progress, err := runEngine("Inserting", workerCount(cfg, *numWorkers), tasks)
	if err != nil {
		fail(err)
	}

	recordRecentFolder(cfg, configPath, dir)
	printRunSummary("insert", runID, progress, time.Since(start), *jsonOutput)
}
