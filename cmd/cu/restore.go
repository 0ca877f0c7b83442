package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/scan"
	"github.com/cons0leweb/cons0leweb-utils/pkg/util"
	"github.com/cons0leweb/cons0leweb-utils/pkg/workers"
)

func handleRestoreCommand(args []string) {
	fs := flag.NewFlagSet("restore", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		numWorkers = fs.Int("workers", 0, "Worker count (default from config)")
		yes        = fs.Bool("yes", false, "Skip the confirmation prompt")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu restore [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Find every backup under <folder> and copy it over the file it was")
		fmt.Fprintln(os.Stderr, "taken from. The backup files themselves are kept.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	dir := fs.Arg(0)

	configPath := resolveConfigPath(*configFile)
	cfg, err := loadConfig(configPath)
	if err != nil {
		fail(err)
	}
	if err := setupLogging(cfg); err != nil {
		fail(err)
	}

	backups, err := scan.FindBackups(dir)
	if err != nil {
		fail(err)
	}
	if len(backups) == 0 {
		fmt.Println("No backups found.")
		return
	}

	if !*yes {
		ok, err := util.Confirm(fmt.Sprintf("Overwrite %d files from their backups under %s?", len(backups), dir))
		if err != nil {
			fail(err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return
		}
	}

	tasks := make([]workers.Task, len(backups))
	for i, b := range backups {
		tasks[i] = &workers.RestoreTask{BackupPath: b}
	}

	runID := newRunID()
	logging.Info("Run started", map[string]interface{}{
		"run_id":  runID,
		"command": "restore",
		"folder":  dir,
		"backups": len(backups),
	})

	start := time.Now()
	progress, err := runEngine("Restoring", workerCount(cfg, *numWorkers), tasks)
	if err != nil {
		fail(err)
	}

	recordRecentFolder(cfg, configPath, dir)
	printRunSummary("restore", runID, progress, time.Since(start), *jsonOutput)
}
