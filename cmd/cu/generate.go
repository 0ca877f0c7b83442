package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/workers"
)

func handleGenerateCommand(args []string) {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		count      = fs.Int("count", 0, "Number of files to create (required)")
		extension  = fs.String("ext", "txt", "Extension for the created files")
		naming     = fs.String("naming", "random", "Naming scheme: random or sequential")
		content    = fs.String("content", "", "File content (default is a generated filler)")
		numWorkers = fs.Int("workers", 0, "Worker count (default from config)")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu generate [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Create dummy files in <folder>, making the folder if needed.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	dir := fs.Arg(0)

	if *count <= 0 {
		fail(fmt.Errorf("-count must be a positive number"))
	}
	scheme, err := fileops.ParseNamingScheme(*naming)
	if err != nil {
		fail(err)
	}
	ext := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(*extension)), ".")
	if ext == "" {
		fail(fmt.Errorf("-ext cannot be empty"))
	}

	configPath := resolveConfigPath(*configFile)
	cfg, err := loadConfig(configPath)
	if err != nil {
		fail(err)
	}
	if err := setupLogging(cfg); err != nil {
		fail(err)
	}

	tasks := make([]workers.Task, *count)
	for i := range tasks {
		tasks[i] = &workers.GenerateTask{
			Dir:       dir,
			Extension: ext,
			Naming:    scheme,
			Content:   *content,
		}
	}

	runID := newRunID()
	logging.Info("Run started", map[string]interface{}{
		"run_id":  runID,
		"command": "generate",
		"folder":  dir,
		"count":   *count,
	})

	start := time.Now()
	progress, err := runEngine("Generating", workerCount(cfg, *numWorkers), tasks)
	if err != nil {
		fail(err)
	}

	recordRecentFolder(cfg, configPath, dir)
	printRunSummary("generate", runID, progress, time.Since(start), *jsonOutput)
}
