package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/scan"
	"github.com/cons0leweb/cons0leweb-utils/pkg/util"
)

func handleCleanCommand(args []string) {
	fs := flag.NewFlagSet("clean", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		recursive  = fs.Bool("recursive", true, "Recurse into subdirectories")
		extensions = fs.String("ext", "all", "Comma-separated extension filter, or 'all'")
		yes        = fs.Bool("yes", false, "Skip the confirmation prompt")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu clean [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Delete zero-byte files under <folder>. Every file is checked again")
		fmt.Fprintln(os.Stderr, "right before deletion, so files that gained content survive.")
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

	opts, err := scanOptions(cfg, *extensions, "", *recursive)
	if err != nil {
		fail(err)
	}
	opts.MaxSize = 0 // only empty files are deleted, a size cap makes no sense

	files, err := scan.Walk(dir, opts)
	if err != nil {
		fail(err)
	}

	var empties []string
	for _, f := range files {
		if f.Size == 0 {
			empties = append(empties, f.Path)
		}
	}
	if len(empties) == 0 {
		fmt.Println("No empty files found.")
		return
	}

	if !*yes {
		ok, err := util.Confirm(fmt.Sprintf("Delete %d empty files under %s?", len(empties), dir))
		if err != nil {
			fail(err)
		}
		if !ok {
			fmt.Println("Aborted.")
			return
		}
	}

	start := time.Now()
	deleted, failed := fileops.DeleteEmptyFiles(empties)
	logging.Info("Clean complete", map[string]interface{}{
		"folder":  dir,
		"deleted": deleted,
		"failed":  failed,
	})

	recordRecentFolder(cfg, configPath, dir)
	if *jsonOutput {
		util.PrintJSONSuccess(util.RunResult{
			RunID:     newRunID(),
			Command:   "clean",
			Total:     len(empties),
			Processed: deleted,
			Errors:    failed,
			Duration:  time.Since(start).Round(time.Millisecond).String(),
		})
		return
	}
	fmt.Printf("clean: %d/%d deleted, %d errors\n", deleted, len(empties), failed)
}
