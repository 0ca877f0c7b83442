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

func handleRenameCommand(args []string) {
	fs := flag.NewFlagSet("rename", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		pattern    = fs.String("pattern", "", "Name pattern with {n} {d} {t} {r} placeholders (required)")
		recursive  = fs.Bool("recursive", false, "Recurse into subdirectories")
		extensions = fs.String("ext", "", "Comma-separated extension filter, or 'all' (default from config)")
		dryRun     = fs.Bool("dry-run", false, "Show the planned renames without applying them")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu rename [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Rename every matching file under <folder> using -pattern. Placeholders:")
		fmt.Fprintln(os.Stderr, "  {n}  original name without extension")
		fmt.Fprintln(os.Stderr, "  {d}  date as YYYYMMDD")
		fmt.Fprintln(os.Stderr, "  {t}  time as HHMMSS")
		fmt.Fprintln(os.Stderr, "  {r}  four random letters per file")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	dir := fs.Arg(0)

	if *pattern == "" {
		fail(fmt.Errorf("missing required -pattern"))
	}

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
	opts.MaxSize = 0 // renaming does not read content, size is irrelevant

	files, err := scan.Walk(dir, opts)
	if err != nil {
		fail(err)
	}
	paths := make([]string, len(files))
	for i, f := range files {
		paths[i] = f.Path
	}

	pairs, err := fileops.PlanRename(paths, *pattern)
	if err != nil {
		fail(err)
	}
	if len(pairs) == 0 {
		fmt.Println("Nothing to rename.")
		return
	}

	if *dryRun {
		if *jsonOutput {
			results := make([]util.RenameResult, len(pairs))
			for i, p := range pairs {
				results[i] = util.RenameResult{From: p.OldPath, To: p.NewPath}
			}
			util.PrintJSONSuccess(results)
			return
		}
		for _, p := range pairs {
			fmt.Printf("%s -> %s\n", p.OldPath, p.NewPath)
		}
		fmt.Printf("\n%d renames planned (dry run, nothing changed)\n", len(pairs))
		return
	}

	start := time.Now()
	renamed, failed := fileops.ApplyRename(pairs)
	logging.Info("Rename complete", map[string]interface{}{
		"folder":  dir,
		"renamed": renamed,
		"failed":  failed,
	})

	recordRecentFolder(cfg, configPath, dir)
	if *jsonOutput {
		util.PrintJSONSuccess(util.RunResult{
			RunID:     newRunID(),
			Command:   "rename",
			Total:     len(pairs),
			Processed: renamed,
			Errors:    failed,
			Duration:  time.Since(start).Round(time.Millisecond).String(),
		})
		return
	}
	fmt.Printf("rename: %d/%d renamed, %d errors\n", renamed, len(pairs), failed)
}
