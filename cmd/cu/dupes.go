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

func handleDupesCommand(args []string) {
	fs := flag.NewFlagSet("dupes", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		algorithm  = fs.String("algo", "", "Hash algorithm: md5, sha1, sha256, sha512, blake2b (default from config)")
		recursive  = fs.Bool("recursive", false, "Recurse into subdirectories")
		extensions = fs.String("ext", "", "Comma-separated extension filter, or 'all' (default from config)")
		maxSize    = fs.String("max-size", "", "Skip files larger than this, e.g. 10MB (default from config)")
		noIndex    = fs.Bool("no-index", false, "Recompute every digest, bypassing the hash index")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu dupes [options] <folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Group files under <folder> with identical content. The first file seen")
		fmt.Fprintln(os.Stderr, "with a given content is the original, the rest are duplicates.")
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

	algo := cfg.Checksum.Algorithm
	if *algorithm != "" {
		algo = *algorithm
	}
	if !knownAlgorithm(algo) {
		fail(fmt.Errorf("unsupported checksum algorithm %q", algo))
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

	paths := make([]string, len(files))
	sizes := make(map[string]int64, len(files))
	for i, f := range files {
		paths[i] = f.Path
		sizes[f.Path] = f.Size
	}

	hashFile, idx := checksumHasher(cfg, algo, *noIndex)

	start := time.Now()
	groups := fileops.FindDuplicates(paths, hashFile)
	saveIndex(idx)
	recordRecentFolder(cfg, configPath, dir)

	logging.Info("Duplicate scan complete", map[string]interface{}{
		"folder":   dir,
		"scanned":  len(files),
		"groups":   len(groups),
		"duration": time.Since(start).Round(time.Millisecond).String(),
	})

	if *jsonOutput {
		results := make([]util.DuplicateGroupResult, len(groups))
		for i, g := range groups {
			var wasted int64
			for _, p := range g.Paths[1:] {
				wasted += sizes[p]
			}
			results[i] = util.DuplicateGroupResult{
				Hash:        g.Hash,
				Original:    g.Paths[0],
				Duplicates:  g.Paths[1:],
				WastedBytes: wasted,
			}
		}
		util.PrintJSONSuccess(results)
		return
	}

	if len(groups) == 0 {
		fmt.Println("No duplicates found.")
		return
	}

	var wastedTotal int64
	for _, g := range groups {
		fmt.Printf("%s %s\n", algo, g.Hash)
		fmt.Printf("  original:  %s\n", g.Paths[0])
		for _, p := range g.Paths[1:] {
			fmt.Printf("  duplicate: %s\n", p)
			wastedTotal += sizes[p]
		}
	}
	fmt.Printf("\n%d duplicate groups, %s wasted\n", len(groups), util.FormatSize(wastedTotal))
}
