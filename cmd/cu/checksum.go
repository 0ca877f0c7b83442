package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/config"
	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
	"github.com/cons0leweb/cons0leweb-utils/pkg/index"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
	"github.com/cons0leweb/cons0leweb-utils/pkg/scan"
	"github.com/cons0leweb/cons0leweb-utils/pkg/util"
	"github.com/cons0leweb/cons0leweb-utils/pkg/workers"
)

func handleChecksumCommand(args []string) {
	fs := flag.NewFlagSet("checksum", flag.ExitOnError)
	var (
		configFile = fs.String("config", "", "Configuration file path")
		algorithm  = fs.String("algo", "", "Hash algorithm: md5, sha1, sha256, sha512, blake2b (default from config)")
		recursive  = fs.Bool("recursive", false, "Recurse into subdirectories")
		extensions = fs.String("ext", "", "Comma-separated extension filter, or 'all' (default from config)")
		maxSize    = fs.String("max-size", "", "Skip files larger than this, e.g. 10MB (default from config)")
		numWorkers = fs.Int("workers", 0, "Worker count (default from config)")
		noIndex    = fs.Bool("no-index", false, "Recompute every digest, bypassing the hash index")
		jsonOutput = fs.Bool("json", false, "Output in JSON format")
	)
	fs.Usage = func() {
		fmt.Fprintln(os.Stderr, "Usage: cu checksum [options] <file-or-folder>")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Print the digest of one file, or of every matching file under a folder.")
		fmt.Fprintln(os.Stderr, "Digests of unchanged files are served from the hash index.")
		fmt.Fprintln(os.Stderr, "")
		fs.PrintDefaults()
	}
	fs.Parse(args)

	if fs.NArg() != 1 {
		fs.Usage()
		os.Exit(1)
	}
	target := fs.Arg(0)

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

	hashFile, idx := checksumHasher(cfg, algo, *noIndex)

	info, err := os.Stat(target)
	if err != nil {
		fail(err)
	}

	if !info.IsDir() {
		sum, err := hashFile(target)
		if err != nil {
			fail(err)
		}
		saveIndex(idx)
		if *jsonOutput {
			util.PrintJSONSuccess([]util.ChecksumResult{{Path: target, Algorithm: algo, Sum: sum}})
			return
		}
		fmt.Printf("%s  %s\n", sum, target)
		return
	}

	opts, err := scanOptions(cfg, *extensions, *maxSize, *recursive)
	if err != nil {
		fail(err)
	}
	files, err := scan.Walk(target, opts)
	if err != nil {
		fail(err)
	}
	if len(files) == 0 {
		fmt.Println("No matching files found.")
		return
	}

	// Each task writes into its own slot, so output keeps scan order no
	// matter which worker finishes first.
	sums := make([]string, len(files))
	tasks := make([]workers.Task, len(files))
	for i, f := range files {
		tasks[i] = &workers.ChecksumTask{
			Path:      f.Path,
			Algorithm: algo,
			Hash:      hashFile,
			Result:    &sums[i],
		}
	}

	runID := newRunID()
	logging.Info("Run started", map[string]interface{}{
		"run_id":    runID,
		"command":   "checksum",
		"folder":    target,
		"files":     len(files),
		"algorithm": algo,
	})

	start := time.Now()
	progress, err := runEngine("Hashing", workerCount(cfg, *numWorkers), tasks)
	if err != nil {
		fail(err)
	}
	saveIndex(idx)
	recordRecentFolder(cfg, configPath, target)

	if *jsonOutput {
		results := make([]util.ChecksumResult, 0, len(files))
		for i, f := range files {
			if sums[i] == "" {
				continue
			}
			results = append(results, util.ChecksumResult{Path: f.Path, Algorithm: algo, Sum: sums[i]})
		}
		util.PrintJSONSuccess(struct {
			RunID  string                `json:"run_id"`
			Sums   []util.ChecksumResult `json:"sums"`
			Errors int                   `json:"errors"`
		}{RunID: runID, Sums: results, Errors: progress.Errors})
		return
	}

	for i, f := range files {
		if sums[i] == "" {
			continue
		}
		fmt.Printf("%s  %s\n", sums[i], f.Path)
	}
	fmt.Fprintf(os.Stderr, "checksum: %s in %s (run %s)\n",
		progress.String(), util.FormatDuration(time.Since(start)), runID)
}

// knownAlgorithm reports whether algo is one of the supported digests
func knownAlgorithm(algo string) bool {
	for _, a := range fileops.Algorithms {
		if a == algo {
			return true
		}
	}
	return false
}

// checksumHasher returns the hash function for this run and, when the index
// is in play, the loaded index so the caller can save it afterwards. Index
// trouble never blocks hashing; the run just degrades to plain digests.
func checksumHasher(cfg *config.Config, algo string, noIndex bool) (fileops.HashFunc, *index.HashIndex) {
	plain := func(path string) (string, error) {
		return fileops.Checksum(path, algo)
	}

	if noIndex || !cfg.Checksum.UseIndex {
		return plain, nil
	}

	indexPath := cfg.Checksum.IndexPath
	if indexPath == "" {
		def, err := index.GetDefaultIndexPath()
		if err != nil {
			logging.Warnf("No usable hash index path: %v", err)
			return plain, nil
		}
		indexPath = def
	}

	idx := index.NewHashIndex(indexPath)
	if err := idx.Load(); err != nil {
		logging.Warnf("Could not load hash index, recomputing digests: %v", err)
		idx = index.NewHashIndex(indexPath)
	}
	return index.CachedChecksum(idx, algo, plain), idx
}

// saveIndex persists the hash index, logging cache effectiveness
func saveIndex(idx *index.HashIndex) {
	if idx == nil {
		return
	}
	hits, misses := idx.Stats()
	logging.Debug("Hash index", map[string]interface{}{
		"hits":    hits,
		"misses":  misses,
		"entries": idx.Size(),
	})
	if err := idx.Save(); err != nil {
		logging.Warnf("Could not save hash index: %v", err)
	}
}
