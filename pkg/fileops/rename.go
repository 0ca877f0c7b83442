package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// RenamePair describes one planned rename.
type RenamePair struct {
	OldPath string
	NewPath string
}

// PlanRename expands pattern for each path and returns the renames that
// would change a name. Placeholders: {n} original name without extension,
// {d} date as YYYYMMDD, {t} time as HHMMSS, {r} four random letters per
// file. The extension is preserved. Paths whose expansion equals the
// current name are skipped.
func PlanRename(paths []string, pattern string) ([]RenamePair, error) {
	if pattern == "" {
		return nil, fmt.Errorf("rename pattern cannot be empty")
	}

	now := time.Now()
	pairs := make([]RenamePair, 0, len(paths))
	for _, path := range paths {
		base := filepath.Base(path)
		ext := filepath.Ext(base)
		stem := strings.TrimSuffix(base, ext)

		name := strings.ReplaceAll(pattern, "{n}", stem)
		name = strings.ReplaceAll(name, "{d}", now.Format("20060102"))
		name = strings.ReplaceAll(name, "{t}", now.Format("150405"))
		name = strings.ReplaceAll(name, "{r}", randomLetters(4))

		newPath := filepath.Join(filepath.Dir(path), name+ext)
		if newPath == path {
			continue
		}
		pairs = append(pairs, RenamePair{OldPath: path, NewPath: newPath})
	}

	return pairs, nil
}

// BatchRename plans and applies renames for paths. Per-file failures are
// logged and counted; the loop continues.
func BatchRename(paths []string, pattern string) (renamed, failed int, err error) {
	pairs, err := PlanRename(paths, pattern)
	if err != nil {
		return 0, 0, err
	}
	renamed, failed = ApplyRename(pairs)
	return renamed, failed, nil
}

// ApplyRename performs planned renames, logging and counting per-file
// failures without stopping.
func ApplyRename(pairs []RenamePair) (renamed, failed int) {
	for _, pair := range pairs {
		if err := os.Rename(pair.OldPath, pair.NewPath); err != nil {
			logging.Errorf("rename %s failed: %v", pair.OldPath, err)
			failed++
			continue
		}
		logging.Debug("file renamed", map[string]interface{}{
			"from": pair.OldPath,
			"to":   pair.NewPath,
		})
		renamed++
	}
	return renamed, failed
}
