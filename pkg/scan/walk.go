package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/fileops"
	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// File is one discovered regular file
type File struct {
	Path    string
	Size    int64
	ModTime time.Time
}

// Options filter discovery. Extensions is an allow-list compared case
// insensitively; empty means every extension. MaxSize caps file size in
// bytes, zero means no cap. Recursive extends discovery below the top
// level of the scanned directory.
type Options struct {
	Extensions []string
	MaxSize    int64
	Recursive  bool
}

// NormalizeExtensions lowercases extensions and ensures the leading dot, so
// "TXT", ".txt", and " txt " all mean the same filter entry. Empty entries
// are dropped.
func NormalizeExtensions(exts []string) []string {
	normalized := make([]string, 0, len(exts))
	for _, ext := range exts {
		ext = strings.ToLower(strings.TrimSpace(ext))
		if ext == "" {
			continue
		}
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		normalized = append(normalized, ext)
	}
	return normalized
}

// matches reports whether a regular file passes the filter. Extensions must
// already be normalized.
func (o Options) matches(path string, size int64) bool {
	if o.MaxSize > 0 && size > o.MaxSize {
		return false
	}
	if len(o.Extensions) == 0 {
		return true
	}
	ext := strings.ToLower(filepath.Ext(path))
	for _, allowed := range o.Extensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

// Walk collects the regular files under root that pass opts, in walk order.
// Entries that cannot be read are logged and skipped; a missing or
// unreadable root fails the whole walk.
func Walk(root string, opts Options) ([]File, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan %s: not a directory", root)
	}

	opts.Extensions = NormalizeExtensions(opts.Extensions)

	var files []File
	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logging.Warnf("cannot access %s: %v", path, err)
			return nil
		}

		if info.IsDir() {
			if !opts.Recursive && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		if !opts.matches(path, info.Size()) {
			return nil
		}

		files = append(files, File{Path: path, Size: info.Size(), ModTime: info.ModTime()})
		return nil
	})
	if err != nil {
		return nil, err
	}

	logging.Debug("scan complete", map[string]interface{}{
		"root":  root,
		"files": len(files),
	})
	return files, nil
}

// FindBackups collects the backup copies under root. Backups are always
// searched recursively so a restore reaches the whole tree regardless of how
// the edits that created them were scoped.
func FindBackups(root string) ([]string, error) {
	if _, err := os.Stat(root); err != nil {
		return nil, fmt.Errorf("scan %s: %w", root, err)
	}

	var backups []string
	err := filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			logging.Warnf("cannot access %s: %v", path, err)
			return nil
		}
		if info.Mode().IsRegular() && strings.HasSuffix(path, fileops.BackupSuffix) {
			backups = append(backups, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return backups, nil
}
