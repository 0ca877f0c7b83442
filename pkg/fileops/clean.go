package fileops

import (
	"os"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// DeleteEmptyFiles removes the zero-byte files among paths. Sizes are
// checked at deletion time, not trusted from an earlier walk. Per-file
// failures are logged and counted; the loop continues.
func DeleteEmptyFiles(paths []string) (deleted, failed int) {
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logging.Errorf("stat %s failed: %v", path, err)
			failed++
			continue
		}
		if info.Size() != 0 || !info.Mode().IsRegular() {
			continue
		}

		if err := os.Remove(path); err != nil {
			logging.Errorf("delete %s failed: %v", path, err)
			failed++
			continue
		}
		logging.Debug("empty file deleted", map[string]interface{}{"path": path})
		deleted++
	}
	return deleted, failed
}
