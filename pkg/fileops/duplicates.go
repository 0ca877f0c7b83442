package fileops

import (
	"encoding/binary"
	"os"

	"github.com/bits-and-blooms/bloom/v3"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// HashFunc computes the content hash of one file. Callers may pass a plain
// Checksum closure or an index-backed cached variant.
type HashFunc func(path string) (string, error)

// DuplicateGroup lists files with identical content. The first entry is the
// original, the earliest seen in input order.
type DuplicateGroup struct {
	Hash  string
	Paths []string
}

// FindDuplicates groups paths by content hash. Files with a unique size
// cannot have a duplicate, so a first pass records every size in a Bloom
// filter and only files whose size was seen again are hashed. Bloom false
// positives just cost an extra hash, never a missed duplicate. Unreadable
// files are logged and skipped.
func FindDuplicates(paths []string, hashFile HashFunc) []DuplicateGroup {
	sizes := make(map[string]int64, len(paths))
	repeated := make(map[int64]bool)

	filter := bloom.NewWithEstimates(uint(len(paths))+1, 0.01)
	var key [8]byte
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			logging.Errorf("stat %s failed: %v", path, err)
			continue
		}
		sizes[path] = info.Size()

		binary.LittleEndian.PutUint64(key[:], uint64(info.Size()))
		if filter.TestAndAdd(key[:]) {
			repeated[info.Size()] = true
		}
	}

	// Hash the candidates in input order so the first file of each group
	// stays the original.
	byHash := make(map[string]int)
	var groups []DuplicateGroup
	for _, path := range paths {
		size, ok := sizes[path]
		if !ok || !repeated[size] {
			continue
		}

		sum, err := hashFile(path)
		if err != nil {
			logging.Errorf("hash %s failed: %v", path, err)
			continue
		}

		if i, seen := byHash[sum]; seen {
			groups[i].Paths = append(groups[i].Paths, path)
			continue
		}
		byHash[sum] = len(groups)
		groups = append(groups, DuplicateGroup{Hash: sum, Paths: []string{path}})
	}

	// Drop the groups that never got a second member
	result := groups[:0]
	for _, g := range groups {
		if len(g.Paths) > 1 {
			result = append(result, g)
		}
	}
	return result
}
