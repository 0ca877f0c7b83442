package index

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

// HashEntry is one cached checksum. Size and ModTime record the file state
// the sum was computed from; a lookup only hits while both still match.
type HashEntry struct {
	Size      int64  `msgpack:"size"`
	ModTimeNs int64  `msgpack:"mtime_ns"`
	Algorithm string `msgpack:"algo"`
	Sum       string `msgpack:"sum"`
}

// HashIndex caches file checksums across runs so unchanged files are not
// re-hashed. The on-disk form is msgpack.
type HashIndex struct {
	Version string               `msgpack:"version"`
	Entries map[string]HashEntry `msgpack:"entries"`

	// Runtime fields
	mu       sync.RWMutex
	filePath string
	dirty    bool
	hits     int
	misses   int
}

// NewHashIndex creates an empty index backed by indexPath
func NewHashIndex(indexPath string) *HashIndex {
	return &HashIndex{
		Version:  "1.0",
		Entries:  make(map[string]HashEntry),
		filePath: indexPath,
	}
}

// GetDefaultIndexPath returns the default index file location
func GetDefaultIndexPath() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(homeDir, ".cons0leweb", "hashindex.msgpack"), nil
}

// Load reads the index from disk. A missing file starts an empty index.
func (idx *HashIndex) Load() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, err := os.Stat(idx.filePath); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(idx.filePath)
	if err != nil {
		return fmt.Errorf("failed to read index file: %w", err)
	}

	var loaded HashIndex
	if err := msgpack.Unmarshal(data, &loaded); err != nil {
		return fmt.Errorf("failed to parse index file: %w", err)
	}

	if loaded.Entries != nil {
		idx.Entries = loaded.Entries
	}
	idx.Version = loaded.Version
	idx.dirty = false

	return nil
}

// Save writes the index to disk if it changed since the last load or save.
// The write goes to a temporary file first so a crash never truncates the
// existing index.
func (idx *HashIndex) Save() error {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if !idx.dirty {
		return nil
	}

	dir := filepath.Dir(idx.filePath)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	data, err := msgpack.Marshal(idx)
	if err != nil {
		return fmt.Errorf("failed to marshal index: %w", err)
	}

	tmpPath := idx.filePath + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0600); err != nil {
		return fmt.Errorf("failed to write index file: %w", err)
	}

	if err := os.Rename(tmpPath, idx.filePath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename index file: %w", err)
	}

	idx.dirty = false
	return nil
}

// Lookup returns the cached sum for path when the entry's recorded size,
// modification time, and algorithm all match the supplied ones.
func (idx *HashIndex) Lookup(path string, size int64, modTime time.Time, algorithm string) (string, bool) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	entry, exists := idx.Entries[path]
	if !exists || entry.Size != size || entry.ModTimeNs != modTime.UnixNano() || entry.Algorithm != algorithm {
		idx.misses++
		return "", false
	}

	idx.hits++
	return entry.Sum, true
}

// Store records a freshly computed sum together with the file state it was
// computed from.
func (idx *HashIndex) Store(path string, size int64, modTime time.Time, algorithm, sum string) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	idx.Entries[path] = HashEntry{
		Size:      size,
		ModTimeNs: modTime.UnixNano(),
		Algorithm: algorithm,
		Sum:       sum,
	}
	idx.dirty = true
}

// Remove drops a path from the index
func (idx *HashIndex) Remove(path string) bool {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	if _, exists := idx.Entries[path]; exists {
		delete(idx.Entries, path)
		idx.dirty = true
		return true
	}
	return false
}

// Size returns the number of cached entries
func (idx *HashIndex) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.Entries)
}

// IsDirty returns whether the index has unsaved changes
func (idx *HashIndex) IsDirty() bool {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.dirty
}

// Stats returns lookup hit and miss counts for this process
func (idx *HashIndex) Stats() (hits, misses int) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.hits, idx.misses
}

// GetIndexPath returns the file path of the index
func (idx *HashIndex) GetIndexPath() string {
	return idx.filePath
}

// CachedChecksum wraps compute with index lookups keyed on the file's
// current size and modification time. Stale or missing entries fall through
// to compute and the result is stored. Stat failures go straight to compute
// so the caller sees the underlying error.
func CachedChecksum(idx *HashIndex, algorithm string, compute func(path string) (string, error)) func(path string) (string, error) {
	return func(path string) (string, error) {
		info, err := os.Stat(path)
		if err != nil {
			return compute(path)
		}

		if sum, ok := idx.Lookup(path, info.Size(), info.ModTime(), algorithm); ok {
			return sum, nil
		}

		sum, err := compute(path)
		if err != nil {
			return "", err
		}
		idx.Store(path, info.Size(), info.ModTime(), algorithm, sum)
		return sum, nil
	}
}
