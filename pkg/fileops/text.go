package fileops

import (
	"fmt"
	"math/rand"
	"os"
	"strings"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// InsertPosition selects where inserted text lands in a file
type InsertPosition string

const (
	PositionStart  InsertPosition = "start"
	PositionEnd    InsertPosition = "end"
	PositionRandom InsertPosition = "random"
)

// ParseInsertPosition parses a position flag value
func ParseInsertPosition(s string) (InsertPosition, error) {
	switch InsertPosition(strings.ToLower(s)) {
	case PositionStart:
		return PositionStart, nil
	case PositionEnd:
		return PositionEnd, nil
	case PositionRandom:
		return PositionRandom, nil
	default:
		return "", fmt.Errorf("invalid insert position '%s'. Valid options: start, end, random", s)
	}
}

// InsertText rewrites path with text added at the requested position. Files
// are treated as UTF-8 text. Position start prepends text as its own line,
// end appends it, random inserts it as a new line at a random line index.
// With withBackup a timestamped backup is created first; a failed backup
// aborts the edit.
func InsertText(path, text string, position InsertPosition, withBackup bool) error {
	if withBackup {
		if _, err := CreateBackup(path); err != nil {
			return err
		}
	}

	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	content := string(data)

	var updated string
	switch position {
	case PositionStart:
		updated = text + "\n" + content
	case PositionEnd:
		updated = content + "\n" + text
	case PositionRandom:
		lines := strings.Split(content, "\n")
		idx := rand.Intn(len(lines) + 1)
		lines = append(lines[:idx], append([]string{text}, lines[idx:]...)...)
		updated = strings.Join(lines, "\n")
	default:
		return fmt.Errorf("invalid insert position '%s'. Valid options: start, end, random", position)
	}

	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}

	logging.Debug("text inserted", map[string]interface{}{
		"path":     path,
		"position": string(position),
	})
	return nil
}
