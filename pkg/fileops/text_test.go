package fileops

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInsertTextStart(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "line1\nline2")

	if err := InsertText(path, "added", PositionStart, false); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if got := readFile(t, path); got != "added\nline1\nline2" {
		t.Errorf("Unexpected content: %q", got)
	}
}

func TestInsertTextEnd(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "line1\nline2")

	if err := InsertText(path, "added", PositionEnd, false); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}
	if got := readFile(t, path); got != "line1\nline2\nadded" {
		t.Errorf("Unexpected content: %q", got)
	}
}

func TestInsertTextRandom(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "one\ntwo\nthree")

	if err := InsertText(path, "added", PositionRandom, false); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	lines := strings.Split(readFile(t, path), "\n")
	if len(lines) != 4 {
		t.Fatalf("Expected 4 lines, got %d: %q", len(lines), lines)
	}
	found := false
	for _, line := range lines {
		if line == "added" {
			found = true
		}
	}
	if !found {
		t.Errorf("Inserted text not present as its own line: %q", lines)
	}
}

func TestInsertTextWithBackup(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "a.txt", "original")

	if err := InsertText(path, "added", PositionStart, true); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	backups, err := filepath.Glob(path + "_*" + BackupSuffix)
	if err != nil || len(backups) != 1 {
		t.Fatalf("Expected one backup, got %v (%v)", backups, err)
	}
	if got := readFile(t, backups[0]); got != "original" {
		t.Errorf("Backup should hold pre-edit content, got %q", got)
	}
	if got := readFile(t, path); got != "added\noriginal" {
		t.Errorf("Unexpected edited content: %q", got)
	}
}

func TestInsertTextMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.txt")
	if err := InsertText(path, "x", PositionStart, false); err == nil {
		t.Error("Expected error for missing file")
	}
	// With backup requested the failure comes from the backup step
	if err := InsertText(path, "x", PositionStart, true); err == nil {
		t.Error("Expected error for missing file with backup")
	}
}

func TestInsertTextPreservesMode(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.txt", "data")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatal(err)
	}

	if err := InsertText(path, "x", PositionEnd, false); err != nil {
		t.Fatalf("InsertText failed: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Expected mode 0600 preserved, got %v", info.Mode().Perm())
	}
}

func TestParseInsertPosition(t *testing.T) {
	for _, valid := range []string{"start", "end", "random", "START"} {
		if _, err := ParseInsertPosition(valid); err != nil {
			t.Errorf("ParseInsertPosition(%q) failed: %v", valid, err)
		}
	}
	if _, err := ParseInsertPosition("middle"); err == nil {
		t.Error("Expected error for invalid position")
	}
}
