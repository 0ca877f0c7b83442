package fileops

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"
	"time"
)

func TestBackupRestoreRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "the original content")

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}
	if got := readFile(t, backupPath); got != "the original content" {
		t.Errorf("Backup content mismatch: %q", got)
	}

	// Mangle the original, then restore
	if err := os.WriteFile(path, []byte("corrupted"), 0644); err != nil {
		t.Fatal(err)
	}

	restored, err := RestoreBackup(backupPath)
	if err != nil {
		t.Fatalf("RestoreBackup failed: %v", err)
	}
	if restored != path {
		t.Errorf("Restore target %q, want original path %q", restored, path)
	}
	if got := readFile(t, path); got != "the original content" {
		t.Errorf("Restored content mismatch: %q", got)
	}
}

func TestCreateBackupNaming(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "data")

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	name := filepath.Base(backupPath)
	pattern := regexp.MustCompile(`^doc\.txt_\d{8}_\d{6}\.bak\.cu$`)
	if !pattern.MatchString(name) {
		t.Errorf("Backup name %q does not match <name>_<stamp>%s", name, BackupSuffix)
	}

	stamp := strings.TrimSuffix(strings.TrimPrefix(name, "doc.txt_"), BackupSuffix)
	if _, err := time.Parse(timestampLayout, stamp); err != nil {
		t.Errorf("Backup stamp %q does not parse: %v", stamp, err)
	}
}

func TestCreateBackupMissingFile(t *testing.T) {
	if _, err := CreateBackup(filepath.Join(t.TempDir(), "missing.txt")); err == nil {
		t.Error("Expected error for missing source file")
	}
}

func TestOriginalPath(t *testing.T) {
	got, err := OriginalPath("/tmp/report.txt_20240105_093015.bak.cu")
	if err != nil {
		t.Fatalf("OriginalPath failed: %v", err)
	}
	if got != "/tmp/report.txt" {
		t.Errorf("OriginalPath = %q, want /tmp/report.txt", got)
	}
}

func TestOriginalPathRejectsBadNames(t *testing.T) {
	cases := []struct {
		name string
		path string
	}{
		{"no suffix", "/tmp/report.txt_20240105_093015"},
		{"no stamp", "/tmp/report.txt.bak.cu"},
		{"short stamp", "/tmp/report.txt_2024_0930.bak.cu"},
		{"garbage stamp", "/tmp/report.txt_2024AB05_09CD15.bak.cu"},
		{"stamp only", "20240105_093015.bak.cu"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := OriginalPath(tc.path); err == nil {
				t.Errorf("Expected error for %q", tc.path)
			}
		})
	}
}

func TestRestoreBackupRejectsBadName(t *testing.T) {
	path := writeFile(t, t.TempDir(), "not_a_backup.txt", "data")
	if _, err := RestoreBackup(path); err == nil {
		t.Error("Expected error restoring a non-backup file")
	}
}

func TestBackupPreservesModTime(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "data")

	past := time.Now().Add(-48 * time.Hour).Truncate(time.Second)
	if err := os.Chtimes(path, past, past); err != nil {
		t.Fatal(err)
	}

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if diff := info.ModTime().Sub(past); diff < -time.Second || diff > time.Second {
		t.Errorf("Backup mtime %v, want about %v", info.ModTime(), past)
	}
}

func TestBackupPreservesMode(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "doc.txt", "data")
	if err := os.Chmod(path, 0600); err != nil {
		t.Fatal(err)
	}

	backupPath, err := CreateBackup(path)
	if err != nil {
		t.Fatalf("CreateBackup failed: %v", err)
	}

	info, err := os.Stat(backupPath)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Backup mode %v, want 0600", info.Mode().Perm())
	}
}
