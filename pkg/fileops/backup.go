package fileops

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/cons0leweb/cons0leweb-utils/pkg/logging"
)

// BackupSuffix marks backup copies created before destructive edits.
const BackupSuffix = ".bak.cu"

// timestampLayout is the stamp embedded in backup and generated file names.
const timestampLayout = "20060102_150405"

// CreateBackup copies path to <path>_<YYYYMMDD_HHMMSS>.bak.cu, preserving
// permissions and modification time, and returns the backup path.
func CreateBackup(path string) (string, error) {
	timestamp := time.Now().Format(timestampLayout)
	backupPath := fmt.Sprintf("%s_%s%s", path, timestamp, BackupSuffix)

	if err := copyFile(path, backupPath); err != nil {
		return "", fmt.Errorf("backup failed for %s: %w", path, err)
	}

	logging.Debug("backup created", map[string]interface{}{
		"path":   path,
		"backup": backupPath,
	})
	return backupPath, nil
}

// RestoreBackup copies a backup over the file it was taken from and returns
// the restored path. The backup name must carry both the creation stamp and
// the backup suffix; anything else is rejected.
func RestoreBackup(backupPath string) (string, error) {
	originalPath, err := OriginalPath(backupPath)
	if err != nil {
		return "", err
	}

	if err := copyFile(backupPath, originalPath); err != nil {
		return "", fmt.Errorf("restore failed for %s: %w", backupPath, err)
	}

	logging.Debug("backup restored", map[string]interface{}{
		"backup": backupPath,
		"path":   originalPath,
	})
	return originalPath, nil
}

// OriginalPath derives the pre-backup file path from a backup name of the
// form <path>_<YYYYMMDD_HHMMSS>.bak.cu by stripping the suffix and the stamp.
func OriginalPath(backupPath string) (string, error) {
	if !strings.HasSuffix(backupPath, BackupSuffix) {
		return "", fmt.Errorf("invalid backup file %s: missing %s suffix", backupPath, BackupSuffix)
	}
	stem := strings.TrimSuffix(backupPath, BackupSuffix)

	// "_" plus the timestamp
	stampLen := len(timestampLayout) + 1
	if len(stem) <= stampLen || stem[len(stem)-stampLen] != '_' {
		return "", fmt.Errorf("invalid backup file %s: missing timestamp", backupPath)
	}
	if _, err := time.Parse(timestampLayout, stem[len(stem)-stampLen+1:]); err != nil {
		return "", fmt.Errorf("invalid backup file %s: malformed timestamp", backupPath)
	}

	return stem[:len(stem)-stampLen], nil
}

// copyFile duplicates src at dst with the source's permissions and
// modification time.
func copyFile(src, dst string) error {
	info, err := os.Stat(src)
	if err != nil {
		return err
	}

	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm())
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}

	return os.Chtimes(dst, time.Now(), info.ModTime())
}
