package patcher

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// backupTimeLayout gives backup names second resolution: YYYYMMDD_HHMMSS.
const backupTimeLayout = "20060102_150405"

// BackupName returns the backup file name for name taken at t.
func BackupName(prefix, name string, t time.Time) string {
	return prefix + t.Format(backupTimeLayout) + "_" + name
}

// writeBackup stores content next to path under the backup name. It never
// overwrites an existing file.
func writeBackup(path, prefix string, content []byte, perm os.FileMode, now time.Time) (string, error) {
	backup := filepath.Join(filepath.Dir(path), BackupName(prefix, filepath.Base(path), now))

	f, err := os.OpenFile(backup, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return "", fmt.Errorf("creating backup: %w", err)
	}
	if _, err := f.Write(content); err != nil {
		f.Close()
		os.Remove(backup)
		return "", fmt.Errorf("writing backup %s: %w", backup, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(backup)
		return "", fmt.Errorf("closing backup %s: %w", backup, err)
	}
	return backup, nil
}

// replaceFile swaps path's content for content in one rename, so readers
// see either the old file or the new one and never a partial write.
// A symlinked path is resolved first so the link stays in place and its
// target receives the new content.
func replaceFile(path string, content []byte, perm os.FileMode) error {
	if target, err := filepath.EvalSymlinks(path); err == nil {
		path = target
	}
	dir, name := filepath.Split(path)
	tmp, err := os.CreateTemp(dir, "."+name+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	cleanup := func() {
		tmp.Close()
		os.Remove(tmpName)
	}

	if _, err := tmp.Write(content); err != nil {
		cleanup()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		cleanup()
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpName, perm); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
