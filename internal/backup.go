package internal

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
)

// BackupManager creates and recovers sidecar backup copies. A backup
// lives next to its original, named original + suffix. At most one live
// backup exists per original; creating another overwrites it.
type BackupManager struct {
	suffix string
}

func NewBackupManager(cfg *Config) *BackupManager {
	return &BackupManager{suffix: cfg.BackupSuffix}
}

// BackupPath returns the deterministic backup location for a file.
func (b *BackupManager) BackupPath(path string) string {
	return path + b.suffix
}

// IsBackupFile reports whether a path names a backup sidecar.
func (b *BackupManager) IsBackupFile(path string) bool {
	return strings.HasSuffix(path, b.suffix)
}

// originalPath maps a backup sidecar back to the file it protects.
func (b *BackupManager) originalPath(backupPath string) string {
	return strings.TrimSuffix(backupPath, b.suffix)
}

// CreateBackup copies the file byte-for-byte to its backup location,
// overwriting any previous backup (last-backup-wins).
func (b *BackupManager) CreateBackup(path string) (string, error) {
	backupPath := b.BackupPath(path)
	if err := copyFileAtomic(path, backupPath); err != nil {
		return "", fmt.Errorf("failed to back up %s: %w", path, err)
	}
	logrus.WithFields(logrus.Fields{"file": path, "backup": backupPath}).Debug("created backup")
	return backupPath, nil
}

// HasBackup reports whether a live backup exists for the file.
func (b *BackupManager) HasBackup(path string) bool {
	_, err := os.Stat(b.BackupPath(path))
	return err == nil
}

// RestoreBackup copies the backup back over the original. Returns
// ErrNoBackup when no backup exists. Returns false without error when
// the restore is a no-op because backup and original are already
// byte-identical. The backup is left in place either way, so a restore
// can be repeated.
func (b *BackupManager) RestoreBackup(path string) (bool, error) {
	backupPath := b.BackupPath(path)
	if _, err := os.Stat(backupPath); err != nil {
		return false, fmt.Errorf("%w for %s", ErrNoBackup, path)
	}

	if same, err := sameContent(path, backupPath); err == nil && same {
		return false, nil
	}

	if err := copyFileAtomic(backupPath, path); err != nil {
		return false, fmt.Errorf("failed to restore %s: %w", path, err)
	}
	logrus.WithField("file", path).Info("restored from backup")
	return true, nil
}

// RestoreAll restores every backup found under folder, continuing past
// individual failures. Returns the count of successful restores.
func (b *BackupManager) RestoreAll(folder string) (int, error) {
	backups, err := b.findBackups(folder)
	if err != nil {
		return 0, err
	}

	restored := 0
	for _, backupPath := range backups {
		if _, err := b.RestoreBackup(b.originalPath(backupPath)); err != nil {
			logrus.WithField("backup", backupPath).WithError(err).Warn("restore failed")
			continue
		}
		restored++
	}
	return restored, nil
}

// Cleanup deletes every backup sidecar under folder and returns the
// count removed. Non-backup files are never touched.
func (b *BackupManager) Cleanup(folder string) (int, error) {
	backups, err := b.findBackups(folder)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, backupPath := range backups {
		if err := os.Remove(backupPath); err != nil {
			logrus.WithField("backup", backupPath).WithError(err).Warn("cleanup failed")
			continue
		}
		removed++
	}
	return removed, nil
}

func (b *BackupManager) findBackups(folder string) ([]string, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("folder does not exist or is not a directory: %s", folder)
	}

	var backups []string
	err = filepath.Walk(folder, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil // unreadable entries are skipped, not fatal
		}
		if !info.IsDir() && b.IsBackupFile(path) {
			backups = append(backups, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error scanning for backups: %w", err)
	}
	return backups, nil
}

// fileHash computes SHA256 hash of a file content
func fileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}
	return fmt.Sprintf("%x", h.Sum(nil)), nil
}

func sameContent(path1, path2 string) (bool, error) {
	h1, err := fileHash(path1)
	if err != nil {
		return false, err
	}
	h2, err := fileHash(path2)
	if err != nil {
		return false, err
	}
	return h1 == h2, nil
}

// copyFileAtomic copies a file atomically (copy temp → rename)
func copyFileAtomic(src, dest string) error {
	tmp := dest + ".tmp"
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(tmp)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		os.Remove(tmp)
		return err
	}
	if err := out.Close(); err != nil {
		os.Remove(tmp)
		return err
	}

	return os.Rename(tmp, dest)
}
