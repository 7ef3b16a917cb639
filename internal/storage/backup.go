package storage

import (
	"fmt"
	"io"
	"os"
)

const (
	// BackupSuffix is the file extension for backup files
	BackupSuffix = ".bak"
	// DefaultBackupCount is the number of backups kept unless configured otherwise
	DefaultBackupCount = 3
)

// BackupPath returns the path of backup n for the ledger at storagePath.
// Backups are named FILE.bak.N; lower numbers are more recent.
func BackupPath(storagePath string, n int) string {
	return fmt.Sprintf("%s%s.%d", storagePath, BackupSuffix, n)
}

// rotateBackups shifts .bak.1 -> .bak.2 and so on, dropping the oldest,
// so that .bak.1 is free. Missing files are skipped.
func rotateBackups(storagePath string, keep int) error {
	if err := os.Remove(BackupPath(storagePath, keep)); err != nil && !os.IsNotExist(err) {
		return err
	}

	for i := keep - 1; i >= 1; i-- {
		if err := os.Rename(BackupPath(storagePath, i), BackupPath(storagePath, i+1)); err != nil && !os.IsNotExist(err) {
			return err
		}
	}

	return nil
}

// CreateBackup copies the ledger to FILE.bak.1 after rotating older
// backups, keeping at most keep of them. It does nothing when keep is
// not positive or the ledger does not exist yet.
func CreateBackup(storagePath string, keep int) error {
	if keep <= 0 {
		return nil
	}

	if _, err := os.Stat(storagePath); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	if err := rotateBackups(storagePath, keep); err != nil {
		return err
	}

	sourceFile, err := os.Open(storagePath)
	if err != nil {
		return err
	}
	defer func() { _ = sourceFile.Close() }()

	destFile, err := os.Create(BackupPath(storagePath, 1))
	if err != nil {
		return err
	}

	if _, err := io.Copy(destFile, sourceFile); err != nil {
		_ = destFile.Close()
		return err
	}
	return destFile.Close()
}

// ListBackups returns the paths of the existing backups of storagePath,
// most recent first, looking at numbers 1 through keep.
func ListBackups(storagePath string, keep int) []string {
	var backups []string
	for i := 1; i <= keep; i++ {
		path := BackupPath(storagePath, i)
		if _, err := os.Stat(path); err == nil {
			backups = append(backups, path)
		}
	}
	return backups
}
