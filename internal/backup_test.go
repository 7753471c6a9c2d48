package internal

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBackupRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	original := []byte("original image bytes")
	require.NoError(t, os.WriteFile(path, original, 0644))

	backups := NewBackupManager(DefaultConfig())

	backupPath, err := backups.CreateBackup(path)
	require.NoError(t, err)
	assert.Equal(t, path+".backup", backupPath)
	assert.True(t, backups.HasBackup(path))

	// Mutate the original, then restore.
	require.NoError(t, os.WriteFile(path, []byte("mutated bytes"), 0644))

	restored, err := backups.RestoreBackup(path)
	require.NoError(t, err)
	assert.True(t, restored)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, original, content)

	// The backup stays in place so the restore can be repeated.
	assert.True(t, backups.HasBackup(path))
}

func TestCreateBackup_OverwritesExisting(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("v1"), 0644))

	backups := NewBackupManager(DefaultConfig())
	_, err := backups.CreateBackup(path)
	require.NoError(t, err)

	// New content, new backup: last backup wins.
	require.NoError(t, os.WriteFile(path, []byte("v2"), 0644))
	_, err = backups.CreateBackup(path)
	require.NoError(t, err)

	content, err := os.ReadFile(path + ".backup")
	require.NoError(t, err)
	assert.Equal(t, []byte("v2"), content)

	// Still exactly one backup for the file.
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestCreateBackup_MissingSource(t *testing.T) {
	backups := NewBackupManager(DefaultConfig())
	_, err := backups.CreateBackup(filepath.Join(t.TempDir(), "ghost.jpg"))
	assert.Error(t, err)
}

func TestRestoreBackup_NoBackup(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0644))

	backups := NewBackupManager(DefaultConfig())
	_, err := backups.RestoreBackup(path)
	assert.True(t, errors.Is(err, ErrNoBackup))
}

func TestRestoreBackup_IdenticalIsNoOp(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "photo.jpg")
	require.NoError(t, os.WriteFile(path, []byte("same"), 0644))

	backups := NewBackupManager(DefaultConfig())
	_, err := backups.CreateBackup(path)
	require.NoError(t, err)

	restored, err := backups.RestoreBackup(path)
	require.NoError(t, err)
	assert.False(t, restored)
}

func TestRestoreAll_RestoresEveryBackup(t *testing.T) {
	dir := t.TempDir()
	backups := NewBackupManager(DefaultConfig())

	for _, name := range []string{"a.jpg", "b.jpg"} {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte(name), 0644))
		_, err := backups.CreateBackup(path)
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, []byte("mutated"), 0644))
	}
	// Stray backup with no original: restore recreates the original
	// from backup content, which restore treats as success.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "c.jpg.backup"), []byte("c"), 0644))

	count, err := backups.RestoreAll(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, count)

	content, err := os.ReadFile(filepath.Join(dir, "a.jpg"))
	require.NoError(t, err)
	assert.Equal(t, []byte("a.jpg"), content)
}

func TestCleanup_RemovesOnlyBackups(t *testing.T) {
	dir := t.TempDir()
	backups := NewBackupManager(DefaultConfig())

	originals := []string{"a.jpg", "b.jpg", "c.jpg", "d.jpg", "e.jpg"}
	for _, name := range originals {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(name), 0644))
	}
	for _, name := range originals[:3] {
		_, err := backups.CreateBackup(filepath.Join(dir, name))
		require.NoError(t, err)
	}

	removed, err := backups.Cleanup(dir)
	require.NoError(t, err)
	assert.Equal(t, 3, removed)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 5)

	// Second pass finds nothing left to remove.
	removed, err = backups.Cleanup(dir)
	require.NoError(t, err)
	assert.Equal(t, 0, removed)
}

func TestCleanup_InvalidFolder(t *testing.T) {
	backups := NewBackupManager(DefaultConfig())
	_, err := backups.Cleanup("/no/such/folder")
	assert.Error(t, err)
}
