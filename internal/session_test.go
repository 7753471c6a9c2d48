package internal

import (
	"bufio"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readManifest(t *testing.T, session *UpdateSession) []ManifestEvent {
	t.Helper()
	f, err := os.Open(filepath.Join(session.SessionDir, "manifest.jsonl"))
	require.NoError(t, err)
	defer f.Close()

	var events []ManifestEvent
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var event ManifestEvent
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &event))
		events = append(events, event)
	}
	require.NoError(t, scanner.Err())
	return events
}

func TestUpdateSessionManifest(t *testing.T) {
	dir := t.TempDir()

	session, err := NewUpdateSession(dir)
	require.NoError(t, err)
	defer session.Close()

	require.NoError(t, session.LogSessionStart(3))
	require.NoError(t, session.LogOutcome(UpdateOutcome{
		Path:       filepath.Join(dir, "a.jpg"),
		Status:     StatusSuccess,
		Date:       time.Date(2023, 12, 15, 14, 20, 30, 0, time.UTC),
		Fields:     []DateField{FieldDateTimeOriginal, FieldDateTimeDigitized},
		BackupPath: filepath.Join(dir, "a.jpg.backup"),
	}))
	require.NoError(t, session.LogOutcome(UpdateOutcome{
		Path:   filepath.Join(dir, "b.png"),
		Status: StatusSkipped,
		Reason: "unsupported format .png",
	}))
	require.NoError(t, session.LogOutcome(UpdateOutcome{
		Path:   filepath.Join(dir, "c.jpg"),
		Status: StatusFailed,
		Err:    errors.New("open c.jpg: permission denied"),
	}))
	require.NoError(t, session.LogSessionEnd(UpdateSummary{Succeeded: 1, Skipped: 1, Failed: 1}))

	events := readManifest(t, session)
	require.Len(t, events, 5)

	assert.Equal(t, "session_start", events[0].Event)
	assert.Equal(t, 3, events[0].TotalFiles)

	assert.Equal(t, "updated", events[1].Event)
	assert.Equal(t, "2023:12:15 14:20:30", events[1].Date)
	assert.Equal(t, "DateTimeOriginal,DateTimeDigitized", events[1].Fields)
	assert.NotEmpty(t, events[1].Backup)

	assert.Equal(t, "skipped", events[2].Event)
	assert.Equal(t, "unsupported format .png", events[2].Reason)

	assert.Equal(t, "failed", events[3].Event)
	assert.Equal(t, string(ErrorCategoryIO), events[3].ErrorCategory)
	assert.NotEmpty(t, events[3].ErrorSuggestion)

	assert.Equal(t, "session_end", events[4].Event)
	assert.Equal(t, 1, events[4].Succeeded)
	assert.Equal(t, 1, events[4].Skipped)
	assert.Equal(t, 1, events[4].Failed)
}

func TestNewUpdateSession_CreatesSessionDir(t *testing.T) {
	dir := t.TempDir()
	session, err := NewUpdateSession(dir)
	require.NoError(t, err)
	defer session.Close()

	info, err := os.Stat(session.SessionDir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
	assert.Equal(t, filepath.Join(dir, ".datefix", session.ID), session.SessionDir)
}
