package internal

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// UpdateSession records an update run as an append-only JSONL manifest
// under <folder>/.datefix/<session-id>/manifest.jsonl, so every write,
// skip and failure stays auditable after the run.
type UpdateSession struct {
	ID           string   // Session ID (timestamp: 2025-01-15-103045)
	Folder       string   // Folder being updated
	SessionDir   string   // Full path to session directory
	ManifestFile *os.File // Open file handle for manifest.jsonl
}

// ManifestEvent represents a single event in the manifest log
type ManifestEvent struct {
	Event  string `json:"event"`
	Ts     string `json:"ts"`
	File   string `json:"file,omitempty"`
	Date   string `json:"date,omitempty"`
	Fields string `json:"fields,omitempty"`
	Backup string `json:"backup,omitempty"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`

	// Error details (for categorized errors)
	ErrorCategory   string `json:"error_category,omitempty"`
	ErrorSeverity   string `json:"error_severity,omitempty"`
	ErrorSuggestion string `json:"error_suggestion,omitempty"`

	// Session start/end fields
	Folder     string `json:"folder,omitempty"`
	TotalFiles int    `json:"total_files,omitempty"`
	Succeeded  int    `json:"succeeded,omitempty"`
	Skipped    int    `json:"skipped,omitempty"`
	Failed     int    `json:"failed,omitempty"`
}

// NewUpdateSession creates a new session directory and manifest.
func NewUpdateSession(folder string) (*UpdateSession, error) {
	sessionID := time.Now().Format("2006-01-02-150405")
	sessionDir := filepath.Join(folder, ".datefix", sessionID)

	if err := os.MkdirAll(sessionDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}

	manifestPath := filepath.Join(sessionDir, "manifest.jsonl")
	manifestFile, err := os.OpenFile(manifestPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create manifest file: %w", err)
	}

	return &UpdateSession{
		ID:           sessionID,
		Folder:       folder,
		SessionDir:   sessionDir,
		ManifestFile: manifestFile,
	}, nil
}

// LogSessionStart writes the session start event to the manifest.
func (s *UpdateSession) LogSessionStart(totalFiles int) error {
	return s.writeEvent(ManifestEvent{
		Event:      "session_start",
		Ts:         time.Now().UTC().Format(time.RFC3339),
		Folder:     s.Folder,
		TotalFiles: totalFiles,
	})
}

// LogOutcome writes one per-file outcome to the manifest.
func (s *UpdateSession) LogOutcome(outcome UpdateOutcome) error {
	event := ManifestEvent{
		Ts:   time.Now().UTC().Format(time.RFC3339),
		File: outcome.Path,
	}

	switch outcome.Status {
	case StatusSuccess:
		event.Event = "updated"
		event.Date = FormatExifTime(outcome.Date)
		event.Fields = fieldList(outcome.Fields)
		event.Backup = outcome.BackupPath
	case StatusSkipped:
		event.Event = "skipped"
		event.Reason = outcome.Reason
	case StatusFailed:
		event.Event = "failed"
		if outcome.Err != nil {
			event.Error = outcome.Err.Error()
			if procErr := CategorizeError(outcome.Path, outcome.Err); procErr != nil {
				event.ErrorCategory = string(procErr.Category)
				event.ErrorSeverity = string(procErr.Severity)
				event.ErrorSuggestion = procErr.Suggestion
			}
		}
		event.Backup = outcome.BackupPath
	}

	return s.writeEvent(event)
}

// LogSessionEnd writes the session end event with the batch summary.
func (s *UpdateSession) LogSessionEnd(summary UpdateSummary) error {
	return s.writeEvent(ManifestEvent{
		Event:     "session_end",
		Ts:        time.Now().UTC().Format(time.RFC3339),
		Succeeded: summary.Succeeded,
		Skipped:   summary.Skipped,
		Failed:    summary.Failed,
	})
}

// Close closes the manifest file.
func (s *UpdateSession) Close() error {
	if s.ManifestFile != nil {
		return s.ManifestFile.Close()
	}
	return nil
}

// writeEvent writes a manifest event as a JSON line
func (s *UpdateSession) writeEvent(event ManifestEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	if _, err := s.ManifestFile.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write to manifest: %w", err)
	}

	// Flush to ensure data is written
	return s.ManifestFile.Sync()
}

func fieldList(fields []DateField) string {
	out := ""
	for i, f := range fields {
		if i > 0 {
			out += ","
		}
		out += string(f)
	}
	return out
}
