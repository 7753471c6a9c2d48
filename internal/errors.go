package internal

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for API misuse and backup lookup.
var (
	// ErrNoBackup is returned when a restore is requested for a file
	// that has no backup sidecar.
	ErrNoBackup = errors.New("no backup found")

	// ErrNoSuggestion is returned when an update is requested for a
	// record that carries no suggested date.
	ErrNoSuggestion = errors.New("no suggested date")

	// ErrNoFields is returned when an update is requested with an empty
	// field selection. This is caller misuse and fails the whole call.
	ErrNoFields = errors.New("no date fields selected")

	// ErrImplausibleDate is returned when a date falls outside the
	// accepted range (min year .. current year + 1).
	ErrImplausibleDate = errors.New("date outside plausible range")
)

// ErrorCategory represents the type of error encountered
type ErrorCategory string

const (
	ErrorCategoryIO          ErrorCategory = "io_error"           // File system, permissions, disk space
	ErrorCategoryParse       ErrorCategory = "parse_error"        // Tag or filename present but unparsable
	ErrorCategoryImplausible ErrorCategory = "implausible_date"   // Parsed date outside accepted range
	ErrorCategoryBackup      ErrorCategory = "backup_error"       // Backup missing or backup step failed
	ErrorCategoryUnsupported ErrorCategory = "unsupported_format" // Format cannot be written
	ErrorCategoryUnknown     ErrorCategory = "unknown_error"      // Unexpected errors
)

// ErrorSeverity indicates how critical the error is
type ErrorSeverity string

const (
	ErrorSeverityCritical ErrorSeverity = "critical" // System-level issues (disk full, permissions)
	ErrorSeverityError    ErrorSeverity = "error"    // File-level issues (corruption, unreadable)
	ErrorSeverityWarning  ErrorSeverity = "warning"  // Recoverable issues (skipped format, dropped candidate)
)

// ProcessError represents a categorized error during file processing
type ProcessError struct {
	FilePath    string
	Category    ErrorCategory
	Severity    ErrorSeverity
	OriginalErr error
	Suggestion  string // User-friendly suggestion to fix
}

func (e *ProcessError) Error() string {
	return fmt.Sprintf("[%s/%s] %s: %v", e.Severity, e.Category, e.FilePath, e.OriginalErr)
}

func (e *ProcessError) Unwrap() error {
	return e.OriginalErr
}

// CategorizeError analyzes an error and returns a ProcessError with category and severity
func CategorizeError(filePath string, err error) *ProcessError {
	if err == nil {
		return nil
	}

	procErr := &ProcessError{
		FilePath:    filePath,
		OriginalErr: err,
	}

	switch {
	case errors.Is(err, ErrNoBackup):
		procErr.Category = ErrorCategoryBackup
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "No backup sidecar exists for this file - nothing to restore"
		return procErr

	case errors.Is(err, ErrImplausibleDate):
		procErr.Category = ErrorCategoryImplausible
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "The chosen date falls outside the accepted range - pick a different source"
		return procErr
	}

	// Categorize based on error message
	errStr := strings.ToLower(err.Error())
	switch {
	// Disk/Filesystem errors (CRITICAL)
	case strings.Contains(errStr, "no space left"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Free up disk space and retry the update"

	case strings.Contains(errStr, "permission denied"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Check file permissions on the media folder"

	case strings.Contains(errStr, "read-only file system"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityCritical
		procErr.Suggestion = "Filesystem is read-only - check mount options"

	// I/O errors (ERROR)
	case strings.Contains(errStr, "input/output error"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "I/O error - check disk health with SMART tools"

	case strings.Contains(errStr, "no such file"):
		procErr.Category = ErrorCategoryIO
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "File disappeared during processing - check if external drive disconnected"

	// Parse errors (WARNING - candidate source is simply dropped)
	case strings.Contains(errStr, "cannot parse") || strings.Contains(errStr, "parsing time"):
		procErr.Category = ErrorCategoryParse
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "Date value present but unparsable - that source is ignored"

	// Unsupported format
	case strings.Contains(errStr, "unsupported") || strings.Contains(errStr, "unknown format"):
		procErr.Category = ErrorCategoryUnsupported
		procErr.Severity = ErrorSeverityWarning
		procErr.Suggestion = "Metadata writes are only supported for JPEG and TIFF - file was skipped"

	// Default: unknown error
	default:
		procErr.Category = ErrorCategoryUnknown
		procErr.Severity = ErrorSeverityError
		procErr.Suggestion = "Unexpected error - check the session manifest for details"
	}

	return procErr
}
