package internal

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
)

// TagWriter applies a date to a file's metadata tags. The byte-level
// encoding is the codec's business; see codec.go.
type TagWriter interface {
	WriteDate(path string, value time.Time, setOriginal, setCreated bool) error
}

// UpdateStatus tags the per-file result of an update attempt.
type UpdateStatus string

const (
	StatusSuccess UpdateStatus = "success"
	StatusSkipped UpdateStatus = "skipped"
	StatusFailed  UpdateStatus = "failed"
)

// UpdateOutcome is the per-file result of an update attempt. Updates
// are never retried automatically; outcomes are surfaced to the caller
// for batch accounting.
type UpdateOutcome struct {
	Path       string       `json:"path"`
	Status     UpdateStatus `json:"status"`
	Reason     string       `json:"reason,omitempty"` // set for skips
	Err        error        `json:"-"`                // set for failures
	Date       time.Time    `json:"date,omitempty"`
	Fields     []DateField  `json:"fields,omitempty"`
	BackupPath string       `json:"backup,omitempty"`
	DryRun     bool         `json:"dry_run,omitempty"`
}

// FieldSelection picks which target fields an update writes.
// DateTimeDigitized is not selectable on its own: it is written
// whenever DateTimeOriginal is, mirroring capture semantics.
type FieldSelection struct {
	DateTimeOriginal bool
	DateCreated      bool
}

func (s FieldSelection) Empty() bool {
	return !s.DateTimeOriginal && !s.DateCreated
}

// UpdateOptions control mutation behavior for a run.
type UpdateOptions struct {
	DryRun bool
	Backup bool
}

// Updater writes chosen dates into file metadata, guarded by the
// backup manager. One file's failure never stops a batch.
type Updater struct {
	cfg     *Config
	writer  TagWriter
	backups *BackupManager
}

func NewUpdater(cfg *Config, writer TagWriter, backups *BackupManager) *Updater {
	return &Updater{cfg: cfg, writer: writer, backups: backups}
}

// UpdateFile applies a record's suggested date to its missing fields.
// The only error returned is ErrNoFields (caller misuse); every
// per-file condition comes back as an outcome.
func (u *Updater) UpdateFile(record AnalysisRecord, fields FieldSelection, opts UpdateOptions) (UpdateOutcome, error) {
	if fields.Empty() {
		return UpdateOutcome{}, ErrNoFields
	}
	if record.Suggestion == nil {
		return skipped(record.Path, "no suggested date", opts), nil
	}
	return u.updateWithDate(record, record.Suggestion.Value, fields, opts), nil
}

// UpdateFileDate is UpdateFile with an explicit date instead of the
// record's suggestion, for callers that let a user override it.
func (u *Updater) UpdateFileDate(record AnalysisRecord, date time.Time, fields FieldSelection, opts UpdateOptions) (UpdateOutcome, error) {
	if fields.Empty() {
		return UpdateOutcome{}, ErrNoFields
	}
	return u.updateWithDate(record, date, fields, opts), nil
}

func (u *Updater) updateWithDate(record AnalysisRecord, date time.Time, fields FieldSelection, opts UpdateOptions) UpdateOutcome {
	if record.Kind != KindImage || !CanWriteMetadata(record.Path, u.cfg) {
		return skipped(record.Path, fmt.Sprintf("unsupported format %s", strings.ToLower(filepath.Ext(record.Path))), opts)
	}

	// Only write fields that are both selected and actually missing.
	setOriginal := fields.DateTimeOriginal && record.IsMissing(FieldDateTimeOriginal)
	setCreated := fields.DateCreated && record.IsMissing(FieldDateCreated)
	if !setOriginal && !setCreated {
		return skipped(record.Path, "no selected field is missing", opts)
	}

	if !PlausibleDate(date, u.cfg.MinYear) {
		return failed(record.Path, fmt.Errorf("%w: %s", ErrImplausibleDate, date.Format(time.RFC3339)), opts)
	}

	outcome := UpdateOutcome{
		Path:   record.Path,
		Status: StatusSuccess,
		Date:   date,
		Fields: writtenFields(setOriginal, setCreated),
		DryRun: opts.DryRun,
	}

	// Dry run stops here: all decisions made, nothing touched.
	if opts.DryRun {
		return outcome
	}

	if opts.Backup {
		backupPath, err := u.backups.CreateBackup(record.Path)
		if err != nil {
			// Backup failed: the write is aborted before it starts.
			return failed(record.Path, err, opts)
		}
		outcome.BackupPath = backupPath
	}

	if err := u.writer.WriteDate(record.Path, date, setOriginal, setCreated); err != nil {
		// The backup stays in place for a caller-directed restore;
		// restoring silently here would hide the failure.
		out := failed(record.Path, err, opts)
		out.BackupPath = outcome.BackupPath
		return out
	}

	logrus.WithFields(logrus.Fields{
		"file":   record.Path,
		"date":   FormatExifTime(date),
		"fields": outcome.Fields,
	}).Info("updated metadata date")
	return outcome
}

// UpdateAll drives updates across a batch, one file at a time. A
// failed file is recorded and processing continues. Returns the full
// outcome list; an error only for caller misuse (empty selection).
func (u *Updater) UpdateAll(records []AnalysisRecord, fields FieldSelection, opts UpdateOptions, session *UpdateSession) ([]UpdateOutcome, error) {
	if fields.Empty() {
		return nil, ErrNoFields
	}

	outcomes := make([]UpdateOutcome, 0, len(records))
	for _, record := range records {
		outcome, err := u.UpdateFile(record, fields, opts)
		if err != nil {
			return nil, err
		}
		outcomes = append(outcomes, outcome)
		if session != nil {
			session.LogOutcome(outcome)
		}
	}
	return outcomes, nil
}

// UpdateSummary aggregates a batch's outcomes. Skips count toward
// neither success nor failure.
type UpdateSummary struct {
	Succeeded int
	Skipped   int
	Failed    int
}

func Summarize(outcomes []UpdateOutcome) UpdateSummary {
	var s UpdateSummary
	for _, o := range outcomes {
		switch o.Status {
		case StatusSuccess:
			s.Succeeded++
		case StatusSkipped:
			s.Skipped++
		case StatusFailed:
			s.Failed++
		}
	}
	return s
}

func skipped(path, reason string, opts UpdateOptions) UpdateOutcome {
	return UpdateOutcome{Path: path, Status: StatusSkipped, Reason: reason, DryRun: opts.DryRun}
}

func failed(path string, err error, opts UpdateOptions) UpdateOutcome {
	logrus.WithField("file", path).WithError(err).Error("update failed")
	return UpdateOutcome{Path: path, Status: StatusFailed, Err: err, DryRun: opts.DryRun}
}

func writtenFields(setOriginal, setCreated bool) []DateField {
	var fields []DateField
	if setOriginal {
		fields = append(fields, FieldDateTimeOriginal, FieldDateTimeDigitized)
	}
	if setCreated {
		fields = append(fields, FieldDateCreated)
	}
	return fields
}
