package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"
)

// TagReader hands the analyzer a file's raw tag bag, already decoded
// from the container format. Implementations live in codec.go.
type TagReader interface {
	ReadTags(path string, kind MediaKind) (TagBag, error)
}

// AnalysisRecord is the per-file analysis result. Immutable once
// produced; re-analysis supersedes, never mutates.
type AnalysisRecord struct {
	Path       string          `json:"path"`
	Name       string          `json:"name"`
	Kind       MediaKind       `json:"kind"`
	SizeBytes  int64           `json:"size_bytes"`
	Missing    []DateField     `json:"missing_fields"`
	Candidates []DateCandidate `json:"candidates"`
	Suggestion *DateCandidate  `json:"suggestion,omitempty"`
}

// IsMissing reports whether the given target field was absent or
// unparsable in the file's tags.
func (r *AnalysisRecord) IsMissing(field DateField) bool {
	for _, f := range r.Missing {
		if f == field {
			return true
		}
	}
	return false
}

// Analyzer orchestrates candidate extraction and ranking per file.
// It holds no state across calls; every analysis is a fresh read of
// current filesystem and tag state.
type Analyzer struct {
	cfg    *Config
	reader TagReader
}

func NewAnalyzer(cfg *Config, reader TagReader) *Analyzer {
	return &Analyzer{cfg: cfg, reader: reader}
}

// AnalyzeFile analyzes a single file. It never fails: an unreadable or
// corrupt file yields a record with empty candidates and every target
// field marked missing.
func (a *Analyzer) AnalyzeFile(path string) AnalysisRecord {
	record := AnalysisRecord{
		Path:    path,
		Name:    filepath.Base(path),
		Kind:    ClassifyKind(path, a.cfg),
		Missing: append([]DateField(nil), TargetFields...),
	}

	info, err := os.Stat(path)
	if err != nil {
		logrus.WithField("file", path).WithError(err).Warn("cannot stat file")
		return record
	}
	record.SizeBytes = info.Size()

	tags, err := a.reader.ReadTags(path, record.Kind)
	if err != nil {
		// Metadata that cannot be decoded just means no tag candidates;
		// the filename and filesystem sources still apply.
		logrus.WithField("file", path).WithError(err).Debug("metadata read failed")
		tags = TagBag{}
	}

	record.Missing = missingFields(tags)

	// No portable birth time on this stack; the modification time stands
	// in for both and the extractor collapses the duplicate.
	created, modified := fileTimes(info)
	candidates := ExtractCandidates(tags, record.Name, record.Kind, created, modified, a.cfg)
	record.Candidates = SortCandidates(candidates)
	record.Suggestion = RankCandidates(candidates)

	return record
}

// AnalyzeAll analyzes every path in order, one record per input. A
// failing file never aborts the batch.
func (a *Analyzer) AnalyzeAll(paths []string) []AnalysisRecord {
	records := make([]AnalysisRecord, 0, len(paths))
	for _, path := range paths {
		records = append(records, a.AnalyzeFile(path))
	}
	return records
}

// AnalyzeFolder scans a folder recursively for media files and analyzes
// them. A missing folder is caller misuse and fails the whole call.
func (a *Analyzer) AnalyzeFolder(folder string) ([]AnalysisRecord, error) {
	info, err := os.Stat(folder)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("folder does not exist or is not a directory: %s", folder)
	}
	files, err := ScanMediaFiles(folder, a.cfg)
	if err != nil {
		return nil, err
	}
	return a.AnalyzeAll(files), nil
}

func missingFields(tags TagBag) []DateField {
	var missing []DateField
	for _, field := range TargetFields {
		if _, ok := tags.FieldTime(field); !ok {
			missing = append(missing, field)
		}
	}
	return missing
}

func fileTimes(info os.FileInfo) (created, modified time.Time) {
	return info.ModTime(), info.ModTime()
}

// FilesWithMissingDates filters records down to those with at least one
// missing target field. Pure view over caller-owned records.
func FilesWithMissingDates(records []AnalysisRecord) []AnalysisRecord {
	var out []AnalysisRecord
	for _, r := range records {
		if len(r.Missing) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// FilesWithSuggestions filters records down to those carrying a
// suggestion for at least one missing field.
func FilesWithSuggestions(records []AnalysisRecord) []AnalysisRecord {
	var out []AnalysisRecord
	for _, r := range records {
		if r.Suggestion != nil && len(r.Missing) > 0 {
			out = append(out, r)
		}
	}
	return out
}

// BatchStatistics aggregates counts over a sequence of records. Derived
// on demand, never stored apart from the records it summarizes.
type BatchStatistics struct {
	TotalFiles       int
	ImageFiles       int
	VideoFiles       int
	UnsupportedFiles int
	MissingByField   map[DateField]int
	WithSuggestion   int
}

func ComputeStatistics(records []AnalysisRecord) BatchStatistics {
	stats := BatchStatistics{
		MissingByField: make(map[DateField]int, len(TargetFields)),
	}
	for _, r := range records {
		stats.TotalFiles++
		switch r.Kind {
		case KindImage:
			stats.ImageFiles++
		case KindVideo:
			stats.VideoFiles++
		default:
			stats.UnsupportedFiles++
		}
		for _, f := range r.Missing {
			stats.MissingByField[f]++
		}
		if r.Suggestion != nil {
			stats.WithSuggestion++
		}
	}
	return stats
}
