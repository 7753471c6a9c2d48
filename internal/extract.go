package internal

import (
	"regexp"
	"time"
)

// Candidate source labels, in priority order (ties on confidence are
// broken by this order, lower index wins).
const (
	SourceExifOriginal  = "EXIF DateTimeOriginal"
	SourceExifDigitized = "EXIF DateTimeDigitized"
	SourceVideoCreation = "Video Creation Date"
	SourceFilename      = "Filename Date"
	SourceFileCreated   = "File Creation Date"
	SourceFileModified  = "File Modification Date"
)

var sourcePriority = map[string]int{
	SourceExifOriginal:  0,
	SourceExifDigitized: 1,
	SourceVideoCreation: 2,
	SourceFilename:      3,
	SourceFileCreated:   4,
	SourceFileModified:  5,
}

// Fixed confidence weights per source.
const (
	confExifOriginal  = 1.0
	confExifDigitized = 0.9
	confVideoCreation = 0.8
	confFilename      = 0.7
	confFileCreated   = 0.5
	confFileModified  = 0.3
)

// DateCandidate is one proposed capture date from a single evidence
// source. Immutable once produced.
type DateCandidate struct {
	Source     string    `json:"source"`
	Value      time.Time `json:"value"`
	Confidence float64   `json:"confidence"`
	RawText    string    `json:"raw_text,omitempty"`
}

// filenamePattern pairs a compiled date regexp with the group order it
// captures. Patterns with a time component come first so that, at equal
// match offsets, date+time beats a bare date.
type filenamePattern struct {
	re       *regexp.Regexp
	dayFirst bool
	hasTime  bool
}

var filenamePatterns = []filenamePattern{
	// YYYY-MM-DD_HH-MM-SS
	{re: regexp.MustCompile(`(\d{4})-(\d{2})-(\d{2})_(\d{2})-(\d{2})-(\d{2})`), hasTime: true},
	// YYYYMMDD_HHMMSS (IMG_/VID_ prefixes land here too)
	{re: regexp.MustCompile(`(\d{4})(\d{2})(\d{2})[-_](\d{2})(\d{2})(\d{2})`), hasTime: true},
	// YYYY-MM-DD or YYYY_MM_DD
	{re: regexp.MustCompile(`(\d{4})[-_](\d{2})[-_](\d{2})`)},
	// YYYYMMDD
	{re: regexp.MustCompile(`(\d{4})(\d{2})(\d{2})`)},
	// DD-MM-YYYY or DD_MM_YYYY
	{re: regexp.MustCompile(`(\d{2})[-_](\d{2})[-_](\d{4})`), dayFirst: true},
}

type filenameMatch struct {
	pattern filenamePattern
	pos     int
	groups  []string
	raw     string
}

// ParseFilenameDate scans a filename for a recognized date pattern.
// Leftmost match wins; at the same offset a date+time pattern beats a
// bare date. Matches that decode to an invalid or implausible calendar
// date are dropped and scanning moves to the next match.
func ParseFilenameDate(name string, minYear int) (time.Time, string, bool) {
	var matches []filenameMatch
	for _, p := range filenamePatterns {
		loc := p.re.FindStringSubmatchIndex(name)
		if loc == nil {
			continue
		}
		m := p.re.FindStringSubmatch(name[loc[0]:])
		matches = append(matches, filenameMatch{
			pattern: p,
			pos:     loc[0],
			groups:  m[1:],
			raw:     m[0],
		})
	}

	// Stable order above follows pattern precedence; pick by position first.
	best := -1
	for i := range matches {
		if best == -1 || matches[i].pos < matches[best].pos {
			best = i
		}
	}
	for best != -1 {
		m := matches[best]
		if t, ok := decodeFilenameDate(m, minYear); ok {
			return t, m.raw, true
		}
		// Dropped (invalid or implausible) - try the next match position.
		matches = append(matches[:best], matches[best+1:]...)
		best = -1
		for i := range matches {
			if best == -1 || matches[i].pos < matches[best].pos {
				best = i
			}
		}
	}
	return time.Time{}, "", false
}

func decodeFilenameDate(m filenameMatch, minYear int) (time.Time, bool) {
	g := m.groups
	year, month, day := atoi(g[0]), atoi(g[1]), atoi(g[2])
	if m.pattern.dayFirst {
		day, month, year = atoi(g[0]), atoi(g[1]), atoi(g[2])
	}

	var hour, minute, sec int
	if m.pattern.hasTime {
		hour, minute, sec = atoi(g[3]), atoi(g[4]), atoi(g[5])
	}

	t := time.Date(year, time.Month(month), day, hour, minute, sec, 0, time.Local)
	// time.Date normalizes out-of-range components; a changed date means
	// the match was not a real calendar date.
	if t.Year() != year || t.Month() != time.Month(month) || t.Day() != day ||
		t.Hour() != hour || t.Minute() != minute || t.Second() != sec {
		return time.Time{}, false
	}
	if !PlausibleDate(t, minYear) {
		return time.Time{}, false
	}
	return t, true
}

func atoi(s string) int {
	n := 0
	for _, c := range s {
		n = n*10 + int(c-'0')
	}
	return n
}

// ExtractCandidates produces every candidate capture date for a file
// from its tag bag, filename and filesystem timestamps. A source that
// is absent, unparsable or implausible is simply omitted; extraction
// never fails the file. No I/O happens here.
func ExtractCandidates(tags TagBag, filename string, kind MediaKind, created, modified time.Time, cfg *Config) []DateCandidate {
	var candidates []DateCandidate

	add := func(source string, value time.Time, confidence float64, raw string) {
		if !PlausibleDate(value, cfg.MinYear) {
			return
		}
		candidates = append(candidates, DateCandidate{
			Source:     source,
			Value:      value,
			Confidence: confidence,
			RawText:    raw,
		})
	}

	if t, ok := tags.FieldTime(FieldDateTimeOriginal); ok {
		add(SourceExifOriginal, t, confExifOriginal, tags[string(FieldDateTimeOriginal)])
	}
	if t, ok := tags.FieldTime(FieldDateTimeDigitized); ok {
		add(SourceExifDigitized, t, confExifDigitized, tags[string(FieldDateTimeDigitized)])
	}
	if kind == KindVideo {
		if t, ok := tags.VideoCreationTime(); ok {
			add(SourceVideoCreation, t, confVideoCreation, "")
		}
	}
	if t, raw, ok := ParseFilenameDate(filename, cfg.MinYear); ok {
		add(SourceFilename, t, confFilename, raw)
	}

	// Most filesystems here report no birth time; the stat layer then
	// hands us created == modified and only the modification candidate
	// is emitted.
	if !created.IsZero() && !created.Equal(modified) {
		add(SourceFileCreated, created, confFileCreated, "")
	}
	if !modified.IsZero() {
		add(SourceFileModified, modified, confFileModified, "")
	}

	return candidates
}
