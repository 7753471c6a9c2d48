package internal

import (
	"fmt"
	"time"
)

// Target metadata date fields the analyzer checks and the updater writes.
type DateField string

const (
	FieldDateTimeOriginal  DateField = "DateTimeOriginal"
	FieldDateTimeDigitized DateField = "DateTimeDigitized"
	FieldDateCreated       DateField = "DateCreated"
)

// TargetFields lists every field the analyzer reports on, in display order.
var TargetFields = []DateField{FieldDateTimeOriginal, FieldDateTimeDigitized, FieldDateCreated}

// TagBag is the raw metadata mapping handed to the core by a codec.
// Keys are tag names as the container spells them (DateTimeOriginal,
// creation_time, encoded_date, ...), values are the undecoded strings.
type TagBag map[string]string

// Video containers spell their creation tag several ways; checked in order.
var videoDateTags = []string{"creation_time", "date", "creation_date", "encoded_date"}

const exifTimeLayout = "2006:01:02 15:04:05"

// Accepted layouts for video creation tags, most specific first.
var videoTimeLayouts = []string{
	"2006-01-02T15:04:05.000000Z",
	time.RFC3339,
	"2006-01-02T15:04:05Z",
	"2006-01-02 15:04:05",
	exifTimeLayout,
}

// ParseExifTime parses the EXIF 'YYYY:MM:DD HH:MM:SS' datetime format.
func ParseExifTime(value string) (time.Time, error) {
	return time.Parse(exifTimeLayout, value)
}

// FormatExifTime renders a time in the EXIF datetime format.
func FormatExifTime(t time.Time) string {
	return t.Format(exifTimeLayout)
}

// ParseVideoTime parses a video creation tag, trying each known layout.
func ParseVideoTime(value string) (time.Time, error) {
	for _, layout := range videoTimeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("cannot parse video date %q", value)
}

// FieldTime returns the parsed value of a target date field, or false when
// the tag is absent or unparsable. Per the data model those two cases are
// the same thing: a missing field.
func (b TagBag) FieldTime(field DateField) (time.Time, bool) {
	var value string
	var ok bool

	switch field {
	case FieldDateCreated:
		// DateCreated is stored as the EXIF DateTime tag.
		value, ok = b["DateTime"]
		if !ok {
			value, ok = b[string(FieldDateCreated)]
		}
	default:
		value, ok = b[string(field)]
	}
	if !ok {
		return time.Time{}, false
	}

	t, err := ParseExifTime(value)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// VideoCreationTime returns the first parsable video creation tag.
func (b TagBag) VideoCreationTime() (time.Time, bool) {
	for _, key := range videoDateTags {
		value, ok := b[key]
		if !ok {
			continue
		}
		if t, err := ParseVideoTime(value); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// PlausibleDate reports whether a date is inside the accepted window:
// minYear .. current year + 1. Zero dates are never plausible.
func PlausibleDate(t time.Time, minYear int) bool {
	if t.IsZero() {
		return false
	}
	return t.Year() >= minYear && t.Year() <= time.Now().Year()+1
}
