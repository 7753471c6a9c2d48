package internal

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseExifTime(t *testing.T) {
	parsed, err := ParseExifTime("2023:12:15 14:20:30")
	require.NoError(t, err)
	assert.Equal(t, "2023-12-15 14:20:30", parsed.Format("2006-01-02 15:04:05"))

	_, err = ParseExifTime("2023-12-15 14:20:30")
	assert.Error(t, err)
}

func TestFormatExifTime(t *testing.T) {
	value := time.Date(2023, 12, 15, 14, 20, 30, 0, time.UTC)
	assert.Equal(t, "2023:12:15 14:20:30", FormatExifTime(value))
}

func TestParseVideoTime(t *testing.T) {
	testCases := []struct {
		value      string
		shouldFail bool
	}{
		{"2021-06-01T12:00:00.000000Z", false},
		{"2021-06-01T12:00:00Z", false},
		{"2021-06-01 12:00:00", false},
		{"2021:06:01 12:00:00", false},
		{"sometime in june", true},
	}
	for _, tc := range testCases {
		t.Run(tc.value, func(t *testing.T) {
			parsed, err := ParseVideoTime(tc.value)
			if tc.shouldFail {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, 2021, parsed.Year())
			assert.Equal(t, time.June, parsed.Month())
		})
	}
}

func TestTagBagFieldTime(t *testing.T) {
	bag := TagBag{
		"DateTimeOriginal": "2022:05:01 09:30:00",
		"DateTime":         "2022:05:03 11:00:00",
	}

	if parsed, ok := bag.FieldTime(FieldDateTimeOriginal); assert.True(t, ok) {
		assert.Equal(t, 2022, parsed.Year())
	}

	// DateCreated reads the plain DateTime tag.
	_, ok := bag.FieldTime(FieldDateCreated)
	assert.True(t, ok)

	_, ok = bag.FieldTime(FieldDateTimeDigitized)
	assert.False(t, ok)
}

func TestTagBagVideoCreationTime(t *testing.T) {
	bag := TagBag{"encoded_date": "2021-06-01T12:00:00Z"}
	parsed, ok := bag.VideoCreationTime()
	require.True(t, ok)
	assert.Equal(t, 2021, parsed.Year())

	_, ok = TagBag{"creation_time": "not a date"}.VideoCreationTime()
	assert.False(t, ok)
}

func TestPlausibleDate(t *testing.T) {
	now := time.Now()
	assert.True(t, PlausibleDate(now, 1900))
	assert.True(t, PlausibleDate(time.Date(1900, 1, 1, 0, 0, 0, 0, time.UTC), 1900))
	assert.True(t, PlausibleDate(now.AddDate(1, 0, 0), 1900))
	assert.False(t, PlausibleDate(now.AddDate(2, 0, 0), 1900))
	assert.False(t, PlausibleDate(time.Date(1899, 12, 31, 0, 0, 0, 0, time.UTC), 1900))
	assert.False(t, PlausibleDate(time.Time{}, 1900))
}
