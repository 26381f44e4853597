package sqlite

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatTimeForDB_RoundTrip(t *testing.T) {
	original := time.Date(2026, 8, 24, 9, 30, 15, 123456789, time.UTC)

	formatted := FormatTimeForDB(original)
	parsed, err := ParseTimeFromDB(formatted)
	require.NoError(t, err)
	assert.True(t, original.Equal(parsed))
}

func TestFormatTimeForDB_SortsAsText(t *testing.T) {
	// The event log orders by the ts column as text, so formatted strings
	// must sort the same way as the instants they encode, including across
	// zones and mixed fractional seconds.
	tests := []struct {
		name    string
		earlier time.Time
		later   time.Time
	}{
		{
			name:    "whole hours",
			earlier: time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
			later:   time.Date(2026, 8, 24, 10, 0, 0, 0, time.UTC),
		},
		{
			name:    "fractional before whole second",
			earlier: time.Date(2026, 8, 24, 9, 0, 0, 500, time.UTC),
			later:   time.Date(2026, 8, 24, 9, 0, 1, 0, time.UTC),
		},
		{
			name:    "non-UTC zone is normalized",
			earlier: time.Date(2026, 8, 24, 10, 0, 0, 0, time.FixedZone("CEST", 2*3600)),
			later:   time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Less(t, FormatTimeForDB(tt.earlier), FormatTimeForDB(tt.later))
		})
	}
}

func TestFormatTimePtrForDB(t *testing.T) {
	assert.Nil(t, FormatTimePtrForDB(nil))

	ts := time.Date(2026, 8, 24, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, FormatTimeForDB(ts), FormatTimePtrForDB(&ts))
}

func TestParseTimeFromDB_Invalid(t *testing.T) {
	_, err := ParseTimeFromDB("not a timestamp")
	require.Error(t, err)
}
