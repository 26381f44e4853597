package sqlite

import (
	"time"
)

// dbTimeFormat is RFC3339 in UTC with fixed-width fractional seconds. The
// fixed width matters: the event log orders by the ts column as text, and
// variable-length fractions would not sort chronologically.
const dbTimeFormat = "2006-01-02T15:04:05.000000000Z"

// FormatTimeForDB formats a time.Time value for database storage. Times are
// normalized to UTC so the stored text sorts chronologically.
func FormatTimeForDB(t time.Time) string {
	return t.UTC().Format(dbTimeFormat)
}

// FormatTimePtrForDB formats a *time.Time value, returning nil if the pointer is nil
func FormatTimePtrForDB(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return FormatTimeForDB(*t)
}

// ParseTimeFromDB parses a stored timestamp back into a time.Time in UTC.
func ParseTimeFromDB(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}
