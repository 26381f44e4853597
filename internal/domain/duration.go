package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"timetrack/internal/errors"
)

var (
	bareMinutesRe = regexp.MustCompile(`^\d+$`)
	// Hours then minutes, each at most once, optional space between.
	hoursMinutesRe = regexp.MustCompile(`^(?:(\d+)h)?\s*(?:(\d+)m)?$`)
)

// ParseDuration parses human-friendly duration text into a time.Duration.
//
// Accepted forms: "1h30m", "1h 30m", "2h", "45m", and a bare integer which
// means minutes. Repeated units ("1h2h"), trailing junk, and zero or
// negative totals are rejected with a parse error.
func ParseDuration(text string) (time.Duration, error) {
	s := strings.ToLower(strings.TrimSpace(text))
	if s == "" {
		return 0, errors.NewParseError(text, "duration is empty")
	}

	if bareMinutesRe.MatchString(s) {
		minutes, err := strconv.Atoi(s)
		if err != nil {
			return 0, errors.NewParseError(text, "number out of range")
		}
		return checkPositive(text, time.Duration(minutes)*time.Minute)
	}

	matches := hoursMinutesRe.FindStringSubmatch(s)
	if matches == nil || (matches[1] == "" && matches[2] == "") {
		return 0, errors.NewParseError(text, "expected forms like 1h30m, 2h, 45m, or minutes as a bare number")
	}

	var d time.Duration
	if matches[1] != "" {
		hours, err := strconv.Atoi(matches[1])
		if err != nil {
			return 0, errors.NewParseError(text, "hours out of range")
		}
		d += time.Duration(hours) * time.Hour
	}
	if matches[2] != "" {
		minutes, err := strconv.Atoi(matches[2])
		if err != nil {
			return 0, errors.NewParseError(text, "minutes out of range")
		}
		d += time.Duration(minutes) * time.Minute
	}
	return checkPositive(text, d)
}

func checkPositive(text string, d time.Duration) (time.Duration, error) {
	if d <= 0 {
		return 0, errors.NewParseError(text, "duration must be positive")
	}
	return d, nil
}

// FormatDuration formats a duration as a human-readable string like
// "1h 23m" or "45m".
func FormatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh %dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

// FormatClock formats a duration as H:MM:SS, e.g. "1:23:45".
func FormatClock(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	total := int(d.Seconds())
	hours := total / 3600
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
}
