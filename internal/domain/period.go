package domain

import (
	"strings"
	"time"

	"timetrack/internal/errors"
)

// Window is a half-open time range [Start, End) used to bucket and clip
// durations for summaries. A zero Start or End means unbounded on that side.
type Window struct {
	Start time.Time
	End   time.Time
}

// Contains reports whether t falls within the window.
func (w Window) Contains(t time.Time) bool {
	if !w.Start.IsZero() && t.Before(w.Start) {
		return false
	}
	if !w.End.IsZero() && !t.Before(w.End) {
		return false
	}
	return true
}

// Period names a reporting bucket relative to "now".
type Period string

const (
	PeriodToday     Period = "today"
	PeriodThisWeek  Period = "week"
	PeriodThisMonth Period = "month"
	PeriodLastMonth Period = "lastmonth"
	PeriodAllTime   Period = "all"
)

// ParsePeriod parses user text into a Period.
func ParsePeriod(text string) (Period, error) {
	switch strings.ToLower(strings.TrimSpace(text)) {
	case "today":
		return PeriodToday, nil
	case "week", "thisweek", "this_week":
		return PeriodThisWeek, nil
	case "month", "thismonth", "this_month":
		return PeriodThisMonth, nil
	case "lastmonth", "last_month":
		return PeriodLastMonth, nil
	case "all", "alltime", "all_time":
		return PeriodAllTime, nil
	default:
		return "", errors.NewParseError(text, "expected today, week, month, lastmonth, or all")
	}
}

// Window computes the period's time range relative to now in now's location.
// weekStart is the first day of the week for PeriodThisWeek (Monday unless
// configured otherwise).
func (p Period) Window(now time.Time, weekStart time.Weekday) Window {
	midnight := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	switch p {
	case PeriodToday:
		return Window{Start: midnight, End: now}
	case PeriodThisWeek:
		days := int(now.Weekday() - weekStart)
		if days < 0 {
			days += 7
		}
		return Window{Start: midnight.AddDate(0, 0, -days), End: now}
	case PeriodThisMonth:
		start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: start, End: now}
	case PeriodLastMonth:
		thisMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		return Window{Start: thisMonth.AddDate(0, -1, 0), End: thisMonth}
	default:
		return Window{}
	}
}

// DayWindow returns the window covering the calendar day containing t.
func DayWindow(t time.Time) Window {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return Window{Start: start, End: start.AddDate(0, 0, 1)}
}
