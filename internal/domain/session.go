package domain

import (
	"time"
)

// Status is the lifecycle state of a session.
type Status string

const (
	StatusRunning Status = "running"
	StatusPaused  Status = "paused"
	StatusStopped Status = "stopped"
)

// Interval is one contiguous span during which a session was actively
// accruing time. An open interval (nil End) means the session is running.
type Interval struct {
	Start time.Time
	End   *time.Time
}

// IsOpen returns true if the interval has no end timestamp.
func (iv Interval) IsOpen() bool {
	return iv.End == nil
}

// Duration returns the span of the interval. Open intervals are measured
// against the supplied now, so live sessions grow without requiring a write.
func (iv Interval) Duration(now time.Time) time.Duration {
	end := now
	if iv.End != nil {
		end = *iv.End
	}
	if end.Before(iv.Start) {
		return 0
	}
	return end.Sub(iv.Start)
}

// ClippedDuration returns the portion of the interval that overlaps the
// window. Open intervals are closed at now before clipping.
func (iv Interval) ClippedDuration(w Window, now time.Time) time.Duration {
	start := iv.Start
	end := now
	if iv.End != nil {
		end = *iv.End
	}
	if !w.Start.IsZero() && start.Before(w.Start) {
		start = w.Start
	}
	if !w.End.IsZero() && end.After(w.End) {
		end = w.End
	}
	if !end.After(start) {
		return 0
	}
	return end.Sub(start)
}

// Session is one tracked occurrence of work on an entity, bounded by its
// first start event and its stop. Pause/resume splits the session into
// intervals rather than keeping a separate paused-time counter, so window
// clipping stays a simple fold over intervals.
type Session struct {
	ID        string
	EntityID  int64
	Intervals []Interval
	Status    Status
	Notes     string
}

// IsActive returns true while the session is running or paused.
func (s *Session) IsActive() bool {
	return s.Status == StatusRunning || s.Status == StatusPaused
}

// OpenInterval returns the currently open interval, or nil. Only a running
// session has one.
func (s *Session) OpenInterval() *Interval {
	if len(s.Intervals) == 0 {
		return nil
	}
	last := &s.Intervals[len(s.Intervals)-1]
	if last.IsOpen() {
		return last
	}
	return nil
}

// StartTime returns the timestamp of the session's first interval.
func (s *Session) StartTime() time.Time {
	if len(s.Intervals) == 0 {
		return time.Time{}
	}
	return s.Intervals[0].Start
}

// EndTime returns the end of the session's last closed interval, or nil if
// the session has an open interval or no intervals at all.
func (s *Session) EndTime() *time.Time {
	if len(s.Intervals) == 0 {
		return nil
	}
	return s.Intervals[len(s.Intervals)-1].End
}

// ActiveDuration is the total non-paused elapsed time: the sum of closed
// interval spans plus the live span of an open interval measured at now.
// Recomputed on every read; never cached across pause/resume boundaries.
func (s *Session) ActiveDuration(now time.Time) time.Duration {
	var total time.Duration
	for _, iv := range s.Intervals {
		total += iv.Duration(now)
	}
	return total
}

// DurationInWindow clips every interval to the window before summing. A
// session spanning a day boundary contributes only the overlapping portion
// to each side, which keeps period bucketing exact.
func (s *Session) DurationInWindow(w Window, now time.Time) time.Duration {
	var total time.Duration
	for _, iv := range s.Intervals {
		total += iv.ClippedDuration(w, now)
	}
	return total
}

// IntersectsWindow reports whether any interval overlaps the window.
func (s *Session) IntersectsWindow(w Window, now time.Time) bool {
	return s.DurationInWindow(w, now) > 0
}
