package tracker

import (
	"context"
	"io"
	"time"

	"timetrack/internal/domain"
)

// SessionStatus pairs a session with its entity and the elapsed active time
// at the moment the operation sampled the clock.
type SessionStatus struct {
	Entity  domain.Entity
	Session *domain.Session
	Elapsed time.Duration
}

// SwitchResult reports what a switch stopped and what it started.
type SwitchResult struct {
	Stopped []*SessionStatus
	Started *SessionStatus
}

// EntityTotal is one row of a summary: an entity and its clipped total for
// the reporting window.
type EntityTotal struct {
	Entity   domain.Entity
	Total    time.Duration
	Sessions int
	Running  bool
}

// SummaryReport is the per-entity summary for one reporting period.
// Projects and background tasks are reported separately.
type SummaryReport struct {
	Period     domain.Period
	Window     domain.Window
	Projects   []EntityTotal
	Background []EntityTotal
	Total      time.Duration
}

// TagTotal is one row of a tag summary. An entity carrying several tags
// contributes its full total to each of them.
type TagTotal struct {
	Tag      string
	Total    time.Duration
	Entities int
}

// UntaggedLabel is the bucket for entities carrying no tags. It always sorts
// after every real tag.
const UntaggedLabel = "Untagged"

// TagReport is the per-tag summary for one reporting period.
type TagReport struct {
	Period domain.Period
	Window domain.Window
	Rows   []TagTotal
	Total  time.Duration
}

// DayTotal is one calendar day's clipped total.
type DayTotal struct {
	Day   time.Time
	Total time.Duration
}

// DayReport is the per-day summary for one reporting period.
type DayReport struct {
	Period domain.Period
	Window domain.Window
	Rows   []DayTotal
	Total  time.Duration
}

// SessionDetail is one session prepared for listing or export.
type SessionDetail struct {
	Entity  domain.Entity
	Session *domain.Session
	Start   time.Time
	End     *time.Time
	Active  time.Duration
}

// Tracker is the session lifecycle engine. Mutating operations sample the
// clock once, validate the transition against replayed state, and commit the
// resulting events atomically.
type Tracker interface {
	// Session lifecycle
	Start(ctx context.Context, name string) (*SessionStatus, error)
	StartBackground(ctx context.Context, name string) (*SessionStatus, error)
	Pause(ctx context.Context, name string) (*SessionStatus, error)
	Resume(ctx context.Context, name string) (*SessionStatus, error)
	Stop(ctx context.Context, name string, notes string) (*SessionStatus, error)
	StopAll(ctx context.Context, notes string) ([]*SessionStatus, error)
	Switch(ctx context.Context, name string) (*SwitchResult, error)
	Cancel(ctx context.Context, name string) (*SessionStatus, error)
	Log(ctx context.Context, name string, durationText string, notes string, endText string) (*SessionStatus, error)

	// Inspection
	Status(ctx context.Context) ([]*SessionStatus, error)
	ListSessions(ctx context.Context, period domain.Period, limit int) ([]*SessionDetail, error)
	DeleteSession(ctx context.Context, sessionID string) error

	// Reporting
	Summarize(ctx context.Context, period domain.Period) (*SummaryReport, error)
	SummarizeByTag(ctx context.Context, period domain.Period) (*TagReport, error)
	SummarizeByDay(ctx context.Context, period domain.Period) (*DayReport, error)
	ExportCSV(ctx context.Context, period domain.Period, w io.Writer) error

	// Entity catalog
	CreateEntity(ctx context.Context, name string, kind domain.Kind) (*domain.Entity, error)
	RenameEntity(ctx context.Context, name string, newName string) (*domain.Entity, error)
	SetPriority(ctx context.Context, name string, priority int) (*domain.Entity, error)
	TagEntity(ctx context.Context, name string, tag string) (bool, error)
	UntagEntity(ctx context.Context, name string, tag string) (bool, error)
	ListEntities(ctx context.Context) ([]domain.Entity, error)
	ListTags(ctx context.Context) ([]string, error)
	DeleteEntity(ctx context.Context, name string, cascade bool) error
}
