package sqlite

import "time"

// Entity represents a tracked project or background task row.
type Entity struct {
	ID        int64
	Name      string
	Kind      string
	Priority  int
	CreatedAt time.Time
}

// Tag represents a tag row.
type Tag struct {
	ID   int64
	Name string
}

// Event kinds stored in the event log.
const (
	EventStart  = "start"
	EventPause  = "pause"
	EventResume = "resume"
	EventStop   = "stop"
)

// Event is one row of the append-only session event log. Events are ordered
// by (Timestamp, ID); the ID tiebreak keeps same-instant events (a switch,
// a retroactive log) in commit order.
type Event struct {
	ID        int64
	SessionID string
	EntityID  int64
	Kind      string
	Timestamp time.Time
	Notes     string
}
