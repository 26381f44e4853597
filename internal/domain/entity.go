package domain

import (
	"time"
)

// Kind distinguishes the two sorts of tracked entity.
type Kind string

const (
	KindProject        Kind = "project"
	KindBackgroundTask Kind = "background_task"
)

// Priority bounds. 1 is the highest priority, 5 the lowest.
const (
	PriorityHighest = 1
	PriorityDefault = 3
	PriorityLowest  = 5
)

// Entity is a named project or background task that sessions are recorded
// against. This is a pure domain model without database-specific concerns.
type Entity struct {
	ID        int64
	Name      string
	Kind      Kind
	Priority  int
	Tags      []string
	CreatedAt time.Time
}

// NewProject creates a project with the default priority.
func NewProject(name string) Entity {
	return Entity{
		Name:     name,
		Kind:     KindProject,
		Priority: PriorityDefault,
	}
}

// NewBackgroundTask creates a background task. Background tasks carry no
// meaningful priority or tags and are reported separately in summaries.
func NewBackgroundTask(name string) Entity {
	return Entity{
		Name:     name,
		Kind:     KindBackgroundTask,
		Priority: PriorityDefault,
	}
}

// IsBackground returns true if the entity is a background task.
func (e Entity) IsBackground() bool {
	return e.Kind == KindBackgroundTask
}

// HasTag reports whether the entity carries the given tag.
func (e Entity) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// IsValid checks if the entity has valid data.
func (e Entity) IsValid() bool {
	if e.Name == "" {
		return false
	}
	if e.Kind != KindProject && e.Kind != KindBackgroundTask {
		return false
	}
	if e.Priority < PriorityHighest || e.Priority > PriorityLowest {
		return false
	}
	return true
}

// String returns the entity name for display purposes.
func (e Entity) String() string {
	return e.Name
}

// PriorityLabel returns the display label for a priority level.
func PriorityLabel(priority int) string {
	switch priority {
	case 1:
		return "Critical"
	case 2:
		return "High"
	case 3:
		return "Medium"
	case 4:
		return "Low"
	case 5:
		return "Very Low"
	default:
		return "Medium"
	}
}
