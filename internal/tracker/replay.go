package tracker

import (
	"fmt"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/repository/sqlite"
)

// buildSessions folds the ordered event log into sessions. The log is the
// source of truth; session state is always derived, never stored. A malformed
// sequence surfaces as an integrity error and is never silently repaired.
func buildSessions(events []*sqlite.Event) ([]*domain.Session, error) {
	var order []string
	bySession := make(map[string][]*sqlite.Event)
	for _, event := range events {
		if _, seen := bySession[event.SessionID]; !seen {
			order = append(order, event.SessionID)
		}
		bySession[event.SessionID] = append(bySession[event.SessionID], event)
	}

	sessions := make([]*domain.Session, 0, len(order))
	for _, sessionID := range order {
		session, err := replaySession(sessionID, bySession[sessionID])
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}
	return sessions, nil
}

// replaySession runs one session's events through the lifecycle state machine.
func replaySession(sessionID string, events []*sqlite.Event) (*domain.Session, error) {
	session := &domain.Session{ID: sessionID}

	for i, event := range events {
		if i > 0 && event.Timestamp.Before(events[i-1].Timestamp) {
			return nil, errors.NewIntegrityError(sessionID, "event timestamps decrease")
		}

		switch event.Kind {
		case sqlite.EventStart:
			if i != 0 {
				return nil, errors.NewIntegrityError(sessionID, "duplicate start event")
			}
			session.EntityID = event.EntityID
			session.Status = domain.StatusRunning
			session.Intervals = append(session.Intervals, domain.Interval{Start: event.Timestamp})

		case sqlite.EventPause:
			if i == 0 {
				return nil, errors.NewIntegrityError(sessionID, "first event is not a start")
			}
			if session.Status != domain.StatusRunning {
				return nil, errors.NewIntegrityError(sessionID,
					fmt.Sprintf("pause event while %s", session.Status))
			}
			closeOpenInterval(session, event)
			session.Status = domain.StatusPaused

		case sqlite.EventResume:
			if i == 0 {
				return nil, errors.NewIntegrityError(sessionID, "first event is not a start")
			}
			if session.Status != domain.StatusPaused {
				return nil, errors.NewIntegrityError(sessionID,
					fmt.Sprintf("resume event while %s", session.Status))
			}
			session.Status = domain.StatusRunning
			session.Intervals = append(session.Intervals, domain.Interval{Start: event.Timestamp})

		case sqlite.EventStop:
			if i == 0 {
				return nil, errors.NewIntegrityError(sessionID, "first event is not a start")
			}
			if session.Status == domain.StatusStopped {
				return nil, errors.NewIntegrityError(sessionID, "event after stop")
			}
			if session.Status == domain.StatusRunning {
				closeOpenInterval(session, event)
			}
			session.Status = domain.StatusStopped

		default:
			return nil, errors.NewIntegrityError(sessionID,
				fmt.Sprintf("unknown event kind %q", event.Kind))
		}

		if event.Notes != "" {
			session.Notes = event.Notes
		}

		if session.Status == domain.StatusStopped && i != len(events)-1 {
			return nil, errors.NewIntegrityError(sessionID, "event after stop")
		}
	}

	if len(session.Intervals) == 0 {
		return nil, errors.NewIntegrityError(sessionID, "session has no start event")
	}
	return session, nil
}

func closeOpenInterval(session *domain.Session, event *sqlite.Event) {
	last := &session.Intervals[len(session.Intervals)-1]
	ts := event.Timestamp
	last.End = &ts
}
