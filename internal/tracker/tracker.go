package tracker

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/logging"
	"timetrack/internal/repository/sqlite"
	"timetrack/internal/validation"
)

// trackerImpl implements the Tracker interface on top of the event log
// repository. The mutex serializes mutating operations within the process;
// cross-process writers are serialized by the database itself.
type trackerImpl struct {
	repo      sqlite.Repository
	mapper    *domain.Mapper
	validator *validation.EntityValidator
	weekStart time.Weekday
	now       func() time.Time
	mu        sync.Mutex
}

// New creates a new Tracker instance.
func New(repo sqlite.Repository, weekStart time.Weekday) Tracker {
	return &trackerImpl{
		repo:      repo,
		mapper:    domain.NewMapper(),
		validator: validation.NewEntityValidator(),
		weekStart: weekStart,
		now:       time.Now,
	}
}

// NewWithClock creates a Tracker with an injected clock for tests.
func NewWithClock(repo sqlite.Repository, weekStart time.Weekday, now func() time.Time) Tracker {
	t := New(repo, weekStart).(*trackerImpl)
	t.now = now
	return t
}

// Start begins tracking a project, creating it on first use. Fails with a
// conflict error if the entity already has an active session; other entities
// may keep running concurrently.
func (t *trackerImpl) Start(ctx context.Context, name string) (*SessionStatus, error) {
	return t.startKind(ctx, name, domain.KindProject)
}

// StartBackground begins tracking a background task, creating it on first use.
func (t *trackerImpl) StartBackground(ctx context.Context, name string) (*SessionStatus, error) {
	return t.startKind(ctx, name, domain.KindBackgroundTask)
}

func (t *trackerImpl) startKind(ctx context.Context, name string, kind domain.Kind) (*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entity, err := t.getOrCreateEntity(ctx, name, kind)
	if err != nil {
		return nil, err
	}

	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return nil, err
	}
	if active := activeSessionFor(sessions, entity.ID); active != nil {
		return nil, errors.NewConflictError(entity.Name,
			"a session is already "+string(active.Status))
	}

	now := t.now()
	event := &sqlite.Event{
		SessionID: uuid.New().String(),
		EntityID:  entity.ID,
		Kind:      sqlite.EventStart,
		Timestamp: now,
	}
	if err := t.repo.AppendEvents(ctx, []*sqlite.Event{event}); err != nil {
		return nil, err
	}
	logging.Debugf("started session %s for %s\n", event.SessionID, entity.Name)

	session := &domain.Session{
		ID:        event.SessionID,
		EntityID:  entity.ID,
		Status:    domain.StatusRunning,
		Intervals: []domain.Interval{{Start: now}},
	}
	return &SessionStatus{Entity: entity, Session: session}, nil
}

// Pause suspends the entity's running session. Paused time accrues nothing.
func (t *trackerImpl) Pause(ctx context.Context, name string) (*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entity, session, err := t.requireActiveSession(ctx, name, "pause")
	if err != nil {
		return nil, err
	}
	if session.Status != domain.StatusRunning {
		return nil, errors.NewInvalidStateError("pause", string(session.Status))
	}

	now := t.now()
	event := &sqlite.Event{
		SessionID: session.ID,
		EntityID:  entity.ID,
		Kind:      sqlite.EventPause,
		Timestamp: now,
	}
	if err := t.repo.AppendEvents(ctx, []*sqlite.Event{event}); err != nil {
		return nil, err
	}

	iv := session.OpenInterval()
	iv.End = &now
	session.Status = domain.StatusPaused
	return &SessionStatus{Entity: entity, Session: session, Elapsed: session.ActiveDuration(now)}, nil
}

// Resume continues the entity's paused session with a fresh interval.
func (t *trackerImpl) Resume(ctx context.Context, name string) (*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entity, session, err := t.requireActiveSession(ctx, name, "resume")
	if err != nil {
		return nil, err
	}
	if session.Status != domain.StatusPaused {
		return nil, errors.NewInvalidStateError("resume", string(session.Status))
	}

	now := t.now()
	event := &sqlite.Event{
		SessionID: session.ID,
		EntityID:  entity.ID,
		Kind:      sqlite.EventResume,
		Timestamp: now,
	}
	if err := t.repo.AppendEvents(ctx, []*sqlite.Event{event}); err != nil {
		return nil, err
	}

	session.Intervals = append(session.Intervals, domain.Interval{Start: now})
	session.Status = domain.StatusRunning
	return &SessionStatus{Entity: entity, Session: session, Elapsed: session.ActiveDuration(now)}, nil
}

// Stop ends the entity's active session. Stopping a paused session is legal;
// the pause already closed the last interval. An empty name stops the most
// recently started active session.
func (t *trackerImpl) Stop(ctx context.Context, name string, notes string) (*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var entity domain.Entity
	var session *domain.Session
	var err error

	if name == "" {
		entity, session, err = t.mostRecentActiveSession(ctx)
	} else {
		entity, session, err = t.requireActiveSession(ctx, name, "stop")
	}
	if err != nil {
		return nil, err
	}

	now := t.now()
	if err := t.stopSession(ctx, entity.ID, session, notes, now); err != nil {
		return nil, err
	}
	return &SessionStatus{Entity: entity, Session: session, Elapsed: session.ActiveDuration(now)}, nil
}

// StopAll ends every active session across all entities.
func (t *trackerImpl) StopAll(ctx context.Context, notes string) ([]*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.stopAllLocked(ctx, notes)
}

func (t *trackerImpl) stopAllLocked(ctx context.Context, notes string) ([]*SessionStatus, error) {
	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var stopped []*SessionStatus
	var events []*sqlite.Event
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		events = append(events, &sqlite.Event{
			SessionID: session.ID,
			EntityID:  session.EntityID,
			Kind:      sqlite.EventStop,
			Timestamp: now,
			Notes:     notes,
		})
		applyStop(session, notes, now)

		entity, err := t.entityByID(ctx, session.EntityID)
		if err != nil {
			return nil, err
		}
		stopped = append(stopped, &SessionStatus{
			Entity:  entity,
			Session: session,
			Elapsed: session.ActiveDuration(now),
		})
	}

	if err := t.repo.AppendEvents(ctx, events); err != nil {
		return nil, err
	}
	return stopped, nil
}

// Switch stops every active session and starts the named project in one
// atomic operation: all stop events and the start event commit together.
func (t *trackerImpl) Switch(ctx context.Context, name string) (*SwitchResult, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entity, err := t.resolveOrCreateEntity(ctx, name, domain.KindProject)
	if err != nil {
		return nil, err
	}

	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var stopped []*SessionStatus
	var events []*sqlite.Event
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		if session.EntityID == entity.ID {
			return nil, errors.NewConflictError(entity.Name,
				"a session is already "+string(session.Status))
		}
		events = append(events, &sqlite.Event{
			SessionID: session.ID,
			EntityID:  session.EntityID,
			Kind:      sqlite.EventStop,
			Timestamp: now,
		})
		applyStop(session, "", now)

		sessionEntity, err := t.entityByID(ctx, session.EntityID)
		if err != nil {
			return nil, err
		}
		stopped = append(stopped, &SessionStatus{
			Entity:  sessionEntity,
			Session: session,
			Elapsed: session.ActiveDuration(now),
		})
	}

	startEvent := &sqlite.Event{
		SessionID: uuid.New().String(),
		EntityID:  entity.ID,
		Kind:      sqlite.EventStart,
		Timestamp: now,
	}
	events = append(events, startEvent)

	if err := t.repo.AppendEvents(ctx, events); err != nil {
		return nil, err
	}

	started := &domain.Session{
		ID:        startEvent.SessionID,
		EntityID:  entity.ID,
		Status:    domain.StatusRunning,
		Intervals: []domain.Interval{{Start: now}},
	}
	return &SwitchResult{
		Stopped: stopped,
		Started: &SessionStatus{Entity: entity, Session: started},
	}, nil
}

// Cancel discards the entity's active session as if it never happened. Its
// events are removed in one transaction; nothing of it remains in the log.
// An empty name cancels the most recently started active session.
func (t *trackerImpl) Cancel(ctx context.Context, name string) (*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var entity domain.Entity
	var session *domain.Session
	var err error

	if name == "" {
		entity, session, err = t.mostRecentActiveSession(ctx)
	} else {
		entity, session, err = t.requireActiveSession(ctx, name, "cancel")
	}
	if err != nil {
		return nil, err
	}

	now := t.now()
	elapsed := session.ActiveDuration(now)
	if _, err := t.repo.DeleteSessionEvents(ctx, session.ID); err != nil {
		return nil, err
	}
	logging.Debugf("cancelled session %s for %s\n", session.ID, entity.Name)

	return &SessionStatus{Entity: entity, Session: session, Elapsed: elapsed}, nil
}

// Log records a completed session retroactively without touching any live
// session. The start and stop events commit in one transaction, so the log
// never observes a half-written session.
func (t *trackerImpl) Log(ctx context.Context, name string, durationText string, notes string, endText string) (*SessionStatus, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	duration, err := domain.ParseDuration(durationText)
	if err != nil {
		return nil, err
	}

	end, err := t.parseEndTimestamp(endText)
	if err != nil {
		return nil, err
	}
	start := end.Add(-duration)

	entity, err := t.resolveOrCreateEntity(ctx, name, domain.KindProject)
	if err != nil {
		return nil, err
	}

	sessionID := uuid.New().String()
	events := []*sqlite.Event{
		{SessionID: sessionID, EntityID: entity.ID, Kind: sqlite.EventStart, Timestamp: start},
		{SessionID: sessionID, EntityID: entity.ID, Kind: sqlite.EventStop, Timestamp: end, Notes: notes},
	}
	if err := t.repo.AppendEvents(ctx, events); err != nil {
		return nil, err
	}

	session := &domain.Session{
		ID:        sessionID,
		EntityID:  entity.ID,
		Status:    domain.StatusStopped,
		Intervals: []domain.Interval{{Start: start, End: &end}},
		Notes:     notes,
	}
	return &SessionStatus{Entity: entity, Session: session, Elapsed: duration}, nil
}

// Status reports every active session ordered by start time.
func (t *trackerImpl) Status(ctx context.Context) ([]*SessionStatus, error) {
	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return nil, err
	}

	now := t.now()
	var statuses []*SessionStatus
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		entity, err := t.entityByID(ctx, session.EntityID)
		if err != nil {
			return nil, err
		}
		statuses = append(statuses, &SessionStatus{
			Entity:  entity,
			Session: session,
			Elapsed: session.ActiveDuration(now),
		})
	}
	return statuses, nil
}

// DeleteSession removes a recorded session from the log. Together with Log
// this is the correction path for mistakes.
func (t *trackerImpl) DeleteSession(ctx context.Context, sessionID string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	deleted, err := t.repo.DeleteSessionEvents(ctx, sessionID)
	if err != nil {
		return err
	}
	if deleted == 0 {
		return errors.NewNotFoundError("session", sessionID)
	}
	return nil
}

// stopSession appends the stop event and folds it into the in-memory session.
func (t *trackerImpl) stopSession(ctx context.Context, entityID int64, session *domain.Session, notes string, now time.Time) error {
	event := &sqlite.Event{
		SessionID: session.ID,
		EntityID:  entityID,
		Kind:      sqlite.EventStop,
		Timestamp: now,
		Notes:     notes,
	}
	if err := t.repo.AppendEvents(ctx, []*sqlite.Event{event}); err != nil {
		return err
	}
	applyStop(session, notes, now)
	return nil
}

func applyStop(session *domain.Session, notes string, now time.Time) {
	if iv := session.OpenInterval(); iv != nil {
		end := now
		iv.End = &end
	}
	session.Status = domain.StatusStopped
	if notes != "" {
		session.Notes = notes
	}
}

// parseEndTimestamp parses the optional end of a retroactive log. Empty means
// now. A date without a time means end of that working day, 17:00 local.
func (t *trackerImpl) parseEndTimestamp(text string) (time.Time, error) {
	if text == "" {
		return t.now(), nil
	}
	loc := t.now().Location()
	if d, err := time.ParseInLocation("2006-01-02", text, loc); err == nil {
		return time.Date(d.Year(), d.Month(), d.Day(), 17, 0, 0, 0, loc), nil
	}
	if ts, err := time.ParseInLocation("2006-01-02 15:04", text, loc); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse(time.RFC3339, text); err == nil {
		return ts, nil
	}
	return time.Time{}, errors.NewParseError(text, "expected YYYY-MM-DD, YYYY-MM-DD HH:MM, or RFC3339")
}

// loadSessions reads the full event log and replays it into sessions.
func (t *trackerImpl) loadSessions(ctx context.Context) ([]*domain.Session, error) {
	events, err := t.repo.ReadAllEvents(ctx, sqlite.EventFilter{})
	if err != nil {
		return nil, err
	}
	return buildSessions(events)
}

// activeSessionFor returns the entity's running or paused session, or nil.
// The one-active-session-per-entity invariant makes the first match the only
// match.
func activeSessionFor(sessions []*domain.Session, entityID int64) *domain.Session {
	for _, session := range sessions {
		if session.EntityID == entityID && session.IsActive() {
			return session
		}
	}
	return nil
}

// requireActiveSession resolves the entity by name and returns its active
// session. An entity with no active session fails as an invalid transition
// from the stopped state.
func (t *trackerImpl) requireActiveSession(ctx context.Context, name string, operation string) (domain.Entity, *domain.Session, error) {
	entity, err := t.entityByName(ctx, name)
	if err != nil {
		return domain.Entity{}, nil, err
	}

	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return domain.Entity{}, nil, err
	}
	session := activeSessionFor(sessions, entity.ID)
	if session == nil {
		return domain.Entity{}, nil, errors.NewInvalidStateError(operation, string(domain.StatusStopped))
	}
	return entity, session, nil
}

// mostRecentActiveSession returns the active session with the latest start.
func (t *trackerImpl) mostRecentActiveSession(ctx context.Context) (domain.Entity, *domain.Session, error) {
	sessions, err := t.loadSessions(ctx)
	if err != nil {
		return domain.Entity{}, nil, err
	}

	var latest *domain.Session
	for _, session := range sessions {
		if !session.IsActive() {
			continue
		}
		if latest == nil || session.StartTime().After(latest.StartTime()) {
			latest = session
		}
	}
	if latest == nil {
		return domain.Entity{}, nil, errors.NewNotFoundError("active session", "any")
	}

	entity, err := t.entityByID(ctx, latest.EntityID)
	if err != nil {
		return domain.Entity{}, nil, err
	}
	return entity, latest, nil
}
