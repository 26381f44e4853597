package cli

import (
	"context"
	"fmt"
	"io"
	"sort"
	"time"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
	"timetrack/internal/tracker"
)

// mockTracker implements the Tracker interface for testing. It keeps entities
// and active sessions in memory and supports fault injection via failWith.
type mockTracker struct {
	entities    map[string]*domain.Entity
	active      map[string]*tracker.SessionStatus
	activeOrder []string
	logged      []*tracker.SessionStatus
	sessions    []*tracker.SessionDetail
	deleted     []string
	nextID      int64
	nextSession int64
	failWith    error
}

func newMockTracker() *mockTracker {
	return &mockTracker{
		entities: make(map[string]*domain.Entity),
		active:   make(map[string]*tracker.SessionStatus),
		nextID:   1,
	}
}

func (m *mockTracker) getOrCreate(name string, kind domain.Kind) *domain.Entity {
	if entity, ok := m.entities[name]; ok {
		return entity
	}
	entity := &domain.Entity{
		ID:        m.nextID,
		Name:      name,
		Kind:      kind,
		Priority:  domain.PriorityDefault,
		CreatedAt: time.Now(),
	}
	m.entities[name] = entity
	m.nextID++
	return entity
}

func (m *mockTracker) newStatus(entity *domain.Entity, status domain.Status) *tracker.SessionStatus {
	m.nextSession++
	start := time.Now()
	return &tracker.SessionStatus{
		Entity: *entity,
		Session: &domain.Session{
			ID:        fmt.Sprintf("session-%d", m.nextSession),
			EntityID:  entity.ID,
			Intervals: []domain.Interval{{Start: start}},
			Status:    status,
		},
	}
}

func (m *mockTracker) start(name string, kind domain.Kind) (*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.active[name]; ok {
		return nil, errors.NewConflictError(name, "already has an active session")
	}
	entity := m.getOrCreate(name, kind)
	status := m.newStatus(entity, domain.StatusRunning)
	m.active[name] = status
	m.activeOrder = append(m.activeOrder, name)
	return status, nil
}

func (m *mockTracker) Start(ctx context.Context, name string) (*tracker.SessionStatus, error) {
	return m.start(name, domain.KindProject)
}

func (m *mockTracker) StartBackground(ctx context.Context, name string) (*tracker.SessionStatus, error) {
	return m.start(name, domain.KindBackgroundTask)
}

func (m *mockTracker) Pause(ctx context.Context, name string) (*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	status, ok := m.active[name]
	if !ok {
		return nil, errors.NewNotFoundError("active session", name)
	}
	if status.Session.Status != domain.StatusRunning {
		return nil, errors.NewInvalidStateError("pause", string(status.Session.Status))
	}
	status.Session.Status = domain.StatusPaused
	return status, nil
}

func (m *mockTracker) Resume(ctx context.Context, name string) (*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	status, ok := m.active[name]
	if !ok {
		return nil, errors.NewNotFoundError("active session", name)
	}
	if status.Session.Status != domain.StatusPaused {
		return nil, errors.NewInvalidStateError("resume", string(status.Session.Status))
	}
	status.Session.Status = domain.StatusRunning
	return status, nil
}

func (m *mockTracker) stopOne(name string, notes string) (*tracker.SessionStatus, error) {
	status, ok := m.active[name]
	if !ok {
		return nil, errors.NewNotFoundError("active session", name)
	}
	end := time.Now()
	status.Session.Intervals[len(status.Session.Intervals)-1].End = &end
	status.Session.Status = domain.StatusStopped
	status.Session.Notes = notes
	delete(m.active, name)
	for i, n := range m.activeOrder {
		if n == name {
			m.activeOrder = append(m.activeOrder[:i], m.activeOrder[i+1:]...)
			break
		}
	}
	return status, nil
}

func (m *mockTracker) Stop(ctx context.Context, name string, notes string) (*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if name == "" {
		if len(m.activeOrder) == 0 {
			return nil, errors.NewNotFoundError("active session", "any")
		}
		name = m.activeOrder[len(m.activeOrder)-1]
	}
	return m.stopOne(name, notes)
}

func (m *mockTracker) StopAll(ctx context.Context, notes string) ([]*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	names := append([]string(nil), m.activeOrder...)
	stopped := make([]*tracker.SessionStatus, 0, len(names))
	for _, name := range names {
		status, err := m.stopOne(name, notes)
		if err != nil {
			return nil, err
		}
		stopped = append(stopped, status)
	}
	return stopped, nil
}

func (m *mockTracker) Switch(ctx context.Context, name string) (*tracker.SwitchResult, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.active[name]; ok {
		return nil, errors.NewConflictError(name, "already has an active session")
	}
	stopped, err := m.StopAll(ctx, "")
	if err != nil {
		return nil, err
	}
	started, err := m.Start(ctx, name)
	if err != nil {
		return nil, err
	}
	return &tracker.SwitchResult{Stopped: stopped, Started: started}, nil
}

func (m *mockTracker) Cancel(ctx context.Context, name string) (*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if name == "" {
		if len(m.activeOrder) == 0 {
			return nil, errors.NewNotFoundError("active session", "any")
		}
		name = m.activeOrder[len(m.activeOrder)-1]
	}
	return m.stopOne(name, "")
}

func (m *mockTracker) Log(ctx context.Context, name string, durationText string, notes string, endText string) (*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	duration, err := domain.ParseDuration(durationText)
	if err != nil {
		return nil, err
	}
	entity := m.getOrCreate(name, domain.KindProject)
	end := time.Now()
	start := end.Add(-duration)
	status := &tracker.SessionStatus{
		Entity: *entity,
		Session: &domain.Session{
			ID:        fmt.Sprintf("logged-%d", len(m.logged)+1),
			EntityID:  entity.ID,
			Intervals: []domain.Interval{{Start: start, End: &end}},
			Status:    domain.StatusStopped,
			Notes:     notes,
		},
		Elapsed: duration,
	}
	m.logged = append(m.logged, status)
	return status, nil
}

func (m *mockTracker) Status(ctx context.Context) ([]*tracker.SessionStatus, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	statuses := make([]*tracker.SessionStatus, 0, len(m.activeOrder))
	for _, name := range m.activeOrder {
		statuses = append(statuses, m.active[name])
	}
	return statuses, nil
}

func (m *mockTracker) ListSessions(ctx context.Context, period domain.Period, limit int) ([]*tracker.SessionDetail, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	details := m.sessions
	if limit > 0 && len(details) > limit {
		details = details[:limit]
	}
	return details, nil
}

func (m *mockTracker) DeleteSession(ctx context.Context, sessionID string) error {
	if m.failWith != nil {
		return m.failWith
	}
	m.deleted = append(m.deleted, sessionID)
	return nil
}

func (m *mockTracker) Summarize(ctx context.Context, period domain.Period) (*tracker.SummaryReport, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	report := &tracker.SummaryReport{Period: period}
	for _, name := range sortedNames(m.entities) {
		entity := m.entities[name]
		row := tracker.EntityTotal{Entity: *entity, Total: time.Hour, Sessions: 1}
		if entity.IsBackground() {
			report.Background = append(report.Background, row)
		} else {
			report.Projects = append(report.Projects, row)
		}
		report.Total += row.Total
	}
	return report, nil
}

func (m *mockTracker) SummarizeByTag(ctx context.Context, period domain.Period) (*tracker.TagReport, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &tracker.TagReport{Period: period}, nil
}

func (m *mockTracker) SummarizeByDay(ctx context.Context, period domain.Period) (*tracker.DayReport, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	return &tracker.DayReport{Period: period}, nil
}

func (m *mockTracker) ExportCSV(ctx context.Context, period domain.Period, w io.Writer) error {
	if m.failWith != nil {
		return m.failWith
	}
	_, err := io.WriteString(w, "session_id,entity,kind,priority,tags,status,start,end,active_seconds,notes\n")
	return err
}

func (m *mockTracker) CreateEntity(ctx context.Context, name string, kind domain.Kind) (*domain.Entity, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	if _, ok := m.entities[name]; ok {
		return nil, errors.NewConflictError(name, "entity already exists")
	}
	return m.getOrCreate(name, kind), nil
}

func (m *mockTracker) RenameEntity(ctx context.Context, name string, newName string) (*domain.Entity, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	entity, ok := m.entities[name]
	if !ok {
		return nil, errors.NewNotFoundError("entity", name)
	}
	if _, taken := m.entities[newName]; taken {
		return nil, errors.NewConflictError(newName, "entity already exists")
	}
	delete(m.entities, name)
	entity.Name = newName
	m.entities[newName] = entity
	return entity, nil
}

func (m *mockTracker) SetPriority(ctx context.Context, name string, priority int) (*domain.Entity, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	entity, ok := m.entities[name]
	if !ok {
		return nil, errors.NewNotFoundError("entity", name)
	}
	entity.Priority = priority
	return entity, nil
}

func (m *mockTracker) TagEntity(ctx context.Context, name string, tag string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	entity, ok := m.entities[name]
	if !ok {
		return false, errors.NewNotFoundError("entity", name)
	}
	if entity.HasTag(tag) {
		return false, nil
	}
	entity.Tags = append(entity.Tags, tag)
	return true, nil
}

func (m *mockTracker) UntagEntity(ctx context.Context, name string, tag string) (bool, error) {
	if m.failWith != nil {
		return false, m.failWith
	}
	entity, ok := m.entities[name]
	if !ok {
		return false, errors.NewNotFoundError("entity", name)
	}
	for i, t := range entity.Tags {
		if t == tag {
			entity.Tags = append(entity.Tags[:i], entity.Tags[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockTracker) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	entities := make([]domain.Entity, 0, len(m.entities))
	for _, name := range sortedNames(m.entities) {
		entities = append(entities, *m.entities[name])
	}
	return entities, nil
}

func (m *mockTracker) ListTags(ctx context.Context) ([]string, error) {
	if m.failWith != nil {
		return nil, m.failWith
	}
	seen := make(map[string]bool)
	for _, entity := range m.entities {
		for _, tag := range entity.Tags {
			seen[tag] = true
		}
	}
	tags := make([]string, 0, len(seen))
	for tag := range seen {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags, nil
}

func (m *mockTracker) DeleteEntity(ctx context.Context, name string, cascade bool) error {
	if m.failWith != nil {
		return m.failWith
	}
	if _, ok := m.entities[name]; !ok {
		return errors.NewNotFoundError("entity", name)
	}
	delete(m.entities, name)
	return nil
}

func sortedNames(entities map[string]*domain.Entity) []string {
	names := make([]string, 0, len(entities))
	for name := range entities {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
