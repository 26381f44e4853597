package tracker

import (
	"context"
	"fmt"
	"sort"

	"timetrack/internal/errors"
	"timetrack/internal/repository/sqlite"
)

// mockRepository is an in-memory implementation of sqlite.Repository for
// exercising the engine without a database.
type mockRepository struct {
	entities    map[int64]*sqlite.Entity
	tags        map[int64][]string
	events      []*sqlite.Event
	nextID      int64
	nextEventID int64
	appendErr   error
}

func newMockRepository() *mockRepository {
	return &mockRepository{
		entities: make(map[int64]*sqlite.Entity),
		tags:     make(map[int64][]string),
	}
}

func (m *mockRepository) CreateEntity(ctx context.Context, entity *sqlite.Entity) error {
	m.nextID++
	entity.ID = m.nextID
	stored := *entity
	m.entities[entity.ID] = &stored
	return nil
}

func (m *mockRepository) GetEntity(ctx context.Context, id int64) (*sqlite.Entity, error) {
	if entity, ok := m.entities[id]; ok {
		copied := *entity
		return &copied, nil
	}
	return nil, errors.NewNotFoundError("entity", fmt.Sprintf("%d", id))
}

func (m *mockRepository) GetEntityByName(ctx context.Context, name string) (*sqlite.Entity, error) {
	for _, entity := range m.entities {
		if entity.Name == name {
			copied := *entity
			return &copied, nil
		}
	}
	return nil, errors.NewNotFoundError("entity", name)
}

func (m *mockRepository) ListEntities(ctx context.Context) ([]*sqlite.Entity, error) {
	var entities []*sqlite.Entity
	for _, entity := range m.entities {
		copied := *entity
		entities = append(entities, &copied)
	}
	sort.Slice(entities, func(i, j int) bool {
		if entities[i].Priority != entities[j].Priority {
			return entities[i].Priority < entities[j].Priority
		}
		return entities[i].Name < entities[j].Name
	})
	return entities, nil
}

func (m *mockRepository) UpdateEntity(ctx context.Context, entity *sqlite.Entity) error {
	if _, ok := m.entities[entity.ID]; !ok {
		return errors.NewNotFoundError("entity", fmt.Sprintf("%d", entity.ID))
	}
	stored := *entity
	m.entities[entity.ID] = &stored
	return nil
}

func (m *mockRepository) DeleteEntity(ctx context.Context, id int64, cascade bool) error {
	if _, ok := m.entities[id]; !ok {
		return errors.NewNotFoundError("entity", fmt.Sprintf("%d", id))
	}
	var remaining []*sqlite.Event
	var owned int
	for _, event := range m.events {
		if event.EntityID == id {
			owned++
		} else {
			remaining = append(remaining, event)
		}
	}
	if owned > 0 && !cascade {
		return errors.NewConflictError(fmt.Sprintf("entity %d", id), "recorded sessions exist")
	}
	m.events = remaining
	delete(m.entities, id)
	delete(m.tags, id)
	return nil
}

func (m *mockRepository) AddTag(ctx context.Context, entityID int64, tag string) (bool, error) {
	for _, existing := range m.tags[entityID] {
		if existing == tag {
			return false, nil
		}
	}
	m.tags[entityID] = append(m.tags[entityID], tag)
	sort.Strings(m.tags[entityID])
	return true, nil
}

func (m *mockRepository) RemoveTag(ctx context.Context, entityID int64, tag string) (bool, error) {
	tags := m.tags[entityID]
	for i, existing := range tags {
		if existing == tag {
			m.tags[entityID] = append(tags[:i], tags[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (m *mockRepository) GetEntityTags(ctx context.Context, entityID int64) ([]string, error) {
	return append([]string(nil), m.tags[entityID]...), nil
}

func (m *mockRepository) ListTags(ctx context.Context) ([]*sqlite.Tag, error) {
	seen := make(map[string]bool)
	var names []string
	for _, tags := range m.tags {
		for _, tag := range tags {
			if !seen[tag] {
				seen[tag] = true
				names = append(names, tag)
			}
		}
	}
	sort.Strings(names)
	result := make([]*sqlite.Tag, len(names))
	for i, name := range names {
		result[i] = &sqlite.Tag{ID: int64(i + 1), Name: name}
	}
	return result, nil
}

func (m *mockRepository) ListEntitiesByTag(ctx context.Context, tag string) ([]*sqlite.Entity, error) {
	var entities []*sqlite.Entity
	for id, tags := range m.tags {
		for _, existing := range tags {
			if existing == tag {
				copied := *m.entities[id]
				entities = append(entities, &copied)
			}
		}
	}
	return entities, nil
}

func (m *mockRepository) AppendEvents(ctx context.Context, events []*sqlite.Event) error {
	if m.appendErr != nil {
		return m.appendErr
	}
	for _, event := range events {
		m.nextEventID++
		event.ID = m.nextEventID
		copied := *event
		m.events = append(m.events, &copied)
	}
	return nil
}

func (m *mockRepository) ReadAllEvents(ctx context.Context, filter sqlite.EventFilter) ([]*sqlite.Event, error) {
	var events []*sqlite.Event
	for _, event := range m.events {
		if filter.EntityID != nil && event.EntityID != *filter.EntityID {
			continue
		}
		if filter.SessionID != nil && event.SessionID != *filter.SessionID {
			continue
		}
		copied := *event
		events = append(events, &copied)
	}
	sort.Slice(events, func(i, j int) bool {
		if !events[i].Timestamp.Equal(events[j].Timestamp) {
			return events[i].Timestamp.Before(events[j].Timestamp)
		}
		return events[i].ID < events[j].ID
	})
	return events, nil
}

func (m *mockRepository) DeleteSessionEvents(ctx context.Context, sessionID string) (int64, error) {
	var remaining []*sqlite.Event
	var deleted int64
	for _, event := range m.events {
		if event.SessionID == sessionID {
			deleted++
		} else {
			remaining = append(remaining, event)
		}
	}
	m.events = remaining
	return deleted, nil
}

func (m *mockRepository) Close() error {
	return nil
}
