package tracker

import (
	"context"
	"fmt"

	"timetrack/internal/domain"
	"timetrack/internal/errors"
)

// CreateEntity creates an entity without starting a session.
func (t *trackerImpl) CreateEntity(ctx context.Context, name string, kind domain.Kind) (*domain.Entity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cleanName, err := t.validator.GetValidEntityName(name)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	if existing, err := t.repo.GetEntityByName(ctx, cleanName); err == nil {
		return nil, errors.NewConflictError(existing.Name, "entity already exists")
	} else if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	entity := domain.Entity{
		Name:      cleanName,
		Kind:      kind,
		Priority:  domain.PriorityDefault,
		CreatedAt: t.now(),
	}
	dbEntity := t.mapper.Entity.ToDatabase(entity)
	if err := t.repo.CreateEntity(ctx, &dbEntity); err != nil {
		return nil, err
	}
	entity.ID = dbEntity.ID
	return &entity, nil
}

// RenameEntity changes an entity's display name. Sessions follow the entity,
// they are keyed by its ID, not its name.
func (t *trackerImpl) RenameEntity(ctx context.Context, name string, newName string) (*domain.Entity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cleanName, err := t.validator.GetValidEntityName(newName)
	if err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	entity, err := t.entityByName(ctx, name)
	if err != nil {
		return nil, err
	}

	if other, err := t.repo.GetEntityByName(ctx, cleanName); err == nil && other.ID != entity.ID {
		return nil, errors.NewConflictError(cleanName, "entity already exists")
	} else if err != nil && !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	entity.Name = cleanName
	dbEntity := t.mapper.Entity.ToDatabase(entity)
	if err := t.repo.UpdateEntity(ctx, &dbEntity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// SetPriority changes an entity's priority on the 1 to 5 scale.
func (t *trackerImpl) SetPriority(ctx context.Context, name string, priority int) (*domain.Entity, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if err := t.validator.ValidatePriority(priority); err != nil {
		return nil, errors.NewValidationError(err.Error(), err)
	}

	entity, err := t.entityByName(ctx, name)
	if err != nil {
		return nil, err
	}

	entity.Priority = priority
	dbEntity := t.mapper.Entity.ToDatabase(entity)
	if err := t.repo.UpdateEntity(ctx, &dbEntity); err != nil {
		return nil, err
	}
	return &entity, nil
}

// TagEntity attaches a tag to an entity. Returns false if the entity already
// carried the tag.
func (t *trackerImpl) TagEntity(ctx context.Context, name string, tag string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	cleanTag, err := t.validator.GetValidTag(tag)
	if err != nil {
		return false, errors.NewValidationError(err.Error(), err)
	}

	entity, err := t.entityByName(ctx, name)
	if err != nil {
		return false, err
	}
	return t.repo.AddTag(ctx, entity.ID, cleanTag)
}

// UntagEntity detaches a tag from an entity. Returns false if the entity did
// not carry the tag.
func (t *trackerImpl) UntagEntity(ctx context.Context, name string, tag string) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	entity, err := t.entityByName(ctx, name)
	if err != nil {
		return false, err
	}
	return t.repo.RemoveTag(ctx, entity.ID, tag)
}

// ListEntities returns all entities with their tags, ordered by priority
// then name.
func (t *trackerImpl) ListEntities(ctx context.Context) ([]domain.Entity, error) {
	dbEntities, err := t.repo.ListEntities(ctx)
	if err != nil {
		return nil, err
	}

	entities := make([]domain.Entity, 0, len(dbEntities))
	for _, dbEntity := range dbEntities {
		entity := t.mapper.Entity.FromDatabase(*dbEntity)
		tags, err := t.repo.GetEntityTags(ctx, entity.ID)
		if err != nil {
			return nil, err
		}
		entity.Tags = tags
		entities = append(entities, entity)
	}
	return entities, nil
}

// ListTags returns all known tag names, sorted.
func (t *trackerImpl) ListTags(ctx context.Context) ([]string, error) {
	dbTags, err := t.repo.ListTags(ctx)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(dbTags))
	for _, tag := range dbTags {
		tags = append(tags, tag.Name)
	}
	return tags, nil
}

// DeleteEntity removes an entity from the catalog. Without cascade the
// delete is refused while recorded sessions exist.
func (t *trackerImpl) DeleteEntity(ctx context.Context, name string, cascade bool) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entity, err := t.entityByName(ctx, name)
	if err != nil {
		return err
	}

	if err := t.repo.DeleteEntity(ctx, entity.ID, cascade); err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeConflict) {
			return errors.NewConflictError(entity.Name,
				"recorded sessions exist; pass --cascade to delete them as well")
		}
		return err
	}
	return nil
}

// entityByName resolves a name to a domain entity with its tags loaded.
func (t *trackerImpl) entityByName(ctx context.Context, name string) (domain.Entity, error) {
	dbEntity, err := t.repo.GetEntityByName(ctx, name)
	if err != nil {
		return domain.Entity{}, err
	}
	return t.withTags(ctx, t.mapper.Entity.FromDatabase(*dbEntity))
}

// entityByID resolves an ID to a domain entity with its tags loaded.
func (t *trackerImpl) entityByID(ctx context.Context, id int64) (domain.Entity, error) {
	dbEntity, err := t.repo.GetEntity(ctx, id)
	if err != nil {
		return domain.Entity{}, err
	}
	return t.withTags(ctx, t.mapper.Entity.FromDatabase(*dbEntity))
}

func (t *trackerImpl) withTags(ctx context.Context, entity domain.Entity) (domain.Entity, error) {
	tags, err := t.repo.GetEntityTags(ctx, entity.ID)
	if err != nil {
		return domain.Entity{}, err
	}
	entity.Tags = tags
	return entity, nil
}

// getOrCreateEntity resolves a name, creating the entity on first use.
// Starting an existing entity never changes its kind; a name that exists as
// the other kind is a conflict.
func (t *trackerImpl) getOrCreateEntity(ctx context.Context, name string, kind domain.Kind) (domain.Entity, error) {
	cleanName, err := t.validator.GetValidEntityName(name)
	if err != nil {
		return domain.Entity{}, errors.NewValidationError(err.Error(), err)
	}

	entity, err := t.entityByName(ctx, cleanName)
	if err == nil {
		if entity.Kind != kind {
			return domain.Entity{}, errors.NewConflictError(entity.Name,
				fmt.Sprintf("already exists as a %s", entity.Kind))
		}
		return entity, nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return domain.Entity{}, err
	}

	created := domain.Entity{
		Name:      cleanName,
		Kind:      kind,
		Priority:  domain.PriorityDefault,
		CreatedAt: t.now(),
	}
	dbEntity := t.mapper.Entity.ToDatabase(created)
	if err := t.repo.CreateEntity(ctx, &dbEntity); err != nil {
		return domain.Entity{}, err
	}
	created.ID = dbEntity.ID
	return created, nil
}

// resolveOrCreateEntity resolves a name to an existing entity of either kind,
// creating one of the given kind on first use. Operations that record time
// against whatever the name already is (log, switch) resolve this way; only
// start and bg pin the kind.
func (t *trackerImpl) resolveOrCreateEntity(ctx context.Context, name string, kind domain.Kind) (domain.Entity, error) {
	cleanName, err := t.validator.GetValidEntityName(name)
	if err != nil {
		return domain.Entity{}, errors.NewValidationError(err.Error(), err)
	}

	entity, err := t.entityByName(ctx, cleanName)
	if err == nil {
		return entity, nil
	}
	if !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
		return domain.Entity{}, err
	}

	created := domain.Entity{
		Name:      cleanName,
		Kind:      kind,
		Priority:  domain.PriorityDefault,
		CreatedAt: t.now(),
	}
	dbEntity := t.mapper.Entity.ToDatabase(created)
	if err := t.repo.CreateEntity(ctx, &dbEntity); err != nil {
		return domain.Entity{}, err
	}
	created.ID = dbEntity.ID
	return created, nil
}
