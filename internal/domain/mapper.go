package domain

import (
	"timetrack/internal/repository/sqlite"
)

// EntityMapper handles conversion between domain and database Entity models.
type EntityMapper struct{}

// NewEntityMapper creates a new EntityMapper instance.
func NewEntityMapper() *EntityMapper {
	return &EntityMapper{}
}

// ToDatabase converts a domain Entity to a database Entity. Tags live in
// their own tables and are not carried on the row.
func (m *EntityMapper) ToDatabase(domainEntity Entity) sqlite.Entity {
	return sqlite.Entity{
		ID:        domainEntity.ID,
		Name:      domainEntity.Name,
		Kind:      string(domainEntity.Kind),
		Priority:  domainEntity.Priority,
		CreatedAt: domainEntity.CreatedAt,
	}
}

// FromDatabase converts a database Entity to a domain Entity.
func (m *EntityMapper) FromDatabase(dbEntity sqlite.Entity) Entity {
	return Entity{
		ID:        dbEntity.ID,
		Name:      dbEntity.Name,
		Kind:      Kind(dbEntity.Kind),
		Priority:  dbEntity.Priority,
		CreatedAt: dbEntity.CreatedAt,
	}
}

// FromDatabaseSlice converts a slice of database Entities to domain Entities.
func (m *EntityMapper) FromDatabaseSlice(dbEntities []*sqlite.Entity) []Entity {
	domainEntities := make([]Entity, len(dbEntities))
	for i, entity := range dbEntities {
		domainEntities[i] = m.FromDatabase(*entity)
	}
	return domainEntities
}

// Mapper provides access to all model mappers.
type Mapper struct {
	Entity *EntityMapper
}

// NewMapper creates a new Mapper with all sub-mappers initialized.
func NewMapper() *Mapper {
	return &Mapper{
		Entity: NewEntityMapper(),
	}
}
