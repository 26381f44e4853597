package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"timetrack/internal/errors"
	"timetrack/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// EventFilter narrows a full event log read.
type EventFilter struct {
	EntityID  *int64
	SessionID *string
}

// Repository defines the interface for database operations. The event log is
// append-only: AppendEvents is the atomic commit point for every state
// machine transition, and DeleteSessionEvents exists solely for cancel and
// for the explicit delete-and-relog correction path.
type Repository interface {
	// Entity catalog
	CreateEntity(ctx context.Context, entity *Entity) error
	GetEntity(ctx context.Context, id int64) (*Entity, error)
	GetEntityByName(ctx context.Context, name string) (*Entity, error)
	ListEntities(ctx context.Context) ([]*Entity, error)
	UpdateEntity(ctx context.Context, entity *Entity) error
	DeleteEntity(ctx context.Context, id int64, cascade bool) error

	// Tags
	AddTag(ctx context.Context, entityID int64, tag string) (bool, error)
	RemoveTag(ctx context.Context, entityID int64, tag string) (bool, error)
	GetEntityTags(ctx context.Context, entityID int64) ([]string, error)
	ListTags(ctx context.Context) ([]*Tag, error)
	ListEntitiesByTag(ctx context.Context, tag string) ([]*Entity, error)

	// Event log
	AppendEvents(ctx context.Context, events []*Event) error
	ReadAllEvents(ctx context.Context, filter EventFilter) ([]*Event, error)
	DeleteSessionEvents(ctx context.Context, sessionID string) (int64, error)

	// Utility
	Close() error
}

// SQLiteRepository implements the Repository interface
type SQLiteRepository struct {
	db *sql.DB
}

// New creates a new SQLite repository instance
func New(dbPath string) (*SQLiteRepository, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}

	// Fail fast on lock contention instead of waiting on another process.
	pragmas := []string{
		"PRAGMA busy_timeout = 0",
		"PRAGMA foreign_keys = ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, errors.NewDatabaseError("apply pragma", err)
		}
	}

	// Run migrations
	if err := migrations.RunMigrations(db); err != nil {
		db.Close()
		return nil, HandleDatabaseError("run migrations", err)
	}

	return &SQLiteRepository{db: db}, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

// CreateEntity creates a new entity
func (r *SQLiteRepository) CreateEntity(ctx context.Context, entity *Entity) error {
	query := `
	INSERT INTO entities (name, kind, priority, created_at)
	VALUES (?, ?, ?, ?)`

	id, err := ExecuteWithLastInsertID(ctx, r.db, query,
		entity.Name, entity.Kind, entity.Priority, FormatTimeForDB(entity.CreatedAt))
	if err != nil {
		return err
	}

	entity.ID = id
	return nil
}

// GetEntity retrieves an entity by ID
func (r *SQLiteRepository) GetEntity(ctx context.Context, id int64) (*Entity, error) {
	query := `
	SELECT id, name, kind, priority, created_at
	FROM entities
	WHERE id = ?`

	return QuerySingle(ctx, r.db, query, ScanEntity, "entity", fmt.Sprintf("%d", id), id)
}

// GetEntityByName retrieves an entity by its unique display name
func (r *SQLiteRepository) GetEntityByName(ctx context.Context, name string) (*Entity, error) {
	query := `
	SELECT id, name, kind, priority, created_at
	FROM entities
	WHERE name = ?`

	return QuerySingle(ctx, r.db, query, ScanEntity, "entity", name, name)
}

// ListEntities retrieves all entities ordered by priority then name
func (r *SQLiteRepository) ListEntities(ctx context.Context) ([]*Entity, error) {
	query := `
	SELECT id, name, kind, priority, created_at
	FROM entities
	ORDER BY priority ASC, name ASC`

	return QueryMultiple(ctx, r.db, query, ScanEntities, "entities")
}

// UpdateEntity updates an entity's name, kind and priority
func (r *SQLiteRepository) UpdateEntity(ctx context.Context, entity *Entity) error {
	query := `
	UPDATE entities
	SET name = ?, kind = ?, priority = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, r.db, query, "entity", fmt.Sprintf("%d", entity.ID),
		entity.Name, entity.Kind, entity.Priority, entity.ID)
}

// DeleteEntity deletes an entity, its tag links, and (only with cascade) its
// recorded events. Without cascade the delete is refused while events exist,
// so session history is never dropped silently.
func (r *SQLiteRepository) DeleteEntity(ctx context.Context, id int64, cascade bool) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin delete entity", err)
	}
	defer tx.Rollback()

	var eventCount int64
	if err := tx.QueryRowContext(ctx,
		"SELECT COUNT(*) FROM events WHERE entity_id = ?", id).Scan(&eventCount); err != nil {
		return HandleDatabaseError("count entity events", err)
	}
	if eventCount > 0 && !cascade {
		return errors.NewConflictError(fmt.Sprintf("entity %d", id),
			"recorded sessions exist; pass cascade to delete them as well")
	}

	if cascade {
		if _, err := tx.ExecContext(ctx, "DELETE FROM events WHERE entity_id = ?", id); err != nil {
			return HandleDatabaseError("delete entity events", err)
		}
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM entity_tags WHERE entity_id = ?", id); err != nil {
		return HandleDatabaseError("delete entity tags", err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM entities WHERE id = ?", id)
	if err != nil {
		return HandleDatabaseError("delete entity", err)
	}
	if err := ValidateRowsAffected(result, "entity", fmt.Sprintf("%d", id)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit delete entity", err)
	}
	return nil
}

// AddTag attaches a tag to an entity, creating the tag on first use.
// Returns false if the entity already carries the tag.
func (r *SQLiteRepository) AddTag(ctx context.Context, entityID int64, tag string) (bool, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, HandleDatabaseError("begin add tag", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO tags (name) VALUES (?)", tag); err != nil {
		return false, HandleDatabaseError("create tag", err)
	}

	var tagID int64
	if err := tx.QueryRowContext(ctx,
		"SELECT id FROM tags WHERE name = ?", tag).Scan(&tagID); err != nil {
		return false, HandleDatabaseError("lookup tag", err)
	}

	result, err := tx.ExecContext(ctx,
		"INSERT OR IGNORE INTO entity_tags (entity_id, tag_id) VALUES (?, ?)", entityID, tagID)
	if err != nil {
		return false, HandleDatabaseError("link tag", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}

	if err := tx.Commit(); err != nil {
		return false, HandleDatabaseError("commit add tag", err)
	}
	return rows > 0, nil
}

// RemoveTag detaches a tag from an entity. Returns false if the entity did
// not carry the tag.
func (r *SQLiteRepository) RemoveTag(ctx context.Context, entityID int64, tag string) (bool, error) {
	query := `
	DELETE FROM entity_tags
	WHERE entity_id = ? AND tag_id IN (SELECT id FROM tags WHERE name = ?)`

	result, err := r.db.ExecContext(ctx, query, entityID, tag)
	if err != nil {
		return false, HandleDatabaseError("remove tag", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, HandleDatabaseError("get rows affected", err)
	}
	return rows > 0, nil
}

// GetEntityTags returns the tag names attached to an entity, sorted
func (r *SQLiteRepository) GetEntityTags(ctx context.Context, entityID int64) ([]string, error) {
	query := `
	SELECT t.name
	FROM entity_tags et
	JOIN tags t ON t.id = et.tag_id
	WHERE et.entity_id = ?
	ORDER BY t.name ASC`

	rows, err := r.db.QueryContext(ctx, query, entityID)
	if err != nil {
		return nil, HandleDatabaseError("query entity tags", err)
	}
	defer rows.Close()

	var tags []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, HandleDatabaseError("scan entity tags", err)
		}
		tags = append(tags, name)
	}
	if err := rows.Err(); err != nil {
		return nil, HandleDatabaseError("scan entity tags", err)
	}
	return tags, nil
}

// ListTags retrieves all tags ordered by name
func (r *SQLiteRepository) ListTags(ctx context.Context) ([]*Tag, error) {
	query := `SELECT id, name FROM tags ORDER BY name ASC`
	return QueryMultiple(ctx, r.db, query, ScanTags, "tags")
}

// ListEntitiesByTag retrieves all entities carrying the given tag
func (r *SQLiteRepository) ListEntitiesByTag(ctx context.Context, tag string) ([]*Entity, error) {
	query := `
	SELECT e.id, e.name, e.kind, e.priority, e.created_at
	FROM entities e
	JOIN entity_tags et ON et.entity_id = e.id
	JOIN tags t ON t.id = et.tag_id
	WHERE t.name = ?
	ORDER BY e.priority ASC, e.name ASC`

	return QueryMultiple(ctx, r.db, query, ScanEntities, "entities", tag)
}

// AppendEvents appends events to the log in a single transaction. This is
// the atomic commit point for a state machine transition: either every
// event of the operation becomes durable, or none does.
func (r *SQLiteRepository) AppendEvents(ctx context.Context, events []*Event) error {
	if len(events) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin append events", err)
	}
	defer tx.Rollback()

	query := `
	INSERT INTO events (session_id, entity_id, kind, ts, notes)
	VALUES (?, ?, ?, ?, ?)`

	for _, event := range events {
		result, err := tx.ExecContext(ctx, query,
			event.SessionID, event.EntityID, event.Kind,
			FormatTimeForDB(event.Timestamp), event.Notes)
		if err != nil {
			return HandleDatabaseError("append event", err)
		}
		id, err := result.LastInsertId()
		if err != nil {
			return HandleDatabaseError("get last insert ID", err)
		}
		event.ID = id
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit append events", err)
	}
	return nil
}

// ReadAllEvents returns the ordered event log, optionally narrowed to one
// entity or session. A single query yields a consistent snapshot; a read
// never observes a half-committed operation.
func (r *SQLiteRepository) ReadAllEvents(ctx context.Context, filter EventFilter) ([]*Event, error) {
	query := `
	SELECT id, session_id, entity_id, kind, ts, notes
	FROM events`

	var conditions []string
	var args []interface{}
	if filter.EntityID != nil {
		conditions = append(conditions, "entity_id = ?")
		args = append(args, *filter.EntityID)
	}
	if filter.SessionID != nil {
		conditions = append(conditions, "session_id = ?")
		args = append(args, *filter.SessionID)
	}
	for i, cond := range conditions {
		if i == 0 {
			query += " WHERE " + cond
		} else {
			query += " AND " + cond
		}
	}
	query += " ORDER BY ts ASC, id ASC"

	return QueryMultiple(ctx, r.db, query, ScanEvents, "events", args...)
}

// DeleteSessionEvents removes every event of one session in a single
// statement. Used by cancel (active sessions are discarded, not stored) and
// by the delete-and-relog correction path.
func (r *SQLiteRepository) DeleteSessionEvents(ctx context.Context, sessionID string) (int64, error) {
	result, err := r.db.ExecContext(ctx, "DELETE FROM events WHERE session_id = ?", sessionID)
	if err != nil {
		return 0, HandleDatabaseError("delete session events", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, HandleDatabaseError("get rows affected", err)
	}
	return rows, nil
}
