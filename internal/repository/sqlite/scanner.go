package sqlite

import (
	"database/sql"
)

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// ScanEntity scans a single entity from a database row
func ScanEntity(scanner Scanner) (*Entity, error) {
	entity := &Entity{}
	var createdAt string

	err := scanner.Scan(
		&entity.ID,
		&entity.Name,
		&entity.Kind,
		&entity.Priority,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}

	entity.CreatedAt, err = ParseTimeFromDB(createdAt)
	if err != nil {
		return nil, err
	}

	return entity, nil
}

// ScanEntities scans multiple entities from database rows
func ScanEntities(rows Rows) ([]*Entity, error) {
	var entities []*Entity
	for rows.Next() {
		entity, err := ScanEntity(rows)
		if err != nil {
			return nil, err
		}
		entities = append(entities, entity)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return entities, nil
}

// ScanEvent scans a single event from a database row
func ScanEvent(scanner Scanner) (*Event, error) {
	event := &Event{}
	var ts string
	var notes sql.NullString

	err := scanner.Scan(
		&event.ID,
		&event.SessionID,
		&event.EntityID,
		&event.Kind,
		&ts,
		&notes,
	)
	if err != nil {
		return nil, err
	}

	event.Timestamp, err = ParseTimeFromDB(ts)
	if err != nil {
		return nil, err
	}
	if notes.Valid {
		event.Notes = notes.String
	}

	return event, nil
}

// ScanEvents scans multiple events from database rows
func ScanEvents(rows Rows) ([]*Event, error) {
	var events []*Event
	for rows.Next() {
		event, err := ScanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return events, nil
}

// ScanTag scans a single tag from a database row
func ScanTag(scanner Scanner) (*Tag, error) {
	tag := &Tag{}
	err := scanner.Scan(&tag.ID, &tag.Name)
	if err != nil {
		return nil, err
	}
	return tag, nil
}

// ScanTags scans multiple tags from database rows
func ScanTags(rows Rows) ([]*Tag, error) {
	var tags []*Tag
	for rows.Next() {
		tag, err := ScanTag(rows)
		if err != nil {
			return nil, err
		}
		tags = append(tags, tag)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return tags, nil
}
