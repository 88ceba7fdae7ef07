package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// EntityRecord is the kind-agnostic persisted form of a syncable entity.
// Kind-specific columns live in Fields; the envelope carries the identity,
// versioning, and soft-delete state shared by notes, tasks, and habits.
type EntityRecord struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Fields    EntityPayload
	CreatedAt time.Time
	UpdatedAt time.Time
	Version   int64
	DeletedAt *time.Time
}

// MarshalJSON flattens Fields into the top level of the object, so a note
// record serializes as {"id": ..., "title": ..., "content": ..., "version": ...}
// rather than nesting the kind columns under a "fields" key.
func (r EntityRecord) MarshalJSON() ([]byte, error) {
	flat := make(map[string]any, len(r.Fields)+5)
	for k, v := range r.Fields {
		flat[k] = v
	}
	flat["id"] = r.ID
	flat["created_at"] = r.CreatedAt
	flat["updated_at"] = r.UpdatedAt
	flat["version"] = r.Version
	if r.DeletedAt != nil {
		flat["deleted_at"] = r.DeletedAt
	}

	return json.Marshal(flat)
}

// UnmarshalJSON is the inverse of MarshalJSON: envelope keys go to their
// struct fields, every remaining key goes back into Fields. Required so a
// serialized record (a backup document entry) round-trips without losing the
// kind columns.
func (r *EntityRecord) UnmarshalJSON(data []byte) error {
	var flat map[string]json.RawMessage
	if err := json.Unmarshal(data, &flat); err != nil {
		return err
	}

	envelope := []struct {
		key string
		dst any
	}{
		{key: "id", dst: &r.ID},
		{key: "created_at", dst: &r.CreatedAt},
		{key: "updated_at", dst: &r.UpdatedAt},
		{key: "version", dst: &r.Version},
		{key: "deleted_at", dst: &r.DeletedAt},
	}
	for _, field := range envelope {
		raw, ok := flat[field.key]
		if !ok {
			continue
		}
		if err := json.Unmarshal(raw, field.dst); err != nil {
			return err
		}
		delete(flat, field.key)
	}

	if len(flat) == 0 {
		return nil
	}

	r.Fields = make(EntityPayload, len(flat))
	for key, raw := range flat {
		var value any
		if err := json.Unmarshal(raw, &value); err != nil {
			return err
		}
		r.Fields[key] = value
	}

	return nil
}

// Task status and priority discriminants. Status has no safe default: a task
// payload without a recognizable status cannot be stored.

type TaskStatus string

const (
	TaskStatusTodo  TaskStatus = "todo"
	TaskStatusDoing TaskStatus = "doing"
	TaskStatusDone  TaskStatus = "done"
)

// Valid reports whether s is one of the known task statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusTodo, TaskStatusDoing, TaskStatusDone:
		return true
	}
	return false
}

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// Valid reports whether p is one of the known task priorities.
func (p TaskPriority) Valid() bool {
	switch p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return true
	}
	return false
}
