package service

import (
	"encoding/json"
	"fmt"

	"github.com/focusflow/focusflow-server/models"
)

// EntityCodec interprets the opaque payload of one entity kind. Normalize is
// the only place where kind-specific field knowledge lives: everything above
// it (resolver, executor, orchestrator) treats payloads as opaque maps.
type EntityCodec interface {
	Kind() models.EntityType

	// Normalize validates payload and returns a complete column map with
	// every absent optional field replaced by its documented default.
	// Validation failures wrap [ErrValidation].
	Normalize(payload models.EntityPayload) (models.EntityPayload, error)
}

// Codecs returns the codec for every syncable kind.
func Codecs() map[models.EntityType]EntityCodec {
	return map[models.EntityType]EntityCodec{
		models.EntityTypeNote:  noteCodec{},
		models.EntityTypeTask:  taskCodec{},
		models.EntityTypeHabit: habitCodec{},
	}
}

type noteCodec struct{}

func (noteCodec) Kind() models.EntityType { return models.EntityTypeNote }

// Normalize fills the note defaults: title "Untitled", empty content, no
// tags, not encrypted.
func (noteCodec) Normalize(payload models.EntityPayload) (models.EntityPayload, error) {
	title, err := stringField(payload, "title", "Untitled")
	if err != nil {
		return nil, err
	}
	content, err := stringField(payload, "content", "")
	if err != nil {
		return nil, err
	}
	tags, err := stringListField(payload, "tags")
	if err != nil {
		return nil, err
	}
	isEncrypted, err := boolField(payload, "is_encrypted", false)
	if err != nil {
		return nil, err
	}

	return models.EntityPayload{
		"title":        title,
		"content":      content,
		"tags":         tags,
		"is_encrypted": isEncrypted,
	}, nil
}

type taskCodec struct{}

func (taskCodec) Kind() models.EntityType { return models.EntityTypeTask }

// Normalize fills the task defaults: title "Untitled", empty description,
// priority "medium". Status is the one field with no safe default: a task
// without a recognizable status is rejected.
func (taskCodec) Normalize(payload models.EntityPayload) (models.EntityPayload, error) {
	title, err := stringField(payload, "title", "Untitled")
	if err != nil {
		return nil, err
	}
	description, err := stringField(payload, "description", "")
	if err != nil {
		return nil, err
	}

	rawStatus, ok := payload["status"]
	if !ok || rawStatus == nil {
		return nil, fmt.Errorf("%w: field %q is required", ErrValidation, "status")
	}
	status, ok := rawStatus.(string)
	if !ok || !models.TaskStatus(status).Valid() {
		return nil, fmt.Errorf("%w: field %q must be one of todo, doing, done", ErrValidation, "status")
	}

	priority, err := stringField(payload, "priority", string(models.TaskPriorityMedium))
	if err != nil {
		return nil, err
	}
	if !models.TaskPriority(priority).Valid() {
		return nil, fmt.Errorf("%w: field %q must be one of low, medium, high", ErrValidation, "priority")
	}

	return models.EntityPayload{
		"title":       title,
		"description": description,
		"status":      status,
		"priority":    priority,
	}, nil
}

type habitCodec struct{}

func (habitCodec) Kind() models.EntityType { return models.EntityTypeHabit }

// Normalize fills the habit defaults: name "Untitled", default color, zero
// streak, no completed dates.
func (habitCodec) Normalize(payload models.EntityPayload) (models.EntityPayload, error) {
	name, err := stringField(payload, "name", "Untitled")
	if err != nil {
		return nil, err
	}
	color, err := stringField(payload, "color", "#808080")
	if err != nil {
		return nil, err
	}
	streak, err := intField(payload, "streak", 0)
	if err != nil {
		return nil, err
	}
	completedDates, err := stringListField(payload, "completed_dates")
	if err != nil {
		return nil, err
	}

	return models.EntityPayload{
		"name":            name,
		"color":           color,
		"streak":          streak,
		"completed_dates": completedDates,
	}, nil
}

func stringField(payload models.EntityPayload, key, fallback string) (string, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return fallback, nil
	}

	str, ok := value.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q must be a string", ErrValidation, key)
	}

	return str, nil
}

func boolField(payload models.EntityPayload, key string, fallback bool) (bool, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return fallback, nil
	}

	b, ok := value.(bool)
	if !ok {
		return false, fmt.Errorf("%w: field %q must be a boolean", ErrValidation, key)
	}

	return b, nil
}

// intField accepts the numeric forms a decoded JSON payload can carry.
func intField(payload models.EntityPayload, key string, fallback int64) (int64, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return fallback, nil
	}

	switch number := value.(type) {
	case float64:
		return int64(number), nil
	case int:
		return int64(number), nil
	case int64:
		return number, nil
	case json.Number:
		parsed, err := number.Int64()
		if err != nil {
			return 0, fmt.Errorf("%w: field %q must be an integer", ErrValidation, key)
		}
		return parsed, nil
	default:
		return 0, fmt.Errorf("%w: field %q must be an integer", ErrValidation, key)
	}
}

// stringListField accepts both []string and the []any form produced by
// decoding JSON. An absent field becomes an empty list.
func stringListField(payload models.EntityPayload, key string) ([]string, error) {
	value, ok := payload[key]
	if !ok || value == nil {
		return []string{}, nil
	}

	switch list := value.(type) {
	case []string:
		return list, nil
	case []any:
		out := make([]string, 0, len(list))
		for _, element := range list {
			str, ok := element.(string)
			if !ok {
				return nil, fmt.Errorf("%w: field %q must contain only strings", ErrValidation, key)
			}
			out = append(out, str)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("%w: field %q must be a list of strings", ErrValidation, key)
	}
}
