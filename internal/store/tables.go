package store

import (
	"encoding/json"
	"fmt"

	"github.com/focusflow/focusflow-server/models"
)

// columnKind selects the scan destination type for a payload column.
type columnKind int

const (
	columnText columnKind = iota
	columnBool
	columnInt
	columnJSONB
)

type column struct {
	name string
	kind columnKind
}

// tableSpec describes the kind-specific part of an entity table: its name and
// the payload columns that sit between the shared envelope columns
// (id, user_id, created_at, updated_at, version, deleted_at).
//
// All three entity tables share the same envelope, so a single repository
// implementation parameterised by tableSpec serves notes, tasks, and habits.
type tableSpec struct {
	table   string
	kind    models.EntityType
	columns []column

	// searchColumns are the text columns matched by the list endpoint's
	// search filter. JSONB columns are never searchable.
	searchColumns []string
}

var (
	notesTable = tableSpec{
		table: "notes",
		kind:  models.EntityTypeNote,
		columns: []column{
			{name: "title", kind: columnText},
			{name: "content", kind: columnText},
			{name: "tags", kind: columnJSONB},
			{name: "is_encrypted", kind: columnBool},
		},
		searchColumns: []string{"title", "content"},
	}

	tasksTable = tableSpec{
		table: "tasks",
		kind:  models.EntityTypeTask,
		columns: []column{
			{name: "title", kind: columnText},
			{name: "description", kind: columnText},
			{name: "status", kind: columnText},
			{name: "priority", kind: columnText},
		},
		searchColumns: []string{"title", "description"},
	}

	habitsTable = tableSpec{
		table: "habits",
		kind:  models.EntityTypeHabit,
		columns: []column{
			{name: "name", kind: columnText},
			{name: "color", kind: columnText},
			{name: "streak", kind: columnInt},
			{name: "completed_dates", kind: columnJSONB},
		},
		searchColumns: []string{"name"},
	}
)

// columnNames returns the payload column names in declaration order.
func (s tableSpec) columnNames() []string {
	names := make([]string, len(s.columns))
	for i, col := range s.columns {
		names[i] = col.name
	}
	return names
}

// selectColumns returns the full column list for reading an entity row:
// the envelope columns with the payload columns in between.
func (s tableSpec) selectColumns() []string {
	cols := make([]string, 0, len(s.columns)+6)
	cols = append(cols, "id", "user_id")
	cols = append(cols, s.columnNames()...)
	cols = append(cols, "created_at", "updated_at", "version", "deleted_at")
	return cols
}

// args converts a payload field map into positional query arguments following
// the spec's column order. JSONB columns are marshalled to their wire form.
// Every column must be present in fields: repositories receive field maps that
// have already passed through a codec that fills defaults.
func (s tableSpec) args(fields models.EntityPayload) ([]any, error) {
	out := make([]any, len(s.columns))
	for i, col := range s.columns {
		value, ok := fields[col.name]
		if !ok {
			return nil, fmt.Errorf("%w: missing payload column %q", ErrBuildingSQLQuery, col.name)
		}

		if col.kind == columnJSONB {
			encoded, err := json.Marshal(value)
			if err != nil {
				return nil, fmt.Errorf("%w: encoding column %q: %w", ErrBuildingSQLQuery, col.name, err)
			}
			out[i] = encoded
			continue
		}

		out[i] = value
	}

	return out, nil
}
