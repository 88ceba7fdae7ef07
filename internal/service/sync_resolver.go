package service

import "github.com/focusflow/focusflow-server/models"

// Decision is the verdict of the version-conflict resolver for one incoming
// sync item.
type Decision int

const (
	// DecisionCreate — the id is unknown to the server and the item is live:
	// store it with whatever version the client submitted.
	DecisionCreate Decision = iota

	// DecisionUpdate — the client's version is strictly newer: overwrite the
	// stored payload and adopt the incoming version verbatim.
	DecisionUpdate

	// DecisionNoChange — the versions are equal: both sides already agree,
	// payloads are not inspected.
	DecisionNoChange

	// DecisionDelete — the client's version is strictly newer and the item is
	// a deletion: tombstone the stored row.
	DecisionDelete

	// DecisionDeleteNoop — the client deleted something the server never
	// stored: nothing to do, deletion is idempotent.
	DecisionDeleteNoop

	// DecisionConflict — the client edited a stale snapshot: the stored
	// version is newer than the submitted one.
	DecisionConflict
)

func (d Decision) String() string {
	switch d {
	case DecisionCreate:
		return "create"
	case DecisionUpdate:
		return "update"
	case DecisionNoChange:
		return "no_change"
	case DecisionDelete:
		return "delete"
	case DecisionDeleteNoop:
		return "delete_noop"
	case DecisionConflict:
		return "conflict"
	}
	return "unknown"
}

// Resolve classifies one incoming item against the version currently stored
// on the server. existing is nil when the server has no row with the item's
// id (tombstoned rows still count as existing).
//
// The comparison is purely version-based and identical for edits and
// deletions:
//
//	unknown id, live     → Create (any version is accepted)
//	unknown id, deleted  → DeleteNoop
//	incoming > stored    → Update, or Delete when the item is a deletion
//	incoming == stored   → NoChange
//	incoming < stored    → Conflict
//
// Resolve is pure: it reads nothing and writes nothing, so the resolution
// rules can be tested exhaustively without a database.
func Resolve(existing *int64, item models.SyncItem) Decision {
	if existing == nil {
		if item.Deleted {
			return DecisionDeleteNoop
		}
		return DecisionCreate
	}

	switch {
	case item.Version > *existing:
		if item.Deleted {
			return DecisionDelete
		}
		return DecisionUpdate
	case item.Version == *existing:
		return DecisionNoChange
	default:
		return DecisionConflict
	}
}
