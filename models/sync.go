package models

import (
	"time"

	"github.com/google/uuid"
)

// EntityType discriminates the three syncable record kinds.
type EntityType string

const (
	EntityTypeNote  EntityType = "note"
	EntityTypeTask  EntityType = "task"
	EntityTypeHabit EntityType = "habit"
)

// EntityPayload is the associative form of an entity's kind-specific fields.
// The sync protocol treats it as opaque; only the per-kind codecs interpret it.
type EntityPayload map[string]any

// SyncAction is the per-item outcome reported back to the client.
type SyncAction string

const (
	SyncActionCreated  SyncAction = "Created"
	SyncActionUpdated  SyncAction = "Updated"
	SyncActionDeleted  SyncAction = "Deleted"
	SyncActionNoChange SyncAction = "NoChange"
	SyncActionConflict SyncAction = "Conflict"
)

// SyncItem is one entity the client wants to reconcile.
//
// Version is the version the client believes the entity has after its local
// edits. Data is required unless Deleted is true.
type SyncItem struct {
	ID      uuid.UUID     `json:"id"`
	Version int64         `json:"version"`
	Deleted bool          `json:"deleted"`
	Data    EntityPayload `json:"data"`
}

// SyncRequest is one client-submitted batch: independent item lists for each
// entity kind, reconciled in a single call.
type SyncRequest struct {
	Notes  []SyncItem `json:"notes"`
	Tasks  []SyncItem `json:"tasks"`
	Habits []SyncItem `json:"habits"`
}

// SyncResult is the server's verdict for one processed item.
type SyncResult struct {
	ID      uuid.UUID     `json:"id"`
	Version int64         `json:"version"`
	Action  SyncAction    `json:"action"`
	Data    EntityPayload `json:"data,omitempty"`
}

// ConflictInfo describes a detected divergence: the client edited a stale
// snapshot. Both payloads are carried in full so the client can present a
// merge UI without another round trip.
type ConflictInfo struct {
	EntityType    EntityType    `json:"entity_type"`
	EntityID      uuid.UUID     `json:"entity_id"`
	LocalVersion  int64         `json:"local_version"`
	ServerVersion int64         `json:"server_version"`
	LocalData     EntityPayload `json:"local_data"`
	ServerData    EntityPayload `json:"server_data"`
}

// SyncResponse mirrors SyncRequest item-for-item, with conflicting items
// moved into the Conflicts list instead of their kind's result list.
type SyncResponse struct {
	Notes     []SyncResult   `json:"notes"`
	Tasks     []SyncResult   `json:"tasks"`
	Habits    []SyncResult   `json:"habits"`
	Conflicts []ConflictInfo `json:"conflicts"`
}

// SyncStatus is one row of the per-entity version table returned by the
// status endpoint. The server has no concept of "local": LocalVersion echoes
// ServerVersion and the client diffs against its own state out of band.
type SyncStatus struct {
	EntityType    EntityType `json:"entity_type"`
	EntityID      uuid.UUID  `json:"entity_id"`
	LocalVersion  int64      `json:"local_version"`
	ServerVersion int64      `json:"server_version"`
	NeedsSync     bool       `json:"needs_sync"`
	Conflict      bool       `json:"conflict"`
}

// EntityState is a lightweight change-detection descriptor for one stored
// entity: identity and version, no payload.
type EntityState struct {
	ID        uuid.UUID  `json:"id"`
	Version   int64      `json:"version"`
	Deleted   bool       `json:"deleted"`
	UpdatedAt *time.Time `json:"updated_at,omitempty"`
}
