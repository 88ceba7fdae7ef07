package store

import (
	"context"
	"time"

	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

// ErrorClassificator decides whether a failed database operation is transient.
type ErrorClassificator interface {
	Classify(err error) ErrorClassification
}

type UserRepository interface {
	UpsertByGoogleID(ctx context.Context, user models.User) (models.User, error)
	GetByID(ctx context.Context, userID uuid.UUID) (models.User, error)
	TouchLastSync(ctx context.Context, userID uuid.UUID) error
	UpdateGoogleTokens(ctx context.Context, userID uuid.UUID, accessToken *string, expiresAt *time.Time) error
}

// VersionedResult reports the outcome of a conditional write.
//
// Found is false when no row with the given id exists for the user. When
// Found is true and Applied is false the version guard rejected the write;
// CurrentVersion then holds the version stored in the database. When Applied
// is true CurrentVersion holds the row's post-write version.
type VersionedResult struct {
	Found          bool
	Applied        bool
	CurrentVersion int64
}

// ListFilter narrows the List read. A zero value means no filtering.
type ListFilter struct {
	Search string
	Limit  uint64
	Offset uint64
}

// EntityRepository is the persistence surface shared by notes, tasks, and
// habits. One implementation parameterised by [tableSpec] backs all three.
type EntityRepository interface {
	// Kind identifies which entity table the repository serves.
	Kind() models.EntityType

	// FindVersion returns the stored version of a row, or nil when the user
	// owns no row with that id. Tombstoned rows are reported.
	FindVersion(ctx context.Context, userID, entityID uuid.UUID) (*int64, error)

	// Insert creates a new live row carrying record.Version. Returns
	// [ErrEntityIDTaken] when the primary key is already in use.
	Insert(ctx context.Context, record models.EntityRecord) error

	// ApplyVersioned overwrites the payload when version is strictly greater
	// than the stored version, adopting version verbatim.
	ApplyVersioned(ctx context.Context, userID, entityID uuid.UUID, fields models.EntityPayload, version int64) (VersionedResult, error)

	// SoftDeleteVersioned tombstones the row under the same version guard as
	// ApplyVersioned.
	SoftDeleteVersioned(ctx context.Context, userID, entityID uuid.UUID, version int64) (VersionedResult, error)

	// UpdateExpected overwrites the payload when the stored version equals
	// expectedVersion, bumping the version by one. Tombstoned rows are not
	// visible to this operation.
	UpdateExpected(ctx context.Context, userID, entityID uuid.UUID, fields models.EntityPayload, expectedVersion int64) (VersionedResult, error)

	// SoftDelete tombstones a live row and bumps its version. Returns
	// [ErrEntityNotFound] when the user owns no live row with that id.
	SoftDelete(ctx context.Context, userID, entityID uuid.UUID) error

	// Get reads a full row, tombstoned rows included.
	Get(ctx context.Context, userID, entityID uuid.UUID) (models.EntityRecord, error)

	// List reads the user's live rows, newest first.
	List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.EntityRecord, error)

	// ListStates reads identity and version for every row the user owns.
	ListStates(ctx context.Context, userID uuid.UUID) ([]models.EntityState, error)

	// PurgeDeletedBefore hard-deletes tombstones older than cutoff across all
	// users and returns the number of rows removed.
	PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
