package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

// syncExecutor carries one incoming item through resolution and the matching
// store operation for a single entity kind. The executor shape is identical
// for all kinds; only the repository and codec differ.
type syncExecutor struct {
	repo  store.EntityRepository
	codec EntityCodec
}

func newSyncExecutor(repo store.EntityRepository, codec EntityCodec) *syncExecutor {
	return &syncExecutor{repo: repo, codec: codec}
}

// processItem executes one sync item and returns either a result or a
// conflict, never both. Errors abort the whole batch: a validation failure or
// a store failure means the client must resubmit.
//
// The version check and the write are a single conditional statement in the
// store, so the executor never pre-reads a version it later relies on; it
// only classifies the outcome the store reports.
func (e *syncExecutor) processItem(ctx context.Context, userID uuid.UUID, item models.SyncItem) (*models.SyncResult, *models.ConflictInfo, error) {
	if item.Deleted {
		return e.processDelete(ctx, userID, item)
	}

	// A live item must carry a payload; only deletions may omit it. Without
	// this guard a null payload would normalize into an all-defaults entity.
	if item.Data == nil {
		return nil, nil, fmt.Errorf("%s %s: %w: data is required for non-delete operations",
			e.repo.Kind(), item.ID, ErrValidation)
	}

	return e.processUpsert(ctx, userID, item)
}

func (e *syncExecutor) processDelete(ctx context.Context, userID uuid.UUID, item models.SyncItem) (*models.SyncResult, *models.ConflictInfo, error) {
	log := logger.FromContext(ctx)

	result, err := e.repo.SoftDeleteVersioned(ctx, userID, item.ID, item.Version)
	if err != nil {
		return nil, nil, err
	}

	// Deleting something the server never stored is idempotent.
	if !result.Found {
		log.Debug().
			Str("func", "syncExecutor.processDelete").
			Str("entity_type", string(e.repo.Kind())).
			Str("entity_id", item.ID.String()).
			Msg("delete of unknown entity, nothing to do")
		return &models.SyncResult{ID: item.ID, Version: item.Version, Action: models.SyncActionNoChange}, nil, nil
	}

	if result.Applied {
		return &models.SyncResult{ID: item.ID, Version: item.Version, Action: models.SyncActionDeleted}, nil, nil
	}

	return e.classifyRejected(ctx, userID, item, result.CurrentVersion)
}

func (e *syncExecutor) processUpsert(ctx context.Context, userID uuid.UUID, item models.SyncItem) (*models.SyncResult, *models.ConflictInfo, error) {
	log := logger.FromContext(ctx)

	fields, err := e.codec.Normalize(item.Data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s %s: %w", e.repo.Kind(), item.ID, err)
	}

	result, err := e.repo.ApplyVersioned(ctx, userID, item.ID, fields, item.Version)
	if err != nil {
		return nil, nil, err
	}

	if result.Applied {
		return &models.SyncResult{ID: item.ID, Version: item.Version, Action: models.SyncActionUpdated}, nil, nil
	}

	if result.Found {
		return e.classifyRejected(ctx, userID, item, result.CurrentVersion)
	}

	// Unknown id: create it with the client's version. A concurrent sync from
	// another device may insert the same id first; the resulting collision is
	// re-classified against the version that won the race.
	insertErr := e.repo.Insert(ctx, models.EntityRecord{
		ID:      item.ID,
		UserID:  userID,
		Fields:  fields,
		Version: item.Version,
	})
	if insertErr == nil {
		log.Debug().
			Str("func", "syncExecutor.processUpsert").
			Str("entity_type", string(e.repo.Kind())).
			Str("entity_id", item.ID.String()).
			Int64("version", item.Version).
			Msg("entity created")
		return &models.SyncResult{ID: item.ID, Version: item.Version, Action: models.SyncActionCreated}, nil, nil
	}
	if !errors.Is(insertErr, store.ErrEntityIDTaken) {
		return nil, nil, insertErr
	}

	current, findErr := e.repo.FindVersion(ctx, userID, item.ID)
	if findErr != nil {
		return nil, nil, findErr
	}
	if current == nil {
		// The id exists but not for this user: fail closed.
		log.Warn().
			Str("func", "syncExecutor.processUpsert").
			Str("entity_type", string(e.repo.Kind())).
			Str("entity_id", item.ID.String()).
			Msg("entity id owned by another user")
		return nil, nil, ErrEntityOwnedByAnotherUser
	}

	// Lost the insert race to a row that is itself older than the incoming
	// item. The conditional update wins against that row, so retry it once
	// instead of aborting the batch.
	if *current < item.Version {
		retry, retryErr := e.repo.ApplyVersioned(ctx, userID, item.ID, fields, item.Version)
		if retryErr != nil {
			return nil, nil, retryErr
		}
		if retry.Applied {
			return &models.SyncResult{ID: item.ID, Version: item.Version, Action: models.SyncActionUpdated}, nil, nil
		}
		if retry.Found {
			return e.classifyRejected(ctx, userID, item, retry.CurrentVersion)
		}
	}

	return e.classifyRejected(ctx, userID, item, *current)
}

// classifyRejected handles a version guard rejection: equal versions mean the
// sides already agree, an older incoming version is a conflict carrying both
// payloads.
func (e *syncExecutor) classifyRejected(ctx context.Context, userID uuid.UUID, item models.SyncItem, currentVersion int64) (*models.SyncResult, *models.ConflictInfo, error) {
	switch Resolve(&currentVersion, item) {
	case DecisionNoChange:
		return &models.SyncResult{ID: item.ID, Version: currentVersion, Action: models.SyncActionNoChange}, nil, nil

	case DecisionConflict:
		record, err := e.repo.Get(ctx, userID, item.ID)
		if err != nil {
			return nil, nil, err
		}

		conflict := &models.ConflictInfo{
			EntityType:    e.repo.Kind(),
			EntityID:      item.ID,
			LocalVersion:  item.Version,
			ServerVersion: currentVersion,
			LocalData:     item.Data,
			ServerData:    record.Fields,
		}
		return nil, conflict, nil

	default:
		// The store said the guard held, yet the resolver disagrees: the row
		// changed between the write and this classification. Surface it as a
		// conflict-shaped store inconsistency.
		return nil, nil, fmt.Errorf("%w: %s %s changed during sync", store.ErrVersionConflict, e.repo.Kind(), item.ID)
	}
}
