package service

import (
	"context"
	"fmt"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

// syncService is the concrete implementation of SyncService. It owns one
// executor per entity kind and reconciles a whole client batch in one call.
type syncService struct {
	users     store.UserRepository
	executors map[models.EntityType]*syncExecutor

	logger *logger.Logger
}

func NewSyncService(storages *store.Storages, log *logger.Logger) SyncService {
	codecs := Codecs()
	executors := make(map[models.EntityType]*syncExecutor, len(codecs))
	for kind, repo := range storages.Entities() {
		executors[kind] = newSyncExecutor(repo, codecs[kind])
	}

	return &syncService{
		users:     storages.UserRepository,
		executors: executors,
		logger:    log,
	}
}

// SyncUserData implements SyncService.
//
// Each submitted item is resolved and executed independently; conflicts are
// collected into the response, never raised as errors. A validation or store
// failure aborts the batch: items already applied stay applied (per-item
// writes are atomic, the batch as a whole is not transactional) and the
// client resubmits, which is safe because every operation is idempotent for
// an unchanged store.
//
// On success the user's last-sync timestamp is stamped exactly once. A
// failure to stamp it is logged but does not fail the already-applied batch.
func (s *syncService) SyncUserData(ctx context.Context, userID uuid.UUID, request models.SyncRequest) (models.SyncResponse, error) {
	log := logger.FromContext(ctx)

	var response models.SyncResponse

	batches := []struct {
		kind  models.EntityType
		items []models.SyncItem
		out   *[]models.SyncResult
	}{
		{kind: models.EntityTypeNote, items: request.Notes, out: &response.Notes},
		{kind: models.EntityTypeTask, items: request.Tasks, out: &response.Tasks},
		{kind: models.EntityTypeHabit, items: request.Habits, out: &response.Habits},
	}

	for _, batch := range batches {
		executor := s.executors[batch.kind]

		for _, item := range batch.items {
			if err := ctx.Err(); err != nil {
				return models.SyncResponse{}, err
			}

			result, conflict, err := executor.processItem(ctx, userID, item)
			if err != nil {
				log.Err(err).
					Str("func", "syncService.SyncUserData").
					Str("entity_type", string(batch.kind)).
					Str("entity_id", item.ID.String()).
					Msg("sync item failed, aborting batch")
				return models.SyncResponse{}, fmt.Errorf("syncing %s %s: %w", batch.kind, item.ID, err)
			}

			if conflict != nil {
				response.Conflicts = append(response.Conflicts, *conflict)
				continue
			}
			*batch.out = append(*batch.out, *result)
		}
	}

	if err := s.users.TouchLastSync(ctx, userID); err != nil {
		log.Warn().
			Err(err).
			Str("func", "syncService.SyncUserData").
			Str("user_id", userID.String()).
			Msg("failed to stamp last sync timestamp")
	}

	log.Info().
		Str("func", "syncService.SyncUserData").
		Str("user_id", userID.String()).
		Int("results", len(response.Notes)+len(response.Tasks)+len(response.Habits)).
		Int("conflicts", len(response.Conflicts)).
		Msg("sync batch processed")

	return response, nil
}

// GetSyncStatus implements SyncService. It reports every live entity the
// user owns, one row per entity, in a deterministic kind order.
//
// The server cannot know the client's local state, so LocalVersion echoes
// ServerVersion and NeedsSync/Conflict are false; the client overlays its own
// versions to find what diverged.
func (s *syncService) GetSyncStatus(ctx context.Context, userID uuid.UUID) ([]models.SyncStatus, error) {
	statuses := make([]models.SyncStatus, 0, 64)

	for _, kind := range []models.EntityType{models.EntityTypeNote, models.EntityTypeTask, models.EntityTypeHabit} {
		states, err := s.executors[kind].repo.ListStates(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("listing %s states: %w", kind, err)
		}

		for _, state := range states {
			if state.Deleted {
				continue
			}
			statuses = append(statuses, models.SyncStatus{
				EntityType:    kind,
				EntityID:      state.ID,
				LocalVersion:  state.Version,
				ServerVersion: state.Version,
			})
		}
	}

	return statuses, nil
}
