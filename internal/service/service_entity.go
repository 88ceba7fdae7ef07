package service

import (
	"context"
	"fmt"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

// entityService implements the direct CRUD surface over the same versioned
// store the sync path uses. Every write bumps the version so other devices
// observe the change on their next sync.
type entityService struct {
	repos  map[models.EntityType]store.EntityRepository
	codecs map[models.EntityType]EntityCodec

	logger *logger.Logger
}

func NewEntityService(storages *store.Storages, log *logger.Logger) EntityService {
	return &entityService{
		repos:  storages.Entities(),
		codecs: Codecs(),
		logger: log,
	}
}

func (s *entityService) List(ctx context.Context, userID uuid.UUID, kind models.EntityType, filter store.ListFilter) ([]models.EntityRecord, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return nil, err
	}

	return repo.List(ctx, userID, filter)
}

func (s *entityService) Get(ctx context.Context, userID, entityID uuid.UUID, kind models.EntityType) (models.EntityRecord, error) {
	repo, err := s.repo(kind)
	if err != nil {
		return models.EntityRecord{}, err
	}

	record, err := repo.Get(ctx, userID, entityID)
	if err != nil {
		return models.EntityRecord{}, err
	}

	// Tombstoned rows exist for sync purposes only; to the direct API the
	// entity is gone.
	if record.DeletedAt != nil {
		return models.EntityRecord{}, store.ErrEntityNotFound
	}

	return record, nil
}

// Create stores a new entity at version 1. The id may be client-supplied
// (offline-first clients mint their ids locally); a missing id is minted here.
func (s *entityService) Create(ctx context.Context, userID uuid.UUID, kind models.EntityType, payload models.EntityPayload) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	repo, err := s.repo(kind)
	if err != nil {
		return models.EntityRecord{}, err
	}

	fields, err := s.codecs[kind].Normalize(payload)
	if err != nil {
		return models.EntityRecord{}, err
	}

	entityID, err := entityIDFromPayload(payload)
	if err != nil {
		return models.EntityRecord{}, err
	}

	record := models.EntityRecord{
		ID:      entityID,
		UserID:  userID,
		Fields:  fields,
		Version: 1,
	}
	if err := repo.Insert(ctx, record); err != nil {
		return models.EntityRecord{}, err
	}

	log.Info().
		Str("func", "entityService.Create").
		Str("entity_type", string(kind)).
		Str("entity_id", entityID.String()).
		Msg("entity created")

	return repo.Get(ctx, userID, entityID)
}

// Update applies a partial edit: provided fields overlay the stored payload,
// the merged result is re-validated, and the write succeeds only when
// expectedVersion matches the stored version. On mismatch the caller gets
// [ErrVersionMismatch] and should re-read before retrying.
func (s *entityService) Update(ctx context.Context, userID, entityID uuid.UUID, kind models.EntityType, payload models.EntityPayload, expectedVersion int64) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	repo, err := s.repo(kind)
	if err != nil {
		return models.EntityRecord{}, err
	}

	current, err := s.Get(ctx, userID, entityID, kind)
	if err != nil {
		return models.EntityRecord{}, err
	}

	merged := make(models.EntityPayload, len(current.Fields)+len(payload))
	for key, value := range current.Fields {
		merged[key] = value
	}
	for key, value := range payload {
		merged[key] = value
	}

	fields, err := s.codecs[kind].Normalize(merged)
	if err != nil {
		return models.EntityRecord{}, err
	}

	result, err := repo.UpdateExpected(ctx, userID, entityID, fields, expectedVersion)
	if err != nil {
		return models.EntityRecord{}, err
	}
	if !result.Found {
		return models.EntityRecord{}, store.ErrEntityNotFound
	}
	if !result.Applied {
		log.Debug().
			Str("func", "entityService.Update").
			Str("entity_type", string(kind)).
			Str("entity_id", entityID.String()).
			Int64("expected_version", expectedVersion).
			Int64("db_version", result.CurrentVersion).
			Msg("update rejected: version mismatch")
		return models.EntityRecord{}, fmt.Errorf("%w: stored version is %d", ErrVersionMismatch, result.CurrentVersion)
	}

	return repo.Get(ctx, userID, entityID)
}

func (s *entityService) Delete(ctx context.Context, userID, entityID uuid.UUID, kind models.EntityType) error {
	repo, err := s.repo(kind)
	if err != nil {
		return err
	}

	return repo.SoftDelete(ctx, userID, entityID)
}

func (s *entityService) repo(kind models.EntityType) (store.EntityRepository, error) {
	repo, ok := s.repos[kind]
	if !ok {
		return nil, fmt.Errorf("%w: unknown entity type %q", ErrValidation, kind)
	}
	return repo, nil
}

// entityIDFromPayload reads an optional client-minted "id" field; absent or
// null means the server mints one.
func entityIDFromPayload(payload models.EntityPayload) (uuid.UUID, error) {
	raw, ok := payload["id"]
	if !ok || raw == nil {
		return uuid.New(), nil
	}

	str, ok := raw.(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("%w: field %q must be a uuid string", ErrValidation, "id")
	}

	entityID, err := uuid.Parse(str)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: field %q must be a uuid string", ErrValidation, "id")
	}

	return entityID, nil
}
