package service

import (
	"testing"
	"time"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/mock"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newTestEntitySvc(ctrl *gomock.Controller) (EntityService, map[models.EntityType]*mock.MockEntityRepository) {
	repos := map[models.EntityType]*mock.MockEntityRepository{
		models.EntityTypeNote:  mock.NewMockEntityRepository(ctrl),
		models.EntityTypeTask:  mock.NewMockEntityRepository(ctrl),
		models.EntityTypeHabit: mock.NewMockEntityRepository(ctrl),
	}
	for kind, repo := range repos {
		repo.EXPECT().Kind().Return(kind).AnyTimes()
	}

	storages := &store.Storages{
		UserRepository: mock.NewMockUserRepository(ctrl),
		Notes:          repos[models.EntityTypeNote],
		Tasks:          repos[models.EntityTypeTask],
		Habits:         repos[models.EntityTypeHabit],
	}

	return NewEntityService(storages, logger.Nop()), repos
}

func TestEntityService_Get(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repos := newTestEntitySvc(ctrl)
	userID, entityID := uuid.New(), uuid.New()

	t.Run("live record returned", func(t *testing.T) {
		repos[models.EntityTypeNote].EXPECT().
			Get(gomock.Any(), userID, entityID).
			Return(models.EntityRecord{ID: entityID, Version: 2}, nil)

		record, err := svc.Get(testContext(), userID, entityID, models.EntityTypeNote)

		require.NoError(t, err)
		assert.Equal(t, entityID, record.ID)
	})

	t.Run("tombstoned record is hidden", func(t *testing.T) {
		deletedAt := time.Now()
		repos[models.EntityTypeNote].EXPECT().
			Get(gomock.Any(), userID, entityID).
			Return(models.EntityRecord{ID: entityID, Version: 3, DeletedAt: &deletedAt}, nil)

		_, err := svc.Get(testContext(), userID, entityID, models.EntityTypeNote)

		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrEntityNotFound)
	})

	t.Run("unknown kind rejected", func(t *testing.T) {
		_, err := svc.Get(testContext(), userID, entityID, models.EntityType("widget"))

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestEntityService_Create(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repos := newTestEntitySvc(ctrl)
	userID := uuid.New()

	t.Run("server mints id, version starts at 1", func(t *testing.T) {
		var insertedID uuid.UUID
		notes := repos[models.EntityTypeNote]
		notes.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, record models.EntityRecord) error {
				assert.NotEqual(t, uuid.Nil, record.ID)
				assert.Equal(t, int64(1), record.Version)
				assert.Equal(t, "Untitled", record.Fields["title"])
				insertedID = record.ID
				return nil
			})
		notes.EXPECT().
			Get(gomock.Any(), userID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, id uuid.UUID) (models.EntityRecord, error) {
				assert.Equal(t, insertedID, id)
				return models.EntityRecord{ID: id, Version: 1}, nil
			})

		record, err := svc.Create(testContext(), userID, models.EntityTypeNote, models.EntityPayload{})

		require.NoError(t, err)
		assert.Equal(t, insertedID, record.ID)
	})

	t.Run("client-minted id is kept", func(t *testing.T) {
		clientID := uuid.New()
		notes := repos[models.EntityTypeNote]
		notes.EXPECT().
			Insert(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, record models.EntityRecord) error {
				assert.Equal(t, clientID, record.ID)
				return nil
			})
		notes.EXPECT().
			Get(gomock.Any(), userID, clientID).
			Return(models.EntityRecord{ID: clientID, Version: 1}, nil)

		record, err := svc.Create(testContext(), userID, models.EntityTypeNote, models.EntityPayload{
			"id":    clientID.String(),
			"title": "mine",
		})

		require.NoError(t, err)
		assert.Equal(t, clientID, record.ID)
	})

	t.Run("malformed client id rejected", func(t *testing.T) {
		_, err := svc.Create(testContext(), userID, models.EntityTypeNote, models.EntityPayload{"id": "not-a-uuid"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})

	t.Run("invalid payload rejected before any write", func(t *testing.T) {
		_, err := svc.Create(testContext(), userID, models.EntityTypeTask, models.EntityPayload{"title": "no status"})

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	})
}

func TestEntityService_Update(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repos := newTestEntitySvc(ctrl)
	userID, entityID := uuid.New(), uuid.New()
	stored := models.EntityPayload{"title": "old", "description": "keep me", "status": "todo", "priority": "low"}

	t.Run("partial edit merges over stored fields", func(t *testing.T) {
		tasks := repos[models.EntityTypeTask]
		tasks.EXPECT().
			Get(gomock.Any(), userID, entityID).
			Return(models.EntityRecord{ID: entityID, Fields: stored, Version: 4}, nil)
		tasks.EXPECT().
			UpdateExpected(gomock.Any(), userID, entityID, gomock.Any(), int64(4)).
			DoAndReturn(func(_ any, _, _ uuid.UUID, fields models.EntityPayload, _ int64) (store.VersionedResult, error) {
				assert.Equal(t, "done", fields["status"])
				assert.Equal(t, "keep me", fields["description"])
				return store.VersionedResult{Found: true, Applied: true, CurrentVersion: 5}, nil
			})
		tasks.EXPECT().
			Get(gomock.Any(), userID, entityID).
			Return(models.EntityRecord{ID: entityID, Version: 5}, nil)

		record, err := svc.Update(testContext(), userID, entityID, models.EntityTypeTask, models.EntityPayload{"status": "done"}, 4)

		require.NoError(t, err)
		assert.Equal(t, int64(5), record.Version)
	})

	t.Run("version mismatch surfaces the stored version", func(t *testing.T) {
		tasks := repos[models.EntityTypeTask]
		tasks.EXPECT().
			Get(gomock.Any(), userID, entityID).
			Return(models.EntityRecord{ID: entityID, Fields: stored, Version: 6}, nil)
		tasks.EXPECT().
			UpdateExpected(gomock.Any(), userID, entityID, gomock.Any(), int64(4)).
			Return(store.VersionedResult{Found: true, Applied: false, CurrentVersion: 6}, nil)

		_, err := svc.Update(testContext(), userID, entityID, models.EntityTypeTask, models.EntityPayload{"status": "done"}, 4)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrVersionMismatch)
		assert.Contains(t, err.Error(), "6")
	})

	t.Run("row vanished between read and write", func(t *testing.T) {
		tasks := repos[models.EntityTypeTask]
		tasks.EXPECT().
			Get(gomock.Any(), userID, entityID).
			Return(models.EntityRecord{ID: entityID, Fields: stored, Version: 4}, nil)
		tasks.EXPECT().
			UpdateExpected(gomock.Any(), userID, entityID, gomock.Any(), int64(4)).
			Return(store.VersionedResult{Found: false}, nil)

		_, err := svc.Update(testContext(), userID, entityID, models.EntityTypeTask, models.EntityPayload{"status": "done"}, 4)

		require.Error(t, err)
		assert.ErrorIs(t, err, store.ErrEntityNotFound)
	})
}

func TestEntityService_Delete(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repos := newTestEntitySvc(ctrl)
	userID, entityID := uuid.New(), uuid.New()

	repos[models.EntityTypeHabit].EXPECT().
		SoftDelete(gomock.Any(), userID, entityID).
		Return(nil)

	require.NoError(t, svc.Delete(testContext(), userID, entityID, models.EntityTypeHabit))
}

func TestEntityService_List(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, repos := newTestEntitySvc(ctrl)
	userID := uuid.New()
	filter := store.ListFilter{Search: "milk", Limit: 10}

	repos[models.EntityTypeNote].EXPECT().
		List(gomock.Any(), userID, filter).
		Return([]models.EntityRecord{{ID: uuid.New()}}, nil)

	records, err := svc.List(testContext(), userID, models.EntityTypeNote, filter)

	require.NoError(t, err)
	assert.Len(t, records, 1)
}
