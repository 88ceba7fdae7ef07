package service

import (
	"context"
	"errors"
	"testing"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/mock"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func testContext() context.Context {
	log := zerolog.Nop()
	return log.WithContext(context.Background())
}

// newTestSyncSvc wires a syncService onto mocked repositories, one per kind.
func newTestSyncSvc(ctrl *gomock.Controller) (SyncService, *mock.MockUserRepository, map[models.EntityType]*mock.MockEntityRepository) {
	repos := map[models.EntityType]*mock.MockEntityRepository{
		models.EntityTypeNote:  mock.NewMockEntityRepository(ctrl),
		models.EntityTypeTask:  mock.NewMockEntityRepository(ctrl),
		models.EntityTypeHabit: mock.NewMockEntityRepository(ctrl),
	}
	for kind, repo := range repos {
		repo.EXPECT().Kind().Return(kind).AnyTimes()
	}

	users := mock.NewMockUserRepository(ctrl)
	storages := &store.Storages{
		UserRepository: users,
		Notes:          repos[models.EntityTypeNote],
		Tasks:          repos[models.EntityTypeTask],
		Habits:         repos[models.EntityTypeHabit],
	}

	return NewSyncService(storages, logger.Nop()), users, repos
}

// ── SyncUserData ─────────────────────────────────────────────────────────────

func TestSyncUserData_CreateUnknownEntity(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 1, Data: models.EntityPayload{"title": "A"}}

	notes := repos[models.EntityTypeNote]
	notes.EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(1)).
		Return(store.VersionedResult{Found: false}, nil)
	notes.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, record models.EntityRecord) error {
			assert.Equal(t, item.ID, record.ID)
			assert.Equal(t, userID, record.UserID)
			assert.Equal(t, int64(1), record.Version)
			assert.Equal(t, "A", record.Fields["title"])
			return nil
		})
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, models.SyncActionCreated, resp.Notes[0].Action)
	assert.Equal(t, int64(1), resp.Notes[0].Version)
	assert.Empty(t, resp.Conflicts)
}

func TestSyncUserData_UpdateNewerVersion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 5, Data: models.EntityPayload{"status": "done"}}

	repos[models.EntityTypeTask].EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(5)).
		Return(store.VersionedResult{Found: true, Applied: true, CurrentVersion: 5}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Tasks: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Tasks, 1)
	assert.Equal(t, models.SyncActionUpdated, resp.Tasks[0].Action)
	assert.Equal(t, int64(5), resp.Tasks[0].Version)
}

func TestSyncUserData_EqualVersionIsNoChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 3, Data: models.EntityPayload{"title": "same"}}

	repos[models.EntityTypeNote].EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(3)).
		Return(store.VersionedResult{Found: true, Applied: false, CurrentVersion: 3}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, models.SyncActionNoChange, resp.Notes[0].Action)
	assert.Empty(t, resp.Conflicts)
}

func TestSyncUserData_StaleVersionIsConflict(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 2, Data: models.EntityPayload{"title": "stale edit"}}
	serverFields := models.EntityPayload{"title": "newer", "content": "", "tags": []string{}, "is_encrypted": false}

	notes := repos[models.EntityTypeNote]
	notes.EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(2)).
		Return(store.VersionedResult{Found: true, Applied: false, CurrentVersion: 6}, nil)
	notes.EXPECT().
		Get(gomock.Any(), userID, item.ID).
		Return(models.EntityRecord{ID: item.ID, UserID: userID, Fields: serverFields, Version: 6}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	assert.Empty(t, resp.Notes)
	require.Len(t, resp.Conflicts, 1)

	conflict := resp.Conflicts[0]
	assert.Equal(t, models.EntityTypeNote, conflict.EntityType)
	assert.Equal(t, item.ID, conflict.EntityID)
	assert.Equal(t, int64(2), conflict.LocalVersion)
	assert.Equal(t, int64(6), conflict.ServerVersion)
	assert.Equal(t, item.Data, conflict.LocalData)
	assert.Equal(t, serverFields, conflict.ServerData)
}

func TestSyncUserData_DeleteApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 4, Deleted: true}

	repos[models.EntityTypeHabit].EXPECT().
		SoftDeleteVersioned(gomock.Any(), userID, item.ID, int64(4)).
		Return(store.VersionedResult{Found: true, Applied: true, CurrentVersion: 4}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Habits: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Habits, 1)
	assert.Equal(t, models.SyncActionDeleted, resp.Habits[0].Action)
}

func TestSyncUserData_DeleteUnknownIsIdempotent(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 1, Deleted: true}

	repos[models.EntityTypeNote].EXPECT().
		SoftDeleteVersioned(gomock.Any(), userID, item.ID, int64(1)).
		Return(store.VersionedResult{Found: false}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, models.SyncActionNoChange, resp.Notes[0].Action)
}

func TestSyncUserData_InsertRaceReclassified(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 2, Data: models.EntityPayload{"title": "raced"}}

	// Another device inserted the same id at version 5 between the apply and
	// the insert; the collision is classified against the winner's version.
	notes := repos[models.EntityTypeNote]
	notes.EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(2)).
		Return(store.VersionedResult{Found: false}, nil)
	notes.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(store.ErrEntityIDTaken)
	notes.EXPECT().
		FindVersion(gomock.Any(), userID, item.ID).
		Return(int64Ptr(5), nil)
	notes.EXPECT().
		Get(gomock.Any(), userID, item.ID).
		Return(models.EntityRecord{ID: item.ID, Version: 5, Fields: models.EntityPayload{"title": "winner"}}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Conflicts, 1)
	assert.Equal(t, int64(5), resp.Conflicts[0].ServerVersion)
}

func TestSyncUserData_InsertRaceRetriesAgainstOlderWinner(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 4, Data: models.EntityPayload{"title": "raced"}}

	// Another device inserted the same id at version 1 between the apply and
	// the insert. The conditional update wins against that row, so the item
	// is retried once instead of failing the batch.
	notes := repos[models.EntityTypeNote]
	first := notes.EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(4)).
		Return(store.VersionedResult{Found: false}, nil)
	notes.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(store.ErrEntityIDTaken)
	notes.EXPECT().
		FindVersion(gomock.Any(), userID, item.ID).
		Return(int64Ptr(1), nil)
	notes.EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(4)).
		Return(store.VersionedResult{Applied: true, Found: true, CurrentVersion: 4}, nil).
		After(first)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
	assert.Equal(t, models.SyncActionUpdated, resp.Notes[0].Action)
	assert.Equal(t, int64(4), resp.Notes[0].Version)
	assert.Empty(t, resp.Conflicts)
}

func TestSyncUserData_NullDataRejected(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestSyncSvc(ctrl)
	userID := uuid.New()

	// A live item without a payload is invalid for every kind; nothing may
	// be written.
	for _, request := range []models.SyncRequest{
		{Notes: []models.SyncItem{{ID: uuid.New(), Version: 1}}},
		{Tasks: []models.SyncItem{{ID: uuid.New(), Version: 1}}},
		{Habits: []models.SyncItem{{ID: uuid.New(), Version: 1}}},
	} {
		_, err := svc.SyncUserData(testContext(), userID, request)

		require.Error(t, err)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestSyncUserData_ForeignIDFailsClosed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 1, Data: models.EntityPayload{"title": "not mine"}}

	notes := repos[models.EntityTypeNote]
	notes.EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(1)).
		Return(store.VersionedResult{Found: false}, nil)
	notes.EXPECT().
		Insert(gomock.Any(), gomock.Any()).
		Return(store.ErrEntityIDTaken)
	notes.EXPECT().
		FindVersion(gomock.Any(), userID, item.ID).
		Return(nil, nil)

	_, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrEntityOwnedByAnotherUser)
}

func TestSyncUserData_ValidationFailureAbortsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, _ := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 1, Data: models.EntityPayload{"title": "no status"}}

	_, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Tasks: []models.SyncItem{item}})

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSyncUserData_StoreFailureAbortsBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 2, Data: models.EntityPayload{"title": "A"}}
	dbErr := errors.New("connection reset")

	repos[models.EntityTypeNote].EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(2)).
		Return(store.VersionedResult{}, dbErr)

	_, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}

func TestSyncUserData_TouchLastSyncFailureDoesNotFailBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	item := models.SyncItem{ID: uuid.New(), Version: 5, Data: models.EntityPayload{"title": "A"}}

	repos[models.EntityTypeNote].EXPECT().
		ApplyVersioned(gomock.Any(), userID, item.ID, gomock.Any(), int64(5)).
		Return(store.VersionedResult{Found: true, Applied: true, CurrentVersion: 5}, nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(store.ErrNoUserWasFound)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{Notes: []models.SyncItem{item}})

	require.NoError(t, err)
	require.Len(t, resp.Notes, 1)
}

func TestSyncUserData_MixedBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, users, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()

	noteItem := models.SyncItem{ID: uuid.New(), Version: 2, Data: models.EntityPayload{"title": "N"}}
	taskItem := models.SyncItem{ID: uuid.New(), Version: 1, Deleted: true}
	habitItem := models.SyncItem{ID: uuid.New(), Version: 1, Data: models.EntityPayload{"name": "Run"}}

	repos[models.EntityTypeNote].EXPECT().
		ApplyVersioned(gomock.Any(), userID, noteItem.ID, gomock.Any(), int64(2)).
		Return(store.VersionedResult{Found: true, Applied: true, CurrentVersion: 2}, nil)
	repos[models.EntityTypeTask].EXPECT().
		SoftDeleteVersioned(gomock.Any(), userID, taskItem.ID, int64(1)).
		Return(store.VersionedResult{Found: false}, nil)
	habits := repos[models.EntityTypeHabit]
	habits.EXPECT().
		ApplyVersioned(gomock.Any(), userID, habitItem.ID, gomock.Any(), int64(1)).
		Return(store.VersionedResult{Found: false}, nil)
	habits.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil)
	users.EXPECT().TouchLastSync(gomock.Any(), userID).Return(nil)

	resp, err := svc.SyncUserData(testContext(), userID, models.SyncRequest{
		Notes:  []models.SyncItem{noteItem},
		Tasks:  []models.SyncItem{taskItem},
		Habits: []models.SyncItem{habitItem},
	})

	require.NoError(t, err)
	assert.Equal(t, models.SyncActionUpdated, resp.Notes[0].Action)
	assert.Equal(t, models.SyncActionNoChange, resp.Tasks[0].Action)
	assert.Equal(t, models.SyncActionCreated, resp.Habits[0].Action)
	assert.Empty(t, resp.Conflicts)
}

// ── GetSyncStatus ────────────────────────────────────────────────────────────

func TestGetSyncStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()

	noteID, taskID, tombstoneID := uuid.New(), uuid.New(), uuid.New()

	repos[models.EntityTypeNote].EXPECT().
		ListStates(gomock.Any(), userID).
		Return([]models.EntityState{
			{ID: noteID, Version: 3},
			{ID: tombstoneID, Version: 7, Deleted: true},
		}, nil)
	repos[models.EntityTypeTask].EXPECT().
		ListStates(gomock.Any(), userID).
		Return([]models.EntityState{{ID: taskID, Version: 1}}, nil)
	repos[models.EntityTypeHabit].EXPECT().
		ListStates(gomock.Any(), userID).
		Return(nil, nil)

	statuses, err := svc.GetSyncStatus(testContext(), userID)

	require.NoError(t, err)
	require.Len(t, statuses, 2) // the tombstone is skipped

	assert.Equal(t, models.EntityTypeNote, statuses[0].EntityType)
	assert.Equal(t, noteID, statuses[0].EntityID)
	assert.Equal(t, int64(3), statuses[0].ServerVersion)
	assert.Equal(t, int64(3), statuses[0].LocalVersion)
	assert.False(t, statuses[0].NeedsSync)

	assert.Equal(t, models.EntityTypeTask, statuses[1].EntityType)
	assert.Equal(t, taskID, statuses[1].EntityID)
}

func TestGetSyncStatus_StoreError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _, repos := newTestSyncSvc(ctrl)
	userID := uuid.New()
	dbErr := errors.New("boom")

	repos[models.EntityTypeNote].EXPECT().
		ListStates(gomock.Any(), userID).
		Return(nil, dbErr)

	_, err := svc.GetSyncStatus(testContext(), userID)

	require.Error(t, err)
	assert.ErrorIs(t, err, dbErr)
}
