package http

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"

	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestSync_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestHandler(ctrl)
	userID := uuid.New()
	env.authorize(userID)

	noteID := uuid.New()
	env.sync.EXPECT().
		SyncUserData(gomock.Any(), userID, gomock.Any()).
		DoAndReturn(func(_ any, _ uuid.UUID, request models.SyncRequest) (models.SyncResponse, error) {
			require.Len(t, request.Notes, 1)
			assert.Equal(t, noteID, request.Notes[0].ID)
			assert.Equal(t, int64(1), request.Notes[0].Version)

			return models.SyncResponse{
				Notes: []models.SyncResult{
					{ID: noteID, Version: 1, Action: models.SyncActionCreated},
				},
			}, nil
		})

	body := `{"notes":[{"id":"` + noteID.String() + `","version":1,"data":{"title":"groceries"}}]}`
	recorder := doRequest(t, env, http.MethodPost, "/api/sync", "good-token", strings.NewReader(body))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.SyncResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Notes, 1)
	assert.Equal(t, models.SyncActionCreated, response.Notes[0].Action)
	assert.Empty(t, response.Conflicts)
}

func TestSync_ConflictsReturnedWithOK(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestHandler(ctrl)
	userID := uuid.New()
	env.authorize(userID)

	taskID := uuid.New()
	env.sync.EXPECT().
		SyncUserData(gomock.Any(), userID, gomock.Any()).
		Return(models.SyncResponse{
			Conflicts: []models.ConflictInfo{
				{
					EntityType:    models.EntityTypeTask,
					EntityID:      taskID,
					LocalVersion:  2,
					ServerVersion: 5,
				},
			},
		}, nil)

	body := `{"tasks":[{"id":"` + taskID.String() + `","version":2,"data":{"title":"x","status":"todo"}}]}`
	recorder := doRequest(t, env, http.MethodPost, "/api/sync", "good-token", strings.NewReader(body))

	require.Equal(t, http.StatusOK, recorder.Code)

	var response models.SyncResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Conflicts, 1)
	assert.Equal(t, int64(5), response.Conflicts[0].ServerVersion)
}

func TestSync_InvalidJSON(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestHandler(ctrl)
	env.authorize(uuid.New())

	recorder := doRequest(t, env, http.MethodPost, "/api/sync", "good-token", strings.NewReader("{not json"))

	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Invalid JSON was passed")
}

func TestSyncStatus(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	env := newTestHandler(ctrl)
	userID := uuid.New()
	env.authorize(userID)

	habitID := uuid.New()
	env.sync.EXPECT().
		GetSyncStatus(gomock.Any(), userID).
		Return([]models.SyncStatus{
			{
				EntityType:    models.EntityTypeHabit,
				EntityID:      habitID,
				LocalVersion:  3,
				ServerVersion: 3,
			},
		}, nil)

	recorder := doRequest(t, env, http.MethodGet, "/api/sync/status", "good-token", nil)

	require.Equal(t, http.StatusOK, recorder.Code)

	var response struct {
		Status []models.SyncStatus `json:"status"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &response))
	require.Len(t, response.Status, 1)
	assert.Equal(t, habitID, response.Status[0].EntityID)
}
