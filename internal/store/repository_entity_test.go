package store

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func newDBFromSQL(db *sql.DB) *DB {
	return &DB{
		DB:                 db,
		errorClassificator: NewPostgresErrorClassifier(),
		logger:             logger.Nop(),
	}
}

func newTestNotesRepo(t *testing.T, db *sql.DB) *entityRepository {
	t.Helper()
	return newEntityRepository(newDBFromSQL(db), notesTable).(*entityRepository)
}

func testContext() context.Context {
	l := zerolog.Nop()
	return l.WithContext(context.Background())
}

func pgError(code string) error {
	return &pgconn.PgError{Code: code}
}

var cteColumns = []string{"updated_id", "current_db_version"}

func notePayload() models.EntityPayload {
	return models.EntityPayload{
		"title":        "groceries",
		"content":      "milk, eggs",
		"tags":         []string{"errand"},
		"is_encrypted": false,
	}
}

func TestEntityRepository_Insert(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()

	record := models.EntityRecord{
		ID:      entityID,
		UserID:  userID,
		Fields:  notePayload(),
		Version: 1,
	}

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(repo.insertQuery)).
			WithArgs(entityID, userID, "groceries", "milk, eggs", []byte(`["errand"]`), false, int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		err := repo.Insert(testContext(), record)
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("id collision returns ErrEntityIDTaken", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(repo.insertQuery)).
			WillReturnError(pgError(pgerrcode.UniqueViolation))

		err := repo.Insert(testContext(), record)
		require.ErrorIs(t, err, ErrEntityIDTaken)
	})

	t.Run("zero rows affected returns ErrEntityNotSaved", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(repo.insertQuery)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.Insert(testContext(), record)
		require.ErrorIs(t, err, ErrEntityNotSaved)
	})

	t.Run("missing payload column fails before touching the database", func(t *testing.T) {
		db, _ := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		broken := record
		broken.Fields = models.EntityPayload{"title": "no other columns"}

		err := repo.Insert(testContext(), broken)
		require.ErrorIs(t, err, ErrBuildingSQLQuery)
	})
}

func TestEntityRepository_ApplyVersioned(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()

	t.Run("newer version applies the write", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(cteColumns).AddRow(entityID.String(), int64(3))
		mock.ExpectQuery(regexp.QuoteMeta(repo.applyVersionedQuery)).
			WithArgs(entityID, userID, int64(7), "groceries", "milk, eggs", []byte(`["errand"]`), false).
			WillReturnRows(rows)

		result, err := repo.ApplyVersioned(testContext(), userID, entityID, notePayload(), 7)
		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.True(t, result.Applied)
		assert.Equal(t, int64(7), result.CurrentVersion)
	})

	t.Run("stale version reports the stored version", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(cteColumns).AddRow(nil, int64(9))
		mock.ExpectQuery(regexp.QuoteMeta(repo.applyVersionedQuery)).
			WillReturnRows(rows)

		result, err := repo.ApplyVersioned(testContext(), userID, entityID, notePayload(), 4)
		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.False(t, result.Applied)
		assert.Equal(t, int64(9), result.CurrentVersion)
	})

	t.Run("unknown row reports not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(cteColumns).AddRow(nil, nil)
		mock.ExpectQuery(regexp.QuoteMeta(repo.applyVersionedQuery)).
			WillReturnRows(rows)

		result, err := repo.ApplyVersioned(testContext(), userID, entityID, notePayload(), 4)
		require.NoError(t, err)
		assert.False(t, result.Found)
	})

	t.Run("query error is wrapped", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(repo.applyVersionedQuery)).
			WillReturnError(errors.New("boom"))

		_, err := repo.ApplyVersioned(testContext(), userID, entityID, notePayload(), 4)
		require.ErrorIs(t, err, ErrExecutingQuery)
	})
}

func TestEntityRepository_SoftDeleteVersioned(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()

	t.Run("newer version tombstones the row", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(cteColumns).AddRow(entityID.String(), int64(2))
		mock.ExpectQuery(regexp.QuoteMeta(repo.softDeleteVersionedQuery)).
			WithArgs(entityID, userID, int64(5)).
			WillReturnRows(rows)

		result, err := repo.SoftDeleteVersioned(testContext(), userID, entityID, 5)
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, int64(5), result.CurrentVersion)
	})

	t.Run("equal version is rejected by the guard", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(cteColumns).AddRow(nil, int64(5))
		mock.ExpectQuery(regexp.QuoteMeta(repo.softDeleteVersionedQuery)).
			WillReturnRows(rows)

		result, err := repo.SoftDeleteVersioned(testContext(), userID, entityID, 5)
		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.False(t, result.Applied)
		assert.Equal(t, int64(5), result.CurrentVersion)
	})
}

func TestEntityRepository_UpdateExpected(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()
	expectedColumns := []string{"updated_id", "new_version", "current_db_version"}

	t.Run("matching version bumps by one", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(expectedColumns).AddRow(entityID.String(), int64(4), int64(3))
		mock.ExpectQuery(regexp.QuoteMeta(repo.updateExpectedQuery)).
			WithArgs(entityID, userID, int64(3), "groceries", "milk, eggs", []byte(`["errand"]`), false).
			WillReturnRows(rows)

		result, err := repo.UpdateExpected(testContext(), userID, entityID, notePayload(), 3)
		require.NoError(t, err)
		assert.True(t, result.Applied)
		assert.Equal(t, int64(4), result.CurrentVersion)
	})

	t.Run("version mismatch reports stored version", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(expectedColumns).AddRow(nil, nil, int64(8))
		mock.ExpectQuery(regexp.QuoteMeta(repo.updateExpectedQuery)).
			WillReturnRows(rows)

		result, err := repo.UpdateExpected(testContext(), userID, entityID, notePayload(), 3)
		require.NoError(t, err)
		assert.True(t, result.Found)
		assert.False(t, result.Applied)
		assert.Equal(t, int64(8), result.CurrentVersion)
	})

	t.Run("unknown or tombstoned row reports not found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(expectedColumns).AddRow(nil, nil, nil)
		mock.ExpectQuery(regexp.QuoteMeta(repo.updateExpectedQuery)).
			WillReturnRows(rows)

		result, err := repo.UpdateExpected(testContext(), userID, entityID, notePayload(), 3)
		require.NoError(t, err)
		assert.False(t, result.Found)
	})
}

func TestEntityRepository_SoftDelete(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()

	t.Run("success", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(repo.softDeleteQuery)).
			WithArgs(entityID, userID).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, repo.SoftDelete(testContext(), userID, entityID))
	})

	t.Run("no live row returns ErrEntityNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectExec(regexp.QuoteMeta(repo.softDeleteQuery)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		err := repo.SoftDelete(testContext(), userID, entityID)
		require.ErrorIs(t, err, ErrEntityNotFound)
	})
}

func TestEntityRepository_Get(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()
	now := time.Now().UTC()

	t.Run("success decodes payload columns", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(notesTable.selectColumns()).
			AddRow(entityID.String(), userID.String(), "groceries", "milk, eggs", []byte(`["errand","home"]`), true, now, now, int64(3), nil)
		mock.ExpectQuery(regexp.QuoteMeta(repo.getQuery)).
			WithArgs(entityID, userID).
			WillReturnRows(rows)

		record, err := repo.Get(testContext(), userID, entityID)
		require.NoError(t, err)
		assert.Equal(t, entityID, record.ID)
		assert.Equal(t, "groceries", record.Fields["title"])
		assert.Equal(t, true, record.Fields["is_encrypted"])
		assert.Equal(t, []any{"errand", "home"}, record.Fields["tags"])
		assert.Equal(t, int64(3), record.Version)
		assert.Nil(t, record.DeletedAt)
	})

	t.Run("tombstoned row is still returned", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		deletedAt := now.Add(-time.Hour)
		rows := sqlmock.NewRows(notesTable.selectColumns()).
			AddRow(entityID.String(), userID.String(), "groceries", "", []byte(`[]`), false, now, now, int64(5), deletedAt)
		mock.ExpectQuery(regexp.QuoteMeta(repo.getQuery)).
			WillReturnRows(rows)

		record, err := repo.Get(testContext(), userID, entityID)
		require.NoError(t, err)
		require.NotNil(t, record.DeletedAt)
		assert.Equal(t, deletedAt, *record.DeletedAt)
	})

	t.Run("no row returns ErrEntityNotFound", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(repo.getQuery)).
			WillReturnError(sql.ErrNoRows)

		_, err := repo.Get(testContext(), userID, entityID)
		require.ErrorIs(t, err, ErrEntityNotFound)
	})
}

func TestEntityRepository_List(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	t.Run("returns live rows newest first", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		first := uuid.New()
		second := uuid.New()
		rows := sqlmock.NewRows(notesTable.selectColumns()).
			AddRow(first.String(), userID.String(), "b", "", []byte(`[]`), false, now, now, int64(2), nil).
			AddRow(second.String(), userID.String(), "a", "", []byte(`[]`), false, now, now.Add(-time.Minute), int64(1), nil)

		mock.ExpectQuery("SELECT .+ FROM notes WHERE user_id = .+ AND deleted_at IS NULL ORDER BY updated_at DESC").
			WithArgs(userID).
			WillReturnRows(rows)

		records, err := repo.List(testContext(), userID, ListFilter{})
		require.NoError(t, err)
		require.Len(t, records, 2)
		assert.Equal(t, first, records[0].ID)
	})

	t.Run("search filter matches title or content", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		rows := sqlmock.NewRows(notesTable.selectColumns())
		mock.ExpectQuery(`SELECT .+ FROM notes WHERE .+\(title ILIKE .+ OR content ILIKE .+\).+LIMIT 10 OFFSET 20`).
			WithArgs(userID, "%milk%", "%milk%").
			WillReturnRows(rows)

		records, err := repo.List(testContext(), userID, ListFilter{Search: "milk", Limit: 10, Offset: 20})
		require.NoError(t, err)
		assert.Empty(t, records)
	})
}

func TestEntityRepository_ListStates(t *testing.T) {
	userID := uuid.New()
	now := time.Now().UTC()

	db, mock := newTestDB(t)
	repo := newTestNotesRepo(t, db)

	live := uuid.New()
	gone := uuid.New()
	rows := sqlmock.NewRows([]string{"id", "version", "deleted", "updated_at"}).
		AddRow(live.String(), int64(4), false, now).
		AddRow(gone.String(), int64(7), true, now.Add(-time.Hour))

	mock.ExpectQuery(regexp.QuoteMeta(repo.listStatesQuery)).
		WithArgs(userID).
		WillReturnRows(rows)

	states, err := repo.ListStates(testContext(), userID)
	require.NoError(t, err)
	require.Len(t, states, 2)
	assert.Equal(t, live, states[0].ID)
	assert.False(t, states[0].Deleted)
	assert.True(t, states[1].Deleted)
	assert.Equal(t, int64(7), states[1].Version)
}

func TestEntityRepository_FindVersion(t *testing.T) {
	userID := uuid.New()
	entityID := uuid.New()

	t.Run("found", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(repo.findVersionQuery)).
			WithArgs(entityID, userID).
			WillReturnRows(sqlmock.NewRows([]string{"version"}).AddRow(int64(6)))

		version, err := repo.FindVersion(testContext(), userID, entityID)
		require.NoError(t, err)
		require.NotNil(t, version)
		assert.Equal(t, int64(6), *version)
	})

	t.Run("missing row yields nil without error", func(t *testing.T) {
		db, mock := newTestDB(t)
		repo := newTestNotesRepo(t, db)

		mock.ExpectQuery(regexp.QuoteMeta(repo.findVersionQuery)).
			WillReturnError(sql.ErrNoRows)

		version, err := repo.FindVersion(testContext(), userID, entityID)
		require.NoError(t, err)
		assert.Nil(t, version)
	})
}

func TestEntityRepository_PurgeDeletedBefore(t *testing.T) {
	db, mock := newTestDB(t)
	repo := newTestNotesRepo(t, db)

	cutoff := time.Now().Add(-30 * 24 * time.Hour)
	mock.ExpectExec(regexp.QuoteMeta(repo.purgeQuery)).
		WithArgs(cutoff).
		WillReturnResult(sqlmock.NewResult(0, 12))

	purged, err := repo.PurgeDeletedBefore(testContext(), cutoff)
	require.NoError(t, err)
	assert.Equal(t, int64(12), purged)
}
