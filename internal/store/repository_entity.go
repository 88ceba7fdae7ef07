package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
	"github.com/jackc/pgerrcode"
)

// entityRepository is the shared [EntityRepository] implementation. The
// table-dependent SQL is rendered once at construction time from the spec.
type entityRepository struct {
	*DB
	spec tableSpec

	insertQuery              string
	applyVersionedQuery      string
	softDeleteVersionedQuery string
	updateExpectedQuery      string
	softDeleteQuery          string
	findVersionQuery         string
	getQuery                 string
	listStatesQuery          string
	purgeQuery               string
}

func newEntityRepository(db *DB, spec tableSpec) EntityRepository {
	return &entityRepository{
		DB:                       db,
		spec:                     spec,
		insertQuery:              buildInsertEntityQuery(spec),
		applyVersionedQuery:      buildApplyVersionedQuery(spec),
		softDeleteVersionedQuery: buildSoftDeleteVersionedQuery(spec),
		updateExpectedQuery:      buildUpdateExpectedQuery(spec),
		softDeleteQuery:          buildSoftDeleteQuery(spec),
		findVersionQuery:         buildFindVersionQuery(spec),
		getQuery:                 buildGetQuery(spec),
		listStatesQuery:          buildListStatesQuery(spec),
		purgeQuery:               buildPurgeQuery(spec),
	}
}

func (r *entityRepository) Kind() models.EntityType {
	return r.spec.kind
}

func (r *entityRepository) FindVersion(ctx context.Context, userID, entityID uuid.UUID) (*int64, error) {
	log := logger.FromContext(ctx)

	var version int64
	err := r.DB.QueryRowContext(ctx, r.findVersionQuery, entityID, userID).Scan(&version)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.FindVersion").
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Msg("failed to query entity version")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return &version, nil
}

// Insert creates a new live row. A unique-violation on the primary key is
// reported as [ErrEntityIDTaken]; the caller must decide whether the colliding
// row belongs to the same user or to someone else.
func (r *entityRepository) Insert(ctx context.Context, record models.EntityRecord) error {
	log := logger.FromContext(ctx)

	payloadArgs, err := r.spec.args(record.Fields)
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.Insert").
			Str("table", r.spec.table).
			Msg("failed to build insert arguments")
		return err
	}

	args := make([]any, 0, len(payloadArgs)+3)
	args = append(args, record.ID, record.UserID)
	args = append(args, payloadArgs...)
	args = append(args, record.Version)

	result, execErr := r.DB.ExecContext(ctx, r.insertQuery, args...)
	if execErr != nil {
		if postgresError(execErr) == pgerrcode.UniqueViolation {
			log.Warn().
				Str("func", "entityRepository.Insert").
				Str("table", r.spec.table).
				Str("entity_id", record.ID.String()).
				Msg("insert collided with an existing row")
			return ErrEntityIDTaken
		}

		log.Err(execErr).
			Str("func", "entityRepository.Insert").
			Str("table", r.spec.table).
			Str("entity_id", record.ID.String()).
			Msg("failed to insert entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, affectedErr)
	}
	if affected == 0 {
		return ErrEntityNotSaved
	}

	log.Debug().
		Str("func", "entityRepository.Insert").
		Str("table", r.spec.table).
		Str("entity_id", record.ID.String()).
		Int64("version", record.Version).
		Msg("entity inserted")

	return nil
}

func (r *entityRepository) ApplyVersioned(ctx context.Context, userID, entityID uuid.UUID, fields models.EntityPayload, version int64) (VersionedResult, error) {
	payloadArgs, err := r.spec.args(fields)
	if err != nil {
		return VersionedResult{}, err
	}

	args := make([]any, 0, len(payloadArgs)+3)
	args = append(args, entityID, userID, version)
	args = append(args, payloadArgs...)

	return r.runConditionalWrite(ctx, "entityRepository.ApplyVersioned", r.applyVersionedQuery, entityID, version, args)
}

func (r *entityRepository) SoftDeleteVersioned(ctx context.Context, userID, entityID uuid.UUID, version int64) (VersionedResult, error) {
	args := []any{entityID, userID, version}
	return r.runConditionalWrite(ctx, "entityRepository.SoftDeleteVersioned", r.softDeleteVersionedQuery, entityID, version, args)
}

// runConditionalWrite executes one of the version-guarded CTE queries and
// classifies its single result row. Both NULL means the row does not exist;
// a NULL updated_id with a present current_db_version means the guard failed.
func (r *entityRepository) runConditionalWrite(ctx context.Context, funcName, query string, entityID uuid.UUID, version int64, args []any) (VersionedResult, error) {
	log := logger.FromContext(ctx)

	var updatedID *uuid.UUID
	var currentDBVersion *int64

	queryRowErr := r.DB.QueryRowContext(ctx, query, args...).Scan(&updatedID, &currentDBVersion)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", funcName).
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Msg("failed to execute conditional write")
		return VersionedResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, queryRowErr)
	}

	// not found: target_record empty -> both NULL
	if currentDBVersion == nil {
		return VersionedResult{}, nil
	}

	// found but not updated -> version guard failed
	if updatedID == nil {
		log.Debug().
			Str("func", funcName).
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Int64("db_version", *currentDBVersion).
			Int64("provided_version", version).
			Msg("conditional write rejected by version guard")
		return VersionedResult{Found: true, CurrentVersion: *currentDBVersion}, nil
	}

	log.Debug().
		Str("func", funcName).
		Str("table", r.spec.table).
		Str("entity_id", entityID.String()).
		Int64("version", version).
		Msg("conditional write applied")

	return VersionedResult{Found: true, Applied: true, CurrentVersion: version}, nil
}

func (r *entityRepository) UpdateExpected(ctx context.Context, userID, entityID uuid.UUID, fields models.EntityPayload, expectedVersion int64) (VersionedResult, error) {
	log := logger.FromContext(ctx)

	payloadArgs, err := r.spec.args(fields)
	if err != nil {
		return VersionedResult{}, err
	}

	args := make([]any, 0, len(payloadArgs)+3)
	args = append(args, entityID, userID, expectedVersion)
	args = append(args, payloadArgs...)

	var updatedID *uuid.UUID
	var newVersion *int64
	var currentDBVersion *int64

	queryRowErr := r.DB.QueryRowContext(ctx, r.updateExpectedQuery, args...).Scan(&updatedID, &newVersion, &currentDBVersion)
	if queryRowErr != nil {
		log.Err(queryRowErr).
			Str("func", "entityRepository.UpdateExpected").
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Msg("failed to execute update")
		return VersionedResult{}, fmt.Errorf("%w: %w", ErrExecutingQuery, queryRowErr)
	}

	if currentDBVersion == nil {
		return VersionedResult{}, nil
	}

	if updatedID == nil {
		log.Debug().
			Str("func", "entityRepository.UpdateExpected").
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Int64("db_version", *currentDBVersion).
			Int64("expected_version", expectedVersion).
			Msg("optimistic lock failed: version mismatch on update")
		return VersionedResult{Found: true, CurrentVersion: *currentDBVersion}, nil
	}

	return VersionedResult{Found: true, Applied: true, CurrentVersion: *newVersion}, nil
}

func (r *entityRepository) SoftDelete(ctx context.Context, userID, entityID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, execErr := r.DB.ExecContext(ctx, r.softDeleteQuery, entityID, userID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "entityRepository.SoftDelete").
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Msg("failed to soft delete entity")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, affectedErr)
	}
	if affected == 0 {
		return ErrEntityNotFound
	}

	log.Debug().
		Str("func", "entityRepository.SoftDelete").
		Str("table", r.spec.table).
		Str("entity_id", entityID.String()).
		Msg("entity soft deleted")

	return nil
}

func (r *entityRepository) Get(ctx context.Context, userID, entityID uuid.UUID) (models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	record, err := r.scanRecord(r.DB.QueryRowContext(ctx, r.getQuery, entityID, userID))
	if errors.Is(err, sql.ErrNoRows) {
		return models.EntityRecord{}, ErrEntityNotFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "entityRepository.Get").
			Str("table", r.spec.table).
			Str("entity_id", entityID.String()).
			Msg("failed to read entity")
		return models.EntityRecord{}, err
	}

	return record, nil
}

func (r *entityRepository) List(ctx context.Context, userID uuid.UUID, filter ListFilter) ([]models.EntityRecord, error) {
	log := logger.FromContext(ctx)

	builder := sq.Select(r.spec.selectColumns()...).
		From(r.spec.table).
		Where(sq.Eq{"user_id": userID}).
		Where("deleted_at IS NULL").
		OrderBy("updated_at DESC").
		PlaceholderFormat(sq.Dollar)

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		match := make(sq.Or, 0, len(r.spec.searchColumns))
		for _, name := range r.spec.searchColumns {
			match = append(match, sq.ILike{name: pattern})
		}
		builder = builder.Where(match)
	}
	if filter.Limit > 0 {
		builder = builder.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		builder = builder.Offset(filter.Offset)
	}

	query, args, buildErr := builder.ToSql()
	if buildErr != nil {
		log.Err(buildErr).
			Str("func", "entityRepository.List").
			Str("table", r.spec.table).
			Msg("failed to build list query")
		return nil, fmt.Errorf("%w: %w", ErrBuildingSQLQuery, buildErr)
	}

	rows, queryErr := r.DB.QueryContext(ctx, query, args...)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "entityRepository.List").
			Str("table", r.spec.table).
			Msg("failed to execute list query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	results := make([]models.EntityRecord, 0, 50)

	for rows.Next() {
		record, scanErr := r.scanRecord(rows)
		if scanErr != nil {
			log.Err(scanErr).
				Str("func", "entityRepository.List").
				Str("table", r.spec.table).
				Msg("failed to scan entity row")
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		results = append(results, record)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return results, nil
}

func (r *entityRepository) ListStates(ctx context.Context, userID uuid.UUID) ([]models.EntityState, error) {
	log := logger.FromContext(ctx)

	rows, queryErr := r.DB.QueryContext(ctx, r.listStatesQuery, userID)
	if queryErr != nil {
		log.Err(queryErr).
			Str("func", "entityRepository.ListStates").
			Str("table", r.spec.table).
			Msg("failed to execute states query")
		return nil, fmt.Errorf("%w: %w", ErrExecutingQuery, queryErr)
	}
	defer rows.Close()

	states := make([]models.EntityState, 0, 50)

	for rows.Next() {
		var state models.EntityState
		if scanErr := rows.Scan(&state.ID, &state.Version, &state.Deleted, &state.UpdatedAt); scanErr != nil {
			return nil, fmt.Errorf("%w: %w", ErrScanningRow, scanErr)
		}
		states = append(states, state)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		return nil, fmt.Errorf("%w: %w", ErrScanningRows, rowsErr)
	}

	return states, nil
}

func (r *entityRepository) PurgeDeletedBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	log := logger.FromContext(ctx)

	result, execErr := r.DB.ExecContext(ctx, r.purgeQuery, cutoff)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "entityRepository.PurgeDeletedBefore").
			Str("table", r.spec.table).
			Msg("failed to purge tombstones")
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return 0, fmt.Errorf("%w: %w", ErrExecutingStatement, affectedErr)
	}

	return affected, nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanRecord reads one full entity row. Payload destinations are chosen from
// the column kinds; JSONB columns are decoded after the scan.
func (r *entityRepository) scanRecord(row rowScanner) (models.EntityRecord, error) {
	var record models.EntityRecord

	payloadDest := make([]any, len(r.spec.columns))
	for i, col := range r.spec.columns {
		switch col.kind {
		case columnBool:
			payloadDest[i] = new(bool)
		case columnInt:
			payloadDest[i] = new(int64)
		case columnJSONB:
			payloadDest[i] = new([]byte)
		default:
			payloadDest[i] = new(string)
		}
	}

	dest := make([]any, 0, len(payloadDest)+6)
	dest = append(dest, &record.ID, &record.UserID)
	dest = append(dest, payloadDest...)
	dest = append(dest, &record.CreatedAt, &record.UpdatedAt, &record.Version, &record.DeletedAt)

	if err := row.Scan(dest...); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return record, err
		}
		return record, fmt.Errorf("%w: %w", ErrScanningRow, err)
	}

	record.Fields = make(models.EntityPayload, len(r.spec.columns))
	for i, col := range r.spec.columns {
		switch value := payloadDest[i].(type) {
		case *[]byte:
			var decoded any
			if err := json.Unmarshal(*value, &decoded); err != nil {
				return record, fmt.Errorf("%w: decoding column %q: %w", ErrScanningRow, col.name, err)
			}
			record.Fields[col.name] = decoded
		case *bool:
			record.Fields[col.name] = *value
		case *int64:
			record.Fields[col.name] = *value
		case *string:
			record.Fields[col.name] = *value
		}
	}

	return record, nil
}
