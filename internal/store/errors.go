package store

import "errors"

// Sentinel errors returned by repository methods to signal well-known failure
// conditions. Callers should use [errors.Is] to match against these values.
var (
	// ErrNoUserWasFound is returned when a query expected to match at least one
	// user record produces an empty result set.
	ErrNoUserWasFound = errors.New("no user was found")

	// ErrEntityNotFound is returned when a query or update targets an entity
	// (identified by id and user_id) that does not exist in the database.
	ErrEntityNotFound = errors.New("entity was not found")

	// ErrEntityNotSaved is returned when an INSERT completes without error but
	// the number of affected rows is zero, indicating that nothing was
	// actually persisted.
	ErrEntityNotSaved = errors.New("entity was not saved")

	// ErrEntityIDTaken is returned when an INSERT fails because a row with the
	// same primary key already exists. The caller decides whether the existing
	// row belongs to the same user (a concurrent create from another device)
	// or to a different user entirely.
	ErrEntityIDTaken = errors.New("entity id already exists")

	// ErrVersionConflict is returned when an optimistic-locking check fails:
	// the version supplied by the client is not newer than the current version
	// stored in the database, meaning another device has modified the record
	// since the client last synchronized.
	ErrVersionConflict = errors.New("entity version conflict occurred")
)

// Low-level database operation errors. These are returned (or wrapped) by
// repository methods when a SQL-level operation fails before any domain logic
// can be applied.
var (
	// ErrBuildingSQLQuery is returned when constructing a parameterised SQL
	// query fails (e.g. a payload column missing from the field map).
	ErrBuildingSQLQuery = errors.New("error building sql query")

	// ErrExecutingQuery is returned when executing a SELECT or similar
	// read-only query against the database fails.
	ErrExecutingQuery = errors.New("error executing sql query")

	// ErrExecutingStatement is returned when executing a DML statement
	// (INSERT, UPDATE, DELETE) fails.
	ErrExecutingStatement = errors.New("failed to executing statement")

	// ErrScanningRow is returned when reading a single-row result fails.
	ErrScanningRow = errors.New("error scanning row")

	// ErrScanningRows is returned when iterating a multi-row result fails.
	ErrScanningRows = errors.New("error scanning rows")
)
