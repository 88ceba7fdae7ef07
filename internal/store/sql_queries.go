package store

import (
	"fmt"
	"strings"
)

const (
	upsertUserByGoogleID = `INSERT INTO users (google_id, email, name, profile_picture, google_access_token, google_refresh_token, google_token_expires_at)
    VALUES ($1, $2, $3, $4, $5, $6, $7)
    ON CONFLICT (google_id) DO UPDATE SET
        email = EXCLUDED.email,
        name = EXCLUDED.name,
        profile_picture = EXCLUDED.profile_picture,
        google_access_token = EXCLUDED.google_access_token,
        google_refresh_token = COALESCE(EXCLUDED.google_refresh_token, users.google_refresh_token),
        google_token_expires_at = EXCLUDED.google_token_expires_at,
        updated_at = NOW()
    RETURNING id, google_id, email, name, profile_picture, google_access_token, google_refresh_token, google_token_expires_at, created_at, updated_at, last_sync_at;`

	getUserByID = `SELECT id, google_id, email, name, profile_picture, google_access_token, google_refresh_token, google_token_expires_at, created_at, updated_at, last_sync_at
    FROM users
    WHERE id = $1;`

	touchUserLastSync = `UPDATE users
    SET last_sync_at = NOW(), updated_at = NOW()
    WHERE id = $1;`

	updateUserGoogleTokens = `UPDATE users
    SET google_access_token = $2, google_token_expires_at = $3, updated_at = NOW()
    WHERE id = $1;`
)

// buildInsertEntityQuery renders the INSERT for one entity table. Arguments
// are id, user_id, the payload columns in tableSpec order, then version.
func buildInsertEntityQuery(spec tableSpec) string {
	columns := append([]string{"id", "user_id"}, spec.columnNames()...)
	columns = append(columns, "version")

	placeholders := make([]string, len(columns))
	for i := range columns {
		placeholders[i] = fmt.Sprintf("$%d", i+1)
	}

	return fmt.Sprintf(`INSERT INTO %s (%s)
		VALUES (%s);`,
		spec.table, strings.Join(columns, ", "), strings.Join(placeholders, ", "))
}

// buildApplyVersionedQuery renders the conditional-write UPDATE used by sync.
//
// The query both reads the current version and applies the update in a single
// statement, so no separate SELECT can race with a concurrent writer. The
// target_record CTE captures the row's identity and version; updated_record
// performs the write only when the guard "version < $3" holds. The final
// SELECT always yields exactly one row:
//
//   - updated_id NULL, current_db_version NULL  → no such row for this user
//   - updated_id NULL, current_db_version set   → guard failed (stale or equal version)
//   - both set                                  → write applied
//
// An applied update adopts the incoming version verbatim and clears a
// tombstone: a newer client state supersedes an older deletion.
//
// Arguments: $1 id, $2 user_id, $3 incoming version, $4.. payload columns.
func buildApplyVersionedQuery(spec tableSpec) string {
	setClauses := make([]string, len(spec.columns))
	for i, col := range spec.columns {
		setClauses[i] = fmt.Sprintf("%s = $%d", col.name, i+4)
	}

	return fmt.Sprintf(`
       WITH target_record AS (
          SELECT id, version
          FROM %[1]s
          WHERE id = $1 AND user_id = $2
       ),
       updated_record AS (
          UPDATE %[1]s
          SET %[2]s, version = $3, updated_at = NOW(), deleted_at = NULL
          WHERE id = $1
            AND user_id = $2
            AND version < $3
          RETURNING id
       )
       SELECT
          (SELECT id FROM updated_record)       AS updated_id,
          (SELECT version FROM target_record)   AS current_db_version;`,
		spec.table, strings.Join(setClauses, ", "))
}

// buildSoftDeleteVersionedQuery renders the conditional-write tombstone used
// by sync. Shape and result classification are identical to
// [buildApplyVersionedQuery]; instead of payload columns it sets deleted_at.
//
// Arguments: $1 id, $2 user_id, $3 incoming version.
func buildSoftDeleteVersionedQuery(spec tableSpec) string {
	return fmt.Sprintf(`
       WITH target_record AS (
          SELECT id, version
          FROM %[1]s
          WHERE id = $1 AND user_id = $2
       ),
       updated_record AS (
          UPDATE %[1]s
          SET deleted_at = NOW(), version = $3, updated_at = NOW()
          WHERE id = $1
            AND user_id = $2
            AND version < $3
          RETURNING id
       )
       SELECT
          (SELECT id FROM updated_record)       AS updated_id,
          (SELECT version FROM target_record)   AS current_db_version;`,
		spec.table)
}

// buildUpdateExpectedQuery renders the REST update: the write applies only
// when the stored version equals the client's expected version, and bumps the
// version by one. Tombstoned rows are invisible to this path.
//
// Result classification mirrors the sync queries, with a third column carrying
// the post-update version on success.
//
// Arguments: $1 id, $2 user_id, $3 expected version, $4.. payload columns.
func buildUpdateExpectedQuery(spec tableSpec) string {
	setClauses := make([]string, len(spec.columns))
	for i, col := range spec.columns {
		setClauses[i] = fmt.Sprintf("%s = $%d", col.name, i+4)
	}

	return fmt.Sprintf(`
       WITH target_record AS (
          SELECT id, version
          FROM %[1]s
          WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL
       ),
       updated_record AS (
          UPDATE %[1]s
          SET %[2]s, version = version + 1, updated_at = NOW()
          WHERE id = $1
            AND user_id = $2
            AND deleted_at IS NULL
            AND version = $3
          RETURNING id, version
       )
       SELECT
          (SELECT id FROM updated_record)       AS updated_id,
          (SELECT version FROM updated_record)  AS new_version,
          (SELECT version FROM target_record)   AS current_db_version;`,
		spec.table, strings.Join(setClauses, ", "))
}

// buildSoftDeleteQuery renders the REST delete: tombstone a live row and bump
// its version so other devices observe the deletion on their next sync.
func buildSoftDeleteQuery(spec tableSpec) string {
	return fmt.Sprintf(`UPDATE %s
		SET deleted_at = NOW(), version = version + 1, updated_at = NOW()
		WHERE id = $1 AND user_id = $2 AND deleted_at IS NULL;`,
		spec.table)
}

// buildFindVersionQuery renders the version probe used to classify insert
// collisions. Tombstoned rows are included: their versions still participate
// in conflict detection.
func buildFindVersionQuery(spec tableSpec) string {
	return fmt.Sprintf(`SELECT version
		FROM %s
		WHERE id = $1 AND user_id = $2;`,
		spec.table)
}

// buildGetQuery renders the full-row read, tombstoned rows included.
func buildGetQuery(spec tableSpec) string {
	return fmt.Sprintf(`SELECT %s
		FROM %s
		WHERE id = $1 AND user_id = $2;`,
		strings.Join(spec.selectColumns(), ", "), spec.table)
}

// buildListStatesQuery renders the change-detection read: identity and
// version for every row the user owns, live and tombstoned alike.
func buildListStatesQuery(spec tableSpec) string {
	return fmt.Sprintf(`SELECT id, version, (deleted_at IS NOT NULL) AS deleted, updated_at
		FROM %s
		WHERE user_id = $1
		ORDER BY updated_at DESC;`,
		spec.table)
}

// buildPurgeQuery renders the hard delete of tombstones older than a cutoff.
func buildPurgeQuery(spec tableSpec) string {
	return fmt.Sprintf(`DELETE FROM %s
		WHERE deleted_at IS NOT NULL AND deleted_at < $1;`,
		spec.table)
}
