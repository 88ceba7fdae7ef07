package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

type userRepository struct {
	*DB
}

func NewUserRepository(db *DB) UserRepository {
	return &userRepository{DB: db}
}

// UpsertByGoogleID creates the account on first sign-in and refreshes the
// profile and Google tokens on every subsequent one. A missing refresh token
// in the upsert keeps the previously stored one: Google only issues a refresh
// token on the initial consent.
func (u *userRepository) UpsertByGoogleID(ctx context.Context, user models.User) (models.User, error) {
	log := logger.FromContext(ctx)

	var saved models.User
	err := u.DB.QueryRowContext(ctx, upsertUserByGoogleID,
		user.GoogleID,
		user.Email,
		user.Name,
		user.ProfilePicture,
		user.GoogleAccessToken,
		user.GoogleRefreshToken,
		user.GoogleTokenExpiresAt,
	).Scan(
		&saved.ID,
		&saved.GoogleID,
		&saved.Email,
		&saved.Name,
		&saved.ProfilePicture,
		&saved.GoogleAccessToken,
		&saved.GoogleRefreshToken,
		&saved.GoogleTokenExpiresAt,
		&saved.CreatedAt,
		&saved.UpdatedAt,
		&saved.LastSyncAt,
	)
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.UpsertByGoogleID").
			Str("email", user.Email).
			Msg("failed to upsert user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	log.Info().
		Str("func", "userRepository.UpsertByGoogleID").
		Str("user_id", saved.ID.String()).
		Msg("user signed in")

	return saved, nil
}

func (u *userRepository) GetByID(ctx context.Context, userID uuid.UUID) (models.User, error) {
	log := logger.FromContext(ctx)

	var user models.User
	err := u.DB.QueryRowContext(ctx, getUserByID, userID).Scan(
		&user.ID,
		&user.GoogleID,
		&user.Email,
		&user.Name,
		&user.ProfilePicture,
		&user.GoogleAccessToken,
		&user.GoogleRefreshToken,
		&user.GoogleTokenExpiresAt,
		&user.CreatedAt,
		&user.UpdatedAt,
		&user.LastSyncAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.User{}, ErrNoUserWasFound
	}
	if err != nil {
		log.Err(err).
			Str("func", "userRepository.GetByID").
			Str("user_id", userID.String()).
			Msg("failed to query user")
		return models.User{}, fmt.Errorf("%w: %w", ErrExecutingQuery, err)
	}

	return user, nil
}

func (u *userRepository) TouchLastSync(ctx context.Context, userID uuid.UUID) error {
	log := logger.FromContext(ctx)

	result, execErr := u.DB.ExecContext(ctx, touchUserLastSync, userID)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "userRepository.TouchLastSync").
			Str("user_id", userID.String()).
			Msg("failed to update last sync timestamp")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, affectedErr)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}

func (u *userRepository) UpdateGoogleTokens(ctx context.Context, userID uuid.UUID, accessToken *string, expiresAt *time.Time) error {
	log := logger.FromContext(ctx)

	result, execErr := u.DB.ExecContext(ctx, updateUserGoogleTokens, userID, accessToken, expiresAt)
	if execErr != nil {
		log.Err(execErr).
			Str("func", "userRepository.UpdateGoogleTokens").
			Str("user_id", userID.String()).
			Msg("failed to update google tokens")
		return fmt.Errorf("%w: %w", ErrExecutingStatement, execErr)
	}

	affected, affectedErr := result.RowsAffected()
	if affectedErr != nil {
		return fmt.Errorf("%w: %w", ErrExecutingStatement, affectedErr)
	}
	if affected == 0 {
		return ErrNoUserWasFound
	}

	return nil
}
