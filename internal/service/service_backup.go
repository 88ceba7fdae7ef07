package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

// backupFileName is the rolling per-user export: one file per account,
// overwritten on every backup.
const backupFileName = "focusflow-backup.json"

// backupService exports the whole account to a JSON document in the user's
// Drive and imports it back. It talks to Drive with the user's own Google
// access token, refreshing it through the OAuth adapter when expired.
type backupService struct {
	users  store.UserRepository
	repos  map[models.EntityType]store.EntityRepository
	codecs map[models.EntityType]EntityCodec

	drive      DriveAdapter
	google     GoogleAuthAdapter
	folderName string

	logger *logger.Logger
}

func NewBackupService(storages *store.Storages, drive DriveAdapter, google GoogleAuthAdapter, folderName string, log *logger.Logger) BackupService {
	return &backupService{
		users:      storages.UserRepository,
		repos:      storages.Entities(),
		codecs:     Codecs(),
		drive:      drive,
		google:     google,
		folderName: folderName,
		logger:     log,
	}
}

// CreateBackup implements BackupService. The export carries every live
// entity; tombstones are a sync-protocol detail and never leave the server.
// The Drive file is created on first backup and overwritten afterwards.
func (b *backupService) CreateBackup(ctx context.Context, userID uuid.UUID) (models.BackupFile, error) {
	log := logger.FromContext(ctx)

	accessToken, err := b.ensureAccessToken(ctx, userID)
	if err != nil {
		return models.BackupFile{}, err
	}

	document := models.BackupDocument{
		UserID:    userID,
		CreatedAt: time.Now().UTC(),
		Version:   models.BackupFormatVersion,
	}

	collections := []struct {
		kind models.EntityType
		out  *[]models.EntityRecord
	}{
		{kind: models.EntityTypeNote, out: &document.Notes},
		{kind: models.EntityTypeTask, out: &document.Tasks},
		{kind: models.EntityTypeHabit, out: &document.Habits},
	}
	for _, collection := range collections {
		records, listErr := b.repos[collection.kind].List(ctx, userID, store.ListFilter{})
		if listErr != nil {
			return models.BackupFile{}, fmt.Errorf("collecting %s records: %w", collection.kind, listErr)
		}
		*collection.out = records
	}

	content, err := json.Marshal(document)
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("encoding backup document: %w", err)
	}

	folderID, err := b.drive.EnsureFolder(ctx, accessToken, b.folderName)
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("ensuring backup folder: %w", err)
	}

	existing, err := b.findExistingBackup(ctx, accessToken, folderID)
	if err != nil {
		return models.BackupFile{}, err
	}

	var file models.BackupFile
	if existing != nil {
		file, err = b.drive.UpdateFile(ctx, accessToken, existing.ID, content)
	} else {
		file, err = b.drive.UploadFile(ctx, accessToken, folderID, backupFileName, content)
	}
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("storing backup file: %w", err)
	}

	log.Info().
		Str("func", "backupService.CreateBackup").
		Str("user_id", userID.String()).
		Str("file_id", file.ID).
		Int("notes", len(document.Notes)).
		Int("tasks", len(document.Tasks)).
		Int("habits", len(document.Habits)).
		Msg("backup stored")

	return file, nil
}

func (b *backupService) ListBackups(ctx context.Context, userID uuid.UUID) ([]models.BackupFile, error) {
	accessToken, err := b.ensureAccessToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	folderID, err := b.drive.EnsureFolder(ctx, accessToken, b.folderName)
	if err != nil {
		return nil, fmt.Errorf("ensuring backup folder: %w", err)
	}

	files, err := b.drive.ListFiles(ctx, accessToken, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing backup files: %w", err)
	}

	return files, nil
}

// RestoreBackup implements BackupService. Imported records go through the
// same version guard as sync: a record whose stored version is already at or
// ahead of the backup is skipped, so restoring an old backup cannot roll the
// account back.
func (b *backupService) RestoreBackup(ctx context.Context, userID uuid.UUID, fileID string) (models.RestoreSummary, error) {
	log := logger.FromContext(ctx)

	accessToken, err := b.ensureAccessToken(ctx, userID)
	if err != nil {
		return models.RestoreSummary{}, err
	}

	content, err := b.drive.DownloadFile(ctx, accessToken, fileID)
	if err != nil {
		return models.RestoreSummary{}, fmt.Errorf("downloading backup file: %w", err)
	}

	var document models.BackupDocument
	if err := json.Unmarshal(content, &document); err != nil {
		return models.RestoreSummary{}, fmt.Errorf("%w: %w", ErrUnsupportedBackupFormat, err)
	}
	if document.Version != models.BackupFormatVersion {
		return models.RestoreSummary{}, fmt.Errorf("%w: version %q", ErrUnsupportedBackupFormat, document.Version)
	}

	var summary models.RestoreSummary

	imports := []struct {
		kind    models.EntityType
		records []models.EntityRecord
	}{
		{kind: models.EntityTypeNote, records: document.Notes},
		{kind: models.EntityTypeTask, records: document.Tasks},
		{kind: models.EntityTypeHabit, records: document.Habits},
	}
	for _, batch := range imports {
		for _, record := range batch.records {
			if err := ctx.Err(); err != nil {
				return models.RestoreSummary{}, err
			}

			restored, importErr := b.importRecord(ctx, userID, batch.kind, record)
			if importErr != nil {
				return models.RestoreSummary{}, fmt.Errorf("restoring %s %s: %w", batch.kind, record.ID, importErr)
			}

			if restored {
				summary.Restored++
			} else {
				summary.Skipped++
			}
		}
	}

	log.Info().
		Str("func", "backupService.RestoreBackup").
		Str("user_id", userID.String()).
		Int("restored", summary.Restored).
		Int("skipped", summary.Skipped).
		Msg("backup restored")

	return summary, nil
}

func (b *backupService) importRecord(ctx context.Context, userID uuid.UUID, kind models.EntityType, record models.EntityRecord) (bool, error) {
	repo := b.repos[kind]

	fields, err := b.codecs[kind].Normalize(record.Fields)
	if err != nil {
		return false, err
	}

	result, err := repo.ApplyVersioned(ctx, userID, record.ID, fields, record.Version)
	if err != nil {
		return false, err
	}
	if result.Found {
		return result.Applied, nil
	}

	insertErr := repo.Insert(ctx, models.EntityRecord{
		ID:      record.ID,
		UserID:  userID,
		Fields:  fields,
		Version: record.Version,
	})
	if errors.Is(insertErr, store.ErrEntityIDTaken) {
		// Raced with a concurrent writer, or the id belongs to someone else;
		// either way this record is not restorable.
		return false, nil
	}
	if insertErr != nil {
		return false, insertErr
	}

	return true, nil
}

// ensureAccessToken returns a usable Drive access token for the user,
// refreshing and persisting it when the stored one has expired.
func (b *backupService) ensureAccessToken(ctx context.Context, userID uuid.UUID) (string, error) {
	log := logger.FromContext(ctx)

	user, err := b.users.GetByID(ctx, userID)
	if err != nil {
		return "", err
	}

	if user.GoogleAccessToken == nil {
		return "", ErrNoDriveAccess
	}

	tokenValid := user.GoogleTokenExpiresAt == nil || user.GoogleTokenExpiresAt.After(time.Now().Add(time.Minute))
	if tokenValid {
		return *user.GoogleAccessToken, nil
	}

	if user.GoogleRefreshToken == nil {
		return "", ErrNoDriveAccess
	}

	tokens, err := b.google.RefreshAccessToken(ctx, *user.GoogleRefreshToken)
	if err != nil {
		return "", fmt.Errorf("refreshing access token: %w", err)
	}

	if err := b.users.UpdateGoogleTokens(ctx, userID, &tokens.AccessToken, tokens.ExpiresAt); err != nil {
		log.Warn().
			Err(err).
			Str("func", "backupService.ensureAccessToken").
			Str("user_id", userID.String()).
			Msg("failed to persist refreshed access token")
	}

	return tokens.AccessToken, nil
}

func (b *backupService) findExistingBackup(ctx context.Context, accessToken, folderID string) (*models.BackupFile, error) {
	files, err := b.drive.ListFiles(ctx, accessToken, folderID)
	if err != nil {
		return nil, fmt.Errorf("listing backup files: %w", err)
	}

	for _, file := range files {
		if file.Name == backupFileName {
			return &file, nil
		}
	}

	return nil, nil
}
