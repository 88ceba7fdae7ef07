package service

import (
	"context"

	"github.com/focusflow/focusflow-server/internal/store"
	"github.com/focusflow/focusflow-server/models"
	"github.com/google/uuid"
)

type SyncService interface {
	// SyncUserData reconciles one client-submitted batch against the store.
	SyncUserData(ctx context.Context, userID uuid.UUID, request models.SyncRequest) (models.SyncResponse, error)

	// GetSyncStatus returns the per-entity version table for every live
	// entity the user owns.
	GetSyncStatus(ctx context.Context, userID uuid.UUID) ([]models.SyncStatus, error)
}

type EntityService interface {
	List(ctx context.Context, userID uuid.UUID, kind models.EntityType, filter store.ListFilter) ([]models.EntityRecord, error)
	Get(ctx context.Context, userID, entityID uuid.UUID, kind models.EntityType) (models.EntityRecord, error)
	Create(ctx context.Context, userID uuid.UUID, kind models.EntityType, payload models.EntityPayload) (models.EntityRecord, error)
	Update(ctx context.Context, userID, entityID uuid.UUID, kind models.EntityType, payload models.EntityPayload, expectedVersion int64) (models.EntityRecord, error)
	Delete(ctx context.Context, userID, entityID uuid.UUID, kind models.EntityType) error
}

type AuthService interface {
	// BuildAuthURL returns the provider consent URL carrying a signed state
	// parameter.
	BuildAuthURL(ctx context.Context) (string, error)

	// HandleGoogleCallback verifies state, exchanges the authorization code,
	// upserts the account, and issues a session token.
	HandleGoogleCallback(ctx context.Context, code, state string) (models.User, models.Token, error)

	CreateToken(ctx context.Context, user models.User) (models.Token, error)
	ParseToken(ctx context.Context, tokenString string) (models.Token, error)
}

type BackupService interface {
	CreateBackup(ctx context.Context, userID uuid.UUID) (models.BackupFile, error)
	ListBackups(ctx context.Context, userID uuid.UUID) ([]models.BackupFile, error)
	RestoreBackup(ctx context.Context, userID uuid.UUID, fileID string) (models.RestoreSummary, error)
}

type AppInfoService interface {
	GetAppVersion(ctx context.Context) string
}

// GoogleAuthAdapter is the outbound surface of the Google OAuth endpoints.
type GoogleAuthAdapter interface {
	AuthCodeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (models.GoogleTokens, error)
	FetchUserInfo(ctx context.Context, accessToken string) (models.GoogleUserInfo, error)
	RefreshAccessToken(ctx context.Context, refreshToken string) (models.GoogleTokens, error)
}

// DriveAdapter is the outbound surface of the Google Drive files API.
type DriveAdapter interface {
	EnsureFolder(ctx context.Context, accessToken, name string) (string, error)
	UploadFile(ctx context.Context, accessToken, folderID, name string, content []byte) (models.BackupFile, error)
	UpdateFile(ctx context.Context, accessToken, fileID string, content []byte) (models.BackupFile, error)
	ListFiles(ctx context.Context, accessToken, folderID string) ([]models.BackupFile, error)
	DownloadFile(ctx context.Context, accessToken, fileID string) ([]byte, error)
}
