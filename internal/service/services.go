package service

import (
	"github.com/focusflow/focusflow-server/internal/config"
	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/store"
)

type Services struct {
	AppInfoService AppInfoService
	AuthService    AuthService
	SyncService    SyncService
	EntityService  EntityService
	BackupService  BackupService
}

func NewServices(storages *store.Storages, google GoogleAuthAdapter, drive DriveAdapter, cfg *config.StructuredConfig, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(cfg.App, logger)
	if err != nil {
		return nil, err
	}

	return &Services{
		AppInfoService: appInfoService,
		AuthService:    NewAuthService(storages.UserRepository, google, cfg.App, logger),
		SyncService:    NewSyncService(storages, logger),
		EntityService:  NewEntityService(storages, logger),
		BackupService:  NewBackupService(storages, drive, google, cfg.Google.DriveFolder, logger),
	}, nil
}
