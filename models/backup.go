package models

import (
	"time"

	"github.com/google/uuid"
)

// BackupFormatVersion identifies the layout of BackupDocument so that a
// future format change can still restore old exports.
const BackupFormatVersion = "1.0"

// BackupDocument is the whole-account export uploaded to the file-storage
// provider. It contains every live (non-deleted) entity the user owns.
type BackupDocument struct {
	UserID    uuid.UUID      `json:"user_id"`
	CreatedAt time.Time      `json:"created_at"`
	Version   string         `json:"version"`
	Notes     []EntityRecord `json:"notes"`
	Tasks     []EntityRecord `json:"tasks"`
	Habits    []EntityRecord `json:"habits"`
}

// RestoreSummary reports what a backup import actually changed. Skipped rows
// are those whose stored version was already at or ahead of the backup.
type RestoreSummary struct {
	Restored int `json:"restored"`
	Skipped  int `json:"skipped"`
}

// BackupFile describes one stored backup as reported by the file-storage API.
type BackupFile struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Size         *string `json:"size,omitempty"`
	ModifiedTime *string `json:"modified_time,omitempty"`
	CreatedTime  *string `json:"created_time,omitempty"`
}

// RestoreBackupRequest selects which stored backup to import.
type RestoreBackupRequest struct {
	FileID string `json:"file_id"`
}
