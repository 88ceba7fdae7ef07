package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/models"
	"github.com/go-resty/resty/v2"
)

const (
	defaultDriveURL       = "https://www.googleapis.com/drive/v3"
	defaultDriveUploadURL = "https://www.googleapis.com/upload/drive/v3"

	driveFolderMimeType = "application/vnd.google-apps.folder"
	driveFileFields     = "id,name,size,modifiedTime,createdTime"
)

// DriveOptions overrides the Drive API endpoints. The zero value selects the
// real Google endpoints.
type DriveOptions struct {
	BaseURL   string
	UploadURL string
	Timeout   time.Duration
}

type driveAdapter struct {
	client    *resty.Client
	uploadURL string

	logger *logger.Logger
}

func NewDriveAdapter(opts DriveOptions, log *logger.Logger) *driveAdapter {
	if opts.BaseURL == "" {
		opts.BaseURL = defaultDriveURL
	}
	if opts.UploadURL == "" {
		opts.UploadURL = defaultDriveUploadURL
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	client := resty.New().
		SetBaseURL(strings.TrimRight(opts.BaseURL, "/")).
		SetTimeout(opts.Timeout)

	return &driveAdapter{
		client:    client,
		uploadURL: strings.TrimRight(opts.UploadURL, "/"),
		logger:    log,
	}
}

// driveFileResponse is the files API resource with the fields this
// application requests.
type driveFileResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Size         string `json:"size"`
	ModifiedTime string `json:"modifiedTime"`
	CreatedTime  string `json:"createdTime"`
}

type driveFileListResponse struct {
	Files []driveFileResponse `json:"files"`
}

func (f driveFileResponse) toModel() models.BackupFile {
	file := models.BackupFile{ID: f.ID, Name: f.Name}
	if f.Size != "" {
		file.Size = &f.Size
	}
	if f.ModifiedTime != "" {
		file.ModifiedTime = &f.ModifiedTime
	}
	if f.CreatedTime != "" {
		file.CreatedTime = &f.CreatedTime
	}
	return file
}

// EnsureFolder finds the application folder by name or creates it, returning
// its file id.
func (d *driveAdapter) EnsureFolder(ctx context.Context, accessToken, name string) (string, error) {
	log := logger.FromContext(ctx)

	var list driveFileListResponse
	query := fmt.Sprintf("name = '%s' and mimeType = '%s' and trashed = false", escapeDriveQuery(name), driveFolderMimeType)

	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("q", query).
		SetQueryParam("fields", "files(id,name)").
		SetResult(&list).
		Get("/files")
	if err != nil {
		return "", fmt.Errorf("folder lookup request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	if len(list.Files) > 0 {
		return list.Files[0].ID, nil
	}

	var created driveFileResponse
	resp, err = d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetBody(map[string]any{"name": name, "mimeType": driveFolderMimeType}).
		SetResult(&created).
		Post("/files")
	if err != nil {
		return "", fmt.Errorf("folder create request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}

	log.Debug().
		Str("func", "driveAdapter.EnsureFolder").
		Str("folder_id", created.ID).
		Msg("backup folder created")

	return created.ID, nil
}

// UploadFile creates a new file inside folderID using the multipart upload
// protocol: one part carries the file metadata, the other the content.
func (d *driveAdapter) UploadFile(ctx context.Context, accessToken, folderID, name string, content []byte) (models.BackupFile, error) {
	metadata, err := json.Marshal(map[string]any{
		"name":    name,
		"parents": []string{folderID},
	})
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("encoding file metadata: %w", err)
	}

	var created driveFileResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("uploadType", "multipart").
		SetQueryParam("fields", driveFileFields).
		SetMultipartField("metadata", "", "application/json; charset=UTF-8", bytes.NewReader(metadata)).
		SetMultipartField("media", name, "application/json", bytes.NewReader(content)).
		SetResult(&created).
		Post(d.uploadURL + "/files")
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("file upload request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BackupFile{}, err
	}

	return created.toModel(), nil
}

// UpdateFile overwrites the content of an existing file, keeping its id.
func (d *driveAdapter) UpdateFile(ctx context.Context, accessToken, fileID string, content []byte) (models.BackupFile, error) {
	var updated driveFileResponse
	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("uploadType", "media").
		SetQueryParam("fields", driveFileFields).
		SetHeader("Content-Type", "application/json").
		SetBody(content).
		SetResult(&updated).
		Patch(d.uploadURL + "/files/" + fileID)
	if err != nil {
		return models.BackupFile{}, fmt.Errorf("file update request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.BackupFile{}, err
	}

	return updated.toModel(), nil
}

// ListFiles returns the files inside folderID, newest first.
func (d *driveAdapter) ListFiles(ctx context.Context, accessToken, folderID string) ([]models.BackupFile, error) {
	var list driveFileListResponse
	query := fmt.Sprintf("'%s' in parents and trashed = false", escapeDriveQuery(folderID))

	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("q", query).
		SetQueryParam("fields", "files("+driveFileFields+")").
		SetQueryParam("orderBy", "modifiedTime desc").
		SetResult(&list).
		Get("/files")
	if err != nil {
		return nil, fmt.Errorf("file list request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	files := make([]models.BackupFile, 0, len(list.Files))
	for _, file := range list.Files {
		files = append(files, file.toModel())
	}

	return files, nil
}

// DownloadFile fetches the raw content of a file.
func (d *driveAdapter) DownloadFile(ctx context.Context, accessToken, fileID string) ([]byte, error) {
	resp, err := d.client.R().
		SetContext(ctx).
		SetAuthToken(accessToken).
		SetQueryParam("alt", "media").
		Get("/files/" + fileID)
	if err != nil {
		return nil, fmt.Errorf("file download request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.Body(), nil
}

// escapeDriveQuery escapes single quotes in values interpolated into a Drive
// search query.
func escapeDriveQuery(value string) string {
	return strings.ReplaceAll(value, "'", `\'`)
}
