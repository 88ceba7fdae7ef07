package http

import (
	"encoding/json"
	"net/http"

	"github.com/focusflow/focusflow-server/internal/logger"
	"github.com/focusflow/focusflow-server/internal/utils"
)

func (h *Handler) createBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.createBackup").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	file, err := h.services.BackupService.CreateBackup(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.createBackup").Msg("error creating backup")
		http.Error(w, "error creating backup", statusFromError(err))
		return
	}

	utils.WriteJSON(w, file, http.StatusCreated)
}

func (h *Handler) listBackups(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.listBackups").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	files, err := h.services.BackupService.ListBackups(ctx, userID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.listBackups").Msg("error listing backups")
		http.Error(w, "error listing backups", statusFromError(err))
		return
	}

	response := map[string]any{
		"files":  files,
		"length": len(files),
	}

	utils.WriteJSON(w, response, http.StatusOK)
}

// restoreRequest is the body of POST /api/backup/restore.
type restoreRequest struct {
	FileID string `json:"file_id"`
}

func (h *Handler) restoreBackup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	userID, found := utils.GetUserIDFromContext(ctx)
	if !found {
		log.Error().Str("func", "*Handler.restoreBackup").Msg("no user ID was given")
		http.Error(w, "no user ID was given", http.StatusBadRequest)
		return
	}

	var request restoreRequest
	if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
		log.Err(err).Str("func", "*Handler.restoreBackup").Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}
	if request.FileID == "" {
		http.Error(w, "file_id is required", http.StatusBadRequest)
		return
	}

	summary, err := h.services.BackupService.RestoreBackup(ctx, userID, request.FileID)
	if err != nil {
		log.Err(err).Str("func", "*Handler.restoreBackup").Msg("error restoring backup")
		http.Error(w, "error restoring backup", statusFromError(err))
		return
	}

	utils.WriteJSON(w, summary, http.StatusOK)
}
